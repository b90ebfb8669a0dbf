package cmd

import (
	sqldb "database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/token"
	"github.com/spf13/cobra"

	"github.com/glimmersocial/glimmer/pkg/apple"
	"github.com/glimmersocial/glimmer/pkg/conf"
	"github.com/glimmersocial/glimmer/pkg/devices"
	"github.com/glimmersocial/glimmer/pkg/notifications"
	"github.com/glimmersocial/glimmer/pkg/notifications/handlers"
	"github.com/glimmersocial/glimmer/pkg/notifications/worker"
	"github.com/glimmersocial/glimmer/pkg/pubsub"
	"github.com/glimmersocial/glimmer/pkg/redis"
	"github.com/glimmersocial/glimmer/pkg/sql"
	"github.com/glimmersocial/glimmer/pkg/stories"
	"github.com/glimmersocial/glimmer/pkg/users"
)

type Conf struct {
	Notifications struct {
		Environment string `mapstructure:"environment"`
	} `mapstructure:"notifications"`
	APNS  conf.AppleConf    `mapstructure:"apns"`
	Redis conf.RedisConf    `mapstructure:"redis"`
	DB    conf.PostgresConf `mapstructure:"db"`
}

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "runs a notification worker",
	RunE:  runWorker,
}

var file string

func init() {
	workerCmd.Flags().StringVarP(&file, "config", "c", "config.toml", "config file")
}

func runWorker(*cobra.Command, []string) error {
	config := &Conf{}
	err := conf.Load(file, config)
	if err != nil {
		return errors.Wrap(err, "failed to parse config")
	}

	rdb := redis.NewRedis(config.Redis)
	queue := pubsub.NewQueue(rdb)

	db, err := sql.Open(config.DB)
	if err != nil {
		return errors.Wrap(err, "failed to open db")
	}

	authKey, err := token.AuthKeyFromFile(config.APNS.Path)
	if err != nil {
		return errors.Wrap(err, "failed to load auth key")
	}

	client := apns2.NewTokenClient(&token.Token{
		AuthKey: authKey,
		KeyID:   config.APNS.KeyID,
		TeamID:  config.APNS.TeamID,
	})

	switch config.Notifications.Environment {
	case "dev":
		client.Development()
	case "prod":
		client.Production()
	default:
		return fmt.Errorf("unknown environment \"%s\"", config.Notifications.Environment)
	}

	notificationHandlers := setupHandlers(db)

	events := queue.Subscribe(pubsub.StoryTopic)

	dispatch := worker.NewDispatcher(5, &worker.Config{
		APNS:    apple.NewAPNS(config.APNS.Bundle, client),
		Limiter: notifications.NewLimiter(rdb),
		Devices: devices.NewBackend(db),
		Store:   notifications.NewStorage(rdb),
	})
	dispatch.Run()

	for event := range events {
		go func(event *pubsub.Event) {
			h := notificationHandlers[event.Type]
			if h == nil {
				return
			}

			targets, err := h.Targets(event)
			if err != nil {
				log.Printf("failed to get targets: %s", err)
				return
			}

			if len(targets) == 0 {
				return
			}

			notification, err := h.Build(event)
			if err != nil {
				log.Printf("failed to build notification: %s", err)
				return
			}

			dispatch.Dispatch(targets, notification)
		}(event)
	}

	return nil
}

func setupHandlers(db *sqldb.DB) map[pubsub.EventType]handlers.Handler {
	usersBackend := users.NewBackend(db)
	targets := notifications.NewTargets(db)

	notificationHandlers := make(map[pubsub.EventType]handlers.Handler)

	mention := handlers.NewStoryMentionNotificationHandler(targets, usersBackend)
	notificationHandlers[mention.Type()] = mention

	reaction := handlers.NewStoryReactionNotificationHandler(targets, usersBackend, stories.NewBackend(db))
	notificationHandlers[reaction.Type()] = reaction

	return notificationHandlers
}
