package cmd

import (
	"context"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/glimmersocial/glimmer/pkg/conf"
	"github.com/glimmersocial/glimmer/pkg/engagements"
	"github.com/glimmersocial/glimmer/pkg/pubsub"
	"github.com/glimmersocial/glimmer/pkg/redis"
	"github.com/glimmersocial/glimmer/pkg/sql"
	"github.com/glimmersocial/glimmer/pkg/stories"
)

type Conf struct {
	Stories conf.StoriesConf  `mapstructure:"stories"`
	Redis   conf.RedisConf    `mapstructure:"redis"`
	DB      conf.PostgresConf `mapstructure:"db"`
}

var run = &cobra.Command{
	Use:   "run",
	Short: "runs the expiration sweeper",
	RunE:  runSweeper,
}

var (
	file string
	once bool
)

func init() {
	run.Flags().StringVarP(&file, "config", "c", "config.toml", "config file")
	run.Flags().BoolVar(&once, "once", false, "sweep a single time and exit")
}

func runSweeper(*cobra.Command, []string) error {
	config := &Conf{}
	err := conf.Load(file, config)
	if err != nil {
		return errors.Wrap(err, "failed to parse config")
	}

	db, err := sql.Open(config.DB)
	if err != nil {
		return errors.Wrap(err, "failed to open db")
	}

	rdb := redis.NewRedis(config.Redis)
	queue := pubsub.NewQueue(rdb)

	sweeper, err := stories.NewSweeper(
		stories.NewBackend(db),
		engagements.NewBackend(db),
		queue,
		time.Duration(config.Stories.SweepInterval)*time.Minute,
	)
	if err != nil {
		return errors.Wrap(err, "failed to create sweeper")
	}

	if once {
		sweeper.Sweep()
		return nil
	}

	sweeper.Run(context.Background())

	return nil
}
