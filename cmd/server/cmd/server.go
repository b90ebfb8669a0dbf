package cmd

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/glimmersocial/glimmer/pkg/conf"
	"github.com/glimmersocial/glimmer/pkg/devices"
	"github.com/glimmersocial/glimmer/pkg/engagements"
	"github.com/glimmersocial/glimmer/pkg/feelings"
	httputil "github.com/glimmersocial/glimmer/pkg/http"
	"github.com/glimmersocial/glimmer/pkg/http/middlewares"
	"github.com/glimmersocial/glimmer/pkg/music"
	"github.com/glimmersocial/glimmer/pkg/notifications"
	"github.com/glimmersocial/glimmer/pkg/pubsub"
	"github.com/glimmersocial/glimmer/pkg/redis"
	"github.com/glimmersocial/glimmer/pkg/sessions"
	"github.com/glimmersocial/glimmer/pkg/sql"
	"github.com/glimmersocial/glimmer/pkg/stories"
	"github.com/glimmersocial/glimmer/pkg/users"
)

type Conf struct {
	Redis conf.RedisConf    `mapstructure:"redis"`
	DB    conf.PostgresConf `mapstructure:"db"`
	API   conf.AddrConf     `mapstructure:"api"`
}

var server = &cobra.Command{
	Use:   "server",
	Short: "runs the api server",
	RunE:  runServer,
}

var file string

func init() {
	server.Flags().StringVarP(&file, "config", "c", "config.toml", "config file")
}

func runServer(*cobra.Command, []string) error {
	config := &Conf{}
	err := conf.Load(file, config)
	if err != nil {
		return errors.Wrap(err, "failed to parse config")
	}

	rdb := redis.NewRedis(config.Redis)

	db, err := sql.Open(config.DB)
	if err != nil {
		return errors.Wrap(err, "failed to open db")
	}

	sm := sessions.NewSessionManager(rdb)
	queue := pubsub.NewQueue(rdb)

	usersBackend := users.NewBackend(db)
	musicBackend := music.NewBackend(db)
	feelingsBackend := feelings.NewBackend(db)
	engagementsBackend := engagements.NewBackend(db)
	storiesBackend := stories.NewBackend(db)
	devicesBackend := devices.NewBackend(db)

	hydrator := stories.NewHydrator(usersBackend, musicBackend, feelingsBackend, engagementsBackend)

	engine := stories.NewEngine(
		storiesBackend,
		engagementsBackend,
		usersBackend,
		musicBackend,
		feelingsBackend,
		hydrator,
		queue,
	)

	amw := middlewares.NewAuthenticationMiddleware(sm)

	r := mux.NewRouter()

	r.MethodNotAllowedHandler = http.HandlerFunc(httputil.NotAllowedHandler)
	r.NotFoundHandler = http.HandlerFunc(httputil.NotFoundHandler)

	storiesRouter := stories.NewEndpoint(engine).Router()
	storiesRouter.Use(amw.Middleware)
	r.PathPrefix("/v1/stories").Handler(http.StripPrefix("/v1/stories", storiesRouter))

	devicesRouter := devices.NewEndpoint(devicesBackend).Router()
	devicesRouter.Use(amw.Middleware)
	r.PathPrefix("/v1/devices").Handler(http.StripPrefix("/v1/devices", devicesRouter))

	notificationsRouter := notifications.NewEndpoint(
		notifications.NewStorage(rdb),
		notifications.NewTargets(db),
	).Router()
	notificationsRouter.Use(amw.Middleware)
	r.PathPrefix("/v1/notifications").Handler(http.StripPrefix("/v1/notifications", notificationsRouter))

	return http.ListenAndServe(fmt.Sprintf(":%d", config.API.Port), httputil.CORS(r))
}
