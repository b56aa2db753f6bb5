package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/swhelper/siege-backend/cmd/app/cli/runscript"
	"github.com/swhelper/siege-backend/cmd/app/cli/topdecks"
	"github.com/swhelper/siege-backend/cmd/app/server"
	"github.com/swhelper/siege-backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "siegebackend",
		Description: "Siege battle log backend. Ranks the offense decks of guild siege battles and ingests new battle logs. Built with Go, fiber, bun and go.uber.org/fx. Uses NATS as MQ and Redis as snapshot cache.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			runscript.Command(),
			topdecks.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
