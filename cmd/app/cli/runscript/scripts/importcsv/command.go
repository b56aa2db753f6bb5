package script_import_csv

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/swhelper/siege-backend/internal/app/appconfig"
	"github.com/swhelper/siege-backend/internal/infra"
	"github.com/swhelper/siege-backend/internal/service"
)

type CommandDeps struct {
	fx.In

	Config          *appconfig.Config
	SiegeLogService *service.SiegeLog
	Locker          *infra.Locker
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "import-csv",
		Description: "import a battle log CSV export into the siege log table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "path of the CSV file to import",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "profile",
				Usage: "serve a wall-clock profile at 127.0.0.1:6060/debug/fgprof while importing",
			},
		},
		Action: func(ctx *cli.Context) error {
			if ctx.Bool("profile") {
				serveProfile()
			}
			return run(ctx, depsFn(), ctx.String("file"))
		},
	}
}
