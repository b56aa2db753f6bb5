package script_export_sheet

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/swhelper/siege-backend/internal/service"
)

type CommandDeps struct {
	fx.In

	ExportService *service.Export
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "export-sheet",
		Description: "publish the stored siege logs to S3 and archive one day's copy",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "date",
				Usage: "archive date as YYYY-MM-DD, defaults to today (UTC)",
			},
		},
		Action: func(ctx *cli.Context) error {
			date := time.Now().UTC()
			if s := ctx.String("date"); s != "" {
				var err error
				date, err = time.Parse("2006-01-02", s)
				if err != nil {
					return errors.Wrap(err, "failed to parse date")
				}
			}

			log.Info().Time("date", date).Msg("running script")
			if err := depsFn().ExportService.ExportSheet(ctx.Context, date); err != nil {
				return errors.Wrap(err, "failed to export sheet")
			}
			log.Info().Msg("script finished")
			return nil
		},
	}
}
