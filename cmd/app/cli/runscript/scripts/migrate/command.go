package script_migrate

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/swhelper/siege-backend/internal/repo"
)

type CommandDeps struct {
	fx.In

	SiegeLogRepo *repo.SiegeLog
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "migrate",
		Description: "create the siege log table and its indexes when absent",
		Action: func(ctx *cli.Context) error {
			deps := depsFn()
			if err := deps.SiegeLogRepo.CreateSchema(ctx.Context); err != nil {
				return errors.Wrap(err, "failed to create schema")
			}
			count, err := deps.SiegeLogRepo.CountSiegeLogs(ctx.Context)
			if err != nil {
				return errors.Wrap(err, "failed to count siege logs")
			}
			log.Info().Int("siegeLogs", count).Msg("schema is up to date")
			return nil
		},
	}
}
