package runscript

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/swhelper/siege-backend/cmd/app/cli"
	script_export_sheet "github.com/swhelper/siege-backend/cmd/app/cli/runscript/scripts/exportsheet"
	script_import_csv "github.com/swhelper/siege-backend/cmd/app/cli/runscript/scripts/importcsv"
	script_migrate "github.com/swhelper/siege-backend/cmd/app/cli/runscript/scripts/migrate"
)

// depsFn defers building the fx graph until the subcommand actually runs.
func depsFn[T any]() func() T {
	return func() T {
		var deps T
		cliapp.Start(fx.Populate(&deps))
		return deps
	}
}

func Command() *cli.Command {
	return &cli.Command{
		Name:        "run-script",
		Description: "run maintenance go scripts",
		Subcommands: []*cli.Command{
			script_migrate.Command(depsFn[script_migrate.CommandDeps]()),
			script_import_csv.Command(depsFn[script_import_csv.CommandDeps]()),
			script_export_sheet.Command(depsFn[script_export_sheet.CommandDeps]()),
		},
	}
}
