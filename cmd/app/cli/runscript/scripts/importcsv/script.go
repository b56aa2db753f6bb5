package script_import_csv

import (
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/felixge/fgprof"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/swhelper/siege-backend/internal/pkg/sheet"
)

func serveProfile() {
	http.DefaultServeMux.Handle("/debug/fgprof", fgprof.Handler())
	go func() {
		log.Print(http.ListenAndServe("127.0.0.1:6060", nil))
	}()
}

func run(ctx *cli.Context, deps CommandDeps, path string) error {
	log.Info().Str("file", path).Msg("running script")

	mutex := deps.Locker.Mutex("import-csv", 30*time.Minute, 1)
	if err := mutex.LockContext(ctx.Context); err != nil {
		return errors.Wrap(err, "another import is running")
	}
	defer mutex.UnlockContext(ctx.Context)

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "failed to open csv file")
	}
	defer f.Close()

	table, err := sheet.ReadCSV(f, deps.Config.SheetName)
	if err != nil {
		return err
	}

	n, err := deps.SiegeLogService.ImportTable(ctx.Context, table)
	if err != nil {
		return errors.Wrap(err, "failed to import table")
	}

	log.Info().Int("imported", n).Msg("script finished")

	return nil
}
