package topdecks

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/swhelper/siege-backend/internal/model"
	"github.com/swhelper/siege-backend/internal/pkg/sheet"
	"github.com/swhelper/siege-backend/internal/service"
)

// Command prints the offense deck grid of a wizard straight from a directory of CSV
// exports, without any of the server infrastructure.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "top-decks",
		Usage: "print the top offense decks of a wizard from CSV exports",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "directory holding <sheet>.csv",
				Value: "data",
			},
			&cli.StringFlag{
				Name:  "sheet",
				Usage: "battle log sheet name",
				Value: "SiegeLogs",
			},
			&cli.StringFlag{
				Name:     "wizard",
				Aliases:  []string{"w"},
				Usage:    "wizard whose decks are ranked",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "number of decks to print",
				Value: model.DefaultDeckLimit,
			},
		},
		Action: func(c *cli.Context) error {
			s := &service.OffenseDeck{
				BattleLog: &service.BattleLog{
					SheetName: c.String("sheet"),
					Sheets:    &sheet.DirProvider{Dir: c.String("dir")},
				},
				DefaultLimit: model.DefaultDeckLimit,
			}

			grid := s.TopOffenseDecksGrid(c.Context, c.String("wizard"), c.Int("limit"))

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(grid)
		},
	}
}
