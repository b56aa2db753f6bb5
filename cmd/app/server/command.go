package server

import "github.com/urfave/cli/v2"

func Command() *cli.Command {
	return &cli.Command{
		Name:    "server",
		Aliases: []string{"start"},
		Usage:   "serve the leaderboard API and run the ingest and export workers",
		Action: func(c *cli.Context) error {
			Run()
			return nil
		},
	}
}
