package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/corpustools/wordfreq-builder/internal/merge"
	"github.com/corpustools/wordfreq-builder/internal/preprocess"
	"github.com/corpustools/wordfreq-builder/internal/stats"
)

func main() {
	app := &cli.App{
		Name:  "wordfreq-builder",
		Usage: "build cleaned, language-tagged, frequency-ranked word lists from social-media dumps",
		Commands: []*cli.Command{
			{
				Name:  "preprocess",
				Usage: "turn raw dumps into language-tagged corpus files",
				Subcommands: []*cli.Command{
					{
						Name:      "reddit",
						Usage:     "preprocess compressed Reddit JSON-lines archives",
						ArgsUsage: "<archive.zst|.xz|.bz2> ...",
						Flags:     preprocessFlags(),
						Action:    preprocess.RedditAction,
					},
					{
						Name:      "twitter",
						Usage:     "preprocess collected tweet files (plain or compressed)",
						ArgsUsage: "<file> ...",
						Flags:     preprocessFlags(),
						Action:    preprocess.TwitterAction,
					},
				},
			},
			{
				Name:      "merge",
				Usage:     "merge per-source count files into one frequency list",
				ArgsUsage: "<counts.txt> ...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "merged wordlist path", Required: true},
					&cli.StringFlag{Name: "stats-db", Usage: "record run stats in this SQLite file"},
					&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
				},
				Action: merge.Action,
			},
			{
				Name:  "db",
				Usage: "inspect recorded run statistics",
				Subcommands: []*cli.Command{
					{
						Name:  "runs",
						Usage: "list recent runs",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "stats-db", Usage: "stats SQLite file", Required: true},
							&cli.IntFlag{Name: "limit", Value: 20},
						},
						Action: stats.RunsAction,
					},
					{
						Name:      "run",
						Usage:     "show per-source counters for a run",
						ArgsUsage: "<run-id>",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "stats-db", Usage: "stats SQLite file", Required: true},
						},
						Action: stats.RunAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func preprocessFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "YAML config file"},
		&cli.StringFlag{Name: "out-dir", Usage: "directory for tagged corpus files (default: next to inputs)"},
		&cli.IntFlag{Name: "workers", Usage: "archives processed in parallel"},
		&cli.StringFlag{Name: "banned-groups", Usage: "banned-group hash list file"},
		&cli.StringFlag{Name: "majority-lang", Usage: "majority language code (stricter score gate)"},
		&cli.StringFlag{Name: "stats-db", Usage: "record run stats in this SQLite file"},
		&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
	}
}
