// Package stats implements the CLI actions for inspecting the run-stats
// database.
package stats

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	dbpkg "github.com/corpustools/wordfreq-builder/pkg/db"
)

// RunsAction lists recent pipeline runs.
func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("stats-db"))
	if err != nil {
		return fmt.Errorf("failed to open stats database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return nil
	}

	fmt.Printf("%-6s %-20s %-20s %-10s %-8s\n", "ID", "Command", "Started", "Finished", "Sources")
	fmt.Println(strings.Repeat("-", 70))
	for _, r := range runs {
		finished := "-"
		if r.FinishedAt != nil {
			finished = r.FinishedAt.Format("15:04:05")
		}
		fmt.Printf("%-6d %-20s %-20s %-10s %-8d\n",
			r.RunID,
			r.Command,
			r.StartedAt.Format("2006-01-02 15:04:05"),
			finished,
			r.Sources,
		)
	}
	return nil
}

// RunAction shows per-source counters for one run.
func RunAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: db run <run-id>")
	}
	var runID int64
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &runID); err != nil {
		return fmt.Errorf("invalid run ID %q", c.Args().First())
	}

	database, err := dbpkg.Open(c.String("stats-db"))
	if err != nil {
		return fmt.Errorf("failed to open stats database: %w", err)
	}
	defer database.Close()

	sources, err := database.RunSources(runID)
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}
	if len(sources) == 0 {
		fmt.Printf("No sources recorded for run %d\n", runID)
		return nil
	}

	fmt.Printf("%-40s %-10s %-10s %-10s %-12s\n", "Path", "Read", "Kept", "Skipped", "ParseErrors")
	fmt.Println(strings.Repeat("-", 90))
	for _, s := range sources {
		fmt.Printf("%-40s %-10d %-10d %-10d %-12d\n",
			s.Path, s.RecordsRead, s.RecordsKept, s.RecordsSkipped, s.ParseErrors)
	}
	return nil
}
