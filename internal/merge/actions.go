// Package merge implements the CLI action that combines per-source count
// files into one normalized frequency list.
package merge

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/corpustools/wordfreq-builder/pkg/db"
	"github.com/corpustools/wordfreq-builder/pkg/storage"
	"github.com/corpustools/wordfreq-builder/pkg/wordfreq"
)

// Action reads the count files given as arguments, in order, merges them
// with the median strategy, and writes the ranked list to --output.
//
// Argument order matters: the merger's low-evidence handling gives the first
// two silent sources the zero slots, so reordering inputs can change which
// marginal words survive.
func Action(c *cli.Context) error {
	level := zerolog.InfoLevel
	if c.Bool("quiet") {
		level = zerolog.ErrorLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	if c.NArg() == 0 {
		return fmt.Errorf("no count files given")
	}
	output := c.String("output")
	if output == "" {
		return fmt.Errorf("--output is required")
	}

	paths := c.Args().Slice()
	sources, err := wordfreq.ReadCountFiles(paths)
	if err != nil {
		return err
	}
	for i, src := range sources {
		logger.Info().Str("source", paths[i]).Int("words", len(src)).Msg("parsed count file")
	}

	merged := wordfreq.Merge(sources)
	entries := wordfreq.Rank(merged)
	logger.Info().Int("kept", len(merged)).Msg("merged sources")

	var buf bytes.Buffer
	if err := wordfreq.Write(&buf, entries); err != nil {
		return fmt.Errorf("failed to serialize merged list: %w", err)
	}
	s := &storage.Storage{}
	if err := s.SaveFile(output, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to save %s: %w", output, err)
	}
	if fs, err := s.GetFileStats(output); err == nil {
		logger.Info().Str("output", output).Int64("bytes", fs.SizeBytes).Msg("wrote merged frequency list")
	} else {
		logger.Info().Str("output", output).Msg("wrote merged frequency list")
	}

	if statsDB := c.String("stats-db"); statsDB != "" {
		if err := recordRun(statsDB, paths, sources, len(merged)); err != nil {
			logger.Error().Err(err).Msg("failed to record run stats")
		}
	}
	return nil
}

// recordRun logs per-source vocabulary sizes and the kept-word count.
func recordRun(statsDB string, paths []string, sources []wordfreq.FrequencyMap, kept int) error {
	sdb, err := db.Open(statsDB)
	if err != nil {
		return err
	}
	defer sdb.Close()

	runID, err := sdb.StartRun("merge")
	if err != nil {
		return err
	}
	for i, path := range paths {
		if err := sdb.RecordSource(runID, db.SourceStats{
			Path:        path,
			RecordsRead: len(sources[i]),
			RecordsKept: kept,
		}); err != nil {
			return err
		}
	}
	return sdb.FinishRun(runID)
}
