// Package preprocess implements the CLI actions that turn raw Reddit and
// Twitter dumps into language-tagged corpus files.
package preprocess

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/corpustools/wordfreq-builder/models"
	"github.com/corpustools/wordfreq-builder/pkg/banlist"
	"github.com/corpustools/wordfreq-builder/pkg/compressio"
	"github.com/corpustools/wordfreq-builder/pkg/db"
	"github.com/corpustools/wordfreq-builder/pkg/filter"
	"github.com/corpustools/wordfreq-builder/pkg/langid"
	"github.com/corpustools/wordfreq-builder/pkg/storage"
)

// recordFilter is the per-line processing either variant provides.
type recordFilter interface {
	Process(line string, lineNo int, stats *filter.Stats) (models.TaggedLine, bool)
}

// Job defines one archive for a worker to process.
type Job struct {
	Index int
	Input string
}

// Result holds the outcome of one processed archive.
type Result struct {
	Index  int
	Input  string
	Output string
	Stats  filter.Stats
	Error  error
}

// RedditAction preprocesses Reddit JSON-lines archives.
func RedditAction(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		return fmt.Errorf("no input archives given")
	}

	banned := banlist.Empty()
	if cfg.BannedGroupsFile != "" {
		banned, err = banlist.Load(cfg.BannedGroupsFile)
		if err != nil {
			return err
		}
		logger.Info().Int("groups", banned.Len()).Msg("loaded banned-group set")
	}

	detector := langid.New(cfg.MinConfidence)
	f := filter.NewRedditFilter(detector, banned, cfg.MajorityLanguage, logger)
	return runPipeline(c, cfg, logger, "preprocess-reddit", f, true)
}

// TwitterAction preprocesses collected tweet files (plain or compressed).
func TwitterAction(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		return fmt.Errorf("no input files given")
	}

	detector := langid.New(cfg.MinConfidence)
	f := filter.NewTwitterFilter(detector)
	return runPipeline(c, cfg, logger, "preprocess-twitter", f, false)
}

// setup resolves config and logging from CLI flags.
func setup(c *cli.Context) (models.Config, zerolog.Logger, error) {
	cfg := models.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = models.LoadConfig(path)
		if err != nil {
			return cfg, zerolog.Nop(), err
		}
	}
	if c.IsSet("workers") {
		cfg.WorkerCount = c.Int("workers")
	}
	if c.IsSet("banned-groups") {
		cfg.BannedGroupsFile = c.String("banned-groups")
	}
	if c.IsSet("majority-lang") {
		cfg.MajorityLanguage = c.String("majority-lang")
	}
	if c.IsSet("stats-db") {
		cfg.StatsDB = c.String("stats-db")
	}

	level := zerolog.InfoLevel
	if c.Bool("quiet") {
		level = zerolog.ErrorLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	return cfg, logger, nil
}

// runPipeline fans the input files out to workers and collects per-file
// stats. Each file is processed independently and writes its own output, so
// parallelism does not change any observable output.
func runPipeline(c *cli.Context, cfg models.Config, logger zerolog.Logger, command string, f recordFilter, compressedOnly bool) error {
	inputs := c.Args().Slice()
	files := &storage.Storage{}
	for _, input := range inputs {
		// A missing archive fails the run up front, before workers
		// have written partial outputs for the others.
		if !files.HasFile(input) {
			return fmt.Errorf("input does not exist: %s", input)
		}
	}
	outDir := c.String("out-dir")
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	jobs := make(chan Job, len(inputs))
	results := make(chan Result, len(inputs))

	var wg sync.WaitGroup
	workers := cfg.WorkerCount
	if workers > len(inputs) {
		workers = len(inputs)
	}
	if workers < 1 {
		workers = 1
	}
	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go worker(w, logger, f, compressedOnly, outDir, &wg, jobs, results)
	}
	for i, input := range inputs {
		jobs <- Job{Index: i, Input: input}
	}
	close(jobs)
	wg.Wait()
	close(results)

	// Reorder results to input order before reporting, so runs are
	// reproducible regardless of worker scheduling.
	ordered := make([]Result, len(inputs))
	for r := range results {
		ordered[r.Index] = r
	}

	var firstErr error
	for _, r := range ordered {
		if r.Error != nil {
			logger.Error().Str("input", r.Input).Err(r.Error).Msg("archive failed")
			if firstErr == nil {
				firstErr = r.Error
			}
			continue
		}
		logger.Info().
			Str("input", r.Input).
			Str("output", r.Output).
			Int("read", r.Stats.Read).
			Int("kept", r.Stats.Kept).
			Int("parse_errors", r.Stats.ParseErrors).
			Msg("archive done")
	}

	if cfg.StatsDB != "" {
		if err := recordRun(cfg.StatsDB, command, ordered); err != nil {
			logger.Error().Err(err).Msg("failed to record run stats")
		}
	}
	return firstErr
}

// worker processes jobs from the jobs channel and sends results to the
// results channel.
func worker(id int, logger zerolog.Logger, f recordFilter, compressedOnly bool, outDir string, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Debug().Int("worker", id).Str("input", job.Input).Msg("starting archive")
		out := outputPath(outDir, job.Input)
		stats, err := processFile(job.Input, out, f, compressedOnly)
		results <- Result{
			Index:  job.Index,
			Input:  job.Input,
			Output: out,
			Stats:  stats,
			Error:  err,
		}
	}
}

// processFile streams one input through the filter into its output file.
func processFile(input, output string, f recordFilter, compressedOnly bool) (filter.Stats, error) {
	var stats filter.Stats

	lines, closeLines, err := openLines(input, compressedOnly)
	if err != nil {
		return stats, err
	}
	defer closeLines()

	out, err := os.Create(output)
	if err != nil {
		return stats, fmt.Errorf("failed to create %s: %w", output, err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)

	lineNo := 0
	for lines.Scan() {
		lineNo++
		if tagged, ok := f.Process(lines.Text(), lineNo, &stats); ok {
			if _, err := fmt.Fprintf(w, "%s\n", tagged.String()); err != nil {
				return stats, fmt.Errorf("failed to write %s: %w", output, err)
			}
		}
	}
	if err := lines.Err(); err != nil {
		return stats, fmt.Errorf("failed reading %s: %w", input, err)
	}
	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("failed to flush %s: %w", output, err)
	}
	if err := out.Close(); err != nil {
		return stats, fmt.Errorf("failed to close %s: %w", output, err)
	}
	return stats, nil
}

// lineScanner is the part of a line stream processFile consumes.
type lineScanner interface {
	Scan() bool
	Text() string
	Err() error
}

type plainLines struct {
	*bufio.Scanner
	err error
}

func (p *plainLines) Err() error {
	if p.err != nil {
		return p.err
	}
	return p.Scanner.Err()
}

// openLines opens input as a line stream. Reddit dumps are always
// compressed; Twitter collections may be plain text, so unsupported
// extensions fall back to a plain read only in that mode.
func openLines(input string, compressedOnly bool) (lineScanner, func(), error) {
	if compressedOnly || compressio.IsSupported(input) {
		lr, err := compressio.Open(input)
		if err != nil {
			return nil, nil, err
		}
		return lr, func() { lr.Close() }, nil
	}
	fh, err := os.Open(input)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", input, err)
	}
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	return &plainLines{Scanner: sc}, func() { fh.Close() }, nil
}

// outputPath derives the tagged-corpus filename: input base name with the
// compression extension replaced by .txt.
func outputPath(outDir, input string) string {
	base := filepath.Base(input)
	for _, ext := range []string{".zst", ".zstd", ".xz", ".bz2"} {
		if strings.HasSuffix(base, ext) {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}
	if !strings.HasSuffix(base, ".txt") {
		base += ".txt"
	}
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	return filepath.Join(outDir, base)
}

// recordRun persists per-source counters for one pipeline invocation.
func recordRun(statsDB, command string, results []Result) error {
	sdb, err := db.Open(statsDB)
	if err != nil {
		return err
	}
	defer sdb.Close()

	runID, err := sdb.StartRun(command)
	if err != nil {
		return err
	}
	for _, r := range results {
		if err := sdb.RecordSource(runID, db.SourceStats{
			Path:           r.Input,
			RecordsRead:    r.Stats.Read,
			RecordsKept:    r.Stats.Kept,
			RecordsSkipped: r.Stats.Skipped(),
			ParseErrors:    r.Stats.ParseErrors,
		}); err != nil {
			return err
		}
	}
	return sdb.FinishRun(runID)
}
