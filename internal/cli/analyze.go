package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/logsheet/logsheet/internal/iislog"
	"github.com/logsheet/logsheet/internal/report"
)

// AnalyzeCmd runs the full pipeline over one or more log files and exports
// an XLSX report per file.
type AnalyzeCmd struct {
	Files      []string `arg:"" required:"" type:"existingfile" help:"IIS log files to analyze"`
	Output     string   `short:"o" help:"Output path: an .xlsx file (single input) or an existing directory"`
	Jobs       int      `short:"j" help:"Max files analyzed concurrently (default from config)"`
	NoProgress bool     `help:"Disable progress notifications"`
}

// Run executes the analyze command. Files are fanned out across a bounded
// worker group; each file's pipeline itself runs synchronously.
func (c *AnalyzeCmd) Run(globals *Globals) error {
	jobs := c.Jobs
	if jobs <= 0 {
		jobs = globals.Config.Defaults.Concurrency
	}
	if jobs <= 0 {
		jobs = 1
	}

	if len(c.Files) > 1 && c.Output != "" {
		info, err := os.Stat(c.Output)
		if err != nil || !info.IsDir() {
			return outputErrorCommon(globals, "BAD_OUTPUT",
				"--output must be an existing directory when analyzing multiple files")
		}
	}

	writer := report.NewNDJSONWriter(globals.Stdout)
	var mu sync.Mutex // serializes all emission across workers
	var failures int

	group, _ := errgroup.WithContext(context.Background())
	group.SetLimit(jobs)

	for _, file := range c.Files {
		file := file
		group.Go(func() error {
			if err := c.analyzeFile(globals, writer, &mu, file); err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
			}
			// one bad file never stops the rest
			return nil
		})
	}
	group.Wait()

	if failures > 0 {
		return &CLIError{
			Code:    "ANALYZE_FAILED",
			Message: fmt.Sprintf("%d of %d files failed", failures, len(c.Files)),
		}
	}
	return nil
}

func (c *AnalyzeCmd) analyzeFile(globals *Globals, writer *report.NDJSONWriter, mu *sync.Mutex, path string) error {
	logger := globals.Logger().With(zap.String("file", path))
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return c.fail(globals, mu, "FILE_NOT_FOUND", fmt.Sprintf("cannot read %s: %v", path, err))
	}

	opts := iislog.Options{Strict: globals.Strict, Logger: logger}
	if !c.NoProgress && !globals.Quiet && globals.Format == "ndjson" {
		throttle := iislog.NewProgressThrottle(func(line, total int) {
			mu.Lock()
			writer.WriteProgress(path, line, total)
			mu.Unlock()
		}, globals.Config.ProgressInterval())
		opts.Progress = throttle.Tick
	}

	res, err := runPipeline(data, opts)
	if err != nil {
		return c.fail(globals, mu, errorCode(err), fmt.Sprintf("%s: %v", path, err))
	}

	outPath := c.outputPath(globals, path)
	out, err := os.Create(outPath)
	if err != nil {
		return c.fail(globals, mu, "FILE_WRITE", fmt.Sprintf("cannot create %s: %v", outPath, err))
	}
	werr := report.WriteWorkbook(out, res.report)
	if cerr := out.Close(); werr == nil && cerr != nil {
		werr = &report.ExportError{Err: cerr}
	}
	if werr != nil {
		// no partial report on fatal failure
		os.Remove(outPath)
		return c.fail(globals, mu, errorCode(werr), fmt.Sprintf("%s: %v", path, werr))
	}

	mu.Lock()
	defer mu.Unlock()
	emitDiagnostics(globals, writer, res.diagnostics)

	sheets := report.Sheets(res.report)
	if globals.Format == "ndjson" {
		writer.WriteResult(report.ResultOutput{
			File:         path,
			Rows:         res.table.Len(),
			SkippedLines: res.skipped,
			Output:       outPath,
			Sheets:       sheets,
			Clean:        len(res.diagnostics) == 0,
		})
	} else if !globals.Quiet {
		outcome := "processed cleanly"
		if res.skipped > 0 {
			outcome = fmt.Sprintf("processed with %d skipped lines", res.skipped)
		}
		if styledOutput(globals) {
			outcome = report.OutcomeText(res.skipped) + " " + outcome
		}
		fmt.Fprintf(globals.Stdout, "%s: %d rows, %s -> %s (%d sheets)\n",
			path, res.table.Len(), outcome, outPath, len(sheets))
	}

	logger.Debug("analyze finished",
		zap.Int("rows", res.table.Len()),
		zap.Int("skipped", res.skipped),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (c *AnalyzeCmd) fail(globals *Globals, mu *sync.Mutex, code, message string) error {
	mu.Lock()
	defer mu.Unlock()
	return outputErrorCommon(globals, code, message)
}

// outputPath decides where a file's workbook lands: --output wins, then the
// configured output directory, then the input file's own directory.
func (c *AnalyzeCmd) outputPath(globals *Globals, file string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + ".xlsx"

	if c.Output != "" {
		if info, err := os.Stat(c.Output); err == nil && info.IsDir() {
			return filepath.Join(c.Output, base)
		}
		return c.Output
	}
	if dir := globals.Config.Defaults.OutputDir; dir != "" {
		return filepath.Join(dir, base)
	}
	return filepath.Join(filepath.Dir(file), base)
}
