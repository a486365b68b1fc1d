// Package generate runs the batch pipeline: load the source document,
// deduplicate names, then write the SQL script and the seed module.
package generate

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/drzo/assistant-revival/internal/prompt"
	"github.com/drzo/assistant-revival/internal/seedgen"
	"github.com/drzo/assistant-revival/internal/sqlscript"
)

// Options configures a pipeline run.
type Options struct {
	Input      string
	SQLOutput  string
	SeedOutput string
	Seed       seedgen.Options
	Logger     *slog.Logger
}

// Report describes a finished run. SQL or Seed is nil when that emitter failed.
type Report struct {
	Input      string            `json:"input" yaml:"input"`
	Loaded     int               `json:"loaded" yaml:"loaded"`
	Duplicates int               `json:"duplicates" yaml:"duplicates"`
	SQL        *sqlscript.Result `json:"sql,omitempty" yaml:"sql,omitempty"`
	Seed       *seedgen.Result   `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Run executes the pipeline. The two emitters run independently: a failure
// writing one artifact does not prevent writing the other, and both errors
// are returned joined.
func Run(ctx context.Context, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if !prompt.Exists(opts.Input) {
		return nil, fmt.Errorf("%w: %s", prompt.ErrNotFound, opts.Input)
	}

	logger.Info("loading prompts", "path", opts.Input)
	records, err := prompt.Load(opts.Input)
	if err != nil {
		return nil, err
	}
	report := &Report{Input: opts.Input, Loaded: len(records)}

	logger.Debug("deduplicating prompt names", "records", len(records))
	deduped := prompt.Dedupe(records)
	report.Duplicates = prompt.DuplicateCount(records)
	if report.Duplicates > 0 {
		logger.Warn("renamed duplicate names with suffixes", "duplicates", report.Duplicates)
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	var errs []error

	sqlRes, err := sqlscript.WriteFile(opts.SQLOutput, deduped)
	if err != nil {
		logger.Error("sql script not written", "path", opts.SQLOutput, "error", err)
		errs = append(errs, err)
	} else {
		report.SQL = &sqlRes
		logger.Debug("wrote sql script", "path", sqlRes.Path, "statements", sqlRes.Statements)
	}

	seedOpts := opts.Seed
	if seedOpts.Source == "" {
		seedOpts.Source = filepath.Base(opts.Input)
	}
	seedRes, err := seedgen.WriteFile(opts.SeedOutput, deduped, seedOpts)
	if err != nil {
		logger.Error("seed module not written", "path", opts.SeedOutput, "error", err)
		errs = append(errs, err)
	} else {
		report.Seed = &seedRes
		logger.Debug("wrote seed module", "path", seedRes.Path, "prompts", seedRes.Prompts)
	}

	return report, errors.Join(errs...)
}

// WriteText prints the human-readable run summary and next steps.
func (r *Report) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Loaded %d prompts from %s\n", r.Loaded, r.Input)
	if r.Duplicates > 0 {
		fmt.Fprintf(bw, "Found %d duplicate name(s), renamed with suffixes\n", r.Duplicates)
	}
	fmt.Fprintln(bw)

	if r.SQL != nil {
		fmt.Fprintf(bw, "Generated SQL file: %s\n", r.SQL.Path)
		fmt.Fprintf(bw, "   Total statements: %d\n", r.SQL.Statements)
	}
	if r.Seed != nil {
		fmt.Fprintf(bw, "Generated TypeScript seed file: %s\n", r.Seed.Path)
		fmt.Fprintf(bw, "   Total prompts: %d\n", r.Seed.Prompts)
	}
	if r.SQL != nil && r.Seed != nil {
		fmt.Fprintf(bw, `
Next steps:
   1. Review the generated files:
      - %s (for direct database import)
      - %s (for app-level import)
   2. To import via SQL: psql <database> < %s
   3. To import via app: call seedAllPrompts() during server startup
`, r.SQL.Path, r.Seed.Path, r.SQL.Path)
	}

	return bw.Flush()
}
