// Package importer runs the idempotent prompt import against a prompt store.
//
// It mirrors the seedAllPrompts routine emitted by seedgen: one snapshot of
// existing prompts is taken before the loop, records whose name is already
// in that snapshot are skipped, and a failure to create one record is
// counted without stopping the batch. Prompts created during the run are not
// added to the snapshot.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/drzo/assistant-revival/internal/prompt"
	"github.com/drzo/assistant-revival/internal/store"
)

// DefaultProgressEvery is how many imports pass between progress log lines.
const DefaultProgressEvery = 10

// Storage is the subset of the prompt store the importer needs.
type Storage interface {
	ListPrompts(ctx context.Context) ([]store.AssistantPrompt, error)
	CreatePrompt(ctx context.Context, name, instructions string, isDefault bool) (*store.AssistantPrompt, error)
}

// Summary counts the outcome of an import.
type Summary struct {
	Imported int `json:"imported" yaml:"imported"`
	Skipped  int `json:"skipped" yaml:"skipped"`
	Errors   int `json:"errors" yaml:"errors"`
	Total    int `json:"total" yaml:"total"`
}

// WriteText prints the summary in the same shape as the seed module's report.
func (s Summary) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, `Import Summary:
   Successfully imported: %d
   Skipped (duplicates): %d
   Errors: %d
   Total processed: %d
`, s.Imported, s.Skipped, s.Errors, s.Total)
	return err
}

// Options configures an Importer.
type Options struct {
	ProgressEvery int
	Logger        *slog.Logger
}

// Importer loads records into a Storage.
type Importer struct {
	storage       Storage
	progressEvery int
	logger        *slog.Logger
}

// New creates an importer for storage.
func New(storage Storage, opts Options) *Importer {
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Importer{
		storage:       storage,
		progressEvery: opts.ProgressEvery,
		logger:        opts.Logger,
	}
}

// Run imports records in order. It returns an error only when the initial
// snapshot cannot be read or ctx is cancelled; in the latter case the
// summary covers the records processed so far.
func (im *Importer) Run(ctx context.Context, records []prompt.Record) (Summary, error) {
	summary := Summary{Total: len(records)}
	im.logger.Info("starting import of assistant prompts", "total", len(records))

	existing, err := im.storage.ListPrompts(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to read existing prompts: %w", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		known[p.Name] = struct{}{}
	}

	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if _, dup := known[r.Name]; dup {
			im.logger.Debug("skipping duplicate", "name", r.Name)
			summary.Skipped++
			continue
		}

		if _, err := im.storage.CreatePrompt(ctx, r.Name, r.Instructions, r.IsDefault); err != nil {
			im.logger.Warn("error importing prompt", "name", r.Name, "error", err)
			summary.Errors++
			continue
		}

		summary.Imported++
		if summary.Imported%im.progressEvery == 0 {
			im.logger.Info("import progress", "imported", summary.Imported)
		}
	}

	im.logger.Info("import finished",
		"imported", summary.Imported,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
		"total", summary.Total)

	return summary, nil
}
