// Package seedgen renders the TypeScript seed module that the application
// runs to import prompts through its own storage layer.
//
// The module embeds the deduplicated records as a literal table and defines
// seedAllPrompts, an idempotent import routine. The routine takes a single
// snapshot of existing prompts before the loop, skips names present in that
// snapshot, and counts per-record failures without aborting.
package seedgen

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/drzo/assistant-revival/internal/prompt"
)

//go:embed seed.ts.tmpl
var seedTemplateText string

var seedTemplate = template.Must(template.New("seed.ts").Parse(seedTemplateText))

const (
	DefaultSource        = "assistant_prompts.json"
	DefaultStorageName   = "assistantPromptStorage"
	DefaultStorageModule = "./storage"
	DefaultProgressEvery = 10
)

// Options controls the generated module's references.
type Options struct {
	// Source is the file name recorded in the header comment.
	Source string
	// StorageName is the storage object imported from StorageModule.
	StorageName   string
	StorageModule string
	// ProgressEvery is how many imports pass between progress lines.
	ProgressEvery int
}

func (o Options) withDefaults() Options {
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if o.StorageName == "" {
		o.StorageName = DefaultStorageName
	}
	if o.StorageModule == "" {
		o.StorageModule = DefaultStorageModule
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = DefaultProgressEvery
	}
	return o
}

// Result describes a written seed module.
type Result struct {
	Path    string `json:"path" yaml:"path"`
	Prompts int    `json:"prompts" yaml:"prompts"`
}

// Entry is one element of the embedded PROMPTS table.
type Entry struct {
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
	IsDefault    bool   `json:"isDefault"`
}

type templateData struct {
	Options
	Table string
}

// Write renders the seed module for records to w.
func Write(w io.Writer, records []prompt.Record, opts Options) error {
	table, err := EncodeTable(records)
	if err != nil {
		return err
	}
	return seedTemplate.Execute(w, templateData{Options: opts.withDefaults(), Table: table})
}

// WriteFile writes the seed module to path, creating parent directories as needed.
func WriteFile(path string, records []prompt.Record, opts Options) (Result, error) {
	var buf bytes.Buffer
	if err := Write(&buf, records, opts); err != nil {
		return Result{}, fmt.Errorf("failed to render seed module: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Result{}, fmt.Errorf("failed to write seed module: %w", err)
	}

	return Result{Path: path, Prompts: len(records)}, nil
}

// EncodeTable renders records as a 2-space indented JSON array with
// camel-cased keys. Non-ASCII and HTML characters are written verbatim.
func EncodeTable(records []prompt.Record) (string, error) {
	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = Entry{Name: r.Name, Instructions: r.Instructions, IsDefault: r.IsDefault}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return "", fmt.Errorf("failed to encode prompt table: %w", err)
	}

	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
