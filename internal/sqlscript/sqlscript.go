// Package sqlscript renders prompt records as a SQL import script for the
// assistant_prompts table.
package sqlscript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/drzo/assistant-revival/internal/prompt"
)

// Table is the table every statement targets.
const Table = "assistant_prompts"

// annotationLength caps the name echoed in each statement's comment.
const annotationLength = 50

const header = `-- Assistant Prompts Import
-- Generated SQL INSERT statements

-- First, unset any existing default prompts
UPDATE ` + Table + ` SET is_default = false WHERE is_default = true;

`

// Result describes a written script.
type Result struct {
	Path       string `json:"path" yaml:"path"`
	Statements int    `json:"statements" yaml:"statements"`
}

// Write renders the script for records to w.
func Write(w io.Writer, records []prompt.Record) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(header); err != nil {
		return err
	}

	for i, r := range records {
		fmt.Fprintf(bw, "-- Prompt %d: %s...\n", i+1, annotation(r.Name))
		fmt.Fprintf(bw, "INSERT INTO %s (name, instructions, is_default, created_at, updated_at)\n", Table)
		bw.WriteString("VALUES (\n")
		fmt.Fprintf(bw, "  '%s',\n", Escape(r.Name))
		fmt.Fprintf(bw, "  '%s',\n", Escape(r.Instructions))
		fmt.Fprintf(bw, "  %t,\n", r.IsDefault)
		bw.WriteString("  CURRENT_TIMESTAMP,\n")
		bw.WriteString("  CURRENT_TIMESTAMP\n")
		bw.WriteString(");\n\n")
	}

	return bw.Flush()
}

// WriteFile writes the script to path, creating parent directories as needed.
func WriteFile(path string, records []prompt.Record) (Result, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create sql script: %w", err)
	}

	if err := Write(f, records); err != nil {
		f.Close()
		return Result{}, fmt.Errorf("failed to write sql script %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("failed to close sql script %s: %w", path, err)
	}

	return Result{Path: path, Statements: len(records)}, nil
}

// Escape doubles single quotes for use inside a SQL string literal.
func Escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// annotation keeps the comment on a single line.
func annotation(name string) string {
	name = prompt.Truncate(name, annotationLength)
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(name)
}
