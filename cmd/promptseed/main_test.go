package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drzo/assistant-revival/internal/generate"
	"github.com/drzo/assistant-revival/internal/importer"
	"github.com/drzo/assistant-revival/internal/prompt"
)

const greetingSource = `[
  {"name": "Greeting", "instructions": "Say hi", "is_default": true},
  {"name": "Greeting", "instructions": "Say bye", "is_default": false}
]`

// workspace moves into a fresh directory holding the source document and
// isolates config lookup from the real home directory.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	if err := os.WriteFile("assistant_prompts.json", []byte(greetingSource), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// execute runs the root command. Flags keep their values across runs in one
// process, so callers pass every flag they depend on.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeWithLogs(t, args...)
	return out, err
}

// executeWithLogs is execute that also returns what was written to stderr.
func executeWithLogs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&logs)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), logs.String(), err
}

func TestGenerateCommand(t *testing.T) {
	dir := workspace(t)

	out, err := execute(t,
		"--input", "assistant_prompts.json",
		"--sql-output", "out/import_prompts.sql",
		"--seed-output", "out/seed-all.ts",
		"-o", "json",
	)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	var report generate.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid json output: %v\n%s", err, out)
	}
	if report.Loaded != 2 || report.Duplicates != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
	if report.SQL == nil || report.Seed == nil {
		t.Fatalf("expected both artifacts, got %+v", report)
	}

	for _, name := range []string{"import_prompts.sql", "seed-all.ts"} {
		if _, err := os.Stat(filepath.Join(dir, "out", name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}
}

func TestGenerateCommand_MissingInput(t *testing.T) {
	workspace(t)

	_, err := execute(t,
		"--input", "missing.json",
		"--sql-output", "import_prompts.sql",
		"--seed-output", "seed-all.ts",
		"-o", "text",
	)
	if err == nil {
		t.Fatal("expected error for missing input")
	}
	if !strings.Contains(err.Error(), "input file not found: missing.json") {
		t.Errorf("unexpected error: %v", err)
	}
	if _, statErr := os.Stat("import_prompts.sql"); !os.IsNotExist(statErr) {
		t.Error("expected no sql output")
	}
}

func TestValidateCommand(t *testing.T) {
	workspace(t)

	out, err := execute(t, "validate", "--input", "assistant_prompts.json", "--samples", "1", "-o", "json")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	var in prompt.Inspection
	if err := json.Unmarshal([]byte(out), &in); err != nil {
		t.Fatalf("invalid json output: %v\n%s", err, out)
	}
	if in.Total != 2 || in.Unique != 1 || len(in.Duplicates) != 1 || len(in.Samples) != 1 {
		t.Errorf("unexpected inspection: %+v", in)
	}
}

func TestStructuredOutputQuietsInfoLogs(t *testing.T) {
	workspace(t)

	_, logs, err := executeWithLogs(t, "validate", "--input", "assistant_prompts.json", "-o", "text")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(logs, "source document is valid") {
		t.Errorf("expected info log in text mode, got %q", logs)
	}

	out, logs, err := executeWithLogs(t, "validate", "--input", "assistant_prompts.json", "-o", "json")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if logs != "" {
		t.Errorf("expected no info logs in json mode, got %q", logs)
	}
	if !json.Valid([]byte(out)) {
		t.Errorf("expected clean json on stdout, got %q", out)
	}
}

func TestValidateCommand_Invalid(t *testing.T) {
	workspace(t)
	if err := os.WriteFile("bad.json", []byte(`{"name": "x"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "validate", "--input", "bad.json", "-o", "text"); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestImportCommand(t *testing.T) {
	workspace(t)
	args := []string{"import", "--input", "assistant_prompts.json", "--driver", "sqlite", "--dsn", "prompts.db", "-o", "json"}

	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	var first importer.Summary
	if err := json.Unmarshal([]byte(out), &first); err != nil {
		t.Fatalf("invalid json output: %v\n%s", err, out)
	}
	if first != (importer.Summary{Imported: 2, Total: 2}) {
		t.Errorf("first import: %+v", first)
	}

	out, err = execute(t, args...)
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	var second importer.Summary
	if err := json.Unmarshal([]byte(out), &second); err != nil {
		t.Fatalf("invalid json output: %v\n%s", err, out)
	}
	if second != (importer.Summary{Skipped: 2, Total: 2}) {
		t.Errorf("second import: %+v", second)
	}
}

func TestConfigInitCommand(t *testing.T) {
	workspace(t)

	out, err := execute(t, "config", "init", "custom.yaml", "-o", "text")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, "Wrote default config to custom.yaml") {
		t.Errorf("unexpected output: %q", out)
	}

	data, err := os.ReadFile("custom.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "sql_output: import_prompts.sql") {
		t.Errorf("expected defaults in config file:\n%s", data)
	}

	if _, err := execute(t, "config", "init", "custom.yaml", "-o", "text"); err == nil {
		t.Error("expected refusal to overwrite existing file")
	}
}

func TestConfigInitCommand_Global(t *testing.T) {
	dir := workspace(t)

	if _, err := execute(t, "config", "init", "--global", "-o", "text"); err != nil {
		t.Fatalf("config init --global failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".promptseed", "promptseed.yaml")); err != nil {
		t.Errorf("expected config in home directory: %v", err)
	}

	if _, err := execute(t, "config", "init", "--global", "-o", "text"); err == nil {
		t.Error("expected refusal to overwrite the global config")
	}

	// The global file is picked up by later runs.
	if _, err := execute(t, "validate", "--input", "assistant_prompts.json", "-o", "text"); err != nil {
		t.Errorf("validate with global config failed: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	workspace(t)

	out, err := execute(t, "version", "-o", "text")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "promptseed ") || !strings.Contains(out, "Commit:") {
		t.Errorf("unexpected output: %q", out)
	}
}
