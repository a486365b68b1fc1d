package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assistant_prompts.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("reads records in file order", func(t *testing.T) {
		path := writeSource(t, `[
  {"id": 7, "name": "Greeting", "instructions": "Say hi", "is_default": true, "created_at": "2024-01-01"},
  {"name": "Greeting", "instructions": "Say bye", "is_default": false},
  {"name": "Café ☕", "instructions": "It's <b>hot</b>", "is_default": false}
]`)

		got, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []Record{
			{Name: "Greeting", Instructions: "Say hi", IsDefault: true},
			{Name: "Greeting", Instructions: "Say bye"},
			{Name: "Café ☕", Instructions: "It's <b>hot</b>"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Load() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty array", func(t *testing.T) {
		got, err := Load(writeSource(t, `[]`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no records, got %d", len(got))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"syntax error", `[{"name": "A",}]`, ErrParse},
		{"truncated", `[{"name": "A"`, ErrParse},
		{"top-level object", `{"name": "A", "instructions": "x", "is_default": true}`, ErrParse},
		{"top-level null", `null`, ErrParse},
		{"missing name", `[{"instructions": "x", "is_default": true}]`, ErrFieldMissing},
		{"missing instructions", `[{"name": "A", "is_default": true}]`, ErrFieldMissing},
		{"missing is_default", `[{"name": "A", "instructions": "x"}]`, ErrFieldMissing},
		{"is_default as string", `[{"name": "A", "instructions": "x", "is_default": "true"}]`, ErrFieldMissing},
		{"name as number", `[{"name": 1, "instructions": "x", "is_default": false}]`, ErrFieldMissing},
		{"null element", `[null]`, ErrFieldMissing},
		{"invalid utf-8", "[{\"name\": \"Caf\xe9\", \"instructions\": \"x\", \"is_default\": false}]", ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParse_ReportsRecordIndex(t *testing.T) {
	_, err := Parse([]byte(`[
  {"name": "A", "instructions": "x", "is_default": false},
  {"name": "B", "is_default": false}
]`))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); len(got) < 8 || got[:8] != "record 1" {
		t.Errorf("expected error to start with record index, got %q", got)
	}
}

func TestExists(t *testing.T) {
	path := writeSource(t, `[]`)
	if !Exists(path) {
		t.Errorf("expected %s to exist", path)
	}
	if Exists(path + ".missing") {
		t.Error("expected missing path to report false")
	}
}
