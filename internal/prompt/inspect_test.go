package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInspect(t *testing.T) {
	records := []Record{
		{Name: "B", Instructions: "short", IsDefault: true},
		{Name: "A", Instructions: strings.Repeat("é", 150)},
		{Name: "B", Instructions: "again"},
		{Name: "A", Instructions: "again"},
		{Name: "B", Instructions: "third"},
		{Name: "C", Instructions: "solo"},
	}

	got := Inspect(records, 2)

	if got.Total != 6 || got.Unique != 3 {
		t.Errorf("expected total=6 unique=3, got total=%d unique=%d", got.Total, got.Unique)
	}

	wantDups := []DuplicateName{{Name: "B", Count: 3}, {Name: "A", Count: 2}}
	if diff := cmp.Diff(wantDups, got.Duplicates); diff != "" {
		t.Errorf("duplicates mismatch (-want +got):\n%s", diff)
	}

	if len(got.Samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got.Samples))
	}
	if got.Samples[1].InstructionsLength != 150 {
		t.Errorf("expected length counted in characters, got %d", got.Samples[1].InstructionsLength)
	}
	if got.Samples[1].Preview != strings.Repeat("é", 100) {
		t.Errorf("expected 100-character preview, got %q", got.Samples[1].Preview)
	}
	if !got.Samples[0].IsDefault {
		t.Error("expected first sample to be default")
	}
}

func TestInspect_SampleSizeClamped(t *testing.T) {
	got := Inspect([]Record{{Name: "A"}}, 5)
	if len(got.Samples) != 1 {
		t.Errorf("expected 1 sample, got %d", len(got.Samples))
	}
	if got.Duplicates != nil {
		t.Errorf("expected no duplicates, got %v", got.Duplicates)
	}

	if got := Inspect([]Record{{Name: "A"}}, -1); len(got.Samples) != 0 {
		t.Errorf("expected no samples for negative size, got %d", len(got.Samples))
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"日本語テキスト", 3, "日本語"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestInspection_WriteText(t *testing.T) {
	in := Inspect([]Record{
		{Name: "Greeting", Instructions: "Say hi", IsDefault: true},
		{Name: "Greeting", Instructions: "Say bye"},
	}, 1)

	var buf bytes.Buffer
	if err := in.WriteText(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Loaded 2 prompts\n",
		"Unique names: 1\n",
		"\"Greeting\" appears 2 times",
		"Prompt 1:\n   Name: Greeting\n   Default: true\n   Instructions length: 6 characters\n   Preview: Say hi...\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Prompt 2:") {
		t.Error("expected only one sample")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestInspection_WriteTextReportsWriteError(t *testing.T) {
	in := Inspect([]Record{{Name: "Greeting", Instructions: "Say hi"}}, 0)
	if err := in.WriteText(failingWriter{}); err == nil {
		t.Error("expected write error with no samples")
	}
}
