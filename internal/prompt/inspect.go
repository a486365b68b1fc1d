package prompt

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"
)

const previewLength = 100

// Inspection summarizes a loaded source document before any rewriting.
type Inspection struct {
	Total      int             `json:"total" yaml:"total"`
	Unique     int             `json:"unique" yaml:"unique"`
	Duplicates []DuplicateName `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
	Samples    []Sample        `json:"samples,omitempty" yaml:"samples,omitempty"`
}

// DuplicateName is a name that occurs more than once in the source.
type DuplicateName struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Sample is a short preview of one record.
type Sample struct {
	Name               string `json:"name" yaml:"name"`
	IsDefault          bool   `json:"is_default" yaml:"is_default"`
	InstructionsLength int    `json:"instructions_length" yaml:"instructions_length"`
	Preview            string `json:"preview" yaml:"preview"`
}

// Inspect counts names and previews the first sampleSize records.
// Duplicates are listed in the order their name first appears.
func Inspect(records []Record, sampleSize int) Inspection {
	counts := make(map[string]int, len(records))
	var order []string
	for _, r := range records {
		if counts[r.Name] == 0 {
			order = append(order, r.Name)
		}
		counts[r.Name]++
	}

	result := Inspection{
		Total:  len(records),
		Unique: len(counts),
	}

	for _, name := range order {
		if counts[name] > 1 {
			result.Duplicates = append(result.Duplicates, DuplicateName{Name: name, Count: counts[name]})
		}
	}

	if sampleSize > len(records) {
		sampleSize = len(records)
	}
	for _, r := range records[:max(sampleSize, 0)] {
		result.Samples = append(result.Samples, Sample{
			Name:               r.Name,
			IsDefault:          r.IsDefault,
			InstructionsLength: utf8.RuneCountInString(r.Instructions),
			Preview:            Truncate(r.Instructions, previewLength),
		})
	}

	return result
}

// Truncate returns the first n characters of s, counted in runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// WriteText prints the inspection as a short report.
func (in Inspection) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Loaded %d prompts\n", in.Total)
	fmt.Fprintf(bw, "Unique names: %d\n", in.Unique)

	if len(in.Duplicates) > 0 {
		fmt.Fprintf(bw, "\nDuplicate names (%d):\n", len(in.Duplicates))
		for _, d := range in.Duplicates {
			fmt.Fprintf(bw, "   - %q appears %d times\n", d.Name, d.Count)
		}
	}

	for i, s := range in.Samples {
		fmt.Fprintf(bw, "\nPrompt %d:\n", i+1)
		fmt.Fprintf(bw, "   Name: %s\n", s.Name)
		fmt.Fprintf(bw, "   Default: %t\n", s.IsDefault)
		fmt.Fprintf(bw, "   Instructions length: %d characters\n", s.InstructionsLength)
		fmt.Fprintf(bw, "   Preview: %s...\n", s.Preview)
	}

	return bw.Flush()
}
