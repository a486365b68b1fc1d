// Package output renders command reports for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format defines the output format for CLI commands.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DefaultFormat is the default output format.
var DefaultFormat = FormatText

// TextWriter is implemented by reports that have a human-readable form.
type TextWriter interface {
	WriteText(w io.Writer) error
}

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatYAML, FormatJSON:
		return Format(s), nil
	case "":
		return DefaultFormat, nil
	default:
		return "", fmt.Errorf("unknown output format: %s (want text, yaml or json)", s)
	}
}

// Write renders data to w in the given format. In text mode, data that
// does not implement TextWriter falls back to YAML.
func Write(w io.Writer, format Format, data any) error {
	switch format {
	case FormatText:
		if tw, ok := data.(TextWriter); ok {
			return tw.WriteText(w)
		}
		return Write(w, FormatYAML, data)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// IsStructured reports whether format is machine-readable. Commands log
// only warnings by default when it is.
func IsStructured(format Format) bool {
	return format == FormatJSON || format == FormatYAML
}
