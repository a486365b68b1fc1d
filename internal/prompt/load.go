package prompt

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed record.schema.json
var recordSchemaJSON []byte

var recordSchema = mustCompileRecordSchema()

func mustCompileRecordSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource("record.schema.json", bytes.NewReader(recordSchemaJSON)); err != nil {
		panic(fmt.Sprintf("load record schema: %v", err))
	}
	return compiler.MustCompile("record.schema.json")
}

// Exists reports whether the source document is present.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads the JSON document at path and returns its records in file order.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a UTF-8 JSON array of records. Each element must carry name,
// instructions and is_default; any other fields are ignored.
func Parse(data []byte) ([]Record, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: document is not valid UTF-8", ErrParse)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON array, got %s", ErrParse, jsonKind(doc))
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		if err := recordSchema.Validate(item); err != nil {
			return nil, fmt.Errorf("record %d: %w: %v", i, ErrFieldMissing, err)
		}
		fields := item.(map[string]any)
		records = append(records, Record{
			Name:         fields["name"].(string),
			Instructions: fields["instructions"].(string),
			IsDefault:    fields["is_default"].(bool),
		})
	}

	return records, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
