package prompt

import "errors"

var (
	// ErrNotFound is returned when the source document does not exist.
	ErrNotFound = errors.New("prompt source not found")

	// ErrParse is returned when the source document is not a JSON array.
	ErrParse = errors.New("malformed prompt document")

	// ErrFieldMissing is returned when a record lacks a required field
	// or holds a value of the wrong type for it.
	ErrFieldMissing = errors.New("required field missing or invalid")
)
