// Package prompt loads assistant prompt records and resolves name collisions.
//
// Records flow through a strict pipeline:
//  1. Load reads an ordered JSON array of records from disk
//  2. Dedupe rewrites colliding names into a numbered family
//  3. The emitters (sqlscript, seedgen) serialize the deduplicated sequence
//
// Record order is the only meaningful order; nothing here sorts.
package prompt

// Record is one assistant prompt as it appears in the source document.
type Record struct {
	Name         string `json:"name" yaml:"name"`
	Instructions string `json:"instructions" yaml:"instructions"`
	IsDefault    bool   `json:"is_default" yaml:"is_default"`
}

// WithName returns a copy of r carrying a different name.
func (r Record) WithName(name string) Record {
	r.Name = name
	return r
}
