package prompt

import "fmt"

// Dedupe returns a copy of records in which repeated names are rewritten
// as "Name (2)", "Name (3)", ... in order of appearance.
//
// Suffix tracking is keyed on the original name only. A source record that
// already carries a literal "Name (2)" is not checked against generated
// names, so it may collide with one.
func Dedupe(records []Record) []Record {
	next := make(map[string]int, len(records))
	out := make([]Record, 0, len(records))

	for _, r := range records {
		n, seen := next[r.Name]
		if !seen {
			next[r.Name] = 2
			out = append(out, r)
			continue
		}
		next[r.Name] = n + 1
		out = append(out, r.WithName(fmt.Sprintf("%s (%d)", r.Name, n)))
	}

	return out
}

// DuplicateCount returns how many records share a name with an earlier record.
func DuplicateCount(records []Record) int {
	unique := make(map[string]struct{}, len(records))
	for _, r := range records {
		unique[r.Name] = struct{}{}
	}
	return len(records) - len(unique)
}
