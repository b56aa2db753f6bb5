package sheet

import (
	"strings"
)

// MissingColumnsError lists required header fields that a sheet does not carry.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

// Index returns the position of the first header cell equal to field, or -1.
func (t *Table) Index(field string) int {
	for i, h := range t.Header {
		if h == field {
			return i
		}
	}
	return -1
}

// ResolveColumns looks every field up in the header once. The returned positions
// are in the same order as fields. When any field is absent a *MissingColumnsError
// naming all absent fields is returned.
func (t *Table) ResolveColumns(fields ...string) ([]int, error) {
	positions := make([]int, len(fields))
	var missing []string
	for i, field := range fields {
		positions[i] = t.Index(field)
		if positions[i] == -1 {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}
	return positions, nil
}

// ResolveOptional is like ResolveColumns but never fails: absent fields resolve to -1.
func (t *Table) ResolveOptional(fields ...string) []int {
	positions := make([]int, len(fields))
	for i, field := range fields {
		positions[i] = t.Index(field)
	}
	return positions
}
