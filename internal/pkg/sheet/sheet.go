// Package sheet models spreadsheet-like battle log sources: a named, rectangular
// table whose first row is a header. Cells keep whatever primitive type the source
// produced; callers coerce them to text before comparing.
package sheet

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrSheetNotFound is returned by a Provider when no sheet with the requested name exists.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrNoData is returned when a sheet exists but holds no data rows below its header.
	ErrNoData = errors.New("sheet has no data rows")
)

type Table struct {
	Name   string   `msgpack:"name" json:"name"`
	Header []string `msgpack:"header" json:"header"`
	Rows   [][]any  `msgpack:"rows" json:"rows"`
}

// Provider reads a whole sheet into memory.
type Provider interface {
	Table(ctx context.Context, name string) (*Table, error)
}

// ProviderFunc adapts a function to a Provider.
type ProviderFunc func(ctx context.Context, name string) (*Table, error)

func (f ProviderFunc) Table(ctx context.Context, name string) (*Table, error) {
	return f(ctx, name)
}

// Cell returns the value at column idx of row, or nil when the row is too short
// or idx is negative (an unresolved optional column).
func Cell(row []any, idx int) any {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}
