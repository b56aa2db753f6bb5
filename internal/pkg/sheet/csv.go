package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const CSVExt = ".csv"

const utf8BOM = "\ufeff"

// ReadCSV parses a CSV export into a Table. The first record is the header;
// an input with no records yields a Table with neither header nor rows.
func ReadCSV(r io.Reader, name string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	table := &Table{Name: name}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, errors.Wrapf(err, "failed to parse sheet %q", name)
		}

		if table.Header == nil {
			if len(record) > 0 {
				record[0] = strings.TrimPrefix(record[0], utf8BOM)
			}
			table.Header = record
			continue
		}

		row := make([]any, len(record))
		for i, v := range record {
			row[i] = v
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// WriteCSV renders t as CSV, header first. nil cells are written as empty fields.
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Header); err != nil {
		return err
	}

	record := make([]string, 0, len(t.Header))
	for _, row := range t.Rows {
		record = record[:0]
		for _, cell := range row {
			if cell == nil {
				record = append(record, "")
			} else {
				record = append(record, fmt.Sprint(cell))
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// DirProvider serves `<Dir>/<name>.csv` files as sheets.
type DirProvider struct {
	Dir string
}

func (p *DirProvider) Table(ctx context.Context, name string) (*Table, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, errors.Wrapf(ErrSheetNotFound, "invalid sheet name %q", name)
	}

	path := filepath.Join(p.Dir, name+CSVExt)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrSheetNotFound, "no such file %q", path)
		}
		return nil, errors.Wrapf(err, "failed to open sheet %q", path)
	}
	defer f.Close()

	log.Trace().
		Str("evt.name", "sheet.read").
		Str("path", path).
		Msg("reading csv sheet")

	return ReadCSV(f, name)
}
