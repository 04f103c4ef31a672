package schema

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/roach88/wobos/internal/ir"
)

//go:embed defaults.csv
var defaultsCSV []byte

// ColumnCount is the fixed number of cells a variable row carries.
const ColumnCount = 5

// Column positions. The default is always the last cell of a row.
const (
	colDirection = iota
	colName
	colDescription
	colUnit
)

// CommentMarker starts a comment row.
const CommentMarker = "#"

// ReservedNames are vector-valued variables the flat exchange cannot carry.
var ReservedNames = []string{"arrayCables", "exportCables"}

// Row is one raw tabular row with its 1-based source line.
type Row struct {
	Line  int
	Cells []string
}

// Loader parses rows into records. The zero value is not usable; use New.
type Loader struct {
	bindings Bindings
}

// New creates a loader using bindings for enum classification.
func New(bindings Bindings) *Loader {
	return &Loader{bindings: bindings}
}

// Default parses the embedded variable table with the default bindings.
func Default() ([]ir.VariableRecord, error) {
	return New(DefaultBindings()).Load(bytes.NewReader(defaultsCSV))
}

// LoadFile parses the table at path.
func (l *Loader) LoadFile(path string) ([]ir.VariableRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(CodeReadFailed, err, 0, "", "open schema: %v", err)
	}
	defer f.Close()
	return l.Load(f)
}

// Load reads CSV from r and parses it. The first error stops the load;
// a partially loaded table is never returned.
func (l *Loader) Load(r io.Reader) ([]ir.VariableRecord, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return nil, err
	}
	return l.Parse(rows)
}

// ReadRows reads raw CSV rows, keeping source line numbers.
// Rows may have any number of cells.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows []Row
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newError(CodeReadFailed, err, 0, "", "read schema: %v", err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, Row{Line: line, Cells: cells})
	}
	return rows, nil
}

// Parse converts rows to records in order, skipping comment, blank and
// reserved rows.
func (l *Loader) Parse(rows []Row) ([]ir.VariableRecord, error) {
	records := make([]ir.VariableRecord, 0, len(rows))
	for _, row := range rows {
		rec, ok, err := l.parseRow(row)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// Skipped reports whether a row is filtered out before parsing.
func Skipped(cells []string) bool {
	if len(cells) == 0 {
		return true
	}
	first := strings.TrimSpace(cells[0])
	if first == "" || strings.HasPrefix(first, CommentMarker) {
		return true
	}
	if len(cells) > colName {
		name := strings.TrimSpace(cells[colName])
		if name == "" || slices.Contains(ReservedNames, name) {
			return true
		}
	}
	return false
}

func (l *Loader) parseRow(row Row) (ir.VariableRecord, bool, error) {
	if Skipped(row.Cells) {
		return ir.VariableRecord{}, false, nil
	}
	if len(row.Cells) < ColumnCount {
		return ir.VariableRecord{}, false, newError(CodeMalformedRow, ErrMalformedRow, row.Line, "",
			"expected at least %d cells, got %d", ColumnCount, len(row.Cells))
	}

	cells := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		cells[i] = strings.TrimSpace(c)
	}
	name := cells[colName]

	dir, ok := ir.ParseDirection(cells[colDirection])
	if !ok {
		return ir.VariableRecord{}, false, newError(CodeUnrecognizedDirection, ErrUnrecognizedDirection, row.Line, name,
			"variable %q: direction %q is neither INPUT nor OUTPUT", name, cells[colDirection])
	}

	raw := cells[len(cells)-1]
	kind, def, err := Classify(name, cells[colDescription], raw, l.bindings, row.Line)
	if err != nil {
		return ir.VariableRecord{}, false, err
	}

	return ir.VariableRecord{
		Direction:   dir,
		Name:        name,
		Description: cells[colDescription],
		Unit:        cells[colUnit],
		Kind:        kind,
		Default:     def,
		RawDefault:  raw,
		Line:        row.Line,
	}, true, nil
}

// FromStrings builds rows from in-memory cells, numbering lines from 1.
func FromStrings(rows ...[]string) []Row {
	out := make([]Row, len(rows))
	for i, cells := range rows {
		out[i] = Row{Line: i + 1, Cells: cells}
	}
	return out
}

// String renders a row for diagnostics.
func (r Row) String() string {
	return fmt.Sprintf("%d: %s", r.Line, strings.Join(r.Cells, ","))
}
