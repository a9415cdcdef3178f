package moxfield

import (
	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-moxfield/internal/parser"
)

// Record is one data row of an export, keyed by header name.
//
// Only columns that the row actually reached are present: a row shorter than
// the header leaves its trailing columns absent, and fields beyond the header
// are dropped. A Record is immutable once built.
type Record struct {
	columns []string
	values  map[string]string
}

// NewRecord zips header names with row values.
//
// When a header name repeats, the later value wins and the column keeps its
// first position.
func NewRecord(headers, values []string) Record {
	n := len(headers)
	if len(values) < n {
		n = len(values)
	}

	r := Record{
		columns: make([]string, 0, n),
		values:  make(map[string]string, n),
	}
	for i := 0; i < n; i++ {
		name := headers[i]
		if _, seen := r.values[name]; !seen {
			r.columns = append(r.columns, name)
		}
		r.values[name] = values[i]
	}
	return r
}

// Get returns the value of column and whether the row has that column.
func (r Record) Get(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Value returns the value of column, or "" when it is absent.
func (r Record) Value(column string) string {
	return r.values[column]
}

// Columns returns the present column names in header order.
func (r Record) Columns() []string {
	columns := make([]string, len(r.columns))
	copy(columns, r.columns)
	return columns
}

// Len returns the number of present columns.
func (r Record) Len() int {
	return len(r.columns)
}

// Map returns a copy of the record as a plain map.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// SplitFields splits one CSV line into trimmed fields.
//
//	moxfield.SplitFields(`1,"Borrowing 100,000 Arrows",PTK`)
//	// []string{"1", "Borrowing 100,000 Arrows", "PTK"}
func SplitFields(line string) []string {
	return parser.SplitLine(line)
}

// ParseRecords parses an export into one Record per non-blank data line.
//
// The first line is the header. ParseRecords never fails; malformed quoting
// is handled permissively. Empty input yields no records.
func ParseRecords(input string) []Record {
	return parseRecords(input, nil)
}

func parseRecords(input string, onWarning func(Warning)) []Record {
	opts := parser.DefaultOptions()
	if onWarning != nil {
		opts.WarningCallback = func(line int, message string) {
			onWarning(Warning{Line: line, Message: message})
		}
	}

	file := parser.NewParserWithOptions(input, opts).Parse()
	return recordsFromNode(file)
}

// recordsFromNode converts a parsed file (header row first) into records.
func recordsFromNode(file *ast.ArrayDataNode) []Record {
	rows := parser.Rows(file)
	if len(rows) < 2 {
		return []Record{}
	}

	headers := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, values := range rows[1:] {
		records = append(records, NewRecord(headers, values))
	}
	return records
}
