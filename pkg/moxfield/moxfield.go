// Package moxfield converts Moxfield CSV collection exports into the Moxfield
// text list format.
//
// An export such as
//
//	Count,Name,Edition,Collector Number,Foil
//	2,Lightning Bolt,M10,146,
//	1,Black Lotus,LEA,232,foil
//	1,Damnation,PLC,80,etched
//
// converts to
//
//	2 Lightning Bolt (M10) 146
//	1 Black Lotus (LEA) 232 *F*
//	1 Damnation (PLC) 80 *E*
//
// # Parsing
//
// The first line is the header. Every later non-blank line becomes a Record
// keyed by header name. Fields may be double-quoted to carry commas, and a
// doubled quote inside quotes is a literal quote. Parsing is deliberately
// permissive and never fails: an unterminated quote simply runs to the end
// of its line, short rows leave trailing columns absent and extra fields are
// dropped.
//
// # Formatting
//
// Each Record formats as
//
//	{Count} {Name} ({Edition}) {Collector Number} {Marker}
//
// where empty parts are omitted along with their separator, and the marker
// is "*E*" for an etched Foil value, "*F*" for any other non-empty Foil
// value and nothing otherwise. Records with no parts at all produce no line.
//
// # Thread Safety
//
// All functions in this package are pure and safe for concurrent use.
package moxfield

import (
	"fmt"
	"io"
	"strings"
)

// Warning describes a recoverable oddity found while parsing.
type Warning struct {
	// Line is the 1-indexed line in the trimmed input.
	Line int
	// Message describes what was tolerated.
	Message string
}

// String returns the warning as "line N: message".
func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Result summarizes a conversion.
type Result struct {
	// Records is the number of data records parsed.
	Records int
	// Lines is the number of output lines produced.
	Lines int
	// Dropped is the number of records that had nothing to format.
	Dropped int
	// Warnings lists tolerated parsing problems in input order.
	Warnings []Warning
}

// Convert converts an export to the text list format.
//
// Lines are joined with "\n" and there is no trailing newline. Empty input
// converts to "".
func Convert(input string) string {
	out, _ := ConvertWithResult(input)
	return out
}

// ConvertWithResult is Convert that also reports what happened.
func ConvertWithResult(input string) (string, Result) {
	var res Result
	records := parseRecords(input, func(w Warning) {
		res.Warnings = append(res.Warnings, w)
	})

	lines := make([]string, 0, len(records))
	for _, r := range records {
		if line := FormatRecord(r); line != "" {
			lines = append(lines, line)
		}
	}

	res.Records = len(records)
	res.Lines = len(lines)
	res.Dropped = res.Records - res.Lines
	return strings.Join(lines, "\n"), res
}

// ConvertReader reads a whole export from r and writes the converted list
// to w. The only errors are I/O errors.
func ConvertReader(r io.Reader, w io.Writer) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read input: %w", err)
	}

	out, res := ConvertWithResult(string(data))
	if _, err := io.WriteString(w, out); err != nil {
		return res, fmt.Errorf("write output: %w", err)
	}
	return res, nil
}
