package moxfield

import (
	"fmt"
	"strings"

	"github.com/shapestone/shape-moxfield/internal/parser"
)

// Column names recognized in a Moxfield export. Any other column is kept in
// the Record and ignored when formatting.
const (
	ColumnCount           = "Count"
	ColumnName            = "Name"
	ColumnEdition         = "Edition"
	ColumnCollectorNumber = "Collector Number"
	ColumnFoil            = "Foil"
)

// Foil markers appended to a formatted line.
const (
	MarkerFoil   = "*F*"
	MarkerEtched = "*E*"
)

// Finish is the printing finish of a card.
type Finish int

const (
	// FinishNone is a regular, non-foil card.
	FinishNone Finish = iota
	// FinishFoil is a traditional foil.
	FinishFoil
	// FinishEtched is an etched foil.
	FinishEtched
)

// String returns the string representation of Finish.
func (f Finish) String() string {
	switch f {
	case FinishNone:
		return "none"
	case FinishFoil:
		return "foil"
	case FinishEtched:
		return "etched"
	default:
		return fmt.Sprintf("Finish(%d)", f)
	}
}

// Marker returns the line marker for the finish, or "" for FinishNone.
func (f Finish) Marker() string {
	switch f {
	case FinishFoil:
		return MarkerFoil
	case FinishEtched:
		return MarkerEtched
	default:
		return ""
	}
}

// ParseFinish interprets a raw Foil cell. The comparison is case-insensitive
// and ignores surrounding white space: "etched" is FinishEtched, empty is
// FinishNone and any other value is FinishFoil.
func ParseFinish(raw string) Finish {
	v := strings.ToLower(parser.TrimSpace(raw))
	switch v {
	case "":
		return FinishNone
	case "etched":
		return FinishEtched
	default:
		return FinishFoil
	}
}

// FoilMarker returns the marker for a raw Foil cell: "*E*", "*F*" or "".
func FoilMarker(raw string) string {
	return ParseFinish(raw).Marker()
}

// Card holds the formatted fields of one export row.
type Card struct {
	Count           string
	Name            string
	Edition         string
	CollectorNumber string
	Finish          Finish
}

// CardFromRecord extracts the recognized columns of r, trimmed.
// Absent columns become empty strings.
func CardFromRecord(r Record) Card {
	return Card{
		Count:           parser.TrimSpace(r.Value(ColumnCount)),
		Name:            parser.TrimSpace(r.Value(ColumnName)),
		Edition:         parser.TrimSpace(r.Value(ColumnEdition)),
		CollectorNumber: parser.TrimSpace(r.Value(ColumnCollectorNumber)),
		Finish:          ParseFinish(r.Value(ColumnFoil)),
	}
}

// String formats the card as a text-list line:
//
//	{Count} {Name} ({Edition}) {Collector Number} {Marker}
//
// Empty parts are left out together with their separator. A card with no
// parts formats as "".
func (c Card) String() string {
	parts := make([]string, 0, 5)

	if c.Count != "" {
		parts = append(parts, c.Count)
	}
	if c.Name != "" {
		parts = append(parts, c.Name)
	}
	if c.Edition != "" {
		parts = append(parts, "("+c.Edition+")")
	}
	if c.CollectorNumber != "" {
		parts = append(parts, c.CollectorNumber)
	}
	if marker := c.Finish.Marker(); marker != "" {
		parts = append(parts, marker)
	}

	return strings.Join(parts, " ")
}

// FormatRecord formats one record as a text-list line, or "" when the
// record has nothing to show.
func FormatRecord(r Record) string {
	return CardFromRecord(r).String()
}
