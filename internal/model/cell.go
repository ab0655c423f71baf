package model

import "strconv"

// CellKind discriminates the closed cell variant.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// CellValue is a spreadsheet cell converted at the ingestion boundary.
// Downstream code never branches on raw dynamic types again.
type CellValue struct {
	Kind   CellKind
	Text   string
	Number float64
}

// EmptyCell is the zero cell.
var EmptyCell = CellValue{Kind: CellEmpty}

// TextCell builds a text cell; blank strings collapse to empty.
func TextCell(s string) CellValue {
	if s == "" {
		return EmptyCell
	}
	return CellValue{Kind: CellText, Text: s}
}

// NumberCell builds a numeric cell.
func NumberCell(f float64) CellValue {
	return CellValue{Kind: CellNumber, Number: f}
}

// IsEmpty reports whether the cell carries no value.
func (c CellValue) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String renders the cell for header labels and raw previews.
func (c CellValue) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return c.Text
	default:
		return ""
	}
}
