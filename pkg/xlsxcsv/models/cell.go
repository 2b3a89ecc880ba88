// Package models defines data structures for workbook-to-CSV conversion.
package models

// CellKind classifies the value stored in (or computed for) a cell.
type CellKind int

const (
	// KindBlank is a cell with no value.
	KindBlank CellKind = iota
	// KindText is a shared, inline or formula string.
	KindText
	// KindNumber is a numeric value.
	KindNumber
	// KindDate is an ISO 8601 date cell.
	KindDate
	// KindBool is a boolean cell.
	KindBool
	// KindError is an error value such as #DIV/0!.
	KindError
)

// String returns the kind name.
func (k CellKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindBool:
		return "bool"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// CellValue is a typed cell value.
type CellValue struct {
	// Kind is the value classification.
	Kind CellKind `json:"kind"`
	// Raw is the stored value without number formatting applied.
	Raw string `json:"raw"`
	// Display is the value rendered with the cell's number format.
	Display string `json:"display"`
}

// Cell represents a physical cell of a sheet.
type Cell struct {
	// Sheet is the owning sheet name.
	Sheet string `json:"sheet"`
	// Ref is the A1-style reference (e.g. "B3").
	Ref string `json:"ref"`
	// Row is the row index (0-based).
	Row int `json:"row"`
	// Col is the column index (0-based).
	Col int `json:"col"`
	// Formula is the cell formula without the leading '=' (empty for literals).
	Formula string `json:"formula,omitempty"`
	// Value is the literal value, or the cached result for formula cells.
	Value CellValue `json:"value"`
}

// IsFormula reports whether the cell holds a formula.
func (c Cell) IsFormula() bool {
	return c.Formula != ""
}
