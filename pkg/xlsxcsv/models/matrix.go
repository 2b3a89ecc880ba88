package models

// Matrix is the flattened workbook: one entry per spreadsheet row across all
// sheets in workbook order. Rows keep the length produced while flattening
// and are never padded here.
type Matrix struct {
	// Rows holds the formatted fields of each row.
	Rows [][]string `json:"rows"`
	// MaxRowWidth is the output width every row is padded or truncated to.
	MaxRowWidth int `json:"max_row_width"`
}

// Len returns the number of rows.
func (m Matrix) Len() int {
	return len(m.Rows)
}
