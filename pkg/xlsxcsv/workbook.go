package xlsxcsv

import "github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv/models"

// Workbook is the read-only structure the flattener walks. Sheet, row and
// column indexes are 0-based.
type Workbook interface {
	// SheetCount returns the number of sheets in workbook order.
	SheetCount() int
	// SheetName returns the name of a sheet.
	SheetName(sheet int) string
	// PhysicalRowCount returns the number of rows that exist in storage.
	PhysicalRowCount(sheet int) int
	// LastRowIndex returns the index of the bottom-most row, -1 if none.
	LastRowIndex(sheet int) int
	// LastCellNum returns one past the index of the right-most cell of a
	// row; ok is false when the row is absent.
	LastCellNum(sheet, row int) (n int, ok bool)
	// Cell returns a physical cell; ok is false when the cell is absent.
	Cell(sheet, row, col int) (c models.Cell, ok bool)
}

// Evaluator computes the value of formula cells.
type Evaluator interface {
	Evaluate(c models.Cell) (models.CellValue, error)
}
