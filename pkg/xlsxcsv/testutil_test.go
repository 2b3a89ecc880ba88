package xlsxcsv

import (
	"errors"

	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv/models"
)

// fakeSheet describes a sheet by row slots; a nil slot is an absent row and
// a nil cell pointer is an absent cell.
type fakeSheet struct {
	name string
	rows [][]*models.Cell
}

type fakeWorkbook struct {
	sheets []fakeSheet
}

func (w *fakeWorkbook) SheetCount() int { return len(w.sheets) }

func (w *fakeWorkbook) SheetName(sheet int) string { return w.sheets[sheet].name }

func (w *fakeWorkbook) PhysicalRowCount(sheet int) int {
	n := 0
	for _, r := range w.sheets[sheet].rows {
		if r != nil {
			n++
		}
	}
	return n
}

func (w *fakeWorkbook) LastRowIndex(sheet int) int { return len(w.sheets[sheet].rows) - 1 }

func (w *fakeWorkbook) LastCellNum(sheet, row int) (int, bool) {
	r := w.sheets[sheet].rows[row]
	if r == nil {
		return 0, false
	}
	return len(r), true
}

func (w *fakeWorkbook) Cell(sheet, row, col int) (models.Cell, bool) {
	r := w.sheets[sheet].rows[row]
	if r == nil || col >= len(r) || r[col] == nil {
		return models.Cell{}, false
	}
	return *r[col], true
}

// fakeEvaluator returns canned results keyed by cell reference.
type fakeEvaluator struct {
	results map[string]models.CellValue
	errs    map[string]error
	calls   int
}

func (e *fakeEvaluator) Evaluate(c models.Cell) (models.CellValue, error) {
	e.calls++
	if err, ok := e.errs[c.Ref]; ok {
		return e.results[c.Ref], err
	}
	if v, ok := e.results[c.Ref]; ok {
		return v, nil
	}
	return models.CellValue{}, errors.New("no result")
}

func text(s string) *models.Cell {
	return &models.Cell{Value: models.CellValue{Kind: models.KindText, Raw: s, Display: s}}
}

func textRow(values ...string) []*models.Cell {
	row := make([]*models.Cell, len(values))
	for i, v := range values {
		row[i] = text(v)
	}
	return row
}

// failingWriter fails every write.
type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("sink closed")
}
