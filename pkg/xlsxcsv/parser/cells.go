package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv/models"
	"github.com/xuri/excelize/v2"
)

// Cell returns the cell at the given 0-based coordinates. ok is false when
// the row or cell does not physically exist.
func (w *Workbook) Cell(sheet, row, col int) (models.Cell, bool) {
	layout := w.sheets[sheet]
	if row < 0 || row >= len(layout.values) || col < 0 || col >= len(layout.values[row]) {
		return models.Cell{}, false
	}
	display := layout.values[row][col]

	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return models.Cell{}, false
	}
	formula, _ := w.f.GetCellFormula(layout.name, ref)
	if display == "" && formula == "" {
		return models.Cell{}, false
	}

	raw, err := w.f.GetCellValue(layout.name, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		raw = display
	}
	cellType, _ := w.f.GetCellType(layout.name, ref)

	return models.Cell{
		Sheet:   layout.name,
		Ref:     ref,
		Row:     row,
		Col:     col,
		Formula: formula,
		Value: models.CellValue{
			Kind:    kindOf(cellType, raw),
			Raw:     raw,
			Display: display,
		},
	}, true
}

// Evaluate computes the value of a formula cell against the workbook. The
// returned value carries excelize's error text (e.g. "#NAME?") when
// evaluation fails. Unless iterative calculation is enabled, a formula that
// depends on a circular reference fails with ErrCircularReference and an
// empty value.
func (w *Workbook) Evaluate(c models.Cell) (models.CellValue, error) {
	if w.opts.MaxCalcIterations == 0 {
		if sheet, ok := w.sheetIndex(c.Sheet); ok && w.circular(cellKey{sheet: sheet, row: c.Row, col: c.Col}) {
			return models.CellValue{Kind: models.KindError}, fmt.Errorf("%w at %s!%s", ErrCircularReference, c.Sheet, c.Ref)
		}
	}

	result, err := w.f.CalcCellValue(c.Sheet, c.Ref)
	if err != nil {
		return models.CellValue{Kind: models.KindError, Raw: result, Display: result}, err
	}
	return models.CellValue{
		Kind:    inferKind(result),
		Raw:     result,
		Display: result,
	}, nil
}

// kindOf maps an excelize cell type to a value kind. Numeric cells usually
// carry no type attribute, so unset types are classified by their raw value.
func kindOf(t excelize.CellType, raw string) models.CellKind {
	switch t {
	case excelize.CellTypeBool:
		return models.KindBool
	case excelize.CellTypeDate:
		return models.KindDate
	case excelize.CellTypeError:
		return models.KindError
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		if raw == "" {
			return models.KindBlank
		}
		return models.KindText
	case excelize.CellTypeNumber:
		if raw == "" {
			return models.KindBlank
		}
		return models.KindNumber
	default:
		return inferKind(raw)
	}
}

// inferKind classifies an untyped value string.
func inferKind(s string) models.CellKind {
	switch {
	case s == "":
		return models.KindBlank
	case s == "TRUE" || s == "FALSE":
		return models.KindBool
	case isErrorValue(s):
		return models.KindError
	case isNumber(s):
		return models.KindNumber
	default:
		return models.KindText
	}
}

// isNumber reports whether s parses as an integer or decimal.
func isNumber(s string) bool {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

var errorValues = []string{
	"#NULL!", "#DIV/0!", "#VALUE!", "#REF!", "#NAME?", "#NUM!", "#N/A",
	"#GETTING_DATA", "#SPILL!", "#CALC!",
}

func isErrorValue(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	for _, e := range errorValues {
		if s == e {
			return true
		}
	}
	return false
}
