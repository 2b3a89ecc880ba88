package xlsxcsv

import (
	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv/models"
	"go.uber.org/zap"
)

// Flatten reads every sheet in workbook order into a matrix of display
// strings. Absent rows become empty rows, absent cells become empty fields.
// MaxRowWidth is the largest LastCellNum seen on any present row.
func Flatten(wb Workbook, f *Formatter, mode BoundsMode) models.Matrix {
	var m models.Matrix

	sheetCount := wb.SheetCount()
	f.logger.Info("flattening workbook", zap.Int("sheets", sheetCount))

	for sheet := 0; sheet < sheetCount; sheet++ {
		if wb.PhysicalRowCount(sheet) == 0 {
			continue
		}
		last := wb.LastRowIndex(sheet)
		f.logger.Info("flattening sheet",
			zap.Int("index", sheet),
			zap.String("name", wb.SheetName(sheet)),
			zap.Int("rows", last+1))

		for row := 0; row <= last; row++ {
			fields, width := flattenRow(wb, f, mode, sheet, row)
			if width > m.MaxRowWidth {
				m.MaxRowWidth = width
			}
			m.Rows = append(m.Rows, fields)
		}
	}
	return m
}

// flattenRow formats a single row and returns its fields and width
// contribution.
func flattenRow(wb Workbook, f *Formatter, mode BoundsMode, sheet, row int) ([]string, int) {
	lastCellNum, ok := wb.LastCellNum(sheet, row)
	if !ok {
		return []string{}, 0
	}

	end := lastCellNum
	if mode != BoundsCorrected {
		end = lastCellNum + 1
	}

	fields := make([]string, 0, max(end, 0))
	for col := 0; col < end; col++ {
		c, ok := wb.Cell(sheet, row, col)
		if !ok {
			fields = append(fields, "")
			continue
		}
		fields = append(fields, f.Format(c))
	}
	return fields, lastCellNum
}
