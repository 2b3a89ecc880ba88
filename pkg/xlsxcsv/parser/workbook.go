// Package parser provides the excelize-backed workbook accessor.
package parser

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidFormat indicates the input is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// Options configures how a workbook is opened.
type Options struct {
	// Password decrypts protected workbooks.
	Password string
	// Culture selects locale-specific number formats ("en-US", "ja-JP", ...).
	Culture string
	// MaxCalcIterations bounds circular reference evaluation.
	MaxCalcIterations uint
}

var cultures = map[string]excelize.CultureName{
	"":      excelize.CultureNameUnknown,
	"en-US": excelize.CultureNameEnUS,
	"ja-JP": excelize.CultureNameJaJP,
	"ko-KR": excelize.CultureNameKoKR,
	"zh-CN": excelize.CultureNameZhCN,
	"zh-TW": excelize.CultureNameZhTW,
}

// ValidCulture reports whether name is a supported culture.
func ValidCulture(name string) bool {
	_, ok := cultures[name]
	return ok
}

// Workbook is a read-only view over an opened spreadsheet.
type Workbook struct {
	f        *excelize.File
	opts     Options
	sheets   []sheetLayout
	graph    *formulaGraph
	names    map[string]string
	namesSet bool
}

type sheetLayout struct {
	name     string
	physical int
	// extents holds one past the right-most physical column of each row,
	// 0 when the row holds no cells.
	extents []int
	// values holds the formatted values of each row.
	values [][]string
	// formulas lists the cells carrying a formula.
	formulas []cellPos
}

type cellPos struct {
	row, col int
}

// Open reads a workbook from r. If r is an io.Closer it is closed before
// Open returns, whether or not the workbook could be read.
func Open(r io.Reader, opts Options) (*Workbook, error) {
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}

	culture, ok := cultures[opts.Culture]
	if !ok {
		return nil, fmt.Errorf("unsupported culture: %s", opts.Culture)
	}

	// Worksheets stay in memory so their cell references can be scanned.
	f, err := excelize.OpenReader(r, excelize.Options{
		Password:          opts.Password,
		CultureInfo:       culture,
		MaxCalcIterations: opts.MaxCalcIterations,
		UnzipXMLSizeLimit: excelize.UnzipSizeLimit,
	})
	if err != nil {
		if f != nil {
			f.Close()
		}
		if errors.Is(err, zip.ErrFormat) || errors.Is(err, excelize.ErrWorkbookFileFormat) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return nil, err
	}

	wb := &Workbook{f: f, opts: opts}
	paths := sheetPaths(f)
	for _, name := range f.GetSheetList() {
		layout, err := readLayout(f, name, paths[name])
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		wb.sheets = append(wb.sheets, layout)
	}
	return wb, nil
}

// readLayout streams the formatted values of a sheet and scans its XML for
// physical rows and cells. Cells without a value (e.g. styled blanks) only
// show up in the scan. When the worksheet part cannot be located the layout
// falls back to the value rows.
func readLayout(f *excelize.File, name, path string) (sheetLayout, error) {
	layout := sheetLayout{name: name}

	rows, err := f.Rows(name)
	if err != nil {
		return layout, err
	}
	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			rows.Close()
			return layout, err
		}
		layout.values = append(layout.values, cols)
	}
	if err := rows.Error(); err != nil {
		rows.Close()
		return layout, err
	}
	if err := rows.Close(); err != nil {
		return layout, err
	}

	// Rows flushes the worksheet into the package, so the part is current.
	if data := partBytes(f, path); len(data) > 0 {
		scan, err := scanSheetXML(data, f.CharsetReader)
		if err != nil {
			return layout, err
		}
		layout.physical = scan.physical
		layout.extents = scan.extents
		layout.formulas = scan.formulas
		return layout, nil
	}

	layout.extents = make([]int, len(layout.values))
	for i, cols := range layout.values {
		layout.extents[i] = len(cols)
		if len(cols) > 0 {
			layout.physical++
		}
	}
	for n := len(layout.extents); n > 0 && layout.extents[n-1] == 0; n-- {
		layout.extents = layout.extents[:n-1]
	}
	for row, cols := range layout.values {
		for col := range cols {
			ref, _ := excelize.CoordinatesToCellName(col+1, row+1)
			if formula, _ := f.GetCellFormula(name, ref); formula != "" {
				layout.formulas = append(layout.formulas, cellPos{row: row, col: col})
			}
		}
	}
	return layout, nil
}

// Close releases the underlying excelize file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// SheetCount returns the number of sheets.
func (w *Workbook) SheetCount() int {
	return len(w.sheets)
}

// SheetName returns the name of the sheet at index i.
func (w *Workbook) SheetName(sheet int) string {
	return w.sheets[sheet].name
}

// PhysicalRowCount returns the number of rows stored in the sheet.
func (w *Workbook) PhysicalRowCount(sheet int) int {
	return w.sheets[sheet].physical
}

// LastRowIndex returns the 0-based index of the bottom-most row holding a
// cell, or -1 when the sheet has none.
func (w *Workbook) LastRowIndex(sheet int) int {
	return len(w.sheets[sheet].extents) - 1
}

// LastCellNum returns one past the index of the right-most physical cell of
// a row. ok is false when the row holds no cells.
func (w *Workbook) LastCellNum(sheet, row int) (n int, ok bool) {
	extents := w.sheets[sheet].extents
	if row < 0 || row >= len(extents) || extents[row] == 0 {
		return 0, false
	}
	return extents[row], true
}

// sheetIndex returns the index of the named sheet, ignoring case.
func (w *Workbook) sheetIndex(name string) (int, bool) {
	for i, layout := range w.sheets {
		if strings.EqualFold(layout.name, name) {
			return i, true
		}
	}
	return 0, false
}
