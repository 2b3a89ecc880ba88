package xlsxcsv

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv/parser"
	"go.uber.org/zap"
)

// ConvertToCSV reads a workbook from r and returns its CSV rendering. r is
// consumed and, if it is an io.Closer, closed. With valid options the only
// failure is an *OpenError; formula errors are embedded in the output.
func ConvertToCSV(r io.Reader, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Convert(r, &buf, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Convert reads a workbook from r and writes its CSV rendering to w. Nothing
// is written to w until the whole workbook has been flattened.
func Convert(r io.Reader, w io.Writer, opts Options) error {
	if err := opts.Validate(); err != nil {
		if c, ok := r.(io.Closer); ok {
			c.Close()
		}
		return fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.logger()
	logger.Info("converting workbook to CSV")

	wb, err := parser.Open(r, opts.parserOptions())
	if err != nil {
		return &OpenError{Err: err}
	}
	defer wb.Close()

	logger.Info("workbook opened", zap.Int("sheets", wb.SheetCount()))
	return ConvertWorkbook(wb, wb, w, opts)
}

// ConvertFile converts the workbook at path.
func ConvertFile(path string, opts Options) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, &OpenError{Err: err}
	}
	return ConvertToCSV(f, opts)
}

// ConvertWorkbook flattens wb, evaluating formulas with eval, and writes the
// CSV rendering to w.
func ConvertWorkbook(wb Workbook, eval Evaluator, w io.Writer, opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.logger()

	m := Flatten(wb, NewFormatter(eval, logger), opts.Bounds)

	n, err := WriteCSV(w, m, opts)
	if err != nil {
		return err
	}
	logger.Info("wrote CSV",
		zap.Int("rows", m.Len()),
		zap.Int("width", m.MaxRowWidth),
		zap.Int("bytes", n))
	return nil
}
