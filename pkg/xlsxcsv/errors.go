package xlsxcsv

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a valid xlsx workbook.
var ErrInvalidFormat = parser.ErrInvalidFormat

// ErrCircularReference indicates a formula depends on its own result. It is
// wrapped by the EvaluationError logged for each affected cell.
var ErrCircularReference = parser.ErrCircularReference

// OpenError is returned when the input cannot be opened as a workbook.
// No output is produced.
type OpenError struct {
	Err error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open workbook: %v", e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// SerializationError is returned when the CSV output cannot be written.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("write csv: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// EvaluationError describes a formula that could not be evaluated. It is
// logged and the field is replaced by an error string; conversion continues.
type EvaluationError struct {
	SheetName string
	Cell      string
	Formula   string
	Err       error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error in sheet %q cell %s (=%s): %v", e.SheetName, e.Cell, e.Formula, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// NewEvaluationError creates a new EvaluationError.
func NewEvaluationError(sheetName, cell, formula string, err error) *EvaluationError {
	return &EvaluationError{
		SheetName: sheetName,
		Cell:      cell,
		Formula:   formula,
		Err:       err,
	}
}
