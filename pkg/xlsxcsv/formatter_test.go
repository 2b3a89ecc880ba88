package xlsxcsv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFormatLiteral(t *testing.T) {
	eval := &fakeEvaluator{}
	f := NewFormatter(eval, nil)

	tests := []struct {
		name     string
		value    models.CellValue
		expected string
	}{
		{"blank", models.CellValue{Kind: models.KindBlank, Raw: "ignored"}, ""},
		{"text", models.CellValue{Kind: models.KindText, Raw: "hello", Display: "hello"}, "hello"},
		{"formatted number", models.CellValue{Kind: models.KindNumber, Raw: "1234.5", Display: "1,234.50"}, "1,234.50"},
		{"unformatted number", models.CellValue{Kind: models.KindNumber, Raw: "42"}, "42"},
		{"date", models.CellValue{Kind: models.KindDate, Raw: "45292", Display: "01-01-24"}, "01-01-24"},
		{"bool raw true", models.CellValue{Kind: models.KindBool, Raw: "1"}, "TRUE"},
		{"bool raw false", models.CellValue{Kind: models.KindBool, Raw: "0"}, "FALSE"},
		{"bool display", models.CellValue{Kind: models.KindBool, Raw: "1", Display: "TRUE"}, "TRUE"},
		{"error", models.CellValue{Kind: models.KindError, Raw: "#N/A", Display: "#N/A"}, "#N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.Format(models.Cell{Value: tt.value}))
		})
	}
	assert.Zero(t, eval.calls, "literal cells must not be evaluated")
}

func TestFormatFormula(t *testing.T) {
	eval := &fakeEvaluator{results: map[string]models.CellValue{
		"C1": {Kind: models.KindNumber, Raw: "5", Display: "5"},
		"C2": {Kind: models.KindBool, Raw: "TRUE", Display: "TRUE"},
		"C3": {Kind: models.KindBlank},
	}}
	f := NewFormatter(eval, nil)

	cell := models.Cell{Ref: "C1", Formula: "A1+B1", Value: models.CellValue{Kind: models.KindNumber, Raw: "4", Display: "4"}}
	assert.Equal(t, "5", f.Format(cell), "evaluated result must win over the cached value")

	assert.Equal(t, "TRUE", f.Format(models.Cell{Ref: "C2", Formula: "A1>0"}))
	assert.Equal(t, "", f.Format(models.Cell{Ref: "C3", Formula: `""`}))
	assert.Equal(t, 3, eval.calls)
}

func TestFormatFormulaEvaluationError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	eval := &fakeEvaluator{
		results: map[string]models.CellValue{
			"A1": {Kind: models.KindError, Raw: "#NAME?", Display: "#NAME?"},
		},
		errs: map[string]error{
			"A1": errors.New("not support NOSUCH function"),
			"A2": errors.New("circular reference"),
		},
	}
	f := NewFormatter(eval, zap.New(core))

	assert.Equal(t, "#NAME?", f.Format(models.Cell{Sheet: "Sheet1", Ref: "A1", Formula: "NOSUCH(1)"}))
	assert.Equal(t, EvaluationErrorText, f.Format(models.Cell{Sheet: "Sheet1", Ref: "A2", Formula: "A2"}))

	entries := logs.FilterMessage("formula evaluation failed").All()
	if assert.Len(t, entries, 2) {
		msg, ok := entries[0].ContextMap()["error"].(string)
		assert.True(t, ok)
		assert.Contains(t, msg, `sheet "Sheet1" cell A1`)
	}
}
