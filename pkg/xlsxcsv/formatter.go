package xlsxcsv

import (
	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv/models"
	"go.uber.org/zap"
)

// EvaluationErrorText replaces a formula result that failed to evaluate and
// produced no error value of its own.
const EvaluationErrorText = "#VALUE!"

// Formatter renders cells as display strings.
type Formatter struct {
	eval   Evaluator
	logger *zap.Logger
}

// NewFormatter creates a Formatter that evaluates formulas with eval.
func NewFormatter(eval Evaluator, logger *zap.Logger) *Formatter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Formatter{eval: eval, logger: logger}
}

// Format returns the display string of a cell. Formula cells are evaluated
// first; failures are logged and rendered as an error value.
func (f *Formatter) Format(c models.Cell) string {
	if !c.IsFormula() {
		return displayValue(c.Value)
	}

	v, err := f.eval.Evaluate(c)
	if err != nil {
		f.logger.Warn("formula evaluation failed",
			zap.Error(NewEvaluationError(c.Sheet, c.Ref, c.Formula, err)))
		if text := displayValue(v); text != "" {
			return text
		}
		return EvaluationErrorText
	}
	return displayValue(v)
}

// displayValue applies the display rules of a value kind.
func displayValue(v models.CellValue) string {
	switch v.Kind {
	case models.KindBlank:
		return ""
	case models.KindBool:
		switch v.Display {
		case "TRUE", "FALSE":
			return v.Display
		}
		if v.Raw == "1" || v.Raw == "TRUE" || v.Raw == "true" {
			return "TRUE"
		}
		return "FALSE"
	default:
		if v.Display != "" {
			return v.Display
		}
		return v.Raw
	}
}
