// Package xlsxcsv converts spreadsheet workbooks into a single rectangular
// CSV stream.
package xlsxcsv

import (
	"fmt"
	"strings"

	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv/parser"
	"go.uber.org/zap"
)

// EscapeStyle selects how embedded separators and line breaks are escaped.
type EscapeStyle string

const (
	// EscapeBackslash prefixes separators and newlines with a double backslash.
	EscapeBackslash EscapeStyle = "backslash"
	// EscapeQuote wraps fields in double quotes and doubles embedded quotes.
	EscapeQuote EscapeStyle = "quote"
)

// BoundsMode selects how the last cell of each row is iterated.
type BoundsMode string

const (
	// BoundsLegacy iterates through LastCellNum inclusively, so each matrix
	// row carries one extra empty field that serialization truncates. Output
	// is byte-compatible with existing consumers.
	BoundsLegacy BoundsMode = "legacy"
	// BoundsCorrected iterates up to LastCellNum exclusively.
	BoundsCorrected BoundsMode = "corrected"
)

const (
	// DefaultSeparator is the field separator.
	DefaultSeparator = ","
	// DefaultLineBreak terminates every row but the last.
	DefaultLineBreak = "\n"
)

// Options configures conversion behavior.
type Options struct {
	// Separator is placed between fields.
	Separator string
	// LineBreak is placed between rows.
	LineBreak string
	// Escape selects the escaping convention.
	Escape EscapeStyle
	// Bounds selects the last-cell iteration mode.
	Bounds BoundsMode
	// Password decrypts protected workbooks.
	Password string
	// Culture selects locale-specific number formats (e.g. "en-US").
	Culture string
	// MaxCalcIterations bounds circular reference evaluation.
	MaxCalcIterations uint
	// Logger receives progress and per-cell warnings. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns the legacy-compatible conversion options.
func DefaultOptions() Options {
	return Options{
		Separator: DefaultSeparator,
		LineBreak: DefaultLineBreak,
		Escape:    EscapeBackslash,
		Bounds:    BoundsLegacy,
	}
}

// Validate reports the first invalid setting.
func (o Options) Validate() error {
	if o.Separator == "" {
		return fmt.Errorf("separator must not be empty")
	}
	if o.LineBreak == "" {
		return fmt.Errorf("line break must not be empty")
	}
	if strings.Contains(o.LineBreak, o.Separator) || strings.Contains(o.Separator, "\n") {
		return fmt.Errorf("separator %q conflicts with line break", o.Separator)
	}
	switch o.Escape {
	case EscapeBackslash:
	case EscapeQuote:
		if strings.Contains(o.Separator, `"`) {
			return fmt.Errorf("separator %q cannot contain a quote in quote mode", o.Separator)
		}
	default:
		return fmt.Errorf("invalid escape style: %s (must be backslash or quote)", o.Escape)
	}
	switch o.Bounds {
	case BoundsLegacy, BoundsCorrected:
	default:
		return fmt.Errorf("invalid bounds mode: %s (must be legacy or corrected)", o.Bounds)
	}
	if !parser.ValidCulture(o.Culture) {
		return fmt.Errorf("unsupported culture: %s", o.Culture)
	}
	return nil
}

// logger returns the configured logger or a no-op logger.
func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

// parserOptions returns the accessor options.
func (o Options) parserOptions() parser.Options {
	return parser.Options{
		Password:          o.Password,
		Culture:           o.Culture,
		MaxCalcIterations: o.MaxCalcIterations,
	}
}
