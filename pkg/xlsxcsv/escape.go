package xlsxcsv

import "strings"

// escapeField escapes embedded separators and line breaks according to the
// configured style.
func escapeField(field string, opts Options) string {
	if opts.Escape == EscapeQuote {
		return quoteField(field, opts.Separator)
	}
	return backslashField(field, opts.Separator)
}

// backslashField prefixes each separator and newline with two backslashes.
func backslashField(field, sep string) string {
	if strings.Contains(field, sep) {
		field = strings.ReplaceAll(field, sep, `\\`+sep)
	}
	if strings.Contains(field, "\n") {
		field = strings.ReplaceAll(field, "\n", "\\\\\n")
	}
	return field
}

// quoteField wraps fields containing a quote, separator or line break in
// double quotes, doubling embedded quotes.
func quoteField(field, sep string) string {
	if !strings.Contains(field, `"`) && !strings.Contains(field, sep) &&
		!strings.ContainsAny(field, "\r\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
