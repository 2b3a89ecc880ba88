package xlsxcsv

import (
	"bytes"
	"io"
	"strings"

	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv/models"
)

// WriteCSV renders the matrix and writes it to w in a single call. Every row
// is padded or truncated to m.MaxRowWidth fields, each line is trimmed of
// leading and trailing whitespace, and no line break follows the last row.
func WriteCSV(w io.Writer, m models.Matrix, opts Options) (int, error) {
	var buf bytes.Buffer
	renderCSV(&buf, m, opts)

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return n, &SerializationError{Err: err}
	}
	if n != buf.Len() {
		return n, &SerializationError{Err: io.ErrShortWrite}
	}
	return n, nil
}

// renderCSV appends the rendered matrix to buf.
func renderCSV(buf *bytes.Buffer, m models.Matrix, opts Options) {
	var line strings.Builder
	for i, row := range m.Rows {
		line.Reset()
		for j := 0; j < m.MaxRowWidth; j++ {
			if j < len(row) {
				line.WriteString(escapeField(row[j], opts))
			}
			if j < m.MaxRowWidth-1 {
				line.WriteString(opts.Separator)
			}
		}
		buf.WriteString(trimLine(line.String()))
		if i < len(m.Rows)-1 {
			buf.WriteString(opts.LineBreak)
		}
	}
}

// trimLine removes leading and trailing spaces and control characters.
func trimLine(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r <= ' '
	})
}
