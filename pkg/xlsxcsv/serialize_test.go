package xlsxcsv

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv/models"
)

func render(t *testing.T, m models.Matrix, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	n, err := WriteCSV(&buf, m, opts)
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), n)
	return buf.String()
}

func TestWriteCSVScenario(t *testing.T) {
	m := models.Matrix{
		Rows:        [][]string{{"a", "b,c", ""}, {"x", ""}},
		MaxRowWidth: 2,
	}

	assert.Equal(t, "a,b\\\\,c\nx,", render(t, m, DefaultOptions()))
}

func TestWriteCSVRectangular(t *testing.T) {
	m := models.Matrix{
		Rows:        [][]string{{"1", "2", "3", "4"}, {}, {"5"}},
		MaxRowWidth: 3,
	}

	out := render(t, m, DefaultOptions())

	assert.Equal(t, "1,2,3\n,,\n5,,", out)
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, 2, strings.Count(line, ","), "line %q", line)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	assert.Equal(t, "", render(t, models.Matrix{}, DefaultOptions()))
	assert.Equal(t, "\n", render(t, models.Matrix{Rows: [][]string{{}, {}}}, DefaultOptions()))
}

func TestWriteCSVTrimsLines(t *testing.T) {
	m := models.Matrix{
		Rows:        [][]string{{"  lead", "trail  "}, {"mid dle", "x"}},
		MaxRowWidth: 2,
	}

	assert.Equal(t, "lead,trail\nmid dle,x", render(t, m, DefaultOptions()))
}

func TestWriteCSVCustomSeparatorAndLineBreak(t *testing.T) {
	opts := DefaultOptions()
	opts.Separator = "\t"
	opts.LineBreak = "\r\n"
	m := models.Matrix{
		Rows:        [][]string{{"a", "b"}, {"c", "d"}},
		MaxRowWidth: 2,
	}

	assert.Equal(t, "a\tb\r\nc\td", render(t, m, opts))
}

func TestWriteCSVQuoteStyle(t *testing.T) {
	opts := DefaultOptions()
	opts.Escape = EscapeQuote
	m := models.Matrix{
		Rows:        [][]string{{"a", "b,c"}, {`"q"`, "x"}},
		MaxRowWidth: 2,
	}

	assert.Equal(t, "a,\"b,c\"\n\"\"\"q\"\"\",x", render(t, m, opts))
}

func TestWriteCSVSerializationError(t *testing.T) {
	m := models.Matrix{Rows: [][]string{{"a"}}, MaxRowWidth: 1}

	_, err := WriteCSV(failingWriter{}, m, DefaultOptions())

	var serr *SerializationError
	require.True(t, errors.As(err, &serr))
	assert.EqualError(t, serr.Err, "sink closed")
}
