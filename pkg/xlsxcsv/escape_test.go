package xlsxcsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeFieldBackslash(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"b,c", `b\\,c`},
		{"a,b,c", `a\\,b\\,c`},
		{"line1\nline2", "line1\\\\\nline2"},
		{`say "hi"`, `say "hi"`},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, escapeField(tt.input, opts), "escapeField(%q)", tt.input)
	}
}

func TestEscapeFieldBackslashCustomSeparator(t *testing.T) {
	opts := DefaultOptions()
	opts.Separator = ";"

	assert.Equal(t, `a\\;b`, escapeField("a;b", opts))
	assert.Equal(t, "a,b", escapeField("a,b", opts))
}

func TestEscapeFieldQuote(t *testing.T) {
	opts := DefaultOptions()
	opts.Escape = EscapeQuote
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"b,c", `"b,c"`},
		{`say "hi"`, `"say ""hi"""`},
		{"line1\nline2", "\"line1\nline2\""},
		{"cr\rlf", "\"cr\rlf\""},
		{" padded, value ", `" padded, value "`},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, escapeField(tt.input, opts), "escapeField(%q)", tt.input)
	}
}
