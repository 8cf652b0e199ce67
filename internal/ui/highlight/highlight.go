// Package highlight colors SQL for the terminal.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "nord"

// Highlighter renders SQL with a chroma style.
type Highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// New creates a highlighter for PostgreSQL using the named chroma style.
// Unknown styles fall back to chroma's default.
func New(style string) *Highlighter {
	lexer := lexers.Get("postgresql")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &Highlighter{
		lexer:     chroma.Coalesce(lexer),
		style:     styles.Get(style),
		formatter: formatters.TTY256,
	}
}

// SQL returns sql with ANSI colors. On tokenizer errors the input is
// returned unchanged.
func (h *Highlighter) SQL(sql string) string {
	it, err := h.lexer.Tokenise(nil, sql)
	if err != nil {
		return sql
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return sql
	}

	// Drop the newline the lexer appends to unterminated input.
	out := b.String()
	if strings.Count(out, "\n") > strings.Count(sql, "\n") {
		i := strings.LastIndex(out, "\n")
		out = out[:i] + out[i+1:]
	}
	return out
}

var std = New(DefaultStyle)

// SQL highlights sql with the default style.
func SQL(sql string) string {
	return std.SQL(sql)
}
