package highlight

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestSQL_PreservesText(t *testing.T) {
	tests := []string{
		"SELECT * FROM users",
		"SELECT id, 'it''s' FROM \"Order Items\" WHERE n > 10 LIMIT 5",
		"",
	}

	for _, in := range tests {
		out := SQL(in)
		assert.Equal(t, in, ansi.ReplaceAllString(out, ""))
	}
}

func TestSQL_ColorsKeywords(t *testing.T) {
	out := SQL("SELECT 1")
	assert.NotEqual(t, "SELECT 1", out)
	assert.Regexp(t, ansi, out)
}

func TestNew_UnknownStyle(t *testing.T) {
	h := New("no-such-style")
	assert.Equal(t, "SELECT 1", ansi.ReplaceAllString(h.SQL("SELECT 1"), ""))
}
