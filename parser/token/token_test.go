package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationString(t *testing.T) {
	assert.Equal(t, "?", (*Location)(nil).String())
	assert.Equal(t, "a.lisp:2:7", (&Location{File: "a.lisp", Line: 2, Col: 7}).String())
	assert.Equal(t, "a.lisp:2", (&Location{File: "a.lisp", Line: 2}).String())
	assert.Equal(t, "<input>[12]", (&Location{Pos: 12}).String())
}

func TestExcerpt(t *testing.T) {
	src := "(a\n  (b c"
	assert.Equal(t, "  (b c\n  ^", Excerpt(src, &Location{Pos: 5}))
	assert.Equal(t, "(a\n^", Excerpt(src, &Location{Pos: 0}))
	assert.Equal(t, "", Excerpt(src, nil))
	assert.Equal(t, "", Excerpt(src, &Location{Pos: 100}))

	long := strings.Repeat("x", 40) + "!" + strings.Repeat("y", 40)
	ex := Excerpt(long, &Location{Pos: 40})
	lines := strings.Split(ex, "\n")
	if assert.Len(t, lines, 2) {
		assert.True(t, strings.HasPrefix(lines[0], "..."))
		assert.True(t, strings.HasSuffix(lines[0], "..."))
		assert.Equal(t, strings.Index(lines[0], "!"), strings.Index(lines[1], "^"))
	}
}

func TestTypeBrackets(t *testing.T) {
	assert.Equal(t, PAREN_R, PAREN_L.Closer())
	assert.Equal(t, BRACE_R, BRACE_L.Closer())
	assert.Equal(t, INVALID, SYMBOL.Closer())
	assert.True(t, BRACE_L.IsOpen())
	assert.True(t, PAREN_R.IsClose())
	assert.False(t, QUOTE.IsOpen())
}
