package repl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luthersystems/beatlisp/lisp"
	"github.com/luthersystems/beatlisp/parser"
)

func testSession() (*session, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	s := newSession(lisp.NewRuntime())
	s.stdout = &stdout
	s.stderr = &stderr
	return s, &stdout, &stderr
}

func TestSessionFeed(t *testing.T) {
	s, stdout, stderr := testSession()
	assert.True(t, s.feed("(+ 1 2) 'x"))
	assert.Equal(t, "3\nx\n", stdout.String())
	assert.Empty(t, stderr.String())

	stdout.Reset()
	assert.True(t, s.feed("   "))
	assert.Empty(t, stdout.String())
}

func TestSessionContinuation(t *testing.T) {
	s, stdout, _ := testSession()
	assert.False(t, s.feed("(let ((x 2))"))
	assert.False(t, s.feed(`  (note "C4"`))
	assert.True(t, s.feed("   x))"))
	assert.Equal(t, "(note \"C4\" 2 :velocity 0.7 :instrument \"default\")\n", stdout.String())
	assert.Empty(t, s.buf)
}

func TestSessionErrors(t *testing.T) {
	s, stdout, stderr := testSession()
	assert.True(t, s.feed("(foo))"))
	assert.Contains(t, stderr.String(), "unexpected-closing-bracket")

	stderr.Reset()
	assert.True(t, s.feed("(undefined)"))
	assert.Contains(t, stderr.String(), "repl:1:2: undefined-variable: undefined variable: undefined")
	assert.Empty(t, stdout.String())

	assert.False(t, s.feed("(a"))
	s.reset()
	assert.True(t, s.feed("1"))
	assert.Equal(t, "1\n", stdout.String())
}

func TestSessionLegacyBrackets(t *testing.T) {
	s := newSession(lisp.NewRuntime(), parser.WithLegacyBrackets())
	var stdout bytes.Buffer
	s.stdout = &stdout
	assert.True(t, s.feed("(+ 1 2]"))
	assert.Equal(t, "3\n", stdout.String())
}

func TestSymbolCompleter(t *testing.T) {
	c := &symbolCompleter{env: lisp.NewGlobalEnv()}
	line := []rune("(drum-m")
	candidates, n := c.Do(line, len(line))
	assert.Equal(t, 6, n)
	assert.Equal(t, [][]rune{[]rune("achine")}, candidates)

	line = []rune("(note ")
	candidates, n = c.Do(line, len(line))
	assert.Nil(t, candidates)
	assert.Equal(t, 0, n)
}
