// Package lisptest runs sequences of expressions against a fresh global
// environment and checks their printed results.
package lisptest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luthersystems/beatlisp/lisp"
	"github.com/luthersystems/beatlisp/parser"
)

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially in one global environment.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result, or the error message on failure
	Output string // text written to the runtime's stderr
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated environments.
// Source locations in error messages use the file name ``test''.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		var stderr bytes.Buffer
		rt := lisp.NewRuntime(
			lisp.WithStderr(&stderr),
			lisp.WithReader(parser.NewReader()),
		)
		env := rt.NewGlobalEnv()
		for j, expr := range test.TestSequence {
			stderr.Reset()
			result, ok := EvalString(rt, env, expr.Expr)
			if !ok {
				t.Errorf("test %d %q: expr %d: %s", i, test.Name, j, result)
				continue
			}
			assert.Equal(t, expr.Result, result, "test %d %q: expr %d", i, test.Name, j)
			assert.Equal(t, expr.Output, stderr.String(), "test %d %q: expr %d output", i, test.Name, j)
		}
	}
}

// EvalString parses src, which must contain exactly one expression, and
// evaluates it in env.  EvalString returns the printed value or the message
// of an evaluation error.  If src cannot be parsed into one expression
// EvalString returns a description of the problem and false.
func EvalString(rt *lisp.Runtime, env *lisp.LEnv, src string) (string, bool) {
	v, err := parser.Parse("test", src)
	if err != nil {
		return "parse error: " + err.Error(), false
	}
	if len(v) != 1 {
		return "expected exactly one expression", false
	}
	result, err := rt.Eval(v[0], env)
	if err != nil {
		return err.Error(), true
	}
	return result.String(), true
}
