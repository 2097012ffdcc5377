/*
Package parser turns program text into syntax trees.

	program := <expr>*
	expr    := <number> | <string> | <symbol> | '\'' <expr>
	         | '(' <expr>* ')' | '[' <expr>* ']'
	number  := /[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)/
	string  := '"' (/[^"\\]/ | '\' <any>)* '"'
	symbol  := /[^\s()\[\]'"]+/

Comments begin with ';' and run to the end of the line.
*/
package parser

import (
	"github.com/luthersystems/beatlisp/lisp"
	"github.com/luthersystems/beatlisp/parser/rdparser"
)

// Option configures parsing.
type Option = rdparser.Option

// WithLegacyBrackets allows any closing bracket to close any open list.
func WithLegacyBrackets() Option {
	return rdparser.WithLegacyBrackets()
}

// NewReader returns a lisp.Reader which parses program text.
func NewReader(opts ...Option) lisp.Reader {
	return rdparser.NewReader(opts...)
}

// Parse tokenizes and parses source, returning its top-level forms in order.
// The file name labels locations in errors.
func Parse(file string, source string, opts ...Option) ([]*lisp.LVal, error) {
	return rdparser.ParseString(file, source, opts...)
}

// IsIncomplete returns true if err reports input that ended before an
// expression was complete.  Appending more text may make such input valid.
func IsIncomplete(err error) bool {
	switch lisp.KindOf(err) {
	case lisp.ErrMissingClosingBracket, lisp.ErrUnterminatedString, lisp.ErrUnexpectedEOF:
		return true
	}
	return false
}
