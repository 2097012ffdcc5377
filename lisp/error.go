package lisp

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/luthersystems/beatlisp/parser/token"
)

// ErrorKind classifies an Error.  Callers should match on the kind with
// IsKind instead of inspecting error messages.
type ErrorKind uint

// Possible ErrorKind values.
const (
	ErrUnknown ErrorKind = iota

	// lexical errors
	ErrUnterminatedString
	ErrInvalidText

	// structural errors
	ErrUnexpectedClosingBracket
	ErrMissingClosingBracket
	ErrMismatchedBrackets
	ErrUnexpectedEOF
	ErrInvalidNumber

	// evaluation errors
	ErrUndefinedVariable
	ErrMissingNamedArgumentValue
	ErrNotAFunction
	ErrUnsupportedNamedArguments
	ErrInvalidTrackSteps
	ErrArgument
	ErrArityMismatch
	ErrMissingArgument
	ErrDivideByZero
	ErrStackOverflow

	numErrorKinds
)

var errorKindStrings = [numErrorKinds]string{
	ErrUnknown:                   "error",
	ErrUnterminatedString:        "unterminated-string",
	ErrInvalidText:               "invalid-text",
	ErrUnexpectedClosingBracket:  "unexpected-closing-bracket",
	ErrMissingClosingBracket:     "missing-closing-bracket",
	ErrMismatchedBrackets:        "mismatched-brackets",
	ErrUnexpectedEOF:             "unexpected-eof",
	ErrInvalidNumber:             "invalid-number",
	ErrUndefinedVariable:         "undefined-variable",
	ErrMissingNamedArgumentValue: "missing-named-argument-value",
	ErrNotAFunction:              "not-a-function",
	ErrUnsupportedNamedArguments: "unsupported-named-arguments",
	ErrInvalidTrackSteps:         "invalid-track-steps",
	ErrArgument:                  "argument-error",
	ErrArityMismatch:             "arity-mismatch",
	ErrMissingArgument:           "missing-argument",
	ErrDivideByZero:              "divide-by-zero",
	ErrStackOverflow:             "stack-overflow",
}

func (k ErrorKind) String() string {
	if k >= numErrorKinds {
		return errorKindStrings[ErrUnknown]
	}
	return errorKindStrings[k]
}

// Category returns the stage which produces errors of kind k: "lexical",
// "parse" or "evaluation".
func (k ErrorKind) Category() string {
	switch {
	case k == ErrUnknown:
		return "unknown"
	case k <= ErrInvalidText:
		return "lexical"
	case k <= ErrInvalidNumber:
		return "parse"
	default:
		return "evaluation"
	}
}

// Error is the single structured error produced by tokenizing, parsing and
// evaluating programs.
type Error struct {
	Kind ErrorKind
	Msg  string
	// Source is the location of the offending token or form.  For missing
	// closing brackets it is the location of the unclosed opener.
	Source *token.Location
	// Context is a short excerpt of surrounding source or a rendering of the
	// offending form.
	Context string
	// Names holds the symbols or keys the error is about (an undefined
	// variable, unsupported named argument keys).
	Names []string
	// Stack is a copy of the call stack when an evaluation error occurred.
	Stack *CallStack
}

// Errorf returns a new Error of kind k with a formatted message.
func Errorf(k ErrorKind, format string, v ...interface{}) *Error {
	return &Error{
		Kind: k,
		Msg:  fmt.Sprintf(format, v...),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var buf bytes.Buffer
	if e.Source != nil {
		buf.WriteString(e.Source.String())
		buf.WriteString(": ")
	}
	buf.WriteString(e.Kind.String())
	if e.Msg != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Msg)
	}
	return buf.String()
}

// Line returns the 1-based line of the error or 0 if unknown.
func (e *Error) Line() int {
	if e.Source == nil {
		return 0
	}
	return e.Source.Line
}

// Col returns the 1-based column of the error or 0 if unknown.
func (e *Error) Col() int {
	if e.Source == nil {
		return 0
	}
	return e.Source.Col
}

// Detail returns the error message followed by its context and stack, if
// any, suitable for printing to a terminal.
func (e *Error) Detail() string {
	var buf bytes.Buffer
	buf.WriteString(e.Error())
	if e.Context != "" {
		buf.WriteString("\n")
		buf.WriteString(e.Context)
	}
	if e.Stack != nil && len(e.Stack.Frames) > 0 {
		buf.WriteString("\n")
		e.Stack.DebugPrint(&buf)
	}
	return buf.String()
}

// WithSource sets the error source location if it is not already known and
// returns e.
func (e *Error) WithSource(loc *token.Location) *Error {
	if e.Source == nil {
		e.Source = loc
	}
	return e
}

// AsError returns the *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr, true
	}
	return nil, false
}

// IsKind returns true if err's chain contains an *Error of kind k.
func IsKind(err error, k ErrorKind) bool {
	lerr, ok := AsError(err)
	return ok && lerr.Kind == k
}

// KindOf returns the kind of the *Error in err's chain or ErrUnknown.
func KindOf(err error) ErrorKind {
	lerr, ok := AsError(err)
	if !ok {
		return ErrUnknown
	}
	return lerr.Kind
}
