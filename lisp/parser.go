package lisp

import "io"

// Reader turns a named stream of program text into top-level forms.  The
// parser package provides the standard implementation.
type Reader interface {
	Read(name string, r io.Reader) ([]*LVal, error)
}

// ReaderFunc adapts a plain function to the Reader interface.
type ReaderFunc func(name string, r io.Reader) ([]*LVal, error)

// Read calls fn.
func (fn ReaderFunc) Read(name string, r io.Reader) ([]*LVal, error) {
	return fn(name, r)
}
