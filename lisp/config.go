package lisp

import (
	"io"
	"log/slog"
)

// Config is a function that configures a Runtime.
type Config func(rt *Runtime)

// WithMaxDepth returns a Config that prevents a runtime from evaluating forms
// nested more than n deep.  A non-positive n removes the limit.
func WithMaxDepth(n int) Config {
	return func(rt *Runtime) {
		rt.MaxDepth = n
	}
}

// WithLogger returns a Config that makes the runtime log diagnostics to
// logger instead of discarding them.
func WithLogger(logger *slog.Logger) Config {
	return func(rt *Runtime) {
		rt.Logger = logger
	}
}

// WithReader returns a Config that makes the runtime use r to parse source
// streams.  There is no default Reader for a runtime.
func WithReader(r Reader) Config {
	return func(rt *Runtime) {
		rt.Reader = r
	}
}

// WithStderr returns a Config that makes the runtime write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(rt *Runtime) {
		rt.Stderr = w
	}
}

// WithBuiltins returns a Config that adds funs to the global environments
// created by the runtime.
func WithBuiltins(funs ...LBuiltinDef) Config {
	return func(rt *Runtime) {
		rt.Builtins = append(rt.Builtins, funs...)
	}
}
