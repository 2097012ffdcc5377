package lisp

import (
	"strconv"
	"strings"
)

// Named holds the evaluated named arguments of a call keyed by name, without
// the keyword prefix.
type Named map[string]*LVal

// Has returns true if the named argument key was given.
func (n Named) Has(key string) bool {
	_, ok := n[key]
	return ok
}

// Number returns the numeric value of key or def if key was not given.
func (n Named) Number(key string, def float64) (float64, error) {
	v, ok := n[key]
	if !ok {
		return def, nil
	}
	x, err := NumberValue(v)
	if err != nil {
		return 0, namedErr(key, err)
	}
	return x, nil
}

// Int is like Number but requires an integral value.
func (n Named) Int(key string, def int) (int, error) {
	v, ok := n[key]
	if !ok {
		return def, nil
	}
	x, err := IntValue(v)
	if err != nil {
		return 0, namedErr(key, err)
	}
	return x, nil
}

// String returns the text value of key or def if key was not given.
func (n Named) String(key string, def string) (string, error) {
	v, ok := n[key]
	if !ok {
		return def, nil
	}
	s, err := StringValue(v)
	if err != nil {
		return "", namedErr(key, err)
	}
	return s, nil
}

// Flag returns the flag value of key or def if key was not given.
func (n Named) Flag(key string, def bool) (bool, error) {
	v, ok := n[key]
	if !ok {
		return def, nil
	}
	b, err := FlagValue(v)
	if err != nil {
		return false, namedErr(key, err)
	}
	return b, nil
}

func namedErr(key string, err error) error {
	lerr, ok := AsError(err)
	if !ok {
		return err
	}
	lerr.Msg = ":" + key + ": " + lerr.Msg
	lerr.Names = []string{key}
	return lerr
}

// NumberValue extracts a number from v.  Strings and symbols holding numeric
// text are converted and booleans are 1 or 0.
func NumberValue(v *LVal) (float64, error) {
	switch v.Type {
	case LNumber:
		return v.Num, nil
	case LBool:
		if v.Bool {
			return 1, nil
		}
		return 0, nil
	case LString, LSymbol:
		x, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err == nil {
			return x, nil
		}
	}
	return 0, Errorf(ErrArgument, "expected a number: %v", v)
}

// IntValue is like NumberValue but requires an integral value.
func IntValue(v *LVal) (int, error) {
	x, err := NumberValue(v)
	if err != nil {
		return 0, err
	}
	if x != float64(int(x)) {
		return 0, Errorf(ErrArgument, "expected an integer: %v", v)
	}
	return int(x), nil
}

// StringValue extracts text from v.  Symbols yield their name and numbers
// their source representation.
func StringValue(v *LVal) (string, error) {
	switch v.Type {
	case LString, LSymbol:
		return v.Str, nil
	case LNumber:
		return FormatNumber(v.Num), nil
	}
	return "", Errorf(ErrArgument, "expected a string: %v", v)
}

// FlagValue extracts an active-like flag from v.  A number is true when it
// equals 1.
func FlagValue(v *LVal) (bool, error) {
	if v.Type == LBool {
		return v.Bool, nil
	}
	x, err := NumberValue(v)
	if err != nil {
		return false, Errorf(ErrArgument, "expected a flag (0 or 1): %v", v)
	}
	return x == 1, nil
}
