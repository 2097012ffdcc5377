package lisp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/luthersystems/beatlisp/music"
	"github.com/luthersystems/beatlisp/parser/token"
)

// LValType is the type of an LVal
type LValType uint

// Possible LValType values.  The syntax node types (LNumber, LString,
// LSymbol, LSExpr, LQuote) are decided once by the parser; the remaining
// types are only produced by evaluation.
const (
	LInvalid LValType = iota
	LNumber
	LString
	LSymbol
	LSExpr
	LQuote
	LBool
	LFun
	LEvent
	LNoValue
	numLValTypes
)

var lvalTypeStrings = [numLValTypes]string{
	LInvalid: "INVALID",
	LNumber:  "number",
	LString:  "string",
	LSymbol:  "symbol",
	LSExpr:   "list",
	LQuote:   "quote",
	LBool:    "bool",
	LFun:     "function",
	LEvent:   "event",
	LNoValue: "no-value",
}

func (t LValType) String() string {
	if t >= numLValTypes {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// KeywordPrefix marks a symbol as a named argument key when it appears in the
// argument list of a function call.
const KeywordPrefix = ":"

// LVal is a lisp value.  Syntax trees produced by the parser and the values
// produced by evaluation share this representation so that quoted syntax can
// be handed to functions as data.  An LVal is never modified after it has
// been constructed.
type LVal struct {
	Type LValType

	// Source is the location of the token which produced a syntax node.  It
	// is nil for values created during evaluation.
	Source *token.Location

	Num   float64
	Str   string // string value or symbol name
	Bool  bool
	Cells []*LVal // list elements or the single quoted expression
	Brace bool    // the list was written with square brackets

	// Variables needed for function values
	Builtin LBuiltinDef
	Env     *LEnv
	Formals []string
	Body    []*LVal

	Event music.Event
}

// Number returns an LVal representing the number x.
func Number(x float64) *LVal {
	return &LVal{
		Type: LNumber,
		Num:  x,
	}
}

// String returns an LVal representing the string s.
func String(s string) *LVal {
	return &LVal{
		Type: LString,
		Str:  s,
	}
}

// Symbol returns an LVal representing the symbol s.
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// Bool returns an LVal representing the boolean b.
func Bool(b bool) *LVal {
	return &LVal{
		Type: LBool,
		Bool: b,
	}
}

// SExpr returns an LVal representing a list with the given elements.
func SExpr(cells []*LVal) *LVal {
	return &LVal{
		Type:  LSExpr,
		Cells: cells,
	}
}

// Nil returns an LVal representing the empty list.
func Nil() *LVal {
	return SExpr(nil)
}

// Quote returns an LVal that quotes v.
func Quote(v *LVal) *LVal {
	return &LVal{
		Type:  LQuote,
		Cells: []*LVal{v},
	}
}

// NoValue returns the sentinel bound to closure parameters that were not
// given an argument.
func NoValue() *LVal {
	return &LVal{Type: LNoValue}
}

// Fun returns an LVal representing a builtin function.
func Fun(def LBuiltinDef) *LVal {
	return &LVal{
		Type:    LFun,
		Builtin: def,
	}
}

// Lambda returns anonymous function that has formals as arguments and the
// given body, which may reference symbols specified in the list of formals.
// Free symbols in body are resolved in env, the environment the function was
// defined in.
func Lambda(formals []string, body []*LVal, env *LEnv) *LVal {
	return &LVal{
		Type:    LFun,
		Env:     env,
		Formals: formals,
		Body:    body,
	}
}

// Event returns an LVal wrapping a music event descriptor.
func Event(ev music.Event) *LVal {
	return &LVal{
		Type:  LEvent,
		Event: ev,
	}
}

// Len returns the number of list elements in v.
func (v *LVal) Len() int {
	return len(v.Cells)
}

// IsNil returns true if v is the empty list.
func (v *LVal) IsNil() bool {
	return v.Type == LSExpr && len(v.Cells) == 0
}

// IsBuiltin returns true if v is a builtin function.
func (v *LVal) IsBuiltin() bool {
	return v.Type == LFun && v.Builtin != nil
}

// IsKeyword returns true if v is a symbol that names a named argument key
// (e.g. :velocity).
func (v *LVal) IsKeyword() bool {
	return v.Type == LSymbol &&
		len(v.Str) > len(KeywordPrefix) &&
		strings.HasPrefix(v.Str, KeywordPrefix)
}

// Keyword returns the name of a keyword symbol without its prefix.
func (v *LVal) Keyword() string {
	return strings.TrimPrefix(v.Str, KeywordPrefix)
}

// Truthy returns true unless v is false, numeric zero, the empty string, or
// the empty list.
func (v *LVal) Truthy() bool {
	switch v.Type {
	case LBool:
		return v.Bool
	case LNumber:
		return v.Num != 0
	case LString:
		return v.Str != ""
	case LSExpr:
		return len(v.Cells) != 0
	default:
		return true
	}
}

func (v *LVal) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Type {
	case LNumber:
		return FormatNumber(v.Num)
	case LString:
		return strconv.Quote(v.Str)
	case LSymbol:
		return v.Str
	case LBool:
		return strconv.FormatBool(v.Bool)
	case LSExpr:
		if v.Brace {
			return exprString(v.Cells, "[", "]")
		}
		return exprString(v.Cells, "(", ")")
	case LQuote:
		if len(v.Cells) == 0 {
			return "'"
		}
		return "'" + v.Cells[0].String()
	case LFun:
		if v.Builtin != nil {
			return fmt.Sprintf("<builtin-function ``%s''>", v.Builtin.Name())
		}
		formals := make([]*LVal, len(v.Formals))
		for i := range v.Formals {
			formals[i] = Symbol(v.Formals[i])
		}
		return exprString(append([]*LVal{Symbol("lambda"), SExpr(formals)}, v.Body...), "(", ")")
	case LEvent:
		if v.Event == nil {
			return "<nil-event>"
		}
		return v.Event.String()
	case LNoValue:
		return "<no-value>"
	default:
		return fmt.Sprintf("%#v", v)
	}
}

// FormatNumber formats x the way numbers are written in source.
func FormatNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func exprString(cells []*LVal, left string, right string) string {
	if len(cells) == 0 {
		return left + right
	}
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(right)
	return buf.String()
}
