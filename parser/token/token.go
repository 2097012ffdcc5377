package token

import "fmt"

// Token is a lexical token scanned from program source.  For STRING tokens
// Text holds the decoded string value (escapes resolved, no quotes).  For
// all other types Text is the raw source text of the token.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	if tok == nil {
		return "<nil>"
	}
	if tok.Type == STRING {
		return fmt.Sprintf("%s %q", tok.Type, tok.Text)
	}
	return fmt.Sprintf("%s %s", tok.Type, tok.Text)
}

type Type uint

// Type constants used for the lexer/parser.
const (
	INVALID Type = iota
	EOF

	// Atomic expressions & literals
	SYMBOL
	NUMBER
	STRING

	// Operators
	QUOTE

	// Delimiters
	PAREN_L
	PAREN_R
	BRACE_L
	BRACE_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		EOF:     "EOF",
		SYMBOL:  "symbol",
		NUMBER:  "number",
		STRING:  "string",
		QUOTE:   "'",
		PAREN_L: "(",
		PAREN_R: ")",
		BRACE_L: "[",
		BRACE_R: "]",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// IsPunct returns true for single character punctuation tokens (brackets and
// the quote marker).
func (typ Type) IsPunct() bool {
	switch typ {
	case QUOTE, PAREN_L, PAREN_R, BRACE_L, BRACE_R:
		return true
	}
	return false
}

// IsOpen returns true if typ opens a list.
func (typ Type) IsOpen() bool {
	return typ == PAREN_L || typ == BRACE_L
}

// IsClose returns true if typ closes a list.
func (typ Type) IsClose() bool {
	return typ == PAREN_R || typ == BRACE_R
}

// Closer returns the token type that closes a list opened by typ.  Closer
// returns INVALID if typ does not open a list.
func (typ Type) Closer() Type {
	switch typ {
	case PAREN_L:
		return PAREN_R
	case BRACE_L:
		return BRACE_R
	}
	return INVALID
}

type Location struct {
	File string
	Pos  int // byte offset in the original source
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number in runes (starting at 1 when tracked)
}

func (loc *Location) String() string {
	if loc == nil {
		return "?"
	}
	file := loc.File
	if file == "" {
		file = "<input>"
	}
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", file, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", file, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", file, loc.Line, loc.Col)
	}
}
