package token

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from in-memory source text.
// Scanner tracks byte offsets, lines and columns of the original text so
// tokens can always be traced back to where they were written.
type Scanner struct {
	file string
	src  string

	start     int // byte offset of the current token
	startLine int
	startCol  int

	next     int // byte offset of the rune following c
	nextLine int
	nextCol  int

	c     Rune
	cLine int
	cCol  int
}

// NewScanner initializes and returns a new Scanner reading src.  The file
// name is only used to label token locations.
func NewScanner(file string, src string) *Scanner {
	return &Scanner{
		file:      file,
		src:       src,
		startLine: 1,
		startCol:  1,
		nextLine:  1,
		nextCol:   1,
	}
}

// File returns the file name given to NewScanner.
func (s *Scanner) File() string {
	return s.file
}

// Source returns the complete text being scanned.
func (s *Scanner) Source() string {
	return s.src
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// EmitText is like EmitToken but uses text as the token text instead of the
// scanned source text.
func (s *Scanner) EmitText(typ Type, text string) *Token {
	tok := &Token{
		Type:   typ,
		Text:   text,
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.next
	s.startLine = s.nextLine
	s.startCol = s.nextCol
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return s.src[s.start:s.next]
}

// Rune returns the current unicode rune that is being scanned.
func (s *Scanner) Rune() rune {
	return s.c.C
}

// Peek returns the next rune to be scanned.  Peek returns false if the end of
// input has been reached or the next bytes are not valid utf-8.
func (s *Scanner) Peek() (rune, bool) {
	if s.next >= len(s.src) {
		return 0, false
	}
	c, n := utf8.DecodeRuneInString(s.src[s.next:])
	if (Rune{c, n}).IsRuneError() {
		return utf8.RuneError, false
	}
	return c, true
}

// AtEOF returns true if all source text has been scanned.
func (s *Scanner) AtEOF() bool {
	return s.next >= len(s.src)
}

// ScanRune attempts to scan a utf-8 rune from the input for inclusion in the
// current token.  ScanRune returns io.EOF at the end of input.
func (s *Scanner) ScanRune() error {
	if s.next >= len(s.src) {
		return io.EOF
	}
	c, n := utf8.DecodeRuneInString(s.src[s.next:])
	r := Rune{c, n}
	if r.IsRuneError() {
		return fmt.Errorf("invalid utf-8 sequence in source text starting with byte %q", s.src[s.next])
	}
	s.c = r
	s.cLine = s.nextLine
	s.cCol = s.nextCol
	s.next += n
	if c == '\n' {
		s.nextLine++
		s.nextCol = 1
	} else {
		s.nextCol++
	}
	return nil
}

// LocStart returns a Location referencing the beginning of the current token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Pos:  s.start,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the most recently scanned rune.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.next - s.c.N,
		Line: s.cLine,
		Col:  s.cCol,
	}
}

// Rune contains a rune that read by Scanner during peeking operations.
type Rune struct {
	C rune
	N int
}

// IsRuneError returns true if Rune represents an invalid utf-8 sequence read
// by utf8.DecodeRune.
func (r Rune) IsRuneError() bool {
	return r.C == utf8.RuneError && r.N == 1
}
