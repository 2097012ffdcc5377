package lexer

import (
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/luthersystems/beatlisp/lisp"
	"github.com/luthersystems/beatlisp/parser/token"
)

// delimRunes terminate an atom in addition to whitespace.
const delimRunes = "()[]'\""

var numberRegexp = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)

// Tokenize scans all tokens from source.  Comments are removed before
// scanning but token locations refer to the original text.  The returned
// slice does not include the terminating EOF token.
func Tokenize(file string, source string) ([]*token.Token, error) {
	lex := New(token.NewScanner(file, StripComments(source)))
	var toks []*token.Token
	for {
		tok, err := lex.NextToken()
		if err != nil {
			if lerr, ok := lisp.AsError(err); ok && lerr.Context == "" {
				lerr.Context = token.Excerpt(source, lerr.Source)
			}
			return nil, err
		}
		if tok.Type == token.EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// StripComments blanks out every ``;'' comment in source.  Comment bytes
// (excluding newlines) are replaced with spaces so byte offsets, lines and the
// columns of all tokens are unchanged.  A semicolon inside a string literal
// does not begin a comment.
func StripComments(source string) string {
	if strings.IndexByte(source, ';') < 0 {
		return source
	}
	buf := []byte(source)
	inString := false
	inComment := false
	for i := 0; i < len(buf); i++ {
		c := buf[i]
		switch {
		case inComment:
			if c == '\n' {
				inComment = false
				continue
			}
			buf[i] = ' '
		case inString:
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
		case c == '"':
			inString = true
		case c == ';':
			inComment = true
			buf[i] = ' '
		}
	}
	return string(buf)
}

// Lexer produces tokens from a token.Scanner.
type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{
		scanner: s,
	}
}

// NextToken scans and returns the next token.  At the end of input NextToken
// returns a token of type token.EOF.  Any error returned is a *lisp.Error.
func (lex *Lexer) NextToken() (*token.Token, error) {
	err := lex.skipWhitespace()
	if err != nil {
		return nil, err
	}
	err = lex.readChar()
	if err == io.EOF {
		return lex.scanner.EmitToken(token.EOF), nil
	}
	if err != nil {
		return nil, lex.errorf(lisp.ErrInvalidText, "%v", err)
	}
	switch lex.ch {
	case '(':
		return lex.scanner.EmitToken(token.PAREN_L), nil
	case ')':
		return lex.scanner.EmitToken(token.PAREN_R), nil
	case '[':
		return lex.scanner.EmitToken(token.BRACE_L), nil
	case ']':
		return lex.scanner.EmitToken(token.BRACE_R), nil
	case '\'':
		return lex.scanner.EmitToken(token.QUOTE), nil
	case '"':
		return lex.readString()
	default:
		return lex.readAtom()
	}
}

func (lex *Lexer) readString() (*token.Token, error) {
	var buf strings.Builder
	for {
		err := lex.readChar()
		if err == io.EOF {
			return nil, lex.errorf(lisp.ErrUnterminatedString, "unterminated string literal")
		}
		if err != nil {
			return nil, lex.errorf(lisp.ErrInvalidText, "%v", err)
		}
		switch lex.ch {
		case '"':
			return lex.scanner.EmitText(token.STRING, buf.String()), nil
		case '\\':
			err := lex.readChar()
			if err == io.EOF {
				return nil, lex.errorf(lisp.ErrUnterminatedString, "unterminated string literal")
			}
			if err != nil {
				return nil, lex.errorf(lisp.ErrInvalidText, "%v", err)
			}
			buf.WriteRune(unescape(lex.ch))
		default:
			buf.WriteRune(lex.ch)
		}
	}
}

func unescape(c rune) rune {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		// \" and \\ along with any unknown escape keep the escaped rune.
		return c
	}
}

func (lex *Lexer) readAtom() (*token.Token, error) {
	for {
		c, ok := lex.scanner.Peek()
		if ok && isDelim(c) || !ok && lex.scanner.AtEOF() {
			break
		}
		// an invalid utf-8 sequence is reported by readChar
		err := lex.readChar()
		if err != nil {
			return nil, lex.errorf(lisp.ErrInvalidText, "%v", err)
		}
	}
	if numberRegexp.MatchString(lex.scanner.Text()) {
		return lex.scanner.EmitToken(token.NUMBER), nil
	}
	return lex.scanner.EmitToken(token.SYMBOL), nil
}

func (lex *Lexer) skipWhitespace() error {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || !unicode.IsSpace(c) {
			break
		}
		if err := lex.readChar(); err != nil {
			return lex.errorf(lisp.ErrInvalidText, "%v", err)
		}
	}
	lex.scanner.Ignore()
	return nil
}

func (lex *Lexer) readChar() error {
	err := lex.scanner.ScanRune()
	if err != nil {
		return err
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

// errorf returns an error located at the start of the current token.
func (lex *Lexer) errorf(k lisp.ErrorKind, format string, v ...interface{}) error {
	lerr := lisp.Errorf(k, format, v...)
	lerr.Source = lex.scanner.LocStart()
	return lerr
}

func isDelim(c rune) bool {
	return unicode.IsSpace(c) || strings.ContainsRune(delimRunes, c)
}
