package rdparser

import (
	"io"
	"strconv"

	"github.com/luthersystems/beatlisp/lisp"
	"github.com/luthersystems/beatlisp/parser/lexer"
	"github.com/luthersystems/beatlisp/parser/token"
)

// Option configures a Parser.
type Option func(*Parser)

// WithLegacyBrackets makes any closing bracket close any open list, so
// ``(a b]'' parses like ``(a b)''.  Strict matching is the default.
func WithLegacyBrackets() Option {
	return func(p *Parser) {
		p.legacy = true
	}
}

type reader struct {
	opts []Option
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader(opts ...Option) lisp.Reader {
	return &reader{opts: opts}
}

// Read implements lisp.Reader.
func (r *reader) Read(name string, src io.Reader) ([]*lisp.LVal, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return ParseString(name, string(b), r.opts...)
}

// ParseString tokenizes and parses source.
func ParseString(name string, source string, opts ...Option) ([]*lisp.LVal, error) {
	toks, err := lexer.Tokenize(name, source)
	if err != nil {
		return nil, err
	}
	return New(toks, source, opts...).ParseProgram()
}

// Parser is a lisp parser.  A Parser reads from a complete token slice with
// one token of lookahead.
type Parser struct {
	toks   []*token.Token
	next   int // index of the peek token
	curr   *token.Token
	source string
	legacy bool
}

// New initializes and returns a new Parser that reads tokens produced from
// source.  The source is only used to provide context in error messages.
func New(toks []*token.Token, source string, opts ...Option) *Parser {
	p := &Parser{
		toks:   toks,
		source: source,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseProgram parses expressions until tokens are exhausted.  The first
// error aborts parsing and no expressions are returned.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for p.PeekType() != token.EOF {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseExpression parses a single expression.
func (p *Parser) ParseExpression() (*lisp.LVal, error) {
	switch p.PeekType() {
	case token.NUMBER:
		return p.ParseNumber()
	case token.STRING:
		p.ReadToken()
		return p.tokenLVal(lisp.String(p.Token().Text)), nil
	case token.SYMBOL:
		p.ReadToken()
		return p.tokenLVal(lisp.Symbol(p.Token().Text)), nil
	case token.QUOTE:
		return p.ParseQuote()
	case token.PAREN_L, token.BRACE_L:
		return p.ParseList()
	case token.PAREN_R, token.BRACE_R:
		p.ReadToken()
		return nil, p.errorf(lisp.ErrUnexpectedClosingBracket, p.Token().Source,
			"unexpected closing bracket %s", p.Token().Text)
	case token.EOF:
		return nil, p.errorf(lisp.ErrUnexpectedEOF, p.endLoc(), "unexpected end of input")
	default:
		p.ReadToken()
		return nil, p.errorf(lisp.ErrInvalidText, p.Token().Source,
			"unexpected %s", p.Token().Type)
	}
}

// ParseNumber parses a numeric literal.
func (p *Parser) ParseNumber() (*lisp.LVal, error) {
	if !p.expect(token.NUMBER) {
		return nil, p.errorf(lisp.ErrInvalidNumber, p.endLoc(), "number expected")
	}
	text := p.Token().Text
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, p.errorf(lisp.ErrInvalidNumber, p.Token().Source,
			"invalid number literal: %s", text)
	}
	return p.tokenLVal(lisp.Number(x)), nil
}

// ParseQuote parses a quote marker and the single expression it quotes.
func (p *Parser) ParseQuote() (*lisp.LVal, error) {
	if !p.expect(token.QUOTE) {
		return nil, p.errorf(lisp.ErrUnexpectedEOF, p.endLoc(), "quote expected")
	}
	quote := p.Token()
	if p.PeekType() == token.EOF {
		return nil, p.errorf(lisp.ErrUnexpectedEOF, quote.Source,
			"unexpected end of input after quote")
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	v := lisp.Quote(expr)
	v.Source = quote.Source
	return v, nil
}

// ParseList parses a list opened by either kind of bracket.  The closer must
// match the opener unless the parser uses legacy brackets.
func (p *Parser) ParseList() (*lisp.LVal, error) {
	if !p.expect(token.PAREN_L, token.BRACE_L) {
		return nil, p.errorf(lisp.ErrUnexpectedEOF, p.endLoc(), "list expected")
	}
	open := p.Token()
	expr := lisp.SExpr(nil)
	expr.Source = open.Source
	expr.Brace = open.Type == token.BRACE_L
	for {
		switch p.PeekType() {
		case token.EOF:
			return nil, p.errorf(lisp.ErrMissingClosingBracket, open.Source,
				"missing closing bracket for %s", open.Text)
		case token.PAREN_R, token.BRACE_R:
			p.ReadToken()
			closer := p.Token()
			if !p.legacy && closer.Type != open.Type.Closer() {
				return nil, p.errorf(lisp.ErrMismatchedBrackets, closer.Source,
					"closing bracket %s does not match %s opened at %s",
					closer.Text, open.Text, open.Source)
			}
			return expr, nil
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		expr.Cells = append(expr.Cells, x)
	}
}

// ReadToken advances the parser and returns the new current token.
func (p *Parser) ReadToken() *token.Token {
	if p.next < len(p.toks) {
		p.curr = p.toks[p.next]
		p.next++
	}
	return p.curr
}

// Token returns the most recently read token.
func (p *Parser) Token() *token.Token {
	return p.curr
}

// Peek returns the next token or nil at the end of input.
func (p *Parser) Peek() *token.Token {
	if p.next >= len(p.toks) {
		return nil
	}
	return p.toks[p.next]
}

// PeekType returns the type of the next token, token.EOF at the end of
// input.
func (p *Parser) PeekType() token.Type {
	tok := p.Peek()
	if tok == nil {
		return token.EOF
	}
	return tok.Type
}

func (p *Parser) tokenLVal(v *lisp.LVal) *lisp.LVal {
	v.Source = p.Token().Source
	return v
}

func (p *Parser) expect(typ ...token.Type) bool {
	peekType := p.PeekType()
	for _, typ := range typ {
		if typ == peekType {
			p.ReadToken()
			return true
		}
	}
	return false
}

// endLoc returns the location of the last token, the best available location
// for the end of input.
func (p *Parser) endLoc() *token.Location {
	if len(p.toks) == 0 {
		return &token.Location{Line: 1, Col: 1}
	}
	return p.toks[len(p.toks)-1].Source
}

func (p *Parser) errorf(kind lisp.ErrorKind, loc *token.Location, format string, v ...interface{}) error {
	err := lisp.Errorf(kind, format, v...)
	err.Source = loc
	err.Context = token.Excerpt(p.source, loc)
	return err
}
