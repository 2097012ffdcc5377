// Package repl implements an interactive read-eval-print loop.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/luthersystems/beatlisp/lisp"
	"github.com/luthersystems/beatlisp/parser"
)

// RunRepl runs a simple repl using rt.  Input which ends inside an
// unfinished expression is continued on the following lines.
func RunRepl(prompt string, rt *lisp.Runtime, opts ...parser.Option) error {
	s := newSession(rt, opts...)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       prompt,
		AutoComplete: &symbolCompleter{env: s.env},
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	s.stdout = rl.Stdout()
	s.stderr = rl.Stderr()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	for {
		var line []byte
		line, err = rl.ReadSlice()
		if err == readline.ErrInterrupt {
			s.reset()
			rl.SetPrompt(prompt)
			continue
		}
		if err != nil {
			break
		}
		if s.feed(string(line)) {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(contPrompt)
		}
	}
	if err != io.EOF {
		return err
	}
	return nil
}

// session holds the state of a repl between lines.  Values persist in one
// global environment.
type session struct {
	rt     *lisp.Runtime
	env    *lisp.LEnv
	opts   []parser.Option
	buf    []string
	stdout io.Writer
	stderr io.Writer
}

func newSession(rt *lisp.Runtime, opts ...parser.Option) *session {
	return &session{
		rt:     rt,
		env:    rt.NewGlobalEnv(),
		opts:   opts,
		stdout: io.Discard,
		stderr: io.Discard,
	}
}

func (s *session) reset() {
	s.buf = nil
}

// feed adds line to the pending input and evaluates it once it forms
// complete expressions.  feed returns false while more input is needed.
func (s *session) feed(line string) bool {
	s.buf = append(s.buf, line)
	src := strings.Join(s.buf, "\n")
	if strings.TrimSpace(src) == "" {
		s.buf = nil
		return true
	}
	forms, err := parser.Parse("repl", src, s.opts...)
	if parser.IsIncomplete(err) {
		return false
	}
	s.buf = nil
	if err != nil {
		s.errln(err)
		return true
	}
	for _, form := range forms {
		v, err := s.rt.Eval(form, s.env)
		if err != nil {
			s.errln(err)
			return true
		}
		fmt.Fprintln(s.stdout, v)
	}
	return true
}

func (s *session) errln(err error) {
	if lerr, ok := lisp.AsError(err); ok {
		fmt.Fprintln(s.stderr, lerr.Detail())
		return
	}
	fmt.Fprintln(s.stderr, err)
}

// symbolCompleter completes the symbol under the cursor with names bound in
// env.
type symbolCompleter struct {
	env *lisp.LEnv
}

// Do implements readline.AutoCompleter.
func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && !isDelimiter(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}
	var candidates [][]rune
	for _, name := range c.env.Names() {
		if strings.HasPrefix(name, prefix) && name != prefix {
			candidates = append(candidates, []rune(name[len(prefix):]))
		}
	}
	return candidates, len([]rune(prefix))
}

func isDelimiter(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '\'', '"', ' ', '\t', '\n':
		return true
	}
	return false
}
