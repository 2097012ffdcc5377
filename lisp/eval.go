package lisp

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// DefaultMaxDepth is the default limit on the nesting of forms being
// evaluated at once.
const DefaultMaxDepth = 10000

// Runtime holds the state of an evaluation that is not part of the lexical
// environment: the call stack and diagnostics.  A Runtime is not safe for
// concurrent use; concurrent evaluations should each use their own Runtime.
// Environments and values may be shared freely between runtimes.
type Runtime struct {
	Stack    *CallStack
	MaxDepth int
	Logger   *slog.Logger
	Stderr   io.Writer
	Reader   Reader
	Builtins []LBuiltinDef // added to global environments after the defaults

	depth int
}

// NewRuntime returns a Runtime configured by configs.
func NewRuntime(configs ...Config) *Runtime {
	rt := &Runtime{
		Stack:    &CallStack{},
		MaxDepth: DefaultMaxDepth,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Stderr:   os.Stderr,
	}
	for _, config := range configs {
		config(rt)
	}
	return rt
}

// NewGlobalEnv returns a root environment containing every primitive and the
// runtime's additional builtins.
func (rt *Runtime) NewGlobalEnv() *LEnv {
	return NewGlobalEnv(rt.Builtins...)
}

// NewGlobalEnv returns a root environment containing every primitive along
// with extra, which may shadow primitives of the same name.  Special forms
// cannot be shadowed.
func NewGlobalEnv(extra ...LBuiltinDef) *LEnv {
	bindings := make(map[string]*LVal, len(langBuiltins)+len(extra)+2)
	for _, def := range DefaultBuiltins() {
		bindings[def.Name()] = Fun(def)
	}
	for _, def := range extra {
		bindings[def.Name()] = Fun(def)
	}
	bindings["true"] = Bool(true)
	bindings["false"] = Bool(false)
	return NewEnv(bindings, nil)
}

// Interpret evaluates program in a fresh global environment using a default
// Runtime.
func Interpret(program []*LVal) ([]*LVal, error) {
	return NewRuntime().Interpret(program)
}

// Eval evaluates v in env using a default Runtime.
func Eval(v *LVal, env *LEnv) (*LVal, error) {
	return NewRuntime().Eval(v, env)
}

// Interpret creates one fresh global environment and evaluates each
// top-level form of program against it, left to right.  The value of every
// form is returned in order.  The first error aborts interpretation and no
// values are returned.
func (rt *Runtime) Interpret(program []*LVal) ([]*LVal, error) {
	return rt.EvalProgram(program, rt.NewGlobalEnv())
}

// EvalProgram is like Interpret but evaluates forms in env.
func (rt *Runtime) EvalProgram(program []*LVal, env *LEnv) ([]*LVal, error) {
	results := make([]*LVal, 0, len(program))
	for _, form := range program {
		v, err := rt.Eval(form, env)
		if err != nil {
			rt.Logger.Debug("evaluation failed", "form", form.String(), "err", err)
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

// InterpretString parses src with the runtime's Reader and interprets the
// resulting program.  The name labels source locations in errors.
func (rt *Runtime) InterpretString(name string, src string) ([]*LVal, error) {
	if rt.Reader == nil {
		return nil, Errorf(ErrUnknown, "runtime has no reader")
	}
	program, err := rt.Reader.Read(name, strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	rt.Logger.Debug("program parsed", "name", name, "forms", len(program))
	return rt.Interpret(program)
}

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.
func (rt *Runtime) Eval(v *LVal, env *LEnv) (*LVal, error) {
	switch v.Type {
	case LSymbol:
		val, err := env.Lookup(v.Str)
		if err != nil {
			lerr, _ := AsError(err)
			return nil, lerr.WithSource(v.Source)
		}
		if val.Type == LNoValue {
			lerr := Errorf(ErrMissingArgument, "no argument was given for parameter %s", v.Str)
			lerr.Names = []string{v.Str}
			return nil, lerr.WithSource(v.Source)
		}
		return val, nil
	case LQuote:
		if len(v.Cells) != 1 {
			return nil, rt.annotate(Errorf(ErrUnknown, "malformed quote"), v)
		}
		return v.Cells[0], nil
	case LSExpr:
		return rt.evalSExpr(v, env)
	default:
		return v, nil
	}
}

func (rt *Runtime) evalSExpr(s *LVal, env *LEnv) (*LVal, error) {
	if len(s.Cells) == 0 {
		return Nil(), nil
	}
	rt.depth++
	defer func() { rt.depth-- }()
	if rt.MaxDepth > 0 && rt.depth > rt.MaxDepth {
		return nil, rt.annotate(Errorf(ErrStackOverflow, "maximum evaluation depth exceeded: %d", rt.MaxDepth), s)
	}

	head := s.Cells[0]
	if head.Type == LSymbol {
		if op, ok := langSpecialOps[head.Str]; ok {
			v, err := op(rt, env, s)
			if err != nil {
				return nil, rt.annotate(err, s)
			}
			return v, nil
		}
	}

	f, err := rt.Eval(head, env)
	if err != nil {
		return nil, rt.annotate(err, s)
	}
	if f.Type != LFun {
		lerr := Errorf(ErrNotAFunction, "first element of expression is not a function: %v", f)
		if head.Type == LSymbol {
			lerr.Names = []string{head.Str}
		}
		return nil, rt.annotate(lerr, s)
	}
	args, named, err := rt.evalArgs(env, s.Cells[1:])
	if err != nil {
		return nil, rt.annotate(err, s)
	}

	rt.Stack.Push(funName(head, f), s.Source)
	defer rt.Stack.Pop()
	v, err := rt.Call(f, args, named, env)
	if err != nil {
		return nil, rt.annotate(err, s)
	}
	return v, nil
}

// evalArgs splits cells into positional and named arguments and evaluates
// them left to right.
func (rt *Runtime) evalArgs(env *LEnv, cells []*LVal) ([]*LVal, Named, error) {
	var args []*LVal
	var named Named
	for i := 0; i < len(cells); i++ {
		c := cells[i]
		if !c.IsKeyword() {
			v, err := rt.Eval(c, env)
			if err != nil {
				return nil, nil, err
			}
			args = append(args, v)
			continue
		}
		key := c.Keyword()
		if i+1 >= len(cells) {
			lerr := Errorf(ErrMissingNamedArgumentValue, "named argument %s has no value", c.Str)
			lerr.Names = []string{key}
			return nil, nil, lerr.WithSource(c.Source)
		}
		if _, ok := named[key]; ok {
			lerr := Errorf(ErrArgument, "named argument %s given more than once", c.Str)
			lerr.Names = []string{key}
			return nil, nil, lerr.WithSource(c.Source)
		}
		i++
		v, err := rt.Eval(cells[i], env)
		if err != nil {
			return nil, nil, err
		}
		if named == nil {
			named = make(Named)
		}
		named[key] = v
	}
	return args, named, nil
}

// Call invokes LFun fun with the given arguments.  The env is the caller's
// environment and is only visible to builtins; closures evaluate their body
// in the environment they captured.
func (rt *Runtime) Call(fun *LVal, args []*LVal, named Named, env *LEnv) (*LVal, error) {
	if fun.Type != LFun {
		return nil, Errorf(ErrNotAFunction, "value is not a function: %v", fun)
	}
	if fun.Builtin != nil {
		err := checkNamedArgs(fun.Builtin.Name(), fun.Builtin.NamedArgs(), named)
		if err != nil {
			return nil, err
		}
		return fun.Builtin.Eval(rt, env, args, named)
	}

	err := checkNamedArgs("lambda", nil, named)
	if err != nil {
		return nil, err
	}
	if len(args) > len(fun.Formals) {
		return nil, Errorf(ErrArityMismatch, "function expects at most %d arguments (got %d)",
			len(fun.Formals), len(args))
	}
	bindings := make(map[string]*LVal, len(fun.Formals))
	for i, name := range fun.Formals {
		if i < len(args) {
			bindings[name] = args[i]
		} else {
			bindings[name] = NoValue()
		}
	}
	return rt.evalBody(fun.Body, fun.Env.Extend(bindings))
}

// evalBody evaluates forms in order and returns the value of the last one, or
// the empty list when there are none.
func (rt *Runtime) evalBody(forms []*LVal, env *LEnv) (*LVal, error) {
	result := Nil()
	for _, form := range forms {
		v, err := rt.Eval(form, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// annotate attaches the location and rendering of form to err unless a more
// specific form has already done so.
func (rt *Runtime) annotate(err error, form *LVal) error {
	lerr, ok := AsError(err)
	if !ok {
		lerr = Errorf(ErrUnknown, "%v", err)
	}
	lerr.WithSource(form.Source)
	if lerr.Context == "" {
		lerr.Context = form.String()
	}
	if lerr.Stack == nil {
		lerr.Stack = rt.Stack.Copy()
	}
	return lerr
}

func checkNamedArgs(fname string, allowed []string, named Named) error {
	if len(named) == 0 {
		return nil
	}
	var bad []string
	for k := range named {
		if !containsString(allowed, k) {
			bad = append(bad, k)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Strings(bad)
	var lerr *Error
	if len(allowed) == 0 {
		lerr = Errorf(ErrUnsupportedNamedArguments, "%s does not accept named arguments: %s",
			fname, strings.Join(bad, ", "))
	} else {
		lerr = Errorf(ErrUnsupportedNamedArguments, "unsupported named arguments for %s: %s",
			fname, strings.Join(bad, ", "))
	}
	lerr.Names = bad
	return lerr
}

func funName(head *LVal, f *LVal) string {
	if f.Builtin != nil {
		return f.Builtin.Name()
	}
	if head.Type == LSymbol {
		return head.Str
	}
	return fmt.Sprintf("lambda/%d", len(f.Formals))
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
