package lisp

import "fmt"

// specialOp evaluates a special form.  The form s is unevaluated and includes
// the head symbol.
type specialOp func(rt *Runtime, env *LEnv, s *LVal) (*LVal, error)

// langSpecialOps maps the names of special forms to their implementations.
// Special forms are dispatched before any environment lookup and so cannot
// be shadowed by bindings.
var langSpecialOps map[string]specialOp

func init() {
	langSpecialOps = map[string]specialOp{
		"quote":  opQuote,
		"let":    opLet,
		"lambda": opLambda,
		"if":     opIf,
	}
}

// IsSpecialOp returns true if name is the head of a special form.
func IsSpecialOp(name string) bool {
	_, ok := langSpecialOps[name]
	return ok
}

// (quote expr)
func opQuote(rt *Runtime, env *LEnv, s *LVal) (*LVal, error) {
	if len(s.Cells) != 2 {
		return nil, berrf("quote", "one argument expected (got %d)", len(s.Cells)-1)
	}
	return s.Cells[1], nil
}

// (let bindings body...)
//
// Bindings are folded left to right so each binding expression sees the
// names bound before it.
func opLet(rt *Runtime, env *LEnv, s *LVal) (*LVal, error) {
	if len(s.Cells) < 2 {
		return nil, berrf("let", "binding list expected")
	}
	bindlist, err := rt.letBindings(env, s.Cells[1])
	if err != nil {
		return nil, err
	}
	letenv := env
	for _, bind := range bindlist.Cells {
		if bind.Type != LSExpr || len(bind.Cells) != 2 {
			return nil, berrf("let", "binding is not a pair: %v", bind)
		}
		name := bind.Cells[0]
		if name.Type != LSymbol {
			return nil, berrf("let", "binding name is not a symbol: %v", name)
		}
		val, err := rt.Eval(bind.Cells[1], letenv)
		if err != nil {
			return nil, err
		}
		letenv = letenv.Bind(name.Str, val)
	}
	return rt.evalBody(s.Cells[2:], letenv)
}

// letBindings returns the list of binding pairs for a let form.  A quoted
// list, or a literal list of pairs, is taken as written.  Any other
// expression is evaluated and must produce a list.
func (rt *Runtime) letBindings(env *LEnv, expr *LVal) (*LVal, error) {
	switch {
	case expr.Type == LQuote && len(expr.Cells) == 1:
		expr = expr.Cells[0]
	case expr.Type == LSExpr && isPairList(expr):
	default:
		v, err := rt.Eval(expr, env)
		if err != nil {
			return nil, err
		}
		expr = v
	}
	if expr.Type != LSExpr {
		return nil, berrf("let", "binding list is not a list: %v", expr.Type)
	}
	return expr, nil
}

func isPairList(v *LVal) bool {
	for _, c := range v.Cells {
		if c.Type != LSExpr {
			return false
		}
	}
	return true
}

// (lambda params body...)
func opLambda(rt *Runtime, env *LEnv, s *LVal) (*LVal, error) {
	if len(s.Cells) < 2 {
		return nil, berrf("lambda", "parameter list expected")
	}
	params := s.Cells[1]
	if params.Type == LQuote && len(params.Cells) == 1 {
		params = params.Cells[0]
	}
	if params.Type != LSExpr {
		return nil, berrf("lambda", "parameter list is not a list: %v", params.Type)
	}
	formals := make([]string, len(params.Cells))
	for i, sym := range params.Cells {
		if sym.Type != LSymbol {
			return nil, berrf("lambda", "parameter is not a symbol: %v", sym)
		}
		if containsString(formals[:i], sym.Str) {
			return nil, berrf("lambda", "duplicate parameter: %s", sym.Str)
		}
		formals[i] = sym.Str
	}
	return Lambda(formals, s.Cells[2:], env), nil
}

// (if test-form then-form [else-form])
func opIf(rt *Runtime, env *LEnv, s *LVal) (*LVal, error) {
	if len(s.Cells) != 3 && len(s.Cells) != 4 {
		return nil, berrf("if", "two or three arguments expected (got %d)", len(s.Cells)-1)
	}
	test, err := rt.Eval(s.Cells[1], env)
	if err != nil {
		return nil, err
	}
	if test.Truthy() {
		return rt.Eval(s.Cells[2], env)
	}
	if len(s.Cells) == 4 {
		return rt.Eval(s.Cells[3], env)
	}
	return Nil(), nil
}

// berrf returns an ErrArgument error attributed to the named function or
// special form.
func berrf(name string, format string, v ...interface{}) *Error {
	return Errorf(ErrArgument, "%s: %s", name, fmt.Sprintf(format, v...))
}
