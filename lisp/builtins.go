package lisp

import (
	"bytes"
	"math"
)

// LBuiltin is a function that executes a lisp primitive.  Positional and
// named arguments have been evaluated in env, the caller's environment.
type LBuiltin func(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error)

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	// NamedArgs returns the named argument keys accepted by the function.
	// Calls passing any other key fail before Eval is called.
	NamedArgs() []string
	Eval(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error)
}

// NewBuiltin returns an LBuiltinDef that calls fn and accepts the given
// named argument keys.
func NewBuiltin(name string, named []string, fn LBuiltin) LBuiltinDef {
	return &langBuiltin{name, named, fn}
}

type langBuiltin struct {
	name  string
	named []string
	fun   LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) NamedArgs() []string {
	return fun.named
}

func (fun *langBuiltin) Eval(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	return fun.fun(rt, env, args, named)
}

var langBuiltins = []*langBuiltin{
	{"+", nil, builtinAdd},
	{"-", nil, builtinSub},
	{"*", nil, builtinMul},
	{"/", nil, builtinDiv},
	{"mod", nil, builtinMod},
	{"pow", nil, builtinPow},
	{"=", nil, builtinEq},
	{"!=", nil, builtinNEq},
	{"<", nil, builtinLT},
	{">", nil, builtinGT},
	{"<=", nil, builtinLEq},
	{">=", nil, builtinGEq},
	{"min", nil, builtinMin},
	{"max", nil, builtinMax},
	{"not", nil, builtinNot},
	{"list", nil, builtinList},
	{"first", nil, builtinFirst},
	{"rest", nil, builtinRest},
	{"length", nil, builtinLength},
	{"concat", nil, builtinConcat},
	{"repeat", nil, builtinRepeat},
	{"map", nil, builtinMap},
	{"debug-print", nil, builtinDebugPrint},
	{"debug-stack", nil, builtinDebugStack},
}

// DefaultBuiltins returns the primitives bound in every global environment.
func DefaultBuiltins() []LBuiltinDef {
	defs := make([]LBuiltinDef, 0, len(langBuiltins)+len(musicBuiltins))
	for _, b := range langBuiltins {
		defs = append(defs, b)
	}
	for _, b := range musicBuiltins {
		defs = append(defs, b)
	}
	return defs
}

func numbers(name string, args []*LVal) ([]float64, error) {
	xs := make([]float64, len(args))
	for i, v := range args {
		if v.Type != LNumber {
			return nil, berrf(name, "argument %d is not a number: %v", i+1, v)
		}
		xs[i] = v.Num
	}
	return xs, nil
}

func builtinAdd(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	xs, err := numbers("+", args)
	if err != nil {
		return nil, err
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return Number(sum), nil
}

func builtinMul(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	xs, err := numbers("*", args)
	if err != nil {
		return nil, err
	}
	prod := 1.0
	for _, x := range xs {
		prod *= x
	}
	return Number(prod), nil
}

func builtinSub(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	xs, err := numbers("-", args)
	if err != nil {
		return nil, err
	}
	switch len(xs) {
	case 0:
		return nil, Errorf(ErrArityMismatch, "-: at least one argument expected")
	case 1:
		return Number(-xs[0]), nil
	}
	diff := xs[0]
	for _, x := range xs[1:] {
		diff -= x
	}
	return Number(diff), nil
}

func builtinDiv(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	xs, err := numbers("/", args)
	if err != nil {
		return nil, err
	}
	switch len(xs) {
	case 0:
		return nil, Errorf(ErrArityMismatch, "/: at least one argument expected")
	case 1:
		xs = []float64{1, xs[0]}
	}
	quo := xs[0]
	for _, x := range xs[1:] {
		if x == 0 {
			return nil, Errorf(ErrDivideByZero, "/: division by zero")
		}
		quo /= x
	}
	return Number(quo), nil
}

func builtinMod(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	xs, err := numbers("mod", args)
	if err != nil {
		return nil, err
	}
	if len(xs) < 2 {
		return nil, Errorf(ErrArityMismatch, "mod: at least two arguments expected (got %d)", len(xs))
	}
	r := xs[0]
	for _, x := range xs[1:] {
		if x == 0 {
			return nil, Errorf(ErrDivideByZero, "mod: division by zero")
		}
		r = math.Mod(r, x)
	}
	return Number(r), nil
}

// pow folds from the left: (pow 2 3 2) is (2^3)^2.
func builtinPow(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	xs, err := numbers("pow", args)
	if err != nil {
		return nil, err
	}
	if len(xs) < 2 {
		return nil, Errorf(ErrArityMismatch, "pow: at least two arguments expected (got %d)", len(xs))
	}
	r := xs[0]
	for _, x := range xs[1:] {
		r = math.Pow(r, x)
	}
	return Number(r), nil
}

// chain returns true if rel holds for every consecutive pair of args.
func chain(args []*LVal, rel func(a, b *LVal) bool) *LVal {
	for i := 1; i < len(args); i++ {
		if !rel(args[i-1], args[i]) {
			return Bool(false)
		}
	}
	return Bool(true)
}

func numericChain(name string, args []*LVal, rel func(a, b float64) bool) (*LVal, error) {
	xs, err := numbers(name, args)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(xs); i++ {
		if !rel(xs[i-1], xs[i]) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func builtinEq(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	return chain(args, Equal), nil
}

func builtinNEq(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	return chain(args, func(a, b *LVal) bool { return !Equal(a, b) }), nil
}

func builtinLT(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	return numericChain("<", args, func(a, b float64) bool { return a < b })
}

func builtinGT(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	return numericChain(">", args, func(a, b float64) bool { return a > b })
}

func builtinLEq(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	return numericChain("<=", args, func(a, b float64) bool { return a <= b })
}

func builtinGEq(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	return numericChain(">=", args, func(a, b float64) bool { return a >= b })
}

func builtinMin(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	xs, err := numbers("min", args)
	if err != nil {
		return nil, err
	}
	if len(xs) == 0 {
		return nil, Errorf(ErrArityMismatch, "min: at least one argument expected")
	}
	m := xs[0]
	for _, x := range xs[1:] {
		m = math.Min(m, x)
	}
	return Number(m), nil
}

func builtinMax(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	xs, err := numbers("max", args)
	if err != nil {
		return nil, err
	}
	if len(xs) == 0 {
		return nil, Errorf(ErrArityMismatch, "max: at least one argument expected")
	}
	m := xs[0]
	for _, x := range xs[1:] {
		m = math.Max(m, x)
	}
	return Number(m), nil
}

func builtinNot(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	if len(args) != 1 {
		return nil, Errorf(ErrArityMismatch, "not: one argument expected (got %d)", len(args))
	}
	return Bool(!args[0].Truthy()), nil
}

func builtinList(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	cells := make([]*LVal, len(args))
	copy(cells, args)
	return SExpr(cells), nil
}

func listArg(name string, args []*LVal, i int) (*LVal, error) {
	if args[i].Type != LSExpr {
		return nil, berrf(name, "argument %d is not a list: %v", i+1, args[i].Type)
	}
	return args[i], nil
}

func builtinFirst(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	if len(args) != 1 {
		return nil, Errorf(ErrArityMismatch, "first: one argument expected (got %d)", len(args))
	}
	lis, err := listArg("first", args, 0)
	if err != nil {
		return nil, err
	}
	if len(lis.Cells) == 0 {
		return Nil(), nil
	}
	return lis.Cells[0], nil
}

func builtinRest(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	if len(args) != 1 {
		return nil, Errorf(ErrArityMismatch, "rest: one argument expected (got %d)", len(args))
	}
	lis, err := listArg("rest", args, 0)
	if err != nil {
		return nil, err
	}
	if len(lis.Cells) <= 1 {
		return Nil(), nil
	}
	return SExpr(lis.Cells[1:len(lis.Cells):len(lis.Cells)]), nil
}

func builtinLength(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	if len(args) != 1 {
		return nil, Errorf(ErrArityMismatch, "length: one argument expected (got %d)", len(args))
	}
	switch args[0].Type {
	case LSExpr:
		return Number(float64(len(args[0].Cells))), nil
	case LString:
		return Number(float64(len([]rune(args[0].Str)))), nil
	default:
		return nil, berrf("length", "argument is not a list or string: %v", args[0].Type)
	}
}

func builtinConcat(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	var cells []*LVal
	for i := range args {
		lis, err := listArg("concat", args, i)
		if err != nil {
			return nil, err
		}
		cells = append(cells, lis.Cells...)
	}
	return SExpr(cells), nil
}

// (repeat n value) returns a list containing value n times.
func builtinRepeat(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	if len(args) != 2 {
		return nil, Errorf(ErrArityMismatch, "repeat: two arguments expected (got %d)", len(args))
	}
	n, err := IntValue(args[0])
	if err != nil || n < 0 {
		return nil, berrf("repeat", "count is not a non-negative integer: %v", args[0])
	}
	cells := make([]*LVal, n)
	for i := range cells {
		cells[i] = args[1]
	}
	return SExpr(cells), nil
}

// (map fn list)
func builtinMap(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	if len(args) != 2 {
		return nil, Errorf(ErrArityMismatch, "map: two arguments expected (got %d)", len(args))
	}
	fn := args[0]
	if fn.Type != LFun {
		return nil, Errorf(ErrNotAFunction, "map: first argument is not a function: %v", fn)
	}
	lis, err := listArg("map", args, 1)
	if err != nil {
		return nil, err
	}
	cells := make([]*LVal, len(lis.Cells))
	for i, v := range lis.Cells {
		cells[i], err = rt.Call(fn, []*LVal{v}, nil, env)
		if err != nil {
			return nil, err
		}
	}
	return SExpr(cells), nil
}

// (debug-print values...) writes values to the runtime's stderr, separated by
// spaces.  Strings are written without quotes.
func builtinDebugPrint(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	var buf bytes.Buffer
	for i, v := range args {
		if i > 0 {
			buf.WriteString(" ")
		}
		if v.Type == LString {
			buf.WriteString(v.Str)
		} else {
			buf.WriteString(v.String())
		}
	}
	buf.WriteString("\n")
	_, err := rt.Stderr.Write(buf.Bytes())
	if err != nil {
		return nil, Errorf(ErrUnknown, "debug-print: %v", err)
	}
	return Nil(), nil
}

func builtinDebugStack(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	if err := arity("debug-stack", args, 0, 0); err != nil {
		return nil, err
	}
	_, err := rt.Stack.DebugPrint(rt.Stderr)
	if err != nil {
		return nil, Errorf(ErrUnknown, "debug-stack: %v", err)
	}
	return Nil(), nil
}

// Equal returns true if a and b are structurally equal values.  Functions
// are equal only to themselves.
func Equal(a, b *LVal) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case LNumber:
		return a.Num == b.Num
	case LString, LSymbol:
		return a.Str == b.Str
	case LBool:
		return a.Bool == b.Bool
	case LSExpr, LQuote:
		if len(a.Cells) != len(b.Cells) {
			return false
		}
		for i := range a.Cells {
			if !Equal(a.Cells[i], b.Cells[i]) {
				return false
			}
		}
		return true
	case LEvent:
		return a.Event.String() == b.Event.String()
	case LNoValue:
		return true
	default:
		return a == b
	}
}
