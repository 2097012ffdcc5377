package lisp

import (
	"sort"
	"sync/atomic"
)

var envCount uint64

func getEnvID() uint {
	return uint(atomic.AddUint64(&envCount, 1))
}

// LEnv is a lisp environment.  An LEnv is immutable: extending it produces a
// new environment whose parent is the original, so closures that captured an
// environment never observe later bindings.  Lookups walk the chain of
// parents, innermost scope first.
type LEnv struct {
	ID     uint
	scope  map[string]*LVal
	parent *LEnv
}

// NewEnv returns a new LEnv containing bindings whose parent is parent.  The
// bindings map is copied and may be reused by the caller.
func NewEnv(bindings map[string]*LVal, parent *LEnv) *LEnv {
	scope := make(map[string]*LVal, len(bindings))
	for k, v := range bindings {
		scope[k] = v
	}
	return &LEnv{
		ID:     getEnvID(),
		scope:  scope,
		parent: parent,
	}
}

// Parent returns the enclosing environment or nil for a root environment.
func (env *LEnv) Parent() *LEnv {
	return env.parent
}

// Root returns the outermost environment in env's chain.
func (env *LEnv) Root() *LEnv {
	for env.parent != nil {
		env = env.parent
	}
	return env
}

// Get returns the value bound to name in the innermost scope defining it.
func (env *LEnv) Get(name string) (*LVal, bool) {
	for e := env; e != nil; e = e.parent {
		v, ok := e.scope[name]
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Lookup is like Get but returns an ErrUndefinedVariable error if name is
// unbound.
func (env *LEnv) Lookup(name string) (*LVal, error) {
	v, ok := env.Get(name)
	if !ok {
		lerr := Errorf(ErrUndefinedVariable, "undefined variable: %s", name)
		lerr.Names = []string{name}
		return nil, lerr
	}
	return v, nil
}

// Extend returns a child environment of env containing bindings.
func (env *LEnv) Extend(bindings map[string]*LVal) *LEnv {
	return NewEnv(bindings, env)
}

// Bind returns a child environment of env binding name to v.
func (env *LEnv) Bind(name string, v *LVal) *LEnv {
	return &LEnv{
		ID:     getEnvID(),
		scope:  map[string]*LVal{name: v},
		parent: env,
	}
}

// Names returns the sorted, distinct names visible from env.
func (env *LEnv) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for e := env; e != nil; e = e.parent {
		for k := range e.scope {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	sort.Strings(names)
	return names
}
