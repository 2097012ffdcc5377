package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvLookup(t *testing.T) {
	root := NewEnv(map[string]*LVal{"a": Number(1), "b": Number(2)}, nil)
	child := root.Bind("a", Number(10))

	v, err := child.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, "10", v.String())
	v, err = child.Lookup("b")
	require.NoError(t, err)
	assert.Equal(t, "2", v.String())

	v, err = root.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, "1", v.String(), "binding in a child must not affect the parent")

	_, err = child.Lookup("c")
	lerr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrUndefinedVariable, lerr.Kind)
	assert.Equal(t, []string{"c"}, lerr.Names)
}

func TestEnvImmutable(t *testing.T) {
	bindings := map[string]*LVal{"x": Number(1)}
	env := NewEnv(bindings, nil)
	bindings["x"] = Number(2)
	bindings["y"] = Number(3)

	v, ok := env.Get("x")
	require.True(t, ok)
	assert.Equal(t, "1", v.String())
	_, ok = env.Get("y")
	assert.False(t, ok)

	ext := env.Extend(map[string]*LVal{"y": Number(4)})
	_, ok = env.Get("y")
	assert.False(t, ok)
	v, ok = ext.Get("y")
	require.True(t, ok)
	assert.Equal(t, "4", v.String())
}

func TestEnvStructure(t *testing.T) {
	root := NewEnv(nil, nil)
	a := root.Bind("a", Number(1))
	b := a.Extend(map[string]*LVal{"b": Number(2), "a": Number(3)})

	assert.Nil(t, root.Parent())
	assert.Equal(t, a, b.Parent())
	assert.Equal(t, root, b.Root())
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, []string{"a", "b"}, b.Names())
}

func TestGlobalEnv(t *testing.T) {
	env := NewGlobalEnv()
	for _, name := range []string{"+", "note", "drum-machine", "true", "false"} {
		_, ok := env.Get(name)
		assert.True(t, ok, name)
	}
	for _, name := range []string{"let", "lambda", "if", "quote"} {
		_, ok := env.Get(name)
		assert.False(t, ok, name)
		assert.True(t, IsSpecialOp(name), name)
	}

	extra := NewBuiltin("note", nil, func(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
		return String("shadowed"), nil
	})
	env = NewGlobalEnv(extra)
	v, ok := env.Get("note")
	require.True(t, ok)
	assert.Equal(t, extra, v.Builtin)
}
