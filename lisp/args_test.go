package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamed(t *testing.T) {
	named := Named{
		"tempo":  Number(90),
		"bars":   String("2"),
		"active": Number(0),
		"sound":  Symbol("kick"),
		"swing":  Number(0.5),
	}
	assert.True(t, named.Has("tempo"))
	assert.False(t, named.Has("volume"))

	x, err := named.Number("tempo", 120)
	assert.NoError(t, err)
	assert.Equal(t, 90.0, x)
	x, err = named.Number("volume", -1)
	assert.NoError(t, err)
	assert.Equal(t, -1.0, x)

	n, err := named.Int("bars", 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	_, err = named.Int("swing", 1)
	if assert.Error(t, err) {
		assert.Equal(t, "argument-error: :swing: expected an integer: 0.5", err.Error())
	}

	b, err := named.Flag("active", true)
	assert.NoError(t, err)
	assert.False(t, b)

	s, err := named.String("sound", "")
	assert.NoError(t, err)
	assert.Equal(t, "kick", s)
}

func TestValueConversions(t *testing.T) {
	x, err := NumberValue(Bool(true))
	assert.NoError(t, err)
	assert.Equal(t, 1.0, x)
	_, err = NumberValue(Nil())
	assert.True(t, IsKind(err, ErrArgument))

	s, err := StringValue(Number(1.5))
	assert.NoError(t, err)
	assert.Equal(t, "1.5", s)

	b, err := FlagValue(Number(2))
	assert.NoError(t, err)
	assert.False(t, b)
	_, err = FlagValue(String("on"))
	assert.Error(t, err)
}
