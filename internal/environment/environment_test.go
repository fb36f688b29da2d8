package environment

import (
	"testing"

	"github.com/nbeerbower/hemlock/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineAndGet(t *testing.T) {
	e := New()
	e.Define("x", value.I32(7))

	v, ok := e.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(7), v.AsInt64())
}

func TestGetWalksParents(t *testing.T) {
	root := New()
	root.Define("x", value.I32(1))
	child := root.Child()

	v, ok := child.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.AsInt64())
}

func TestSetMutatesNearestExistingBinding(t *testing.T) {
	root := New()
	root.Define("x", value.I32(1))
	child := root.Child()

	err := child.Set("x", value.I32(2))
	require.NoError(t, err)

	v, _ := root.Get("x")
	assert.Equal(t, int64(2), v.AsInt64())
	assert.False(t, child.DefinedHere("x"))
}

func TestSetUndeclaredErrors(t *testing.T) {
	e := New()
	err := e.Set("missing", value.Null())
	assert.Error(t, err)
}

func TestDefineInChildFrameShadowsOuter(t *testing.T) {
	root := New()
	root.Define("x", value.I32(1))
	child := root.Child()
	child.Define("x", value.I32(99))

	v, _ := child.Get("x")
	assert.Equal(t, int64(99), v.AsInt64())

	outer, _ := root.Get("x")
	assert.Equal(t, int64(1), outer.AsInt64())
}
