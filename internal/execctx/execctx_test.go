package execctx

import (
	"testing"

	"github.com/nbeerbower/hemlock/internal/ast"
	"github.com/nbeerbower/hemlock/internal/environment"
	"github.com/nbeerbower/hemlock/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrowAndClear(t *testing.T) {
	c := New()
	c.Throw(value.I32(7))
	assert.True(t, c.IsThrowing)
	assert.True(t, c.Unwinding())

	c.ClearThrow()
	assert.False(t, c.IsThrowing)
	assert.False(t, c.Unwinding())
}

func TestDeferDrainIsLIFO(t *testing.T) {
	c := New()
	env := environment.New()
	c.PushFrame("f", ast.Pos{Line: 1, Col: 1})
	wm := c.Frames[0].DeferWatermark

	c.PushDefer(&ast.Identifier{Name: "a"}, env)
	c.PushDefer(&ast.Identifier{Name: "b"}, env)
	c.PushDefer(&ast.Identifier{Name: "c"}, env)

	drained := c.PopDefersTo(wm)
	require.Len(t, drained, 3)
	assert.Equal(t, "c", drained[0].Expr.(*ast.Identifier).Name)
	assert.Equal(t, "b", drained[1].Expr.(*ast.Identifier).Name)
	assert.Equal(t, "a", drained[2].Expr.(*ast.Identifier).Name)
}

func TestFreedSetMarksAndChecks(t *testing.T) {
	c := New()
	obj := value.NewObject()
	assert.False(t, c.Freed.IsFreed(obj))
	c.Freed.Mark(obj)
	assert.True(t, c.Freed.IsFreed(obj))
}

func TestPushPopFrameWatermark(t *testing.T) {
	c := New()
	env := environment.New()
	c.PushFrame("outer", ast.Pos{})
	c.PushDefer(&ast.Identifier{Name: "x"}, env)
	c.PushFrame("inner", ast.Pos{})
	assert.Equal(t, 1, c.Frames[1].DeferWatermark)

	wm := c.PopFrame()
	assert.Equal(t, 1, wm)
	assert.Len(t, c.Frames, 1)
}
