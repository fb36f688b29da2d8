// Package execctx implements the per-thread execution context: call
// stack, exception state, return state, break/continue flags, the LIFO
// defer stack, and the manually-freed set.
package execctx

import (
	"github.com/nbeerbower/hemlock/internal/ast"
	"github.com/nbeerbower/hemlock/internal/environment"
	"github.com/nbeerbower/hemlock/internal/value"
)

// Frame is one call-stack entry, carrying enough to render a stack trace.
type Frame struct {
	FuncName       string
	CallSite       ast.Pos
	DeferWatermark int // len(Context.Defers) at frame entry
}

// DeferredCall pairs a deferred expression with the environment it was
// scheduled in.
type DeferredCall struct {
	Expr ast.Expr
	Env  *environment.Environment
}

// FreedSet tracks heap payloads marked as manually freed so a later pass
// never double-releases them; no registered builtin calls Mark. Scoped to
// one Context's lifetime rather than process-global: every Interpreter,
// including each spawned task's, owns its own Context and set.
type FreedSet map[value.HeapPayload]struct{}

func (f FreedSet) Mark(p value.HeapPayload)      { f[p] = struct{}{} }
func (f FreedSet) IsFreed(p value.HeapPayload) bool { _, ok := f[p]; return ok }

// Context is the per-thread execution state. Each task
// (internal/concurrency.Task) owns exactly one Context; it is never shared
// across goroutines.
type Context struct {
	Frames []Frame

	IsThrowing bool
	Exception  value.Value

	IsReturning bool
	ReturnValue value.Value

	IsBreaking   bool
	IsContinuing bool

	Defers []DeferredCall

	Freed FreedSet
}

// New creates an empty execution context with its own manually-freed
// set.
func New() *Context {
	return &Context{Freed: make(FreedSet)}
}

// Unwinding reports whether any control-flow flag requires composite
// evaluator steps to bail without further work.
func (c *Context) Unwinding() bool {
	return c.IsThrowing || c.IsReturning || c.IsBreaking || c.IsContinuing
}

// PushFrame enters a new call frame, recording the defer-stack
// watermark it must drain back to on exit.
func (c *Context) PushFrame(funcName string, callSite ast.Pos) {
	c.Frames = append(c.Frames, Frame{
		FuncName:       funcName,
		CallSite:       callSite,
		DeferWatermark: len(c.Defers),
	})
}

// PopFrame removes the top call frame and returns its watermark, used
// by the caller to drain the defer stack down to it.
func (c *Context) PopFrame() int {
	n := len(c.Frames) - 1
	f := c.Frames[n]
	c.Frames = c.Frames[:n]
	return f.DeferWatermark
}

// StackTrace renders the current call stack, innermost frame first.
func (c *Context) StackTrace() []string {
	out := make([]string, 0, len(c.Frames))
	for i := len(c.Frames) - 1; i >= 0; i-- {
		f := c.Frames[i]
		out = append(out, formatFrame(f))
	}
	return out
}

func formatFrame(f Frame) string {
	return f.FuncName + " (" + posString(f.CallSite) + ")"
}

func posString(p ast.Pos) string {
	return itoa(p.Line) + ":" + itoa(p.Col)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// PushDefer pushes a deferred expression onto the LIFO defer stack.
func (c *Context) PushDefer(expr ast.Expr, env *environment.Environment) {
	c.Defers = append(c.Defers, DeferredCall{Expr: expr, Env: env})
}

// PopDefersTo pops and returns deferred calls down to watermark, in LIFO
// (most-recently-pushed-first) order, matching "drained LIFO up to the
// frame's entry watermark".
func (c *Context) PopDefersTo(watermark int) []DeferredCall {
	n := len(c.Defers)
	if n <= watermark {
		return nil
	}
	out := make([]DeferredCall, 0, n-watermark)
	for i := n - 1; i >= watermark; i-- {
		out = append(out, c.Defers[i])
	}
	c.Defers = c.Defers[:watermark]
	return out
}

// Throw sets the throwing flag and stashes the exception value, matching
// "set is_throwing=true and stash the Value on the context".
func (c *Context) Throw(v value.Value) {
	c.IsThrowing = true
	c.Exception = v
}

// ClearThrow clears the throwing flag, used when a catch block handles the
// exception.
func (c *Context) ClearThrow() {
	c.IsThrowing = false
	c.Exception = value.Null()
}

// Return sets the returning flag and value.
func (c *Context) Return(v value.Value) {
	c.IsReturning = true
	c.ReturnValue = v
}

// ClearReturn clears the returning flag, consumed by the enclosing
// function.
func (c *Context) ClearReturn() {
	c.IsReturning = false
	c.ReturnValue = value.Null()
}
