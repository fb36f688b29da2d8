// Package eval implements the tree-walking evaluator: a pair of mutually
// recursive procedures over the AST, one for expressions and one for
// statements, both observing the execution context's control-flow flags
// after every sub-evaluation.
package eval

import (
	"fmt"

	"github.com/nbeerbower/hemlock/internal/ast"
	"github.com/nbeerbower/hemlock/internal/environment"
	"github.com/nbeerbower/hemlock/internal/eval/methods"
	"github.com/nbeerbower/hemlock/internal/execctx"
	"github.com/nbeerbower/hemlock/internal/value"
)

// MaxCallDepth bounds recursion to turn runaway recursion into a
// catchable exception rather than a Go stack overflow.
const MaxCallDepth = 4096

// Interpreter ties one Context to the global environment and the builtin
// registry. Each task (internal/concurrency.Task) constructs its own
// Interpreter sharing the global environment but owning a private
// Context, one execution context per thread.
type Interpreter struct {
	Global  *environment.Environment
	Ctx     *execctx.Context
	methods *methods.Table

	// MaxDepth overrides MaxCallDepth when positive, set from
	// internal/config so the --config file's max_call_depth tunable
	// actually takes effect.
	MaxDepth int

	// Host builtins have no field here: internal/builtin's RegisterAll
	// binds them into Global as ordinary callables, so this package never
	// imports internal/builtin.
}

// New creates an interpreter over a fresh global environment and
// execution context.
func New() *Interpreter {
	return &Interpreter{Global: environment.New(), Ctx: execctx.New(), methods: methods.Registry}
}

// NewTask creates an interpreter for a spawned task: it shares the given
// global environment (the one the closures were created against) but owns a
// brand-new Context, since control-flow state must never be shared across
// goroutines.
func NewTask(global *environment.Environment) *Interpreter {
	return &Interpreter{Global: global, Ctx: execctx.New(), methods: methods.Registry}
}

// maxCallDepth returns the effective recursion bound: MaxDepth when
// the caller set one, else the package default.
func (i *Interpreter) maxCallDepth() int {
	if i.MaxDepth > 0 {
		return i.MaxDepth
	}
	return MaxCallDepth
}

// Run evaluates every top-level statement of prog in the global
// environment. An uncaught throw at the top level is returned as a Go
// error.
func (i *Interpreter) Run(prog *ast.Program) error {
	for _, s := range prog.Stmts {
		i.execStmt(s, i.Global)
		if i.Ctx.IsThrowing {
			exc := i.Ctx.Exception
			i.Ctx.ClearThrow()
			return fmt.Errorf("uncaught exception: %s", exc.String())
		}
		if i.Ctx.IsReturning || i.Ctx.IsBreaking || i.Ctx.IsContinuing {
			// Top level has no enclosing loop/function to consume these;
			// treat as a no-op rather than propagating stray flags.
			i.Ctx.ClearReturn()
			i.Ctx.IsBreaking = false
			i.Ctx.IsContinuing = false
		}
	}
	return nil
}

// GlobalEnv exposes the shared global environment to builtins that
// need to spawn tasks or construct closures against it (internal/builtin),
// without that package importing eval's concrete Interpreter type.
func (i *Interpreter) GlobalEnv() *environment.Environment { return i.Global }

// Call implements the methods.Caller interface (internal/eval/methods)
// so higher-order array/object methods can invoke user callbacks
// without that package importing eval.
func (i *Interpreter) Call(fn value.Value, args []value.Value) (value.Value, error) {
	v, err := i.callValue(fn, args, nil, ast.Pos{})
	if err != nil {
		return value.Null(), err
	}
	if i.Ctx.IsThrowing {
		exc := i.Ctx.Exception
		i.Ctx.ClearThrow()
		return value.Null(), fmt.Errorf("exception: %s", exc.String())
	}
	return v, nil
}

// CallForTask invokes fn with args and reports the outcome without panicking
// or losing the exception Value, for internal/concurrency's task worker to
// stash on the Task.
func (i *Interpreter) CallForTask(fn value.Value, args []value.Value) (result value.Value, exception value.Value, threw bool) {
	v, err := i.callValue(fn, args, nil, ast.Pos{})
	if err != nil {
		return value.Null(), runtimeErrorf("%s", err.Error()), true
	}
	if i.Ctx.IsThrowing {
		exc := i.Ctx.Exception
		i.Ctx.ClearThrow()
		return value.Null(), exc, true
	}
	return v, value.Null(), false
}

func runtimeErrorf(format string, args ...interface{}) value.Value {
	return value.Heap(value.NewString(fmt.Sprintf(format, args...)))
}
