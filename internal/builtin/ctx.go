package builtin

import (
	"fmt"

	"github.com/nbeerbower/hemlock/internal/environment"
	"github.com/nbeerbower/hemlock/internal/value"
)

// hostEnv is satisfied by *eval.Interpreter. Builtins that need to
// spawn a task or bind a value into the global scope type-assert the
// ctx interface{} their Call receives down to this, the same
// leaf-package cycle-avoidance shape as methods.Caller.
type hostEnv interface {
	GlobalEnv() *environment.Environment
	Call(fn value.Value, args []value.Value) (value.Value, error)
}

func globalOf(ctx interface{}) (*environment.Environment, error) {
	h, ok := ctx.(hostEnv)
	if !ok {
		return nil, fmt.Errorf("builtin: host context does not expose a global environment")
	}
	return h.GlobalEnv(), nil
}
