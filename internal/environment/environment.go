// Package environment implements the lexically nested name→value bindings
// described in: "An environment is a pair {map: name→Value, parent: optional
// Environment} with refcount."
package environment

import (
	"fmt"

	"github.com/nbeerbower/hemlock/internal/value"
)

// Environment is one frame of lexical scope. The global root has a nil
// parent; function bodies run in a fresh frame parented to their closure;
// blocks push a fresh frame parented to their enclosing scope.
type Environment struct {
	value.RC
	vars   map[string]value.Value
	parent *Environment
}

// New creates a root environment with no parent (the global frame).
func New() *Environment {
	return &Environment{RC: value.NewRC(), vars: make(map[string]value.Value)}
}

// Child creates a new frame nested inside e.
func (e *Environment) Child() *Environment {
	c := New()
	c.parent = e
	return c
}

// Parent returns the enclosing frame, or nil at the root.
func (e *Environment) Parent() *Environment { return e.parent }

// Get walks parents until it finds name, matching "env_get walks parents".
func (e *Environment) Get(name string) (value.Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}
	return value.Null(), false
}

// Set mutates the nearest binding that already exists, matching "env_set
// mutates the nearest binding that exists, or errors if none".
func (e *Environment) Set(name string, v value.Value) error {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.vars[name]; ok {
			f.vars[name] = v
			return nil
		}
	}
	return fmt.Errorf("assignment to undeclared variable %q", name)
}

// Define unconditionally inserts into the current frame, matching
// "env_define unconditionally inserts into the current frame". A
// redeclaration in the same frame replaces the prior binding.
func (e *Environment) Define(name string, v value.Value) {
	e.vars[name] = v
}

// Has reports whether name is bound in this frame or any ancestor.
func (e *Environment) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// DefinedHere reports whether name is bound directly in this frame,
// without walking parents.
func (e *Environment) DefinedHere(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Names returns the names bound directly in this frame, in no particular
// order.
func (e *Environment) Names() []string {
	out := make([]string, 0, len(e.vars))
	for k := range e.vars {
		out = append(out, k)
	}
	return out
}

func (e *Environment) Release() int32 { return e.Dec() }
