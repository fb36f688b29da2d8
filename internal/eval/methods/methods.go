// Package methods implements the per-kind method tables: strings,
// arrays, objects, channels, files, and sockets each expose a method
// table consulted by name, the way a fixed interface method set is
// looked up by the caller rather than by reflection.
package methods

import "github.com/nbeerbower/hemlock/internal/value"

// Caller lets a method body invoke a user-supplied function value (the
// callbacks passed to array.map/filter/reduce) without this package
// importing internal/eval — only internal/eval implements Caller and
// passes itself in, the same cycle-avoidance shape as
// value.FunctionVal.Closure.
type Caller interface {
	Call(fn value.Value, args []value.Value) (value.Value, error)
}

// Fn is one bound method body: self is the receiver, args are the
// already-evaluated call arguments.
type Fn func(self value.Value, args []value.Value, caller Caller) (value.Value, error)

// Table is a per-kind method table.
type Table struct {
	tables map[value.Kind]map[string]Fn
}

// Registry is the process-wide table of method tables, populated by
// this package's init() files, one per kind, each self-registering
// its methods.
var Registry = &Table{tables: make(map[value.Kind]map[string]Fn)}

// register adds a method to kind's table. Called from each kind's
// init() in this package.
func register(kind value.Kind, name string, fn Fn) {
	t, ok := Registry.tables[kind]
	if !ok {
		t = make(map[string]Fn)
		Registry.tables[kind] = t
	}
	t[name] = fn
}

// Lookup finds a method by kind and name.
func (t *Table) Lookup(kind value.Kind, name string) (Fn, bool) {
	byKind, ok := t.tables[kind]
	if !ok {
		return nil, false
	}
	fn, ok := byKind[name]
	return fn, ok
}
