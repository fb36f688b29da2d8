// Package builtin implements the closed, self-registered table of host
// builtins bound into the root environment at startup. Each builtin
// registers itself from its own file's init, the way a backend
// registry entry registers itself (fs.Register(&fs.RegInfo{...})).
package builtin

import (
	"github.com/nbeerbower/hemlock/internal/environment"
	"github.com/nbeerbower/hemlock/internal/value"
)

// Info describes one builtin, mirroring fs.RegInfo's
// name-plus-behavior shape at a finer grain.
type Info struct {
	Name string
	Call func(args []value.Value, ctx interface{}) (value.Value, error)
}

var registry = map[string]*Info{}
var order []string

// Register adds a builtin to the closed table. Called only from this
// package's own init functions — "The builtin list is closed at startup (no
// user extension)".
func Register(info *Info) {
	if _, exists := registry[info.Name]; !exists {
		order = append(order, info.Name)
	}
	registry[info.Name] = info
}

// Lookup finds a registered builtin by name.
func Lookup(name string) (*Info, bool) {
	info, ok := registry[name]
	return info, ok
}

// Names returns every registered builtin name in registration order,
// used by tests asserting the table is populated.
func Names() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// RegisterAll binds every builtin, every type-kind/signal/socket/math
// constant, and the process args array into global.
func RegisterAll(global *environment.Environment, scriptArgs []string) {
	for _, name := range order {
		info := registry[name]
		global.Define(name, value.Builtin(&value.BuiltinFn{
			Name: info.Name,
			Call: info.Call,
		}))
	}
	bindConstants(global)
	bindArgs(global, scriptArgs)
}

func bindArgs(global *environment.Environment, scriptArgs []string) {
	elems := make([]value.Value, len(scriptArgs))
	for i, a := range scriptArgs {
		elems[i] = value.Heap(value.NewString(a))
	}
	global.Define("args", value.Heap(value.NewArrayFrom(elems)))
}
