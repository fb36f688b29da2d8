package builtin

import "github.com/nbeerbower/hemlock/internal/value"

func init() {
	Register(&Info{Name: "new_socket", Call: biNewSocket})
}

// new_socket constructs an unbound socket Value; bind/listen/connect
// (internal/eval/methods/socket.go) attach the underlying net.Conn or
// net.Listener afterward.
func biNewSocket(args []value.Value, ctx interface{}) (value.Value, error) {
	return value.Heap(value.NewSocket()), nil
}
