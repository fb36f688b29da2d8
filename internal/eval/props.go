package eval

import "github.com/nbeerbower/hemlock/internal/value"

// builtinProperty resolves the small set of non-method properties a
// file/socket/buffer/array exposes directly (length, capacity, etc.).
func (i *Interpreter) builtinProperty(target value.Value, name string) (value.Value, bool) {
	payload, ok := target.Heap()
	if !ok {
		return value.Null(), false
	}
	switch p := payload.(type) {
	case *value.StringVal:
		switch name {
		case "length":
			return value.I32(int32(p.CodepointLen())), true
		case "byte_length":
			return value.I32(int32(p.ByteLen())), true
		}
	case *value.ArrayVal:
		switch name {
		case "length":
			return value.I32(int32(p.Len())), true
		case "capacity":
			return value.I32(int32(p.Cap())), true
		}
	case *value.BufferVal:
		if name == "length" {
			return value.I32(int32(p.Len())), true
		}
	case *value.ObjectVal:
		if name == "length" {
			return value.I32(int32(p.Len())), true
		}
	case *value.FileVal:
		switch name {
		case "path":
			return value.Heap(value.NewString(p.Path())), true
		case "mode":
			return value.Heap(value.NewString(p.Mode())), true
		case "closed":
			return value.Bool(p.IsClosed()), true
		}
	case *value.ChannelVal:
		switch name {
		case "capacity":
			return value.I32(int32(p.Capacity())), true
		case "length":
			return value.I32(int32(p.Len())), true
		case "closed":
			return value.Bool(p.Closed()), true
		}
	case *value.SocketVal:
		if name == "closed" {
			return value.Bool(p.IsClosed()), true
		}
	}
	return value.Null(), false
}
