package builtin

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/nbeerbower/hemlock/internal/value"
)

func init() {
	Register(&Info{Name: "ws_connect", Call: biWSConnect})
	Register(&Info{Name: "ws_send", Call: biWSSend})
	Register(&Info{Name: "ws_recv", Call: biWSRecv})
	Register(&Info{Name: "ws_close", Call: biWSClose})
}

// wsConns is the refcount-free side table backing the opaque `ptr`
// handle ws_connect returns: no ChannelVal/FileVal-style heap kind is
// warranted for a single outbound library handle, so it is tracked by
// address in a process-local map rather than adding a new Value kind
// for it.
var wsConns = map[uintptr]*websocket.Conn{}
var wsNext uintptr = 1

func biWSConnect(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) < 1 {
		return value.Null(), fmt.Errorf("ws_connect: missing url")
	}
	conn, _, err := websocket.DefaultDialer.Dial(args[0].String(), nil)
	if err != nil {
		return value.Null(), err
	}
	handle := wsNext
	wsNext++
	wsConns[handle] = conn
	return value.Ptr(handle), nil
}

func wsConnFor(args []value.Value) (*websocket.Conn, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("expected a websocket handle")
	}
	conn, ok := wsConns[uintptr(args[0].AsInt64())]
	if !ok {
		return nil, fmt.Errorf("unknown or closed websocket handle")
	}
	return conn, nil
}

func biWSSend(args []value.Value, ctx interface{}) (value.Value, error) {
	conn, err := wsConnFor(args)
	if err != nil {
		return value.Null(), err
	}
	if len(args) < 2 {
		return value.Null(), fmt.Errorf("ws_send: missing message")
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(args[1].String())); err != nil {
		return value.Null(), err
	}
	return value.Null(), nil
}

func biWSRecv(args []value.Value, ctx interface{}) (value.Value, error) {
	conn, err := wsConnFor(args)
	if err != nil {
		return value.Null(), err
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		return value.Null(), err
	}
	return value.Heap(value.NewString(string(data))), nil
}

func biWSClose(args []value.Value, ctx interface{}) (value.Value, error) {
	conn, err := wsConnFor(args)
	if err != nil {
		return value.Null(), err
	}
	handle := uintptr(args[0].AsInt64())
	delete(wsConns, handle)
	return value.Null(), conn.Close()
}
