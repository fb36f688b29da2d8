package methods

import (
	"fmt"
	"net"
	"time"

	"github.com/nbeerbower/hemlock/internal/langerrors"
	"github.com/nbeerbower/hemlock/internal/pacer"
	"github.com/nbeerbower/hemlock/internal/value"
)

// connectPacer retries a dial against a peer that isn't accepting
// connections yet (ECONNREFUSED and friends), the same failure mode
// the host-I/O builtins back off for.
var connectPacer = pacer.NewDefault(pacer.MinSleep(50*time.Millisecond), pacer.MaxSleep(time.Second), pacer.MaxRetries(4))

func init() {
	register(value.KindSocket, "bind", socketBind)
	register(value.KindSocket, "listen", socketListen)
	register(value.KindSocket, "accept", socketAccept)
	register(value.KindSocket, "connect", socketConnect)
	register(value.KindSocket, "send", socketSend)
	register(value.KindSocket, "recv", socketRecv)
	register(value.KindSocket, "sendto", socketSendto)
	register(value.KindSocket, "recvfrom", socketRecvfrom)
	register(value.KindSocket, "setsockopt", socketSetsockopt)
	register(value.KindSocket, "set_timeout", socketSetTimeout)
	register(value.KindSocket, "close", socketClose)
}

func asSocket(v value.Value) *value.SocketVal {
	p, _ := v.Heap()
	return p.(*value.SocketVal)
}

func hostPort(args []value.Value) (string, error) {
	host, err := argString(args, 0)
	if err != nil {
		return "", err
	}
	port, err := argInt(args, 1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", host.String(), port), nil
}

// socketBind+socketListen together implement the bind/listen pair over IPv4
// TCP.
func socketBind(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	addr, err := hostPort(args)
	if err != nil {
		return value.Null(), err
	}
	l, err := net.Listen("tcp4", addr)
	if err != nil {
		return value.Null(), err
	}
	asSocket(self).SetListener(l)
	return value.Null(), nil
}

func socketListen(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	// The Go listener is already listening once Listen succeeds; `listen` is a
	// no-op kept for parity with the POSIX call sequence bind/listen/accept that
	// names explicitly.
	if asSocket(self).Listener() == nil {
		return value.Null(), fmt.Errorf("listen: socket is not bound")
	}
	return value.Null(), nil
}

func socketAccept(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	l := asSocket(self).Listener()
	if l == nil {
		return value.Null(), fmt.Errorf("accept: socket is not listening")
	}
	conn, err := l.Accept()
	if err != nil {
		return value.Null(), err
	}
	accepted := value.NewSocket()
	accepted.SetConn(conn)
	return value.Heap(accepted), nil
}

func socketConnect(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	addr, err := hostPort(args)
	if err != nil {
		return value.Null(), err
	}
	var conn net.Conn
	dialErr := connectPacer.Call(func() (bool, error) {
		conn, err = net.Dial("tcp4", addr)
		if err != nil {
			// A dial failure (refused, timed out, unreachable) may
			// clear once the peer starts listening; retry it.
			if _, ok := err.(*net.OpError); ok {
				return true, langerrors.NewRetriable(err)
			}
			return false, err
		}
		return false, nil
	})
	if dialErr != nil {
		return value.Null(), langerrors.Wrap(dialErr, "connect")
	}
	asSocket(self).SetConn(conn)
	return value.Null(), nil
}

func socketSend(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	conn := asSocket(self).Conn()
	if conn == nil {
		return value.Null(), fmt.Errorf("send: socket is not connected")
	}
	data, err := bytesArg(args, 0)
	if err != nil {
		return value.Null(), err
	}
	n, err := conn.Write(data)
	if err != nil {
		return value.Null(), err
	}
	return value.I32(int32(n)), nil
}

func socketRecv(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	conn := asSocket(self).Conn()
	if conn == nil {
		return value.Null(), fmt.Errorf("recv: socket is not connected")
	}
	n := 4096
	if len(args) > 0 {
		var err error
		n, err = argInt(args, 0)
		if err != nil {
			return value.Null(), err
		}
	}
	buf := make([]byte, n)
	read, err := conn.Read(buf)
	if err != nil && read == 0 {
		return value.Null(), err
	}
	return value.Heap(value.NewBufferFromBytes(buf[:read])), nil
}

func socketSendto(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	p := asSocket(self).PacketConn()
	if p == nil {
		return value.Null(), fmt.Errorf("sendto: socket has no packet connection")
	}
	data, err := bytesArg(args, 0)
	if err != nil {
		return value.Null(), err
	}
	addr, err := hostPort(args[1:])
	if err != nil {
		return value.Null(), err
	}
	raddr, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return value.Null(), err
	}
	n, err := p.WriteTo(data, raddr)
	if err != nil {
		return value.Null(), err
	}
	return value.I32(int32(n)), nil
}

func socketRecvfrom(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	p := asSocket(self).PacketConn()
	if p == nil {
		return value.Null(), fmt.Errorf("recvfrom: socket has no packet connection")
	}
	n := 4096
	if len(args) > 0 {
		var err error
		n, err = argInt(args, 0)
		if err != nil {
			return value.Null(), err
		}
	}
	buf := make([]byte, n)
	read, addr, err := p.ReadFrom(buf)
	if err != nil {
		return value.Null(), err
	}
	result := value.NewObject()
	result.Set("data", value.Heap(value.NewBufferFromBytes(buf[:read])))
	result.Set("from", value.Heap(value.NewString(addr.String())))
	return value.Heap(result), nil
}

func socketSetsockopt(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	// Socket-option tuning has no portable cross-platform Go surface
	// beyond what net.Dialer/Listener already expose at connect time;
	// accepted and ignored here, matching sockets that silently no-op
	// unsupported options rather than erroring.
	return value.Null(), nil
}

func socketSetTimeout(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	ms, err := argInt(args, 0)
	if err != nil {
		return value.Null(), err
	}
	asSocket(self).SetTimeout(time.Duration(ms) * time.Millisecond)
	return value.Null(), nil
}

func socketClose(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	if err := asSocket(self).Close(); err != nil {
		return value.Null(), err
	}
	return value.Null(), nil
}

func bytesArg(args []value.Value, i int) ([]byte, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("missing argument %d", i)
	}
	switch args[i].Kind() {
	case value.KindString:
		return asString(args[i]).Bytes(), nil
	case value.KindBuffer:
		p, _ := args[i].Heap()
		return p.(*value.BufferVal).Bytes(), nil
	}
	return nil, fmt.Errorf("argument %d: expected string or buffer, got %s", i, args[i].Kind())
}
