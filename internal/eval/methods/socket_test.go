package methods

import (
	"net"
	"strconv"
	"testing"

	"github.com/nbeerbower/hemlock/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocketBindListenAcceptConnectSendRecv(t *testing.T) {
	serverSock := value.Heap(value.NewSocket())
	_, err := socketBind(serverSock, []value.Value{
		value.Heap(value.NewString("127.0.0.1")), value.I32(0),
	}, nil)
	require.NoError(t, err)

	_, err = socketListen(serverSock, nil, nil)
	require.NoError(t, err)

	addr := asSocket(serverSock).Listener().Addr().String()
	host, port := splitHostPort(t, addr)

	accepted := make(chan value.Value, 1)
	acceptErrs := make(chan error, 1)
	go func() {
		v, err := socketAccept(serverSock, nil, nil)
		accepted <- v
		acceptErrs <- err
	}()

	clientSock := value.Heap(value.NewSocket())
	_, err = socketConnect(clientSock, []value.Value{
		value.Heap(value.NewString(host)), value.I32(int32(port)),
	}, nil)
	require.NoError(t, err)

	require.NoError(t, <-acceptErrs)
	serverConn := <-accepted

	_, err = socketSend(clientSock, []value.Value{value.Heap(value.NewString("ping"))}, nil)
	require.NoError(t, err)

	recvd, err := socketRecv(serverConn, []value.Value{value.I32(16)}, nil)
	require.NoError(t, err)
	payload, _ := recvd.Heap()
	buf := payload.(*value.BufferVal)
	assert.Equal(t, "ping", string(buf.Bytes()))
}

func splitHostPort(t *testing.T, addr string) (string, int) {
	t.Helper()
	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	return host, p
}
