package value

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocketConnAccessorsRoundTrip(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()

	s := NewSocket()
	assert.Nil(t, s.Conn())
	s.SetConn(client)
	assert.Equal(t, client, s.Conn())
}

func TestSocketCloseIsIdempotentAndClosesConn(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()

	s := NewSocket()
	s.SetConn(client)
	require.NoError(t, s.Close())
	assert.True(t, s.IsClosed())
	assert.NoError(t, s.Close())

	_, err := client.Write([]byte("x"))
	assert.Error(t, err)
}

func TestSocketSetTimeoutAppliesDeadline(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	s := NewSocket()
	s.SetConn(client)
	s.SetTimeout(10 * time.Millisecond)

	buf := make([]byte, 1)
	_, err := client.Read(buf)
	assert.Error(t, err)
}
