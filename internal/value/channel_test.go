package value

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelBufferedFIFO(t *testing.T) {
	c := NewChannel(2)
	require.NoError(t, c.Send(I32(1)))
	require.NoError(t, c.Send(I32(2)))
	assert.Equal(t, 2, c.Len())
	v, ok := c.Recv()
	require.True(t, ok)
	assert.Equal(t, int64(1), v.AsInt64())
	v, ok = c.Recv()
	require.True(t, ok)
	assert.Equal(t, int64(2), v.AsInt64())
}

func TestChannelUnbufferedRendezvous(t *testing.T) {
	c := NewChannel(0)
	done := make(chan struct{})
	go func() {
		v, ok := c.Recv()
		assert.True(t, ok)
		assert.Equal(t, int64(42), v.AsInt64())
		close(done)
	}()
	require.NoError(t, c.Send(I32(42)))
	<-done
}

func TestChannelCloseWakesReceiver(t *testing.T) {
	c := NewChannel(1)
	c.Close()
	assert.True(t, c.Closed())
	_, ok := c.Recv()
	assert.False(t, ok)
}

func TestChannelSendOnClosedErrors(t *testing.T) {
	c := NewChannel(1)
	c.Close()
	err := c.Send(I32(1))
	assert.ErrorIs(t, err, ErrClosedChannel{})
}

func TestChannelRecvTimeoutExpires(t *testing.T) {
	c := NewChannel(0)
	_, ok := c.RecvTimeout(5 * time.Millisecond)
	assert.False(t, ok)
}

func TestChannelTryRecvNonBlocking(t *testing.T) {
	c := NewChannel(1)
	_, ok, closedEmpty := c.TryRecv()
	assert.False(t, ok)
	assert.False(t, closedEmpty)
	require.NoError(t, c.Send(I32(7)))
	v, ok, _ := c.TryRecv()
	assert.True(t, ok)
	assert.Equal(t, int64(7), v.AsInt64())
}
