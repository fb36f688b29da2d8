package methods

import (
	"testing"

	"github.com/nbeerbower/hemlock/internal/metrics"
	"github.com/nbeerbower/hemlock/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelSendRecvMethods(t *testing.T) {
	ch := value.Heap(value.NewChannel(1))
	_, _, sendsBefore := metrics.Snapshot()

	fn, ok := Registry.Lookup(value.KindChannel, "send")
	require.True(t, ok)
	_, err := fn(ch, []value.Value{value.I32(5)}, nil)
	require.NoError(t, err)

	recv, ok := Registry.Lookup(value.KindChannel, "recv")
	require.True(t, ok)
	v, err := recv(ch, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.AsInt64())

	_, _, sendsAfter := metrics.Snapshot()
	assert.Equal(t, sendsBefore+1, sendsAfter)
}

func TestChannelRecvTimeoutMethodExpires(t *testing.T) {
	ch := value.Heap(value.NewChannel(0))

	fn, ok := Registry.Lookup(value.KindChannel, "recv_timeout")
	require.True(t, ok)
	v, err := fn(ch, []value.Value{value.I32(5)}, nil)
	require.NoError(t, err)
	assert.Equal(t, value.KindNull, v.Kind())
}

func TestChannelCloseMethodClosesChannel(t *testing.T) {
	ch := value.Heap(value.NewChannel(1))

	fn, ok := Registry.Lookup(value.KindChannel, "close")
	require.True(t, ok)
	_, err := fn(ch, nil, nil)
	require.NoError(t, err)

	payload, _ := ch.Heap()
	assert.True(t, payload.(*value.ChannelVal).Closed())
}
