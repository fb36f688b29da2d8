package methods

import (
	"fmt"
	"time"

	"github.com/nbeerbower/hemlock/internal/metrics"
	"github.com/nbeerbower/hemlock/internal/value"
)

func init() {
	register(value.KindChannel, "send", channelSend)
	register(value.KindChannel, "recv", channelRecv)
	register(value.KindChannel, "send_timeout", channelSendTimeout)
	register(value.KindChannel, "recv_timeout", channelRecvTimeout)
	register(value.KindChannel, "close", channelClose)
}

func asChannel(v value.Value) *value.ChannelVal {
	p, _ := v.Heap()
	return p.(*value.ChannelVal)
}

func channelSend(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), fmt.Errorf("send: missing value argument")
	}
	if err := asChannel(self).Send(value.DeepCopy(args[0])); err != nil {
		return value.Null(), err
	}
	metrics.RecordChannelSend()
	return value.Null(), nil
}

func channelRecv(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	v, _ := asChannel(self).Recv()
	return v, nil
}

func channelSendTimeout(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	if len(args) < 2 {
		return value.Null(), fmt.Errorf("send_timeout: expected (value, ms)")
	}
	ms, err := argInt(args, 1)
	if err != nil {
		return value.Null(), err
	}
	ok, err := asChannel(self).SendTimeout(value.DeepCopy(args[0]), time.Duration(ms)*time.Millisecond)
	if err != nil {
		return value.Null(), err
	}
	if ok {
		metrics.RecordChannelSend()
	}
	return value.Bool(ok), nil
}

func channelRecvTimeout(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	ms, err := argInt(args, 0)
	if err != nil {
		return value.Null(), err
	}
	v, ok := asChannel(self).RecvTimeout(time.Duration(ms) * time.Millisecond)
	if !ok {
		return value.Null(), nil
	}
	return v, nil
}

func channelClose(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	asChannel(self).Close()
	return value.Null(), nil
}
