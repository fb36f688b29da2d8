package builtin

import (
	"fmt"
	"time"

	"github.com/nbeerbower/hemlock/internal/value"
)

func init() {
	Register(&Info{Name: "sleep", Call: biSleep})
	Register(&Info{Name: "time_now", Call: biTimeNow})
}

// sleep's argument is milliseconds, matching the ms convention every
// other timeout builtin in this runtime uses (recv_timeout,
// send_timeout, select, set_timeout).
func biSleep(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) < 1 {
		return value.Null(), fmt.Errorf("sleep: missing duration")
	}
	time.Sleep(time.Duration(args[0].AsInt64()) * time.Millisecond)
	return value.Null(), nil
}

func biTimeNow(args []value.Value, ctx interface{}) (value.Value, error) {
	return value.I64(time.Now().UnixMilli()), nil
}
