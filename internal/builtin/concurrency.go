package builtin

import (
	"fmt"
	"time"

	"github.com/nbeerbower/hemlock/internal/concurrency"
	"github.com/nbeerbower/hemlock/internal/eval"
	"github.com/nbeerbower/hemlock/internal/metrics"
	"github.com/nbeerbower/hemlock/internal/value"
)

func init() {
	Register(&Info{Name: "spawn", Call: biSpawn})
	Register(&Info{Name: "detach", Call: biDetach})
	Register(&Info{Name: "join", Call: biJoin})
	Register(&Info{Name: "wait_all", Call: biWaitAll})
	Register(&Info{Name: "new_channel", Call: biNewChannel})
	Register(&Info{Name: "select", Call: biSelect})
}

// spawn(fn, args...) starts fn on a new task thread.
func biSpawn(args []value.Value, ctx interface{}) (value.Value, error) {
	global, err := globalOf(ctx)
	if err != nil {
		return value.Null(), err
	}
	if len(args) == 0 {
		return value.Null(), fmt.Errorf("spawn: missing function")
	}
	t, err := concurrency.SpawnArgs(global, args[0], args[1:])
	if err != nil {
		return value.Null(), err
	}
	metrics.RecordTaskSpawned()
	return value.Heap(t), nil
}

// detach(fn, args...) is the fused spawn-then-detach form; detach(t)
// on an existing task just marks it.
func biDetach(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), fmt.Errorf("detach: missing argument")
	}
	if args[0].Kind() == value.KindTask {
		payload, _ := args[0].Heap()
		concurrency.Detach(payload.(*value.TaskVal))
		return value.Null(), nil
	}
	global, err := globalOf(ctx)
	if err != nil {
		return value.Null(), err
	}
	t, err := concurrency.SpawnDetached(global, args[0], args[1:])
	if err != nil {
		return value.Null(), err
	}
	metrics.RecordTaskSpawned()
	return value.Heap(t), nil
}

func asTask(v value.Value) (*value.TaskVal, error) {
	if v.Kind() != value.KindTask {
		return nil, fmt.Errorf("expected a task, got %s", v.Kind())
	}
	payload, _ := v.Heap()
	return payload.(*value.TaskVal), nil
}

// join(t) awaits t and re-raises any stored exception in the caller's
// context.
func biJoin(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), fmt.Errorf("join: missing task")
	}
	t, err := asTask(args[0])
	if err != nil {
		return value.Null(), err
	}
	result, exception, threw, err := concurrency.Join(t)
	if err != nil {
		return value.Null(), err
	}
	metrics.RecordTaskCompleted()
	if threw {
		if interp, ok := ctx.(*eval.Interpreter); ok {
			interp.Ctx.Throw(exception)
			return value.Null(), nil
		}
		return value.Null(), fmt.Errorf("uncaught exception from joined task: %s", exception.String())
	}
	return result, nil
}

// wait_all(tasks) is the supplemental golang.org/x/sync/errgroup-backed bulk
// join.
func biWaitAll(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) == 0 || args[0].Kind() != value.KindArray {
		return value.Null(), fmt.Errorf("wait_all: expected an array of tasks")
	}
	payload, _ := args[0].Heap()
	arr := payload.(*value.ArrayVal)
	tasks := make([]*value.TaskVal, arr.Len())
	for i, elem := range arr.Elems() {
		t, err := asTask(elem)
		if err != nil {
			return value.Null(), fmt.Errorf("wait_all: element %d: %w", i, err)
		}
		tasks[i] = t
	}
	results, err := concurrency.WaitAll(tasks)
	if err != nil {
		return value.Null(), err
	}
	for range tasks {
		metrics.RecordTaskCompleted()
	}
	return value.Heap(value.NewArrayFrom(results)), nil
}

// DefaultChannelCapacity is new_channel's capacity when the caller
// omits it, set from internal/config's default_channel_capacity
// tunable at startup.
var DefaultChannelCapacity = 0

// new_channel(capacity) constructs a Channel.
func biNewChannel(args []value.Value, ctx interface{}) (value.Value, error) {
	capacity := DefaultChannelCapacity
	if len(args) > 0 {
		capacity = int(args[0].AsInt64())
	}
	return value.Heap(value.NewChannel(capacity)), nil
}

// select(channels, timeout_ms?) polls an array of channels and returns
// the first one ready to receive, or times out.
func biSelect(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) == 0 || args[0].Kind() != value.KindArray {
		return value.Null(), fmt.Errorf("select: expected an array of channels")
	}
	payload, _ := args[0].Heap()
	arr := payload.(*value.ArrayVal)
	channels := make([]*value.ChannelVal, arr.Len())
	for i, elem := range arr.Elems() {
		if elem.Kind() != value.KindChannel {
			return value.Null(), fmt.Errorf("select: element %d is not a channel", i)
		}
		ch, _ := elem.Heap()
		channels[i] = ch.(*value.ChannelVal)
	}
	timeout := time.Duration(0)
	if len(args) > 1 {
		timeout = time.Duration(args[1].AsInt64()) * time.Millisecond
	}
	result := concurrency.Select(channels, timeout)
	out := value.NewObject()
	if result.TimedOut {
		out.Set("timed_out", value.Bool(true))
		return value.Heap(out), nil
	}
	out.Set("timed_out", value.Bool(false))
	out.Set("channel", value.Heap(result.Channel))
	out.Set("value", result.Value)
	return value.Heap(out), nil
}
