// Package concurrency implements the task substrate: task lifecycle
// (spawn/join/detach) and Select's poll loop. Task threads are modeled
// as goroutines pinned with runtime.LockOSThread, the closest idiomatic
// Go equivalent of a dedicated OS thread; channel mechanics themselves
// live on value.ChannelVal since they need no evaluator access.
package concurrency

import (
	"fmt"
	"runtime"
	"time"

	"github.com/nbeerbower/hemlock/internal/environment"
	"github.com/nbeerbower/hemlock/internal/eval"
	"github.com/nbeerbower/hemlock/internal/logx"
	"github.com/nbeerbower/hemlock/internal/value"
	"golang.org/x/sync/errgroup"
)

var log = logx.For("concurrency")

// SpawnArgs is the normal entry point: args are the caller's evaluated
// argument Values, deep-copied before the worker starts so the parent and
// task share no mutable heap state. Returns an error without starting a
// worker if fn is not callable.
func SpawnArgs(global *environment.Environment, fn value.Value, args []value.Value) (*value.TaskVal, error) {
	if fn.Kind() != value.KindFunction {
		return nil, fmt.Errorf("spawn: expected a function, got %s", fn.Kind())
	}
	t := value.NewTask()
	copied := make([]value.Value, len(args))
	for i, a := range args {
		copied[i] = value.DeepCopy(a)
	}
	t.Retain() // worker's own reference, released on completion if detached
	go runWorker(global, fn, copied, t)
	return t, nil
}

func runWorker(global *environment.Environment, fn value.Value, args []value.Value, t *value.TaskVal) {
	// "blocks all signals and runs the function body in a fresh environment
	// chained to the function's closure env" — LockOSThread is the idiomatic Go
	// stand-in for a dedicated pthread with its own signal mask.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	taskInterp := eval.NewTask(global)
	result, exception, threw := taskInterp.CallForTask(fn, args)
	t.Complete(result, exception, threw)
	if threw {
		log.WithField("trace_id", t.TraceID).Warn("task completed with an uncaught exception")
	} else {
		log.WithField("trace_id", t.TraceID).Debug("task completed")
	}

	if t.IsDetached() {
		t.Release()
	}
}

// Join awaits the worker and returns its stored result, exception and
// whether it threw; the join builtin re-raises the exception in the
// caller's context. Joining a detached task is an error.
func Join(t *value.TaskVal) (value.Value, value.Value, bool, error) {
	if t.IsDetached() {
		return value.Null(), value.Null(), false, fmt.Errorf("join: task is detached")
	}
	<-t.Done()
	result, exception, threw := t.Outcome()
	return result, exception, threw, nil
}

// Detach marks t so its worker releases its own reference on completion.
func Detach(t *value.TaskVal) {
	t.MarkDetached()
}

// SpawnDetached is the fused spawn-then-detach form: a temporary extra
// retain prevents the worker from freeing the Task before the caller
// finishes marking it detached.
func SpawnDetached(global *environment.Environment, fn value.Value, args []value.Value) (*value.TaskVal, error) {
	t, err := SpawnArgs(global, fn, args)
	if err != nil {
		return nil, err
	}
	t.Retain()
	Detach(t)
	t.Release()
	return t, nil
}

// WaitAll joins every task in tasks concurrently, aggregating the
// first thrown exception (supplemental `wait_all(tasks)` builtin,
// grounded on golang.org/x/sync/errgroup's fan-out-then-collect
// shape).
func WaitAll(tasks []*value.TaskVal) ([]value.Value, error) {
	results := make([]value.Value, len(tasks))
	var g errgroup.Group
	for idx, t := range tasks {
		idx, t := idx, t
		g.Go(func() error {
			result, exception, threw, err := Join(t)
			if err != nil {
				return err
			}
			if threw {
				return fmt.Errorf("task %d threw: %s", idx, exception.String())
			}
			results[idx] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// joinTimeout waits on t for at most timeout; its last result reports
// whether the task completed in time. Nothing in the tree calls it.
func joinTimeout(t *value.TaskVal, timeout time.Duration) (value.Value, value.Value, bool, bool) {
	select {
	case <-t.Done():
		result, exception, threw := t.Outcome()
		return result, exception, threw, true
	case <-time.After(timeout):
		return value.Null(), value.Null(), false, false
	}
}
