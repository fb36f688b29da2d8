package value

import (
	"sync"

	"github.com/google/uuid"
)

// TaskVal backs the `task` kind. The goroutine lifecycle itself is driven by
// internal/concurrency (which needs the evaluator); this struct only holds
// the shared completion state: the worker stores the return Value (or
// the pending exception) into the Task under mutex before signaling
// completion.
type TaskVal struct {
	RC

	TraceID uuid.UUID // log-correlation only, never observable from source

	mu       sync.Mutex
	done     chan struct{}
	doneOnce sync.Once

	result    Value
	exception Value
	hasThrown bool

	detached bool
}

func (t *TaskVal) Kind() Kind { return KindTask }

// NewTask allocates a not-yet-started task handle.
func NewTask() *TaskVal {
	return &TaskVal{RC: NewRC(), TraceID: uuid.New(), done: make(chan struct{})}
}

// Complete stores the worker's outcome and signals completion exactly
// once.
func (t *TaskVal) Complete(result Value, exception Value, threw bool) {
	t.mu.Lock()
	t.result, t.exception, t.hasThrown = result, exception, threw
	t.mu.Unlock()
	t.doneOnce.Do(func() { close(t.done) })
}

// Done returns the channel closed when the task completes (used by
// join and wait_all).
func (t *TaskVal) Done() <-chan struct{} { return t.done }

// Outcome returns the stored result/exception pair. Only meaningful
// after Done() is closed.
func (t *TaskVal) Outcome() (result Value, exception Value, threw bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result, t.exception, t.hasThrown
}

// MarkDetached records that the worker, not a joiner, owns the task's final
// release.
func (t *TaskVal) MarkDetached() {
	t.mu.Lock()
	t.detached = true
	t.mu.Unlock()
}

func (t *TaskVal) IsDetached() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.detached
}

func (t *TaskVal) Release() int32 { return t.Dec() }
