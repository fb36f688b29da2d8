package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskCompleteSignalsDone(t *testing.T) {
	task := NewTask()
	select {
	case <-task.Done():
		t.Fatal("task reported done before Complete")
	default:
	}
	task.Complete(I32(1), Null(), false)
	<-task.Done()
	result, exception, threw := task.Outcome()
	assert.Equal(t, int64(1), result.AsInt64())
	assert.False(t, threw)
	assert.Equal(t, KindNull, exception.Kind())
}

func TestTaskMarkDetachedSetsFlag(t *testing.T) {
	task := NewTask()
	assert.False(t, task.IsDetached())
	task.MarkDetached()
	assert.True(t, task.IsDetached())
}

func TestTaskTraceIDIsUnique(t *testing.T) {
	a, b := NewTask(), NewTask()
	require.NotEqual(t, a.TraceID, b.TraceID)
}
