package langerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFatalClassification(t *testing.T) {
	base := errors.New("oom")
	err := NewFatal(base)
	assert.True(t, IsFatal(err))
	assert.False(t, IsFatal(base))
}

func TestShouldRetryHonorsNoRetry(t *testing.T) {
	retriable := NewRetriable(errors.New("timeout"))
	assert.True(t, ShouldRetry(retriable))

	wrapped := Wrap(NewNoRetry(retriable), "host call failed")
	assert.False(t, ShouldRetry(wrapped))
}

func TestCauseUnwrapsWrap(t *testing.T) {
	root := errors.New("root")
	wrapped := Wrap(root, "context")
	assert.Equal(t, root, Cause(wrapped))
}
