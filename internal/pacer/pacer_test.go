package pacer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallSucceedsAfterRetries(t *testing.T) {
	p := NewDefault(MinSleep(time.Millisecond), MaxSleep(4*time.Millisecond), MaxRetries(5))
	attempts := 0
	err := p.Call(func() (bool, error) {
		attempts++
		if attempts < 3 {
			return true, errors.New("transient")
		}
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestCallStopsOnNonRetriable(t *testing.T) {
	p := NewDefault(MinSleep(time.Millisecond), MaxRetries(5))
	attempts := 0
	err := p.Call(func() (bool, error) {
		attempts++
		return false, errors.New("permanent")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestCallExhaustsMaxRetries(t *testing.T) {
	p := NewDefault(MinSleep(time.Millisecond), MaxSleep(2*time.Millisecond), MaxRetries(3))
	attempts := 0
	err := p.Call(func() (bool, error) {
		attempts++
		return true, errors.New("always fails")
	})
	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}
