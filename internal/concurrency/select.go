package concurrency

import (
	"time"

	"github.com/nbeerbower/hemlock/internal/pacer"
	"github.com/nbeerbower/hemlock/internal/value"
)

// pollInterval is select's retry spacing.
const pollInterval = time.Millisecond

// SelectResult is the {channel, value} pair Select returns, or a timeout.
type SelectResult struct {
	Channel  *value.ChannelVal
	Value    value.Value
	TimedOut bool
}

// pollPacer backs off empty polling passes so a select blocked on
// channels that rarely have data doesn't busy-spin at pollInterval
// forever, reusing the same exponential-backoff shape as host I/O
// retries rather than a bespoke sleep loop.
var pollPacer = pacer.NewDefault(pacer.MinSleep(pollInterval), pacer.MaxSleep(50*time.Millisecond))

// Select polls every channel in order each pass, never starving a later
// channel in favor of an earlier one that never has data. timeout <= 0 means
// poll forever. Consecutive empty passes sleep for pollPacer's backoff
// delay rather than a fixed interval, so a long-idle select doesn't spin.
func Select(channels []*value.ChannelVal, timeout time.Duration) SelectResult {
	deadline := time.Time{}
	hasDeadline := timeout > 0
	if hasDeadline {
		deadline = time.Now().Add(timeout)
	}
	for attempt := 0; ; attempt++ {
		for _, ch := range channels {
			v, ok, closedEmpty := ch.TryRecv()
			if ok {
				return SelectResult{Channel: ch, Value: v}
			}
			if closedEmpty {
				return SelectResult{Channel: ch, Value: value.Null()}
			}
		}
		if hasDeadline && time.Now().After(deadline) {
			return SelectResult{TimedOut: true}
		}
		time.Sleep(pollPacer.Backoff(attempt))
	}
}
