// Package pacer implements the exponential-backoff retry helper used
// by host-I/O builtins and by select's poll loop, grounded on
// lib/pacer's NewDefault/Call shape (the retrieved pack carries only
// lib/pacer's test file; this mirrors the API that test exercises).
package pacer

import (
	"time"

	"github.com/nbeerbower/hemlock/internal/langerrors"
)

// Option configures a Pacer, mirroring lib/pacer's functional-option
// constructors (pacer.MinSleep(...), pacer.MaxSleep(...)).
type Option func(*Pacer)

// MinSleep sets the initial backoff delay.
func MinSleep(d time.Duration) Option { return func(p *Pacer) { p.minSleep = d } }

// MaxSleep sets the ceiling backoff delay.
func MaxSleep(d time.Duration) Option { return func(p *Pacer) { p.maxSleep = d } }

// MaxRetries caps the number of attempts before giving up.
func MaxRetries(n int) Option { return func(p *Pacer) { p.maxRetries = n } }

// Pacer retries a function with exponential backoff, doubling the
// delay after each retriable failure up to maxSleep.
type Pacer struct {
	minSleep   time.Duration
	maxSleep   time.Duration
	maxRetries int
}

// NewDefault constructs a Pacer with the given options over sane
// defaults (100ms initial, 10s ceiling, 10 attempts).
func NewDefault(opts ...Option) *Pacer {
	p := &Pacer{minSleep: 100 * time.Millisecond, maxSleep: 10 * time.Second, maxRetries: 10}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Call retries fn, which reports whether its error is retriable,
// until it succeeds, returns a non-retriable error, or maxRetries is
// exhausted.
func (p *Pacer) Call(fn func() (retry bool, err error)) error {
	sleep := p.minSleep
	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		retry, err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || langerrors.IsFatal(err) {
			return err
		}
		time.Sleep(sleep)
		sleep *= 2
		if sleep > p.maxSleep {
			sleep = p.maxSleep
		}
	}
	return lastErr
}

// CallNoRetry runs fn exactly once and returns its error unchanged.
func (p *Pacer) CallNoRetry(fn func() error) error {
	return fn()
}

// Backoff returns the delay a caller driving its own polling loop
// (rather than handing a closure to Call) should sleep before pass
// attempt, doubling from minSleep up to maxSleep. attempt is
// zero-based and stateless, so concurrent callers sharing one Pacer
// never interfere with each other's backoff state.
func (p *Pacer) Backoff(attempt int) time.Duration {
	sleep := p.minSleep
	for i := 0; i < attempt; i++ {
		sleep *= 2
		if sleep >= p.maxSleep {
			return p.maxSleep
		}
	}
	return sleep
}
