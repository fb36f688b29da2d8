// Package langerrors gives host-builtin and conversion errors a single
// vocabulary so try/catch and the host-I/O builtins classify errors the same
// way. Grounded on fs/fserrors's Retrier/Fatal/Cause(error) convention.
package langerrors

import "github.com/pkg/errors"

// Fatal is implemented by errors that must never be caught by user try/catch
// — "Fatal errors that remain uncatchable: allocation failure, invariant
// violations in the runtime itself, and explicit panic."
type Fatal interface {
	error
	Fatal() bool
}

// Retrier is implemented by errors a caller may retry after backing
// off, consulted by ShouldRetry.
type Retrier interface {
	error
	Retry() bool
}

// NoRetry marks an error as not to be retried even though it otherwise
// looks transient; ShouldRetry gives it precedence over Retrier.
type NoRetry interface {
	error
	NoRetry() bool
}

type fatalError struct{ error }

func (fatalError) Fatal() bool         { return true }
func (e fatalError) Cause() error { return e.error }

// NewFatal wraps err as a Fatal error.
func NewFatal(err error) error {
	if err == nil {
		return nil
	}
	return fatalError{err}
}

type retriableError struct{ error }

func (retriableError) Retry() bool       { return true }
func (e retriableError) Cause() error { return e.error }

// NewRetriable wraps err so ShouldRetry reports true for it. internal/pacer
// itself decides on the retry flag its callback returns, not on this marker.
func NewRetriable(err error) error {
	if err == nil {
		return nil
	}
	return retriableError{err}
}

type noRetryError struct{ error }

func (noRetryError) NoRetry() bool    { return true }
func (e noRetryError) Cause() error { return e.error }

// NewNoRetry wraps err so ShouldRetry reports false for it.
func NewNoRetry(err error) error {
	if err == nil {
		return nil
	}
	return noRetryError{err}
}

// Wrap annotates err with message and a stack trace using the
// github.com/pkg/errors convention.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Cause unwraps err to its root cause, walking any Cause() error chain
// (fs/fserrors's convention, reused here via pkg/errors).
func Cause(err error) error {
	return errors.Cause(err)
}

// IsFatal reports whether err (or any error in its cause chain) is
// marked Fatal.
func IsFatal(err error) bool {
	for e := err; e != nil; e = unwrapOnce(e) {
		if f, ok := e.(Fatal); ok && f.Fatal() {
			return true
		}
	}
	return false
}

// ShouldRetry reports whether err is marked Retrier and not also
// NoRetry, mirroring fs/fserrors.ShouldRetry's precedence.
func ShouldRetry(err error) bool {
	for e := err; e != nil; e = unwrapOnce(e) {
		if nr, ok := e.(NoRetry); ok && nr.NoRetry() {
			return false
		}
	}
	for e := err; e != nil; e = unwrapOnce(e) {
		if r, ok := e.(Retrier); ok && r.Retry() {
			return true
		}
	}
	return false
}

type causer interface{ Cause() error }

func unwrapOnce(err error) error {
	if c, ok := err.(causer); ok {
		return c.Cause()
	}
	return nil
}
