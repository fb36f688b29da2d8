package builtin

import "github.com/nbeerbower/hemlock/internal/value"

func init() {
	Register(&Info{Name: "ffi_call", Call: biFFICall})
}

// ffi_call is a capability-gated stub: this build has no dynamic library
// loader, so every call raises a recoverable exception rather than silently
// no-opping.
func biFFICall(args []value.Value, ctx interface{}) (value.Value, error) {
	return value.Null(), errFFIUnavailable
}

type ffiError struct{}

func (ffiError) Error() string { return "ffi not available in this build" }

var errFFIUnavailable = ffiError{}
