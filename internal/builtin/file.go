package builtin

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/nbeerbower/hemlock/internal/langerrors"
	"github.com/nbeerbower/hemlock/internal/pacer"
	"github.com/nbeerbower/hemlock/internal/value"
)

func init() {
	Register(&Info{Name: "file_open", Call: biFileOpen})
	Register(&Info{Name: "file_exists", Call: biFileExists})
	Register(&Info{Name: "file_remove", Call: biFileRemove})
}

// modeFlags maps the documented open modes to stdlib os flags.
var modeFlags = map[string]int{
	"r":  os.O_RDONLY,
	"w":  os.O_WRONLY | os.O_CREATE | os.O_TRUNC,
	"a":  os.O_WRONLY | os.O_CREATE | os.O_APPEND,
	"rw": os.O_RDWR | os.O_CREATE,
}

// filePacer backs off EMFILE/ENFILE ("too many open files"), a
// transient condition that clears once other descriptors close.
var filePacer = pacer.NewDefault(pacer.MinSleep(10*time.Millisecond), pacer.MaxSleep(200*time.Millisecond), pacer.MaxRetries(5))

func biFileOpen(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) < 1 {
		return value.Null(), fmt.Errorf("file_open: expected (path, mode?)")
	}
	path := args[0].String()
	mode := "r"
	if len(args) > 1 {
		mode = args[1].String()
	}
	flag, ok := modeFlags[mode]
	if !ok {
		return value.Null(), fmt.Errorf("file_open: unknown mode %q", mode)
	}
	var handle *os.File
	err := filePacer.Call(func() (bool, error) {
		var openErr error
		handle, openErr = os.OpenFile(path, flag, 0o644)
		if openErr != nil {
			if errno, ok := underlyingErrno(openErr); ok && (errno == syscall.EMFILE || errno == syscall.ENFILE) {
				return true, langerrors.NewRetriable(openErr)
			}
			return false, openErr
		}
		return false, nil
	})
	if err != nil {
		return value.Null(), langerrors.Wrap(err, "file_open")
	}
	return value.Heap(value.NewFile(handle, path, mode)), nil
}

// underlyingErrno unwraps a PathError/LinkError to the syscall.Errno
// it carries, if any.
func underlyingErrno(err error) (syscall.Errno, bool) {
	type wrapper interface{ Unwrap() error }
	for e := err; e != nil; {
		if errno, ok := e.(syscall.Errno); ok {
			return errno, true
		}
		w, ok := e.(wrapper)
		if !ok {
			return 0, false
		}
		e = w.Unwrap()
	}
	return 0, false
}

func biFileExists(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) < 1 {
		return value.Null(), fmt.Errorf("file_exists: missing path")
	}
	_, err := os.Stat(args[0].String())
	return value.Bool(err == nil), nil
}

func biFileRemove(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) < 1 {
		return value.Null(), fmt.Errorf("file_remove: missing path")
	}
	if err := os.Remove(args[0].String()); err != nil {
		return value.Null(), err
	}
	return value.Null(), nil
}
