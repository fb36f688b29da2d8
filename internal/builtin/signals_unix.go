//go:build !windows && !plan9

package builtin

import (
	"github.com/nbeerbower/hemlock/internal/environment"
	"github.com/nbeerbower/hemlock/internal/value"
	"golang.org/x/sys/unix"
)

// bindSignalConstants binds the signal-number constants, using
// golang.org/x/sys/unix's platform-correct values rather than
// hand-maintaining per-OS numbers.
func bindSignalConstants(global *environment.Environment) {
	global.Define("SIGHUP", value.I32(int32(unix.SIGHUP)))
	global.Define("SIGINT", value.I32(int32(unix.SIGINT)))
	global.Define("SIGQUIT", value.I32(int32(unix.SIGQUIT)))
	global.Define("SIGKILL", value.I32(int32(unix.SIGKILL)))
	global.Define("SIGTERM", value.I32(int32(unix.SIGTERM)))
	global.Define("SIGUSR1", value.I32(int32(unix.SIGUSR1)))
	global.Define("SIGUSR2", value.I32(int32(unix.SIGUSR2)))
}
