//go:build windows || plan9

package builtin

import (
	"github.com/nbeerbower/hemlock/internal/environment"
	"github.com/nbeerbower/hemlock/internal/value"
)

// bindSignalConstants falls back to the POSIX-numbering convention on
// platforms golang.org/x/sys/unix does not cover, as a plain
// stdlib-only fallback file alongside the unix-tagged one.
func bindSignalConstants(global *environment.Environment) {
	global.Define("SIGHUP", value.I32(1))
	global.Define("SIGINT", value.I32(2))
	global.Define("SIGQUIT", value.I32(3))
	global.Define("SIGKILL", value.I32(9))
	global.Define("SIGTERM", value.I32(15))
	global.Define("SIGUSR1", value.I32(10))
	global.Define("SIGUSR2", value.I32(12))
}
