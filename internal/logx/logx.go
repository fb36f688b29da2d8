// Package logx is the process-wide structured logger: one global
// leveled logrus.Logger plus per-subsystem fields, following the
// common logrus.WithFields/-.Warnf convention for attaching context
// to individual log lines.
package logx

import (
	"os"

	"github.com/sirupsen/logrus"
)

var base = newBase()

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLevel adjusts the global verbosity, driven by the --verbose CLI
// flag.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return
	}
	base.SetLevel(parsed)
}

// For scopes a subsystem's log lines with a `component` field and
// returns that subsystem's logger handle.
func For(component string) *logrus.Entry {
	return base.WithField("component", component)
}
