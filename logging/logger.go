// Package logging holds the package-level logger used by tabgrid components.
//
// Library code never writes to stderr on its own: until SetLogger is called,
// Logger returns a logger whose output is discarded. The CLI installs a
// text-formatted logger at the level chosen with --log-level.
//
//	logging.SetLogger(logging.New(os.Stderr, logrus.DebugLevel))
//
// In tests, capture entries with the logrus test hook:
//
//	logger, hook := test.NewNullLogger()
//	logging.SetLogger(logger)
//	// ... run detection ...
//	hook.LastEntry()
package logging

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var logger atomic.Pointer[logrus.Logger]

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// New creates a text logger writing to w at the given level
func New(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// SetLogger configures the package-level logger.
// Pass nil to go back to discarding output.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		logger.Store(newDiscardLogger())
		return
	}
	logger.Store(l)
}

// Logger returns the package-level logger
func Logger() *logrus.Logger {
	l := logger.Load()
	if l == nil {
		l = newDiscardLogger()
		logger.Store(l)
	}
	return l
}

// For returns an entry tagged with the component name
func For(component string) *logrus.Entry {
	return Logger().WithField("component", component)
}
