package cmd

import (
	"github.com/cockroachdb/pebble"

	"github.com/ssargent/recordstore/pkg/store"
)

// levelLogger drops info messages unless the configured level allows them
type levelLogger struct {
	next  store.Logger
	infos bool
}

func newLogger(level string) store.Logger {
	return &levelLogger{
		next:  pebble.DefaultLogger,
		infos: level == "debug" || level == "info",
	}
}

func (l *levelLogger) Infof(format string, args ...interface{}) {
	if l.infos {
		l.next.Infof(format, args...)
	}
}

func (l *levelLogger) Errorf(format string, args ...interface{}) {
	l.next.Errorf(format, args...)
}
