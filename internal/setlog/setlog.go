// Package setlog is the ambient structured-logging wrapper used across
// every variant, built on github.com/go-kit/log and following the
// call convention log.Info(msg, "key", value, ...).
//
// None of the four Set operations (Add/Remove/Contains/Size) log
// anything. The only line emitted is one debug line after each
// completed resize; construction is not logged.
package setlog

import (
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger is a small component-scoped wrapper around a go-kit logger.
// The zero value discards everything, like Nop.
type Logger struct {
	base kitlog.Logger
}

// New returns a logfmt logger writing to stderr, tagged with component.
func New(component string) *Logger {
	base := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	base = kitlog.With(base, "component", component, "ts", kitlog.DefaultTimestampUTC)
	return &Logger{base: base}
}

// Nop returns a logger that discards everything. It is the default used
// when no logger option is supplied to a constructor.
func Nop() *Logger {
	return &Logger{base: kitlog.NewNopLogger()}
}

// Debug logs msg with the given alternating key/value pairs at debug level.
func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	if l == nil || l.base == nil {
		return
	}
	kv := append([]interface{}{"msg", msg}, keyvals...)
	_ = level.Debug(l.base).Log(kv...)
}

// Warn logs msg with the given alternating key/value pairs at warn level.
func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	if l == nil || l.base == nil {
		return
	}
	kv := append([]interface{}{"msg", msg}, keyvals...)
	_ = level.Warn(l.base).Log(kv...)
}
