// Package rlog is Registrum's thin logging facade over github.com/luxfi/log.
// Every component takes a log.Logger rather than reaching for a global, and
// New wires up a component-scoped child logger the way the teacher's
// internal/ringtail package does with log.NewLogger.
package rlog

import (
	"github.com/luxfi/log"
)

// Logger is the interface every Registrum component depends on.
type Logger = log.Logger

// New returns a logger scoped to component, suitable for embedding in a
// Registrar, Registry, or Emitter.
func New(component string) Logger {
	return log.NewLogger(component).With("component", component)
}

// NoOp returns a logger that discards everything, for tests and for
// callers that construct a Registrar without caring about diagnostics.
func NoOp() Logger {
	return log.NewNoOpLogger()
}
