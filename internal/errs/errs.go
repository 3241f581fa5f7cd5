// Package errs aggregates multiple errors raised while loading or
// validating a registry, so callers see every problem at once instead
// of stopping at the first one.
package errs

import (
	"fmt"
	"strings"
	"sync"
)

// Errs is a collection of errors gathered during a multi-step check.
type Errs struct {
	mu   sync.Mutex
	errs []error
}

// Add records err, ignoring nil.
func (e *Errs) Add(err error) {
	if err == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errs = append(e.errs, err)
}

// Errored reports whether any error has been added.
func (e *Errs) Errored() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.errs) > 0
}

// Len returns the number of errors added.
func (e *Errs) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.errs)
}

// List returns a copy of the accumulated errors, in the order added.
func (e *Errs) List() []error {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]error, len(e.errs))
	copy(out, e.errs)
	return out
}

// Err folds the collection into a single error, or nil if empty.
func (e *Errs) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch len(e.errs) {
	case 0:
		return nil
	case 1:
		return e.errs[0]
	default:
		return fmt.Errorf("%s", e.string())
	}
}

func (e *Errs) string() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error", len(e.errs))
	if len(e.errs) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString(" occurred:")
	for _, err := range e.errs {
		sb.WriteString("\n\t* ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}
