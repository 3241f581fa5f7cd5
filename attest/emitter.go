package attest

import (
	"fmt"

	"github.com/mcp-tool-shop-org/registrum/rlog"
)

// EmissionResult reports what happened when an Emitter tried to
// deliver a payload. Sink failure never propagates as an error the
// caller must handle: it is always captured here.
type EmissionResult struct {
	Attempted bool
	Success   bool
	Error     error
}

// Emitter delivers attestation payloads to a configured Sink. A nil or
// disabled Emitter is a no-op, so callers never need a presence check.
type Emitter struct {
	sink    Sink
	enabled bool
	logger  rlog.Logger
}

// NewEmitter constructs an Emitter. A nil sink or enabled=false makes
// every Emit call a no-op.
func NewEmitter(sink Sink, enabled bool, logger rlog.Logger) *Emitter {
	if logger == nil {
		logger = rlog.NoOp()
	}
	return &Emitter{sink: sink, enabled: enabled, logger: logger}
}

// Emit encodes and delivers p. It never panics and never returns an
// error the caller must propagate: sink failures are logged as
// warnings and reported in the result, nothing more.
func (e *Emitter) Emit(p Payload) EmissionResult {
	if e == nil || !e.enabled || e.sink == nil {
		return EmissionResult{Attempted: false, Success: true}
	}

	encoded, err := encodePayload(p)
	if err != nil {
		e.logger.Warn("attestation encoding failed", "error", err)
		return EmissionResult{Attempted: true, Success: false, Error: err}
	}

	err = func() (sendErr error) {
		defer func() {
			if r := recover(); r != nil {
				sendErr = fmt.Errorf("attest: sink panicked: %v", r)
			}
		}()
		return e.sink.Send(encoded)
	}()
	if err != nil {
		e.logger.Warn("attestation emission failed", "error", err)
		return EmissionResult{Attempted: true, Success: false, Error: err}
	}

	return EmissionResult{Attempted: true, Success: true}
}
