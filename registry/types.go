// Package registry holds Registrum's authoritative in-memory store and
// the registration pipeline that mutates it: validate, compute order
// index, evaluate registration-scope invariants, commit atomically.
// All mutation serializes through a single writer lock, mirroring the
// teacher's single-writer consensus state machines.
package registry

import (
	"encoding/json"

	"github.com/mcp-tool-shop-org/registrum/witness"
)

// StateID identifies a registered state. The empty string is never a
// valid id.
type StateID = string

// Opaque is payload data no invariant may inspect.
type Opaque = json.RawMessage

// State is a proposed or registered structural state. Structure is
// inspectable by invariants; Data never is.
type State struct {
	ID        StateID
	Structure map[string]interface{}
	Data      Opaque
}

// Transition proposes registering To, descending from From. From is
// nil for a root transition.
type Transition struct {
	From     *StateID
	To       State
	Metadata map[string]interface{}
}

// RegistrationResult is the outcome of Register: exactly one of
// Accepted or Rejected is meaningful, distinguished by Accepted.
type RegistrationResult struct {
	Accepted          bool
	StateID           StateID
	OrderIndex        int
	AppliedInvariants []string
	Violations        []witness.Violation
}

// ValidationReport is the outcome of Validate: a pure, mutation-free
// check of the same invariants Register would apply.
type ValidationReport struct {
	Valid      bool
	Violations []witness.Violation
}
