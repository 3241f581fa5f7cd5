// Package invariant compiles a JSON registry document into paired
// witnesses: for every declared rule, a predicate-DSL carrier (backed
// by package predicate) and a hand-written native carrier (package
// invariant's own Go functions) that implement the identical rule
// independently. The dual-witness runner in package witness consumes
// pairs produced here.
package invariant

import (
	"github.com/mcp-tool-shop-org/registrum/predicate"
	"github.com/mcp-tool-shop-org/registrum/status"
)

// Group classifies which structural concern an invariant protects.
type Group string

const (
	GroupIdentity Group = "identity"
	GroupLineage  Group = "lineage"
	GroupOrdering Group = "ordering"
)

// Scope identifies which pipeline stage an invariant is evaluated at.
type Scope string

const (
	ScopeState        Scope = "state"
	ScopeTransition   Scope = "transition"
	ScopeRegistration Scope = "registration"
)

// FailureMode mirrors a violation's classification when the invariant
// refuses.
type FailureMode string

const (
	FailureReject FailureMode = "reject"
	FailureHalt   FailureMode = "halt"
)

// Classification converts a FailureMode to a status.Classification.
func (f FailureMode) Classification() status.Classification {
	if f == FailureHalt {
		return status.Halt
	}
	return status.Reject
}

// Carrier is either a compiled predicate AST or a native Go function;
// both implement the single capability the runner needs: judge an
// EvaluationContext and return a pass/fail verdict.
type Carrier interface {
	Evaluate(ctx *predicate.EvaluationContext) bool
}

// predicateCarrier wraps a validated predicate AST.
type predicateCarrier struct {
	ast predicate.Node
}

func (c predicateCarrier) Evaluate(ctx *predicate.EvaluationContext) bool {
	return predicate.Eval(c.ast, ctx)
}

// NativeFunc is the signature every legacy witness rule implements.
type NativeFunc func(ctx *predicate.EvaluationContext) bool

// nativeCarrier wraps a NativeFunc.
type nativeCarrier struct {
	fn NativeFunc
}

func (c nativeCarrier) Evaluate(ctx *predicate.EvaluationContext) bool {
	return c.fn(ctx)
}

// Entry pairs one invariant's registry (DSL) and legacy (native)
// carriers under shared metadata. Both carriers are evaluated on every
// applicable transition; their results are compared by the runner.
type Entry struct {
	ID              string
	Group           Group
	Scope           Scope
	AppliesTo       []string
	FailureMode     FailureMode
	Description     string
	RegistryCarrier Carrier
	LegacyCarrier   Carrier
}

// Descriptor is the externally-visible shape of an Entry: everything
// except the carriers, since a predicate AST or native function body
// is never surfaced through listInvariants.
type Descriptor struct {
	ID          string      `json:"id"`
	Group       Group       `json:"group"`
	Scope       Scope       `json:"scope"`
	AppliesTo   []string    `json:"appliesTo"`
	FailureMode FailureMode `json:"failureMode"`
	Description string      `json:"description"`
}

// Descriptor projects e onto its externally-visible fields.
func (e Entry) Descriptor() Descriptor {
	return Descriptor{
		ID:          e.ID,
		Group:       e.Group,
		Scope:       e.Scope,
		AppliesTo:   e.AppliesTo,
		FailureMode: e.FailureMode,
		Description: e.Description,
	}
}
