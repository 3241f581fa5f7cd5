package predicate

// StateView is the structural view of a State exposed to predicates.
// Its Data field is intentionally absent: no predicate may resolve a
// path into opaque payload data, so the evaluator has nothing to read.
type StateView struct {
	ID        string
	Structure map[string]interface{}
}

// TransitionView is the structural view of a Transition exposed to
// predicates. From is nil for a root transition.
type TransitionView struct {
	From     *string
	To       StateView
	Metadata map[string]interface{}
}

// RegistryQuerier answers the registry-scoped built-in functions
// against the registry's current, pre-commit state.
type RegistryQuerier interface {
	// ContainsState reports whether id is already registered.
	ContainsState(id string) bool
	// MaxOrderIndex returns the highest assigned order index, or -1
	// when the registry is empty.
	MaxOrderIndex() int
	// ComputeOrderIndex returns the order index the transition under
	// evaluation would receive if accepted.
	ComputeOrderIndex() int
}

// EvaluationContext is the live data an invariant's predicate is
// judged against. State is populated for state-scope invariants,
// Transition for transition-scope invariants, and OrderingIndex only
// when registration-scope invariants are among those evaluated, since
// they may reference the tentative index a transition would receive.
type EvaluationContext struct {
	State         *StateView
	Transition    *TransitionView
	Registry      RegistryQuerier
	OrderingIndex *int
}
