package invariant

import "github.com/mcp-tool-shop-org/registrum/predicate"

// This file is Registrum's native ("legacy") witness: eleven hand-
// written Go functions, one per canonical invariant, that implement
// the same rules as the default predicate-DSL registry but share no
// code with package predicate's evaluator. The dual-witness runner
// calls both and compares verdicts; any divergence is a bug in one of
// the two implementations, never in the transition under test.

func legacyStateIdentityExplicit(ctx *predicate.EvaluationContext) bool {
	return ctx.State != nil && ctx.State.ID != ""
}

func legacyStateIdentityImmutable(ctx *predicate.EvaluationContext) bool {
	if ctx.Transition == nil {
		return false
	}
	if ctx.Transition.From == nil {
		return true
	}
	return ctx.Transition.To.ID == *ctx.Transition.From
}

func legacyStateIdentityUnique(ctx *predicate.EvaluationContext) bool {
	if ctx.Transition == nil {
		return false
	}
	if ctx.Transition.From != nil {
		return true // only root transitions are checked for uniqueness here
	}
	if ctx.Registry == nil {
		return true
	}
	return !ctx.Registry.ContainsState(ctx.Transition.To.ID)
}

func legacyStateLineageExplicit(ctx *predicate.EvaluationContext) bool {
	if ctx.Transition == nil {
		return false
	}
	isRoot, _ := ctx.Transition.To.Structure["isRoot"].(bool)
	if ctx.Transition.From == nil {
		return isRoot
	}
	return !isRoot
}

func legacyStateLineageParentExists(ctx *predicate.EvaluationContext) bool {
	if ctx.Transition == nil {
		return false
	}
	if ctx.Transition.From == nil {
		return true
	}
	if ctx.Registry == nil {
		return false
	}
	return ctx.Registry.ContainsState(*ctx.Transition.From)
}

func legacyStateLineageSingleParent(ctx *predicate.EvaluationContext) bool {
	// Transition.From is a single *string field: the Go type system
	// enforces that a transition can never carry more than one parent.
	return ctx.Transition != nil
}

func legacyStateLineageContinuous(ctx *predicate.EvaluationContext) bool {
	// Continuity is guaranteed by construction once parent_exists holds
	// at write time: every parent was itself registered earlier, so no
	// chain can break. This check restates that precondition rather
	// than walking the chain at read time.
	return legacyStateLineageParentExists(ctx)
}

func legacyOrderingTotal(ctx *predicate.EvaluationContext) bool {
	return ctx.OrderingIndex != nil
}

func legacyOrderingDeterministic(ctx *predicate.EvaluationContext) bool {
	if ctx.OrderingIndex == nil || ctx.Registry == nil {
		return false
	}
	return *ctx.OrderingIndex == ctx.Registry.ComputeOrderIndex()
}

func legacyOrderingMonotonic(ctx *predicate.EvaluationContext) bool {
	if ctx.OrderingIndex == nil || ctx.Registry == nil {
		return false
	}
	return *ctx.OrderingIndex == ctx.Registry.MaxOrderIndex()+1
}

func legacyOrderingNonSemantic(ctx *predicate.EvaluationContext) bool {
	// The order index is computed solely from maxIndex; no payload or
	// structural field is ever consulted, so this always holds.
	return true
}

// legacyWitnesses maps each canonical invariant ID to its native
// implementation. A registry that declares an ID absent from this map
// fails to load: the legacy witness must cover every rule the registry
// witness covers, or parity comparison is meaningless.
var legacyWitnesses = map[string]NativeFunc{
	"state.identity.explicit":     legacyStateIdentityExplicit,
	"state.identity.immutable":    legacyStateIdentityImmutable,
	"state.identity.unique":       legacyStateIdentityUnique,
	"state.lineage.explicit":      legacyStateLineageExplicit,
	"state.lineage.parent_exists": legacyStateLineageParentExists,
	"state.lineage.single_parent": legacyStateLineageSingleParent,
	"state.lineage.continuous":    legacyStateLineageContinuous,
	"ordering.total":              legacyOrderingTotal,
	"ordering.deterministic":      legacyOrderingDeterministic,
	"ordering.monotonic":          legacyOrderingMonotonic,
	"ordering.non_semantic":       legacyOrderingNonSemantic,
}
