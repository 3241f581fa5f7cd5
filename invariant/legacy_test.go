package invariant

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcp-tool-shop-org/registrum/predicate"
)

type fakeRegistry struct {
	ids     map[string]bool
	maxIdx  int
	nextIdx int
}

func (f fakeRegistry) ContainsState(id string) bool { return f.ids[id] }
func (f fakeRegistry) MaxOrderIndex() int            { return f.maxIdx }
func (f fakeRegistry) ComputeOrderIndex() int        { return f.nextIdx }

func TestLegacyStateIdentityExplicit(t *testing.T) {
	require.True(t, legacyStateIdentityExplicit(&predicate.EvaluationContext{State: &predicate.StateView{ID: "a"}}))
	require.False(t, legacyStateIdentityExplicit(&predicate.EvaluationContext{State: &predicate.StateView{ID: ""}}))
}

func TestLegacyStateIdentityImmutable(t *testing.T) {
	from := "A"
	ctx := &predicate.EvaluationContext{Transition: &predicate.TransitionView{From: &from, To: predicate.StateView{ID: "A"}}}
	require.True(t, legacyStateIdentityImmutable(ctx))

	ctx2 := &predicate.EvaluationContext{Transition: &predicate.TransitionView{From: &from, To: predicate.StateView{ID: "B"}}}
	require.False(t, legacyStateIdentityImmutable(ctx2))

	ctx3 := &predicate.EvaluationContext{Transition: &predicate.TransitionView{From: nil, To: predicate.StateView{ID: "root"}}}
	require.True(t, legacyStateIdentityImmutable(ctx3))
}

func TestLegacyStateIdentityUnique(t *testing.T) {
	reg := fakeRegistry{ids: map[string]bool{"A": true}}
	ctx := &predicate.EvaluationContext{
		Transition: &predicate.TransitionView{From: nil, To: predicate.StateView{ID: "A"}},
		Registry:   reg,
	}
	require.False(t, legacyStateIdentityUnique(ctx))

	ctx2 := &predicate.EvaluationContext{
		Transition: &predicate.TransitionView{From: nil, To: predicate.StateView{ID: "B"}},
		Registry:   reg,
	}
	require.True(t, legacyStateIdentityUnique(ctx2))
}

func TestLegacyStateLineageExplicit(t *testing.T) {
	rootCtx := &predicate.EvaluationContext{
		Transition: &predicate.TransitionView{From: nil, To: predicate.StateView{ID: "A", Structure: map[string]interface{}{"isRoot": true}}},
	}
	require.True(t, legacyStateLineageExplicit(rootCtx))

	parent := "A"
	childCtx := &predicate.EvaluationContext{
		Transition: &predicate.TransitionView{From: &parent, To: predicate.StateView{ID: "B", Structure: map[string]interface{}{}}},
	}
	require.True(t, legacyStateLineageExplicit(childCtx))

	badCtx := &predicate.EvaluationContext{
		Transition: &predicate.TransitionView{From: nil, To: predicate.StateView{ID: "A", Structure: map[string]interface{}{}}},
	}
	require.False(t, legacyStateLineageExplicit(badCtx))
}

func TestLegacyOrderingMonotonic(t *testing.T) {
	idx := 3
	reg := fakeRegistry{maxIdx: 2}
	ctx := &predicate.EvaluationContext{OrderingIndex: &idx, Registry: reg}
	require.True(t, legacyOrderingMonotonic(ctx))

	reg2 := fakeRegistry{maxIdx: 5}
	ctx2 := &predicate.EvaluationContext{OrderingIndex: &idx, Registry: reg2}
	require.False(t, legacyOrderingMonotonic(ctx2))
}

func TestLegacyOrderingTotal(t *testing.T) {
	idx := 0
	require.True(t, legacyOrderingTotal(&predicate.EvaluationContext{OrderingIndex: &idx}))
	require.False(t, legacyOrderingTotal(&predicate.EvaluationContext{}))
}
