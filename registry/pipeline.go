package registry

import (
	"github.com/mcp-tool-shop-org/registrum/invariant"
	"github.com/mcp-tool-shop-org/registrum/predicate"
	"github.com/mcp-tool-shop-org/registrum/status"
	"github.com/mcp-tool-shop-org/registrum/witness"
)

func (r *Registry) contextFor(t Transition, orderIndex *int) *predicate.EvaluationContext {
	stateView := predicate.StateView{ID: t.To.ID, Structure: t.To.Structure}
	transitionView := predicate.TransitionView{From: t.From, To: stateView, Metadata: t.Metadata}
	return &predicate.EvaluationContext{
		State:         &stateView,
		Transition:    &transitionView,
		Registry:      r,
		OrderingIndex: orderIndex,
	}
}

func appliedIDs(entries ...[]invariant.Entry) []string {
	var out []string
	for _, group := range entries {
		for _, e := range group {
			out = append(out, e.ID)
		}
	}
	return out
}

// Register runs the full pipeline: validate state/transition scope
// invariants, compute the tentative order index, validate
// registration-scope invariants, and — only if every check passes —
// commit atomically. The entire pipeline runs under the write lock, so
// no partial mutation is ever observable to a concurrent reader.
func (r *Registry) Register(t Transition) RegistrationResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	firstPassEntries := r.invariants.EntriesForScopes(invariant.ScopeState, invariant.ScopeTransition)
	ctx := r.contextFor(t, nil)
	verdict := witness.Run(firstPassEntries, ctx, r.authority)
	if verdict.Halted() {
		r.recordOutcome(verdict)
		return RegistrationResult{Violations: verdict.Violations}
	}

	index := r.maxIndex + 1

	secondPassEntries := r.invariants.EntriesForScopes(invariant.ScopeRegistration)
	ctx2 := r.contextFor(t, &index)
	verdict2 := witness.Run(secondPassEntries, ctx2, r.authority)
	if verdict2.Halted() {
		r.recordOutcome(verdict2)
		return RegistrationResult{Violations: verdict2.Violations}
	}

	r.stateIDs = append(r.stateIDs, t.To.ID)
	// An identity-preserving update (from == to.id, allowed by
	// state.identity.immutable) must not overwrite the existing parent
	// pointer with a self-reference: that would turn lineage[id] into a
	// one-node cycle and make GetLineage loop forever.
	if t.From == nil || *t.From != t.To.ID {
		r.lineage[t.To.ID] = t.From
	}
	r.assigned[t.To.ID] = index
	r.maxIndex = index

	r.metrics.IncAccepted()
	r.metrics.SetOrderingMaxIndex(int64(index))
	r.logger.Info("state registered", "stateId", t.To.ID, "orderIndex", index)

	return RegistrationResult{
		Accepted:          true,
		StateID:           t.To.ID,
		OrderIndex:        index,
		AppliedInvariants: appliedIDs(firstPassEntries, secondPassEntries),
	}
}

func (r *Registry) recordOutcome(v witness.Verdict) {
	if v.Parity == status.Halted {
		r.metrics.IncParityHalt()
		r.metrics.IncHalted()
		r.logger.Warn("parity divergence halted transition", "violations", len(v.Violations))
		return
	}
	haltedByInvariant := false
	for _, violation := range v.Violations {
		if violation.Classification == status.Halt {
			haltedByInvariant = true
		}
	}
	if haltedByInvariant {
		r.metrics.IncHalted()
	} else {
		r.metrics.IncRejected()
	}
	r.logger.Warn("transition refused", "violations", len(v.Violations))
}

// Validate runs the same predicates Register would, without mutating
// the registry. It covers every scope, using the tentative order index
// the transition would receive so registration-scope invariants can be
// inspected ahead of a real Register call.
func (r *Registry) Validate(t Transition) ValidationReport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := r.maxIndex + 1
	ctx := r.contextFor(t, &index)
	entries := r.invariants.Entries()
	verdict := witness.Run(entries, ctx, r.authority)
	return ValidationReport{
		Valid:      !verdict.Halted(),
		Violations: verdict.Violations,
	}
}

// GetLineage returns the chain from id to the root, most-recent first.
// Unknown ids yield an empty, non-nil slice. The walk is guarded
// against revisiting an id: the acyclicity invariant guarantees this
// never triggers in a well-formed registry, but the guard keeps the
// walk finite even if that invariant were ever violated, rather than
// hanging or growing chain without bound.
func (r *Registry) GetLineage(id StateID) []StateID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chain := []StateID{}
	current, ok := r.lineage[id]
	if !ok {
		return chain
	}
	visited := map[StateID]bool{id: true}
	chain = append(chain, id)
	for current != nil {
		if visited[*current] {
			break
		}
		visited[*current] = true
		chain = append(chain, *current)
		next, ok := r.lineage[*current]
		if !ok {
			break
		}
		current = next
	}
	return chain
}
