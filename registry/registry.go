package registry

import (
	"sync"

	"github.com/mcp-tool-shop-org/registrum/config"
	"github.com/mcp-tool-shop-org/registrum/invariant"
	"github.com/mcp-tool-shop-org/registrum/metrics"
	"github.com/mcp-tool-shop-org/registrum/rlog"
)

// Registry is the single-writer, in-memory authoritative store: the
// ordered sequence of registered state ids, their lineage, and their
// assigned order indices. All mutating operations serialize through
// mu; reads take a shared lock and always observe a consistent,
// pre- or post-commit view, never a partial one.
type Registry struct {
	mu sync.RWMutex

	stateIDs []StateID
	lineage  map[StateID]*StateID
	assigned map[StateID]int
	maxIndex int // -1 when empty

	invariants *invariant.Registry
	authority  config.Authority
	metrics    *metrics.Metrics
	logger     rlog.Logger
}

// New constructs an empty Registry over a compiled invariant set.
func New(invariants *invariant.Registry, cfg config.RegistrarConfig, m *metrics.Metrics, logger rlog.Logger) *Registry {
	authority := cfg.PrimaryAuthority
	if authority == "" {
		authority = config.AuthorityRegistry
	}
	if m == nil {
		m = metrics.NewNoOp()
	}
	if logger == nil {
		logger = rlog.NoOp()
	}
	return &Registry{
		lineage:    make(map[StateID]*StateID),
		assigned:   make(map[StateID]int),
		maxIndex:   -1,
		invariants: invariants,
		authority:  authority,
		metrics:    m,
		logger:     logger,
	}
}

// ContainsState implements predicate.RegistryQuerier.
func (r *Registry) ContainsState(id StateID) bool {
	_, ok := r.lineage[id]
	return ok
}

// MaxOrderIndex implements predicate.RegistryQuerier.
func (r *Registry) MaxOrderIndex() int {
	return r.maxIndex
}

// ComputeOrderIndex implements predicate.RegistryQuerier. Registrum
// has exactly one rule for the next index, so the optional transition
// argument predicates may pass is never consulted.
func (r *Registry) ComputeOrderIndex() int {
	return r.maxIndex + 1
}

// StructuralView is a point-in-time, internally consistent copy of a
// Registry's full structural state: every field reflects the same
// commit, never a mix of a pre-commit and post-commit read.
type StructuralView struct {
	StateIDs []StateID
	Lineage  map[StateID]*StateID
	Assigned map[StateID]int
	MaxIndex int
}

// View returns a StructuralView taken under a single read lock, so a
// concurrent Register can never commit partway through the read. Use
// this instead of combining StateIDs/Lineage/OrderingAssigned/
// OrderingMaxIndex, which each take their own lock and so can observe
// different commits.
func (r *Registry) View() StructuralView {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stateIDs := make([]StateID, len(r.stateIDs))
	copy(stateIDs, r.stateIDs)

	lineage := make(map[StateID]*StateID, len(r.lineage))
	for k, v := range r.lineage {
		if v == nil {
			lineage[k] = nil
			continue
		}
		parent := *v
		lineage[k] = &parent
	}

	assigned := make(map[StateID]int, len(r.assigned))
	for k, v := range r.assigned {
		assigned[k] = v
	}

	return StructuralView{
		StateIDs: stateIDs,
		Lineage:  lineage,
		Assigned: assigned,
		MaxIndex: r.maxIndex,
	}
}

// StateIDs returns a copy of the registration-ordered id sequence.
func (r *Registry) StateIDs() []StateID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]StateID, len(r.stateIDs))
	copy(out, r.stateIDs)
	return out
}

// Lineage returns a copy of the parent-pointer map.
func (r *Registry) Lineage() map[StateID]*StateID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[StateID]*StateID, len(r.lineage))
	for k, v := range r.lineage {
		if v == nil {
			out[k] = nil
			continue
		}
		parent := *v
		out[k] = &parent
	}
	return out
}

// OrderingAssigned returns a copy of the id-to-index map.
func (r *Registry) OrderingAssigned() map[StateID]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[StateID]int, len(r.assigned))
	for k, v := range r.assigned {
		out[k] = v
	}
	return out
}

// OrderingMaxIndex returns the highest assigned order index, or -1 for
// an empty registry.
func (r *Registry) OrderingMaxIndex() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxIndex
}

// Invariants returns the compiled invariant set this registry
// evaluates against.
func (r *Registry) Invariants() *invariant.Registry {
	return r.invariants
}
