package invariant

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mcp-tool-shop-org/registrum/internal/errs"
	"github.com/mcp-tool-shop-org/registrum/predicate"
)

// RegistryError reports that a registry document is malformed: one or
// more invariants failed schema validation, predicate parsing, static
// validation, or legacy-witness lookup. It aggregates every problem
// found rather than stopping at the first; the registrar cannot be
// constructed while any remain.
type RegistryError struct {
	errs errs.Errs
}

func (e *RegistryError) Error() string {
	return "invariant: registry error: " + e.errs.Err().Error()
}

// Registry is the fully compiled, paired set of invariants a Registrar
// evaluates. Construct one with Load.
type Registry struct {
	Version    int
	RegistryID string
	entries    []Entry
}

// Entries returns every compiled invariant, in document order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// EntriesForScopes returns the entries whose Scope is one of scopes,
// in document order.
func (r *Registry) EntriesForScopes(scopes ...Scope) []Entry {
	want := make(map[Scope]bool, len(scopes))
	for _, s := range scopes {
		want[s] = true
	}
	var out []Entry
	for _, e := range r.entries {
		if want[e.Scope] {
			out = append(out, e)
		}
	}
	return out
}

// Descriptors returns every invariant's externally-visible descriptor,
// in document order, with no predicate bodies attached.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Descriptor()
	}
	return out
}

var validGroups = map[string]Group{
	"identity": GroupIdentity,
	"lineage":  GroupLineage,
	"ordering": GroupOrdering,
}

var validScopes = map[string]Scope{
	"state":        ScopeState,
	"transition":   ScopeTransition,
	"registration": ScopeRegistration,
}

var validFailureModes = map[string]FailureMode{
	"reject": FailureReject,
	"halt":   FailureHalt,
}

// Load parses and compiles a registry document. Loading is
// all-or-nothing: if any invariant fails schema validation, predicate
// parsing, static validation, or has no matching legacy witness, Load
// returns a *RegistryError and no Registry.
func Load(raw []byte) (*Registry, error) {
	var doc registryDocument
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		var agg RegistryError
		agg.errs.Add(fmt.Errorf("malformed registry document: %w", err))
		return nil, &agg
	}

	var agg RegistryError
	if doc.Version != 1 {
		agg.errs.Add(fmt.Errorf("unsupported registry version: %d", doc.Version))
	}
	if doc.RegistryID == "" {
		agg.errs.Add(fmt.Errorf("registry_id must be non-empty"))
	}
	if len(doc.Invariants) == 0 {
		agg.errs.Add(fmt.Errorf("registry must declare at least one invariant"))
	}

	entries := make([]Entry, 0, len(doc.Invariants))
	seen := make(map[string]bool, len(doc.Invariants))
	for _, def := range doc.Invariants {
		entry, err := compileInvariant(def)
		if err != nil {
			agg.errs.Add(err)
			continue
		}
		if seen[entry.ID] {
			agg.errs.Add(fmt.Errorf("duplicate invariant id %q", entry.ID))
			continue
		}
		seen[entry.ID] = true
		entries = append(entries, entry)
	}

	if agg.errs.Errored() {
		return nil, &agg
	}

	return &Registry{
		Version:    doc.Version,
		RegistryID: doc.RegistryID,
		entries:    entries,
	}, nil
}

func compileInvariant(def invariantDefJSON) (Entry, error) {
	if def.ID == "" {
		return Entry{}, fmt.Errorf("invariant definition missing id")
	}
	group, ok := validGroups[def.Group]
	if !ok {
		return Entry{}, fmt.Errorf("invariant %q: invalid group %q", def.ID, def.Group)
	}
	scope, ok := validScopes[def.Scope]
	if !ok {
		return Entry{}, fmt.Errorf("invariant %q: invalid scope %q", def.ID, def.Scope)
	}
	failureMode, ok := validFailureModes[def.FailureMode]
	if !ok {
		return Entry{}, fmt.Errorf("invariant %q: invalid failure_mode %q", def.ID, def.FailureMode)
	}
	if def.Condition.Type != "predicate" {
		return Entry{}, fmt.Errorf("invariant %q: unsupported condition type %q", def.ID, def.Condition.Type)
	}

	ast, err := predicate.Parse(def.Condition.Expression)
	if err != nil {
		return Entry{}, fmt.Errorf("invariant %q: %w", def.ID, err)
	}
	if err := predicate.Validate(ast); err != nil {
		return Entry{}, fmt.Errorf("invariant %q: %w", def.ID, err)
	}

	legacyFn, ok := legacyWitnesses[def.ID]
	if !ok {
		return Entry{}, fmt.Errorf("invariant %q: no legacy witness implementation registered", def.ID)
	}

	return Entry{
		ID:              def.ID,
		Group:           group,
		Scope:           scope,
		AppliesTo:       def.AppliesTo,
		FailureMode:     failureMode,
		Description:     def.Description,
		RegistryCarrier: predicateCarrier{ast: ast},
		LegacyCarrier:   nativeCarrier{fn: legacyFn},
	}, nil
}
