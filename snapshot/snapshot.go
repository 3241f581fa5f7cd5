// Package snapshot implements Registrum's content-addressed snapshot
// and replay protocol: a Snapshot v1 captures registry structure (never
// payload data), hashes canonically, and can rehydrate a fresh registry
// by replaying its transitions in registration order.
package snapshot

import (
	"fmt"

	"github.com/mcp-tool-shop-org/registrum/encoding"
	"github.com/mcp-tool-shop-org/registrum/registry"
)

// Version is the only snapshot format version this package recognizes.
const Version = 1

// Ordering mirrors a Registry's ordering block.
type Ordering struct {
	MaxIndex int                      `json:"max_index"`
	Assigned map[registry.StateID]int `json:"assigned"`
}

// Snapshot is the persistable, hashable structural state of a registry
// at a point in time. It deliberately omits payload data: replay
// reconstructs structure, never payloads.
type Snapshot struct {
	Version      int                              `json:"version"`
	RegistryHash string                            `json:"registry_hash"`
	Mode         string                            `json:"mode"`
	StateIDs     []registry.StateID                `json:"state_ids"`
	Lineage      map[registry.StateID]*registry.StateID `json:"lineage"`
	Ordering     Ordering                         `json:"ordering"`
}

// ErrUnrecognizedVersion is returned by Replay when a snapshot's
// version is not Version. There is no silent upgrade path.
type ErrUnrecognizedVersion struct {
	Got int
}

func (e *ErrUnrecognizedVersion) Error() string {
	return fmt.Sprintf("snapshot: unrecognized version %d, expected %d", e.Got, Version)
}

// registryDescriptorDoc is hashed to produce RegistryHash: a minimal,
// canonical description of the compiled invariant set, independent of
// registry document formatting.
type registryDescriptorDoc struct {
	RegistryID string        `json:"registry_id"`
	Invariants []interface{} `json:"invariants"`
}

// RegistryHash computes hash(canonical(compiled registry)) for reg.
func RegistryHash(reg *registry.Registry) (string, error) {
	descriptors := reg.Invariants().Descriptors()
	docs := make([]interface{}, len(descriptors))
	for i, d := range descriptors {
		docs[i] = d
	}
	doc := registryDescriptorDoc{
		RegistryID: reg.Invariants().RegistryID,
		Invariants: docs,
	}
	return encoding.Hash(doc)
}

// Take captures reg's current structural state as a Snapshot v1, with
// mode describing which witness configuration produced it (e.g.
// "dual", "legacy-only", "registry-only"). The structural fields come
// from a single registry.Registry.View() call, so a concurrent
// Register can never commit partway through the capture and leave the
// snapshot's state_ids and lineage/ordering describing different
// points in time.
func Take(reg *registry.Registry, mode string) (Snapshot, error) {
	registryHash, err := RegistryHash(reg)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: hashing registry: %w", err)
	}
	view := reg.View()
	return Snapshot{
		Version:      Version,
		RegistryHash: registryHash,
		Mode:         mode,
		StateIDs:     view.StateIDs,
		Lineage:      view.Lineage,
		Ordering: Ordering{
			MaxIndex: view.MaxIndex,
			Assigned: view.Assigned,
		},
	}, nil
}

// Hash returns hash(canonical(snap)).
func Hash(snap Snapshot) (string, error) {
	return encoding.Hash(snap)
}
