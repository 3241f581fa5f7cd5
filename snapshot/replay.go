package snapshot

import (
	"fmt"

	"github.com/mcp-tool-shop-org/registrum/config"
	"github.com/mcp-tool-shop-org/registrum/invariant"
	"github.com/mcp-tool-shop-org/registrum/metrics"
	"github.com/mcp-tool-shop-org/registrum/registry"
	"github.com/mcp-tool-shop-org/registrum/rlog"
)

// Replay reconstructs a fresh registry from snap by issuing each of its
// transitions, in state_ids order, against a registrar compiled from
// invariants. A registrar refuses to replay a snapshot whose version it
// does not recognize, before touching any state. Any rejection during
// replay means the snapshot is inconsistent with the current invariant
// set, and replay fails rather than returning a partially built
// registry.
func Replay(snap Snapshot, invariants *invariant.Registry, cfg config.RegistrarConfig) (*registry.Registry, error) {
	if snap.Version != Version {
		return nil, &ErrUnrecognizedVersion{Got: snap.Version}
	}

	reg := registry.New(invariants, cfg, metrics.NewNoOp(), rlog.NoOp())

	for _, id := range snap.StateIDs {
		from := snap.Lineage[id]
		structure := map[string]interface{}{}
		if from == nil {
			structure["isRoot"] = true
		}
		res := reg.Register(registry.Transition{
			From: from,
			To:   registry.State{ID: id, Structure: structure},
		})
		if !res.Accepted {
			return nil, fmt.Errorf("snapshot: replay of %q rejected: snapshot inconsistent with invariant set", id)
		}
	}

	replayedHash, err := RegistryHash(reg)
	if err != nil {
		return nil, fmt.Errorf("snapshot: hashing replayed registry: %w", err)
	}
	if replayedHash != snap.RegistryHash {
		return nil, fmt.Errorf("snapshot: replayed registry_hash %q does not match snapshot %q", replayedHash, snap.RegistryHash)
	}

	replayed, err := Take(reg, snap.Mode)
	if err != nil {
		return nil, fmt.Errorf("snapshot: taking replayed snapshot: %w", err)
	}
	originalHash, err := Hash(snap)
	if err != nil {
		return nil, fmt.Errorf("snapshot: hashing original snapshot: %w", err)
	}
	replayedSnapHash, err := Hash(replayed)
	if err != nil {
		return nil, fmt.Errorf("snapshot: hashing replayed snapshot: %w", err)
	}
	if replayedSnapHash != originalHash {
		return nil, fmt.Errorf("snapshot: replayed snapshot does not hash-equal the original")
	}

	return reg, nil
}
