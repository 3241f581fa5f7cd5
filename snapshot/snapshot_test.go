package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcp-tool-shop-org/registrum/config"
	"github.com/mcp-tool-shop-org/registrum/invariant"
	"github.com/mcp-tool-shop-org/registrum/registry"
)

func freshRegistry(t *testing.T) (*registry.Registry, *invariant.Registry) {
	t.Helper()
	inv, err := invariant.LoadDefault()
	require.NoError(t, err)
	return registry.New(inv, config.DefaultRegistrarConfig(), nil, nil), inv
}

func rootState(id string) registry.State {
	return registry.State{ID: id, Structure: map[string]interface{}{"isRoot": true}}
}

func childState(id string) registry.State {
	return registry.State{ID: id, Structure: map[string]interface{}{}}
}

func TestTakeAndHashAreDeterministic(t *testing.T) {
	r, _ := freshRegistry(t)
	r.Register(registry.Transition{From: nil, To: rootState("A")})

	snap1, err := Take(r, "dual")
	require.NoError(t, err)
	snap2, err := Take(r, "dual")
	require.NoError(t, err)

	h1, err := Hash(snap1)
	require.NoError(t, err)
	h2, err := Hash(snap2)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

func TestReplayRoundTripHashEqual(t *testing.T) {
	r, inv := freshRegistry(t)
	r.Register(registry.Transition{From: nil, To: rootState("A")})
	from := "A"
	r.Register(registry.Transition{From: &from, To: childState("B")})

	snap, err := Take(r, "dual")
	require.NoError(t, err)

	replayed, err := Replay(snap, inv, config.DefaultRegistrarConfig())
	require.NoError(t, err)

	replayedSnap, err := Take(replayed, "dual")
	require.NoError(t, err)

	originalHash, err := Hash(snap)
	require.NoError(t, err)
	replayedHash, err := Hash(replayedSnap)
	require.NoError(t, err)

	require.Equal(t, originalHash, replayedHash)
	require.Equal(t, snap.RegistryHash, replayedSnap.RegistryHash)
	require.Equal(t, []string{"A", "B"}, replayed.StateIDs())
}

func TestReplayRefusesUnrecognizedVersion(t *testing.T) {
	_, inv := freshRegistry(t)
	snap := Snapshot{Version: 2}

	_, err := Replay(snap, inv, config.DefaultRegistrarConfig())
	require.Error(t, err)

	var verErr *ErrUnrecognizedVersion
	require.ErrorAs(t, err, &verErr)
	require.Equal(t, 2, verErr.Got)
}

func TestReplayFailsOnInconsistentSnapshot(t *testing.T) {
	_, inv := freshRegistry(t)
	ghost := "ghost"
	snap := Snapshot{
		Version:  Version,
		Mode:     "dual",
		StateIDs: []string{"orphan"},
		Lineage:  map[string]*string{"orphan": &ghost},
		Ordering: Ordering{MaxIndex: -1, Assigned: map[string]int{}},
	}

	_, err := Replay(snap, inv, config.DefaultRegistrarConfig())
	require.Error(t, err)
}
