package registrum

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcp-tool-shop-org/registrum/config"
	"github.com/mcp-tool-shop-org/registrum/invariant"
	"github.com/mcp-tool-shop-org/registrum/registry"
)

func rootState(id string) registry.State {
	return registry.State{ID: id, Structure: map[string]interface{}{"isRoot": true}}
}

func childState(id string) registry.State {
	return registry.State{ID: id, Structure: map[string]interface{}{}}
}

func newTestRegistrar(t *testing.T, opts ...Option) *Registrar {
	t.Helper()
	r, err := New(invariant.DefaultRegistryJSON(), config.DefaultRegistrarConfig(), opts...)
	require.NoError(t, err)
	return r
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.RegistrarConfig{Attestation: config.AttestationConfig{Enabled: true, OutputMode: config.OutputFile}}
	_, err := New(invariant.DefaultRegistryJSON(), cfg)
	require.Error(t, err)
}

func TestRegisterAndGetLineage(t *testing.T) {
	r := newTestRegistrar(t)
	res := r.Register(registry.Transition{From: nil, To: rootState("A")})
	require.True(t, res.Accepted)

	from := "A"
	res2 := r.Register(registry.Transition{From: &from, To: childState("B")})
	require.True(t, res2.Accepted)

	require.Equal(t, []string{"B", "A"}, r.GetLineage("B"))
}

func TestValidateDoesNotMutate(t *testing.T) {
	r := newTestRegistrar(t)
	report := r.Validate(registry.Transition{From: nil, To: rootState("A")})
	require.True(t, report.Valid)
	require.Empty(t, r.GetLineage("A"))
}

func TestSnapshotAndReplayRoundTrip(t *testing.T) {
	r := newTestRegistrar(t)
	r.Register(registry.Transition{From: nil, To: rootState("A")})

	snap, err := r.Snapshot()
	require.NoError(t, err)

	replayed, err := r.Replay(snap)
	require.NoError(t, err)

	replayedSnap, err := replayed.Snapshot()
	require.NoError(t, err)
	require.Equal(t, snap.RegistryHash, replayedSnap.RegistryHash)
}

func TestListInvariantsReturnsAllDescriptors(t *testing.T) {
	r := newTestRegistrar(t)
	descriptors := r.ListInvariants()
	require.NotEmpty(t, descriptors)
	for _, d := range descriptors {
		require.NotEmpty(t, d.ID)
	}
}

func TestRegisterAttestsThroughCallbackSink(t *testing.T) {
	var captured string
	cfg := config.RegistrarConfig{
		PrimaryAuthority: config.AuthorityRegistry,
		Attestation: config.AttestationConfig{
			Enabled:       true,
			OutputMode:    config.OutputCallback,
			OnAttestation: func(payload string) { captured = payload },
		},
	}
	r, err := New(invariant.DefaultRegistryJSON(), cfg)
	require.NoError(t, err)

	res := r.Register(registry.Transition{From: nil, To: rootState("A")})
	require.True(t, res.Accepted)
	require.NotEmpty(t, captured)
}
