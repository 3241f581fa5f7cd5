package predicate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parseAndValidate(t *testing.T, expr string) error {
	t.Helper()
	node, err := Parse(expr)
	require.NoError(t, err)
	return Validate(node)
}

func TestValidateAcceptsAllowedPaths(t *testing.T) {
	require.NoError(t, parseAndValidate(t, "state.id == \"a\""))
	require.NoError(t, parseAndValidate(t, "state.structure.isRoot == true"))
	require.NoError(t, parseAndValidate(t, "transition.from == null"))
	require.NoError(t, parseAndValidate(t, "transition.to.id == \"a\""))
	require.NoError(t, parseAndValidate(t, "transition.to.structure.version == 2"))
	require.NoError(t, parseAndValidate(t, "transition.metadata.note == \"x\""))
	require.NoError(t, parseAndValidate(t, "ordering.index == 0"))
	require.NoError(t, parseAndValidate(t, "registry.contains_state(transition.to.id) == false"))
}

func TestValidateRejectsUnknownRoot(t *testing.T) {
	err := parseAndValidate(t, "bogus.field == 1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown root identifier")
}

func TestValidateRejectsForbiddenDataPath(t *testing.T) {
	for _, expr := range []string{
		"state.data == null",
		"state.data.foo == null",
		"state.content == null",
		"state.embedding == null",
		"transition.to.data == null",
		"transition.to.structure.data.blob == null",
	} {
		err := parseAndValidate(t, expr)
		require.Errorf(t, err, "expected %q to be rejected", expr)
		require.Contains(t, err.Error(), "forbidden path segment")
	}
}

func TestValidateRejectsBareRegistryIdentifier(t *testing.T) {
	err := parseAndValidate(t, "registry == true")
	require.Error(t, err)
}

func TestValidateRejectsDisallowedStatePath(t *testing.T) {
	err := parseAndValidate(t, "state.bogus == 1")
	require.Error(t, err)
}

func TestValidateRejectsUnknownFunction(t *testing.T) {
	err := parseAndValidate(t, "unknown_fn(state.id)")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown function")
}

func TestValidateRejectsWrongArity(t *testing.T) {
	err := parseAndValidate(t, "exists(state.id, state.id)")
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected")
}

func TestValidateRejectsForbiddenPathInsideCallArgs(t *testing.T) {
	err := parseAndValidate(t, "exists(state.data)")
	require.Error(t, err)
	require.Contains(t, err.Error(), "forbidden path segment")
}
