package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassificationString(t *testing.T) {
	require.Equal(t, "REJECT", Reject.String())
	require.Equal(t, "HALT", Halt.String())
	require.Equal(t, "INVALID", Classification(99).String())
}

func TestClassificationValid(t *testing.T) {
	require.True(t, Reject.Valid())
	require.True(t, Halt.Valid())
	require.False(t, Classification(99).Valid())
}

func TestParityString(t *testing.T) {
	require.Equal(t, "AGREED", Agreed.String())
	require.Equal(t, "HALTED", Halted.String())
	require.Equal(t, "INVALID", Parity(99).String())
}

func TestParityValid(t *testing.T) {
	require.True(t, Agreed.Valid())
	require.True(t, Halted.Valid())
	require.False(t, Parity(99).Valid())
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "Accepted", Accepted.String())
	require.Equal(t, "Rejected", Rejected.String())
	require.Equal(t, "Halted", HaltedOutcome.String())
	require.Equal(t, "Invalid", Outcome(99).String())
}
