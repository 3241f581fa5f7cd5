package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersAllMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)
	require.NotNil(t, m.RegistrationsAccepted)
	require.NotNil(t, m.RegistrationsRejected)
	require.NotNil(t, m.RegistrationsHalted)
	require.NotNil(t, m.ParityHalts)
	require.NotNil(t, m.OrderingMaxIndex)
}

func TestNewFailsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "errors occurred")
}

func TestNoOpIsSafeToUse(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.IncAccepted()
		m.IncRejected()
		m.IncHalted()
		m.IncParityHalt()
		m.SetOrderingMaxIndex(3)
	})

	noop := NewNoOp()
	require.NotPanics(t, func() {
		noop.IncAccepted()
		noop.SetOrderingMaxIndex(5)
	})
}
