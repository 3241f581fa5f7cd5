// Package metrics wires Registrum's counters and gauges to Prometheus,
// following the teacher's metrics package: each metric is a concrete
// prometheus collector registered once against a Registerer, with
// registration errors folded through internal/errs instead of aborting
// on the first failure.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mcp-tool-shop-org/registrum/internal/errs"
)

// Metrics holds every metric a Registrar emits. Fields are nil-safe: a
// zero-value Metrics (as returned by NewNoOp) silently discards
// observations rather than panicking, matching the teacher's
// no-op-on-error fallback in NewAveragerWithErrs.
type Metrics struct {
	RegistrationsAccepted prometheus.Counter
	RegistrationsRejected prometheus.Counter
	RegistrationsHalted   prometheus.Counter
	ParityHalts           prometheus.Counter
	OrderingMaxIndex      prometheus.Gauge
}

// New registers Registrum's metrics against reg and returns the bundle.
// Every registration is attempted even if an earlier one fails, and all
// failures are folded into a single error via internal/errs.
func New(reg prometheus.Registerer) (*Metrics, error) {
	var errList errs.Errs

	accepted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "registrum_registrations_accepted_total",
		Help: "Total number of transitions accepted by the dual-witness runner.",
	})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "registrum_registrations_rejected_total",
		Help: "Total number of transitions rejected due to a REJECT-classified violation.",
	})
	halted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "registrum_registrations_halted_total",
		Help: "Total number of transitions halted due to a HALT-classified violation.",
	})
	parityHalts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "registrum_parity_halts_total",
		Help: "Total number of transitions halted because the registry and legacy witnesses diverged.",
	})
	maxIndex := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "registrum_ordering_max_index",
		Help: "Highest order index assigned by the registry so far.",
	})

	errList.Add(reg.Register(accepted))
	errList.Add(reg.Register(rejected))
	errList.Add(reg.Register(halted))
	errList.Add(reg.Register(parityHalts))
	errList.Add(reg.Register(maxIndex))

	if errList.Errored() {
		return nil, errList.Err()
	}

	return &Metrics{
		RegistrationsAccepted: accepted,
		RegistrationsRejected: rejected,
		RegistrationsHalted:   halted,
		ParityHalts:           parityHalts,
		OrderingMaxIndex:      maxIndex,
	}, nil
}

// NewNoOp returns a Metrics whose fields are all nil; every recorder
// method is a no-op against it.
func NewNoOp() *Metrics {
	return &Metrics{}
}

// IncAccepted records an accepted registration.
func (m *Metrics) IncAccepted() {
	if m != nil && m.RegistrationsAccepted != nil {
		m.RegistrationsAccepted.Inc()
	}
}

// IncRejected records a rejected registration.
func (m *Metrics) IncRejected() {
	if m != nil && m.RegistrationsRejected != nil {
		m.RegistrationsRejected.Inc()
	}
}

// IncHalted records a halted registration.
func (m *Metrics) IncHalted() {
	if m != nil && m.RegistrationsHalted != nil {
		m.RegistrationsHalted.Inc()
	}
}

// IncParityHalt records a halt caused by witness divergence.
func (m *Metrics) IncParityHalt() {
	if m != nil && m.ParityHalts != nil {
		m.ParityHalts.Inc()
	}
}

// SetOrderingMaxIndex updates the highest assigned order index.
func (m *Metrics) SetOrderingMaxIndex(index int64) {
	if m != nil && m.OrderingMaxIndex != nil {
		m.OrderingMaxIndex.Set(float64(index))
	}
}
