// Package registrum is a deterministic structural registrar: it
// assigns irreversible, total order to registered states, validates
// every registration against a declarative invariant registry through
// two independent witnesses, and can snapshot and replay its own
// history. Payload data is never inspected by an invariant; only
// structure and lineage are.
package registrum

import (
	"fmt"

	"github.com/mcp-tool-shop-org/registrum/attest"
	"github.com/mcp-tool-shop-org/registrum/config"
	"github.com/mcp-tool-shop-org/registrum/invariant"
	"github.com/mcp-tool-shop-org/registrum/metrics"
	"github.com/mcp-tool-shop-org/registrum/registry"
	"github.com/mcp-tool-shop-org/registrum/rlog"
	"github.com/mcp-tool-shop-org/registrum/snapshot"
	"github.com/mcp-tool-shop-org/registrum/status"
	"github.com/prometheus/client_golang/prometheus"
)

// version is stamped into every attestation payload this build emits.
const version = "0.1.0"

// Registrar is the façade a caller embeds: it bundles the compiled
// invariant registry, the live registry store, and the optional
// attestation emitter behind the small set of operations spec.md
// exposes. No other writes are exposed.
type Registrar struct {
	reg        *registry.Registry
	invariants *invariant.Registry
	cfg        config.RegistrarConfig
	emitter    *attest.Emitter
	logger     rlog.Logger
}

// Option configures New.
type Option func(*options)

type options struct {
	registerer prometheus.Registerer
	logger     rlog.Logger
	sink       attest.Sink
}

// WithRegisterer attaches a Prometheus registerer for the registrar's
// metrics. Without it, metric observations are discarded.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) { o.registerer = r }
}

// WithLogger overrides the default no-op logger.
func WithLogger(l rlog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithAttestationSink supplies the destination for attestation
// payloads when cfg.Attestation.Enabled is true. FileSink and
// CallbackSink are constructed from cfg automatically; pass this only
// to override with a custom Sink (e.g. in tests).
func WithAttestationSink(s attest.Sink) Option {
	return func(o *options) { o.sink = s }
}

// New compiles registryJSON and constructs a Registrar over it. cfg is
// validated before anything else is built.
func New(registryJSON []byte, cfg config.RegistrarConfig, opts ...Option) (*Registrar, error) {
	if err := cfg.Valid(); err != nil {
		return nil, fmt.Errorf("registrum: invalid config: %w", err)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = rlog.NoOp()
	}

	invariants, err := invariant.Load(registryJSON)
	if err != nil {
		return nil, fmt.Errorf("registrum: loading invariant registry: %w", err)
	}

	var m *metrics.Metrics
	if o.registerer != nil {
		m, err = metrics.New(o.registerer)
		if err != nil {
			return nil, fmt.Errorf("registrum: registering metrics: %w", err)
		}
	} else {
		m = metrics.NewNoOp()
	}

	sink := o.sink
	if sink == nil && cfg.Attestation.Enabled {
		sink = defaultSink(cfg.Attestation)
	}

	return &Registrar{
		reg:        registry.New(invariants, cfg, m, o.logger),
		invariants: invariants,
		cfg:        cfg,
		emitter:    attest.NewEmitter(sink, cfg.Attestation.Enabled, o.logger),
		logger:     o.logger,
	}, nil
}

func defaultSink(a config.AttestationConfig) attest.Sink {
	switch a.OutputMode {
	case config.OutputFile:
		return attest.FileSink{Path: a.OutputPath}
	case config.OutputCallback:
		return attest.CallbackSink{Fn: a.OnAttestation}
	case config.OutputStdout:
		return attest.StdoutSink{}
	default:
		return nil
	}
}

// Register proposes t for registration. On acceptance it emits a
// best-effort attestation; emission failure is logged but never
// changes the result.
func (r *Registrar) Register(t registry.Transition) registry.RegistrationResult {
	res := r.reg.Register(t)
	if res.Accepted {
		r.attestAccepted(t, res)
	}
	return res
}

func (r *Registrar) attestAccepted(t registry.Transition, res registry.RegistrationResult) {
	snap, err := snapshot.Take(r.reg, r.mode(status.Agreed))
	if err != nil {
		r.logger.Warn("attestation skipped: snapshot failed", "error", err)
		return
	}
	snapHash, err := snapshot.Hash(snap)
	if err != nil {
		r.logger.Warn("attestation skipped: snapshot hashing failed", "error", err)
		return
	}
	payload := attest.Build(attest.BuildParams{
		RegistrumVersion: version,
		SnapshotVersion:  snapshot.Version,
		SnapshotHash:     snapHash,
		RegistryHash:     snap.RegistryHash,
		Parity:           status.Agreed,
		PrimaryAuthority: string(r.cfg.PrimaryAuthority),
		From:             t.From,
		To:               t.To.ID,
		StateCount:       len(snap.StateIDs),
		OrderingMax:      snap.Ordering.MaxIndex,
	})
	r.emitter.Emit(payload)
}

func (r *Registrar) mode(p status.Parity) string {
	if p == status.Agreed {
		return "dual"
	}
	if r.cfg.PrimaryAuthority == config.AuthorityLegacy {
		return "legacy-only"
	}
	return "registry-only"
}

// Validate reports whether t would be accepted, without mutating the
// registry.
func (r *Registrar) Validate(t registry.Transition) registry.ValidationReport {
	return r.reg.Validate(t)
}

// Snapshot captures the registrar's current structural state.
func (r *Registrar) Snapshot() (snapshot.Snapshot, error) {
	return snapshot.Take(r.reg, r.mode(status.Agreed))
}

// Replay reconstructs a fresh Registrar from snap, compiled against
// this Registrar's invariant registry and configuration.
func (r *Registrar) Replay(snap snapshot.Snapshot) (*Registrar, error) {
	reg, err := snapshot.Replay(snap, r.invariants, r.cfg)
	if err != nil {
		return nil, err
	}
	return &Registrar{
		reg:        reg,
		invariants: r.invariants,
		cfg:        r.cfg,
		emitter:    r.emitter,
		logger:     r.logger,
	}, nil
}

// ListInvariants returns the compiled registry's externally-visible
// descriptors, in document order.
func (r *Registrar) ListInvariants() []invariant.Descriptor {
	return r.invariants.Descriptors()
}

// GetLineage returns id's ancestry, most recent first.
func (r *Registrar) GetLineage(id registry.StateID) []registry.StateID {
	return r.reg.GetLineage(id)
}
