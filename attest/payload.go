// Package attest builds and emits Registrum attestation payloads: a
// non-authoritative, best-effort external record of a registration
// outcome. Emission failures never affect registry state.
package attest

import (
	"github.com/mcp-tool-shop-org/registrum/status"
)

// Mode describes which witness(es) backed an attestation's verdict.
type Mode string

const (
	ModeDual        Mode = "dual"
	ModeLegacyOnly  Mode = "legacy-only"
	ModeRegistryOnly Mode = "registry-only"
)

// Range identifies the transition an attestation covers.
type Range struct {
	From *string `json:"from"`
	To   string  `json:"to"`
}

// Payload is the exact, stable field set an attestation carries.
type Payload struct {
	RegistrumVersion string `json:"registrum_version"`
	SnapshotVersion  int    `json:"snapshot_version"`
	SnapshotHash     string `json:"snapshot_hash"`
	RegistryHash     string `json:"registry_hash"`
	Mode             Mode   `json:"mode"`
	ParityStatus     string `json:"parity_status"`
	TransitionRange  Range  `json:"transition_range"`
	StateCount       int    `json:"state_count"`
	OrderingMax      int    `json:"ordering_max"`
}

// BuildParams carries the inputs needed to construct a Payload.
type BuildParams struct {
	RegistrumVersion string
	SnapshotVersion  int
	SnapshotHash     string
	RegistryHash     string
	Parity           status.Parity
	PrimaryAuthority string // "registry" or "legacy", consulted only on a halt
	From             *string
	To               string
	StateCount       int
	OrderingMax      int
}

// Build derives a Payload's mode from the parity outcome: agreement
// always yields dual; a halt yields the single authority that kept
// producing a verdict, by primary authority.
func Build(p BuildParams) Payload {
	mode := ModeDual
	if p.Parity == status.Halted {
		if p.PrimaryAuthority == "legacy" {
			mode = ModeLegacyOnly
		} else {
			mode = ModeRegistryOnly
		}
	}
	return Payload{
		RegistrumVersion: p.RegistrumVersion,
		SnapshotVersion:  p.SnapshotVersion,
		SnapshotHash:     p.SnapshotHash,
		RegistryHash:     p.RegistryHash,
		Mode:             mode,
		ParityStatus:     p.Parity.String(),
		TransitionRange:  Range{From: p.From, To: p.To},
		StateCount:       p.StateCount,
		OrderingMax:       p.OrderingMax,
	}
}
