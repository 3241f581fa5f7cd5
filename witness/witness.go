// Package witness implements Registrum's dual-witness runner: for a
// given evaluation context, it evaluates every applicable invariant
// twice — once through the predicate-DSL carrier, once through the
// hand-written native carrier — and compares the two verdict sets.
// Divergence between them is fail-closed: the transition halts
// regardless of what either witness individually concluded.
package witness

import (
	"fmt"

	"github.com/mcp-tool-shop-org/registrum/config"
	"github.com/mcp-tool-shop-org/registrum/internal/set"
	"github.com/mcp-tool-shop-org/registrum/invariant"
	"github.com/mcp-tool-shop-org/registrum/predicate"
	"github.com/mcp-tool-shop-org/registrum/status"
)

// Violation is a single invariant's refusal, or the single synthetic
// violation produced when the two witnesses disagree.
type Violation struct {
	InvariantID    string
	Classification status.Classification
	Message        string
}

// Verdict is the outcome of running the dual-witness evaluation over a
// set of entries for one evaluation context.
type Verdict struct {
	Parity     status.Parity
	Violations []Violation
}

// Halted reports whether the verdict refuses the transition, whether
// by ordinary invariant failure or by parity divergence.
func (v Verdict) Halted() bool {
	return len(v.Violations) > 0
}

// parityDivergenceID is the synthetic invariant ID surfaced when the
// registry and legacy witnesses disagree.
const parityDivergenceID = "parity.divergence"

// Run evaluates every entry against ctx using both carriers and
// returns the combined verdict. Evaluation order never affects the
// result: registry and legacy verdicts are compared as sets.
func Run(entries []invariant.Entry, ctx *predicate.EvaluationContext, authority config.Authority) Verdict {
	registryVerdict := set.NewSet[string](len(entries))
	legacyVerdict := set.NewSet[string](len(entries))
	byID := make(map[string]invariant.Entry, len(entries))

	for _, e := range entries {
		byID[e.ID] = e
		if !e.RegistryCarrier.Evaluate(ctx) {
			registryVerdict.Add(e.ID)
		}
		if !e.LegacyCarrier.Evaluate(ctx) {
			legacyVerdict.Add(e.ID)
		}
	}

	if !registryVerdict.Equals(legacyVerdict) {
		return Verdict{
			Parity: status.Halted,
			Violations: []Violation{{
				InvariantID:    parityDivergenceID,
				Classification: status.Halt,
				Message: fmt.Sprintf(
					"registry and legacy witnesses disagree: registry=%s legacy=%s (primary authority: %s)",
					set.String(registryVerdict), set.String(legacyVerdict), authority,
				),
			}},
		}
	}

	agreed := registryVerdict // == legacyVerdict, by the check above
	if agreed.Len() == 0 {
		return Verdict{Parity: status.Agreed}
	}

	violations := make([]Violation, 0, agreed.Len())
	for _, id := range set.SortedStrings(agreed) {
		entry := byID[id]
		violations = append(violations, Violation{
			InvariantID:    entry.ID,
			Classification: entry.FailureMode.Classification(),
			Message:        entry.Description,
		})
	}
	return Verdict{Parity: status.Agreed, Violations: violations}
}
