// Package status defines the small closed enumerations used throughout
// Registrum for classifying violations and parity outcomes. Shaped
// after the teacher's choices.Status: a narrow integer type with a
// String method and a Valid guard, rather than bare strings.
package status

// Classification distinguishes a structural refusal from a systemic
// halt. It mirrors a violation's failureMode.
type Classification uint8

const (
	// Reject indicates an ordinary structural refusal: the transition
	// is invalid, but the registry itself is not in question.
	Reject Classification = iota
	// Halt indicates systemic corruption: the registry state or the
	// dual-witness parity guarantee cannot be trusted for this input.
	Halt
)

// String implements fmt.Stringer.
func (c Classification) String() string {
	switch c {
	case Reject:
		return "REJECT"
	case Halt:
		return "HALT"
	default:
		return "INVALID"
	}
}

// Valid reports whether c is one of the defined classifications.
func (c Classification) Valid() bool {
	switch c {
	case Reject, Halt:
		return true
	default:
		return false
	}
}

// Parity describes the outcome of comparing the registry and legacy
// witness verdicts for a single transition.
type Parity uint8

const (
	// Agreed indicates both witnesses produced the same verdict set.
	Agreed Parity = iota
	// Halted indicates the witnesses diverged; the transition was
	// refused and the registry left unchanged.
	Halted
)

// String implements fmt.Stringer.
func (p Parity) String() string {
	switch p {
	case Agreed:
		return "AGREED"
	case Halted:
		return "HALTED"
	default:
		return "INVALID"
	}
}

// Valid reports whether p is one of the defined parity states.
func (p Parity) Valid() bool {
	switch p {
	case Agreed, Halted:
		return true
	default:
		return false
	}
}

// Outcome describes whether a dual-witness run accepted, rejected, or
// halted a transition. Shaped after the teacher's Processing/Rejected/
// Accepted lifecycle, with "Processing" dropped since Registrum never
// observes a pending state — evaluation is synchronous and bounded.
type Outcome uint8

const (
	// Accepted indicates both witnesses agreed the transition satisfies
	// every invariant.
	Accepted Outcome = iota
	// Rejected indicates at least one REJECT-classified violation fired
	// and the witnesses agreed on the verdict set.
	Rejected
	// HaltedOutcome indicates a HALT-classified violation fired, or the
	// witnesses diverged.
	HaltedOutcome
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "Accepted"
	case Rejected:
		return "Rejected"
	case HaltedOutcome:
		return "Halted"
	default:
		return "Invalid"
	}
}
