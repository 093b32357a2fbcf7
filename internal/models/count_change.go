package models

// CountOutcome represents the outcome of comparing two observed counts.
type CountOutcome string

const (
	// CountFirstObservation indicates the source had no previously persisted count.
	CountFirstObservation CountOutcome = "first_observation"
	// CountUnchanged indicates the count did not change.
	CountUnchanged CountOutcome = "unchanged"
	// CountIncreased indicates the count went up.
	CountIncreased CountOutcome = "increased"
	// CountDecreased indicates the count went down.
	CountDecreased CountOutcome = "decreased"
)

// CountChange is the result of comparing a previously persisted count against
// the currently observed one. Delta is always positive and only meaningful for
// the increased and decreased outcomes.
type CountChange struct {
	Outcome CountOutcome `json:"outcome"`
	Delta   int          `json:"delta,omitempty"`
}

// SignedDelta returns the delta with its direction applied: positive for
// increases, negative for decreases, zero otherwise.
func (cc CountChange) SignedDelta() int {
	switch cc.Outcome {
	case CountIncreased:
		return cc.Delta
	case CountDecreased:
		return -cc.Delta
	default:
		return 0
	}
}
