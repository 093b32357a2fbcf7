package monitor

import (
	"strings"

	"github.com/aleister1102/careerwatch/internal/models"
)

// NotifyPolicy decides which compared sources are eligible for the digest.
type NotifyPolicy string

const (
	// PolicyCountIncrease notifies only on a strict count increase.
	PolicyCountIncrease NotifyPolicy = "count-increase"
	// PolicyCountIncreaseOrTitles notifies on a strict count increase or any title delta.
	PolicyCountIncreaseOrTitles NotifyPolicy = "count-increase-or-titles"
	// PolicyAnyChange notifies on any count movement or any title delta.
	PolicyAnyChange NotifyPolicy = "any-change"
)

// ParseNotifyPolicy parses the configured policy string, falling back to the
// default policy for empty or unknown values.
func ParseNotifyPolicy(raw string) NotifyPolicy {
	switch NotifyPolicy(strings.ToLower(raw)) {
	case PolicyCountIncrease:
		return PolicyCountIncrease
	case PolicyAnyChange:
		return PolicyAnyChange
	default:
		return PolicyCountIncreaseOrTitles
	}
}

// Eligible reports whether a change record qualifies for the digest under the
// policy. A first observation is never eligible.
func (np NotifyPolicy) Eligible(record models.ChangeRecord) bool {
	if record.IsFirstObservation() {
		return false
	}

	switch np {
	case PolicyCountIncrease:
		return record.CountChange.Outcome == models.CountIncreased
	case PolicyAnyChange:
		return record.CountChange.Outcome != models.CountUnchanged || record.HasTitleChanges()
	default: // PolicyCountIncreaseOrTitles
		return record.CountChange.Outcome == models.CountIncreased || record.HasTitleChanges()
	}
}
