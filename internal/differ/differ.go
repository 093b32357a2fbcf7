package differ

import (
	"time"

	"github.com/aleister1102/careerwatch/internal/config"
	"github.com/aleister1102/careerwatch/internal/models"
	"github.com/rs/zerolog"
)

// SnapshotDiffer compares a source's current observation against its
// persisted snapshot and assembles the change record consumed by the
// notifier.
type SnapshotDiffer struct {
	logger zerolog.Logger
}

// NewSnapshotDiffer creates a new SnapshotDiffer
func NewSnapshotDiffer(logger zerolog.Logger) *SnapshotDiffer {
	return &SnapshotDiffer{
		logger: logger.With().Str("component", "SnapshotDiffer").Logger(),
	}
}

// BuildChangeRecord compares the extraction result for one source against the
// previous snapshot entries. previousCount is nil when the source has never
// been observed.
func (sd *SnapshotDiffer) BuildChangeRecord(
	src config.SourceConfig,
	previousCount *int,
	previousTitles []string,
	result models.ExtractResult,
) models.ChangeRecord {
	record := models.ChangeRecord{
		SourceID:       src.ID,
		SourceName:     src.DisplayName(),
		SourceURL:      src.URL,
		PreviousCount:  previousCount,
		CurrentCount:   result.Count,
		PreviousTitles: previousTitles,
		CurrentTitles:  result.Titles,
		CountChange:    CompareCounts(previousCount, result.Count),
		TitleDeltas:    CompareTitles(previousTitles, result.Titles),
		ObservedAt:     time.Now(),
	}

	sd.logger.Debug().
		Str("source_id", src.ID).
		Str("count_outcome", string(record.CountChange.Outcome)).
		Int("title_deltas", len(record.TitleDeltas)).
		Msg("Change record built")

	return record
}

// CompareCounts compares a previously persisted count against the current
// observation. A nil previous means the source was never observed; that is a
// first observation, not a change. Delta magnitudes are always positive.
func CompareCounts(previous *int, current int) models.CountChange {
	switch {
	case previous == nil:
		return models.CountChange{Outcome: models.CountFirstObservation}
	case current == *previous:
		return models.CountChange{Outcome: models.CountUnchanged}
	case current > *previous:
		return models.CountChange{Outcome: models.CountIncreased, Delta: current - *previous}
	default:
		return models.CountChange{Outcome: models.CountDecreased, Delta: *previous - current}
	}
}

// CompareTitles performs a rank-based diff of two ordered title lists. It is
// deliberately not a sequence alignment: the result is all Added deltas in
// current order, then all Removed deltas in previous order, then all Moved
// deltas in current order. Titles compare byte-for-byte.
//
// Duplicate titles within one list are tolerated; rank lookups use the first
// occurrence, so duplicates beyond the first are invisible to the diff.
func CompareTitles(previous, current []string) []models.TitleDelta {
	// First observation path: everything is new, nothing moved or vanished.
	if len(previous) == 0 {
		deltas := make([]models.TitleDelta, 0, len(current))
		for i, title := range current {
			deltas = append(deltas, models.NewAddedDelta(title, i+1))
		}
		return deltas
	}

	previousRank := firstOccurrenceRanks(previous)
	currentRank := firstOccurrenceRanks(current)

	var added, removed, moved []models.TitleDelta

	for i, title := range current {
		if currentRank[title] != i+1 {
			continue // duplicate beyond the first occurrence
		}
		if _, known := previousRank[title]; !known {
			added = append(added, models.NewAddedDelta(title, i+1))
		}
	}

	for i, title := range previous {
		if previousRank[title] != i+1 {
			continue
		}
		if _, present := currentRank[title]; !present {
			removed = append(removed, models.NewRemovedDelta(title, i+1))
		}
	}

	for i, title := range current {
		if currentRank[title] != i+1 {
			continue
		}
		oldRank, known := previousRank[title]
		if !known {
			continue
		}
		if oldRank != i+1 {
			moved = append(moved, models.NewMovedDelta(title, oldRank, i+1))
		}
	}

	deltas := make([]models.TitleDelta, 0, len(added)+len(removed)+len(moved))
	deltas = append(deltas, added...)
	deltas = append(deltas, removed...)
	deltas = append(deltas, moved...)
	return deltas
}

// firstOccurrenceRanks maps each title to its 1-based rank of first occurrence.
func firstOccurrenceRanks(titles []string) map[string]int {
	ranks := make(map[string]int, len(titles))
	for i, title := range titles {
		if _, seen := ranks[title]; !seen {
			ranks[title] = i + 1
		}
	}
	return ranks
}
