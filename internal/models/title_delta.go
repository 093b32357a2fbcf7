package models

import "fmt"

// DeltaKind represents the kind of difference between two title-rank lists.
type DeltaKind string

const (
	// DeltaAdded indicates a title present in the current list but not in the previous one.
	DeltaAdded DeltaKind = "added"
	// DeltaRemoved indicates a title present in the previous list but not in the current one.
	DeltaRemoved DeltaKind = "removed"
	// DeltaMoved indicates a title present in both lists at a different rank.
	DeltaMoved DeltaKind = "moved"
)

// TitleDelta represents a single structured difference between two title-rank
// lists. Ranks are 1-based. OldRank is zero for added titles, NewRank is zero
// for removed titles.
type TitleDelta struct {
	Kind    DeltaKind `json:"kind"`
	Title   string    `json:"title"`
	OldRank int       `json:"old_rank,omitempty"`
	NewRank int       `json:"new_rank,omitempty"`
}

// NewAddedDelta creates a delta for a title that appeared at newRank.
func NewAddedDelta(title string, newRank int) TitleDelta {
	return TitleDelta{Kind: DeltaAdded, Title: title, NewRank: newRank}
}

// NewRemovedDelta creates a delta for a title that disappeared from oldRank.
func NewRemovedDelta(title string, oldRank int) TitleDelta {
	return TitleDelta{Kind: DeltaRemoved, Title: title, OldRank: oldRank}
}

// NewMovedDelta creates a delta for a title whose rank changed.
func NewMovedDelta(title string, oldRank, newRank int) TitleDelta {
	return TitleDelta{Kind: DeltaMoved, Title: title, OldRank: oldRank, NewRank: newRank}
}

// String renders the delta in a human-readable form used by the digest body.
func (td TitleDelta) String() string {
	switch td.Kind {
	case DeltaAdded:
		return fmt.Sprintf("new at #%d: %s", td.NewRank, td.Title)
	case DeltaRemoved:
		return fmt.Sprintf("gone from #%d: %s", td.OldRank, td.Title)
	case DeltaMoved:
		return fmt.Sprintf("moved #%d -> #%d: %s", td.OldRank, td.NewRank, td.Title)
	default:
		return td.Title
	}
}
