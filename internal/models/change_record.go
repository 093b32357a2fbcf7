package models

import "time"

// ChangeRecord holds everything observed about one source in one run: the
// previous and current counts, the previous and current title orders, and the
// derived title deltas. It is ephemeral and consumed by the notifier in the
// same run that produced it.
type ChangeRecord struct {
	SourceID       string       `json:"source_id"`
	SourceName     string       `json:"source_name"`
	SourceURL      string       `json:"source_url"`
	PreviousCount  *int         `json:"previous_count,omitempty"`
	CurrentCount   int          `json:"current_count"`
	CountChange    CountChange  `json:"count_change"`
	PreviousTitles []string     `json:"previous_titles,omitempty"`
	CurrentTitles  []string     `json:"current_titles"`
	TitleDeltas    []TitleDelta `json:"title_deltas,omitempty"`
	ObservedAt     time.Time    `json:"observed_at"`
}

// IsFirstObservation reports whether this source had never been observed before.
func (cr ChangeRecord) IsFirstObservation() bool {
	return cr.CountChange.Outcome == CountFirstObservation
}

// HasTitleChanges reports whether the title diff produced any deltas.
func (cr ChangeRecord) HasTitleChanges() bool {
	return len(cr.TitleDeltas) > 0
}

// ExtractResult is what the extraction collaborator returns for one source:
// the parsed count, up to N trimmed non-empty titles in document order, and
// the screenshot path when capture is enabled.
type ExtractResult struct {
	Count          int
	Titles         []string
	ScreenshotPath string
}
