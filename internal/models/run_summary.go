package models

import "time"

// RunStatus represents the terminal status of a monitoring run.
type RunStatus string

const (
	// RunCompleted indicates the run finished; per-source failures do not change this.
	RunCompleted RunStatus = "COMPLETED"
	// RunFailed indicates the shared navigation context itself failed and nothing was persisted.
	RunFailed RunStatus = "FAILED"
	// RunSkipped indicates another run held the lock and this invocation did nothing.
	RunSkipped RunStatus = "SKIPPED"
)

// RunSummary aggregates the outcome of one monitoring run for the history store.
type RunSummary struct {
	RunID          string
	StartedAt      time.Time
	EndedAt        time.Time
	Status         RunStatus
	SourcesChecked int
	SourcesFailed  int
	SourcesChanged int
	DigestSent     bool
}
