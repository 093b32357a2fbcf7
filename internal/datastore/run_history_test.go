package datastore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aleister1102/careerwatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHistoryStore_RecordAndComplete(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "run_history.db")
	store, err := NewRunHistoryStore(dbPath, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	start := time.Now().Add(-time.Minute)
	dbID, err := store.RecordRunStart("run-001", start)
	require.NoError(t, err)
	require.Positive(t, dbID)

	summary := models.RunSummary{
		RunID:          "run-001",
		StartedAt:      start,
		EndedAt:        time.Now(),
		Status:         models.RunCompleted,
		SourcesChecked: 2,
		SourcesFailed:  1,
		SourcesChanged: 1,
		DigestSent:     true,
	}
	require.NoError(t, store.UpdateRunCompletion(dbID, summary))

	runs, err := store.LatestRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, "run-001", got.RunID)
	assert.Equal(t, models.RunCompleted, got.Status)
	assert.Equal(t, 2, got.SourcesChecked)
	assert.Equal(t, 1, got.SourcesFailed)
	assert.Equal(t, 1, got.SourcesChanged)
	assert.True(t, got.DigestSent)
	assert.False(t, got.EndedAt.IsZero())
}

func TestRunHistoryStore_LatestRuns_Ordering(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "run_history.db")
	store, err := NewRunHistoryStore(dbPath, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	base := time.Now().Add(-time.Hour)
	_, err = store.RecordRunStart("run-old", base)
	require.NoError(t, err)
	_, err = store.RecordRunStart("run-new", base.Add(30*time.Minute))
	require.NoError(t, err)

	runs, err := store.LatestRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-new", runs[0].RunID)
	assert.Equal(t, "run-old", runs[1].RunID)
}

func TestRunLock_ExclusiveWithinProcess(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "locks", "careerwatch.lock")

	first := NewRunLock(lockPath, zerolog.Nop())
	locked, err := first.TryAcquire()
	require.NoError(t, err)
	require.True(t, locked)
	defer first.Release()

	second := NewRunLock(lockPath, zerolog.Nop())
	lockedAgain, err := second.TryAcquire()
	require.NoError(t, err)
	assert.False(t, lockedAgain)
}
