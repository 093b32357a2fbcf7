package datastore

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/careerwatch/internal/errorwrapper"
	"github.com/aleister1102/careerwatch/internal/models"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// RunHistoryStore records one row per monitoring run in a local SQLite
// database, for auditing what the scheduler has been doing.
type RunHistoryStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewRunHistoryStore opens (creating if needed) the run history database and
// ensures the schema exists.
func NewRunHistoryStore(dataSourceName string, logger zerolog.Logger) (*RunHistoryStore, error) {
	storeLogger := logger.With().Str("component", "RunHistoryStore").Logger()

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, errorwrapper.NewPersistenceError("mkdir", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, errorwrapper.NewPersistenceError("open", dataSourceName, err)
	}

	store := &RunHistoryStore{
		db:     dbInstance,
		logger: storeLogger,
	}

	if err := store.initSchema(); err != nil {
		store.Close()
		return nil, errorwrapper.WrapError(err, "failed to initialize run history schema")
	}

	storeLogger.Debug().Str("path", dataSourceName).Msg("Run history store initialized")
	return store, nil
}

// Close closes the database connection.
func (rhs *RunHistoryStore) Close() error {
	if rhs.db != nil {
		return rhs.db.Close()
	}
	return nil
}

// initSchema creates the run_history table if it doesn't already exist.
func (rhs *RunHistoryStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS run_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT UNIQUE,
		started_at DATETIME NOT NULL,
		ended_at DATETIME,
		status TEXT NOT NULL,
		sources_checked INTEGER DEFAULT 0,
		sources_failed INTEGER DEFAULT 0,
		sources_changed INTEGER DEFAULT 0,
		digest_sent INTEGER DEFAULT 0
	);
	`
	_, err := rhs.db.Exec(query)
	return err
}

// RecordRunStart inserts a new run row with status "STARTED" and returns its row ID.
func (rhs *RunHistoryStore) RecordRunStart(runID string, startedAt time.Time) (int64, error) {
	query := `INSERT INTO run_history (run_id, started_at, status) VALUES (?, ?, ?)`
	result, err := rhs.db.Exec(query, runID, startedAt, "STARTED")
	if err != nil {
		return 0, errorwrapper.WrapError(err, "failed to insert run start record")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errorwrapper.WrapError(err, "failed to get last insert ID")
	}
	rhs.logger.Debug().Int64("db_id", id).Str("run_id", runID).Msg("Recorded run start")
	return id, nil
}

// UpdateRunCompletion fills in the terminal state of a run row.
func (rhs *RunHistoryStore) UpdateRunCompletion(dbID int64, summary models.RunSummary) error {
	query := `UPDATE run_history SET ended_at = ?, status = ?, sources_checked = ?, sources_failed = ?, sources_changed = ?, digest_sent = ? WHERE id = ?`
	_, err := rhs.db.Exec(query,
		summary.EndedAt,
		string(summary.Status),
		summary.SourcesChecked,
		summary.SourcesFailed,
		summary.SourcesChanged,
		boolToInt(summary.DigestSent),
		dbID,
	)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to update run completion")
	}
	return nil
}

// LatestRuns returns the most recent run summaries, newest first.
func (rhs *RunHistoryStore) LatestRuns(limit int) ([]models.RunSummary, error) {
	query := `SELECT run_id, started_at, ended_at, status, sources_checked, sources_failed, sources_changed, digest_sent
		FROM run_history ORDER BY started_at DESC LIMIT ?`
	rows, err := rhs.db.Query(query, limit)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to query run history")
	}
	defer rows.Close()

	var summaries []models.RunSummary
	for rows.Next() {
		var summary models.RunSummary
		var endedAt sql.NullTime
		var status string
		var digestSent int
		if err := rows.Scan(
			&summary.RunID,
			&summary.StartedAt,
			&endedAt,
			&status,
			&summary.SourcesChecked,
			&summary.SourcesFailed,
			&summary.SourcesChanged,
			&digestSent,
		); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to scan run history row")
		}
		if endedAt.Valid {
			summary.EndedAt = endedAt.Time
		}
		summary.Status = models.RunStatus(status)
		summary.DigestSent = digestSent != 0
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
