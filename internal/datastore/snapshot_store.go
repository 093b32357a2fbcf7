package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aleister1102/careerwatch/internal/config"
	"github.com/aleister1102/careerwatch/internal/errorwrapper"
	"github.com/aleister1102/careerwatch/internal/models"
	"github.com/rs/zerolog"
)

const (
	countsFileName = "counts.json"
	titlesFileName = "titles.json"
)

// SnapshotStore persists the last-observed count and title list per source as
// two independent JSON files. Read failures degrade to empty state, write
// failures are best effort; neither is ever fatal to a run.
type SnapshotStore struct {
	dir    string
	logger zerolog.Logger
}

// NewSnapshotStore creates a new SnapshotStore rooted at the configured snapshot directory.
func NewSnapshotStore(cfg config.StorageConfig, logger zerolog.Logger) *SnapshotStore {
	return &SnapshotStore{
		dir:    cfg.SnapshotDir,
		logger: logger.With().Str("component", "SnapshotStore").Logger(),
	}
}

// CountsPath returns the path of the persisted count snapshot.
func (ss *SnapshotStore) CountsPath() string {
	return filepath.Join(ss.dir, countsFileName)
}

// TitlesPath returns the path of the persisted title snapshot.
func (ss *SnapshotStore) TitlesPath() string {
	return filepath.Join(ss.dir, titlesFileName)
}

// Load reads both snapshots. Each file is independently loadable: a missing
// or unreadable counts file does not affect the titles snapshot and vice
// versa. Failures are logged and yield empty mappings.
func (ss *SnapshotStore) Load() (models.CountSnapshot, models.TitleSnapshot) {
	counts := models.CountSnapshot{}
	if err := ss.loadJSON(ss.CountsPath(), &counts); err != nil {
		ss.logger.Warn().Err(err).Str("path", ss.CountsPath()).Msg("Count snapshot unreadable, treating as empty")
		counts = models.CountSnapshot{}
	}

	titles := models.TitleSnapshot{}
	if err := ss.loadJSON(ss.TitlesPath(), &titles); err != nil {
		ss.logger.Warn().Err(err).Str("path", ss.TitlesPath()).Msg("Title snapshot unreadable, treating as empty")
		titles = models.TitleSnapshot{}
	}

	return counts, titles
}

// Save overwrites both snapshots. The caller is responsible for merging
// entries of sources that were not observed this run back into the mappings
// before calling Save. Errors are logged and returned, but callers treat them
// as best effort.
func (ss *SnapshotStore) Save(counts models.CountSnapshot, titles models.TitleSnapshot) error {
	if err := os.MkdirAll(ss.dir, 0755); err != nil {
		return errorwrapper.NewPersistenceError("mkdir", ss.dir, err)
	}

	var firstErr error
	if err := ss.writeJSON(ss.CountsPath(), counts); err != nil {
		ss.logger.Error().Err(err).Msg("Failed to write count snapshot")
		firstErr = err
	}
	if err := ss.writeJSON(ss.TitlesPath(), titles); err != nil {
		ss.logger.Error().Err(err).Msg("Failed to write title snapshot")
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// loadJSON reads one snapshot file. A missing file means "never observed" and
// is not an error.
func (ss *SnapshotStore) loadJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errorwrapper.NewPersistenceError("read", path, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errorwrapper.NewPersistenceError("decode", path, err)
	}
	return nil
}

// writeJSON writes a snapshot file via a temp file and rename so a crashed
// run never leaves a half-written snapshot behind.
func (ss *SnapshotStore) writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorwrapper.NewPersistenceError("encode", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return errorwrapper.NewPersistenceError("write", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errorwrapper.NewPersistenceError("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errorwrapper.NewPersistenceError("write", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errorwrapper.NewPersistenceError("rename", path, err)
	}

	ss.logger.Debug().Str("path", path).Msg("Snapshot written")
	return nil
}
