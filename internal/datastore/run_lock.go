package datastore

import (
	"os"
	"path/filepath"

	"github.com/aleister1102/careerwatch/internal/errorwrapper"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
)

// RunLock guards the snapshot files against overlapping scheduler
// invocations. The lock is advisory and held for the whole run.
type RunLock struct {
	fileLock *flock.Flock
	logger   zerolog.Logger
}

// NewRunLock creates a new RunLock backed by the given lock file path.
func NewRunLock(path string, logger zerolog.Logger) *RunLock {
	return &RunLock{
		fileLock: flock.New(path),
		logger:   logger.With().Str("component", "RunLock").Logger(),
	}
}

// TryAcquire attempts to take the lock without blocking. It returns false
// when another run already holds it.
func (rl *RunLock) TryAcquire() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(rl.fileLock.Path()), 0755); err != nil {
		return false, errorwrapper.NewPersistenceError("mkdir", rl.fileLock.Path(), err)
	}

	locked, err := rl.fileLock.TryLock()
	if err != nil {
		return false, errorwrapper.NewPersistenceError("lock", rl.fileLock.Path(), err)
	}
	if !locked {
		rl.logger.Warn().Str("path", rl.fileLock.Path()).Msg("Another run holds the lock")
	}
	return locked, nil
}

// Release drops the lock. Safe to call when the lock was never acquired.
func (rl *RunLock) Release() {
	if err := rl.fileLock.Unlock(); err != nil {
		rl.logger.Warn().Err(err).Msg("Failed to release run lock")
	}
}
