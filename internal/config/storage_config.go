package config

// StorageConfig defines configuration for snapshot persistence and run history.
type StorageConfig struct {
	SnapshotDir      string `json:"snapshot_dir,omitempty" yaml:"snapshot_dir,omitempty"`
	RunHistoryDBPath string `json:"run_history_db_path,omitempty" yaml:"run_history_db_path,omitempty"`
	LockFilePath     string `json:"lock_file_path,omitempty" yaml:"lock_file_path,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		SnapshotDir:      DefaultStorageSnapshotDir,
		RunHistoryDBPath: DefaultStorageRunHistoryDBPath,
		LockFilePath:     DefaultStorageLockFilePath,
	}
}
