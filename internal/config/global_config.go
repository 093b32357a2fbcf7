package config

// GlobalConfig contains all configuration sections for the application. It is
// constructed once at process start and passed into the components as an
// argument; nothing reads configuration ambiently after load.
type GlobalConfig struct {
	Sources            []SourceConfig     `json:"sources,omitempty" yaml:"sources,omitempty" validate:"required,min=1,dive"`
	ExtractorConfig    ExtractorConfig    `json:"extractor_config,omitempty" yaml:"extractor_config,omitempty"`
	NotificationConfig NotificationConfig `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
	StorageConfig      StorageConfig      `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	LogConfig          LogConfig          `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Sources:            []SourceConfig{},
		ExtractorConfig:    NewDefaultExtractorConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
		StorageConfig:      NewDefaultStorageConfig(),
		LogConfig:          NewDefaultLogConfig(),
	}
}
