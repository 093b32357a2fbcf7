package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *GlobalConfig {
	cfg := NewDefaultGlobalConfig()
	cfg.Sources = []SourceConfig{
		{
			ID:            "google-careers",
			URL:           "https://careers.example.com/results",
			CountSelector: "span.count",
			TitleSelector: "h3.title",
		},
	}
	return cfg
}

func TestValidateConfig_Valid(t *testing.T) {
	require.NoError(t, ValidateConfig(validConfig()))
}

func TestValidateConfig_NoSources(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sources")
}

func TestValidateConfig_MissingCountSelector(t *testing.T) {
	cfg := validConfig()
	cfg.Sources[0].CountSelector = ""
	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateConfig_BadSourceMode(t *testing.T) {
	cfg := validConfig()
	cfg.Sources[0].Mode = "carrier-pigeon"
	assert.Error(t, ValidateConfig(cfg))

	cfg.Sources[0].Mode = "static"
	assert.NoError(t, ValidateConfig(cfg))
}

func TestValidateConfig_BadNotifyPolicy(t *testing.T) {
	cfg := validConfig()
	cfg.NotificationConfig.NotifyPolicy = "whenever"
	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateConfig_BadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.LogConfig.LogLevel = "verbose"
	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateConfig_DuplicateSourceIDs(t *testing.T) {
	cfg := validConfig()
	cfg.Sources = append(cfg.Sources, cfg.Sources[0])
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate source id")
}
