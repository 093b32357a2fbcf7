package config

import "time"

// ExtractorConfig defines configuration for the page extraction layer.
type ExtractorConfig struct {
	PageLoadTimeoutSecs int    `json:"page_load_timeout_secs,omitempty" yaml:"page_load_timeout_secs,omitempty" validate:"omitempty,min=1"`
	SelectorTimeoutSecs int    `json:"selector_timeout_secs,omitempty" yaml:"selector_timeout_secs,omitempty" validate:"omitempty,min=1"`
	UserAgent           string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	ChromePath          string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	CaptureScreenshots  bool   `json:"capture_screenshots" yaml:"capture_screenshots"`
	ScreenshotDir       string `json:"screenshot_dir,omitempty" yaml:"screenshot_dir,omitempty"`
}

// NewDefaultExtractorConfig creates default extractor configuration
func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		PageLoadTimeoutSecs: DefaultExtractorPageLoadTimeoutSecs,
		SelectorTimeoutSecs: DefaultExtractorSelectorTimeoutSecs,
		UserAgent:           DefaultExtractorUserAgent,
		ChromePath:          "",
		CaptureScreenshots:  false,
		ScreenshotDir:       DefaultExtractorScreenshotDir,
	}
}

// PageLoadTimeout returns the page load timeout as a duration.
func (ec ExtractorConfig) PageLoadTimeout() time.Duration {
	return time.Duration(ec.PageLoadTimeoutSecs) * time.Second
}

// SelectorTimeout returns the selector wait timeout as a duration.
func (ec ExtractorConfig) SelectorTimeout() time.Duration {
	return time.Duration(ec.SelectorTimeoutSecs) * time.Second
}
