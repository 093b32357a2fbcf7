package config

// SourceConfig defines one monitored careers search-results page: where it
// lives, how to extract the displayed result count and the top job titles,
// and how many titles to keep. Immutable within a run.
type SourceConfig struct {
	ID            string `json:"id" yaml:"id" validate:"required"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	URL           string `json:"url" yaml:"url" validate:"required,url"`
	CountSelector string `json:"count_selector" yaml:"count_selector" validate:"required"`
	TitleSelector string `json:"title_selector,omitempty" yaml:"title_selector,omitempty"`
	MaxTitles     int    `json:"max_titles,omitempty" yaml:"max_titles,omitempty" validate:"omitempty,min=1"`
	Mode          string `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,sourcemode"`
}

// DisplayName returns the configured name, falling back to the ID.
func (sc SourceConfig) DisplayName() string {
	if sc.Name != "" {
		return sc.Name
	}
	return sc.ID
}

// EffectiveMaxTitles returns the configured title cap, falling back to the default.
func (sc SourceConfig) EffectiveMaxTitles() int {
	if sc.MaxTitles > 0 {
		return sc.MaxTitles
	}
	return DefaultSourceMaxTitles
}

// EffectiveMode returns the configured extraction mode, falling back to the default.
func (sc SourceConfig) EffectiveMode() string {
	if sc.Mode != "" {
		return sc.Mode
	}
	return DefaultSourceMode
}
