package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied when the CLI flags are not given
	DefaultJoinTol float64 `json:"default_join_tol"`
	DefaultUnit    Unit    `json:"default_unit"`

	// Render preferences
	RenderWidth  int `json:"render_width"`
	RenderHeight int `json:"render_height"`

	// Application preferences
	RecentFiles []string `json:"recent_files"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultJoinTol: 0.0,
		DefaultUnit:    Millimeters,
		RenderWidth:    800,
		RenderHeight:   600,
		RecentFiles:    []string{},
	}
}
