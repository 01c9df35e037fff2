package model

// AppConfig holds application-wide preferences and default settings
// applied to new projects.
type AppConfig struct {
	DefaultKerfWidth    int     `json:"default_kerf_width"`
	DefaultAllowRotate  bool    `json:"default_allow_rotate"`
	DefaultToolDiameter float64 `json:"default_tool_diameter"`
	DefaultFeedRate     float64 `json:"default_feed_rate"`
	DefaultPlungeRate   float64 `json:"default_plunge_rate"`
	DefaultSpindleSpeed int     `json:"default_spindle_speed"`
	DefaultSafeZ        float64 `json:"default_safe_z"`
	DefaultCutDepth     float64 `json:"default_cut_depth"`
	DefaultPassDepth    float64 `json:"default_pass_depth"`
	DefaultGCodeProfile string  `json:"default_gcode_profile"`

	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentProjects   []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultKerfWidth:    defaults.KerfWidth,
		DefaultAllowRotate:  defaults.AllowRotation,
		DefaultToolDiameter: defaults.ToolDiameter,
		DefaultFeedRate:     defaults.FeedRate,
		DefaultPlungeRate:   defaults.PlungeRate,
		DefaultSpindleSpeed: defaults.SpindleSpeed,
		DefaultSafeZ:        defaults.SafeZ,
		DefaultCutDepth:     defaults.CutDepth,
		DefaultPassDepth:    defaults.PassDepth,
		DefaultGCodeProfile: defaults.GCodeProfile,
		AutoSaveInterval:    0,
		RecentProjects:      []string{},
	}
}

// ApplyToSettings copies the saved defaults from AppConfig into a
// CutSettings, used when creating a new project.
func (c AppConfig) ApplyToSettings(s *CutSettings) {
	s.KerfWidth = c.DefaultKerfWidth
	s.AllowRotation = c.DefaultAllowRotate
	s.ToolDiameter = c.DefaultToolDiameter
	s.FeedRate = c.DefaultFeedRate
	s.PlungeRate = c.DefaultPlungeRate
	s.SpindleSpeed = c.DefaultSpindleSpeed
	s.SafeZ = c.DefaultSafeZ
	s.CutDepth = c.DefaultCutDepth
	s.PassDepth = c.DefaultPassDepth
	s.GCodeProfile = c.DefaultGCodeProfile
}
