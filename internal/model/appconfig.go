package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects and to runs without explicit flags
	DefaultStockWidth  float64 `toml:"default_stock_width"`
	DefaultStockLength float64 `toml:"default_stock_length"`
	DefaultKerf        float64 `toml:"default_kerf"`

	// CNC defaults
	DefaultToolDiameter float64 `toml:"default_tool_diameter"`
	DefaultFeedRate     float64 `toml:"default_feed_rate"`
	DefaultPlungeRate   float64 `toml:"default_plunge_rate"`
	DefaultSpindleSpeed int     `toml:"default_spindle_speed"`
	DefaultSafeZ        float64 `toml:"default_safe_z"`
	DefaultCutDepth     float64 `toml:"default_cut_depth"`
	DefaultPassDepth    float64 `toml:"default_pass_depth"`
	DefaultGCodeProfile string  `toml:"default_gcode_profile"`

	// Application preferences
	WastePercent   float64  `toml:"waste_percent"` // Buying margin used by the panel estimate
	RecentProjects []string `toml:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultStockWidth:   1220,
		DefaultStockLength:  2440,
		DefaultKerf:         defaults.Kerf,
		DefaultToolDiameter: defaults.ToolDiameter,
		DefaultFeedRate:     defaults.FeedRate,
		DefaultPlungeRate:   defaults.PlungeRate,
		DefaultSpindleSpeed: defaults.SpindleSpeed,
		DefaultSafeZ:        defaults.SafeZ,
		DefaultCutDepth:     defaults.CutDepth,
		DefaultPassDepth:    defaults.PassDepth,
		DefaultGCodeProfile: defaults.GCodeProfile,
		WastePercent:        10,
		RecentProjects:      []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a CutSettings struct.
func (c AppConfig) ApplyToSettings(s *CutSettings) {
	s.Kerf = c.DefaultKerf
	s.ToolDiameter = c.DefaultToolDiameter
	s.FeedRate = c.DefaultFeedRate
	s.PlungeRate = c.DefaultPlungeRate
	s.SpindleSpeed = c.DefaultSpindleSpeed
	s.SafeZ = c.DefaultSafeZ
	s.CutDepth = c.DefaultCutDepth
	s.PassDepth = c.DefaultPassDepth
	s.GCodeProfile = c.DefaultGCodeProfile
}

// DefaultStock returns the configured default stock panel.
func (c AppConfig) DefaultStock() Stock {
	return NewStock(c.DefaultStockWidth, c.DefaultStockLength)
}

// AddRecentProject moves path to the front of the recent list, keeping at
// most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentProjects = recent
}
