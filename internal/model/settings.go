package model

import (
	"time"

	"github.com/google/uuid"
)

// CutSettings holds saw and CNC configuration for a project.
type CutSettings struct {
	// Saw settings
	Kerf float64 `json:"kerf" toml:"kerf"` // Clearance added to both piece dimensions, mm

	// CNC / GCode settings
	ToolDiameter float64 `json:"tool_diameter" toml:"tool_diameter"` // End mill diameter in mm
	FeedRate     float64 `json:"feed_rate" toml:"feed_rate"`         // Cutting feed rate mm/min
	PlungeRate   float64 `json:"plunge_rate" toml:"plunge_rate"`     // Plunge feed rate mm/min
	SpindleSpeed int     `json:"spindle_speed" toml:"spindle_speed"` // RPM
	SafeZ        float64 `json:"safe_z" toml:"safe_z"`               // Safe retract height mm
	CutDepth     float64 `json:"cut_depth" toml:"cut_depth"`         // Total material thickness mm
	PassDepth    float64 `json:"pass_depth" toml:"pass_depth"`       // Depth per pass mm
	GCodeProfile string  `json:"gcode_profile" toml:"gcode_profile"` // Name of the GCode profile to use
}

func DefaultSettings() CutSettings {
	return CutSettings{
		Kerf:         4.0,
		ToolDiameter: 3.175,
		FeedRate:     1500.0,
		PlungeRate:   500.0,
		SpindleSpeed: 18000,
		SafeZ:        5.0,
		CutDepth:     18.0,
		PassDepth:    6.0,
		GCodeProfile: "Generic",
	}
}

// GCodeProfile defines a post-processor configuration for a CNC controller.
type GCodeProfile struct {
	Name          string   `json:"name" toml:"name"`
	Description   string   `json:"description" toml:"description"`
	StartCode     []string `json:"start_code" toml:"start_code"`         // Commands at start of file
	SpindleStart  string   `json:"spindle_start" toml:"spindle_start"`   // Spindle on command (e.g., "M3 S%d")
	SpindleStop   string   `json:"spindle_stop" toml:"spindle_stop"`     // Spindle off command
	RapidMove     string   `json:"rapid_move" toml:"rapid_move"`         // G0 or equivalent
	FeedMove      string   `json:"feed_move" toml:"feed_move"`           // G1 or equivalent
	EndCode       []string `json:"end_code" toml:"end_code"`             // Commands at end of file
	CommentPrefix string   `json:"comment_prefix" toml:"comment_prefix"` // Comment start (e.g., ";")
	CommentSuffix string   `json:"comment_suffix" toml:"comment_suffix"` // Comment end, e.g. ")" for Mach3
	DecimalPlaces int      `json:"decimal_places" toml:"decimal_places"` // Number of decimal places for coordinates
}

// Built-in GCode profiles
var GCodeProfiles = []GCodeProfile{
	{
		Name:          "Grbl",
		Description:   "Standard Grbl configuration (Arduino CNC shields)",
		StartCode:     []string{"G90", "G21", "G17"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Mach3",
		Description:   "Mach3 CNC control software",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G28 X0 Y0", "M30"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
	},
	{
		Name:          "LinuxCNC",
		Description:   "LinuxCNC (formerly EMC2)",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 4,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		StartCode:     []string{"G90", "G21"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// GetProfile returns a built-in GCode profile by name, or the Generic profile if not found.
func GetProfile(name string) GCodeProfile {
	return FindProfile(name, nil)
}

// FindProfile looks name up in custom first, then in the built-in
// profiles, falling back to Generic.
func FindProfile(name string, custom []GCodeProfile) GCodeProfile {
	for _, list := range [][]GCodeProfile{custom, GCodeProfiles} {
		for _, p := range list {
			if p.Name == name {
				return p
			}
		}
	}
	return GCodeProfiles[len(GCodeProfiles)-1]
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames() []string {
	var names []string
	for _, p := range GCodeProfiles {
		names = append(names, p.Name)
	}
	return names
}

// Project ties a cut list, its stock and its settings together for save/load.
type Project struct {
	ID        string      `json:"id"`
	Name      string      `json:"name" toml:"name"`
	CreatedAt time.Time   `json:"created_at"`
	Stock     Stock       `json:"stock"`
	Settings  CutSettings `json:"settings"`
	Pieces    []PieceType `json:"pieces"`
}

func NewProject() Project {
	return Project{
		ID:        uuid.New().String(),
		Name:      "Untitled",
		CreatedAt: time.Now().UTC(),
		Stock:     NewStock(1220, 2440),
		Settings:  DefaultSettings(),
		Pieces:    []PieceType{},
	}
}
