// Package model holds the integer-based domain types used above the core
// packing engine: identified parts and stock, CNC/optimizer settings, the
// full optimize result, and the built-in GCode post-processor profiles.
package model

import "github.com/google/uuid"

// Part is a required piece to be cut, identified for labels and exports.
type Part struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Width    int    `json:"width"`  // mm
	Height   int    `json:"height"` // mm
	Quantity int    `json:"quantity"`
}

// NewPart creates a Part with a freshly generated short ID.
func NewPart(label string, w, h, qty int) Part {
	return Part{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// StockSheet is the single configured panel size parts are cut from.
type StockSheet struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Width  int    `json:"width"`  // mm
	Height int    `json:"height"` // mm
}

// NewStockSheet creates a StockSheet with a freshly generated short ID.
func NewStockSheet(label string, w, h int) StockSheet {
	return StockSheet{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  w,
		Height: h,
	}
}

// Algorithm selects which solving strategy produces the result.
type Algorithm string

const (
	AlgorithmGuillotine    Algorithm = "guillotine"     // greedy + branch-and-bound core engine
	AlgorithmBranchAndBound Algorithm = "branch-and-bound" // same greedy-seeded search as guillotine; exact search only up to 20 pieces
	AlgorithmGenetic       Algorithm = "genetic"        // genetic meta-heuristic over the guillotine bin
)

// CutSettings holds optimizer and CNC configuration.
type CutSettings struct {
	// Optimizer settings
	Algorithm     Algorithm `json:"algorithm"`
	KerfWidth     int       `json:"kerf_width"`     // saw/bit width in mm
	AllowRotation bool      `json:"allow_rotation"` // 0/90 degree rotation permission

	// CNC / GCode settings
	ToolDiameter float64 `json:"tool_diameter"` // end mill diameter in mm
	FeedRate     float64 `json:"feed_rate"`     // cutting feed rate mm/min
	PlungeRate   float64 `json:"plunge_rate"`   // plunge feed rate mm/min
	SpindleSpeed int     `json:"spindle_speed"` // RPM
	SafeZ        float64 `json:"safe_z"`        // safe retract height mm
	CutDepth     float64 `json:"cut_depth"`     // total material thickness mm
	PassDepth    float64 `json:"pass_depth"`    // depth per pass mm

	// Part holding tabs (keep cut pieces connected until manually snapped free)
	PartTabWidth    float64 `json:"part_tab_width"`
	PartTabHeight   float64 `json:"part_tab_height"`
	PartTabsPerSide int     `json:"part_tabs_per_side"`

	// Dust shoe collision checking against clamp zones
	DustShoeEnabled   bool        `json:"dust_shoe_enabled"`
	DustShoeWidth     float64     `json:"dust_shoe_width"`
	DustShoeClearance float64     `json:"dust_shoe_clearance"`
	ClampZones        []ClampZone `json:"clamp_zones"`

	// GCode post-processor profile
	GCodeProfile string `json:"gcode_profile"`
}

// ClampZone is a rectangular fixture zone on the stock bed that the dust
// shoe must not collide with.
type ClampZone struct {
	Label               string `json:"label"`
	X, Y, Width, Height float64
}

// DustShoeCollision reports a tool position that brings the dust shoe too
// close to a configured clamp zone.
type DustShoeCollision struct {
	SheetIndex  int
	SheetLabel  string
	ClampLabel  string
	PartLabel   string
	PartIndex   int
	ToolX       float64
	ToolY       float64
	Distance    float64
	IsDuringCut bool
}

// GCodeProfile defines a post-processor configuration for a CNC controller
// dialect.
type GCodeProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Units       string `json:"units"`

	StartCode    []string `json:"start_code"`
	SpindleStart string   `json:"spindle_start"`
	SpindleStop  string   `json:"spindle_stop"`
	HomeAll      string   `json:"home_all"`
	HomeXY       string   `json:"home_xy"`

	AbsoluteMode string `json:"absolute_mode"`
	FeedMode     string `json:"feed_mode"`
	RapidMove    string `json:"rapid_move"`
	FeedMove     string `json:"feed_move"`

	EndCode []string `json:"end_code"`

	CommentPrefix string `json:"comment_prefix"`
	CommentSuffix string `json:"comment_suffix"`

	DecimalPlaces int `json:"decimal_places"`
}

// GCodeProfiles lists the built-in controller profiles.
var GCodeProfiles = []GCodeProfile{
	{
		Name:          "Grbl",
		Description:   "Standard Grbl configuration (Arduino CNC shields)",
		Units:         "mm",
		StartCode:     []string{"G90", "G21", "G17"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		HomeAll:       "$H",
		HomeXY:        "$H",
		AbsoluteMode:  "G90",
		FeedMode:      "G94",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M5", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Mach3",
		Description:   "Mach3 CNC control software",
		Units:         "mm",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		HomeAll:       "G28 X0 Y0 Z0",
		HomeXY:        "G28 X0 Y0",
		AbsoluteMode:  "G90",
		FeedMode:      "G94",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G28 X0 Y0", "M5", "M30"},
		CommentPrefix: ";",
		DecimalPlaces: 4,
	},
	{
		Name:          "LinuxCNC",
		Description:   "LinuxCNC (formerly EMC2)",
		Units:         "mm",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		HomeAll:       "G28 X0 Y0 Z0",
		HomeXY:        "G28 X0 Y0",
		AbsoluteMode:  "G90",
		FeedMode:      "G94",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M5", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 4,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		Units:         "mm",
		StartCode:     []string{"G90", "G21"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		HomeAll:       "G28 X0 Y0 Z0",
		HomeXY:        "G28 X0 Y0",
		AbsoluteMode:  "G90",
		FeedMode:      "G94",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M5", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// GetProfile returns a GCode profile by name, or Generic if not found.
func GetProfile(name string) GCodeProfile {
	for _, p := range GCodeProfiles {
		if p.Name == name {
			return p
		}
	}
	return GCodeProfiles[len(GCodeProfiles)-1]
}

// GetProfileNames lists all built-in profile names.
func GetProfileNames() []string {
	names := make([]string, 0, len(GCodeProfiles))
	for _, p := range GCodeProfiles {
		names = append(names, p.Name)
	}
	return names
}

// DefaultSettings returns a reasonable starting CutSettings.
func DefaultSettings() CutSettings {
	return CutSettings{
		Algorithm:       AlgorithmGuillotine,
		KerfWidth:       3,
		AllowRotation:   true,
		ToolDiameter:    6.0,
		FeedRate:        1500.0,
		PlungeRate:      500.0,
		SpindleSpeed:    18000,
		SafeZ:           5.0,
		CutDepth:        18.0,
		PassDepth:       6.0,
		PartTabWidth:    8.0,
		PartTabHeight:   2.0,
		PartTabsPerSide: 0,
		GCodeProfile:    "Generic",
	}
}

// Placement is a single part placed on a stock sheet.
type Placement struct {
	Part    Part `json:"part"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Rotated bool `json:"rotated"`
}

// PlacedWidth returns the effective width considering rotation.
func (p Placement) PlacedWidth() int {
	if p.Rotated {
		return p.Part.Height
	}
	return p.Part.Width
}

// PlacedHeight returns the effective height considering rotation.
func (p Placement) PlacedHeight() int {
	if p.Rotated {
		return p.Part.Width
	}
	return p.Part.Height
}

// SheetResult is one stock sheet with its placed parts. It does not carry
// the sheet's remaining free rectangles.
type SheetResult struct {
	Stock      StockSheet  `json:"stock"`
	Placements []Placement `json:"placements"`
}

// UsedArea returns the total area used by placed parts on this sheet.
func (sr SheetResult) UsedArea() int {
	total := 0
	for _, p := range sr.Placements {
		total += p.PlacedWidth() * p.PlacedHeight()
	}
	return total
}

// TotalArea returns the stock sheet's area.
func (sr SheetResult) TotalArea() int {
	return sr.Stock.Width * sr.Stock.Height
}

// Efficiency returns the usage percentage for this sheet.
func (sr SheetResult) Efficiency() float64 {
	ta := sr.TotalArea()
	if ta == 0 {
		return 0
	}
	return (float64(sr.UsedArea()) / float64(ta)) * 100.0
}

// OptimizeResult holds the full labeled solution, including any parts that
// could not be placed. When the input is invalid or some piece cannot fit
// an empty sheet, every part is listed as unplaced; otherwise a part is
// listed when not all of its quantity was placed.
type OptimizeResult struct {
	Sheets        []SheetResult `json:"sheets"`
	UnplacedParts []Part        `json:"unplaced_parts"`
	WastePercent  float64       `json:"waste_percent"`
}

// TotalEfficiency returns overall material usage percentage.
func (or OptimizeResult) TotalEfficiency() float64 {
	usedArea, totalArea := 0, 0
	for _, s := range or.Sheets {
		usedArea += s.UsedArea()
		totalArea += s.TotalArea()
	}
	if totalArea == 0 {
		return 0
	}
	return (float64(usedArea) / float64(totalArea)) * 100.0
}

// Project ties parts, stock, settings and the last result together for
// save/load.
type Project struct {
	Name     string          `json:"name"`
	Parts    []Part          `json:"parts"`
	Stock    StockSheet      `json:"stock"`
	Settings CutSettings     `json:"settings"`
	Result   *OptimizeResult `json:"result,omitempty"`
}

// NewProject creates an empty, named project with default settings.
func NewProject(name string) Project {
	return Project{
		Name:     name,
		Parts:    []Part{},
		Settings: DefaultSettings(),
	}
}
