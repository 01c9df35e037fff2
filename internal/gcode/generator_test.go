package gcode

import (
	"strings"
	"testing"

	"github.com/piwi3910/cutstock/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSettings() model.CutSettings {
	s := model.DefaultSettings()
	s.ToolDiameter = 6.0
	s.FeedRate = 1000.0
	s.PlungeRate = 300.0
	s.SpindleSpeed = 12000
	s.SafeZ = 5.0
	s.CutDepth = 6.0
	s.PassDepth = 6.0
	s.GCodeProfile = "Generic"
	s.PartTabsPerSide = 0
	return s
}

func newTestPlacement() model.Placement {
	return model.Placement{
		Part: model.Part{
			ID:       "test1",
			Label:    "TestPart",
			Width:    100,
			Height:   50,
			Quantity: 1,
		},
		X:       10,
		Y:       10,
		Rotated: false,
	}
}

func newTestSheet() model.SheetResult {
	return model.SheetResult{
		Stock: model.StockSheet{
			ID:     "stock1",
			Label:  "TestStock",
			Width:  500,
			Height: 300,
		},
		Placements: []model.Placement{newTestPlacement()},
	}
}

func TestGenerateSheet_HeaderContainsStockInfo(t *testing.T) {
	settings := newTestSettings()
	gen := New(settings)
	code := gen.GenerateSheet(newTestSheet(), 1)

	assert.Contains(t, code, "Sheet 1")
	assert.Contains(t, code, "TestStock")
	assert.Contains(t, code, "500 x 300")
}

func TestGenerateSheet_ContainsStartAndEndCode(t *testing.T) {
	settings := newTestSettings()
	gen := New(settings)
	code := gen.GenerateSheet(newTestSheet(), 1)

	assert.True(t, strings.HasPrefix(strings.TrimSpace(code), ";"))
	assert.Contains(t, code, "M3 S12000")
	assert.Contains(t, code, "M5")
	assert.Contains(t, code, "Job complete")
}

func TestGenerateSheet_SinglePassPerimeter(t *testing.T) {
	settings := newTestSettings()
	gen := New(settings)
	code := gen.GenerateSheet(newTestSheet(), 1)

	// One pass only: CutDepth == PassDepth
	assert.Equal(t, 1, strings.Count(code, "Pass 1/1"))

	toolR := settings.ToolDiameter / 2.0
	p := newTestPlacement()
	x0 := gen.format(float64(p.X) - toolR)
	y0 := gen.format(float64(p.Y) - toolR)
	assert.Contains(t, code, "X"+x0+" Y"+y0)
}

func TestGenerateSheet_MultiplePasses(t *testing.T) {
	settings := newTestSettings()
	settings.CutDepth = 12.0
	settings.PassDepth = 6.0
	gen := New(settings)
	code := gen.GenerateSheet(newTestSheet(), 1)

	assert.Contains(t, code, "Pass 1/2")
	assert.Contains(t, code, "Pass 2/2")
}

func TestGenerateSheet_RotatedPartNotedInComment(t *testing.T) {
	settings := newTestSettings()
	sheet := newTestSheet()
	sheet.Placements[0].Rotated = true
	gen := New(settings)
	code := gen.GenerateSheet(sheet, 1)

	assert.Contains(t, code, "[rotated]")
}

func TestGenerateSheet_WithTabsAddsZMoves(t *testing.T) {
	settings := newTestSettings()
	gen := New(settings)
	baseline := strings.Count(gen.GenerateSheet(newTestSheet(), 1), "Z")

	settings.PartTabsPerSide = 2
	settings.PartTabWidth = 8.0
	settings.PartTabHeight = 2.0
	gen = New(settings)
	withTabs := strings.Count(gen.GenerateSheet(newTestSheet(), 1), "Z")

	// Tabs add extra Z moves (retract to tab depth, redescend) on the final pass.
	assert.Greater(t, withTabs, baseline)
}

func TestGenerateAll_OnePerSheet(t *testing.T) {
	settings := newTestSettings()
	gen := New(settings)
	result := model.OptimizeResult{
		Sheets: []model.SheetResult{newTestSheet(), newTestSheet()},
	}

	codes := gen.GenerateAll(result)
	require.Len(t, codes, 2)
	assert.Contains(t, codes[0], "Sheet 1")
	assert.Contains(t, codes[1], "Sheet 2")
}

func TestCalculateTabs_DisabledWhenZero(t *testing.T) {
	settings := newTestSettings()
	settings.PartTabsPerSide = 0
	gen := New(settings)
	tabs := gen.calculateTabs(newTestPlacement())
	assert.Empty(t, tabs)
}

func TestCalculateTabs_FourSides(t *testing.T) {
	settings := newTestSettings()
	settings.PartTabsPerSide = 1
	gen := New(settings)
	tabs := gen.calculateTabs(newTestPlacement())
	require.Len(t, tabs, 4)

	sides := map[int]bool{}
	for _, tab := range tabs {
		sides[tab.side] = true
	}
	assert.Len(t, sides, 4)
}

func TestNew_FallsBackToGenericProfile(t *testing.T) {
	settings := newTestSettings()
	settings.GCodeProfile = "NotARealProfile"
	gen := New(settings)
	assert.Equal(t, "Generic", gen.profile.Name)
}

func TestNew_UsesNamedProfile(t *testing.T) {
	settings := newTestSettings()
	settings.GCodeProfile = "Grbl"
	gen := New(settings)
	assert.Equal(t, "Grbl", gen.profile.Name)
}

func TestFormat_RespectsDecimalPlaces(t *testing.T) {
	settings := newTestSettings()
	settings.GCodeProfile = "Grbl" // 3 decimal places
	gen := New(settings)
	assert.Equal(t, "10.000", gen.format(10))

	settings.GCodeProfile = "Mach3" // 4 decimal places
	gen = New(settings)
	assert.Equal(t, "10.0000", gen.format(10))
}
