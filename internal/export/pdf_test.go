package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cutstock/internal/model"
)

func buildTestResult() model.OptimizeResult {
	return model.OptimizeResult{
		Sheets: []model.SheetResult{
			{
				Stock: model.StockSheet{ID: "s1", Label: "Plywood 2440x1220", Width: 2440, Height: 1220},
				Placements: []model.Placement{
					{Part: model.Part{ID: "p1", Label: "Side Panel", Width: 600, Height: 400}, X: 10, Y: 10, Rotated: false},
					{Part: model.Part{ID: "p2", Label: "Top", Width: 500, Height: 300}, X: 620, Y: 10, Rotated: false},
					{Part: model.Part{ID: "p3", Label: "Shelf", Width: 400, Height: 300}, X: 10, Y: 420, Rotated: true},
				},
			},
			{
				Stock: model.StockSheet{ID: "s2", Label: "MDF 1200x600", Width: 1200, Height: 600},
				Placements: []model.Placement{
					{Part: model.Part{ID: "p4", Label: "Back Panel", Width: 800, Height: 500}, X: 10, Y: 10, Rotated: false},
				},
			},
		},
		UnplacedParts: nil,
	}
}

func buildTestSettings() model.CutSettings {
	s := model.DefaultSettings()
	s.DustShoeEnabled = true
	s.ClampZones = []model.ClampZone{
		{X: 0, Y: 0, Width: 2440, Height: 30},
		{X: 0, Y: 1190, Width: 2440, Height: 30},
	}
	return s
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test_output.pdf")

	err := ExportPDF(path, buildTestResult(), buildTestSettings())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500))
}

func TestExportPDF_EmptyResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := ExportPDF(path, model.OptimizeResult{Sheets: nil}, model.DefaultSettings())
	assert.Error(t, err)
}

func TestExportPDF_WithUnplacedParts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unplaced.pdf")

	result := buildTestResult()
	result.UnplacedParts = []model.Part{
		{ID: "u1", Label: "Too Big", Width: 3000, Height: 2000, Quantity: 1},
		{ID: "u2", Label: "Another", Width: 1500, Height: 1500, Quantity: 2},
	}

	err := ExportPDF(path, result, buildTestSettings())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportPDF_WithClampZones(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clamp_zones.pdf")

	err := ExportPDF(path, buildTestResult(), buildTestSettings())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportPDF_NoClampZones(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "no_clamp.pdf")

	settings := model.DefaultSettings()
	settings.DustShoeEnabled = false

	err := ExportPDF(path, buildTestResult(), settings)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportPDF_SingleSheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "single.pdf")

	result := model.OptimizeResult{
		Sheets: []model.SheetResult{
			{
				Stock: model.StockSheet{ID: "s1", Label: "Board", Width: 1000, Height: 500},
				Placements: []model.Placement{
					{Part: model.Part{ID: "p1", Label: "A", Width: 200, Height: 200}, X: 0, Y: 0, Rotated: false},
				},
			},
		},
	}

	err := ExportPDF(path, result, model.DefaultSettings())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportPDF_ManyParts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many_parts.pdf")

	placements := make([]model.Placement, 20)
	for i := range placements {
		placements[i] = model.Placement{
			Part:    model.Part{ID: fmt.Sprintf("p%d", i), Label: fmt.Sprintf("Part %d", i+1), Width: 100, Height: 80},
			X:       (i % 5) * 110,
			Y:       (i / 5) * 90,
			Rotated: i%3 == 0,
		}
	}

	result := model.OptimizeResult{
		Sheets: []model.SheetResult{
			{Stock: model.StockSheet{ID: "s1", Label: "Large Board", Width: 600, Height: 400}, Placements: placements},
		},
	}

	err := ExportPDF(path, result, model.DefaultSettings())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestCountParts(t *testing.T) {
	assert.Equal(t, 4, countParts(buildTestResult()))
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{50, 50, 8},
		{30, 25, 7},
		{10, 15, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, labelFontSize(tt.w, tt.h))
	}
}
