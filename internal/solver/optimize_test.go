package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cutstock/internal/model"
)

func TestOptimize_SinglePiece(t *testing.T) {
	parts := []model.Part{model.NewPart("Shelf", 50, 50, 1)}
	stock := model.NewStockSheet("Sheet", 100, 100)
	settings := model.DefaultSettings()

	result := Optimize(parts, stock, settings)

	require.Len(t, result.Sheets, 1)
	require.Len(t, result.Sheets[0].Placements, 1)
	assert.Equal(t, "Shelf", result.Sheets[0].Placements[0].Part.Label)
	assert.Empty(t, result.UnplacedParts)
}

func TestOptimize_PropagatesLabelsAcrossMultipleParts(t *testing.T) {
	parts := []model.Part{
		model.NewPart("Big", 80, 80, 1),
		model.NewPart("Small", 20, 20, 4),
	}
	stock := model.NewStockSheet("Sheet", 100, 100)
	settings := model.DefaultSettings()
	settings.KerfWidth = 0

	result := Optimize(parts, stock, settings)

	labels := map[string]int{}
	for _, sheet := range result.Sheets {
		for _, p := range sheet.Placements {
			labels[p.Part.Label]++
		}
	}
	assert.Equal(t, 1, labels["Big"])
	assert.Equal(t, 4, labels["Small"])
}

func TestOptimize_Infeasible(t *testing.T) {
	parts := []model.Part{model.NewPart("TooBig", 200, 200, 1)}
	stock := model.NewStockSheet("Sheet", 100, 100)
	settings := model.DefaultSettings()

	result := Optimize(parts, stock, settings)

	assert.Empty(t, result.Sheets)
	require.Len(t, result.UnplacedParts, 1)
	assert.Equal(t, "TooBig", result.UnplacedParts[0].Label)
}

func TestOptimize_BranchAndBoundMatchesOrBeatsGreedy(t *testing.T) {
	parts := []model.Part{model.NewPart("Tile", 60, 60, 4)}
	stock := model.NewStockSheet("Sheet", 100, 100)

	greedySettings := model.DefaultSettings()
	greedySettings.Algorithm = model.AlgorithmGuillotine
	greedySettings.KerfWidth = 0
	greedyResult := Optimize(parts, stock, greedySettings)

	exactSettings := greedySettings
	exactSettings.Algorithm = model.AlgorithmBranchAndBound
	exactResult := Optimize(parts, stock, exactSettings)

	assert.LessOrEqual(t, len(exactResult.Sheets), len(greedyResult.Sheets))
}

func TestOptimize_EmptyPartsList(t *testing.T) {
	stock := model.NewStockSheet("Sheet", 100, 100)
	result := Optimize(nil, stock, model.DefaultSettings())
	assert.Empty(t, result.Sheets)
	assert.Empty(t, result.UnplacedParts)
}

func TestOptimize_RotationReportedOnPlacement(t *testing.T) {
	parts := []model.Part{model.NewPart("Plank", 50, 100, 1)}
	stock := model.NewStockSheet("Sheet", 100, 50)
	settings := model.DefaultSettings()
	settings.KerfWidth = 0

	result := Optimize(parts, stock, settings)

	require.Len(t, result.Sheets, 1)
	require.Len(t, result.Sheets[0].Placements, 1)
	assert.True(t, result.Sheets[0].Placements[0].Rotated)
}
