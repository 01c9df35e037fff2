package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cutstock/internal/model"
)

func TestCompareScenarios_RunsEachScenario(t *testing.T) {
	parts := []model.Part{model.NewPart("Shelf", 50, 50, 4)}
	stock := model.NewStockSheet("Sheet", 100, 100)

	scenarios := []ComparisonScenario{
		{Name: "Default", Settings: model.DefaultSettings()},
		{Name: "No Rotation", Settings: func() model.CutSettings {
			s := model.DefaultSettings()
			s.AllowRotation = false
			return s
		}()},
	}

	results := CompareScenarios(scenarios, parts, stock)
	require.Len(t, results, 2)
	assert.Equal(t, "Default", results[0].Scenario.Name)
	assert.Equal(t, "No Rotation", results[1].Scenario.Name)
	// The default 3mm kerf leaves only a 47mm strip beside each 50mm part,
	// so every part needs a sheet of its own.
	assert.Equal(t, 4, results[0].SheetsUsed)
	assert.Equal(t, 4, results[0].TotalCuts)
}

func TestBuildDefaultScenarios_IncludesAlternateAlgorithm(t *testing.T) {
	base := model.DefaultSettings()
	base.Algorithm = model.AlgorithmGuillotine

	scenarios := BuildDefaultScenarios(base)

	require.GreaterOrEqual(t, len(scenarios), 2)
	assert.Equal(t, "Current Settings", scenarios[0].Name)

	names := map[string]bool{}
	for _, s := range scenarios {
		names[s.Name] = true
	}
	assert.True(t, names["Branch and Bound"])
}

func TestBuildDefaultScenarios_HalvesKerfWhenLargeEnough(t *testing.T) {
	base := model.DefaultSettings()
	base.KerfWidth = 4

	scenarios := BuildDefaultScenarios(base)

	found := false
	for _, s := range scenarios {
		if s.Settings.KerfWidth == 2 {
			found = true
		}
	}
	assert.True(t, found, "expected a halved-kerf scenario")
}

func TestBuildDefaultScenarios_SkipsKerfScenarioWhenTooSmall(t *testing.T) {
	base := model.DefaultSettings()
	base.KerfWidth = 1

	scenarios := BuildDefaultScenarios(base)

	for _, s := range scenarios {
		assert.NotContains(t, s.Name, "half")
	}
}
