package solver

import (
	"fmt"

	"github.com/piwi3910/cutstock/internal/model"
)

// ComparisonScenario names a CutSettings variation to run side by side with
// others over the same demand list.
type ComparisonScenario struct {
	Name     string
	Settings model.CutSettings
}

// ComparisonResult holds one scenario's optimize result plus the derived
// summary statistics used to rank it against its siblings.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.OptimizeResult
	SheetsUsed    int
	TotalCuts     int
	WastePercent  float64
	UnplacedCount int
}

// CompareScenarios runs Optimize for each scenario against the same parts
// and stock sheet, returning results in scenario order so callers can print
// or render a side-by-side table.
func CompareScenarios(scenarios []ComparisonScenario, parts []model.Part, stock model.StockSheet) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result := Optimize(parts, stock, scenario.Settings)

		totalCuts := 0
		for _, sheet := range result.Sheets {
			totalCuts += len(sheet.Placements)
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			SheetsUsed:    len(result.Sheets),
			TotalCuts:     totalCuts,
			WastePercent:  result.WastePercent,
			UnplacedCount: len(result.UnplacedParts),
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of what-if scenarios around a base
// CutSettings: the alternate algorithm, rotation disabled (only when the base
// allows rotation), and a halved kerf (only when the base kerf exceeds 1).
func BuildDefaultScenarios(baseSettings model.CutSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Settings: baseSettings},
	}

	altAlgo := baseSettings
	switch baseSettings.Algorithm {
	case model.AlgorithmGuillotine:
		altAlgo.Algorithm = model.AlgorithmBranchAndBound
		scenarios = append(scenarios, ComparisonScenario{Name: "Branch and Bound", Settings: altAlgo})
	case model.AlgorithmBranchAndBound:
		altAlgo.Algorithm = model.AlgorithmGenetic
		scenarios = append(scenarios, ComparisonScenario{Name: "Genetic Algorithm", Settings: altAlgo})
	default:
		altAlgo.Algorithm = model.AlgorithmGuillotine
		scenarios = append(scenarios, ComparisonScenario{Name: "Guillotine (Greedy)", Settings: altAlgo})
	}

	if baseSettings.AllowRotation {
		noRotate := baseSettings
		noRotate.AllowRotation = false
		scenarios = append(scenarios, ComparisonScenario{Name: "Rotation Disabled", Settings: noRotate})
	}

	if baseSettings.KerfWidth > 1 {
		tightKerf := baseSettings
		tightKerf.KerfWidth = baseSettings.KerfWidth / 2
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %dmm (half)", tightKerf.KerfWidth),
			Settings: tightKerf,
		})
	}

	return scenarios
}
