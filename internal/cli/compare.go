package cli

import (
	"fmt"

	"github.com/piwi3910/cutstock/internal/solver"
)

// CmdCompare solves the same demand list under several CutSettings
// variations (alternate algorithm, rotation disabled, kerf halved) and
// prints a side-by-side table so the user can judge the trade-offs.
type CmdCompare struct {
	SharedFlags
}

// Execute runs the compare command.
func (c *CmdCompare) Execute(args []string) error {
	stock, parts, err := c.buildStockAndParts()
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return fmt.Errorf("no --cuts given")
	}

	scenarios := solver.BuildDefaultScenarios(c.settings())
	results := solver.CompareScenarios(scenarios, parts, stock)

	fmt.Printf("%-22s %8s %8s %9s %10s\n", "Scenario", "Sheets", "Cuts", "Waste%", "Unplaced")
	for _, r := range results {
		fmt.Printf("%-22s %8d %8d %8.1f%% %10d\n",
			r.Scenario.Name, r.SheetsUsed, r.TotalCuts, r.WastePercent, r.UnplacedCount)
	}
	return nil
}
