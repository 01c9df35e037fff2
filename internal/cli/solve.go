package cli

import (
	"fmt"

	"github.com/piwi3910/cutstock/internal/model"
	"github.com/piwi3910/cutstock/internal/solver"
)

// CmdSolve is the literal spec.md §6 CLI behavior: pack a demand list onto
// copies of a single stock sheet and print the layout.
type CmdSolve struct {
	SharedFlags
}

// Execute runs the solve command.
func (c *CmdSolve) Execute(args []string) error {
	stock, parts, err := c.buildStockAndParts()
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return fmt.Errorf("no --cuts given")
	}

	result := solver.Optimize(parts, stock, c.settings())

	printResult(result)

	if len(result.UnplacedParts) > 0 {
		return fmt.Errorf("%d part(s) could not be placed", totalQuantity(result.UnplacedParts))
	}

	return nil
}

// totalQuantity sums the Quantity field across a part list, used to report
// how many individual pieces went unplaced.
func totalQuantity(parts []model.Part) int {
	total := 0
	for _, p := range parts {
		total += p.Quantity
	}
	return total
}
