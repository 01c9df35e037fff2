package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/cutstock/internal/importer"
	"github.com/piwi3910/cutstock/internal/model"
	"github.com/piwi3910/cutstock/internal/solver"
)

// CmdImport loads a demand list from CSV/XLSX via internal/importer, then
// solves it the same way CmdSolve does.
type CmdImport struct {
	Stock     string `long:"stock" description:"Stock sheet size WxH in mm" required:"yes"`
	Kerf      int    `long:"kerf" description:"Kerf (blade/bit width) in mm" default:"0"`
	NoRotate  bool   `long:"no-rotate" description:"Disallow 90-degree rotation"`
	Algorithm string `long:"algorithm" description:"Solving algorithm" default:"guillotine" choice:"guillotine" choice:"branch-and-bound" choice:"genetic"`

	Args struct {
		File string `positional-arg-name:"file" description:"CSV or XLSX file to import" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the import command.
func (c *CmdImport) Execute(args []string) error {
	var result importer.ImportResult
	switch ext := strings.ToLower(filepath.Ext(c.Args.File)); ext {
	case ".csv":
		result = importer.ImportCSV(c.Args.File)
	case ".xlsx", ".xls":
		result = importer.ImportExcel(c.Args.File)
	default:
		return fmt.Errorf("unsupported file extension %q (expected .csv or .xlsx)", ext)
	}

	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			fmt.Printf("error: %s\n", e)
		}
		return fmt.Errorf("import failed with %d error(s)", len(result.Errors))
	}
	if len(result.Parts) == 0 {
		return fmt.Errorf("no parts found in %q", c.Args.File)
	}

	shared := SharedFlags{Stock: c.Stock, Kerf: c.Kerf, NoRotate: c.NoRotate, Algorithm: c.Algorithm}
	stock, _, err := shared.buildStockAndParts()
	if err != nil {
		return err
	}

	settings := shared.settings()
	optimized := solver.Optimize(result.Parts, stock, settings)

	fmt.Printf("Imported %d part(s) from %s\n", countParts(result.Parts), c.Args.File)
	printResult(optimized)

	if len(optimized.UnplacedParts) > 0 {
		return fmt.Errorf("%d part(s) could not be placed", totalQuantity(optimized.UnplacedParts))
	}

	return nil
}

func countParts(parts []model.Part) int {
	return totalQuantity(parts)
}
