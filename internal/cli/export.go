package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/cutstock/internal/export"
	"github.com/piwi3910/cutstock/internal/gcode"
	"github.com/piwi3910/cutstock/internal/solver"
)

// CmdExport groups the pdf, labels, and gcode render commands under one
// "export <kind>" subcommand, all of which solve the given demand list
// before rendering.
type CmdExport struct {
	PDF    CmdExportPDF    `command:"pdf" description:"Export a to-scale cut diagram PDF"`
	Labels CmdExportLabels `command:"labels" description:"Export QR-coded part labels"`
	GCode  CmdExportGCode  `command:"gcode" description:"Export CNC GCode and check dust-shoe clearance"`
}

// CmdExportPDF solves a demand list and renders the cut-diagram PDF.
type CmdExportPDF struct {
	SharedFlags
	Out string `long:"out" description:"Output PDF path" default:"layout.pdf"`
}

// Execute runs the export pdf command.
func (c *CmdExportPDF) Execute(args []string) error {
	stock, parts, err := c.buildStockAndParts()
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return fmt.Errorf("no --cuts given")
	}

	settings := c.settings()
	result := solver.Optimize(parts, stock, settings)

	if err := export.ExportPDF(c.Out, result, settings); err != nil {
		return fmt.Errorf("failed to export PDF: %w", err)
	}

	printResult(result)
	fmt.Printf("Wrote %s\n", c.Out)
	return nil
}

// CmdExportGCode solves a demand list, generates one GCode program per
// sheet, checks the layout for dust-shoe/clamp collisions, and prints
// per-sheet toolpath statistics.
type CmdExportGCode struct {
	SharedFlags
	Out string `long:"out" description:"Output GCode path prefix" default:"sheet"`
}

// Execute runs the export gcode command.
func (c *CmdExportGCode) Execute(args []string) error {
	stock, parts, err := c.buildStockAndParts()
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return fmt.Errorf("no --cuts given")
	}

	settings := c.settings()
	result := solver.Optimize(parts, stock, settings)

	gen := gcode.New(settings)
	for i, code := range gen.GenerateAll(result) {
		path := fmt.Sprintf("%s-%d.nc", c.Out, i+1)
		if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		summary := gcode.Summarize(gcode.ParseGCode(code))
		fmt.Printf("Wrote %s (%d feed moves, %.0fmm feed travel, %.0fmm rapid travel, est. %s)\n",
			path, summary.FeedMoves, summary.FeedDistance, summary.RapidDistance,
			summary.EstimatedTime.Round(time.Second))
	}

	if collisions := gcode.CheckDustShoeCollisions(result, settings); len(collisions) > 0 {
		for _, w := range gcode.FormatCollisionWarnings(collisions) {
			fmt.Fprintln(os.Stderr, "Warning:", w)
		}
	}

	printResult(result)
	return nil
}

// CmdExportLabels solves a demand list and renders QR-coded part labels.
type CmdExportLabels struct {
	SharedFlags
	Out string `long:"out" description:"Output PDF path" default:"labels.pdf"`
}

// Execute runs the export labels command.
func (c *CmdExportLabels) Execute(args []string) error {
	stock, parts, err := c.buildStockAndParts()
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return fmt.Errorf("no --cuts given")
	}

	result := solver.Optimize(parts, stock, c.settings())

	if err := export.ExportLabels(c.Out, result); err != nil {
		return fmt.Errorf("failed to export labels: %w", err)
	}

	printResult(result)
	fmt.Printf("Wrote %s\n", c.Out)
	return nil
}
