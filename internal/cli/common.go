package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/cutstock/internal/model"
)

// SharedFlags are the optimizer/output flags common to every command that
// runs a solve.
type SharedFlags struct {
	Stock     string   `long:"stock" description:"Stock sheet size WxH in mm" required:"yes"`
	Cuts      []string `long:"cuts" description:"Demanded piece WxH:qty in mm (repeatable)"`
	Kerf      int      `long:"kerf" description:"Kerf (blade/bit width) in mm" default:"0"`
	NoRotate  bool     `long:"no-rotate" description:"Disallow 90-degree rotation"`
	Algorithm string   `long:"algorithm" description:"Solving algorithm" default:"guillotine" choice:"guillotine" choice:"branch-and-bound" choice:"genetic"`
}

// parseWxH parses a "WxH" string into two integers; callers check that
// they are positive.
func parseWxH(s string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected WxH, got %q", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	return w, h, nil
}

// parseCut parses a "WxH:qty" string into a labeled model.Part.
func parseCut(label, s string) (model.Part, error) {
	spec, qtyStr, ok := strings.Cut(s, ":")
	if !ok {
		return model.Part{}, fmt.Errorf("expected WxH:qty, got %q", s)
	}
	w, h, err := parseWxH(spec)
	if err != nil {
		return model.Part{}, err
	}
	qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
	if err != nil {
		return model.Part{}, fmt.Errorf("invalid quantity in %q: %w", s, err)
	}
	if w <= 0 || h <= 0 || qty <= 0 {
		return model.Part{}, fmt.Errorf("width, height and quantity must be positive in %q", s)
	}
	return model.NewPart(label, w, h, qty), nil
}

// buildStockAndParts turns the shared flags into a StockSheet and Part list.
func (f *SharedFlags) buildStockAndParts() (model.StockSheet, []model.Part, error) {
	w, h, err := parseWxH(f.Stock)
	if err != nil {
		return model.StockSheet{}, nil, fmt.Errorf("invalid --stock: %w", err)
	}
	if w <= 0 || h <= 0 {
		return model.StockSheet{}, nil, fmt.Errorf("invalid --stock: dimensions must be positive")
	}
	stock := model.NewStockSheet("Sheet", w, h)

	parts := make([]model.Part, 0, len(f.Cuts))
	for i, c := range f.Cuts {
		part, err := parseCut(fmt.Sprintf("Part %d", i+1), c)
		if err != nil {
			return model.StockSheet{}, nil, fmt.Errorf("invalid --cuts: %w", err)
		}
		parts = append(parts, part)
	}

	return stock, parts, nil
}

// settings builds a model.CutSettings from the shared flags, defaulting the
// CNC/G-code fields that don't have CLI flags.
func (f *SharedFlags) settings() model.CutSettings {
	s := model.DefaultSettings()
	s.KerfWidth = f.Kerf
	s.AllowRotation = !f.NoRotate
	s.Algorithm = model.Algorithm(f.Algorithm)
	return s
}

// printResult renders one line per placement followed by the spec's
// trailing summary line.
func printResult(result model.OptimizeResult) {
	for _, sheet := range result.Sheets {
		for _, p := range sheet.Placements {
			rotated := ""
			if p.Rotated {
				rotated = " [rotated]"
			}
			fmt.Printf("  %dx%d @ (%d, %d)%s\n", p.Part.Width, p.Part.Height, p.X, p.Y, rotated)
		}
	}
	fmt.Printf("Summary: %d sheets used, %.1f%% waste\n", len(result.Sheets), result.WastePercent)
}
