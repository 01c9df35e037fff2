package gcode

import (
	"fmt"
	"math"

	"github.com/piwi3910/cutstock/internal/model"
)

// CheckDustShoeCollisions analyzes the optimization result and detects potential
// collisions between the dust shoe and clamp/fixture zones. The dust shoe is
// modeled as a circle centered on the tool with diameter DustShoeWidth. A collision
// occurs when the dust shoe circle (plus clearance) overlaps any clamp zone while
// the tool is at safe Z height during rapid moves or at cutting depth during cuts.
//
// Collision checking examines:
// 1. Cutting positions around each part perimeter (tool center + tool radius offset)
// 2. Rapid move positions (approach to each part from safe Z)
//
// A collision is reported when the distance from the tool center to the nearest
// clamp zone edge is less than dustShoeRadius + clearance.
func CheckDustShoeCollisions(result model.OptimizeResult, settings model.CutSettings) []model.DustShoeCollision {
	if !settings.DustShoeEnabled || len(settings.ClampZones) == 0 {
		return nil
	}

	dustShoeRadius := settings.DustShoeWidth / 2.0
	clearance := settings.DustShoeClearance
	effectiveRadius := dustShoeRadius + clearance
	toolRadius := settings.ToolDiameter / 2.0

	var collisions []model.DustShoeCollision

	for sheetIdx, sheet := range result.Sheets {
		for partIdx, placement := range sheet.Placements {
			positions := partCutPositions(placement, toolRadius)

			for _, pos := range positions {
				for _, cz := range settings.ClampZones {
					dist := distanceToClampZone(pos.x, pos.y, cz)
					if dist < effectiveRadius {
						collisions = append(collisions, model.DustShoeCollision{
							SheetIndex:  sheetIdx,
							SheetLabel:  sheet.Stock.Label,
							ClampLabel:  cz.Label,
							PartLabel:   placement.Part.Label,
							PartIndex:   partIdx,
							ToolX:       pos.x,
							ToolY:       pos.y,
							Distance:    dist - dustShoeRadius,
							IsDuringCut: pos.isCut,
						})
						// Stop at the first colliding clamp for this tool position;
						// deduplicateCollisions keeps one entry per clamp per part.
						break
					}
				}
			}
		}
	}

	return deduplicateCollisions(collisions)
}

// toolPosition represents a position the tool center visits during machining.
type toolPosition struct {
	x, y  float64
	isCut bool // true = during cutting, false = during rapid move
}

// partCutPositions returns the key positions the tool center will visit
// when cutting around a rectangular part's perimeter. The tool cuts outside
// the part boundary, offset by the tool radius.
func partCutPositions(p model.Placement, toolRadius float64) []toolPosition {
	pw := float64(p.PlacedWidth())
	ph := float64(p.PlacedHeight())
	px := float64(p.X)
	py := float64(p.Y)

	x0 := px - toolRadius
	y0 := py - toolRadius
	x1 := px + pw + toolRadius
	y1 := py + ph + toolRadius

	return []toolPosition{
		// Corners (most likely to collide with clamps at sheet edges)
		{x0, y0, true},
		{x1, y0, true},
		{x1, y1, true},
		{x0, y1, true},
		// Side midpoints
		{(x0 + x1) / 2, y0, true},
		{x1, (y0 + y1) / 2, true},
		{(x0 + x1) / 2, y1, true},
		{x0, (y0 + y1) / 2, true},
		// Part center (rapid approach position)
		{px + pw/2, py + ph/2, false},
	}
}

// distanceToClampZone computes the minimum distance from a point (px, py)
// to the boundary of a clamp zone rectangle. Returns 0 if the point is
// inside the zone, positive if outside.
func distanceToClampZone(px, py float64, cz model.ClampZone) float64 {
	nearestX := math.Max(cz.X, math.Min(px, cz.X+cz.Width))
	nearestY := math.Max(cz.Y, math.Min(py, cz.Y+cz.Height))

	dx := px - nearestX
	dy := py - nearestY

	return math.Sqrt(dx*dx + dy*dy)
}

// deduplicateCollisions keeps at most one collision per (sheet, part, clamp) triple.
func deduplicateCollisions(collisions []model.DustShoeCollision) []model.DustShoeCollision {
	type key struct {
		sheet int
		part  int
		clamp string
	}
	seen := make(map[key]bool)
	var result []model.DustShoeCollision

	for _, c := range collisions {
		k := key{c.SheetIndex, c.PartIndex, c.ClampLabel}
		if !seen[k] {
			seen[k] = true
			result = append(result, c)
		}
	}
	return result
}

// FormatCollisionWarnings produces human-readable warning messages from collision data.
func FormatCollisionWarnings(collisions []model.DustShoeCollision) []string {
	var warnings []string
	for _, c := range collisions {
		moveType := "cutting"
		if !c.IsDuringCut {
			moveType = "rapid"
		}
		msg := fmt.Sprintf(
			"Sheet %d (%s): Dust shoe may collide with clamp %q while %s part %q at (%.0f, %.0f), clearance: %.1f mm",
			c.SheetIndex+1, c.SheetLabel, c.ClampLabel, moveType,
			c.PartLabel, c.ToolX, c.ToolY, c.Distance,
		)
		warnings = append(warnings, msg)
	}
	return warnings
}
