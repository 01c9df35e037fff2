// Package export provides functionality for exporting cut optimization
// results to various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/cutstock/internal/model"
)

// partColor represents an RGB color for a placed part.
type partColor struct {
	R, G, B int
}

// partColors cycles through a small fixed palette for placed parts.
var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document containing the cut optimization
// results. Each sheet result is rendered on its own page with a visual
// layout diagram, followed by a summary page with overall statistics.
func ExportPDF(path string, result model.OptimizeResult, settings model.CutSettings) error {
	if len(result.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, sheet := range result.Sheets {
		pdf.AddPage()
		renderSheetPage(pdf, sheet, settings, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// renderSheetPage draws a single sheet result on the current PDF page.
func renderSheetPage(pdf *fpdf.Fpdf, sheet model.SheetResult, settings model.CutSettings, sheetNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d: %s (%d x %d mm)", sheetNum, sheet.Stock.Label, sheet.Stock.Width, sheet.Stock.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Parts: %d | Used area: %d mm² | Total area: %d mm² | Efficiency: %.1f%%",
		len(sheet.Placements), sheet.UsedArea(), sheet.TotalArea(), sheet.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scaleX := drawWidth / float64(sheet.Stock.Width)
	scaleY := drawHeight / float64(sheet.Stock.Height)
	scale := math.Min(scaleX, scaleY)

	canvasW := float64(sheet.Stock.Width) * scale
	canvasH := float64(sheet.Stock.Height) * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawClampZones(pdf, settings, scale, offsetX, offsetY)

	for i, p := range sheet.Placements {
		col := partColors[i%len(partColors)]
		pw := float64(p.PlacedWidth()) * scale
		ph := float64(p.PlacedHeight()) * scale
		px := offsetX + float64(p.X)*scale
		py := offsetY + float64(p.Y)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Part.Label
			dims := fmt.Sprintf("%dx%d", p.Part.Width, p.Part.Height)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}

			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, sheet.Stock, scale, offsetX, offsetY, canvasW, canvasH)
	drawPartsLegend(pdf, sheet, offsetY+canvasH+5)
}

// drawClampZones renders the dust-shoe exclusion zones configured in the
// cut settings as "no cut" overlays on the sheet drawing.
func drawClampZones(pdf *fpdf.Fpdf, settings model.CutSettings, scale, offsetX, offsetY float64) {
	if !settings.DustShoeEnabled || len(settings.ClampZones) == 0 {
		return
	}

	for _, zone := range settings.ClampZones {
		zx := offsetX + zone.X*scale
		zy := offsetY + zone.Y*scale
		zw := zone.Width * scale
		zh := zone.Height * scale

		pdf.SetFillColor(255, 200, 200)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.Rect(zx, zy, zw, zh, "FD")

		drawHatchPattern(pdf, zx, zy, zw, zh)

		if zw > 20 && zh > 8 {
			pdf.SetFont("Helvetica", "B", 6)
			pdf.SetTextColor(180, 0, 0)
			labelW := pdf.GetStringWidth("NO CUT")
			pdf.SetXY(zx+(zw-labelW)/2, zy+zh/2-2)
			pdf.CellFormat(labelW, 4, "NO CUT", "", 0, "C", false, 0, "")
		}
	}

	pdf.SetTextColor(0, 0, 0)
}

// drawHatchPattern draws diagonal lines inside a rectangle to indicate
// exclusion zones.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds width and height dimension labels outside
// the sheet rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, stock model.StockSheet, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d mm", stock.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d mm", stock.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPartsLegend renders a compact legend of placed parts at the bottom of
// the sheet page.
func drawPartsLegend(pdf *fpdf.Fpdf, sheet model.SheetResult, startY float64) {
	if len(sheet.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Parts placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range sheet.Placements {
		col := partColors[i%len(partColors)]
		label := fmt.Sprintf("%s (%dx%d)", p.Part.Label, p.Part.Width, p.Part.Height)
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.OptimizeResult, settings model.CutSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cut Optimization Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Total Sheets Used", fmt.Sprintf("%d", len(result.Sheets))},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", result.TotalEfficiency())},
		{"Total Parts Placed", fmt.Sprintf("%d", countParts(result))},
		{"Unplaced Parts", fmt.Sprintf("%d", len(result.UnplacedParts))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sheet Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 60, 50, 50, 35, 50}
	headers := []string{"Sheet", "Stock", "Dimensions", "Parts", "Efficiency", "Used / Total Area"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, sheet := range result.Sheets {
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			sheet.Stock.Label,
			fmt.Sprintf("%d x %d mm", sheet.Stock.Width, sheet.Stock.Height),
			fmt.Sprintf("%d", len(sheet.Placements)),
			fmt.Sprintf("%.1f%%", sheet.Efficiency()),
			fmt.Sprintf("%d / %d mm²", sheet.UsedArea(), sheet.TotalArea()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(result.UnplacedParts) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Parts", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, part := range result.UnplacedParts {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %d x %d mm (qty: %d)", part.Label, part.Width, part.Height, part.Quantity)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cut Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Kerf Width", fmt.Sprintf("%d mm", settings.KerfWidth)},
		{"Tool Diameter", fmt.Sprintf("%.1f mm", settings.ToolDiameter)},
		{"Material Thickness", fmt.Sprintf("%.1f mm", settings.CutDepth)},
		{"Pass Depth", fmt.Sprintf("%.1f mm", settings.PassDepth)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by cutstock - guillotine cut list optimizer", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle
// dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// countParts returns the total number of placed parts across all sheets.
func countParts(result model.OptimizeResult) int {
	total := 0
	for _, s := range result.Sheets {
		total += len(s.Placements)
	}
	return total
}
