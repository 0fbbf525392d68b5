// Package export writes nesting plans to PDF, label sheets, Excel and DXF.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/calepinage/internal/model"
)

// ErrEmptyPlan is returned when a plan has no panels to export.
var ErrEmptyPlan = errors.New("no panels to export")

// pieceColor represents an RGB color for a placed piece.
type pieceColor struct {
	R, G, B int
}

// pieceColors mirrors the color scheme used in the layout viewer.
var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// colorFor picks a stable color per cut-list row, so identical pieces share it.
func colorFor(plan model.Plan, label string) pieceColor {
	for i, t := range plan.Types {
		if t.Label == label {
			return pieceColors[i%len(pieceColors)]
		}
	}
	return pieceColors[0]
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
	legendHeight = 30.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	rowHeight    = 6.0
)

// ExportPDF renders one page per panel followed by a summary page with the
// detailed cut list.
func ExportPDF(path string, plan model.Plan) error {
	if len(plan.Panels) == 0 {
		return ErrEmptyPlan
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle("Calepinage", true)

	for i, panel := range plan.Panels {
		pdf.AddPage()
		renderPanelPage(pdf, plan, panel, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plan)

	return pdf.OutputFileAndClose(path)
}

// renderPanelPage draws a single panel on the current PDF page.
func renderPanelPage(pdf *fpdf.Fpdf, plan model.Plan, panel model.Panel, panelNum int) {
	stock := plan.Stock

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Panel %d / %d: %s mm", panelNum, len(plan.Panels), stock.Label)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Pieces: %d | Shelves: %d | Used: %.2f m² | Efficiency: %.1f%%",
		len(panel.Pieces), len(panel.Shelves), squareMetres(panel.UsedArea()), panel.Efficiency(stock))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, toLatin(pdf, stats), "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/stock.Width, drawHeight/stock.Length)

	canvasW := stock.Width * scale
	canvasH := stock.Length * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Stock panel background (wood color)
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Shelf boundaries
	pdf.SetDrawColor(150, 120, 90)
	pdf.SetLineWidth(0.15)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	for _, s := range panel.Shelves {
		y := offsetY + (s.Y+s.Height)*scale
		pdf.Line(offsetX, y, offsetX+canvasW, y)
	}
	pdf.SetDashPattern([]float64{}, 0)

	for _, p := range panel.Pieces {
		col := colorFor(plan, p.Label)
		pw := p.Width * scale
		ph := p.Length * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 6 && ph > 5 {
			pdf.SetFont("Helvetica", "B", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			tag := fmt.Sprintf("#%d", p.ID)
			tagW := pdf.GetStringWidth(tag)
			if tagW < pw-1 {
				pdf.SetXY(px+(pw-tagW)/2, py+ph/2-2)
				pdf.CellFormat(tagW, 4, tag, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, stock, offsetX, offsetY, canvasW, canvasH)
	drawLegend(pdf, plan, panel, offsetY+canvasH+6)
}

// drawDimensionAnnotations adds width and length labels outside the panel rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, stock model.Stock, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", stock.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	lengthLabel := fmt.Sprintf("%.0f mm", stock.Length)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	lLabelW := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX-3-lLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(lLabelW, 4, lengthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend lists the pieces of the panel with their finished size.
func drawLegend(pdf *fpdf.Fpdf, plan model.Plan, panel model.Panel, startY float64) {
	if len(panel.Pieces) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Pieces:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, p := range panel.Pieces {
		length, width := p.Length, p.Width
		if f, ok := plan.FinishedPiece(p.ID); ok {
			length, width = f.Length, f.Width
		}
		label := fmt.Sprintf("#%d %s (%.0fx%.0f)", p.ID, p.Label, length, width)
		if p.Rotated {
			label += " R"
		}
		label = toLatin(pdf, label)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		if startY > pageHeight-marginBottom {
			return
		}

		col := colorFor(plan, p.Label)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the overall statistics, the per-panel breakdown and
// the detailed cut list. Long tables continue on extra pages.
func renderSummaryPage(pdf *fpdf.Fpdf, plan model.Plan) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cutting Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	s := plan.Summary

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Stock panel", fmt.Sprintf("%s mm", plan.Stock.Label)},
		{"Kerf", fmt.Sprintf("%.1f mm (added to length and width)", plan.Kerf)},
		{"Piece types", fmt.Sprintf("%d", len(plan.Types))},
		{"Pieces", fmt.Sprintf("%d", s.PieceCount)},
		{"Panels needed", fmt.Sprintf("%d", s.PanelCount)},
		{"Finished area", fmt.Sprintf("%.2f m²", squareMetres(s.FinishedArea))},
		{"Used area (with kerf)", fmt.Sprintf("%.2f m²", squareMetres(s.UsedArea))},
		{"Total panel area", fmt.Sprintf("%.2f m²", squareMetres(s.PanelArea))},
		{"Efficiency", fmt.Sprintf("%.2f%%", s.Efficiency)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, toLatin(pdf, item.value), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	y = drawTable(pdf, y, "Panel Breakdown",
		[]float64{20, 25, 25, 197},
		[]string{"Panel", "Pieces", "Efficiency", "Content"},
		panelRows(plan))

	y += 8
	drawTable(pdf, y, "Cut List (finished dimensions, without kerf)",
		[]float64{20, 90, 50, 25, 40},
		[]string{"Piece", "Label", "Dimensions", "Panel", "Position"},
		cutListRows(plan))

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by calepinage", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawTable renders a titled table starting at y and returns the y below it.
func drawTable(pdf *fpdf.Fpdf, y float64, title string, colWidths []float64, headers []string, rows [][]string) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(150, 7, title, "", 0, "L", false, 0, "")
	y += 9

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		x := marginLeft
		for i, h := range headers {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[i], rowHeight, h, "1", 0, "C", true, 0, "")
			x += colWidths[i]
		}
		y += rowHeight
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	for i, row := range rows {
		if y+rowHeight > pageHeight-marginBottom-5 {
			pdf.AddPage()
			y = marginTop
			header()
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		x := marginLeft
		for j, cell := range row {
			align := "C"
			if j == len(row)-1 && len(cell) > 20 {
				align = "L"
			}
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], rowHeight, fit(pdf, cell, colWidths[j]-2), "1", 0, align, true, 0, "")
			x += colWidths[j]
		}
		y += rowHeight
	}
	return y
}

func panelRows(plan model.Plan) [][]string {
	rows := make([][]string, 0, len(plan.Panels))
	for i, panel := range plan.Panels {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", len(panel.Pieces)),
			fmt.Sprintf("%.1f%%", panel.Efficiency(plan.Stock)),
			panel.Describe(),
		})
	}
	return rows
}

func cutListRows(plan model.Plan) [][]string {
	where := make(map[int]model.PlacedPiece)
	for _, panel := range plan.Panels {
		for _, p := range panel.Pieces {
			where[p.ID] = p
		}
	}

	rows := make([][]string, 0, len(plan.Finished))
	for _, f := range plan.Finished {
		panelCell, posCell := "-", "-"
		if p, ok := where[f.ID]; ok {
			panelCell = fmt.Sprintf("%d", p.PanelIndex+1)
			posCell = fmt.Sprintf("%.0f, %.0f", p.X, p.Y)
			if p.Rotated {
				posCell += " R"
			}
		}
		rows = append(rows, []string{
			fmt.Sprintf("#%d", f.ID),
			f.Label,
			fmt.Sprintf("%.0f x %.0f mm", f.Length, f.Width),
			panelCell,
			posCell,
		})
	}
	return rows
}

// toLatin converts UTF-8 text to the cp1252 encoding of the core fonts.
func toLatin(pdf *fpdf.Fpdf, text string) string {
	return pdf.UnicodeTranslatorFromDescriptor("")(text)
}

// fit encodes text for the core fonts and truncates it with an ellipsis so it
// stays within width.
func fit(pdf *fpdf.Fpdf, text string, width float64) string {
	text = toLatin(pdf, text)
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	// cp1252 is single-byte, so slicing bytes never splits a character.
	for len(text) > 0 && pdf.GetStringWidth(text+"...") > width {
		text = text[:len(text)-1]
	}
	return text + "..."
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 10
	case minDim > 20:
		return 8
	default:
		return 6
	}
}

func squareMetres(mm2 float64) float64 {
	return mm2 / 1_000_000
}
