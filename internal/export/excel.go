package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/calepinage/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook.
const (
	SheetCutList = "Cut list"
	SheetPanels  = "Panels"
	SheetSummary = "Summary"
)

// ExportExcel writes the plan as a workbook with the finished cut list, the
// placement of every piece and the summary figures.
func ExportExcel(path string, plan model.Plan) error {
	if len(plan.Panels) == 0 {
		return ErrEmptyPlan
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetCutList); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetPanels, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	cutList := [][]interface{}{{"Piece", "Label", "Length (mm)", "Width (mm)"}}
	for _, p := range plan.Finished {
		cutList = append(cutList, []interface{}{p.ID, p.Label, p.Length, p.Width})
	}

	placements := [][]interface{}{{"Panel", "Piece", "Label", "X (mm)", "Y (mm)", "Length (mm)", "Width (mm)", "Rotated"}}
	for i, panel := range plan.Panels {
		for _, p := range panel.Pieces {
			placements = append(placements, []interface{}{i + 1, p.ID, p.Label, p.X, p.Y, p.Length, p.Width, p.Rotated})
		}
	}

	s := plan.Summary
	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Stock length (mm)", plan.Stock.Length},
		{"Stock width (mm)", plan.Stock.Width},
		{"Kerf (mm)", plan.Kerf},
		{"Piece types", len(plan.Types)},
		{"Pieces", s.PieceCount},
		{"Panels", s.PanelCount},
		{"Finished area (m²)", round2(squareMetres(s.FinishedArea))},
		{"Used area (m²)", round2(squareMetres(s.UsedArea))},
		{"Panel area (m²)", round2(squareMetres(s.PanelArea))},
		{"Waste area (m²)", round2(squareMetres(s.WasteArea))},
		{"Efficiency (%)", round2(s.Efficiency)},
	}
	for i, panel := range plan.Panels {
		summary = append(summary, []interface{}{fmt.Sprintf("Panel %d", i+1), panel.Describe()})
	}

	for _, sheet := range []struct {
		name  string
		rows  [][]interface{}
		width float64
	}{
		{SheetCutList, cutList, 14},
		{SheetPanels, placements, 12},
		{SheetSummary, summary, 22},
	} {
		if err := writeRows(f, sheet.name, sheet.rows, headerStyle, sheet.width); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// writeRows fills a sheet from A1, styling the first row as a header.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int, colWidth float64) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	return f.SetColWidth(sheet, "A", last, colWidth)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
