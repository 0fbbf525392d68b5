package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/piwi3910/calepinage/internal/engine"
	"github.com/piwi3910/calepinage/internal/model"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(18)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

// printFile prints an output file line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+styleValue.Render(value))
}

// =============================================================================
// Plan Output
// =============================================================================

// printPlan prints the headline figures of plan and one table row per panel.
func printPlan(w io.Writer, name string, plan model.Plan, est model.PanelEstimate) {
	s := plan.Summary

	fmt.Fprintln(w, styleTitle.Render(name))
	printKeyValue(w, "Stock", fmt.Sprintf("%s mm", plan.Stock.Label))
	printKeyValue(w, "Kerf", fmt.Sprintf("%.1f mm", plan.Kerf))
	printKeyValue(w, "Pieces", fmt.Sprintf("%d in %d rows", s.PieceCount, len(plan.Types)))
	printKeyValue(w, "Panels", styleNumber.Render(fmt.Sprintf("%d", s.PanelCount))+
		styleDim.Render(fmt.Sprintf(" (area bound %d, %d with %.0f%% margin)",
			est.PanelsNeededMin, est.PanelsWithWaste, est.WastePercent)))
	printKeyValue(w, "Used area", fmt.Sprintf("%.2f / %.2f m²", s.UsedArea/1e6, s.PanelArea/1e6))
	printKeyValue(w, "Efficiency", fmt.Sprintf("%.1f%%", s.Efficiency))
	fmt.Fprintln(w)
	fmt.Fprintln(w, panelTable(plan).Render())
}

// panelTable lists each panel with its efficiency and pieces.
func panelTable(plan model.Plan) *table.Table {
	rows := make([][]string, 0, len(plan.Panels))
	for i, panel := range plan.Panels {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", len(panel.Pieces)),
			fmt.Sprintf("%.1f%%", panel.Efficiency(plan.Stock)),
			panel.Describe(),
		})
	}
	return styledTable([]string{"Panel", "Pieces", "Used", "Contents"}, rows)
}

// comparisonTable lists each scenario side by side.
func comparisonTable(results []engine.ComparisonResult) *table.Table {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			rows = append(rows, []string{r.Scenario.Name, r.Scenario.Stock.Label,
				fmt.Sprintf("%.1f", r.Scenario.Kerf), "-", "-", r.Err.Error()})
			continue
		}
		rows = append(rows, []string{
			r.Scenario.Name,
			r.Scenario.Stock.Label,
			fmt.Sprintf("%.1f", r.Scenario.Kerf),
			fmt.Sprintf("%d", r.PanelsUsed),
			fmt.Sprintf("%.1f%%", r.Plan.Summary.Efficiency),
			fmt.Sprintf("%.1f%%", r.WastePercent),
		})
	}
	return styledTable([]string{"Scenario", "Stock", "Kerf", "Panels", "Efficiency", "Waste"}, rows)
}

func styledTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return styleCell
		})
}
