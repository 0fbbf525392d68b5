// Package ui shows packed plans in a fyne desktop window.
package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/calepinage/internal/gcode"
	"github.com/piwi3910/calepinage/internal/model"
	"github.com/piwi3910/calepinage/internal/ui/widgets"
)

const (
	canvasMaxWidth  = 600
	canvasMaxHeight = 400
)

// ShowLayout opens a window with the plan, one drawn panel per row, and
// blocks until it is closed. When codes holds one GCode program per panel a
// second tab previews the toolpaths.
func ShowLayout(title string, plan model.Plan, codes []string) {
	a := app.NewWithID("com.piwi3910.calepinage")
	a.Settings().SetTheme(newCompactTheme())

	w := a.NewWindow(fmt.Sprintf("%s - calepinage", title))
	w.SetContent(Build(plan, codes))
	w.Resize(fyne.NewSize(1000, 700))
	w.CenterOnScreen()
	w.ShowAndRun()
}

// Build returns the window content for plan.
func Build(plan model.Plan, codes []string) fyne.CanvasObject {
	tabs := container.NewAppTabs(container.NewTabItem("Panels", RenderPanels(plan)))
	if len(codes) == len(plan.Panels) && len(codes) > 0 {
		tabs.Append(container.NewTabItem("Toolpaths", RenderToolpaths(plan, codes)))
	}
	return tabs
}

// RenderPanels creates a scrollable list of panel drawings with a header per
// panel and the plan totals at the end.
func RenderPanels(plan model.Plan) fyne.CanvasObject {
	if len(plan.Panels) == 0 {
		return widget.NewLabel("Nothing to show: the plan has no panels.")
	}

	colors := widgets.ColorIndex(plan)
	var items []fyne.CanvasObject
	for i, panel := range plan.Panels {
		header := widget.NewLabel(fmt.Sprintf("Panel %d: %s - %d pieces, %.1f%% used",
			i+1, plan.Stock.Label, len(panel.Pieces), panel.Efficiency(plan.Stock)))
		header.TextStyle = fyne.TextStyle{Bold: true}

		items = append(items,
			header,
			widgets.NewPanelCanvas(panel, plan.Stock, colors, canvasMaxWidth, canvasMaxHeight),
			widget.NewSeparator())
	}

	s := plan.Summary
	summary := widget.NewLabel(fmt.Sprintf("Total: %d panels, %d pieces, %.1f%% efficiency, kerf %.1f mm",
		s.PanelCount, s.PieceCount, s.Efficiency, plan.Kerf))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}

// RenderToolpaths previews each panel's GCode program with its cut figures.
func RenderToolpaths(plan model.Plan, codes []string) fyne.CanvasObject {
	var items []fyne.CanvasObject
	for i, code := range codes {
		if i >= len(plan.Panels) {
			break
		}
		st := gcode.Analyze(code)
		header := widget.NewLabel(fmt.Sprintf("Panel %d: %d plunges, %.1f m cut, %.1f min at feed",
			i+1, st.Plunges, st.CutLength/1000, st.CutMinutes))
		header.TextStyle = fyne.TextStyle{Bold: true}

		items = append(items,
			header,
			widgets.NewToolpathPreview(code, plan.Panels[i], plan.Stock, canvasMaxWidth+100, canvasMaxHeight+50),
			widget.NewSeparator())
	}
	return container.NewVScroll(container.NewVBox(items...))
}
