package engine

import (
	"fmt"

	"github.com/piwi3910/calepinage/internal/model"
)

// ComparisonScenario defines a named stock and kerf combination to compare.
type ComparisonScenario struct {
	Name  string
	Stock model.Stock
	Kerf  float64
}

// ComparisonResult holds the plan and headline figures for one scenario.
// Err is set when the scenario could not be packed, for example because a
// piece no longer fits the rotated stock.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Plan         model.Plan
	PanelsUsed   int
	WastePercent float64
	Err          error
}

// CompareScenarios builds a plan for each scenario and returns the results
// in scenario order.
func CompareScenarios(scenarios []ComparisonScenario, types []model.PieceType) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		plan, err := BuildPlan(types, scenario.Stock, scenario.Kerf)
		r := ComparisonResult{Scenario: scenario, Plan: plan, Err: err}
		if err == nil {
			r.PanelsUsed = plan.Summary.PanelCount
			r.WastePercent = 100.0 - plan.Summary.Efficiency
		}
		results = append(results, r)
	}

	return results
}

// BuildDefaultScenarios generates what-if alternatives around the given
// stock and kerf.
func BuildDefaultScenarios(stock model.Stock, kerf float64) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Stock: stock, Kerf: kerf},
	}

	// Shelves run across the width, so turning the stock changes the layout.
	if stock.Width != stock.Length {
		scenarios = append(scenarios, ComparisonScenario{
			Name:  "Stock Rotated",
			Stock: stock.Rotated(),
			Kerf:  kerf,
		})
	}

	if kerf > 1.0 {
		scenarios = append(scenarios, ComparisonScenario{
			Name:  fmt.Sprintf("Kerf %.1fmm (half)", kerf*0.5),
			Stock: stock,
			Kerf:  kerf * 0.5,
		})
	}

	if kerf > 0 {
		scenarios = append(scenarios, ComparisonScenario{
			Name:  "No Kerf",
			Stock: stock,
			Kerf:  0,
		})
	}

	return scenarios
}
