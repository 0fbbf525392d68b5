package engine

import (
	"fmt"

	"github.com/piwi3910/calepinage/internal/model"
)

// BuildPlan runs the full cut-list flow: expand rows into kerf-inflated
// piece requests, check that each fits an empty panel, pack, summarize.
func BuildPlan(types []model.PieceType, stock model.Stock, kerf float64) (model.Plan, error) {
	if len(types) == 0 {
		return model.Plan{}, fmt.Errorf("%w: add at least one piece", model.ErrInvalidInput)
	}
	if !positive(stock.Width) || !positive(stock.Length) {
		return model.Plan{}, fmt.Errorf("%w: stock dimensions must be positive (got %v x %v)",
			model.ErrInvalidInput, stock.Length, stock.Width)
	}

	finished, packing, err := model.ExpandPieces(types, kerf)
	if err != nil {
		return model.Plan{}, err
	}
	if err := CheckFit(packing, stock); err != nil {
		return model.Plan{}, err
	}

	panels, err := Pack(packing, stock.Width, stock.Length)
	if err != nil {
		return model.Plan{}, err
	}

	summary := model.Summarize(panels, stock)
	for _, f := range finished {
		summary.FinishedArea += f.Area()
	}

	return model.Plan{
		Stock:    stock,
		Kerf:     kerf,
		Types:    types,
		Finished: finished,
		Panels:   panels,
		Summary:  summary,
	}, nil
}

// BuildProjectPlan builds the plan for a saved project.
func BuildProjectPlan(p model.Project) (model.Plan, error) {
	return BuildPlan(p.Pieces, p.Stock, p.Settings.Kerf)
}
