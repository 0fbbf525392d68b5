package model

import "math"

// PanelEstimate is an area-only lower bound on how many panels a cut list
// needs. It ignores geometry, so real layouts need at least this many.
type PanelEstimate struct {
	PackedArea        float64 `json:"packed_area"`         // Area of all pieces with kerf (mm²)
	PanelArea         float64 `json:"panel_area"`          // Area of one panel (mm²)
	PanelsNeededExact float64 `json:"panels_needed_exact"` // Fractional number of panels
	PanelsNeededMin   int     `json:"panels_needed_min"`   // Ceiling of the exact figure
	PanelsWithWaste   int     `json:"panels_with_waste"`   // Panels to buy including the waste factor
	WastePercent      float64 `json:"waste_percent"`       // Waste factor applied (e.g. 15 for 15%)
}

// EstimatePanels computes the area lower bound for a cut list on the given
// stock, inflating each piece by kerf on both axes.
func EstimatePanels(types []PieceType, stock Stock, kerf, wastePercent float64) PanelEstimate {
	var packed float64
	for _, t := range types {
		packed += (t.Length + kerf) * (t.Width + kerf) * float64(t.Quantity)
	}

	est := PanelEstimate{
		PackedArea:   packed,
		PanelArea:    stock.Area(),
		WastePercent: wastePercent,
	}
	if est.PanelArea <= 0 {
		return est
	}

	est.PanelsNeededExact = packed / est.PanelArea
	est.PanelsNeededMin = int(math.Ceil(est.PanelsNeededExact))

	withWaste := est.PanelsNeededExact * (1 + wastePercent/100.0)
	est.PanelsWithWaste = int(math.Ceil(withWaste))
	if est.PanelsWithWaste < est.PanelsNeededMin {
		est.PanelsWithWaste = est.PanelsNeededMin
	}
	return est
}
