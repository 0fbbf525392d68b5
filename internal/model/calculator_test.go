package model

import (
	"math"
	"testing"
)

func TestEstimatePanelsBasic(t *testing.T) {
	types := []PieceType{
		{Label: "Part1", Length: 900, Width: 400, Quantity: 10},
	}
	est := EstimatePanels(types, NewStock(1000, 2000), 0, 15.0)

	expectedArea := 900.0 * 400.0 * 10
	if math.Abs(est.PackedArea-expectedArea) > 0.1 {
		t.Errorf("expected packed area %.1f, got %.1f", expectedArea, est.PackedArea)
	}
	if est.PanelsNeededMin != 2 {
		t.Errorf("expected 2 panels minimum, got %d", est.PanelsNeededMin)
	}
	// 1.8 * 1.15 = 2.07 -> 3
	if est.PanelsWithWaste != 3 {
		t.Errorf("expected 3 panels with waste, got %d", est.PanelsWithWaste)
	}
}

func TestEstimatePanelsIncludesKerf(t *testing.T) {
	types := []PieceType{{Label: "A", Length: 500, Width: 300, Quantity: 4}}
	est := EstimatePanels(types, NewStock(1220, 2440), 3.0, 0)

	expectedArea := 503.0 * 303.0 * 4
	if math.Abs(est.PackedArea-expectedArea) > 0.1 {
		t.Errorf("expected packed area %.1f, got %.1f", expectedArea, est.PackedArea)
	}
	if est.PanelsWithWaste != est.PanelsNeededMin {
		t.Errorf("with no waste factor both counts should match, got %d and %d", est.PanelsWithWaste, est.PanelsNeededMin)
	}
}

func TestEstimatePanelsZeroStock(t *testing.T) {
	types := []PieceType{{Label: "A", Length: 500, Width: 300, Quantity: 1}}
	est := EstimatePanels(types, Stock{}, 0, 10)
	if est.PanelsNeededMin != 0 {
		t.Errorf("expected 0 panels for zero-area stock, got %d", est.PanelsNeededMin)
	}
	if est.PackedArea == 0 {
		t.Error("packed area should still be reported")
	}
}
