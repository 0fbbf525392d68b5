package export

import (
	"bytes"
	"os"
	"testing"

	"github.com/piwi3910/calepinage/internal/engine"
	"github.com/piwi3910/calepinage/internal/model"
)

// buildTestPlan packs a small cabinet cut list: one full-sheet back, two
// sides and three shelves on 1000 x 2000 stock with a 4 mm kerf. It needs
// two panels.
func buildTestPlan(t *testing.T) model.Plan {
	t.Helper()
	plan, err := engine.BuildPlan([]model.PieceType{
		model.NewPieceType("Side", 796, 396, 2),
		model.NewPieceType("Shelf", 546, 296, 3),
		model.NewPieceType("Back", 1996, 996, 1),
	}, model.NewStock(1000, 2000), 4)
	if err != nil {
		t.Fatalf("BuildPlan returned error: %v", err)
	}
	if len(plan.Panels) != 2 {
		t.Fatalf("expected 2 panels in the fixture, got %d", len(plan.Panels))
	}
	return plan
}

// requireFile fails the test unless path exists and starts with magic.
func requireFile(t *testing.T, path string, magic []byte) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("file is empty")
	}
	if magic != nil && !bytes.HasPrefix(data, magic) {
		t.Errorf("expected file to start with %q, got %q", magic, data[:min(len(data), len(magic))])
	}
}
