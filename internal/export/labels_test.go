package export

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/piwi3910/calepinage/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestPlan(t)); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	requireFile(t, path, []byte("%PDF"))
}

func TestExportLabels_EmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, model.Plan{}); !errors.Is(err, ErrEmptyPlan) {
		t.Fatalf("expected ErrEmptyPlan, got %v", err)
	}
}

func TestExportLabels_MultiplePages(t *testing.T) {
	plan := buildTestPlan(t)
	// 31 labels spill onto a second sheet.
	for i := 0; i < 5; i++ {
		plan.Panels = append(plan.Panels, plan.Panels[1])
	}
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, plan); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	requireFile(t, path, []byte("%PDF"))
}

func TestCollectLabelInfos(t *testing.T) {
	plan := buildTestPlan(t)
	labels := CollectLabelInfos(plan)

	if len(labels) != 6 {
		t.Fatalf("expected 6 labels, got %d", len(labels))
	}

	first := labels[0]
	if first.ID != 6 || first.Label != "Back" || first.PanelIndex != 0 {
		t.Errorf("expected the back first, got %+v", first)
	}
	if first.Length != 1996 || first.Width != 996 {
		t.Errorf("expected finished dimensions 1996 x 996, got %.0f x %.0f", first.Length, first.Width)
	}

	seen := make(map[int]bool)
	for _, l := range labels {
		if seen[l.ID] {
			t.Errorf("duplicate label for piece #%d", l.ID)
		}
		seen[l.ID] = true
	}
}

func TestLabelInfoJSON(t *testing.T) {
	info := LabelInfo{ID: 3, Label: "Shelf", Length: 546, Width: 296, PanelIndex: 1, Rotated: true, X: 300, Y: 800}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, key := range []string{"id", "label", "length_mm", "width_mm", "panel", "rotated", "x_mm", "y_mm"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
}
