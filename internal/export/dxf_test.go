package export

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/piwi3910/calepinage/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF_Entities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.dxf")
	plan := buildTestPlan(t)

	if err := ExportDXF(path, plan); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	d, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot reopen DXF: %v", err)
	}

	var lines, polylines int
	maxX := 0.0
	for _, e := range d.Entities() {
		switch v := e.(type) {
		case *entity.Line:
			lines++
			maxX = max(maxX, v.Start[0], v.End[0])
		case *entity.LwPolyline:
			polylines++
			if len(v.Vertices) != 4 {
				t.Errorf("expected 4 vertices per piece, got %d", len(v.Vertices))
			}
		}
	}

	if lines != 8 {
		t.Errorf("expected 4 outline lines per panel, got %d", lines)
	}
	if polylines != 6 {
		t.Errorf("expected one polyline per piece, got %d", polylines)
	}
	// Second panel ends at 1000 + gap + 1000.
	if want := 2*plan.Stock.Width + dxfPanelGap; maxX != want {
		t.Errorf("expected panels to span %.0f mm, got %.0f", want, maxX)
	}
}

func TestExportDXF_EmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")

	if err := ExportDXF(path, model.Plan{}); !errors.Is(err, ErrEmptyPlan) {
		t.Fatalf("expected ErrEmptyPlan, got %v", err)
	}
}

func TestTextHeight(t *testing.T) {
	tests := []struct {
		w, l, want float64
	}{
		{10, 10, 5},
		{200, 400, 30},
		{1000, 2000, 40},
	}
	for _, tt := range tests {
		if got := textHeight(tt.w, tt.l); got != tt.want {
			t.Errorf("textHeight(%v, %v) = %v, want %v", tt.w, tt.l, got, tt.want)
		}
	}
}
