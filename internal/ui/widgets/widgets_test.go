package widgets

import (
	"testing"

	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"

	"github.com/piwi3910/calepinage/internal/gcode"
	"github.com/piwi3910/calepinage/internal/model"
)

func testPanel() model.Panel {
	return model.Panel{
		Shelves:    []model.Shelf{{Y: 0, Height: 400, UsedWidth: 600}, {Y: 400, Height: 300, UsedWidth: 300}},
		UsedHeight: 700,
		Pieces: []model.PlacedPiece{
			{ID: 1, Label: "Side", Length: 400, Width: 600, X: 0, Y: 0},
			{ID: 2, Label: "Shelf", Length: 300, Width: 300, X: 0, Y: 400, Rotated: true},
		},
	}
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		name          string
		width, length float64
		maxW, maxH    float32
		want          float32
	}{
		{"length bound", 1000, 2000, 600, 400, 0.2},
		{"width bound", 2000, 1000, 600, 400, 0.3},
		{"zero stock", 0, 1000, 600, 400, 1},
		{"zero box", 1000, 1000, 0, 400, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitScale(tt.width, tt.length, tt.maxW, tt.maxH); got != tt.want {
				t.Errorf("fitScale = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorIndex(t *testing.T) {
	plan := model.Plan{Finished: []model.PieceRequest{
		{ID: 1, Label: "Side"}, {ID: 2, Label: "Side"}, {ID: 3, Label: "Back"}, {ID: 4, Label: "Shelf"},
	}}
	idx := ColorIndex(plan)
	if len(idx) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(idx))
	}
	if idx["Side"] != 0 || idx["Back"] != 1 || idx["Shelf"] != 2 {
		t.Errorf("unexpected index %v", idx)
	}
	if colorFor(idx, "Side") == colorFor(idx, "Back") {
		t.Error("different rows should get different colors")
	}
}

func TestPanelCanvasObjects(t *testing.T) {
	test.NewTempApp(t)

	pc := NewPanelCanvas(testPanel(), model.NewStock(1000, 2000), map[string]int{"Side": 0, "Shelf": 1}, 600, 400)
	r := test.WidgetRenderer(pc)

	// Background, border, one inner shelf line, two pieces with a tag each.
	if got := len(r.Objects()); got != 7 {
		t.Errorf("expected 7 objects, got %d", got)
	}

	var texts int
	for _, o := range r.Objects() {
		if txt, ok := o.(*canvas.Text); ok {
			texts++
			if txt.Text != "#1 Side" && txt.Text != "#2 Shelf" {
				t.Errorf("unexpected tag %q", txt.Text)
			}
		}
	}
	if texts != 2 {
		t.Errorf("expected 2 tags, got %d", texts)
	}

	size := r.MinSize()
	if size.Width != 200 || size.Height != 400 {
		t.Errorf("expected 200x400, got %vx%v", size.Width, size.Height)
	}
}

func TestToolpathPreviewMarksPlunges(t *testing.T) {
	test.NewTempApp(t)

	stock := model.NewStock(1000, 2000)
	code := gcode.New(model.DefaultSettings()).GeneratePanel(testPanel(), stock, 1)
	stats := gcode.Analyze(code)

	tp := NewToolpathPreview(code, testPanel(), stock, 632, 432)
	r := test.WidgetRenderer(tp)

	var circles int
	for _, o := range r.Objects() {
		if _, ok := o.(*canvas.Circle); ok {
			circles++
		}
	}
	if circles != stats.Plunges {
		t.Errorf("expected %d plunge markers, got %d", stats.Plunges, circles)
	}
}
