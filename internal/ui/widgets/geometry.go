// Package widgets holds the fyne canvas widgets that draw packed panels and
// their toolpaths.
package widgets

import (
	"image/color"

	"github.com/piwi3910/calepinage/internal/model"
)

// Piece colors cycle by piece type so copies of a row share a color.
var pieceColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

var (
	colorWood   = color.NRGBA{R: 210, G: 180, B: 140, A: 255}
	colorStroke = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colorShelf  = color.NRGBA{R: 120, G: 90, B: 60, A: 160}
)

// fitScale returns the pixels-per-mm factor that fits a width x length
// panel inside maxW x maxH. Degenerate inputs give 1.
func fitScale(width, length float64, maxW, maxH float32) float32 {
	if width <= 0 || length <= 0 || maxW <= 0 || maxH <= 0 {
		return 1
	}
	return min(maxW/float32(width), maxH/float32(length))
}

// ColorIndex maps each piece label to the order in which its row first
// appears in the plan.
func ColorIndex(plan model.Plan) map[string]int {
	idx := make(map[string]int)
	for _, f := range plan.Finished {
		if _, ok := idx[f.Label]; !ok {
			idx[f.Label] = len(idx)
		}
	}
	return idx
}

func colorFor(idx map[string]int, label string) color.NRGBA {
	return pieceColors[idx[label]%len(pieceColors)]
}
