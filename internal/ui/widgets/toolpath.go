package widgets

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/calepinage/internal/gcode"
	"github.com/piwi3910/calepinage/internal/model"
)

// Toolpath colors for the different move types.
var (
	colorRapid   = color.NRGBA{R: 255, G: 60, B: 60, A: 200}
	colorFeed    = color.NRGBA{R: 30, G: 120, B: 255, A: 230}
	colorPlunge  = color.NRGBA{R: 50, G: 200, B: 50, A: 220}
	colorSheet   = color.NRGBA{R: 230, G: 210, B: 175, A: 255}
	colorOutline = color.NRGBA{R: 200, G: 220, B: 255, A: 120}
)

// toolpathMargin leaves room for cuts that run outside the panel by the
// tool radius.
const toolpathMargin = 16

// ToolpathPreview draws the moves of one GCode program over the outlines of
// the panel it cuts. Moves are in machine coordinates with Y up.
type ToolpathPreview struct {
	widget.BaseWidget
	moves     []gcode.Move
	panel     model.Panel
	stock     model.Stock
	maxWidth  float32
	maxHeight float32
}

func NewToolpathPreview(code string, panel model.Panel, stock model.Stock, maxW, maxH float32) *ToolpathPreview {
	tp := &ToolpathPreview{
		moves:     gcode.Parse(code),
		panel:     panel,
		stock:     stock,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	tp.ExtendBaseWidget(tp)
	return tp
}

func (tp *ToolpathPreview) CreateRenderer() fyne.WidgetRenderer {
	return newToolpathRenderer(tp)
}

type toolpathRenderer struct {
	tp      *ToolpathPreview
	objects []fyne.CanvasObject
}

func newToolpathRenderer(tp *ToolpathPreview) *toolpathRenderer {
	r := &toolpathRenderer{tp: tp}
	r.rebuild()
	return r
}

func (r *toolpathRenderer) scale() float32 {
	return fitScale(r.tp.stock.Width, r.tp.stock.Length, r.tp.maxWidth-2*toolpathMargin, r.tp.maxHeight-2*toolpathMargin)
}

// screen maps a machine position to widget coordinates.
func (r *toolpathRenderer) screen(x, y float64, scale float32) fyne.Position {
	return fyne.NewPos(float32(x)*scale+toolpathMargin, float32(r.tp.stock.Length-y)*scale+toolpathMargin)
}

func (r *toolpathRenderer) rebuild() {
	r.objects = nil

	tp := r.tp
	scale := r.scale()

	bg := canvas.NewRectangle(colorSheet)
	bg.StrokeColor = colorStroke
	bg.StrokeWidth = 2
	bg.Resize(fyne.NewSize(float32(tp.stock.Width)*scale, float32(tp.stock.Length)*scale))
	bg.Move(fyne.NewPos(toolpathMargin, toolpathMargin))
	r.objects = append(r.objects, bg)

	for _, p := range tp.panel.Pieces {
		outline := canvas.NewRectangle(colorOutline)
		outline.Resize(fyne.NewSize(float32(p.Width)*scale, float32(p.Length)*scale))
		outline.Move(fyne.NewPos(float32(p.X)*scale+toolpathMargin, float32(p.Y)*scale+toolpathMargin))
		r.objects = append(r.objects, outline)
	}

	for _, m := range tp.moves {
		from := r.screen(m.FromX, m.FromY, scale)
		to := r.screen(m.ToX, m.ToY, scale)
		xy := math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)

		switch m.Type {
		case gcode.MoveRapid:
			if xy < 0.01 {
				continue
			}
			line := canvas.NewLine(colorRapid)
			line.StrokeWidth = 1
			line.Position1, line.Position2 = from, to
			r.objects = append(r.objects, line)
		case gcode.MoveFeed:
			if xy < 0.01 {
				continue
			}
			line := canvas.NewLine(colorFeed)
			line.StrokeWidth = 2
			line.Position1, line.Position2 = from, to
			r.objects = append(r.objects, line)
		case gcode.MovePlunge:
			marker := canvas.NewCircle(colorPlunge)
			marker.Resize(fyne.NewSize(4, 4))
			marker.Move(fyne.NewPos(from.X-2, from.Y-2))
			r.objects = append(r.objects, marker)
		}
	}
}

func (r *toolpathRenderer) Layout(size fyne.Size)        {}
func (r *toolpathRenderer) Refresh()                     { r.rebuild() }
func (r *toolpathRenderer) Destroy()                     {}
func (r *toolpathRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *toolpathRenderer) MinSize() fyne.Size {
	scale := r.scale()
	return fyne.NewSize(float32(r.tp.stock.Width)*scale+2*toolpathMargin, float32(r.tp.stock.Length)*scale+2*toolpathMargin)
}
