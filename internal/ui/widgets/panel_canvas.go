package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/calepinage/internal/model"
)

// PanelCanvas draws one packed panel: the stock, its shelf boundaries and
// every placed piece at its kerf-inclusive size.
type PanelCanvas struct {
	widget.BaseWidget
	panel     model.Panel
	stock     model.Stock
	colors    map[string]int
	maxWidth  float32
	maxHeight float32
}

func NewPanelCanvas(panel model.Panel, stock model.Stock, colors map[string]int, maxW, maxH float32) *PanelCanvas {
	pc := &PanelCanvas{
		panel:     panel,
		stock:     stock,
		colors:    colors,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

func (pc *PanelCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newPanelCanvasRenderer(pc)
}

type panelCanvasRenderer struct {
	pc      *PanelCanvas
	objects []fyne.CanvasObject
}

func newPanelCanvasRenderer(pc *PanelCanvas) *panelCanvasRenderer {
	r := &panelCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

func (r *panelCanvasRenderer) scale() float32 {
	return fitScale(r.pc.stock.Width, r.pc.stock.Length, r.pc.maxWidth, r.pc.maxHeight)
}

func (r *panelCanvasRenderer) rebuild() {
	r.objects = nil

	stock := r.pc.stock
	scale := r.scale()
	canvasW := float32(stock.Width) * scale
	canvasH := float32(stock.Length) * scale

	bg := canvas.NewRectangle(colorWood)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = colorStroke
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, border)

	// The first shelf starts on the panel edge.
	for _, s := range r.pc.panel.Shelves {
		if s.Y <= 0 {
			continue
		}
		line := canvas.NewLine(colorShelf)
		line.StrokeWidth = 1
		line.Position1 = fyne.NewPos(0, float32(s.Y)*scale)
		line.Position2 = fyne.NewPos(canvasW, float32(s.Y)*scale)
		r.objects = append(r.objects, line)
	}

	for _, p := range r.pc.panel.Pieces {
		pw := float32(p.Width) * scale
		ph := float32(p.Length) * scale
		px := float32(p.X) * scale
		py := float32(p.Y) * scale

		rect := canvas.NewRectangle(colorFor(r.pc.colors, p.Label))
		rect.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		rect.StrokeWidth = 1
		rect.Resize(fyne.NewSize(pw, ph))
		rect.Move(fyne.NewPos(px, py))
		r.objects = append(r.objects, rect)

		// Only tag pieces big enough to hold the text.
		if pw > 30 && ph > 16 {
			label := canvas.NewText(fmt.Sprintf("#%d %s", p.ID, p.Label), color.Black)
			label.TextSize = 10
			label.Move(fyne.NewPos(px+3, py+2))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *panelCanvasRenderer) Layout(size fyne.Size)        {}
func (r *panelCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *panelCanvasRenderer) Destroy()                     {}
func (r *panelCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *panelCanvasRenderer) MinSize() fyne.Size {
	scale := r.scale()
	return fyne.NewSize(float32(r.pc.stock.Width)*scale, float32(r.pc.stock.Length)*scale)
}
