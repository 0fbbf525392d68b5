package export

import (
	"fmt"

	"github.com/piwi3910/calepinage/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// DXF layer names.
const (
	LayerPanels = "PANELS"
	LayerPieces = "PIECES"
	LayerLabels = "LABELS"
)

// dxfPanelGap separates consecutive panels along x, in mm.
const dxfPanelGap = 100.0

// ExportDXF draws every panel side by side along x. Panel outlines are LINEs
// on PANELS, pieces closed LWPOLYLINEs on PIECES at their placed size, and
// the "#id" tags TEXT on LABELS. The drawing uses the usual DXF orientation
// with y up, so the top edge of a panel is at y = stock length.
func ExportDXF(path string, plan model.Plan) error {
	if len(plan.Panels) == 0 {
		return ErrEmptyPlan
	}

	d := dxf.NewDrawing()
	for _, layer := range []struct {
		name string
		col  color.ColorNumber
	}{
		{LayerPanels, dxf.DefaultColor},
		{LayerPieces, color.Green},
		{LayerLabels, color.Yellow},
	} {
		if _, err := d.AddLayer(layer.name, layer.col, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("add layer %s: %w", layer.name, err)
		}
	}

	W, L := plan.Stock.Width, plan.Stock.Length
	for i, panel := range plan.Panels {
		ox := float64(i) * (W + dxfPanelGap)

		if err := d.ChangeLayer(LayerPanels); err != nil {
			return err
		}
		corners := [][2]float64{{ox, 0}, {ox + W, 0}, {ox + W, L}, {ox, L}}
		for c := range corners {
			a, b := corners[c], corners[(c+1)%len(corners)]
			if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
				return fmt.Errorf("panel %d outline: %w", i+1, err)
			}
		}

		for _, p := range panel.Pieces {
			x0 := ox + p.X
			x1 := x0 + p.Width
			y1 := L - p.Y
			y0 := y1 - p.Length

			if err := d.ChangeLayer(LayerPieces); err != nil {
				return err
			}
			if _, err := d.LwPolyline(true,
				[]float64{x0, y0}, []float64{x1, y0}, []float64{x1, y1}, []float64{x0, y1}); err != nil {
				return fmt.Errorf("piece #%d: %w", p.ID, err)
			}

			if err := d.ChangeLayer(LayerLabels); err != nil {
				return err
			}
			height := textHeight(p.Width, p.Length)
			if _, err := d.Text(fmt.Sprintf("#%d", p.ID), x0+height/2, y1-1.5*height, 0, height); err != nil {
				return fmt.Errorf("piece #%d label: %w", p.ID, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save DXF: %w", err)
	}
	return nil
}

// textHeight scales tags to the piece, between 5 and 40 mm.
func textHeight(w, l float64) float64 {
	h := 0.15 * min(w, l)
	return max(5, min(40, h))
}
