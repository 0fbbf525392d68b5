package model

import (
	"fmt"
	"strings"
)

// Shelf is a horizontal strip of a panel. Its height is fixed by the first
// piece placed on it; later pieces are packed side by side along x.
type Shelf struct {
	Y         float64 `json:"y"`
	Height    float64 `json:"height"`
	UsedWidth float64 `json:"used_width"`
}

// PlacedPiece is a piece with its resolved panel position.
// Length and Width are the dimensions as oriented on the panel.
type PlacedPiece struct {
	ID         int     `json:"id"`
	Label      string  `json:"label"`
	Length     float64 `json:"length"`
	Width      float64 `json:"width"`
	Rotated    bool    `json:"rotated"`
	PanelIndex int     `json:"panel_index"`
	X          float64 `json:"x"` // from the left edge, along the stock width
	Y          float64 `json:"y"` // from the top edge, along the stock length
}

// Area returns the placed surface, kerf included.
func (p PlacedPiece) Area() float64 {
	return p.Length * p.Width
}

// Panel is one stock sheet with its shelves and pieces.
type Panel struct {
	Shelves    []Shelf       `json:"shelves"`
	UsedHeight float64       `json:"used_height"`
	Pieces     []PlacedPiece `json:"pieces"`
}

// UsedArea returns the total area covered by placed pieces.
func (p Panel) UsedArea() float64 {
	var total float64
	for _, pc := range p.Pieces {
		total += pc.Area()
	}
	return total
}

// Efficiency returns the used percentage of one stock panel.
func (p Panel) Efficiency(stock Stock) float64 {
	area := stock.Area()
	if area == 0 {
		return 0
	}
	return (p.UsedArea() / area) * 100.0
}

// Describe lists the pieces of the panel as "#id (label : LxW)" joined by
// " | ", or "-" for an empty panel.
func (p Panel) Describe() string {
	if len(p.Pieces) == 0 {
		return "-"
	}
	parts := make([]string, len(p.Pieces))
	for i, pc := range p.Pieces {
		parts[i] = fmt.Sprintf("#%d (%s : %.0fx%.0f)", pc.ID, pc.Label, pc.Length, pc.Width)
	}
	return strings.Join(parts, " | ")
}

// Summary holds the derived metrics of a packing result.
type Summary struct {
	PanelCount   int     `json:"panel_count"`
	PieceCount   int     `json:"piece_count"`
	UsedArea     float64 `json:"used_area"`     // kerf included, mm²
	FinishedArea float64 `json:"finished_area"` // kerf excluded, mm²
	PanelArea    float64 `json:"panel_area"`    // mm²
	WasteArea    float64 `json:"waste_area"`    // mm²
	Efficiency   float64 `json:"efficiency"`    // percent
}

// Summarize computes panel count, used area, waste and efficiency for panels
// cut from stock. Finished area is left at zero; Plan fills it in.
func Summarize(panels []Panel, stock Stock) Summary {
	s := Summary{PanelCount: len(panels)}
	for _, p := range panels {
		s.PieceCount += len(p.Pieces)
		s.UsedArea += p.UsedArea()
	}
	s.PanelArea = stock.Area() * float64(len(panels))
	s.WasteArea = s.PanelArea - s.UsedArea
	if s.PanelArea > 0 {
		s.Efficiency = (s.UsedArea / s.PanelArea) * 100.0
	}
	return s
}

// Plan is the full answer for one cut list: the inputs as expanded, the
// packed panels and their metrics.
type Plan struct {
	Stock    Stock          `json:"stock"`
	Kerf     float64        `json:"kerf"`
	Types    []PieceType    `json:"types"`
	Finished []PieceRequest `json:"finished"`
	Panels   []Panel        `json:"panels"`
	Summary  Summary        `json:"summary"`
}

// FinishedPiece returns the kerf-free dimensions of the piece with the given id.
func (p Plan) FinishedPiece(id int) (PieceRequest, bool) {
	// Ids are assigned 1..N in order, so try the direct index first.
	if id >= 1 && id <= len(p.Finished) && p.Finished[id-1].ID == id {
		return p.Finished[id-1], true
	}
	for _, f := range p.Finished {
		if f.ID == id {
			return f, true
		}
	}
	return PieceRequest{}, false
}
