package model

import (
	"fmt"
	"math"
	"strings"
)

// PieceType is one row of a cut list: a finished piece size and how many
// copies are needed.
type PieceType struct {
	Label    string  `json:"label"`
	Length   float64 `json:"length"` // mm, along the stock length
	Width    float64 `json:"width"`  // mm, along the stock width
	Quantity int     `json:"quantity"`
}

func NewPieceType(label string, length, width float64, qty int) PieceType {
	return PieceType{
		Label:    label,
		Length:   length,
		Width:    width,
		Quantity: qty,
	}
}

// PieceRequest is a single piece instance handed to the nesting engine.
// Length and Width already include the kerf clearance when the request was
// built by ExpandPieces.
type PieceRequest struct {
	ID     int     `json:"id"`
	Label  string  `json:"label"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

// LongSide returns the larger of the two dimensions.
func (p PieceRequest) LongSide() float64 {
	return math.Max(p.Length, p.Width)
}

// Area returns Length x Width.
func (p PieceRequest) Area() float64 {
	return p.Length * p.Width
}

// Stock describes the standard panel every piece is cut from.
type Stock struct {
	Label  string  `json:"label,omitempty"`
	Width  float64 `json:"width"`  // mm, x axis of the layout
	Length float64 `json:"length"` // mm, y axis of the layout
}

func NewStock(width, length float64) Stock {
	return Stock{
		Label:  fmt.Sprintf("%.0f x %.0f", length, width),
		Width:  width,
		Length: length,
	}
}

// Area returns the surface of one stock panel.
func (s Stock) Area() float64 {
	return s.Width * s.Length
}

// Rotated returns the same stock with width and length swapped.
func (s Stock) Rotated() Stock {
	return NewStock(s.Length, s.Width)
}

// ExpandPieces turns cut-list rows into individual piece requests.
// Ids are assigned from 1 in row order, then copy order. The first slice
// carries the finished dimensions, the second the dimensions inflated by
// kerf on both axes, ready for packing. Both slices share ids and order.
func ExpandPieces(types []PieceType, kerf float64) ([]PieceRequest, []PieceRequest, error) {
	if kerf < 0 || math.IsNaN(kerf) {
		return nil, nil, fmt.Errorf("%w: kerf must not be negative (got %v)", ErrInvalidInput, kerf)
	}

	var finished, packing []PieceRequest
	nextID := 1
	for i, t := range types {
		label := strings.TrimSpace(t.Label)
		if label == "" {
			label = fmt.Sprintf("Piece %d", i+1)
		}
		if !(t.Length > 0) || !(t.Width > 0) || t.Quantity <= 0 {
			return nil, nil, fmt.Errorf("%w: row %q has invalid dimensions or quantity", ErrInvalidInput, label)
		}

		for n := 0; n < t.Quantity; n++ {
			finished = append(finished, PieceRequest{
				ID:     nextID,
				Label:  label,
				Length: t.Length,
				Width:  t.Width,
			})
			packing = append(packing, PieceRequest{
				ID:     nextID,
				Label:  label,
				Length: t.Length + kerf,
				Width:  t.Width + kerf,
			})
			nextID++
		}
	}
	return finished, packing, nil
}

// CountPieces returns the total number of piece instances in a cut list.
func CountPieces(types []PieceType) int {
	total := 0
	for _, t := range types {
		total += t.Quantity
	}
	return total
}
