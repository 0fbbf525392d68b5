// Package engine implements the panel nesting heuristic: a greedy,
// single-pass shelf packer that assigns every piece to a panel position.
package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/calepinage/internal/model"
)

// LargePenalty is added to the cost of opening a new panel. It dwarfs any
// leftover on a real panel, so a new panel only wins when nothing else fits.
const LargePenalty = 1e9

// orientation is one of the two ways a piece can lie on a panel.
type orientation struct {
	length  float64
	width   float64
	rotated bool
}

// orientations returns the unrotated then the rotated orientation.
// Evaluation order matters for tie-breaking.
func orientations(p model.PieceRequest) [2]orientation {
	return [2]orientation{
		{length: p.Length, width: p.Width},
		{length: p.Width, width: p.Length, rotated: true},
	}
}

// placementKind tags the three classes of candidate placement.
type placementKind int

const (
	placeExistingShelf placementKind = iota // Next to the pieces of an existing shelf
	placeNewShelf                           // New shelf below the last one on an existing panel
	placeNewPanel                           // New shelf on a fresh panel
)

// candidate is one scored way to place a piece.
type candidate struct {
	kind   placementKind
	panel  int // index of the panel, unused for placeNewPanel
	shelf  int // index of the shelf, only for placeExistingShelf
	orient orientation
	cost   float64
}

// selection keeps the cheapest candidate offered so far. Equal costs keep
// the earlier candidate.
type selection struct {
	best  candidate
	found bool
}

func (s *selection) offer(c candidate) {
	if !s.found || c.cost < s.best.cost {
		s.best = c
		s.found = true
	}
}

// packer holds the layout state of a single Pack call.
type packer struct {
	width  float64
	length float64
	panels []model.Panel
}

// Pack packs pieces onto panels of stockWidth x stockLength and returns the
// panels in creation order. Pieces are processed longest side first; ties
// keep the input order. Invalid dimensions fail with model.ErrInvalidInput
// and a piece that fits no empty panel fails with *model.UnplaceablePieceError.
// No panels are returned on failure.
func Pack(pieces []model.PieceRequest, stockWidth, stockLength float64) ([]model.Panel, error) {
	if err := validate(pieces, stockWidth, stockLength); err != nil {
		return nil, err
	}

	p := &packer{width: stockWidth, length: stockLength}
	for _, piece := range packingOrder(pieces) {
		c, ok := p.choose(piece)
		if !ok {
			return nil, &model.UnplaceablePieceError{Piece: piece, Stock: model.NewStock(stockWidth, stockLength)}
		}
		p.apply(piece, c)
	}

	if p.panels == nil {
		return []model.Panel{}, nil
	}
	return p.panels, nil
}

// Fits reports whether a piece fits an empty panel in at least one orientation.
func Fits(p model.PieceRequest, stockWidth, stockLength float64) bool {
	return (p.Length <= stockLength && p.Width <= stockWidth) ||
		(p.Width <= stockLength && p.Length <= stockWidth)
}

// CheckFit returns an *model.UnplaceablePieceError for the first piece that
// fits no empty panel.
func CheckFit(pieces []model.PieceRequest, stock model.Stock) error {
	for _, p := range pieces {
		if !Fits(p, stock.Width, stock.Length) {
			return &model.UnplaceablePieceError{Piece: p, Stock: stock}
		}
	}
	return nil
}

func validate(pieces []model.PieceRequest, stockWidth, stockLength float64) error {
	if !positive(stockWidth) || !positive(stockLength) {
		return fmt.Errorf("%w: stock dimensions must be positive (got %v x %v)", model.ErrInvalidInput, stockLength, stockWidth)
	}

	seen := make(map[int]bool, len(pieces))
	for _, p := range pieces {
		if p.ID <= 0 {
			return fmt.Errorf("%w: piece %q has non-positive id %d", model.ErrInvalidInput, p.Label, p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate piece id %d", model.ErrInvalidInput, p.ID)
		}
		seen[p.ID] = true
		if p.Label == "" {
			return fmt.Errorf("%w: piece #%d has an empty label", model.ErrInvalidInput, p.ID)
		}
		if !positive(p.Length) || !positive(p.Width) {
			return fmt.Errorf("%w: piece #%d %q has non-positive dimensions (%v x %v)",
				model.ErrInvalidInput, p.ID, p.Label, p.Length, p.Width)
		}
	}

	return CheckFit(pieces, model.NewStock(stockWidth, stockLength))
}

// positive rejects zero, negatives, NaN and infinities.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// packingOrder returns a copy of pieces sorted by long side, descending.
func packingOrder(pieces []model.PieceRequest) []model.PieceRequest {
	sorted := make([]model.PieceRequest, len(pieces))
	copy(sorted, pieces)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LongSide() > sorted[j].LongSide()
	})
	return sorted
}

// choose scans every candidate for piece and returns the cheapest.
// Scan order: for each panel, its shelves with both orientations, then a new
// shelf with both orientations; after all panels, a new panel with both
// orientations.
func (p *packer) choose(piece model.PieceRequest) (candidate, bool) {
	var sel selection
	orients := orientations(piece)

	for pi := range p.panels {
		panel := &p.panels[pi]

		for si, shelf := range panel.Shelves {
			for _, o := range orients {
				if o.length <= shelf.Height && shelf.UsedWidth+o.width <= p.width {
					sel.offer(candidate{
						kind:   placeExistingShelf,
						panel:  pi,
						shelf:  si,
						orient: o,
						cost:   p.width - (shelf.UsedWidth + o.width),
					})
				}
			}
		}

		remaining := p.length - panel.UsedHeight
		if remaining > 0 {
			for _, o := range orients {
				if o.length <= remaining && o.width <= p.width {
					sel.offer(candidate{
						kind:   placeNewShelf,
						panel:  pi,
						orient: o,
						cost:   remaining - o.length,
					})
				}
			}
		}
	}

	for _, o := range orients {
		if o.length <= p.length && o.width <= p.width {
			sel.offer(candidate{
				kind:   placeNewPanel,
				orient: o,
				cost:   (p.length - o.length) + LargePenalty,
			})
		}
	}

	return sel.best, sel.found
}

// apply commits a candidate to the layout.
func (p *packer) apply(piece model.PieceRequest, c candidate) {
	panelIdx := c.panel
	if c.kind == placeNewPanel {
		p.panels = append(p.panels, model.Panel{})
		panelIdx = len(p.panels) - 1
	}
	panel := &p.panels[panelIdx]

	var x, y float64
	switch c.kind {
	case placeExistingShelf:
		shelf := &panel.Shelves[c.shelf]
		x, y = shelf.UsedWidth, shelf.Y
		shelf.UsedWidth += c.orient.width
	default:
		y = panel.UsedHeight
		panel.Shelves = append(panel.Shelves, model.Shelf{
			Y:         y,
			Height:    c.orient.length,
			UsedWidth: c.orient.width,
		})
		panel.UsedHeight = y + c.orient.length
	}

	panel.Pieces = append(panel.Pieces, model.PlacedPiece{
		ID:         piece.ID,
		Label:      piece.Label,
		Length:     c.orient.length,
		Width:      c.orient.width,
		Rotated:    c.orient.rotated,
		PanelIndex: panelIdx,
		X:          x,
		Y:          y,
	})
}
