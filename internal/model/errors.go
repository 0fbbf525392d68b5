package model

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every validation failure on stock sizes,
// kerf, or piece dimensions.
var ErrInvalidInput = errors.New("invalid input")

// UnplaceablePieceError reports a piece that cannot fit an empty stock panel
// in either orientation.
type UnplaceablePieceError struct {
	Piece PieceRequest
	Stock Stock
}

func (e *UnplaceablePieceError) Error() string {
	return fmt.Sprintf("piece #%d %q (%.1f x %.1f mm) does not fit a %.0f x %.0f mm panel in either orientation",
		e.Piece.ID, e.Piece.Label, e.Piece.Length, e.Piece.Width, e.Stock.Length, e.Stock.Width)
}
