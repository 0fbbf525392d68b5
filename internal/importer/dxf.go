package importer

import (
	"fmt"
	"math"

	"github.com/piwi3910/calepinage/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// ImportDXF reads a drawing of piece outlines. Every LWPOLYLINE becomes a
// piece sized by its bounding box: the y extent is the length and the x
// extent the width. Outlines of identical size are merged into one row.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	index := make(map[[2]float64]int)
	skipped := 0
	for _, ent := range entities {
		lw, ok := ent.(*entity.LwPolyline)
		if !ok {
			skipped++
			continue
		}
		if len(lw.Vertices) < 3 {
			result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			continue
		}

		length, width := boundingBox(lw.Vertices)
		if length < 0.01 || width < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f mm)", length, width))
			continue
		}

		key := [2]float64{round2(length), round2(width)}
		if i, seen := index[key]; seen {
			result.Pieces[i].Quantity++
			continue
		}
		index[key] = len(result.Pieces)
		label := fmt.Sprintf("DXF Piece %d", len(result.Pieces)+1)
		result.Pieces = append(result.Pieces, model.NewPieceType(label, key[0], key[1], 1))
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Ignored %d non-polyline entities", skipped))
	}
	if len(result.Pieces) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
	}
	return result
}

// boundingBox returns the y and x extents of a vertex list.
func boundingBox(vertices [][]float64) (length, width float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range vertices {
		if len(v) < 2 {
			continue
		}
		minX, maxX = math.Min(minX, v[0]), math.Max(maxX, v[0])
		minY, maxY = math.Min(minY, v[1]), math.Max(maxY, v[1])
	}
	return maxY - minY, maxX - minX
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
