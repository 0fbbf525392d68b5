package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_IgnoresCommentsAndNonMotion(t *testing.T) {
	code := `; header comment
(parenthetical comment)
G90
G21
M3 S18000
G0 X10 Y20 ; inline comment
G1 (feed) X30 Y20 F1500
`
	moves := Parse(code)

	require.Len(t, moves, 2)
	assert.Equal(t, MoveRapid, moves[0].Type)
	assert.Equal(t, 10.0, moves[0].ToX)
	assert.Equal(t, MoveFeed, moves[1].Type)
	assert.Equal(t, 30.0, moves[1].ToX)
	assert.Equal(t, 1500.0, moves[1].FeedRate)
}

func TestParse_StateIsSticky(t *testing.T) {
	moves := Parse("G1 X100 Y50 F800\nG1 Y80\nG01 Z-3\n")

	require.Len(t, moves, 3)
	assert.Equal(t, 100.0, moves[1].ToX, "X carries over")
	assert.Equal(t, 800.0, moves[1].FeedRate, "feed rate carries over")
	assert.Equal(t, 80.0, moves[2].FromY)
	assert.Equal(t, MovePlunge, moves[2].Type)
}

func TestParse_NegativeAndDecimalCoordinates(t *testing.T) {
	moves := Parse("G0 X-3.5 Y-0.25\n")

	require.Len(t, moves, 1)
	assert.Equal(t, -3.5, moves[0].ToX)
	assert.Equal(t, -0.25, moves[0].ToY)
}

func TestClassifyMove(t *testing.T) {
	tests := []struct {
		name  string
		rapid bool
		move  Move
		want  MoveType
	}{
		{"rapid xy", true, Move{ToX: 10}, MoveRapid},
		{"rapid up", true, Move{ToZ: 5}, MoveRetract},
		{"feed xy", false, Move{ToX: 10}, MoveFeed},
		{"plunge", false, Move{FromZ: 5, ToZ: -6}, MovePlunge},
		{"feed up", false, Move{FromZ: -6, ToZ: 5}, MoveRetract},
		{"ramp down", false, Move{ToX: 10, ToZ: -2}, MoveFeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyMove(tt.rapid, tt.move))
		})
	}
}

func TestMoveLength(t *testing.T) {
	m := Move{FromX: 0, FromY: 0, ToX: 3, ToY: 4}
	assert.InDelta(t, 5.0, m.Length(), 1e-12)
}

func TestAnalyze(t *testing.T) {
	code := `G0 Z5
G0 X0 Y0
G1 Z-5 F500
G1 X100 F1000
G1 Y50
G0 Z5
`
	s := Analyze(code)

	assert.Equal(t, 6, s.Moves)
	assert.Equal(t, 1, s.Plunges)
	assert.InDelta(t, 150.0, s.CutLength, 1e-9)
	assert.InDelta(t, 10.0, s.PlungeLength, 1e-9)
	assert.InDelta(t, 15.0, s.RapidLength, 1e-9)
	assert.InDelta(t, 10.0/500+150.0/1000, s.CutMinutes, 1e-9)
	assert.Equal(t, 0.0, s.MinX)
	assert.Equal(t, 100.0, s.MaxX)
	assert.Equal(t, 50.0, s.MaxY)
}

func TestAnalyze_Empty(t *testing.T) {
	s := Analyze("")
	assert.Zero(t, s.Moves)
	assert.Zero(t, s.MinX)
	assert.Zero(t, s.MaxX)
}
