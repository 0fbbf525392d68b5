package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoveType represents the type of CNC toolpath movement.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0: rapid positioning (no cutting)
	MoveFeed                    // G1: linear feed in the XY plane
	MovePlunge                  // G1 with Z decreasing and no XY motion
	MoveRetract                 // Z increasing, rapid or feed
)

// Move is a single parsed G0/G1 movement.
type Move struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	FromZ    float64
	ToX      float64
	ToY      float64
	ToZ      float64
	FeedRate float64
}

// Length returns the 3D distance travelled.
func (m Move) Length() float64 {
	return math.Sqrt(sq(m.ToX-m.FromX) + sq(m.ToY-m.FromY) + sq(m.ToZ-m.FromZ))
}

var coordRe = regexp.MustCompile(`([XYZF])(-?\d+\.?\d*)`)

// Parse reads a program back into absolute moves. Comments in ";" or
// "(...)" form are ignored, as are non-motion lines.
func Parse(code string) []Move {
	var moves []Move
	var cur Move // only the To* fields and FeedRate carry state

	for _, line := range strings.Split(code, "\n") {
		line = stripComment(line)
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)
		fields := strings.Fields(upper)
		var rapid bool
		switch fields[0] {
		case "G0", "G00":
			rapid = true
		case "G1", "G01":
		default:
			continue
		}

		next := Move{
			FromX: cur.ToX, FromY: cur.ToY, FromZ: cur.ToZ,
			ToX: cur.ToX, ToY: cur.ToY, ToZ: cur.ToZ,
			FeedRate: cur.FeedRate,
		}
		for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				next.ToX = val
			case "Y":
				next.ToY = val
			case "Z":
				next.ToZ = val
			case "F":
				next.FeedRate = val
			}
		}
		next.Type = classifyMove(rapid, next)

		moves = append(moves, next)
		cur = next
	}

	return moves
}

func stripComment(line string) string {
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	for {
		start := strings.Index(line, "(")
		if start < 0 {
			break
		}
		end := strings.Index(line[start:], ")")
		if end < 0 {
			line = line[:start]
			break
		}
		line = line[:start] + line[start+end+1:]
	}
	return strings.TrimSpace(line)
}

// classifyMove determines the MoveType from the motion of m.
func classifyMove(rapid bool, m Move) MoveType {
	zDelta := m.ToZ - m.FromZ
	hasXY := m.FromX != m.ToX || m.FromY != m.ToY

	switch {
	case zDelta > 0.001 && (rapid || !hasXY):
		return MoveRetract
	case rapid:
		return MoveRapid
	case zDelta < -0.001 && !hasXY:
		return MovePlunge
	default:
		return MoveFeed
	}
}

// Stats summarises a program for the operator.
type Stats struct {
	Moves        int
	Plunges      int
	CutLength    float64 // mm travelled at feed in XY
	RapidLength  float64 // mm travelled at rapid, retracts included
	PlungeLength float64 // mm travelled while plunging
	MinX, MinY   float64 // Extent of feed moves
	MaxX, MaxY   float64
	CutMinutes   float64 // Time at programmed feed rates, rapids excluded
}

// Analyze parses code and accumulates Stats. Feed moves without a feed
// rate do not contribute to CutMinutes.
func Analyze(code string) Stats {
	s := Stats{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}

	for _, m := range Parse(code) {
		s.Moves++
		l := m.Length()
		switch m.Type {
		case MoveRapid, MoveRetract:
			s.RapidLength += l
			continue
		case MovePlunge:
			s.Plunges++
			s.PlungeLength += l
		case MoveFeed:
			s.CutLength += l
			s.MinX, s.MaxX = math.Min(s.MinX, math.Min(m.FromX, m.ToX)), math.Max(s.MaxX, math.Max(m.FromX, m.ToX))
			s.MinY, s.MaxY = math.Min(s.MinY, math.Min(m.FromY, m.ToY)), math.Max(s.MaxY, math.Max(m.FromY, m.ToY))
		}
		if m.FeedRate > 0 {
			s.CutMinutes += l / m.FeedRate
		}
	}

	if s.CutLength == 0 {
		s.MinX, s.MinY, s.MaxX, s.MaxY = 0, 0, 0, 0
	}
	return s
}

func sq(v float64) float64 { return v * v }
