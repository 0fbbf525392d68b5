// Package gcode turns packed panels into CNC router programs that cut each
// piece out along its perimeter.
package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/calepinage/internal/model"
)

// Generator produces GCode for the panels of a plan.
//
// Machine coordinates are panel-local with the origin at the bottom-left
// corner: X runs along the stock width and Y along the stock length, so a
// piece at layout y is cut at Y = stock length - y - piece length.
type Generator struct {
	Settings model.CutSettings
	profile  model.GCodeProfile
}

// New returns a generator using the built-in profile named in settings.
func New(settings model.CutSettings) *Generator {
	return NewWithProfile(settings, model.GetProfile(settings.GCodeProfile))
}

// NewWithProfile returns a generator for an explicit, possibly custom, profile.
func NewWithProfile(settings model.CutSettings, profile model.GCodeProfile) *Generator {
	return &Generator{Settings: settings, profile: profile}
}

// Profile returns the post-processor profile in use.
func (g *Generator) Profile() model.GCodeProfile {
	return g.profile
}

// CheckClearance reports an error when the cutter is wider than the kerf
// allowance. Neighbouring finished pieces are only a kerf apart, so a wider
// tool would cut into them.
func (g *Generator) CheckClearance() error {
	if g.Settings.ToolDiameter > g.Settings.Kerf {
		return fmt.Errorf("%w: tool diameter %.2f mm exceeds kerf %.2f mm, cuts would enter neighbouring pieces",
			model.ErrInvalidInput, g.Settings.ToolDiameter, g.Settings.Kerf)
	}
	return nil
}

// GeneratePanel produces the program for one panel. index is 1-based and
// only used in the header.
func (g *Generator) GeneratePanel(panel model.Panel, stock model.Stock, index int) string {
	var b strings.Builder

	g.writeHeader(&b, panel, stock, index)
	for i, p := range panel.Pieces {
		g.writePiece(&b, p, stock, i+1)
	}
	g.writeFooter(&b)

	return b.String()
}

// GenerateAll produces one program per panel, in panel order.
func (g *Generator) GenerateAll(plan model.Plan) []string {
	codes := make([]string, 0, len(plan.Panels))
	for i, panel := range plan.Panels {
		codes = append(codes, g.GeneratePanel(panel, plan.Stock, i+1))
	}
	return codes
}

func (g *Generator) writeHeader(b *strings.Builder, panel model.Panel, stock model.Stock, idx int) {
	p := g.profile

	b.WriteString(g.comment(fmt.Sprintf("calepinage GCode - Panel %d, stock %s", idx, stock.Label)))
	b.WriteString(g.comment(fmt.Sprintf("Stock: %.1f x %.1f mm, length x width", stock.Length, stock.Width)))
	b.WriteString(g.comment(fmt.Sprintf("Pieces: %d, Efficiency: %.1f%%", len(panel.Pieces), panel.Efficiency(stock))))
	b.WriteString(g.comment(fmt.Sprintf("Tool: %.1fmm, Feed: %.0f mm/min, Plunge: %.0f mm/min",
		g.Settings.ToolDiameter, g.Settings.FeedRate, g.Settings.PlungeRate)))
	b.WriteString(g.comment(fmt.Sprintf("Depth: %.1fmm in %d passes, kerf %.1fmm",
		g.Settings.CutDepth, g.passes(), g.Settings.Kerf)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}

	if p.SpindleStart != "" {
		b.WriteString(fmt.Sprintf(p.SpindleStart+"\n", g.Settings.SpindleSpeed))
	}

	// Retract before the first rapid in XY.
	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	p := g.profile

	b.WriteString("\n")
	b.WriteString(g.comment("=== Job complete ==="))

	for _, code := range p.EndCode {
		code = strings.ReplaceAll(code, "[SafeZ]", g.format(g.Settings.SafeZ))
		b.WriteString(code + "\n")
	}

	if p.SpindleStop != "" {
		b.WriteString(p.SpindleStop + "\n")
	}
}

// CutRect returns the tool-centre rectangle for a placed piece in machine
// coordinates: the finished piece, centred in its kerf allowance, grown by
// the tool radius so the cutter runs outside the piece.
func (g *Generator) CutRect(p model.PlacedPiece, stock model.Stock) (x0, y0, x1, y1 float64) {
	inset := g.Settings.Kerf / 2
	toolR := g.Settings.ToolDiameter / 2

	x0 = p.X + inset - toolR
	x1 = p.X + p.Width - inset + toolR
	top := stock.Length - p.Y
	y1 = top - inset + toolR
	y0 = top - p.Length + inset - toolR
	return x0, y0, x1, y1
}

func (g *Generator) writePiece(b *strings.Builder, p model.PlacedPiece, stock model.Stock, n int) {
	x0, y0, x1, y1 := g.CutRect(p, stock)
	kerf := g.Settings.Kerf

	b.WriteString(g.comment(fmt.Sprintf("--- Piece %d: #%d %s %.1f x %.1f%s ---",
		n, p.ID, p.Label, p.Length-kerf, p.Width-kerf, rotatedStr(p.Rotated))))

	numPasses := g.passes()
	for pass := 1; pass <= numPasses; pass++ {
		depth := g.passDepth(pass)

		b.WriteString(g.comment(fmt.Sprintf("Pass %d/%d, depth=%.2fmm", pass, numPasses, depth)))

		b.WriteString(fmt.Sprintf("%s X%s Y%s\n", g.profile.RapidMove, g.format(x0), g.format(y0)))
		b.WriteString(fmt.Sprintf("%s Z%s F%s\n", g.profile.FeedMove, g.format(-depth), g.format(g.Settings.PlungeRate)))
		g.writePerimeter(b, x0, y0, x1, y1)

		b.WriteString(fmt.Sprintf("%s Z%s\n", g.profile.RapidMove, g.format(g.Settings.SafeZ)))
	}

	b.WriteString("\n")
}

// writePerimeter cuts the rectangle clockwise starting and ending at (x0, y0).
func (g *Generator) writePerimeter(b *strings.Builder, x0, y0, x1, y1 float64) {
	p := g.profile
	b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove, g.format(x0), g.format(y1), g.format(g.Settings.FeedRate)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.FeedMove, g.format(x1), g.format(y1)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.FeedMove, g.format(x1), g.format(y0)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.FeedMove, g.format(x0), g.format(y0)))
}

// passes returns the number of depth passes. A pass depth that is not
// positive, or deeper than the material, means a single full-depth pass.
func (g *Generator) passes() int {
	s := g.Settings
	if s.PassDepth <= 0 || s.PassDepth >= s.CutDepth {
		return 1
	}
	return int(math.Ceil(s.CutDepth / s.PassDepth))
}

func (g *Generator) passDepth(pass int) float64 {
	if g.passes() == 1 {
		return g.Settings.CutDepth
	}
	return math.Min(float64(pass)*g.Settings.PassDepth, g.Settings.CutDepth)
}

// comment wraps text in the profile's comment syntax. Parentheses inside
// the text become brackets since ")" ends a comment on Mach3.
func (g *Generator) comment(text string) string {
	if g.profile.CommentSuffix != "" {
		text = commentSafe.Replace(text)
	}
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	return fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
}

var commentSafe = strings.NewReplacer("(", "[", ")", "]")

func rotatedStr(r bool) string {
	if r {
		return " [rotated]"
	}
	return ""
}
