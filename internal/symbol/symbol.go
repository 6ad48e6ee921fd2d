// Package symbol renders schematic SVG glyphs for gate kinds: a fixed-size
// diagram for the learn tab and a scalable symbol for placed instances.
package symbol

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tekmux/gatelab/internal/domain/logic"
)

// Symbol size limits, in pixels of width.
const (
	MinSize     = 16
	MaxSize     = 512
	DefaultSize = 60
)

const (
	diagramWidth  = 120
	diagramHeight = 80

	// symbolAspect is the height of a symbol relative to its width.
	symbolAspect = 0.67

	stroke      = "white"
	strokeWidth = 2
)

// segment is one path command. Arc arguments are rx, ry, x, y with all
// flags zero.
type segment struct {
	op   byte
	args []float64
}

type line struct{ x1, y1, x2, y2 float64 }

type circle struct{ cx, cy, r float64 }

// figure is a drawing in abstract units, scaled on render.
type figure struct {
	paths   [][]segment
	circles []circle
	lines   []line
}

// Diagram returns the 120×80 learn-tab schematic for k, or "" when k is
// not a gate kind.
func Diagram(k logic.Kind) string {
	f, ok := diagrams[k]
	if !ok {
		return ""
	}
	return f.render(diagramWidth, diagramHeight, 1)
}

// Symbol returns the canvas symbol for k, size pixels wide and 0.67×size
// high. size is clamped to [MinSize, MaxSize]. It returns "" when k is not
// a gate kind.
func Symbol(k logic.Kind, size int) string {
	f, ok := symbols[k]
	if !ok {
		return ""
	}
	s := float64(ClampSize(size))
	return f.render(s, s*symbolAspect, s)
}

// ClampSize limits size to [MinSize, MaxSize].
func ClampSize(size int) int {
	switch {
	case size < MinSize:
		return MinSize
	case size > MaxSize:
		return MaxSize
	default:
		return size
	}
}

func (f figure) render(width, height, scale float64) string {
	var b strings.Builder
	w, h := num(width), num(height)
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`, w, h, w, h)
	for _, p := range f.paths {
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="%d"/>`, pathData(p, scale), stroke, strokeWidth)
	}
	for _, c := range f.circles {
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%d"/>`,
			num(c.cx*scale), num(c.cy*scale), num(c.r*scale), stroke, strokeWidth)
	}
	for _, l := range f.lines {
		fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%d"/>`,
			num(l.x1*scale), num(l.y1*scale), num(l.x2*scale), num(l.y2*scale), stroke, strokeWidth)
	}
	b.WriteString("</svg>")
	return b.String()
}

func pathData(segs []segment, scale float64) string {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		if s.op == 'Z' {
			parts = append(parts, "Z")
			continue
		}
		args := make([]string, 0, len(s.args)+3)
		for i, a := range s.args {
			args = append(args, num(a*scale))
			if s.op == 'A' && i == 1 {
				args = append(args, "0", "0", "0")
			}
		}
		parts = append(parts, string(s.op)+strings.Join(args, " "))
	}
	return strings.Join(parts, " ")
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
