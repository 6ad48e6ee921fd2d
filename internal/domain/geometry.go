package domain

import "math"

// Point is a position in canvas-local coordinates, origin at the top left.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width and height.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultFootprint is the area one gate instance occupies on a canvas.
var DefaultFootprint = Size{Width: 100, Height: 60}

// Layout fixes the canvas extent and instance footprint of every canvas a
// session creates.
type Layout struct {
	Canvas    Size
	Footprint Size
}

// clampAxis limits v to [0, extent-footprint]. When the canvas is smaller
// than the footprint the upper bound is 0.
func clampAxis(v, extent, footprint float64) float64 {
	upper := extent - footprint
	if upper < 0 {
		upper = 0
	}
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > upper {
		return upper
	}
	return v
}

// clamp moves p to the nearest position at which a footprint-sized
// instance lies entirely within bounds.
func clamp(p Point, bounds, footprint Size) Point {
	return Point{
		X: clampAxis(p.X, bounds.Width, footprint.Width),
		Y: clampAxis(p.Y, bounds.Height, footprint.Height),
	}
}
