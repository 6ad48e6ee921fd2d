package symbol

import "github.com/tekmux/gatelab/internal/domain/logic"

func move(x, y float64) segment   { return segment{op: 'M', args: []float64{x, y}} }
func lineTo(x, y float64) segment { return segment{op: 'L', args: []float64{x, y}} }
func quad(cx, cy, x, y float64) segment {
	return segment{op: 'Q', args: []float64{cx, cy, x, y}}
}
func arc(rx, ry, x, y float64) segment {
	return segment{op: 'A', args: []float64{rx, ry, x, y}}
}

var closePath = segment{op: 'Z'}

// Diagram shapes in 120×80 viewBox units.
var (
	diagramAnd = []segment{move(20, 20), lineTo(20, 60), lineTo(50, 60), arc(20, 20, 50, 20), closePath}
	diagramOr  = []segment{move(20, 20), quad(50, 40, 20, 60), quad(40, 40, 70, 40), quad(40, 40, 20, 20)}

	diagramBinaryInputs = []line{{10, 30, 20, 30}, {10, 50, 20, 50}}
	diagramOrInputs     = []line{{10, 30, 25, 30}, {10, 50, 25, 50}}
	diagramOutput       = line{70, 40, 80, 40}
	diagramBubble       = circle{75, 40, 5}
	diagramBubbleOutput = line{80, 40, 90, 40}
)

var diagrams = map[logic.Kind]figure{
	logic.AND: {
		paths: [][]segment{diagramAnd},
		lines: append(append([]line{}, diagramBinaryInputs...), diagramOutput),
	},
	logic.OR: {
		paths: [][]segment{diagramOr},
		lines: append(append([]line{}, diagramOrInputs...), diagramOutput),
	},
	logic.NOT: {
		paths:   [][]segment{{move(20, 20), lineTo(20, 60), lineTo(60, 40), closePath}},
		circles: []circle{{65, 40, 5}},
		lines:   []line{{10, 40, 20, 40}, diagramOutput},
	},
	logic.NAND: {
		paths:   [][]segment{diagramAnd},
		circles: []circle{diagramBubble},
		lines:   append(append([]line{}, diagramBinaryInputs...), diagramBubbleOutput),
	},
	logic.NOR: {
		paths:   [][]segment{diagramOr},
		circles: []circle{diagramBubble},
		lines:   append(append([]line{}, diagramOrInputs...), diagramBubbleOutput),
	},
	logic.XOR: {
		paths: [][]segment{{move(15, 20), quad(45, 40, 15, 60)}, diagramOr},
		lines: append(append([]line{}, diagramBinaryInputs...), diagramOutput),
	},
}

// Symbol shapes as fractions of the symbol width.
var (
	symbolAnd = []segment{move(0.2, 0.15), lineTo(0.2, 0.52), lineTo(0.45, 0.52), arc(0.15, 0.15, 0.45, 0.15), closePath}
	symbolOr  = []segment{move(0.2, 0.15), quad(0.45, 0.335, 0.2, 0.52), quad(0.35, 0.335, 0.6, 0.335), quad(0.35, 0.335, 0.2, 0.15)}

	symbolBinaryInputs = []line{{0.05, 0.22, 0.2, 0.22}, {0.05, 0.45, 0.2, 0.45}}
	symbolOrInputs     = []line{{0.05, 0.22, 0.25, 0.22}, {0.05, 0.45, 0.25, 0.45}}
	symbolOutput       = line{0.6, 0.335, 0.75, 0.335}
	symbolBubble       = circle{0.65, 0.335, 0.04}
	symbolBubbleOutput = line{0.69, 0.335, 0.8, 0.335}
)

var symbols = map[logic.Kind]figure{
	logic.AND: {
		paths: [][]segment{symbolAnd},
		lines: append(append([]line{}, symbolBinaryInputs...), symbolOutput),
	},
	logic.OR: {
		paths: [][]segment{symbolOr},
		lines: append(append([]line{}, symbolOrInputs...), symbolOutput),
	},
	logic.NOT: {
		paths:   [][]segment{{move(0.2, 0.15), lineTo(0.2, 0.52), lineTo(0.5, 0.335), closePath}},
		circles: []circle{{0.55, 0.335, 0.04}},
		lines:   []line{{0.05, 0.335, 0.2, 0.335}, {0.59, 0.335, 0.75, 0.335}},
	},
	logic.NAND: {
		paths:   [][]segment{symbolAnd},
		circles: []circle{symbolBubble},
		lines:   append(append([]line{}, symbolBinaryInputs...), symbolBubbleOutput),
	},
	logic.NOR: {
		paths:   [][]segment{symbolOr},
		circles: []circle{symbolBubble},
		lines:   append(append([]line{}, symbolOrInputs...), symbolBubbleOutput),
	},
	logic.XOR: {
		paths: [][]segment{{move(0.15, 0.15), quad(0.4, 0.335, 0.15, 0.52)}, symbolOr},
		lines: append(append([]line{}, symbolBinaryInputs...), symbolOutput),
	},
}
