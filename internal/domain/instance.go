package domain

import (
	"github.com/google/uuid"
	"github.com/tekmux/gatelab/internal/domain/logic"
)

// Wiring decides which named inputs feed a gate's operands. Binary gates
// always read A and B; unary gates read the Unary input, which is A in
// free-build and C in the three-input challenge.
type Wiring struct {
	Unary InputName
}

// DefaultWiring feeds NOT gates from input A.
var DefaultWiring = Wiring{Unary: InputA}

// Bind reads the operands of a gate of kind k from src.
func (w Wiring) Bind(k logic.Kind, src InputSource) logic.Inputs {
	if k.Unary() {
		unary := w.Unary
		if unary == "" {
			unary = InputA
		}
		return k.Bind(src.Get(unary), false)
	}
	return k.Bind(src.Get(InputA), src.Get(InputB))
}

// Instance is a placed gate on a canvas. Its inputs and output are only
// ever written together, so Output always equals logic.Evaluate(Kind, Inputs).
type Instance struct {
	ID       uuid.UUID  `json:"id"`
	Kind     logic.Kind `json:"kind"`
	Position Point      `json:"position"`
	// Seq is the placement order on the owning canvas; higher renders above.
	Seq uint64 `json:"seq"`

	inputs logic.Inputs
	output bool
}

// Inputs returns the operand values the instance currently sees.
func (i Instance) Inputs() logic.Inputs {
	return i.inputs
}

// Output returns the instance's current output.
func (i Instance) Output() bool {
	return i.output
}

// rebind recomputes inputs and output from src.
func (i *Instance) rebind(w Wiring, src InputSource) {
	i.inputs = w.Bind(i.Kind, src)
	i.output = logic.Evaluate(i.Kind, i.inputs)
}

// EvaluateAt returns what the instance would output if the inputs were c.
// It does not modify the instance.
func (i Instance) EvaluateAt(w Wiring, c Combination) bool {
	return logic.Evaluate(i.Kind, w.Bind(i.Kind, c))
}
