package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tekmux/gatelab/internal/domain/logic"
)

// Canvas owns the gate instances placed in one workspace. Positions are
// clamped so an instance never extends past the canvas edge; overlapping
// placement is allowed.
type Canvas struct {
	bounds    Size
	footprint Size
	wiring    Wiring

	instances []Instance
	nextSeq   uint64

	pending    logic.Kind
	hasPending bool
}

// NewCanvas creates an empty canvas. A zero footprint falls back to
// DefaultFootprint.
func NewCanvas(bounds, footprint Size, wiring Wiring) *Canvas {
	if footprint.Width <= 0 || footprint.Height <= 0 {
		footprint = DefaultFootprint
	}
	return &Canvas{
		bounds:    bounds,
		footprint: footprint,
		wiring:    wiring,
		instances: make([]Instance, 0),
	}
}

// Bounds returns the canvas extent.
func (c *Canvas) Bounds() Size { return c.bounds }

// Footprint returns the size of one instance.
func (c *Canvas) Footprint() Size { return c.footprint }

// Wiring returns how instances on this canvas read the inputs.
func (c *Canvas) Wiring() Wiring { return c.wiring }

// Len returns the number of placed instances.
func (c *Canvas) Len() int { return len(c.instances) }

// Instances returns a copy of the placed instances in placement order.
func (c *Canvas) Instances() []Instance {
	out := make([]Instance, len(c.instances))
	copy(out, c.instances)
	return out
}

// Get returns the instance with the given id.
func (c *Canvas) Get(id uuid.UUID) (Instance, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.instances[i], true
	}
	return Instance{}, false
}

// Place creates an instance of kind with its top-left corner at (x, y),
// clamped into the canvas, reading its inputs from src.
func (c *Canvas) Place(kind logic.Kind, x, y float64, src InputSource) (Instance, error) {
	if !kind.Valid() {
		return Instance{}, NewValidationError("kind", fmt.Sprintf("%d is not a gate kind", uint8(kind)), ErrInvalidKind)
	}

	c.nextSeq++
	inst := Instance{
		ID:       uuid.New(),
		Kind:     kind,
		Position: clamp(Point{X: x, Y: y}, c.bounds, c.footprint),
		Seq:      c.nextSeq,
	}
	inst.rebind(c.wiring, src)
	c.instances = append(c.instances, inst)
	return inst, nil
}

// BeginPlacement picks kind from the palette. A later CompletePlacement
// drops it; picking again replaces the pending kind.
func (c *Canvas) BeginPlacement(kind logic.Kind) error {
	if !kind.Valid() {
		return NewValidationError("kind", fmt.Sprintf("%d is not a gate kind", uint8(kind)), ErrInvalidKind)
	}
	c.pending = kind
	c.hasPending = true
	return nil
}

// Pending returns the kind picked by BeginPlacement, if any.
func (c *Canvas) Pending() (logic.Kind, bool) {
	return c.pending, c.hasPending
}

// CancelPlacement drops the pending kind without placing anything.
func (c *Canvas) CancelPlacement() {
	c.hasPending = false
}

// CompletePlacement drops the pending gate centred on the canvas-local
// point p. Without a pending gate the drop is ignored and ok is false.
func (c *Canvas) CompletePlacement(p Point, src InputSource) (inst Instance, ok bool) {
	if !c.hasPending {
		return Instance{}, false
	}
	kind := c.pending
	c.hasPending = false

	inst, err := c.Place(kind, p.X-c.footprint.Width/2, p.Y-c.footprint.Height/2, src)
	if err != nil {
		return Instance{}, false
	}
	return inst, true
}

// Move repositions an instance, clamped into the canvas.
func (c *Canvas) Move(id uuid.UUID, x, y float64) (Instance, error) {
	i := c.indexOf(id)
	if i < 0 {
		return Instance{}, fmt.Errorf("%w: %s", ErrInstanceNotFound, id)
	}
	c.instances[i].Position = clamp(Point{X: x, Y: y}, c.bounds, c.footprint)
	return c.instances[i], nil
}

// Remove deletes the instance with id. Removing an unknown id is a no-op;
// the result reports whether anything was removed.
func (c *Canvas) Remove(id uuid.UUID) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.instances = append(c.instances[:i], c.instances[i+1:]...)
	return true
}

// Clear removes every instance.
func (c *Canvas) Clear() {
	c.instances = c.instances[:0]
}

// Reinputs recomputes the inputs and output of every instance from src.
// Kinds and positions are unchanged.
func (c *Canvas) Reinputs(src InputSource) {
	for i := range c.instances {
		c.instances[i].rebind(c.wiring, src)
	}
}

// Output returns the circuit output shown to the learner, which is the
// output of the most recently placed instance. ok is false on an empty canvas.
func (c *Canvas) Output() (out bool, ok bool) {
	if len(c.instances) == 0 {
		return false, false
	}
	return c.instances[len(c.instances)-1].output, true
}

// Clone returns a deep copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	cp := *c
	cp.instances = c.Instances()
	return &cp
}

func (c *Canvas) indexOf(id uuid.UUID) int {
	for i := range c.instances {
		if c.instances[i].ID == id {
			return i
		}
	}
	return -1
}
