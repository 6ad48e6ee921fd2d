package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tekmux/gatelab/internal/domain/logic"
)

var testBounds = Size{Width: 800, Height: 400}

func newTestCanvas() *Canvas {
	return NewCanvas(testBounds, DefaultFootprint, DefaultWiring)
}

func TestCanvasPlaceComputesOutput(t *testing.T) {
	c := newTestCanvas()
	bank := NewInputBank(InputA, InputB)
	bank, err := bank.Toggle(InputA)
	require.NoError(t, err)

	and, err := c.Place(logic.AND, 10, 10, bank)
	require.NoError(t, err)
	nand, err := c.Place(logic.NAND, 10, 10, bank)
	require.NoError(t, err)
	not, err := c.Place(logic.NOT, 10, 10, bank)
	require.NoError(t, err)

	assert.False(t, and.Output(), "AND(1,0)")
	assert.True(t, nand.Output(), "NAND(1,0)")
	assert.False(t, not.Output(), "NOT reads A")
	assert.Equal(t, []bool{true, false}, and.Inputs().Values())
	assert.Equal(t, []bool{true}, not.Inputs().Values())

	assert.NotEqual(t, and.ID, nand.ID)
	assert.Less(t, and.Seq, nand.Seq)
	assert.Equal(t, 3, c.Len())
}

func TestCanvasPlaceRejectsInvalidKind(t *testing.T) {
	c := newTestCanvas()
	_, err := c.Place(logic.Kind(17), 0, 0, NewInputBank(InputA, InputB))
	assert.ErrorIs(t, err, ErrInvalidKind)
	assert.Equal(t, 0, c.Len())
}

func TestCanvasPlacementClamping(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		expect Point
	}{
		{"inside", 120, 80, Point{120, 80}},
		{"negative", -50, -1, Point{0, 0}},
		{"past right and bottom", 5000, 5000, Point{700, 340}},
		{"on the far edge", 800, 400, Point{700, 340}},
		{"mixed", -10, 390, Point{0, 340}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestCanvas()
			inst, err := c.Place(logic.OR, tc.x, tc.y, NewInputBank(InputA, InputB))
			require.NoError(t, err)
			assert.Equal(t, tc.expect, inst.Position)
			assert.GreaterOrEqual(t, inst.Position.X, 0.0)
			assert.LessOrEqual(t, inst.Position.X+DefaultFootprint.Width, testBounds.Width)
			assert.GreaterOrEqual(t, inst.Position.Y, 0.0)
			assert.LessOrEqual(t, inst.Position.Y+DefaultFootprint.Height, testBounds.Height)
		})
	}
}

func TestCanvasSmallerThanFootprint(t *testing.T) {
	c := NewCanvas(Size{Width: 50, Height: 20}, DefaultFootprint, DefaultWiring)
	inst, err := c.Place(logic.AND, 30, 30, NewInputBank(InputA, InputB))
	require.NoError(t, err)
	assert.Equal(t, Point{0, 0}, inst.Position)
}

func TestCanvasRemoveIsIdempotent(t *testing.T) {
	c := newTestCanvas()
	bank := NewInputBank(InputA, InputB)
	keep, _ := c.Place(logic.AND, 0, 0, bank)
	gone, _ := c.Place(logic.OR, 0, 0, bank)

	assert.True(t, c.Remove(gone.ID))
	after := c.Instances()

	assert.False(t, c.Remove(gone.ID), "second remove is a no-op")
	assert.Equal(t, after, c.Instances())
	assert.False(t, c.Remove(uuid.New()))

	require.Len(t, after, 1)
	assert.Equal(t, keep.ID, after[0].ID)
}

func TestCanvasClear(t *testing.T) {
	c := newTestCanvas()
	bank := NewInputBank(InputA, InputB)
	_, _ = c.Place(logic.AND, 0, 0, bank)
	_, _ = c.Place(logic.XOR, 0, 0, bank)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Output()
	assert.False(t, ok)
}

func TestCanvasReinputs(t *testing.T) {
	c := newTestCanvas()
	bank := NewInputBank(InputA, InputB)
	bank, _ = bank.Toggle(InputB)

	and1, _ := c.Place(logic.AND, 10, 20, bank)
	and2, _ := c.Place(logic.AND, 300, 200, bank)
	require.False(t, and1.Output())

	bank, err := bank.Toggle(InputA)
	require.NoError(t, err)
	c.Reinputs(bank)

	for _, inst := range c.Instances() {
		assert.Equal(t, logic.AND, inst.Kind)
		assert.True(t, inst.Output(), "AND(1,1) after toggling A")
		assert.True(t, inst.Inputs().At(1), "B stays true")
		assert.Equal(t, logic.Evaluate(inst.Kind, inst.Inputs()), inst.Output())
	}

	moved, _ := c.Get(and2.ID)
	assert.Equal(t, and2.Position, moved.Position, "reinputs leaves positions alone")
}

func TestCanvasPickAndPlace(t *testing.T) {
	c := newTestCanvas()
	bank := NewInputBank(InputA, InputB)

	_, ok := c.CompletePlacement(Point{X: 100, Y: 100}, bank)
	assert.False(t, ok, "drop without a picked gate is ignored")
	assert.Equal(t, 0, c.Len())

	require.NoError(t, c.BeginPlacement(logic.XOR))
	kind, pending := c.Pending()
	assert.True(t, pending)
	assert.Equal(t, logic.XOR, kind)

	inst, ok := c.CompletePlacement(Point{X: 400, Y: 200}, bank)
	require.True(t, ok)
	assert.Equal(t, logic.XOR, inst.Kind)
	assert.Equal(t, Point{X: 350, Y: 170}, inst.Position, "gate is centred on the drop point")

	_, pending = c.Pending()
	assert.False(t, pending, "a drop consumes the picked gate")

	_, ok = c.CompletePlacement(Point{X: 400, Y: 200}, bank)
	assert.False(t, ok)

	require.NoError(t, c.BeginPlacement(logic.NOT))
	c.CancelPlacement()
	_, ok = c.CompletePlacement(Point{X: 1, Y: 1}, bank)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	assert.ErrorIs(t, c.BeginPlacement(logic.Kind(9)), ErrInvalidKind)
}

func TestCanvasPickAndPlaceClampsDrop(t *testing.T) {
	c := newTestCanvas()
	require.NoError(t, c.BeginPlacement(logic.AND))
	inst, ok := c.CompletePlacement(Point{X: 10, Y: 395}, NewInputBank(InputA, InputB))
	require.True(t, ok)
	assert.Equal(t, Point{X: 0, Y: 340}, inst.Position)
}

func TestCanvasMove(t *testing.T) {
	c := newTestCanvas()
	inst, _ := c.Place(logic.NOR, 0, 0, NewInputBank(InputA, InputB))

	moved, err := c.Move(inst.ID, 900, 15)
	require.NoError(t, err)
	assert.Equal(t, Point{X: 700, Y: 15}, moved.Position)
	assert.Equal(t, inst.Output(), moved.Output())

	_, err = c.Move(uuid.New(), 1, 1)
	assert.ErrorIs(t, err, ErrInstanceNotFound)
}

func TestCanvasOutputIsLastPlaced(t *testing.T) {
	c := newTestCanvas()
	bank := NewInputBank(InputA, InputB)
	_, ok := c.Output()
	assert.False(t, ok)

	_, _ = c.Place(logic.AND, 0, 0, bank)
	out, ok := c.Output()
	require.True(t, ok)
	assert.False(t, out)

	nor, _ := c.Place(logic.NOR, 0, 0, bank)
	out, _ = c.Output()
	assert.True(t, out, "NOR(0,0) is the last gate")

	c.Remove(nor.ID)
	out, _ = c.Output()
	assert.False(t, out)
}

func TestCanvasCloneIsIndependent(t *testing.T) {
	c := newTestCanvas()
	bank := NewInputBank(InputA, InputB)
	inst, _ := c.Place(logic.AND, 0, 0, bank)

	cp := c.Clone()
	c.Remove(inst.ID)
	_, _ = c.Place(logic.OR, 0, 0, bank)

	require.Equal(t, 1, cp.Len())
	assert.Equal(t, inst.ID, cp.Instances()[0].ID)
}

func TestCanvasZeroFootprintDefaults(t *testing.T) {
	c := NewCanvas(testBounds, Size{}, DefaultWiring)
	assert.Equal(t, DefaultFootprint, c.Footprint())
}
