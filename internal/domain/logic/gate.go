package logic

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a gate kind name is not recognized.
var ErrUnknownKind = errors.New("unknown gate kind")

// Kind represents the type of a logic gate.
type Kind uint8

const (
	AND Kind = iota
	OR
	NOT
	NAND
	NOR
	XOR
)

// kindInfo is the static palette metadata of a gate kind.
type kindInfo struct {
	name        string
	glyph       string
	description string
	arity       int
}

var kindTable = [...]kindInfo{
	AND:  {"AND", "&", "Output is TRUE only when all inputs are TRUE", 2},
	OR:   {"OR", "|", "Output is TRUE when at least one input is TRUE", 2},
	NOT:  {"NOT", "!", "Output is the opposite of the input", 1},
	NAND: {"NAND", "⊼", "Output is FALSE only when all inputs are TRUE", 2},
	NOR:  {"NOR", "⊽", "Output is FALSE when at least one input is TRUE", 2},
	XOR:  {"XOR", "⊕", "Output is TRUE when inputs are different", 2},
}

// Kinds returns every gate kind in palette order.
func Kinds() []Kind {
	return []Kind{AND, OR, NOT, NAND, NOR, XOR}
}

// Valid reports whether k is one of the six gate kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindTable)
}

// String returns the upper-case name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindTable[k].name
}

// Glyph returns the short textual symbol used in the palette.
func (k Kind) Glyph() string {
	if !k.Valid() {
		return "?"
	}
	return kindTable[k].glyph
}

// Description returns the learner-facing description of the kind.
func (k Kind) Description() string {
	if !k.Valid() {
		return ""
	}
	return kindTable[k].description
}

// Arity returns the number of inputs the kind takes: 1 for NOT, 2 otherwise.
func (k Kind) Arity() int {
	if !k.Valid() {
		return 0
	}
	return kindTable[k].arity
}

// Unary reports whether the kind takes a single input.
func (k Kind) Unary() bool {
	return k.Arity() == 1
}

// ParseKind converts a case-insensitive name such as "nand" into a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, info := range kindTable {
		if info.name == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Inputs holds the operand values of one gate. The zero value holds no
// operands; use Kind.Bind to build one.
type Inputs struct {
	n      uint8
	values [2]bool
}

// Bind builds the inputs of a gate of kind k. Unary kinds keep only first;
// binary kinds keep both values in order.
func (k Kind) Bind(first, second bool) Inputs {
	if k.Unary() {
		return Inputs{n: 1, values: [2]bool{first}}
	}
	return Inputs{n: 2, values: [2]bool{first, second}}
}

// Len returns the number of operands.
func (in Inputs) Len() int {
	return int(in.n)
}

// At returns operand i. It panics if i is out of range, like a slice would.
func (in Inputs) At(i int) bool {
	if i < 0 || i >= int(in.n) {
		// ALLOW-PANIC: index out of range is a programming error
		panic(fmt.Sprintf("logic: input index %d out of range [0:%d]", i, in.n))
	}
	return in.values[i]
}

// Values returns the operands as a fresh slice.
func (in Inputs) Values() []bool {
	out := make([]bool, in.n)
	copy(out, in.values[:in.n])
	return out
}

// Evaluate computes the output of a gate of kind k for the given inputs.
// Unary kinds read the first operand only.
func Evaluate(k Kind, in Inputs) bool {
	a, b := in.values[0], in.values[1]
	switch k {
	case AND:
		return a && b
	case OR:
		return a || b
	case NOT:
		return !a
	case NAND:
		return !(a && b)
	case NOR:
		return !(a || b)
	case XOR:
		return a != b
	default:
		return false
	}
}
