package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// InputName identifies one of the named boolean inputs.
type InputName string

const (
	InputA InputName = "A"
	InputB InputName = "B"
	InputC InputName = "C"
)

var inputOrder = [...]InputName{InputA, InputB, InputC}

// ParseInputName converts a case-insensitive name into an InputName.
func ParseInputName(s string) (InputName, error) {
	name := InputName(strings.ToUpper(strings.TrimSpace(s)))
	if name.index() < 0 {
		return "", NewValidationError("input", fmt.Sprintf("%q is not one of A, B, C", s), ErrUnknownInput)
	}
	return name, nil
}

func (n InputName) index() int {
	for i, name := range inputOrder {
		if name == n {
			return i
		}
	}
	return -1
}

// InputSource supplies the value of a named input.
type InputSource interface {
	Get(name InputName) bool
}

// InputBank holds the current value of each declared input. It is a value
// type: Toggle returns a new bank and leaves the receiver unchanged, so a
// bank can be observed independently of any canvas it feeds.
type InputBank struct {
	declared [len(inputOrder)]bool
	values   [len(inputOrder)]bool
}

// NewInputBank declares the given inputs, all false. Unknown names are ignored.
func NewInputBank(names ...InputName) InputBank {
	var b InputBank
	for _, n := range names {
		if i := n.index(); i >= 0 {
			b.declared[i] = true
		}
	}
	return b
}

// Has reports whether name is declared.
func (b InputBank) Has(name InputName) bool {
	i := name.index()
	return i >= 0 && b.declared[i]
}

// Get returns the value of name. Undeclared inputs read as false.
func (b InputBank) Get(name InputName) bool {
	i := name.index()
	return i >= 0 && b.declared[i] && b.values[i]
}

// Names returns the declared inputs in A, B, C order.
func (b InputBank) Names() []InputName {
	names := make([]InputName, 0, len(inputOrder))
	for i, n := range inputOrder {
		if b.declared[i] {
			names = append(names, n)
		}
	}
	return names
}

// Toggle flips name and returns the new bank.
func (b InputBank) Toggle(name InputName) (InputBank, error) {
	if !b.Has(name) {
		return b, NewValidationError("input", fmt.Sprintf("%q is not declared here", name), ErrUnknownInput)
	}
	i := name.index()
	b.values[i] = !b.values[i]
	return b, nil
}

// Values returns the declared inputs and their values.
func (b InputBank) Values() map[InputName]bool {
	out := make(map[InputName]bool, len(inputOrder))
	for i, n := range inputOrder {
		if b.declared[i] {
			out[n] = b.values[i]
		}
	}
	return out
}

// MarshalJSON encodes the bank as an object of declared inputs.
func (b InputBank) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Values())
}

// Combination returns the bank's values as a combination.
func (b InputBank) Combination() Combination {
	return Combination{A: b.Get(InputA), B: b.Get(InputB), C: b.Get(InputC)}
}

// Combination is one assignment of values to A, B and C.
type Combination struct {
	A bool `json:"A"`
	B bool `json:"B"`
	C bool `json:"C"`
}

// Get implements InputSource.
func (c Combination) Get(name InputName) bool {
	switch name {
	case InputA:
		return c.A
	case InputB:
		return c.B
	case InputC:
		return c.C
	default:
		return false
	}
}

// String renders the combination as "A=1 B=0 C=0".
func (c Combination) String() string {
	bit := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	return fmt.Sprintf("A=%d B=%d C=%d", bit(c.A), bit(c.B), bit(c.C))
}

// Combinations enumerates every assignment of the given inputs, counting
// upward with A as the most significant bit. Inputs not listed stay false.
func Combinations(names ...InputName) []Combination {
	active := make([]InputName, 0, len(inputOrder))
	for _, n := range inputOrder {
		for _, want := range names {
			if want == n {
				active = append(active, n)
				break
			}
		}
	}

	total := 1 << len(active)
	out := make([]Combination, 0, total)
	for bits := 0; bits < total; bits++ {
		var c Combination
		for i, n := range active {
			set := bits&(1<<(len(active)-1-i)) != 0
			switch n {
			case InputA:
				c.A = set
			case InputB:
				c.B = set
			case InputC:
				c.C = set
			}
		}
		out = append(out, c)
	}
	return out
}
