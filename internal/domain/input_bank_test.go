package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputBankToggle(t *testing.T) {
	bank := NewInputBank(InputA, InputB)
	assert.Equal(t, []InputName{InputA, InputB}, bank.Names())
	assert.False(t, bank.Get(InputA))

	next, err := bank.Toggle(InputA)
	require.NoError(t, err)
	assert.True(t, next.Get(InputA))
	assert.False(t, bank.Get(InputA), "toggle returns a new bank")

	back, err := next.Toggle(InputA)
	require.NoError(t, err)
	assert.Equal(t, bank, back)
}

func TestInputBankUndeclared(t *testing.T) {
	bank := NewInputBank(InputA, InputB)
	assert.False(t, bank.Has(InputC))

	_, err := bank.Toggle(InputC)
	assert.ErrorIs(t, err, ErrUnknownInput)
	assert.False(t, bank.Get(InputC))

	_, err = bank.Toggle("Z")
	assert.ErrorIs(t, err, ErrUnknownInput)
}

func TestInputBankJSON(t *testing.T) {
	bank := NewInputBank(InputA, InputB, InputC)
	bank, _ = bank.Toggle(InputC)

	data, err := json.Marshal(bank)
	require.NoError(t, err)
	assert.JSONEq(t, `{"A":false,"B":false,"C":true}`, string(data))
}

func TestParseInputName(t *testing.T) {
	name, err := ParseInputName("c")
	require.NoError(t, err)
	assert.Equal(t, InputC, name)

	_, err = ParseInputName("D")
	assert.ErrorIs(t, err, ErrUnknownInput)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "input", verr.Field)
}

func TestCombinations(t *testing.T) {
	two := Combinations(InputA, InputB)
	assert.Equal(t, []Combination{
		{A: false, B: false},
		{A: false, B: true},
		{A: true, B: false},
		{A: true, B: true},
	}, two)

	three := Combinations(InputC, InputA, InputB)
	require.Len(t, three, 8)
	assert.Equal(t, Combination{A: false, B: false, C: true}, three[1])
	assert.Equal(t, Combination{A: true, B: true, C: true}, three[7])

	assert.Equal(t, []Combination{{}}, Combinations())
}

func TestCombinationString(t *testing.T) {
	assert.Equal(t, "A=1 B=0 C=1", Combination{A: true, C: true}.String())
}
