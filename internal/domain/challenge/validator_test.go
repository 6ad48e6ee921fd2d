package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/domain/logic"
)

// circuit places kinds in order on a fresh canvas wired for ch.
func circuit(t *testing.T, ch domain.Challenge, kinds ...logic.Kind) []domain.Instance {
	t.Helper()
	canvas := domain.NewCanvas(domain.Size{Width: 800, Height: 384}, domain.DefaultFootprint, ch.Wiring())
	bank := domain.NewInputBank(ch.Inputs...)
	for i, k := range kinds {
		_, err := canvas.Place(k, float64(i*40), 10, bank)
		require.NoError(t, err)
	}
	return canvas.Instances()
}

func mustGet(t *testing.T, id string) domain.Challenge {
	t.Helper()
	cat, err := DefaultCatalog()
	require.NoError(t, err)
	ch, err := cat.Get(id)
	require.NoError(t, err)
	return ch
}

func TestValidatorCheck(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name        string
		challenge   string
		kinds       []logic.Kind
		correct     bool
		message     string
		failingCase *domain.Combination
	}{
		{
			name:      "empty circuit",
			challenge: "1",
			message:   MsgEmptyCircuit,
		},
		{
			name:      "AND solves challenge 1",
			challenge: "1",
			kinds:     []logic.Kind{logic.AND},
			correct:   true,
			message:   MsgCorrect,
		},
		{
			name:        "OR fails challenge 1 at A=0 B=1",
			challenge:   "1",
			kinds:       []logic.Kind{logic.OR},
			message:     MsgIncorrect + MsgRetry,
			failingCase: &domain.Combination{A: false, B: true},
		},
		{
			name:      "last placed gate decides challenge 2",
			challenge: "2",
			kinds:     []logic.Kind{logic.AND, logic.OR},
			correct:   true,
			message:   MsgCorrect,
		},
		{
			name:        "NOR fails challenge 2 on all false",
			challenge:   "2",
			kinds:       []logic.Kind{logic.NOR},
			message:     MsgIncorrect + MsgRetry,
			failingCase: &domain.Combination{},
		},
		{
			name:      "AND OR NOT solves challenge 3",
			challenge: "3",
			kinds:     []logic.Kind{logic.AND, logic.OR, logic.NOT},
			correct:   true,
			message:   MsgCorrect,
		},
		{
			name:      "order does not matter for challenge 3",
			challenge: "3",
			kinds:     []logic.Kind{logic.NOT, logic.AND, logic.OR},
			correct:   true,
			message:   MsgCorrect,
		},
		{
			name:        "missing NOT in challenge 3",
			challenge:   "3",
			kinds:       []logic.Kind{logic.AND, logic.OR},
			message:     MsgIncorrect + "You need a NOT gate for (NOT C).",
			failingCase: &domain.Combination{},
		},
		{
			name:        "lone AND in challenge 3",
			challenge:   "3",
			kinds:       []logic.Kind{logic.AND},
			message:     MsgIncorrect + "You need an OR gate to combine the results.",
			failingCase: &domain.Combination{},
		},
		{
			name:      "extra gates still match the pattern",
			challenge: "3",
			kinds:     []logic.Kind{logic.AND, logic.OR, logic.NOT, logic.XOR},
			correct:   true,
			message:   MsgCorrect,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ch := mustGet(t, tc.challenge)
			got := v.Check(ch, circuit(t, ch, tc.kinds...))

			assert.Equal(t, tc.correct, got.Correct)
			assert.Equal(t, tc.message, got.Message)
			assert.Equal(t, tc.failingCase, got.FailingCase)
			assert.False(t, got.Stale)
		})
	}
}

func TestValidatorNotReadsChallengeInput(t *testing.T) {
	ch := mustGet(t, "3")
	ch.Scoring = domain.ScoringLastGate

	// A lone NOT reads C, so it is only wrong where A and B are both true
	// and C is true.
	got := NewValidator().Check(ch, circuit(t, ch, logic.NOT))
	require.False(t, got.Correct)
	require.NotNil(t, got.FailingCase)
	assert.Equal(t, domain.Combination{A: true, B: true, C: true}, *got.FailingCase)
}

func TestValidatorFallbackMessage(t *testing.T) {
	ch := mustGet(t, "3")
	ch.Scoring = domain.ScoringLastGate

	// Every requirement is met, yet the last gate alone is not the target.
	got := NewValidator().Check(ch, circuit(t, ch, logic.AND, logic.NOT, logic.OR))
	assert.False(t, got.Correct)
	assert.Equal(t, MsgIncorrect+ch.Fallback, got.Message)
}
