package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/domain/logic"
)

func TestDefaultCatalog(t *testing.T) {
	cat, err := DefaultCatalog()
	require.NoError(t, err)

	list := cat.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{list[0].ID, list[1].ID, list[2].ID})

	first := list[0]
	assert.Equal(t, "A AND B", first.Target)
	assert.Equal(t, domain.DifficultyEasy, first.Difficulty)
	assert.Equal(t, []domain.InputName{domain.InputA, domain.InputB}, first.Inputs)
	assert.Equal(t, domain.ScoringLastGate, first.Scoring)
	assert.False(t, first.Completed)

	third, err := cat.Get("3")
	require.NoError(t, err)
	assert.Equal(t, "(A AND B) OR (NOT C)", third.Target)
	assert.Equal(t, domain.DifficultyMedium, third.Difficulty)
	assert.Equal(t, domain.InputC, third.NotInput)
	assert.Equal(t, domain.ScoringKindPattern, third.Scoring)
	require.Len(t, third.Requirements, 3)
	assert.Equal(t, []logic.Kind{logic.AND, logic.OR, logic.NOT},
		[]logic.Kind{third.Requirements[0].Kind, third.Requirements[1].Kind, third.Requirements[2].Kind})
	assert.Contains(t, third.Description, "C is FALSE")

	_, err = cat.Get("99")
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestLoadCatalogRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "challenges: [\n"},
		{"empty", "challenges: []"},
		{"unknown target", `
challenges:
  - id: x
    title: t
    description: d
    target: A XOR B
    difficulty: Easy
    inputs: [A, B]
    scoring: last_gate
`},
		{"bad difficulty", `
challenges:
  - id: x
    title: t
    description: d
    target: A AND B
    difficulty: Trivial
    inputs: [A, B]
    scoring: last_gate
`},
		{"unknown input", `
challenges:
  - id: x
    title: t
    description: d
    target: A AND B
    difficulty: Easy
    inputs: [A, D]
    scoring: last_gate
`},
		{"not input undeclared", `
challenges:
  - id: x
    title: t
    description: d
    target: A AND B
    difficulty: Easy
    inputs: [A, B]
    not_input: C
    scoring: last_gate
`},
		{"unknown requirement kind", `
challenges:
  - id: x
    title: t
    description: d
    target: A AND B
    difficulty: Easy
    inputs: [A, B]
    scoring: last_gate
    requirements:
      - kind: MUX
        message: m
`},
		{"duplicate id", `
challenges:
  - id: x
    title: t
    description: d
    target: A AND B
    difficulty: Easy
    inputs: [A, B]
    scoring: last_gate
  - id: x
    title: t
    description: d
    target: A OR B
    difficulty: Easy
    inputs: [A, B]
    scoring: last_gate
`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cat, err := LoadCatalog([]byte(tc.yaml))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
			assert.Nil(t, cat)
		})
	}
}

func TestLoadCatalogDefaultsNotInput(t *testing.T) {
	cat, err := LoadCatalog([]byte(`
challenges:
  - id: x
    title: t
    description: d
    target: A OR B
    difficulty: Hard
    inputs: [A, B]
    scoring: last_gate
`))
	require.NoError(t, err)
	ch, err := cat.Get("x")
	require.NoError(t, err)
	assert.Equal(t, domain.InputA, ch.NotInput)
}
