package domain

import "github.com/tekmux/gatelab/internal/domain/logic"

// Difficulty grades a challenge.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Scoring selects how a learner's circuit is turned into one output per
// combination.
type Scoring string

const (
	// ScoringLastGate evaluates the most recently placed gate.
	ScoringLastGate Scoring = "last_gate"
	// ScoringKindPattern matches the multiset of placed kinds against the
	// AND/OR/NOT shape of the target and falls back to ScoringLastGate.
	ScoringKindPattern Scoring = "kind_pattern"
)

// Requirement is a gate kind a challenge needs, with the hint shown when
// the learner's circuit lacks it.
type Requirement struct {
	Kind    logic.Kind `json:"kind"`
	Message string     `json:"message"`
}

// Challenge is a read-only target expression a learner builds a circuit for.
type Challenge struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Target       string        `json:"target_expression"`
	Difficulty   Difficulty    `json:"difficulty"`
	Inputs       []InputName   `json:"inputs"`
	NotInput     InputName     `json:"not_input"`
	Scoring      Scoring       `json:"scoring"`
	Requirements []Requirement `json:"requirements,omitempty"`
	Fallback     string        `json:"-"`
	// Completed is carried for display but never written.
	Completed bool `json:"completed"`
}

// Wiring returns how NOT gates read inputs in this challenge.
func (c Challenge) Wiring() Wiring {
	if c.NotInput == "" {
		return DefaultWiring
	}
	return Wiring{Unary: c.NotInput}
}

// Combinations enumerates every assignment of the challenge's inputs.
func (c Challenge) Combinations() []Combination {
	return Combinations(c.Inputs...)
}

// ChallengeResult is the outcome of one check.
type ChallengeResult struct {
	Correct     bool         `json:"correct"`
	Message     string       `json:"message"`
	FailingCase *Combination `json:"failing_case,omitempty"`
	// Stale is set once the circuit or inputs change after the check.
	Stale bool `json:"stale"`
}

// Checker verifies a set of placed gates against a challenge.
type Checker interface {
	Check(ch Challenge, placed []Instance) ChallengeResult
}
