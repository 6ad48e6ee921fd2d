package challenge

import (
	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/domain/logic"
)

// Result messages shown to the learner.
const (
	MsgEmptyCircuit = "Please add some gates to your circuit!"
	MsgCorrect      = "Congratulations! Your circuit is correct!"
	MsgIncorrect    = "Not quite right. "
	MsgRetry        = "Try testing different input combinations!"
)

// Validator checks circuits against challenges. It holds no state.
type Validator struct{}

// NewValidator returns a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

var _ domain.Checker = (*Validator)(nil)

// Check evaluates the placed gates against ch for every combination of the
// challenge's inputs and stops at the first mismatch.
func (v *Validator) Check(ch domain.Challenge, placed []domain.Instance) domain.ChallengeResult {
	if len(placed) == 0 {
		return domain.ChallengeResult{Correct: false, Message: MsgEmptyCircuit}
	}

	target, ok := LookupTarget(ch.Target)
	if !ok {
		return domain.ChallengeResult{Correct: false, Message: MsgIncorrect + MsgRetry}
	}

	counts := countKinds(placed)
	for _, combo := range ch.Combinations() {
		expected := target(combo)
		actual := circuitOutput(ch, placed, counts, combo)
		if expected != actual {
			failing := combo
			return domain.ChallengeResult{
				Correct:     false,
				Message:     MsgIncorrect + diagnose(ch, counts),
				FailingCase: &failing,
			}
		}
	}

	return domain.ChallengeResult{Correct: true, Message: MsgCorrect}
}

// circuitOutput is the value the learner's circuit produces for combo.
func circuitOutput(ch domain.Challenge, placed []domain.Instance, counts map[logic.Kind]int, combo domain.Combination) bool {
	if ch.Scoring == domain.ScoringKindPattern {
		hasAnd, hasOr, hasNot := counts[logic.AND] > 0, counts[logic.OR] > 0, counts[logic.NOT] > 0
		switch {
		case hasAnd && hasOr && hasNot:
			return (combo.A && combo.B) || !combo.C
		case hasAnd && hasOr:
			// (A AND B) OR C: the usual mistake of forgetting the inverter.
			return (combo.A && combo.B) || combo.C
		}
	}
	return lastGateOutput(ch, placed, combo)
}

// lastGateOutput evaluates the most recently placed gate under combo.
func lastGateOutput(ch domain.Challenge, placed []domain.Instance, combo domain.Combination) bool {
	last := placed[0]
	for _, inst := range placed[1:] {
		if inst.Seq >= last.Seq {
			last = inst
		}
	}
	return last.EvaluateAt(ch.Wiring(), combo)
}

// diagnose names the first unmet requirement, or falls back to a general hint.
func diagnose(ch domain.Challenge, counts map[logic.Kind]int) string {
	if len(ch.Requirements) == 0 {
		return MsgRetry
	}
	for _, req := range ch.Requirements {
		if counts[req.Kind] == 0 {
			return req.Message
		}
	}
	if ch.Fallback != "" {
		return ch.Fallback
	}
	return MsgRetry
}

func countKinds(placed []domain.Instance) map[logic.Kind]int {
	counts := make(map[logic.Kind]int, len(placed))
	for _, inst := range placed {
		counts[inst.Kind]++
	}
	return counts
}
