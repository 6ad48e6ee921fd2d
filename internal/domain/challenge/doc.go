// Package challenge holds the seeded challenge catalog and the validator
// that checks a learner's circuit against a challenge's target expression.
//
// The validator is exhaustive: it evaluates the target and the circuit for
// every combination of the challenge's inputs and reports the first
// combination on which they disagree. Placed gates are evaluated on their
// own against each combination; their outputs are not wired into each
// other.
package challenge
