package challenge

import "github.com/tekmux/gatelab/internal/domain"

// Target computes the expected output of a target expression.
type Target func(c domain.Combination) bool

// targets maps each supported target expression to its boolean function.
// Expressions are matched literally; there is no expression parser.
var targets = map[string]Target{
	"A AND B": func(c domain.Combination) bool {
		return c.A && c.B
	},
	"A OR B": func(c domain.Combination) bool {
		return c.A || c.B
	},
	"(A AND B) OR (NOT C)": func(c domain.Combination) bool {
		return (c.A && c.B) || !c.C
	},
}

// LookupTarget returns the function for expr.
func LookupTarget(expr string) (Target, bool) {
	t, ok := targets[expr]
	return t, ok
}
