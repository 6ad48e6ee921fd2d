// Package logic defines the gate kinds of the sandbox and their boolean
// semantics. Everything here is pure: evaluating a gate or building its
// truth table has no side effects and never fails.
//
// Arity is carried by the Inputs type rather than checked at runtime.
// Inputs can only be built through Kind.Bind, which keeps exactly as many
// operands as the kind takes, so a NOT gate can never be handed two values.
package logic
