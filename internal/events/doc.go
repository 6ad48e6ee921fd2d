// Package events carries sandbox activity from the session service to any
// interested observer.
//
// The session service emits one SandboxEvent per successful gesture. It
// does not know who listens: the metrics recorder and the audit logger are
// registered as handlers at startup. Emission is synchronous and a failing
// handler never aborts the gesture that produced the event.
//
// The primary components are:
// - SandboxEvent: one recorded gesture with a typed JSON payload
// - EventHandler: interface for components that consume events
// - EventEmitter: interface for components that publish events
package events
