// Package sandbox is the application service over learner sessions.
//
// Every operation loads a session from the store, applies one domain
// gesture while holding that session's lock, records the change time,
// emits a SandboxEvent and returns a Snapshot. A Snapshot is a plain copy
// that can be serialized or rendered without touching the live session.
package sandbox
