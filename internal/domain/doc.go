// Package domain contains the core entities of the sandbox: placed gate
// instances, the canvas that owns them, the input bank that feeds them,
// challenges and their results, and the session that ties a learner's
// modes together. It is independent of any transport or storage.
//
// Nothing in this package is safe for concurrent use. A session is a
// single-threaded state machine; callers serialize gestures on it.
package domain
