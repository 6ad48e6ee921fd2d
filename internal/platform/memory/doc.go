// Package memory provides an in-process implementation of
// store.SessionStore. Sessions live in a map, idle sessions expire after a
// configurable TTL and a background janitor sweeps expired entries.
package memory
