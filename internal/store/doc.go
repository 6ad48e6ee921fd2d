// Package store defines the session persistence boundary. Sandbox state is
// never written to disk; implementations keep sessions for as long as they
// are in use and forget them afterwards.
package store
