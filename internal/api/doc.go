// Package api serves the sandbox over HTTP. Handlers decode and validate
// JSON requests, call the sandbox service and map its errors to status
// codes with sanitized messages.
package api
