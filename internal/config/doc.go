// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file and GATELAB_ environment variables.
// It provides type-safe access to settings needed by the server, the
// session store and the terminal sandbox.
package config
