// Package config loads and merges codesweep configuration from the
// platform config directory, environment variables, and CLI flag
// overrides, in that order of increasing precedence.
package config
