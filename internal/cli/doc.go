// Package cli implements the cobra command tree for codesweep: review,
// scanners, config, and version, with deterministic exit codes for CI
// gating.
package cli
