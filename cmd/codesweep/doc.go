// Codesweep is a CLI that aggregates automated code review sources
// (an in-process pattern matcher, pluggable standards and methodology
// checkers, and external security scanners such as DevSkim, Semgrep,
// and CodeQL) into one normalized, deduplicated, severity-ranked
// result with structured remediation guidance.
//
// Usage:
//
//	codesweep review main.go                      # patterns + available scanners
//	codesweep review api.ts --standards error-handling
//	codesweep review api.ts --no-external         # in-process checks only
//	codesweep scanners                            # probe and list scanner availability
//	codesweep config init                         # write default config
//
// Scanners that are missing, failing, or timing out degrade to zero
// findings; the review still completes from the remaining sources.
package main
