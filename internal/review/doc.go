// Package review contains the core types and coordinator for aggregated
// code review.
//
// It defines the Finding, Report, and Severity types, merges findings
// from the in-process pattern matcher, the pluggable standards checkers,
// and the external scanner orchestrator, then deduplicates them by
// (file, line, rule) and sorts them by severity and line for a
// deterministic result.
//
// The coordinator (coordinator.go) drives one request end to end. It
// accepts its collaborators as interfaces so the scanner fan-out and the
// file reader can be replaced in tests; only request-level failures
// surface as errors, while per-scanner failures merely reduce the
// finding set.
package review
