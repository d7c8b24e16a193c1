// Package scanner probes, invokes, and normalizes external analysis
// tools.
//
// Descriptors declare each tool's invocation arguments, timeout,
// acceptable exit codes, and output parser. Probe builds an immutable
// availability snapshot once at startup; Runner then fans requests out
// to every available scanner concurrently, waits for all outcomes, and
// merges the successful findings in registration order. A single
// scanner failing, timing out, or emitting garbage is logged and
// contributes nothing; it never disturbs its siblings or the request.
package scanner
