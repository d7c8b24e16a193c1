// Package patterns implements the in-process lexical rule matcher.
//
// A fixed set of built-in regex patterns scans file content line by
// line, each pattern carrying a category, a severity, and an
// applicability predicate over the file path (extension filters and
// test-file exclusion). Users can extend the set with a YAML pattern
// pack loaded via LoadPack.
package patterns
