package patterns

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dshills/codesweep/internal/review"
)

// Pattern is one lexical rule evaluated line by line against file
// content. Multi-line constructs are out of scope; a pattern either
// matches a single line or it does not match at all.
type Pattern struct {
	ID         string
	Category   review.Category
	Severity   review.Severity
	Message    string
	Suggestion string
	Regexp     *regexp.Regexp

	// Extensions limits the pattern to files with one of these
	// extensions (with leading dot). Empty means all files.
	Extensions []string
	// SkipTests excludes files that look like test files.
	SkipTests bool
}

// AppliesTo reports whether the pattern should run against the file.
func (p Pattern) AppliesTo(path string) bool {
	if p.SkipTests && isTestFile(path) {
		return false
	}
	if len(p.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range p.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func isTestFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(base, "_test.go") ||
		strings.Contains(base, ".test.") ||
		strings.Contains(base, ".spec.") ||
		strings.HasPrefix(base, "test_")
}

// Set is a fixed collection of patterns shared read-only across
// requests.
type Set struct {
	patterns []Pattern
}

// NewSet returns a Set containing the built-in patterns plus any extras.
func NewSet(extra ...Pattern) *Set {
	ps := make([]Pattern, 0, len(builtins)+len(extra))
	ps = append(ps, builtins...)
	ps = append(ps, extra...)
	return &Set{patterns: ps}
}

// Len returns the number of registered patterns.
func (s *Set) Len() int { return len(s.patterns) }

// Match scans every line of content against every applicable pattern
// and returns one finding per matching line. It is a pure function of
// (patterns, content, path).
func (s *Set) Match(path, content string) []review.Finding {
	var findings []review.Finding
	lines := strings.Split(content, "\n")

	for _, p := range s.patterns {
		if !p.AppliesTo(path) {
			continue
		}
		for i, line := range lines {
			loc := p.Regexp.FindStringIndex(line)
			if loc == nil {
				continue
			}
			findings = append(findings, review.Finding{
				Severity:   p.Severity,
				Rule:       p.ID,
				Message:    p.Message,
				File:       path,
				Line:       i + 1,
				Column:     loc[0] + 1,
				Suggestion: p.Suggestion,
				Tool:       review.ToolPattern,
				Category:   p.Category,
			})
		}
	}
	return findings
}

// builtins are regex heuristics for common source-level problems.
var builtins = []Pattern{
	{
		ID:         "command-injection",
		Category:   review.CategorySecurity,
		Severity:   review.SeverityCritical,
		Message:    "Possible command injection: shell command built from interpolated input",
		Suggestion: "Pass arguments as a list and avoid shell interpolation of untrusted values",
		Regexp:     regexp.MustCompile(`(?i)(exec|system|popen|spawn|bash\s+-c|sh\s+-c)[^\n]*["'][^"']*\$\{?[A-Za-z_]`),
	},
	{
		ID:         "eval-usage",
		Category:   review.CategorySecurity,
		Severity:   review.SeverityHigh,
		Message:    "Use of eval on dynamic input",
		Suggestion: "Replace eval with explicit parsing or a safe dispatch table",
		Regexp:     regexp.MustCompile(`\beval\s*\(`),
		Extensions: []string{".js", ".ts", ".jsx", ".tsx", ".py", ".rb", ".php"},
	},
	{
		ID:         "hardcoded-secret",
		Category:   review.CategorySecurity,
		Severity:   review.SeverityCritical,
		Message:    "Possible hardcoded secret in source",
		Suggestion: "Move secrets to environment variables or a secret manager",
		Regexp:     regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password|passwd)\s*[:=]\s*["'][^"']{8,}["']`),
		SkipTests:  true,
	},
	{
		ID:         "aws-access-key",
		Category:   review.CategorySecurity,
		Severity:   review.SeverityCritical,
		Message:    "AWS access key ID committed to source",
		Suggestion: "Revoke the key and load credentials from the environment",
		Regexp:     regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	},
	{
		ID:         "sql-injection",
		Category:   review.CategorySecurity,
		Severity:   review.SeverityHigh,
		Message:    "SQL statement concatenated with a variable",
		Suggestion: "Use parameterized queries instead of string concatenation",
		Regexp:     regexp.MustCompile(`(?i)(select|insert|update|delete)\s+[^\n]*["']\s*\+\s*[A-Za-z_]`),
	},
	{
		ID:         "weak-hash",
		Category:   review.CategorySecurity,
		Severity:   review.SeverityMedium,
		Message:    "Weak hash algorithm (MD5/SHA-1)",
		Suggestion: "Use SHA-256 or stronger for anything security sensitive",
		Regexp:     regexp.MustCompile(`(?i)\b(md5|sha1)\s*\(|crypto/(md5|sha1)`),
	},
	{
		ID:         "insecure-http",
		Category:   review.CategorySecurity,
		Severity:   review.SeverityMedium,
		Message:    "Plain HTTP URL in source",
		Suggestion: "Prefer https:// endpoints",
		Regexp:     regexp.MustCompile(`http://[A-Za-z0-9][^\s"']*`),
		SkipTests:  true,
	},
	{
		ID:         "no-any",
		Category:   review.CategoryLanguage,
		Severity:   review.SeverityLow,
		Message:    "TypeScript 'any' defeats type checking",
		Suggestion: "Replace any with a concrete type or unknown",
		Regexp:     regexp.MustCompile(`:\s*any\b`),
		Extensions: []string{".ts", ".tsx"},
	},
	{
		ID:         "debug-print",
		Category:   review.CategoryLanguage,
		Severity:   review.SeverityInfo,
		Message:    "Debug print statement left in source",
		Suggestion: "Remove the statement or route it through the logger",
		Regexp:     regexp.MustCompile(`\b(console\.log|fmt\.Println|print\()`),
		Extensions: []string{".js", ".ts", ".jsx", ".tsx", ".go", ".py"},
		SkipTests:  true,
	},
	{
		ID:       "todo-comment",
		Category: review.CategoryStandards,
		Severity: review.SeverityInfo,
		Message:  "Unresolved TODO/FIXME comment",
		Regexp:   regexp.MustCompile(`(?i)\b(todo|fixme|hack)\b\s*[:(]`),
	},
}
