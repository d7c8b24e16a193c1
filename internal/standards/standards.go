// Package standards dispatches selected standard and methodology
// identifiers to registered checker functions. Dispatch goes through a
// lookup table rather than a branch chain, so adding a standard means
// adding a registry entry. Unknown identifiers are ignored, which keeps
// standard selection decoupled from the coordinator.
package standards

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/codesweep/internal/review"
)

// Checker produces findings for one standard or methodology. The tool
// field is filled in by the registry; checkers leave it empty.
type Checker func(path, content string) []review.Finding

// Registry maps identifiers to checkers. A Registry is populated at
// startup and read-only afterwards.
type Registry struct {
	standards     map[string]Checker
	methodologies map[string]Checker
}

// NewRegistry returns a Registry with the built-in checkers installed.
func NewRegistry() *Registry {
	r := &Registry{
		standards:     make(map[string]Checker),
		methodologies: make(map[string]Checker),
	}
	r.RegisterStandard("error-handling", checkErrorHandling)
	r.RegisterStandard("input-validation", checkInputValidation)
	r.RegisterStandard("naming", checkNaming)
	r.RegisterMethodology("tdd", checkTDD)
	r.RegisterMethodology("documentation", checkDocumentation)
	return r
}

// RegisterStandard installs a checker under a standard identifier.
func (r *Registry) RegisterStandard(id string, c Checker) {
	r.standards[id] = c
}

// RegisterMethodology installs a checker under a methodology identifier.
func (r *Registry) RegisterMethodology(id string, c Checker) {
	r.methodologies[id] = c
}

// RunStandards runs the checkers for the selected standard ids.
// Identifiers with no registered checker are silently skipped.
func (r *Registry) RunStandards(ids []string, path, content string) []review.Finding {
	return r.run(r.standards, "standard", review.CategoryStandards, ids, path, content)
}

// RunMethodologies runs the checkers for the selected methodology ids.
func (r *Registry) RunMethodologies(ids []string, path, content string) []review.Finding {
	return r.run(r.methodologies, "methodology", review.CategoryMethodology, ids, path, content)
}

func (r *Registry) run(table map[string]Checker, kind string, cat review.Category, ids []string, path, content string) []review.Finding {
	var findings []review.Finding
	for _, id := range ids {
		c, ok := table[id]
		if !ok {
			continue
		}
		for _, f := range c(path, content) {
			f.Tool = fmt.Sprintf("%s:%s", kind, id)
			if f.Category == "" {
				f.Category = cat
			}
			findings = append(findings, f)
		}
	}
	return findings
}

var (
	ignoredErrRe   = regexp.MustCompile(`(?:^|[^A-Za-z0-9_])_\s*(?:,\s*_\s*)?=\s*[A-Za-z_][A-Za-z0-9_.]*\(`)
	emptyCatchRe   = regexp.MustCompile(`catch\s*(\([^)]*\))?\s*\{\s*\}`)
	parseNoCheckRe = regexp.MustCompile(`(?i)(parseint|parsefloat|atoi)\s*\([^)]*\)`)
)

// checkErrorHandling flags discarded errors and swallowed exceptions.
func checkErrorHandling(path, content string) []review.Finding {
	var findings []review.Finding
	for i, line := range strings.Split(content, "\n") {
		if ignoredErrRe.MatchString(line) {
			findings = append(findings, review.Finding{
				Severity:   review.SeverityMedium,
				Rule:       "discarded-error",
				Message:    "Return value discarded with blank identifier",
				File:       path,
				Line:       i + 1,
				Suggestion: "Handle or explicitly log the error",
			})
		}
		if emptyCatchRe.MatchString(line) {
			findings = append(findings, review.Finding{
				Severity:   review.SeverityMedium,
				Rule:       "empty-catch",
				Message:    "Empty catch block swallows the exception",
				File:       path,
				Line:       i + 1,
				Suggestion: "Handle the exception or rethrow it",
			})
		}
	}
	return findings
}

// checkInputValidation flags numeric parsing with no visible error path.
func checkInputValidation(path, content string) []review.Finding {
	var findings []review.Finding
	for i, line := range strings.Split(content, "\n") {
		if parseNoCheckRe.MatchString(line) && !strings.Contains(line, "err") &&
			!strings.Contains(line, "try") && !strings.Contains(line, "isNaN") {
			findings = append(findings, review.Finding{
				Severity:   review.SeverityLow,
				Rule:       "unchecked-parse",
				Message:    "Numeric parse result used without validation",
				File:       path,
				Line:       i + 1,
				Suggestion: "Check the parse result before using it",
			})
		}
	}
	return findings
}

var snakeFuncRe = regexp.MustCompile(`\bfunc\s+[a-z0-9]+_[a-z0-9_]+\s*\(`)

// checkNaming flags Go function names that use snake_case.
func checkNaming(path, content string) []review.Finding {
	if !strings.HasSuffix(path, ".go") {
		return nil
	}
	var findings []review.Finding
	for i, line := range strings.Split(content, "\n") {
		if snakeFuncRe.MatchString(line) {
			findings = append(findings, review.Finding{
				Severity:   review.SeverityLow,
				Rule:       "snake-case-func",
				Message:    "Function name uses snake_case; Go uses MixedCaps",
				File:       path,
				Line:       i + 1,
				Suggestion: "Rename using MixedCaps",
			})
		}
	}
	return findings
}

// checkTDD reminds that non-test source should have a test counterpart.
// It can only reason about the reviewed file itself, so the check is a
// single informational finding on files that contain no test markers.
func checkTDD(path, content string) []review.Finding {
	if strings.Contains(path, "_test.") || strings.Contains(path, ".test.") ||
		strings.Contains(path, ".spec.") {
		return nil
	}
	if strings.Contains(content, "func Test") || strings.Contains(content, "describe(") ||
		strings.Contains(content, "it(") {
		return nil
	}
	return []review.Finding{{
		Severity:   review.SeverityInfo,
		Rule:       "missing-tests",
		Message:    "No test markers found for this file",
		File:       path,
		Line:       1,
		Suggestion: "Add a test file covering the public behavior",
	}}
}

// checkDocumentation flags exported Go declarations without doc comments.
func checkDocumentation(path, content string) []review.Finding {
	if !strings.HasSuffix(path, ".go") {
		return nil
	}
	var findings []review.Finding
	lines := strings.Split(content, "\n")
	exportedRe := regexp.MustCompile(`^(func|type)\s+[A-Z]`)
	for i, line := range lines {
		if !exportedRe.MatchString(line) {
			continue
		}
		if i > 0 && strings.HasPrefix(strings.TrimSpace(lines[i-1]), "//") {
			continue
		}
		findings = append(findings, review.Finding{
			Severity:   review.SeverityInfo,
			Rule:       "missing-doc-comment",
			Message:    "Exported declaration has no doc comment",
			File:       path,
			Line:       i + 1,
			Suggestion: "Add a doc comment starting with the declaration name",
		})
	}
	return findings
}
