package standards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codesweep/internal/review"
)

func TestUnknownIdentifierIgnored(t *testing.T) {
	r := NewRegistry()

	findings := r.RunStandards([]string{"does-not-exist"}, "a.go", "package a")

	assert.Empty(t, findings, "unknown standard ids are silently skipped")
}

func TestErrorHandlingChecker(t *testing.T) {
	r := NewRegistry()
	content := "package a\n\nfunc f() {\n\t_ = doWork()\n}\n"

	findings := r.RunStandards([]string{"error-handling"}, "a.go", content)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "discarded-error", f.Rule)
	assert.Equal(t, "standard:error-handling", f.Tool)
	assert.Equal(t, review.CategoryStandards, f.Category)
	assert.Equal(t, 4, f.Line)
}

func TestEmptyCatchChecker(t *testing.T) {
	r := NewRegistry()
	content := "try { risky(); } catch (e) {}\n"

	findings := r.RunStandards([]string{"error-handling"}, "a.ts", content)

	require.Len(t, findings, 1)
	assert.Equal(t, "empty-catch", findings[0].Rule)
}

func TestMethodologyToolPrefix(t *testing.T) {
	r := NewRegistry()

	findings := r.RunMethodologies([]string{"tdd"}, "handler.go", "package h\n\nfunc Serve() {}\n")

	require.Len(t, findings, 1)
	assert.Equal(t, "methodology:tdd", findings[0].Tool)
	assert.Equal(t, review.CategoryMethodology, findings[0].Category)
}

func TestTDDSkipsTestFiles(t *testing.T) {
	r := NewRegistry()

	findings := r.RunMethodologies([]string{"tdd"}, "handler_test.go", "package h")

	assert.Empty(t, findings)
}

func TestCheckersAreOrderInsensitive(t *testing.T) {
	r := NewRegistry()
	content := "func do_work() {}\n\t_ = run()\n"

	ab := r.RunStandards([]string{"error-handling", "naming"}, "a.go", content)
	ba := r.RunStandards([]string{"naming", "error-handling"}, "a.go", content)

	assert.ElementsMatch(t, ab, ba)
}

func TestRegisterCustomStandard(t *testing.T) {
	r := NewRegistry()
	r.RegisterStandard("team-rule", func(path, content string) []review.Finding {
		return []review.Finding{{Rule: "custom", Severity: review.SeverityLow, File: path, Line: 1}}
	})

	findings := r.RunStandards([]string{"team-rule"}, "x.go", "")

	require.Len(t, findings, 1)
	assert.Equal(t, "standard:team-rule", findings[0].Tool)
}

func TestDocumentationChecker(t *testing.T) {
	r := NewRegistry()
	content := "package a\n\n// Documented does work.\nfunc Documented() {}\n\nfunc Exported() {}\n"

	findings := r.RunMethodologies([]string{"documentation"}, "a.go", content)

	require.Len(t, findings, 1)
	assert.Equal(t, "missing-doc-comment", findings[0].Rule)
	assert.Equal(t, 6, findings[0].Line)
}
