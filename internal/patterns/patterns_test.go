package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codesweep/internal/review"
)

func TestCommandInjectionPattern(t *testing.T) {
	content := `bash -c "echo $USER_INPUT"`

	findings := NewSet().Match("deploy.sh", content)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "command-injection", f.Rule)
	assert.Equal(t, review.SeverityCritical, f.Severity)
	assert.Equal(t, review.ToolPattern, f.Tool)
	assert.Equal(t, 1, f.Line)
	assert.Equal(t, "deploy.sh", f.File)
}

func TestPatternLineNumbers(t *testing.T) {
	content := "line one\nline two\napiKey = \"supersecretvalue\"\n"

	findings := NewSet().Match("conf.py", content)

	require.Len(t, findings, 1)
	assert.Equal(t, "hardcoded-secret", findings[0].Rule)
	assert.Equal(t, 3, findings[0].Line)
}

func TestExtensionApplicability(t *testing.T) {
	content := "const x: any = load()"

	tsFindings := NewSet().Match("api.ts", content)
	goFindings := NewSet().Match("api.go", content)

	require.Len(t, tsFindings, 1)
	assert.Equal(t, "no-any", tsFindings[0].Rule)
	assert.Empty(t, goFindings, "no-any applies only to TypeScript files")
}

func TestSkipTestsApplicability(t *testing.T) {
	content := `password = "not-a-real-secret"`

	prod := NewSet().Match("db.py", content)
	test := NewSet().Match("db.spec.py", content)

	require.Len(t, prod, 1)
	assert.Equal(t, "hardcoded-secret", prod[0].Rule)
	assert.Empty(t, test, "secret pattern skips test files")
}

func TestMatchIsPure(t *testing.T) {
	content := "eval(input)\n"
	set := NewSet()

	first := set.Match("a.js", content)
	second := set.Match("a.js", content)

	assert.Equal(t, first, second)
}

func TestMatchColumnIsOneBased(t *testing.T) {
	findings := NewSet().Match("a.js", "  eval(x)")

	require.Len(t, findings, 1)
	assert.Equal(t, 3, findings[0].Column)
}

func TestNewSetWithExtraPatterns(t *testing.T) {
	base := NewSet()
	extended := NewSet(Pattern{
		ID:       "custom",
		Severity: review.SeverityLow,
		Regexp:   mustCompile(t, "custom-marker"),
	})

	assert.Equal(t, base.Len()+1, extended.Len())

	findings := extended.Match("x.txt", "custom-marker here")
	require.Len(t, findings, 1)
	assert.Equal(t, "custom", findings[0].Rule)
}
