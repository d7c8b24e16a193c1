package patterns

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codesweep/internal/review"
)

func mustCompile(t *testing.T, expr string) *regexp.Regexp {
	t.Helper()
	re, err := regexp.Compile(expr)
	require.NoError(t, err)
	return re
}

func TestLoadPackEmptyPath(t *testing.T) {
	ps, err := LoadPack("")
	require.NoError(t, err)
	assert.Nil(t, ps)
}

func TestLoadPackValid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	content := `patterns:
  - id: internal-url
    category: security
    severity: high
    message: Internal URL committed to source
    regex: internal\.corp\.example
    extensions: [".go", ".ts"]
    skipTests: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ps, err := LoadPack(path)

	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "internal-url", ps[0].ID)
	assert.Equal(t, review.SeverityHigh, ps[0].Severity)
	assert.True(t, ps[0].SkipTests)
	assert.True(t, ps[0].Regexp.MatchString("https://internal.corp.example/x"))
}

func TestLoadPackUnknownSeverityDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	content := `patterns:
  - id: odd
    severity: catastrophic
    regex: x
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ps, err := LoadPack(path)

	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, review.SeverityMedium, ps[0].Severity)
}

func TestLoadPackBadRegex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	content := `patterns:
  - id: broken
    regex: "((("
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadPack(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestLoadPackMissingID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte("patterns:\n  - regex: x\n"), 0o644))

	_, err := LoadPack(path)
	require.Error(t, err)
}

func TestLoadPackNotFound(t *testing.T) {
	_, err := LoadPack("/nonexistent/patterns.yaml")
	require.Error(t, err)
}
