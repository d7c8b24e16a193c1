package scanner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codesweep/internal/review"
)

// shellScanner builds an available descriptor that fakes a tool by
// running a shell snippet.
func shellScanner(name, script string, exitCodes []int, parse ParseFunc) Descriptor {
	return Descriptor{
		Name:      name,
		Command:   "sh",
		BuildArgs: func(path string) []string { return []string{"-c", script} },
		Timeout:   10 * time.Second,
		ExitCodes: exitCodes,
		Parse:     parse,
		Available: true,
	}
}

const devskimSample = `[{"rule_id":"DS1","severity":"critical","start_line":4}]`

func TestScanAllMergesInRegistrationOrder(t *testing.T) {
	reg := NewRegistry([]Descriptor{
		shellScanner("one", `printf '[{"rule_id":"A","severity":"moderate","start_line":2}]'`, []int{0}, ParseDevSkim),
		shellScanner("two", `printf '[{"rule_id":"B","severity":"critical","start_line":9}]'`, []int{0}, ParseDevSkim),
	})
	r := NewRunner(reg, nil)

	findings, errs := r.ScanAll(context.Background(), "a.go")

	assert.Empty(t, errs)
	require.Len(t, findings, 2)
	assert.Equal(t, "A", findings[0].Rule, "merge follows registration order, not completion order")
	assert.Equal(t, "B", findings[1].Rule)
}

func TestScanAllIsolatesFailures(t *testing.T) {
	reg := NewRegistry([]Descriptor{
		shellScanner("broken", "exit 42", []int{0, 1}, ParseDevSkim),
		shellScanner("healthy", "printf '"+devskimSample+"'", []int{0}, ParseDevSkim),
	})
	r := NewRunner(reg, nil)

	findings, errs := r.ScanAll(context.Background(), "a.go")

	require.Len(t, findings, 1, "healthy scanner findings survive the sibling failure")
	assert.Equal(t, "DS1", findings[0].Rule)
	require.Len(t, errs, 1)
	assert.Equal(t, "broken", errs[0].Scanner)
	assert.Contains(t, errs[0].Message, "exit code 42")
}

func TestScanAllAcceptsToolSpecificExitCodes(t *testing.T) {
	// DevSkim-style tools encode the finding count in their exit status.
	reg := NewRegistry([]Descriptor{
		shellScanner("counts", "printf '"+devskimSample+"'; exit 3", []int{0, 1, 2, 3, 4, 5}, ParseDevSkim),
	})
	r := NewRunner(reg, nil)

	findings, errs := r.ScanAll(context.Background(), "a.go")

	assert.Empty(t, errs)
	require.Len(t, findings, 1)
	assert.Equal(t, review.SeverityCritical, findings[0].Severity)
}

func TestScanAllRejectsUnexpectedExitCode(t *testing.T) {
	reg := NewRegistry([]Descriptor{
		shellScanner("strict", "printf '"+devskimSample+"'; exit 3", []int{0, 1}, ParseDevSkim),
	})
	r := NewRunner(reg, nil)

	findings, errs := r.ScanAll(context.Background(), "a.go")

	assert.Empty(t, findings, "unexpected exit discards output even if parsable")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "unexpected exit code 3")
}

func TestScanAllTimeout(t *testing.T) {
	slow := shellScanner("slow", "sleep 5", []int{0}, ParseDevSkim)
	slow.Timeout = 100 * time.Millisecond
	reg := NewRegistry([]Descriptor{
		slow,
		shellScanner("fast", "printf '"+devskimSample+"'", []int{0}, ParseDevSkim),
	})
	r := NewRunner(reg, nil)

	start := time.Now()
	findings, errs := r.ScanAll(context.Background(), "a.go")

	require.Len(t, findings, 1, "fast scanner completes despite sibling timeout")
	require.Len(t, errs, 1)
	assert.Equal(t, "slow", errs[0].Scanner)
	assert.Contains(t, errs[0].Message, "timed out")
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestScanAllRequestTimeoutCapsScanners(t *testing.T) {
	// The per-scanner timeout is generous; the request-level bound is
	// what cancels the invocation.
	slow := shellScanner("slow", "sleep 5", []int{0}, ParseDevSkim)
	slow.Timeout = 10 * time.Second
	reg := NewRegistry([]Descriptor{slow})
	r := NewRunner(reg, nil)
	r.RequestTimeout = 100 * time.Millisecond

	start := time.Now()
	findings, errs := r.ScanAll(context.Background(), "a.go")

	assert.Empty(t, findings)
	require.Len(t, errs, 1)
	assert.Equal(t, "slow", errs[0].Scanner)
	assert.Contains(t, errs[0].Message, "timed out")
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestScanAllMalformedOutput(t *testing.T) {
	reg := NewRegistry([]Descriptor{
		shellScanner("garbled", "printf 'not-json'", []int{0}, ParseDevSkim),
	})
	r := NewRunner(reg, nil)

	findings, errs := r.ScanAll(context.Background(), "a.go")

	assert.Empty(t, findings)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "parsing output")
}

func TestScanAllNoAvailableScanners(t *testing.T) {
	unavailable := shellScanner("off", "printf '[]'", []int{0}, ParseDevSkim)
	unavailable.Available = false
	reg := NewRegistry([]Descriptor{unavailable})
	r := NewRunner(reg, nil)

	findings, errs := r.ScanAll(context.Background(), "a.go")

	assert.Empty(t, findings)
	assert.Empty(t, errs)
}

func TestScanDropsErrors(t *testing.T) {
	reg := NewRegistry([]Descriptor{
		shellScanner("broken", "exit 9", []int{0}, ParseDevSkim),
		shellScanner("healthy", "printf '"+devskimSample+"'", []int{0}, ParseDevSkim),
	})
	r := NewRunner(reg, nil)

	findings := r.Scan(context.Background(), "a.go")

	require.Len(t, findings, 1)
	assert.Equal(t, "DS1", findings[0].Rule)
}
