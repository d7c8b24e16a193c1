package scanner

import (
	"time"

	"github.com/dshills/codesweep/internal/review"
)

// ParseFunc maps one tool's raw output plus the reviewed file path into
// normalized findings. A parse failure returns an error and no findings;
// it never panics.
type ParseFunc func(raw []byte, path string) ([]review.Finding, error)

// Descriptor describes one external scanner. Descriptors are built once
// at startup; Available is set during the probe and the descriptor is
// read-only afterwards.
type Descriptor struct {
	Name      string
	Command   string
	ProbeArgs []string
	BuildArgs func(path string) []string
	Timeout   time.Duration

	// ExitCodes is the per-tool set of acceptable exit codes. Tools
	// disagree about what their exit status means: DevSkim encodes the
	// finding count in it, Semgrep uses 1 for "findings present", CodeQL
	// reserves nonzero for real failures. Any code outside the set is a
	// scanner-level error, not a finding count.
	ExitCodes []int

	Parse     ParseFunc
	Available bool
}

func (d Descriptor) acceptsExit(code int) bool {
	for _, c := range d.ExitCodes {
		if c == code {
			return true
		}
	}
	return false
}

// DefaultTimeout applies to descriptors constructed without one.
const DefaultTimeout = 30 * time.Second

// Defaults returns the descriptors for the integrated scanners, in the
// registration order used for deterministic merging.
func Defaults() []Descriptor {
	return []Descriptor{
		{
			Name:      "devskim",
			Command:   "devskim",
			ProbeArgs: []string{"--version"},
			BuildArgs: func(path string) []string {
				return []string{"analyze", "--source-code", path, "-f", "json", "-o", "stdout"}
			},
			Timeout:   DefaultTimeout,
			ExitCodes: []int{0, 1, 2, 3, 4, 5},
			Parse:     ParseDevSkim,
		},
		{
			Name:      "semgrep",
			Command:   "semgrep",
			ProbeArgs: []string{"--version"},
			BuildArgs: func(path string) []string {
				return []string{"scan", "--config", "auto", "--json", "--quiet", path}
			},
			Timeout:   60 * time.Second,
			ExitCodes: []int{0, 1},
			Parse:     ParseSemgrep,
		},
		{
			Name:      "codeql",
			Command:   "codeql",
			ProbeArgs: []string{"version", "--format=json"},
			BuildArgs: func(path string) []string {
				return []string{"database", "analyze", "--format=sarif-latest", "--output=-", path}
			},
			Timeout:   120 * time.Second,
			ExitCodes: []int{0},
			Parse:     ParseCodeQL,
		},
	}
}
