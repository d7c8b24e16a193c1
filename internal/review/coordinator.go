package review

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request describes one file to review.
type Request struct {
	File            string   `json:"file"`
	Content         string   `json:"content,omitempty"`
	IncludeExternal bool     `json:"includeExternal,omitempty"`
	Standards       []string `json:"standards,omitempty"`
	Methodologies   []string `json:"methodologies,omitempty"`
}

// FileReader supplies file content when a request omits it.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// OSFileReader reads files from the local filesystem.
type OSFileReader struct{}

func (OSFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// PatternMatcher runs in-process lexical rules over file content.
type PatternMatcher interface {
	Match(path, content string) []Finding
}

// ChecksRunner dispatches selected standard and methodology identifiers
// to their registered checkers. Unknown identifiers are ignored.
type ChecksRunner interface {
	RunStandards(ids []string, path, content string) []Finding
	RunMethodologies(ids []string, path, content string) []Finding
}

// ExternalScanner fans out to the available external scanner processes
// and returns the merged findings from the ones that succeeded.
type ExternalScanner interface {
	Scan(ctx context.Context, path string) []Finding
}

// GuidanceBuilder derives remediation guidance from the final sorted
// finding list.
type GuidanceBuilder interface {
	Build(findings []Finding) *Guidance
}

// Coordinator assembles a review result from the pattern matcher, the
// standards checkers, and the external scanners. Pattern and standards
// checks run synchronously; external scanning runs concurrently inside
// the injected scanner. The coordinator owns no cross-request state.
type Coordinator struct {
	Patterns PatternMatcher
	Checks   ChecksRunner
	Scanner  ExternalScanner // nil disables external scanning
	Guidance GuidanceBuilder
	Reader   FileReader // nil means read from the local filesystem
	Log      *zap.SugaredLogger
}

// Run executes a full review of one file. Only request-level failures
// (missing file path, unreadable content) return an error; individual
// scanner failures degrade to fewer findings.
func (c *Coordinator) Run(ctx context.Context, req Request) (*Report, error) {
	startTime := time.Now()
	log := c.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	if req.File == "" {
		return nil, fmt.Errorf("review request: file path is required")
	}

	content := req.Content
	if content == "" {
		reader := c.Reader
		if reader == nil {
			reader = OSFileReader{}
		}
		data, err := reader.ReadFile(req.File)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", req.File, err)
		}
		content = string(data)
	}

	var all []Finding

	if c.Patterns != nil {
		all = append(all, c.Patterns.Match(req.File, content)...)
	}
	if c.Checks != nil {
		all = append(all, c.Checks.RunStandards(req.Standards, req.File, content)...)
		all = append(all, c.Checks.RunMethodologies(req.Methodologies, req.File, content)...)
	}
	checksMs := time.Since(startTime).Milliseconds()

	var scanMs int64
	if req.IncludeExternal && c.Scanner != nil {
		scanStart := time.Now()
		all = append(all, c.Scanner.Scan(ctx, req.File)...)
		scanMs = time.Since(scanStart).Milliseconds()
	}

	// A missing line keeps ordering total: unknown collapses to line 1.
	for i := range all {
		if all[i].Line < 1 {
			all[i].Line = 1
		}
	}

	findings := Aggregate(all)
	log.Debugw("review aggregated", "file", req.File, "findings", len(findings))

	report := &Report{
		Tool:     "codesweep",
		Version:  "1.0",
		RunID:    uuid.NewString(),
		File:     req.File,
		Findings: findings,
		Summary:  ComputeSummary(findings),
		Timing: Timing{
			ChecksMs: checksMs,
			ScanMs:   scanMs,
			TotalMs:  time.Since(startTime).Milliseconds(),
		},
	}

	if c.Guidance != nil {
		report.Guidance = c.Guidance.Build(findings)
	}

	return report, nil
}
