package scanner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/codesweep/internal/review"
)

// ScanError records one failed scanner invocation. Failures are
// absorbed, not propagated: a failed scanner contributes zero findings
// while its siblings complete normally.
type ScanError struct {
	Scanner string
	Message string
}

func (e ScanError) Error() string {
	return fmt.Sprintf("%s: %s", e.Scanner, e.Message)
}

// Runner fans a review request out to every available scanner. One
// Runner is built per process against the probed registry snapshot and
// shared by concurrent requests.
type Runner struct {
	registry *Registry
	log      *zap.SugaredLogger

	// RequestTimeout bounds the whole fan-out. Zero means the sum of
	// the available scanners' individual timeouts.
	RequestTimeout time.Duration
}

// NewRunner creates a Runner over a probed registry.
func NewRunner(registry *Registry, log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{registry: registry, log: log}
}

// Scan implements review.ExternalScanner. Scanner-level errors are
// logged and dropped; callers that need them use ScanAll.
func (r *Runner) Scan(ctx context.Context, path string) []review.Finding {
	findings, errs := r.ScanAll(ctx, path)
	for _, e := range errs {
		r.log.Warnw("scanner failed", "scanner", e.Scanner, "error", e.Message)
	}
	return findings
}

// ScanAll launches every available scanner concurrently and waits for
// all outcomes. Findings from successful invocations are merged in
// registration order, so the result is deterministic for a fixed set of
// scanner outputs. Each invocation runs under its own timeout; a timed
// out or failed scanner yields a ScanError and nothing else.
func (r *Runner) ScanAll(ctx context.Context, path string) ([]review.Finding, []ScanError) {
	available := r.registry.Available()
	if len(available) == 0 {
		return nil, nil
	}

	timeout := r.RequestTimeout
	if timeout == 0 {
		for _, d := range available {
			timeout += d.scanTimeout()
		}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		findings []review.Finding
		err      *ScanError
	}
	outcomes := make([]outcome, len(available))

	g := new(errgroup.Group)
	for i, d := range available {
		i, d := i, d
		g.Go(func() error {
			findings, err := r.invoke(ctx, d, path)
			if err != nil {
				outcomes[i] = outcome{err: &ScanError{Scanner: d.Name, Message: err.Error()}}
				return nil
			}
			outcomes[i] = outcome{findings: findings}
			return nil
		})
	}
	// Goroutines never return errors; the group is the all-outcomes join.
	_ = g.Wait()

	var findings []review.Finding
	var errs []ScanError
	for _, o := range outcomes {
		if o.err != nil {
			errs = append(errs, *o.err)
			continue
		}
		findings = append(findings, o.findings...)
	}
	return findings, errs
}

// invoke runs one scanner against the file and normalizes its output.
func (r *Runner) invoke(ctx context.Context, d Descriptor, path string) ([]review.Finding, error) {
	runCtx, cancel := context.WithTimeout(ctx, d.scanTimeout())
	defer cancel()

	// An acceptable nonzero exit is not an error here: several tools
	// signal "findings present" through their exit status.
	res, _ := runCommand(runCtx, d.Command, d.BuildArgs(path))
	switch {
	case res.ExitCode == exitTimeout:
		return nil, fmt.Errorf("timed out after %s", d.scanTimeout())
	case res.ExitCode == exitNotFound:
		return nil, fmt.Errorf("executable %q not found", d.Command)
	case !d.acceptsExit(res.ExitCode):
		return nil, fmt.Errorf("unexpected exit code %d: %s", res.ExitCode, firstLine(res.Stderr))
	}

	findings, perr := d.Parse(res.Stdout, path)
	if perr != nil {
		return nil, fmt.Errorf("parsing output: %w", perr)
	}
	r.log.Debugw("scanner completed",
		"scanner", d.Name, "findings", len(findings), "duration", res.Duration)
	return findings, nil
}

func (d Descriptor) scanTimeout() time.Duration {
	if d.Timeout > 0 {
		return d.Timeout
	}
	return DefaultTimeout
}

func firstLine(b []byte) string {
	for i, c := range b {
		if c == '\n' {
			return string(b[:i])
		}
	}
	return string(b)
}
