package scanner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Synthetic exit codes for failures that never produced a real one,
// following shell conventions.
const (
	exitTimeout  = 124
	exitNotFound = 127
)

// execResult holds one subprocess invocation outcome.
type execResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// runCommand executes a command under the given context, capturing
// output, duration, and exit code. Timeout and missing-binary failures
// are reported through the synthetic exit codes above.
func runCommand(ctx context.Context, name string, args []string) (execResult, error) {
	start := time.Now()
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := execResult{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = 1
		}
		if ctx.Err() == context.DeadlineExceeded {
			res.ExitCode = exitTimeout
		} else if errors.Is(err, exec.ErrNotFound) {
			res.ExitCode = exitNotFound
		}
	}

	return res, err
}
