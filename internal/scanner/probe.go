package scanner

import (
	"context"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// probeTimeout bounds each availability check.
const probeTimeout = 5 * time.Second

// Registry is the immutable availability snapshot produced by Probe.
// It is shared read-only across concurrent requests; re-probing builds
// a whole new Registry rather than mutating this one.
type Registry struct {
	descriptors []Descriptor
}

// NewRegistry wraps pre-probed descriptors, preserving their order.
// Tests use it to inject fake scanners.
func NewRegistry(descriptors []Descriptor) *Registry {
	ds := make([]Descriptor, len(descriptors))
	copy(ds, descriptors)
	return &Registry{descriptors: ds}
}

// All returns every registered descriptor in registration order.
func (r *Registry) All() []Descriptor {
	ds := make([]Descriptor, len(r.descriptors))
	copy(ds, r.descriptors)
	return ds
}

// Available returns the descriptors whose probe succeeded, in
// registration order.
func (r *Registry) Available() []Descriptor {
	var ds []Descriptor
	for _, d := range r.descriptors {
		if d.Available {
			ds = append(ds, d)
		}
	}
	return ds
}

// Probe checks each descriptor's executable once and returns the
// resulting snapshot. A scanner is available only when its binary is on
// PATH and its probe invocation exits zero; every probe failure is
// logged, never returned.
func Probe(ctx context.Context, descriptors []Descriptor, log *zap.SugaredLogger) *Registry {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	probed := make([]Descriptor, len(descriptors))
	for i, d := range descriptors {
		probed[i] = d
		probed[i].Available = false

		if _, err := exec.LookPath(d.Command); err != nil {
			log.Debugw("scanner not found", "scanner", d.Name, "command", d.Command)
			continue
		}

		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		res, err := runCommand(probeCtx, d.Command, d.ProbeArgs)
		cancel()

		if err != nil || res.ExitCode != 0 {
			log.Warnw("scanner probe failed",
				"scanner", d.Name, "exitCode", res.ExitCode, "error", err)
			continue
		}

		probed[i].Available = true
		log.Infow("scanner available", "scanner", d.Name)
	}

	return &Registry{descriptors: probed}
}
