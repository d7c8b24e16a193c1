package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/codesweep/internal/config"
	"github.com/dshills/codesweep/internal/guidance"
	"github.com/dshills/codesweep/internal/logging"
	"github.com/dshills/codesweep/internal/output"
	"github.com/dshills/codesweep/internal/patterns"
	"github.com/dshills/codesweep/internal/review"
	"github.com/dshills/codesweep/internal/scanner"
	"github.com/dshills/codesweep/internal/standards"
)

var (
	flagStandards     string
	flagMethodologies string
	flagNoExternal    bool
	flagFormat        string
	flagOut           string
	flagFailOn        string
	flagPatterns      string
	flagTimeoutMs     int
	flagDebug         bool
)

var reviewCmd = &cobra.Command{
	Use:   "review <file>",
	Short: "Review a file with patterns, standards, and external scanners",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runReview(args[0])
	},
}

func init() {
	reviewCmd.Flags().StringVar(&flagStandards, "standards", "", "Standard checker ids to run (comma-separated)")
	reviewCmd.Flags().StringVar(&flagMethodologies, "methodologies", "", "Methodology checker ids to run (comma-separated)")
	reviewCmd.Flags().BoolVar(&flagNoExternal, "no-external", false, "Skip external scanners")
	reviewCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown, sarif)")
	reviewCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	reviewCmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Fail on severity threshold (none, info, low, medium, high, critical)")
	reviewCmd.Flags().StringVar(&flagPatterns, "patterns", "", "YAML pattern pack path")
	reviewCmd.Flags().IntVar(&flagTimeoutMs, "timeout", 0, "Request-level scanner timeout in milliseconds")
	reviewCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	if flagNoExternal {
		m["noExternal"] = "true"
	}
	if flagStandards != "" {
		m["standards"] = flagStandards
	}
	if flagMethodologies != "" {
		m["methodologies"] = flagMethodologies
	}
	if flagPatterns != "" {
		m["patternsFile"] = flagPatterns
	}
	if flagTimeoutMs > 0 {
		m["requestTimeoutMs"] = fmt.Sprintf("%d", flagTimeoutMs)
	}
	if flagDebug {
		m["debug"] = "true"
	}
	return m
}

func runReview(file string) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	log, err := logging.New(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	defer log.Sync() //nolint:errcheck // stderr sync failure is harmless

	extra, err := patterns.LoadPack(cfg.PatternsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	ctx := context.Background()
	coordinator := buildCoordinator(ctx, cfg, extra, log)

	report, err := coordinator.Run(ctx, review.Request{
		File:            file,
		IncludeExternal: cfg.ExternalScanners,
		Standards:       cfg.Standards,
		Methodologies:   cfg.Methodologies,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if cfg.FailOn != "none" && cfg.FailOn != "" {
		for _, f := range report.Findings {
			if review.MeetsThreshold(f.Severity, cfg.FailOn) {
				exitCode = ExitFindings
				return
			}
		}
	}
}

// buildCoordinator wires the concrete pipeline: pattern set, standards
// registry, probed scanner registry, and guidance catalog.
func buildCoordinator(ctx context.Context, cfg config.Config, extra []patterns.Pattern, log *zap.SugaredLogger) *review.Coordinator {
	coordinator := &review.Coordinator{
		Patterns: patterns.NewSet(extra...),
		Checks:   standards.NewRegistry(),
		Guidance: guidance.NewCatalog(),
		Log:      log,
	}

	if cfg.ExternalScanners {
		registry := scanner.Probe(ctx, descriptorsFromConfig(cfg), log)
		runner := scanner.NewRunner(registry, log)
		if cfg.RequestTimeoutMs > 0 {
			runner.RequestTimeout = time.Duration(cfg.RequestTimeoutMs) * time.Millisecond
		}
		coordinator.Scanner = runner
	}

	return coordinator
}

// descriptorsFromConfig filters the default scanner set down to the
// configured names and applies per-scanner timeout overrides.
func descriptorsFromConfig(cfg config.Config) []scanner.Descriptor {
	enabled := make(map[string]bool, len(cfg.Scanners))
	for _, name := range cfg.Scanners {
		enabled[name] = true
	}

	var descriptors []scanner.Descriptor
	for _, d := range scanner.Defaults() {
		if len(enabled) > 0 && !enabled[d.Name] {
			continue
		}
		if ms, ok := cfg.ScannerTimeoutMs[d.Name]; ok && ms > 0 {
			d.Timeout = time.Duration(ms) * time.Millisecond
		}
		descriptors = append(descriptors, d)
	}
	return descriptors
}
