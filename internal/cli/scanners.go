package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/codesweep/internal/config"
	"github.com/dshills/codesweep/internal/logging"
	"github.com/dshills/codesweep/internal/scanner"
)

var scannersCmd = &cobra.Command{
	Use:   "scanners",
	Short: "List registered external scanners and their availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(nil)
		if err != nil {
			return err
		}
		log, err := logging.New(cfg.Debug)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		registry := scanner.Probe(context.Background(), descriptorsFromConfig(cfg), log)
		for _, d := range registry.All() {
			status := "unavailable"
			if d.Available {
				status = "available"
			}
			fmt.Fprintf(os.Stdout, "%-10s %-12s timeout=%s exits=%v\n",
				d.Name, status, d.Timeout, d.ExitCodes)
		}
		return nil
	},
}
