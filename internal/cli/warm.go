package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var warmTimeout time.Duration

// warmCmd represents the warm command
var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Pre-extract all corpus documents into the page cache",
	Long: `Warm walks every corpus root and extracts each supported document
into the page cache, so later questions skip PDF parsing entirely.

Run it after adding or updating documents. Unchanged documents are
detected by size and modification time and reuse their cached pages.`,
	RunE: runWarm,
}

func init() {
	rootCmd.AddCommand(warmCmd)

	warmCmd.Flags().DurationVar(&warmTimeout, "timeout", 30*time.Minute, "overall warm timeout")
}

func runWarm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Cache.Enabled {
		return fmt.Errorf("page cache is disabled; enable it before warming")
	}

	logger := newLogger(cfg)
	engine := buildEngine(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()

	start := time.Now()
	warmed, err := engine.Warm(ctx)
	if err != nil {
		return fmt.Errorf("warm failed: %w", err)
	}

	fmt.Printf("Warmed %d documents in %s\n", warmed, time.Since(start).Round(time.Millisecond))
	return nil
}
