package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/MeKo-Tech/langdetect/internal/batch"
	"github.com/MeKo-Tech/langdetect/internal/config"
	"github.com/spf13/cobra"
)

// batchCmd represents the batch command for parallel text-file processing.
var batchCmd = &cobra.Command{
	Use:   "batch [paths...]",
	Short: "Detect the language of many text files in parallel",
	Long: `Process multiple text files in parallel to detect each file's language.
This command is optimized for processing large text corpora efficiently
using parallel workers, optionally bounded by a goroutine limit
(--max-goroutines). --memory-limit and --memory-threshold are recorded in
the pipeline's resource settings; they do not throttle a running batch.

Examples:
  langdetect batch *.txt
  langdetect batch corpus/ --recursive --workers 8
  langdetect batch corpus/ --format json --output results.json
  langdetect batch corpus/ --progress --memory-limit 256MB`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runBatchCommand,
}

// configToBatchConfig maps centralized configuration to batch.Config.
// CLI flags override config file values through Viper's precedence system.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command) *batch.Config {
	batchConfig := &batch.Config{
		Alpha:         cfg.Detector.Alpha,
		MaxTextLength: cfg.Detector.MaxTextLength,
		Seed:          cfg.Detector.Seed,
		SeedSet:       cfg.Detector.SeedSet,
	}

	batchConfig.Workers = cfg.Batch.Workers
	if cmd.Flags().Changed("workers") {
		batchConfig.Workers, _ = cmd.Flags().GetInt("workers")
	}

	batchConfig.BatchSize, _ = cmd.Flags().GetInt("batch-size")
	batchConfig.MemoryLimitStr, _ = cmd.Flags().GetString("memory-limit")
	batchConfig.MaxGoroutines, _ = cmd.Flags().GetInt("max-goroutines")
	batchConfig.MemoryThreshold, _ = cmd.Flags().GetFloat64("memory-threshold")

	batchConfig.Format = cfg.Batch.Format
	if cmd.Flags().Changed("format") {
		batchConfig.Format, _ = cmd.Flags().GetString("format")
	}
	batchConfig.OutputFile, _ = cmd.Flags().GetString("output")

	batchConfig.Recursive, _ = cmd.Flags().GetBool("recursive")
	batchConfig.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
	batchConfig.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")

	batchConfig.ShowProgress, _ = cmd.Flags().GetBool("progress")
	batchConfig.Quiet, _ = cmd.Flags().GetBool("quiet")
	batchConfig.ShowStats, _ = cmd.Flags().GetBool("stats")
	batchConfig.ProgressInterval, _ = cmd.Flags().GetDuration("progress-interval")

	return batchConfig
}

func runBatchCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	batchConfig := configToBatchConfig(cfg, cmd)

	factory, err := loadFactory(cfg)
	if err != nil {
		return err
	}

	if !batchConfig.Quiet {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Scanning %d path(s)...\n", len(args))
	}

	result, err := batch.Run(context.Background(), factory, args, batchConfig)
	if err != nil {
		return fmt.Errorf("batch detection failed: %w", err)
	}

	if err := result.SaveResults(batchConfig.Format, batchConfig.OutputFile, batchConfig.Quiet); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	if batchConfig.ShowStats {
		result.PrintStats(batchConfig.Quiet)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Output flags
	batchCmd.Flags().StringP("format", "f", "text", "output format: text, json, csv")
	batchCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	// Parallel processing flags
	batchCmd.Flags().IntP("workers", "w", 0, "number of parallel workers (default: batch.workers from the configuration)")
	batchCmd.Flags().Int("batch-size", 0, "batch size for micro-batching (0 = no batching)")
	batchCmd.Flags().String("memory-limit", "", "memory limit (e.g., 1GB, 512MB)")
	batchCmd.Flags().Int("max-goroutines", 0, "maximum concurrent goroutines")
	batchCmd.Flags().Float64("memory-threshold", 0.8, "memory pressure threshold (0.0-1.0)")

	// File discovery flags
	batchCmd.Flags().BoolP("recursive", "r", false, "recursively scan directories")
	batchCmd.Flags().StringSlice("include", []string{"*.txt"}, "file patterns to include")
	batchCmd.Flags().StringSlice("exclude", []string{}, "file patterns to exclude")

	// Progress and monitoring flags
	batchCmd.Flags().Bool("progress", false, "show progress bar")
	batchCmd.Flags().Bool("quiet", false, "suppress progress output")
	batchCmd.Flags().Bool("stats", false, "show processing statistics")
	batchCmd.Flags().Duration("progress-interval", 500*time.Millisecond, "progress update interval")
}

// GetBatchCommand returns the batch command for testing purposes.
func GetBatchCommand() *cobra.Command {
	return batchCmd
}
