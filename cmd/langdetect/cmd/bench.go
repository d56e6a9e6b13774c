package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/langdetect/internal/common"
	"github.com/MeKo-Tech/langdetect/internal/testutil"
	"github.com/spf13/cobra"
)

// benchCmd runs a quick in-process throughput benchmark over the loaded
// profile set using a small embedded corpus of sample sentences.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a quick in-process detection throughput benchmark",
	Long: `Run the detector repeatedly over a small embedded corpus of sample
sentences and report throughput and per-call latency.

Examples:
  langdetect bench
  langdetect bench --iterations 500`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		iterations, _ := cmd.Flags().GetInt("iterations")
		if iterations <= 0 {
			iterations = 100
		}

		factory, err := loadFactory(cfg)
		if err != nil {
			return err
		}

		samples := testutil.SampleTexts()
		if len(samples) == 0 {
			return fmt.Errorf("bench: no sample texts available")
		}

		timer := common.NewNamedTimer("detect")
		memBefore := common.GetMemoryStats()

		correct := 0
		total := 0
		for i := 0; i < iterations; i++ {
			s := samples[i%len(samples)]
			det, err := factory.NewDetectorWithAlpha(cfg.Detector.Alpha)
			if err != nil {
				return fmt.Errorf("bench: building detector: %w", err)
			}
			if err := det.Append(s.Text); err != nil {
				return fmt.Errorf("bench: appending text: %w", err)
			}
			lang, err := det.Detect()
			if err != nil {
				return fmt.Errorf("bench: detecting: %w", err)
			}
			total++
			if lang == s.Lang {
				correct++
			}
		}

		duration := timer.Stop()
		memAfter := common.GetMemoryStats()

		result := common.BenchmarkResult{
			Name:         "detect",
			Duration:     duration,
			Iterations:   total,
			MemoryBefore: memBefore,
			MemoryAfter:  memAfter,
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.String())
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "accuracy: %d/%d (%.1f%%)\n", correct, total, 100*float64(correct)/float64(total))
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "throughput: %.0f detections/sec\n",
			float64(total)/duration.Seconds())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().Int("iterations", 100, "number of detection calls to run")
}

// GetBenchCommand returns the bench command for testing purposes.
func GetBenchCommand() *cobra.Command {
	return benchCmd
}
