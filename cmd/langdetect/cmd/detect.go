package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MeKo-Tech/langdetect/internal/config"
	"github.com/MeKo-Tech/langdetect/internal/langdetect"
	"github.com/MeKo-Tech/langdetect/internal/profiles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	outputFormatJSON = "json"
	outputFormatText = "text"
)

// detectCmd represents the detect command.
var detectCmd = &cobra.Command{
	Use:   "detect [text]",
	Short: "Detect the language of a piece of text",
	Long: `Detect the language of text passed as an argument or read from a file.

Examples:
  langdetect detect "Ceci est un texte en français"
  langdetect detect -f document.txt
  langdetect detect -f document.txt --all --format json`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		file, _ := cmd.Flags().GetString("file")
		showAll, _ := cmd.Flags().GetBool("all")
		format, _ := cmd.Flags().GetString("format")

		text, err := readDetectInput(args, file)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return errors.New("no text provided: pass it as an argument or via --file")
		}

		factory, err := loadFactory(cfg)
		if err != nil {
			return err
		}

		alpha := cfg.Detector.Alpha
		det, err := factory.NewDetectorWithAlpha(alpha)
		if err != nil {
			return fmt.Errorf("building detector: %w", err)
		}
		if cfg.Detector.MaxTextLength > 0 {
			det.SetMaxTextLength(cfg.Detector.MaxTextLength)
		}
		if err := det.Append(text); err != nil {
			return fmt.Errorf("appending text: %w", err)
		}

		probs, err := det.Probabilities()
		if err != nil {
			return fmt.Errorf("detecting language: %w", err)
		}

		return printDetectResult(cmd, probs, showAll, format)
	},
}

func readDetectInput(args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file) //nolint:gosec // G304: user-provided path is the whole point of -f
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}

func loadFactory(cfg *config.Config) (*langdetect.Factory, error) {
	dir, err := profiles.Dir(cfg.ProfilesDir)
	if err != nil {
		return nil, err
	}
	profs, err := profiles.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	f := langdetect.NewFactory()
	if err := f.LoadProfiles(profs); err != nil {
		return nil, fmt.Errorf("loading profiles from %s: %w", dir, err)
	}
	if cfg.Detector.SeedSet {
		f.SetSeed(cfg.Detector.Seed)
	}
	return f, nil
}

func printDetectResult(cmd *cobra.Command, probs []langdetect.LanguageProbability, showAll bool, format string) error {
	if len(probs) == 0 {
		if format == outputFormatJSON {
			enc, _ := json.Marshal(map[string]string{"language": langdetect.UnknownLanguage})
			_, err := fmt.Fprintln(cmd.OutOrStdout(), string(enc))
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), langdetect.UnknownLanguage)
		return err
	}

	ranked := probs
	if !showAll {
		ranked = probs[:1]
	}

	if format == outputFormatJSON {
		type entry struct {
			Language   string  `json:"language"`
			Confidence float64 `json:"confidence"`
		}
		entries := make([]entry, len(ranked))
		for i, p := range ranked {
			entries[i] = entry{Language: p.Lang, Confidence: p.Prob}
		}
		out := map[string]interface{}{"language": ranked[0].Lang}
		if showAll {
			out["ranked"] = entries
		} else {
			out["confidence"] = ranked[0].Prob
		}
		enc, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(enc))
		return err
	}

	if !showAll {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), ranked[0].Lang)
		return err
	}
	for _, p := range ranked {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.6f\n", p.Lang, p.Prob); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().StringP("file", "f", "", "read text from this file instead of the argument")
	detectCmd.Flags().Bool("all", false, "print the full ranked probability list")
	detectCmd.Flags().String("format", outputFormatText, "output format: text or json")

	viper.BindPFlag("detect.file", detectCmd.Flags().Lookup("file"))
}

// GetDetectCommand returns the detect command for testing purposes.
func GetDetectCommand() *cobra.Command {
	return detectCmd
}
