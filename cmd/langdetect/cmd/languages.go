package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// languagesCmd lists the languages available in the loaded profile set.
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages available in the loaded profile set",
	Long: `List every language code present in the configured profiles directory.

Examples:
  langdetect languages
  langdetect languages --format json`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		format, _ := cmd.Flags().GetString("format")

		factory, err := loadFactory(cfg)
		if err != nil {
			return err
		}

		langs := factory.LoadedLanguages()

		if format == outputFormatJSON {
			enc, err := json.Marshal(map[string]interface{}{
				"languages": langs,
				"count":     len(langs),
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(enc))
			return err
		}

		for _, lang := range langs {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
	languagesCmd.Flags().String("format", outputFormatText, "output format: text or json")
}

// GetLanguagesCommand returns the languages command for testing purposes.
func GetLanguagesCommand() *cobra.Command {
	return languagesCmd
}
