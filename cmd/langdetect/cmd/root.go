package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/MeKo-Tech/langdetect/internal/config"
	"github.com/MeKo-Tech/langdetect/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global configuration loader.
	configLoader *config.Loader
	// Global configuration.
	globalConfig *config.Config
	// Configuration file path.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "langdetect",
	Short: "Statistical n-gram language detector",
	Long: `langdetect identifies the natural language of a piece of text using a
Monte-Carlo n-gram probability model.

This tool provides:
- Single-text and batch language detection
- A JSON HTTP API with streaming websocket support
- Quick in-process benchmarking over a profile set

Examples:
  langdetect detect "Ceci est un texte en français"
  langdetect batch ./corpus --format json
  langdetect serve --port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, _ := cmd.PersistentFlags().GetBool("version")
		if v {
			ver, commit, date := version.Info()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "langdetect version", ver)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Commit:", commit)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Date:", date)
			return nil
		}
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCommand returns the root command for testing purposes.
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.langdetect, /etc/langdetect)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("profiles-dir", "", "directory containing language profile JSON files")
	rootCmd.PersistentFlags().Float64("alpha", 0, "detector smoothing parameter (0 uses the built-in default)")
	rootCmd.PersistentFlags().Int("max-text-length", 0, "maximum text length fed to the detector (0 uses the built-in default)")
	rootCmd.PersistentFlags().Int64("seed", 0, "deterministic RNG seed for the Monte-Carlo detector")
	rootCmd.PersistentFlags().Bool("version", false, "print version information and exit")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("profiles_dir", rootCmd.PersistentFlags().Lookup("profiles-dir"))
	viper.BindPFlag("detector.alpha", rootCmd.PersistentFlags().Lookup("alpha"))
	viper.BindPFlag("detector.max_text_length", rootCmd.PersistentFlags().Lookup("max-text-length"))
	viper.BindPFlag("detector.seed", rootCmd.PersistentFlags().Lookup("seed"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if globalConfig == nil {
			initConfig()
		}
		if cmd.Flags().Changed("seed") {
			globalConfig.Detector.SeedSet = true
			viper.Set("detector.seed_set", true)
		}

		var logLevel slog.Level
		if globalConfig.Verbose {
			logLevel = slog.LevelDebug
		} else {
			switch globalConfig.LogLevel {
			case "debug":
				logLevel = slog.LevelDebug
			case "warn":
				logLevel = slog.LevelWarn
			case "error":
				logLevel = slog.LevelError
			default:
				logLevel = slog.LevelInfo
			}
		}

		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
		slog.SetDefault(logger)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	configLoader = config.NewLoader()

	var err error
	if cfgFile != "" {
		globalConfig, err = configLoader.LoadWithFile(cfgFile)
	} else {
		globalConfig, err = configLoader.Load()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}

// GetConfig returns the global configuration, reloaded so CLI flag
// overrides bound after initial config loading are reflected.
func GetConfig() *config.Config {
	if globalConfig == nil {
		initConfig()
	}

	loader := GetConfigLoader()
	var cfg config.Config
	if err := loader.GetViper().Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling updated configuration: %v\n", err)
		return globalConfig
	}

	return &cfg
}

// GetConfigLoader returns the global configuration loader.
func GetConfigLoader() *config.Loader {
	if configLoader == nil {
		configLoader = config.NewLoader()
	}
	return configLoader
}
