package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moobydog0324-a11y/GSENR-NEW/internal/config"
	"github.com/moobydog0324-a11y/GSENR-NEW/internal/miso"
	"github.com/moobydog0324-a11y/GSENR-NEW/internal/observability"
	"github.com/moobydog0324-a11y/GSENR-NEW/internal/pipeline"
)

var collectCommand = &cobra.Command{
	Use:   "collect",
	Short: "Run one news collection and print the ranked briefing",
	Long: `Runs a single collection against the MISO workflow engine: fetch, unwrap,
normalize, classify, and rank by recency and relevance.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values, which override environment variables.`,
	RunE: runCollectCmd,
}

var (
	collectConfigPath string
	collectEndpoint   string
	collectAPIKey     string
	collectMode       string
	collectUser       string
	collectTimeout    int
	collectRetries    int
	collectWindow     int
	collectJSON       bool
	collectVerbose    bool
)

func init() {
	collectCommand.Flags().StringVar(&collectConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	collectCommand.Flags().StringVar(&collectEndpoint, "endpoint", "", "MISO workflow endpoint (defaults to MISO_ENDPOINT env var)")
	collectCommand.Flags().StringVar(&collectAPIKey, "api-key", "", "MISO API key (defaults to MISO_API_KEY env var)")
	collectCommand.Flags().StringVarP(&collectMode, "mode", "m", "", "Response mode: blocking or streaming")
	collectCommand.Flags().StringVar(&collectUser, "user", "", "User identifier sent to the workflow engine")
	collectCommand.Flags().IntVar(&collectTimeout, "timeout", 0, "Overall request timeout in seconds")
	collectCommand.Flags().IntVar(&collectRetries, "retries", 0, "Maximum retries for transient upstream failures")
	collectCommand.Flags().IntVarP(&collectWindow, "window", "w", 0, "Recency window in hours")
	collectCommand.Flags().BoolVar(&collectJSON, "json", false, "Print the briefing as JSON instead of formatted text")
	collectCommand.Flags().BoolVarP(&collectVerbose, "verbose", "v", false, "Print pipeline progress and summaries")

	rootCmd.AddCommand(collectCommand)
}

// loadMergedConfig layers flag values over the config file over the
// environment, then validates the result.
func loadMergedConfig(cmd *cobra.Command, configPath string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("endpoint") {
		cfg.MisoEndpoint = collectEndpoint
	}
	if cmd.Flags().Changed("api-key") {
		cfg.MisoAPIKey = collectAPIKey
	}
	if cmd.Flags().Changed("mode") {
		cfg.Mode = collectMode
	}
	if cmd.Flags().Changed("user") {
		cfg.User = collectUser
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSeconds = collectTimeout
	}
	if cmd.Flags().Changed("retries") {
		cfg.MaxRetries = collectRetries
	}
	if cmd.Flags().Changed("window") {
		cfg.WindowHours = collectWindow
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = collectVerbose
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runCollectCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(cmd, collectConfigPath)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	opts := pipeline.Options{
		Transport: cfg.TransportConfig(),
		Mode:      cfg.Mode,
		User:      cfg.User,
		Window:    cfg.Window(),
	}
	if cfg.Verbose {
		opts.OnProgress = printer.ProgressPrinter()
	}

	items, err := pipeline.Collect(context.Background(), opts)
	if err != nil {
		var emptyErr *pipeline.EmptyResultError
		if errors.As(err, &emptyErr) {
			if collectJSON {
				fmt.Println("[]")
				return nil
			}
			printer.PrintItems(nil)
			return nil
		}
		var cfgErr *miso.ConfigError
		if errors.As(err, &cfgErr) {
			return fmt.Errorf("%w (set MISO_ENDPOINT and MISO_API_KEY, or pass --endpoint and --api-key)", err)
		}
		return err
	}

	if collectJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(items)
	}

	printer.PrintItems(items)
	if cfg.Verbose {
		printer.PrintCategorySummary(items)
	}
	return nil
}
