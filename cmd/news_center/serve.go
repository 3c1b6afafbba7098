package main

import (
	"github.com/spf13/cobra"

	"github.com/moobydog0324-a11y/GSENR-NEW/internal/config"
	"github.com/moobydog0324-a11y/GSENR-NEW/internal/server"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the news collection REST API server",
	Long: `Starts an HTTP server exposing the collection pipeline:

  POST /api/collect-news         run one collection and return the briefing
  POST /api/collect-news/stream  same, streaming progress as Server-Sent Events
  GET  /health                   liveness check`,
	RunE: runServeCmd,
}

var (
	serveConfigPath string
	servePort       int
)

func init() {
	serveCommand.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCommand.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (defaults to PORT env var, then 8080)")

	rootCmd.AddCommand(serveCommand)
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	cfg = cfg.MergeWithDefaults(config.FromEnv())
	cfg = cfg.MergeWithDefaults(config.Config{Port: 8080})
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		Transport: cfg.TransportConfig(),
		Mode:      cfg.Mode,
		User:      cfg.User,
		Window:    cfg.Window(),
	})
	if err != nil {
		return err
	}
	return srv.Start()
}
