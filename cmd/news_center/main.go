// Package main provides the entry point for the GS E&R news collection service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "news_center",
	Short: "GS E&R energy news collection service",
	Long:  "news_center collects Korean energy-industry news briefings from the MISO workflow engine, classifies and scores them, and serves the ranked result via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
