// Package main provides the entry point for the GitHub résumé builder CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "GitHub Resume Builder",
	Long: "Builds a résumé from a form and your public GitHub projects, keeps the latest draft in a local cache " +
		"and packs it into a shareable link that the hosted builder can open.",
	SilenceUsage: true,
}

var (
	rootConfigPath   string
	rootCacheBackend string
	rootCacheDSN     string
	rootOrigin       string
	rootVerbose      bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to JSON config file (optional)")
	rootCmd.PersistentFlags().StringVar(&rootCacheBackend, "cache", "", "Cache backend: sqlite, memory, valkey or postgres (default sqlite)")
	rootCmd.PersistentFlags().StringVar(&rootCacheDSN, "cache-dsn", "", "Cache file path or connection URL (env RESUME_CACHE_DSN)")
	rootCmd.PersistentFlags().StringVar(&rootOrigin, "origin", "", "Origin share links point at")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
