package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "procura",
	Short: "Procura - purchase order follow-up backend",
	Long: `Procura Unified CLI

Backend for tracking purchase orders against suppliers: resolves due
dates, classifies orders into risk buckets and scores supplier
reliability for the follow-up dashboard.

Usage:
  go run ./cmd/procura [command]

Examples:
  go run ./cmd/procura api
  go run ./cmd/procura alerts
  go run ./cmd/procura alerts --date 2024-06-10
  go run ./cmd/procura scheduler`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
