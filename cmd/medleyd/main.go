package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "medleyd",
	Short: "Media catalog server",
	Long: `medleyd - media catalog server

Scans the configured library directories, builds a searchable catalog,
and serves it over a REST API.

Run 'medley' for the client CLI.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(configPath, logLevel)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to config file (searched for when empty)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug|info|warn|error)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("medleyd {{.Version}}\n")
}
