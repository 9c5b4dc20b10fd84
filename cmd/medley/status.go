package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server and catalog status",
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	printStatusHuman(serverURL, status)
	return nil
}

func printStatusHuman(server string, s *StatusResponse) {
	fmt.Printf("medley v%s | Server: %s\n\n", s.Version, server)

	fmt.Println("Catalog")
	fmt.Printf("  Collections: %d\n", s.Collections)
	fmt.Printf("  Items:       %d\n", s.Items)
	fmt.Printf("  Episodes:    %d\n", s.Episodes)
	fmt.Printf("  Indexed:     %d documents\n", s.IndexDocs)
	fmt.Println()

	if s.Scanning {
		fmt.Println("Scan: running")
	} else if s.LastScan != nil {
		fmt.Printf("Scan: last finished %s ago\n", formatAgo(*s.LastScan))
	} else {
		fmt.Println("Scan: never run")
	}
}

// formatAgo renders a short human duration like "3m" or "2h15m".
func formatAgo(t time.Time) string {
	d := time.Since(t).Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	h := int(d.Hours())
	m := int(d.Minutes()) - h*60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}
