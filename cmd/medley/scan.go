package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Trigger a full library scan",
	Long: `Trigger a rescan of all configured collections.

By default the scan runs in the background and the command returns
immediately. With --wait the command blocks until the scan finishes and
reports the item counts.

Examples:
  medley scan            # Kick off a scan and return
  medley scan --wait     # Block until the scan completes`,
	RunE: runScanCmd,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().Bool("wait", false, "Block until the scan completes")
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	wait, _ := cmd.Flags().GetBool("wait")

	client := NewClient(serverURL)
	resp, err := client.Scan(wait)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	switch resp.Status {
	case "completed":
		fmt.Printf("Scan completed: %d items", resp.Items)
		if resp.Episodes > 0 {
			fmt.Printf(", %d episodes", resp.Episodes)
		}
		fmt.Println()
	case "already_running":
		fmt.Println("A scan is already running")
	default:
		fmt.Println("Scan started")
	}
	return nil
}
