package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Follow the server's event stream",
	Long: `Connect to the server's event stream and print events as they occur.

Starts with a replay of recent history, then follows live until
interrupted.

Examples:
  medley events            # Replay the last 20 events, then follow
  medley events -n 0       # Live events only`,
	RunE: runEventsCmd,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().IntP("replay", "n", 20, "Number of past events to replay first")
}

func runEventsCmd(cmd *cobra.Command, args []string) error {
	replay, _ := cmd.Flags().GetInt("replay")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := NewClient(serverURL)
	err := client.StreamEvents(ctx, replay, printEvent)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func printEvent(e EventFrame) {
	if jsonOutput {
		printJSON(e)
		return
	}

	ts := e.OccurredAt
	if t, err := time.Parse(time.RFC3339Nano, e.OccurredAt); err == nil {
		ts = t.Local().Format("15:04:05")
	}

	line := fmt.Sprintf("%s  %-22s", ts, e.Type)
	if e.CollectionID != "" {
		line += "  " + e.CollectionID
	}
	switch {
	case e.Error != "":
		line += "  error: " + e.Error
	case e.Items > 0:
		line += fmt.Sprintf("  items=%d", e.Items)
		if e.Episodes > 0 {
			line += fmt.Sprintf(" episodes=%d", e.Episodes)
		}
		if e.DurationMS > 0 {
			line += fmt.Sprintf(" duration=%dms", e.DurationMS)
		}
	}
	fmt.Fprintln(os.Stdout, line)
}
