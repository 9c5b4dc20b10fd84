package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List configured collections",
	RunE:  runCollectionsCmd,
}

var itemsCmd = &cobra.Command{
	Use:   "items <collection-id> [item-id]",
	Short: "List items in a collection",
	Long: `List the items of one collection, or show a single item in full.

Examples:
  medley items films             # List everything in the films collection
  medley items films a3f9...     # Show one item's complete record`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runItemsCmd,
}

var genresCmd = &cobra.Command{
	Use:   "genres <collection-id>",
	Short: "Show genre counts for a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenresCmd,
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(genresCmd)
}

func runCollectionsCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	resp, err := client.Collections()
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	if len(resp.Items) == 0 {
		fmt.Println("No collections configured")
		return nil
	}

	fmt.Printf("Collections (%d):\n\n", resp.Total)
	fmt.Printf("  %-16s │ %-6s │ %6s │ %8s │ %s\n", "ID", "KIND", "ITEMS", "EPISODES", "NAME")
	fmt.Println("  " + strings.Repeat("─", 60))
	for _, c := range resp.Items {
		fmt.Printf("  %-16s │ %-6s │ %6d │ %8d │ %s\n", c.ID, c.Kind, c.Items, c.Episodes, c.Name)
	}
	return nil
}

func runItemsCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	if len(args) == 2 {
		item, err := client.Item(args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to fetch item: %w", err)
		}
		// The item shape depends on its kind, so print the raw record.
		printJSON(item)
		return nil
	}

	col, err := client.Collection(args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch collection: %w", err)
	}

	if jsonOutput {
		printJSON(col)
		return nil
	}

	if len(col.Items) == 0 {
		fmt.Printf("Collection %q is empty\n", col.Name)
		return nil
	}

	fmt.Printf("%s (%d items):\n\n", col.Name, col.Total)
	for _, it := range col.Items {
		line := fmt.Sprintf("  %s", it.Name)
		if it.Year > 0 {
			line += fmt.Sprintf(" (%d)", it.Year)
		}
		if it.Episodes > 0 {
			line += fmt.Sprintf("  [%d episodes]", it.Episodes)
		}
		if len(it.Genres) > 0 {
			line += "  " + strings.Join(it.Genres, ", ")
		}
		fmt.Println(line)
	}
	return nil
}

func runGenresCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	resp, err := client.Genres(args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch genres: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	if len(resp.Genres) == 0 {
		fmt.Println("No genres recorded")
		return nil
	}

	for _, g := range resp.Genres {
		fmt.Printf("  %-20s %d\n", g.Genre, g.Count)
	}
	return nil
}
