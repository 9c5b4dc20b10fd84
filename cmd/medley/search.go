package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog",
	Long: `Search the catalog by title, overview, or genre.

Matching is tolerant: accents are folded and close misspellings still
rank. Results come back best match first.

Examples:
  medley search "the matrix"
  medley search amelie -n 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

var similarCmd = &cobra.Command{
	Use:   "similar <item-id>",
	Short: "Find items similar to a catalog item",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilarCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntP("limit", "n", 20, "Maximum number of results")

	rootCmd.AddCommand(similarCmd)
	similarCmd.Flags().IntP("limit", "n", 10, "Maximum number of results")
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	client := NewClient(serverURL)
	resp, err := client.Search(query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	printHits(resp.Results, fmt.Sprintf("No matches for %q", query))
	return nil
}

func runSimilarCmd(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	client := NewClient(serverURL)
	resp, err := client.Similar(args[0], limit)
	if err != nil {
		return fmt.Errorf("similar lookup failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	printHits(resp.Results, "No similar items found")
	return nil
}

func printHits(hits []SearchHit, emptyMsg string) {
	if len(hits) == 0 {
		fmt.Println(emptyMsg)
		return
	}

	fmt.Printf("  %-6s │ %-40s │ %s\n", "KIND", "NAME", "ID")
	fmt.Println("─────────┼──────────────────────────────────────────┼─────────")
	for _, h := range hits {
		name := h.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Printf("  %-6s │ %-40s │ %s\n", h.Kind, name, h.ID)
	}
}
