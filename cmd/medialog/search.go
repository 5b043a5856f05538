package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search the library by title",
	Long: `Search library titles with fuzzy matching. Accents, punctuation
and leading articles are ignored, so "amelie" finds "Amélie" and
"the matrix" finds "Matrix".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	client := NewClient(serverURL)
	hits, err := client.Search(query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		printJSON(hits)
		return nil
	}

	if len(hits) == 0 {
		fmt.Printf("No matches for %q.\n", query)
		return nil
	}

	fmt.Printf("Matches for %q:\n\n", query)
	fmt.Printf("  %-5s %-40s %-6s %s\n", "SCORE", "TITLE", "YEAR", "ID")
	fmt.Println("  " + strings.Repeat("-", 90))
	for _, hit := range hits {
		title := hit.Item.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Printf("  %-5.2f %-40s %-6d %s\n", hit.Score, title, hit.Item.Year, hit.Item.ID)
	}
	return nil
}
