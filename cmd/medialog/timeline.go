package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the library grouped by release year",
	RunE:  runTimelineCmd,
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}

func runTimelineCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	groups, err := client.Timeline()
	if err != nil {
		return fmt.Errorf("timeline failed: %w", err)
	}

	if jsonOutput {
		printJSON(groups)
		return nil
	}

	for _, group := range groups {
		fmt.Printf("%d\n", group.Year)
		for _, item := range group.Items {
			marker := " "
			if item.Watched {
				marker = "x"
			}
			fmt.Printf("  [%s] %s\n", marker, item.Title)
		}
	}
	return nil
}
