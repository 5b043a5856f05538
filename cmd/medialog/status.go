package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status and library counts",
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

	fmt.Printf("Server:       %s\n", serverURL)
	fmt.Printf("Version:      %s\n", status.Version)
	fmt.Printf("Items:        %d (%d watched, %d unwatched)\n",
		status.Items, status.Watched, status.Unwatched)
	fmt.Printf("Collections:  %d\n", status.Collections)
	return nil
}
