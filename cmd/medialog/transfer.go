package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/medialog/internal/importer"
)

func init() {
	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the library as JSON",
		Long: `Download the library as a JSON document. Writes to the standard
export filename unless a path is given; use '-' for stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import media from a file",
		Long: `Import media from a JSON export or an outline text file.

JSON imports merge by id: existing items are replaced, new ones
appended. Outline files use [[Title]] lines, with [[Collection Name]]
headers grouping the titles below them.

Examples:
  medialog import backup.json
  medialog import backup.json --mode replace
  medialog import watchlist.txt --format outline`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
	importCmd.Flags().String("format", "json", "Input format: json or outline")
	importCmd.Flags().String("mode", "merge", "Import mode: merge or replace")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all media and collections",
		RunE:  runClear,
	}
	clearCmd.Flags().Bool("force", false, "Skip confirmation")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(clearCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	data, err := client.Export()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	path := importer.ExportFilename(time.Now())
	if len(args) > 0 {
		path = args[0]
	}
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Printf("Exported library to %s\n", path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	mode, _ := cmd.Flags().GetString("mode")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	if format == "json" {
		format = "" // server default
	}

	client := NewClient(serverURL)
	result, err := client.Import(data, format, mode)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if jsonOutput {
		printJSON(result)
		return nil
	}

	fmt.Printf("Imported %d items", result.Imported)
	if result.Dropped > 0 {
		fmt.Printf(", dropped %d invalid", result.Dropped)
	}
	if result.NewCollections > 0 {
		fmt.Printf(", created %d collections", result.NewCollections)
	}
	fmt.Println()
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	if !force {
		fmt.Print("This deletes all media and collections. Continue? [y/N]: ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	client := NewClient(serverURL)
	if err := client.Clear(); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	fmt.Println("Library cleared.")
	return nil
}
