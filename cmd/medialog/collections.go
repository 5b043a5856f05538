package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	collectionsCmd := &cobra.Command{
		Use:   "collections",
		Short: "Manage collections",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List collections",
		RunE:  runCollectionsList,
	}

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new collection",
		Args:  cobra.ExactArgs(1),
		RunE:  runCollectionsCreate,
	}
	createCmd.Flags().String("image", "", "Cover image URL")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a collection",
		Long:  "Removes the collection only. Media in the collection stays in the library.",
		Args:  cobra.ExactArgs(1),
		RunE:  runCollectionsDelete,
	}

	addCmd := &cobra.Command{
		Use:   "add <collection-id> <media-id>",
		Short: "Add media to a collection",
		Args:  cobra.ExactArgs(2),
		RunE:  runCollectionsAdd,
	}

	removeCmd := &cobra.Command{
		Use:   "remove <collection-id> <media-id>",
		Short: "Remove media from a collection",
		Args:  cobra.ExactArgs(2),
		RunE:  runCollectionsRemove,
	}

	collectionsCmd.AddCommand(listCmd)
	collectionsCmd.AddCommand(createCmd)
	collectionsCmd.AddCommand(deleteCmd)
	collectionsCmd.AddCommand(addCmd)
	collectionsCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(collectionsCmd)
}

func runCollectionsList(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	collections, err := client.Collections()
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if jsonOutput {
		printJSON(collections)
		return nil
	}

	if len(collections) == 0 {
		fmt.Println("No collections.")
		return nil
	}

	fmt.Printf("Collections (%d):\n\n", len(collections))
	fmt.Printf("  %-36s %-30s %s\n", "ID", "NAME", "ITEMS")
	fmt.Println("  " + strings.Repeat("-", 74))
	for i := range collections {
		col := &collections[i]
		fmt.Printf("  %-36s %-30s %d\n", col.ID, col.Name, len(col.MediaIDs))
	}
	return nil
}

func runCollectionsCreate(cmd *cobra.Command, args []string) error {
	image, _ := cmd.Flags().GetString("image")

	client := NewClient(serverURL)
	col, err := client.CreateCollection(args[0], image)
	if err != nil {
		return fmt.Errorf("create failed: %w", err)
	}

	if jsonOutput {
		printJSON(col)
		return nil
	}
	fmt.Printf("Created collection %s [%s]\n", col.Name, col.ID)
	return nil
}

func runCollectionsDelete(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	if err := client.DeleteCollection(args[0]); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	fmt.Printf("Deleted collection %s\n", args[0])
	return nil
}

func runCollectionsAdd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	if err := client.AddToCollection(args[0], args[1]); err != nil {
		return fmt.Errorf("add failed: %w", err)
	}
	fmt.Printf("Added %s to collection %s\n", args[1], args[0])
	return nil
}

func runCollectionsRemove(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	if err := client.RemoveFromCollection(args[0], args[1]); err != nil {
		return fmt.Errorf("remove failed: %w", err)
	}
	fmt.Printf("Removed %s from collection %s\n", args[1], args[0])
	return nil
}
