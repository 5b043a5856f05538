package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List media in the library",
		RunE:  runList,
	}
	listCmd.Flags().StringP("type", "t", "", "Filter by type (movies, tvshows)")
	listCmd.Flags().StringP("watch", "w", "", "Filter by watch state (watched, unwatched)")
	listCmd.Flags().StringP("collection", "c", "", "Only items in this collection id")

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a movie or TV show",
		Args:  cobra.ExactArgs(1),
		RunE:  runAdd,
	}
	addCmd.Flags().String("type", "movie", "Media type: movie or tvshow")
	addCmd.Flags().Int("year", 0, "Release year (required)")
	addCmd.Flags().String("description", "", "Short description")
	addCmd.Flags().StringSlice("genre", nil, "Genre (repeatable)")
	addCmd.Flags().String("director", "", "Director")
	addCmd.Flags().Int("rating", 0, "Rating 1-5")
	addCmd.Flags().Bool("watched", false, "Mark as already watched")
	_ = addCmd.MarkFlagRequired("year")

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove media from the library",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}

	watchCmd := &cobra.Command{
		Use:   "watch <id>",
		Short: "Toggle the watched flag on an item",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}

	rateCmd := &cobra.Command{
		Use:   "rate <id> <rating>",
		Short: "Rate an item 1-5 stars",
		Args:  cobra.ExactArgs(2),
		RunE:  runRate,
	}

	relateCmd := &cobra.Command{
		Use:   "relate <id> [related-id...]",
		Short: "Show or set related media",
		Long: `Show the items related to a media item, or replace the related
set when additional ids are given.

Examples:
  medialog relate 42          # List items related to #42
  medialog relate 42 7 19     # Relate #42 to #7 and #19
  medialog relate 42 --clear  # Remove all relations from #42`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRelate,
	}
	relateCmd.Flags().Bool("clear", false, "Clear all relations")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(relateCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	typeFilter, _ := cmd.Flags().GetString("type")
	watchFilter, _ := cmd.Flags().GetString("watch")
	collection, _ := cmd.Flags().GetString("collection")

	client := NewClient(serverURL)
	data, err := client.ListMedia(typeFilter, watchFilter, collection)
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if jsonOutput {
		printJSON(data)
		return nil
	}

	if len(data.Items) == 0 {
		fmt.Println("No media in library.")
		return nil
	}

	printMediaList(data.Items)
	return nil
}

func printMediaList(items []MediaItem) {
	fmt.Printf("Library (%d items):\n\n", len(items))
	fmt.Printf("  %-36s %-8s %-40s %-6s %-8s %s\n", "ID", "TYPE", "TITLE", "YEAR", "WATCHED", "RATING")
	fmt.Println("  " + strings.Repeat("-", 108))

	for i := range items {
		item := &items[i]
		title := item.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		watched := "no"
		if item.Watched {
			watched = "yes"
		}
		rating := "-"
		if item.Rating != nil {
			rating = strings.Repeat("*", *item.Rating)
		}
		fmt.Printf("  %-36s %-8s %-40s %-6d %-8s %s\n",
			item.ID, item.Type, title, item.Year, watched, rating)
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	mediaType, _ := cmd.Flags().GetString("type")
	year, _ := cmd.Flags().GetInt("year")
	description, _ := cmd.Flags().GetString("description")
	genres, _ := cmd.Flags().GetStringSlice("genre")
	director, _ := cmd.Flags().GetString("director")
	rating, _ := cmd.Flags().GetInt("rating")
	watched, _ := cmd.Flags().GetBool("watched")

	item := &MediaItem{
		Title:       args[0],
		Type:        mediaType,
		Year:        year,
		Description: description,
		Genres:      genres,
		Director:    director,
		Watched:     watched,
	}
	if item.Description == "" {
		item.Description = item.Title
	}
	if item.Genres == nil {
		item.Genres = []string{}
	}
	if rating != 0 {
		item.Rating = &rating
	}

	client := NewClient(serverURL)
	added, err := client.AddMedia(item)
	if err != nil {
		return fmt.Errorf("add failed: %w", err)
	}

	if jsonOutput {
		printJSON(added)
		return nil
	}
	fmt.Printf("Added %s (%d) [%s]\n", added.Title, added.Year, added.ID)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	if err := client.DeleteMedia(args[0]); err != nil {
		return fmt.Errorf("remove failed: %w", err)
	}
	fmt.Printf("Removed %s\n", args[0])
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	item, err := client.ToggleWatched(args[0])
	if err != nil {
		return fmt.Errorf("toggle failed: %w", err)
	}

	if jsonOutput {
		printJSON(item)
		return nil
	}
	state := "unwatched"
	if item.Watched {
		state = "watched"
	}
	fmt.Printf("%s is now %s\n", item.Title, state)
	return nil
}

func runRate(cmd *cobra.Command, args []string) error {
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid rating: %s", args[1])
	}

	client := NewClient(serverURL)
	item, err := client.Rate(args[0], rating)
	if err != nil {
		return fmt.Errorf("rate failed: %w", err)
	}

	if jsonOutput {
		printJSON(item)
		return nil
	}
	fmt.Printf("Rated %s %d stars\n", item.Title, rating)
	return nil
}

func runRelate(cmd *cobra.Command, args []string) error {
	clear, _ := cmd.Flags().GetBool("clear")
	client := NewClient(serverURL)

	if clear {
		if err := client.SetRelated(args[0], []string{}); err != nil {
			return fmt.Errorf("relate failed: %w", err)
		}
		fmt.Printf("Cleared relations on %s\n", args[0])
		return nil
	}

	if len(args) > 1 {
		if err := client.SetRelated(args[0], args[1:]); err != nil {
			return fmt.Errorf("relate failed: %w", err)
		}
		fmt.Printf("Related %s to %d items\n", args[0], len(args)-1)
		return nil
	}

	data, err := client.Related(args[0])
	if err != nil {
		return fmt.Errorf("relate failed: %w", err)
	}
	if jsonOutput {
		printJSON(data)
		return nil
	}
	if len(data.Items) == 0 {
		fmt.Println("No related media.")
		return nil
	}
	printMediaList(data.Items)
	return nil
}
