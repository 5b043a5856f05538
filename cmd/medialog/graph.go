package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Show the related-media graph",
	Long: `Projects the library into a graph: every item is a node and every
relation is an undirected link. Symmetric relations appear once.`,
	RunE: runGraphCmd,
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func runGraphCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	graph, err := client.Graph()
	if err != nil {
		return fmt.Errorf("graph failed: %w", err)
	}

	if jsonOutput {
		printJSON(graph)
		return nil
	}

	titles := make(map[string]string, len(graph.Nodes))
	for _, node := range graph.Nodes {
		titles[node.ID] = node.Title
	}

	fmt.Printf("Graph: %d nodes, %d links\n\n", len(graph.Nodes), len(graph.Links))
	for _, link := range graph.Links {
		fmt.Printf("  %s <-> %s\n", titles[link.Source], titles[link.Target])
	}
	return nil
}
