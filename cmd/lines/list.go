package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available boards",
	Long: `Shows every registered board with its size and colour count, as
configured by --config and --difficulty.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	boards := registry.List()
	if len(boards) == 0 {
		fmt.Println("No boards available.")
		return
	}

	idW, titleW := len("ID"), len("Title")
	for _, b := range boards {
		idW = max(idW, len(b.ID))
		titleW = max(titleW, len(b.Title))
	}

	fmt.Println("Available boards:")
	fmt.Println()
	fmt.Printf("  %-*s  %-*s  %s\n", idW, "ID", titleW, "Title", "Board")
	for _, b := range boards {
		fmt.Printf("  %-*s  %-*s  %s\n", idW, b.ID, titleW, b.Title, registry.Summary(b.ID))
	}

	fmt.Println()
	fmt.Println("Controls:", boards[0].Controls)
	fmt.Println("Run 'lines play <id>' to play a board.")
}
