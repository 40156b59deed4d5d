package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-hero/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available worlds",
	Long:  `Shows a list of all worlds registered in tile-hero.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	apps := registry.List()
	out := cmd.OutOrStdout()

	if len(apps) == 0 {
		fmt.Fprintln(out, "No worlds available.")
		return
	}

	fmt.Fprintln(out, "Available worlds:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, a := range apps {
		maxIDLen = max(maxIDLen, len(a.ID))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, a := range apps {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, a.ID, a.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'tilehero play <id>' to play a world.")
}
