// tilehero runs tile-based worlds in the terminal.
//
// Usage:
//
//	tilehero list               - List available worlds
//	tilehero play [world]       - Play a world
//	tilehero menu               - Pick worlds interactively
//	tilehero replay <file>      - Replay a recording headlessly
//	tilehero serve              - Start SSH server for remote play
//	tilehero sessions           - Show recent play sessions
//
// Global flags:
//
//	--config <path>    - Settings file (default: search ~/.tilehero/configs, ./configs)
//	--db <path>        - Session database (default: ~/.tilehero/tilehero.db)
//	--log-level <lvl>  - debug, info, warn or error
//	--hz <rate>        - Display refresh rate; the game runs at half of it
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import worlds to register them
	_ "github.com/vovakirdan/tile-hero/internal/games/hub"
	_ "github.com/vovakirdan/tile-hero/internal/games/overworld"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagHz       int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilehero",
	Short: "Tile Hero - walk tile worlds in your terminal",
	Long: `Tile Hero renders tile-map worlds into a pixel buffer and shows it in
the terminal with half-block characters. A sine tone follows the player.

Available commands:
  list      - Show all available worlds
  play      - Play a specific world directly
  menu      - Interactive world picker
  replay    - Replay a recording without a terminal
  serve     - Start SSH server for remote play
  sessions  - Show recent play sessions

Examples:
  tilehero list
  tilehero play hub
  tilehero play overworld --no-audio
  tilehero menu --hz 120
  tilehero replay ~/.tilehero/session.rec --frames 300
  tilehero serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to session database (overrides settings)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagHz, "hz", 0, "Display refresh rate (0 = from settings)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
}
