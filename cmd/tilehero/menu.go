package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-hero/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start tile-hero with a world picker menu",
	Long: `Start tile-hero in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a world.
After leaving a world, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select world
  Tab          - Recent sessions
  Q            - Quit

Examples:
  tilehero menu
  tilehero menu --hz 120
  tilehero menu --db ./sessions.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Run without opening the audio device")
}

func runMenu(cmd *cobra.Command, _ []string) error {
	e, err := setup(true)
	if err != nil {
		return err
	}
	defer e.Close()

	width, height, err := terminalSize()
	if err != nil {
		return fmt.Errorf("menu needs a terminal: %w", err)
	}

	store := e.openStore()
	if store != nil {
		defer store.Close()
	}

	for {
		result, err := tui.RunMenu(width, height)
		if err != nil {
			return err
		}
		width, height = result.Width, result.Height

		if result.Quit {
			return nil
		}

		if result.WantsSessions {
			goBack, err := tui.RunSessions(store, width, height)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		if err := e.play(cmd.Context(), result.AppID, store); err != nil {
			e.logger.Error("world failed", "app", result.AppID, "error", err)
		}
		if cmd.Context().Err() != nil {
			return nil
		}
	}
}
