package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tile-hero/internal/platform/tui"
	"github.com/vovakirdan/tile-hero/internal/registry"
	"github.com/vovakirdan/tile-hero/internal/storage"
)

var flagNoAudio bool

var playCmd = &cobra.Command{
	Use:   "play [world]",
	Short: "Play a world",
	Long: `Start playing the specified world, or the one named in settings.

Controls:
  WASD/Arrows  - Move
  Space        - Jump
  R            - Start/stop recording
  P            - Start/stop playback of the recording
  Esc/Q        - Quit

Examples:
  tilehero play
  tilehero play overworld
  tilehero play hub --no-audio
  tilehero play hub --config ./my-settings.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Run without opening the audio device")
}

func runPlay(cmd *cobra.Command, args []string) error {
	e, err := setup(true)
	if err != nil {
		return err
	}
	defer e.Close()

	appID := e.settings.World.App
	if len(args) == 1 {
		appID = args[0]
	}
	if !registry.Exists(appID) {
		return fmt.Errorf("unknown world %q (run 'tilehero list')", appID)
	}
	if _, _, err := terminalSize(); err != nil {
		return fmt.Errorf("play needs a terminal: %w", err)
	}

	store := e.openStore()
	if store != nil {
		defer store.Close()
	}

	return e.play(cmd.Context(), appID, store)
}

// play runs one world until the player quits or a signal arrives.
func (e *env) play(ctx context.Context, appID string, store *storage.Store) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec, err := e.recorder()
	if err != nil {
		return err
	}
	l, out, err := e.newLoop(appID, e.settings.Audio.Enabled && !flagNoAudio, rec)
	if err != nil {
		return err
	}
	if out != nil {
		defer out.Close()
	}

	opts := tui.GameOptions{
		Store:      store,
		User:       currentUser(),
		HoldWindow: e.settings.Input.HoldWindow,
		Logger:     e.logger,
	}

	g, gctx := errgroup.WithContext(sigCtx)
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		return tui.Run(gctx, l, opts)
	})
	g.Go(func() error {
		select {
		case <-done:
		case <-gctx.Done():
			e.logger.Info("signal received, closing", "app", appID)
		}
		return nil
	})
	return g.Wait()
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}
