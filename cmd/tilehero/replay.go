package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-hero/internal/loop"
	"github.com/vovakirdan/tile-hero/internal/recording"
	"github.com/vovakirdan/tile-hero/internal/registry"
	"github.com/vovakirdan/tile-hero/internal/render"
)

var (
	flagReplayFrames   int
	flagReplayApp      string
	flagReplayRealtime bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Replay a recording headlessly",
	Long: `Play a recording back through a world without a terminal or audio and
print where the player ended up. Playback loops, so --frames may exceed the
recorded length.

Examples:
  tilehero replay ~/.tilehero/session.rec
  tilehero replay run.rec --frames 600 --world overworld
  tilehero replay run.rec --realtime`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&flagReplayFrames, "frames", 0, "Frames to run (0 = the recorded length)")
	replayCmd.Flags().StringVar(&flagReplayApp, "world", "", "World the recording was made in (default: from settings)")
	replayCmd.Flags().BoolVar(&flagReplayRealtime, "realtime", false, "Pace frames at the game rate instead of running flat out")
}

func runReplay(cmd *cobra.Command, args []string) error {
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.Close()

	path := args[0]
	frames, err := recording.ReadAll(path)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return recording.ErrEmpty
	}

	appID := e.settings.World.App
	if flagReplayApp != "" {
		appID = flagReplayApp
	}
	if !registry.Exists(appID) {
		return fmt.Errorf("unknown world %q (run 'tilehero list')", appID)
	}

	rec := recording.New(path)
	if err := rec.StartPlayback(); err != nil {
		return err
	}
	defer rec.Close()

	l, _, err := e.newLoop(appID, false, rec)
	if err != nil {
		return err
	}

	n := flagReplayFrames
	if n <= 0 {
		n = len(frames)
	}
	if flagReplayRealtime {
		err = runPaced(cmd.Context(), l, n)
	} else {
		err = l.RunFrames(cmd.Context(), n)
	}
	if err != nil {
		return err
	}

	state := l.State()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Replayed %s in %s\n", path, l.App().Title())
	fmt.Fprintf(out, "  recorded frames: %d\n", len(frames))
	fmt.Fprintf(out, "  frames run:      %d\n", n)
	fmt.Fprintf(out, "  final map:       %s\n", state.CurrentMap)
	fmt.Fprintf(out, "  player:          (%.1f, %.1f)\n", state.Player.X, state.Player.Y)
	fmt.Fprintf(out, "  coordinate:      %s tile (%d, %d)\n", state.Coordinate.Key, state.Coordinate.TileX, state.Coordinate.TileY)
	return nil
}

// runPaced drives n frames at the loop's game rate.
func runPaced(ctx context.Context, l *loop.Loop, n int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	presented := 0
	return l.Run(ctx, func(*render.Buffer) error {
		presented++
		if presented >= n {
			cancel()
		}
		return nil
	})
}
