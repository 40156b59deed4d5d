package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-hero/internal/storage"
)

var flagSessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Show recent play sessions",
	Long: `Display the most recent play sessions with their recordings.

Examples:
  tilehero sessions
  tilehero sessions --limit 50
  tilehero sessions --db ./sessions.db`,
	Args: cobra.NoArgs,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagSessionsLimit, "limit", 10, "Number of sessions to show")
}

func runSessions(cmd *cobra.Command, _ []string) error {
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.Close()

	store, err := storage.Open(e.settings.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.RecentSessions(flagSessionsLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Recent sessions")
	fmt.Fprintln(out)

	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'tilehero play' to start one!")
		return nil
	}

	fmt.Fprintf(out, "  %-16s  %-10s  %-10s  %8s  %8s  %-10s  %s\n", "Started", "World", "User", "Frames", "Time", "Map", "Recordings")
	fmt.Fprintf(out, "  %-16s  %-10s  %-10s  %8s  %8s  %-10s  %s\n", "-------", "-----", "----", "------", "----", "---", "----------")

	for _, s := range sessions {
		recs, err := store.Recordings(s.ID)
		if err != nil {
			return err
		}
		elapsed := "-"
		if !s.EndedAt.IsZero() {
			elapsed = s.Duration().Round(time.Second).String()
		}
		fmt.Fprintf(out, "  %-16s  %-10s  %-10s  %8d  %8s  %-10s  %d\n",
			s.StartedAt.Format("2006-01-02 15:04"), s.AppID, s.User, s.Frames, elapsed, s.FinalMap, len(recs))
	}
	return nil
}
