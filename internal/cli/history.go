package cli

import (
	"encoding/json"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tagboard/internal/session"
)

type historyEntry struct {
	ID     string          `json:"id"`
	At     string          `json:"at"`
	Ago    string          `json:"ago"`
	Type   string          `json:"type"`
	Action json.RawMessage `json:"action"`
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently applied actions from the board journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session.Session) error {
				entries, err := s.History(cmd.Context(), limit)
				if err != nil {
					return err
				}
				now := time.Now()
				out := make([]historyEntry, 0, len(entries))
				for _, e := range entries {
					at := time.UnixMilli(e.AtUnixMs)
					out = append(out, historyEntry{
						ID:     e.ID,
						At:     at.UTC().Format(time.RFC3339Nano),
						Ago:    humanize.RelTime(at, now, "ago", "from now"),
						Type:   e.ActionType,
						Action: json.RawMessage(e.Action),
					})
				}
				return writeOut(cmd, app, map[string]any{"data": out})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of entries (0 = all)")
	return cmd
}
