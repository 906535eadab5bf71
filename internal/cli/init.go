package cli

import (
	"github.com/spf13/cobra"

	"tagboard/internal/board"
	"tagboard/internal/session"
	"tagboard/internal/store"
)

func newInitCmd(app *App) *cobra.Command {
	var (
		name       string
		setDefault bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the board file (and optionally make it the default board)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session.Session) error {
				var a board.Action = board.Save{}
				if name != "" {
					a = board.SetBoardName{Name: name}
				}
				snap, err := s.Do(cmd.Context(), a)
				if err != nil {
					return err
				}

				if setDefault {
					app.cfg.BoardFile = app.BoardPath
					if err := store.SaveConfig(app.ConfigPath, app.cfg); err != nil {
						return err
					}
				}

				data := map[string]any{
					"board": app.BoardPath,
					"name":  snap.BoardName,
					"cards": len(snap.CardOrder),
				}
				if app.cfg.JournalEnabled() {
					data["journal"] = store.JournalPath(app.BoardPath)
				}
				return writeOut(cmd, app, map[string]any{"data": data})
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Board name (default: file name)")
	cmd.Flags().BoolVar(&setDefault, "set-default", false, "Record this board as board_file in config.toml")
	return cmd
}
