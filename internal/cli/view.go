package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"tagboard/internal/board"
	"tagboard/internal/session"
)

func newViewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Print the default view or a category view",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "default",
		Short: "Cards in board order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session.Session) error {
				snap := s.Snapshot()
				cards := make([]any, 0, len(snap.CardOrder))
				for _, id := range snap.CardOrder {
					cards = append(cards, snap.Cards[id])
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"board_name": snap.BoardName,
					"cards":      cards,
					"selection":  snap.InteractionState.Selection,
				}})
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "category <name>",
		Short: "Enter category view and print its columns and selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session.Session) error {
				snap, err := s.Do(cmd.Context(), board.ViewCategory{Category: args[0]})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"view":      snap.CurrentCategoryView,
					"selection": snap.InteractionState.Selection,
				}})
			})
		},
	})
	return cmd
}

func newRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename the board",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return writeErr(cmd, errUsage("board name is empty"))
			}
			return withSession(cmd, app, func(s *session.Session) error {
				snap, err := s.Do(cmd.Context(), board.SetBoardName{Name: name})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"name": snap.BoardName}})
			})
		},
	}
}
