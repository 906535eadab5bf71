package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"tagboard/internal/board"
	"tagboard/internal/session"
)

func newStateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the full board snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session.Session) error {
				return writeOut(cmd, app, map[string]any{"data": s.Snapshot()})
			})
		},
	}
}

func newCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List tag categories in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session.Session) error {
				return writeOut(cmd, app, map[string]any{"data": s.Snapshot().Categories})
			})
		},
	}
}

func newCardsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "List cards in board order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session.Session) error {
				snap := s.Snapshot()
				cards := make([]any, 0, len(snap.CardOrder))
				for _, id := range snap.CardOrder {
					cards = append(cards, snap.Cards[id])
				}
				return writeOut(cmd, app, map[string]any{"data": cards})
			})
		},
	}
}

func newColumnCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "column <category>",
		Short: "Group cards into columns by the tags of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := strings.ToLower(strings.TrimSpace(args[0]))
			return withSession(cmd, app, func(s *session.Session) error {
				var v board.CategoryView
				s.View(func(b *board.Board) { v = b.CategoryView(category) })
				if len(v.Columns) == 0 {
					return errNotFound("category", category)
				}
				return writeOut(cmd, app, map[string]any{"data": v})
			})
		},
	}
}
