package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tagboard/internal/board"
	"tagboard/internal/model"
	"tagboard/internal/session"
)

func newCardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Card commands",
	}
	cmd.AddCommand(newCardNewCmd(app))
	cmd.AddCommand(newCardDeleteCmd(app))
	cmd.AddCommand(newCardTextCmd(app))
	cmd.AddCommand(newCardTagCmd(app))
	cmd.AddCommand(newCardUntagCmd(app))
	cmd.AddCommand(newCardSelectCmd(app))
	cmd.AddCommand(newCardMoveCmd(app))
	return cmd
}

func parseCardID(s string) (model.CardID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errUsage("invalid card id: %q", s)
	}
	return model.CardID(n), nil
}

// parseTags parses every tag before anything is applied and drops repeats, so a repeated
// --tag cannot fail halfway through a command.
func parseTags(raw []string) ([]model.Tag, error) {
	out := make([]model.Tag, 0, len(raw))
	seen := make(map[model.Tag]struct{}, len(raw))
	for _, r := range raw {
		t, err := model.NewTag(strings.TrimSpace(r))
		if err != nil {
			return nil, err
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

// selectedCard returns the card the snapshot has selected.
func selectedCard(snap board.Snapshot) *model.Card {
	if id := snap.InteractionState.Selection.CardID; id != nil {
		return snap.Cards[*id]
	}
	return nil
}

func newCardNewCmd(app *App) *cobra.Command {
	var (
		text  string
		tags  []string
		after string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a card (appended, or inserted after --after)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseTags(tags)
			if err != nil {
				return writeErr(cmd, err)
			}
			var afterID *model.CardID
			if after != "" {
				id, err := parseCardID(after)
				if err != nil {
					return writeErr(cmd, err)
				}
				afterID = &id
			}
			return withSession(cmd, app, func(s *session.Session) error {
				// A freshly loaded board selects its first card; select the last one to append.
				if afterID == nil {
					s.View(func(b *board.Board) {
						if order := b.CardOrder(); len(order) > 0 {
							afterID = &order[len(order)-1]
						}
					})
				}
				var actions []board.Action
				if afterID != nil {
					actions = append(actions, board.SelectCard{CardID: *afterID})
				}
				actions = append(actions, board.NewCard{})
				if text != "" {
					actions = append(actions, board.SetCurrentCardText{Text: text})
				}
				for _, t := range parsed {
					actions = append(actions, board.AddTagToCurrentCard{Tag: t})
				}
				snap, err := doAll(cmd.Context(), s, actions...)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": selectedCard(snap)})
			})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Card text")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag (category:value); repeatable")
	cmd.Flags().StringVar(&after, "after", "", "Insert after this card id")
	return cmd
}

func newCardDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <card-id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCardID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, func(s *session.Session) error {
				if _, err := doAll(cmd.Context(), s, board.SelectCard{CardID: id}, board.DeleteCurrentCard{}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
			})
		},
	}
}

func newCardTextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "text <card-id> <text|->",
		Short: `Replace a card's text ("-" reads stdin)`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCardID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			text := args[1]
			if text == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, err)
				}
				text = string(b)
			}
			return withSession(cmd, app, func(s *session.Session) error {
				snap, err := doAll(cmd.Context(), s, board.SelectCard{CardID: id}, board.SetCurrentCardText{Text: text})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": selectedCard(snap)})
			})
		},
	}
}

func newCardTagCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <card-id> <category:value>...",
		Short: "Add tags to a card",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return retagCard(cmd, app, args, func(t model.Tag) board.Action {
				return board.AddTagToCurrentCard{Tag: t}
			})
		},
	}
}

func newCardUntagCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "untag <card-id> <category:value>...",
		Short: "Remove tags from a card",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return retagCard(cmd, app, args, func(t model.Tag) board.Action {
				return board.DeleteTagFromCurrentCard{Tag: t}
			})
		},
	}
}

func retagCard(cmd *cobra.Command, app *App, args []string, action func(model.Tag) board.Action) error {
	id, err := parseCardID(args[0])
	if err != nil {
		return writeErr(cmd, err)
	}
	tags, err := parseTags(args[1:])
	if err != nil {
		return writeErr(cmd, err)
	}
	actions := []board.Action{board.SelectCard{CardID: id}}
	for _, t := range tags {
		actions = append(actions, action(t))
	}
	return withSession(cmd, app, func(s *session.Session) error {
		snap, err := doAll(cmd.Context(), s, actions...)
		if err != nil {
			return err
		}
		return writeOut(cmd, app, map[string]any{"data": selectedCard(snap)})
	})
}

func newCardSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select <card-id>",
		Short: "Select a card and print the resulting interaction state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCardID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, func(s *session.Session) error {
				snap, err := s.Do(cmd.Context(), board.SelectCard{CardID: id})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": snap.InteractionState})
			})
		},
	}
}

func newCardMoveCmd(app *App) *cobra.Command {
	var (
		index  int
		offset int
		column string
	)

	cmd := &cobra.Command{
		Use:   "move <card-id>",
		Short: "Move a card (--index, --offset or --column)",
		Example: strings.TrimSpace(`
tagboard card move 3 --index 0
tagboard card move 3 --offset -1
tagboard card move 3 --column status:done
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCardID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			set := 0
			for _, name := range []string{"index", "offset", "column"} {
				if cmd.Flags().Changed(name) {
					set++
				}
			}
			if set != 1 {
				return writeErr(cmd, errUsage("exactly one of --index, --offset or --column is required"))
			}

			actions := []board.Action{board.SelectCard{CardID: id}}
			var target model.Tag
			switch {
			case cmd.Flags().Changed("index"):
				actions = append(actions, board.MoveCurrentCardToIndex{Index: index})
			case cmd.Flags().Changed("offset"):
				actions = append(actions, board.MoveCurrentCardVerticalOffset{Offset: offset})
			default:
				target, err = model.NewTag(strings.TrimSpace(column))
				if err != nil {
					return writeErr(cmd, err)
				}
				actions = append(actions,
					board.ViewCategory{Category: target.Category()},
					board.MoveCurrentCardToColumn{Tag: target},
				)
			}

			return withSession(cmd, app, func(s *session.Session) error {
				if !target.IsZero() {
					// ViewCategory would jump to a neighbour if the card is not in the category.
					var inCategory bool
					cat := target.Category()
					s.View(func(b *board.Board) {
						if c, ok := b.Card(id); ok {
							inCategory = c.HasCategory(cat)
						}
					})
					if !inCategory {
						return errNotFound("card in category "+cat, args[0])
					}
				}
				snap, err := doAll(cmd.Context(), s, actions...)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"card":       snap.Cards[id],
					"card_order": snap.CardOrder,
				}})
			})
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "Absolute position in board order")
	cmd.Flags().IntVar(&offset, "offset", 0, "Relative move in board order (clamped)")
	cmd.Flags().StringVar(&column, "column", "", "Target column tag (category:value); the card must already be in that category")
	return cmd
}
