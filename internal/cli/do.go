package cli

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tagboard/internal/board"
	"tagboard/internal/session"
)

func newDoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <action-json|->",
		Short: "Perform one raw action and print the resulting snapshot",
		Long: strings.TrimSpace(`
Perform a single action, given as tagged JSON. Use "-" to read the action from stdin.

Interaction state (selection, category view) is not persisted, so each invocation starts
with the first card selected.
`),
		Example: strings.TrimSpace(`
tagboard do '{"type":"NewCard"}'
tagboard do '{"type":"AddTagToCurrentCard","tag":"status:todo"}'
echo '{"type":"SetBoardName","name":"Home"}' | tagboard do -
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := []byte(args[0])
			if args[0] == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, err)
				}
				raw = b
			}
			a, err := board.DecodeAction(raw)
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, func(s *session.Session) error {
				snap, err := s.Do(cmd.Context(), a)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": snap})
			})
		},
	}
	return cmd
}

// doAll performs actions in order and stops at the first error.
func doAll(ctx context.Context, s *session.Session, actions ...board.Action) (board.Snapshot, error) {
	var snap board.Snapshot
	for _, a := range actions {
		var err error
		if snap, err = s.Do(ctx, a); err != nil {
			return snap, err
		}
	}
	return snap, nil
}
