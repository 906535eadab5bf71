package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagboard/internal/publish"
	"tagboard/internal/session"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		to        string
		category  string
		omitTags  bool
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the board as markdown",
		Example: `  tagboard export
  tagboard export --category status --to ./board.md --overwrite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session.Session) error {
				snap := s.Snapshot()
				opt := publish.RenderOptions{Category: category, OmitTags: omitTags}
				if to == "" {
					md, err := publish.RenderBoardMarkdown(snap, opt)
					if err != nil {
						return err
					}
					_, err = fmt.Fprint(cmd.OutOrStdout(), md)
					return err
				}
				res, err := publish.WriteBoard(snap, to, publish.WriteOptions{RenderOptions: opt, Overwrite: overwrite})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": res})
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Write to this file instead of stdout")
	cmd.Flags().StringVar(&category, "category", "", "Group cards into sections by this category's tags")
	cmd.Flags().BoolVar(&omitTags, "omit-tags", false, "Do not list tags after each card")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")

	return cmd
}
