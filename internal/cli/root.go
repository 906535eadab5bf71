package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tagboard/internal/format"
	"tagboard/internal/session"
	"tagboard/internal/store"
	"tagboard/internal/tui"
)

type App struct {
	BoardPath  string
	ConfigPath string
	PrettyJSON bool
	Format     string

	cfg    *store.Config
	logger *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tagboard",
		Short:        "Tag-driven card board (CLI + TUI + HTTP)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tagboard

  # Scriptable commands
  tagboard card new --text "write docs" --tag status:todo
  tagboard column status

  # Perform a raw action (shortcut for: tagboard do '<json>')
  tagboard '{"type":"SetBoardName","name":"Work"}'
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd.ErrOrStderr())
	}

	cmd.PersistentFlags().StringVar(&app.BoardPath, "board", envOr("TAGBOARD_BOARD", ""), "Path to the board file (default: board_file from config, else ~/.tagboard/board.json)")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("TAGBOARD_CONFIG", ""), "Path to config.toml (default: ~/.tagboard/config.toml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TAGBOARD_FORMAT", "json"), "Output format (json|edn|yaml)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newStateCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newCardsCmd(app))
	cmd.AddCommand(newColumnCmd(app))
	cmd.AddCommand(newDoCmd(app))
	cmd.AddCommand(newCardCmd(app))
	cmd.AddCommand(newViewCmd(app))
	cmd.AddCommand(newRenameCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// setup loads the config, builds the logger and resolves the board path.
// Precedence: flag > env > config file > default.
func (app *App) setup(stderr io.Writer) error {
	cfg, err := store.LoadConfig(app.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	app.cfg = cfg

	logger := log.New()
	logger.SetOutput(stderr)
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("config log_level: %w", err)
	}
	logger.SetLevel(level)
	app.logger = logger

	app.BoardPath = strings.TrimSpace(app.BoardPath)
	if app.BoardPath == "" {
		app.BoardPath = strings.TrimSpace(cfg.BoardFile)
	}
	if app.BoardPath == "" {
		p, err := store.DefaultBoardPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		app.BoardPath = p
	}
	return nil
}

func openSession(ctx context.Context, app *App) (*session.Session, error) {
	return session.Open(ctx, app.BoardPath, session.Options{
		Journal: app.cfg.JournalEnabled(),
		Logger:  app.logger,
	})
}

// withSession opens the board for the duration of fn.
func withSession(cmd *cobra.Command, app *App, fn func(s *session.Session) error) error {
	s, err := openSession(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = s.Close() }()
	if err := fn(s); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	s, err := openSession(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = s.Close() }()
	return tui.Run(s, tui.Options{
		EditorCommand: app.cfg.EditorCommand,
		Logger:        app.logger,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
