// Package tui is the interactive terminal client for a board session.
package tui

import (
	log "github.com/sirupsen/logrus"

	tea "github.com/charmbracelet/bubbletea"

	"tagboard/internal/session"
)

type Options struct {
	// EditorCommand overrides $VISUAL/$EDITOR for editing card text.
	EditorCommand string
	Logger        *log.Logger
}

func Run(s *session.Session, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	if opts.Logger == nil {
		opts.Logger = log.New()
	}
	opts.Logger.WithField("board", s.Path()).Debug("starting tui")
	m := newModel(s, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		opts.Logger.WithError(err).Error("tui exited")
	}
	return err
}
