// Package session serializes access to one board and records applied actions in its journal.
package session

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"tagboard/internal/board"
	"tagboard/internal/store"
)

type Options struct {
	// Journal opens the action journal next to the board file.
	Journal bool
	Logger  *log.Logger
}

// Session owns a board for the lifetime of a process (CLI invocation, TUI or server).
type Session struct {
	mu      sync.Mutex
	board   *board.Board
	journal *store.Journal
	logger  *log.Logger
}

var ErrNoJournal = errors.New("journal disabled")

func Open(ctx context.Context, path string, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New()
	}
	b, err := board.Load(path)
	if err != nil {
		return nil, err
	}
	s := &Session{board: b, logger: logger}
	if opts.Journal && path != "" {
		j, err := store.OpenJournal(ctx, store.JournalPath(path))
		if err != nil {
			// The board is still usable without history.
			logger.WithError(err).WithField("board", path).Warn("journal unavailable")
		} else {
			s.journal = j
		}
	}
	logger.WithFields(log.Fields{"board": path, "cards": b.Len()}).Debug("board loaded")
	return s, nil
}

// Do performs a and returns the resulting snapshot. On a *board.PersistError the snapshot
// reflects the in-memory state, which was mutated.
func (s *Session) Do(ctx context.Context, a board.Action) (board.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.board.PerformAction(a)
	var persist *board.PersistError
	switch {
	case err == nil:
	case errors.As(err, &persist):
		s.logger.WithError(err).WithField("action", a.Type()).Error("board save failed")
	default:
		s.logger.WithError(err).WithField("action", a.Type()).Debug("action rejected")
		return s.board.Snapshot(), err
	}
	s.record(ctx, a)
	return s.board.Snapshot(), err
}

func (s *Session) record(ctx context.Context, a board.Action) {
	if s.journal == nil {
		return
	}
	raw, err := board.EncodeAction(a)
	if err != nil {
		s.logger.WithError(err).WithField("action", a.Type()).Warn("journal encode failed")
		return
	}
	if _, err := s.journal.Append(ctx, a.Type(), raw); err != nil {
		s.logger.WithError(err).WithField("action", a.Type()).Warn("journal append failed")
	}
}

func (s *Session) Snapshot() board.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Snapshot()
}

// View runs fn with the board locked. fn must not retain b.
func (s *Session) View(fn func(b *board.Board)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.board)
}

func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Path()
}

// History returns the newest n journal entries, oldest first.
func (s *Session) History(ctx context.Context, n int) ([]store.JournalEntry, error) {
	if s.journal == nil {
		return nil, ErrNoJournal
	}
	return s.journal.Tail(ctx, n)
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.Close()
}
