package session

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	log "github.com/sirupsen/logrus"

	"tagboard/internal/board"
	"tagboard/internal/model"
)

func openTemp(t *testing.T, journal bool) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.json")
	s, err := Open(context.Background(), path, Options{Journal: journal, Logger: log.New()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestDo_AppliesAndJournals(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t, true)

	if _, err := s.Do(ctx, board.NewCard{}); err != nil {
		t.Fatalf("NewCard: %v", err)
	}
	snap, err := s.Do(ctx, board.AddTagToCurrentCard{Tag: model.MustTag("status:todo")})
	if err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	if len(snap.CardOrder) != 1 || len(snap.Tags) != 1 {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}

	// Rejected actions are not journaled.
	if _, err := s.Do(ctx, board.ViewDefault{}); !errors.Is(err, board.ErrNoTagSelected) {
		t.Fatalf("expected ErrNoTagSelected, got %v", err)
	}

	hist, err := s.History(ctx, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 2 || hist[0].ActionType != "NewCard" || hist[1].ActionType != "AddTagToCurrentCard" {
		t.Fatalf("unexpected history: %#v", hist)
	}
	a, err := board.DecodeAction([]byte(hist[1].Action))
	if err != nil {
		t.Fatalf("journal entry does not decode: %v", err)
	}
	if a != board.Action(board.AddTagToCurrentCard{Tag: model.MustTag("status:todo")}) {
		t.Fatalf("journal entry decoded to %#v", a)
	}
}

func TestOpen_ReloadsSavedBoard(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t, false)
	if _, err := s.Do(ctx, board.SetBoardName{Name: "Errands"}); err != nil {
		t.Fatalf("SetBoardName: %v", err)
	}
	if _, err := s.History(ctx, 1); !errors.Is(err, ErrNoJournal) {
		t.Fatalf("expected ErrNoJournal, got %v", err)
	}

	s2, err := Open(ctx, path, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s2.Close()
	if got := s2.Snapshot().BoardName; got != "Errands" {
		t.Fatalf("board name: got %q", got)
	}
}

func TestDo_SerializesConcurrentCallers(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Do(ctx, board.NewCard{}); err != nil {
				t.Errorf("NewCard: %v", err)
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if len(snap.CardOrder) != 20 || len(snap.Cards) != 20 {
		t.Fatalf("expected 20 cards, got order=%d cards=%d", len(snap.CardOrder), len(snap.Cards))
	}
}
