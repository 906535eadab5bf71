package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestJournal_AppendTail(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "b.journal.sqlite")
	j, err := OpenJournal(ctx, path)
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	defer j.Close()

	base := time.Unix(1700000000, 0)
	step := 0
	j.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	for _, typ := range []string{"NewCard", "SetCurrentCardText", "DeleteCurrentCard"} {
		if _, err := j.Append(ctx, typ, []byte(`{"type":"`+typ+`"}`)); err != nil {
			t.Fatalf("Append %s: %v", typ, err)
		}
	}

	got, err := j.Tail(ctx, 2)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].ActionType != "SetCurrentCardText" || got[1].ActionType != "DeleteCurrentCard" {
		t.Fatalf("expected oldest-first tail, got %#v", got)
	}
	if got[0].AtUnixMs >= got[1].AtUnixMs {
		t.Fatalf("timestamps out of order: %d >= %d", got[0].AtUnixMs, got[1].AtUnixMs)
	}
	if got[0].ID == "" || got[0].ID == got[1].ID {
		t.Fatalf("expected unique ids, got %q and %q", got[0].ID, got[1].ID)
	}

	all, err := j.Tail(ctx, 0)
	if err != nil {
		t.Fatalf("Tail(0): %v", err)
	}
	if len(all) != 3 || all[0].ActionType != "NewCard" {
		t.Fatalf("unexpected full tail: %#v", all)
	}
}

func TestJournal_ReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "b.journal.sqlite")
	j, err := OpenJournal(ctx, path)
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	if _, err := j.Append(ctx, "NewCard", []byte(`{"type":"NewCard"}`)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	j2, err := OpenJournal(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer j2.Close()
	got, err := j2.Tail(ctx, 10)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(got) != 1 || got[0].Action != `{"type":"NewCard"}` {
		t.Fatalf("unexpected entries after reopen: %#v", got)
	}
}

func TestJournalPath(t *testing.T) {
	if got, want := JournalPath("/x/work.json"), "/x/work.journal.sqlite"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
