package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tagboard/internal/board"
	"tagboard/internal/model"
)

func testSnapshot(t *testing.T) board.Snapshot {
	t.Helper()
	b := board.New("")
	for _, a := range []board.Action{
		board.SetBoardName{Name: "Work"},
		board.NewCard{},
		board.SetCurrentCardText{Text: "Write docs\nwith **markdown**"},
		board.AddTagToCurrentCard{Tag: model.MustTag("status:todo")},
		board.NewCard{},
		board.SetCurrentCardText{Text: "Ship it"},
		board.AddTagToCurrentCard{Tag: model.MustTag("status:done")},
		board.AddTagToCurrentCard{Tag: model.MustTag("area:cli")},
		board.NewCard{},
	} {
		if err := b.PerformAction(a); err != nil {
			t.Fatalf("%s: %v", a.Type(), err)
		}
	}
	return b.Snapshot()
}

func TestRenderBoardMarkdown_DefaultView(t *testing.T) {
	t.Parallel()

	md, err := RenderBoardMarkdown(testSnapshot(t), RenderOptions{})
	if err != nil {
		t.Fatalf("RenderBoardMarkdown: %v", err)
	}
	for _, want := range []string{
		"# Work\n",
		"- **#0** Write docs `status:todo`\n  with **markdown**\n",
		"- **#1** Ship it `area:cli` `status:done`\n",
		"- **#2** _(empty)_\n",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing %q in:\n%s", want, md)
		}
	}
	if strings.Index(md, "#0") > strings.Index(md, "#1") {
		t.Fatalf("cards out of order:\n%s", md)
	}
}

func TestRenderBoardMarkdown_CategorySections(t *testing.T) {
	t.Parallel()

	md, err := RenderBoardMarkdown(testSnapshot(t), RenderOptions{Category: "Status", OmitTags: true})
	if err != nil {
		t.Fatalf("RenderBoardMarkdown: %v", err)
	}
	if !strings.HasPrefix(md, "# Work: status\n") {
		t.Fatalf("unexpected title:\n%s", md)
	}
	done, todo := strings.Index(md, "## done"), strings.Index(md, "## todo")
	if done < 0 || todo < 0 || done > todo {
		t.Fatalf("expected sorted column sections:\n%s", md)
	}
	if strings.Contains(md, "`status:") {
		t.Fatalf("tags should be omitted:\n%s", md)
	}
	if strings.Contains(md, "#2") {
		t.Fatalf("untagged card should not appear:\n%s", md)
	}
}

func TestRenderBoardMarkdown_UnknownCategory(t *testing.T) {
	t.Parallel()

	_, err := RenderBoardMarkdown(testSnapshot(t), RenderOptions{Category: "nope"})
	if !errors.Is(err, board.ErrNoSuchCategory) {
		t.Fatalf("expected ErrNoSuchCategory, got %v", err)
	}
}

func TestWriteBoard_RespectsOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "board.md")
	snap := testSnapshot(t)

	res, err := WriteBoard(snap, path, WriteOptions{})
	if err != nil {
		t.Fatalf("WriteBoard: %v", err)
	}
	if len(res.Written) != 1 || res.Written[0] != path {
		t.Fatalf("unexpected result: %#v", res)
	}
	b, err := os.ReadFile(path)
	if err != nil || !strings.HasPrefix(string(b), "# Work") {
		t.Fatalf("read back: %v %q", err, b)
	}

	if _, err := WriteBoard(snap, path, WriteOptions{}); err == nil {
		t.Fatalf("expected error without overwrite")
	}
	if _, err := WriteBoard(snap, path, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if _, err := WriteBoard(snap, " ", WriteOptions{}); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
