package tui

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"tagboard/internal/board"
	"tagboard/internal/model"
	"tagboard/internal/session"
)

func newTestModel(t *testing.T) *boardModel {
	t.Helper()
	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(log.WarnLevel)
	s, err := session.Open(context.Background(), "", session.Options{Logger: logger})
	if err != nil {
		t.Fatalf("session.Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return newModel(s, Options{})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *boardModel, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func selectedID(t *testing.T, m *boardModel) model.CardID {
	t.Helper()
	id := m.snap.InteractionState.Selection.CardID
	if id == nil {
		t.Fatalf("no card selected")
	}
	return *id
}

func TestKeys_NewSelectAndMove(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("a"), runes("a"), runes("a"))

	if got, want := m.snap.CardOrder, []model.CardID{0, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order: got %v want %v", got, want)
	}
	if got := selectedID(t, m); got != 2 {
		t.Fatalf("selected: got %d want 2", got)
	}

	press(m, runes("k"))
	if got := selectedID(t, m); got != 1 {
		t.Fatalf("selected after k: got %d want 1", got)
	}

	press(m, runes("K"))
	if got, want := m.snap.CardOrder, []model.CardID{1, 0, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order after K: got %v want %v", got, want)
	}

	press(m, runes("d"))
	if len(m.snap.CardOrder) != 2 {
		t.Fatalf("expected 2 cards after delete, got %v", m.snap.CardOrder)
	}
}

func TestKeys_TagPromptAndCategoryCompletion(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("a"), runes("t"))
	if m.inputKind != inputAddTag {
		t.Fatalf("expected add-tag prompt, got %v", m.inputKind)
	}
	press(m, runes("Status:Todo"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.inputKind != inputNone {
		t.Fatalf("prompt should close on enter")
	}
	card := m.selectedCard()
	if card == nil || !card.HasTag(model.MustTag("status:todo")) {
		t.Fatalf("tag not added: %#v (status %q)", card, m.status)
	}

	press(m, runes("c"), runes("sta"), tea.KeyMsg{Type: tea.KeyTab})
	if got := m.input.Value(); got != "status" {
		t.Fatalf("completion: got %q want %q", got, "status")
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	tag := m.snap.InteractionState.Selection.Tag
	if tag == nil || tag.String() != "status:todo" {
		t.Fatalf("expected category view on status:todo, got %v", tag)
	}
	if m.snap.CurrentCategoryView == nil || m.snap.CurrentCategoryView.Category != "status" {
		t.Fatalf("missing category view in snapshot")
	}

	// New cards in category view inherit the selected tag.
	press(m, runes("a"))
	if card := m.selectedCard(); card == nil || !card.HasTag(model.MustTag("status:todo")) {
		t.Fatalf("new card should carry status:todo")
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.snap.InteractionState.Selection.Tag != nil {
		t.Fatalf("esc should return to default view")
	}
}

func TestKeys_InvalidTagIsFlashed(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("a"), runes("t"), runes("notag"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.statusErr || !strings.Contains(m.status, "notag") {
		t.Fatalf("expected invalid tag error, got %q", m.status)
	}
	if card := m.selectedCard(); card == nil || len(card.Tags()) != 0 {
		t.Fatalf("card should be untouched")
	}
}

func TestKeys_RejectedActionIsFlashed(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.statusErr || m.status != board.ErrNoTagSelected.Error() {
		t.Fatalf("status: got %q", m.status)
	}

	// Any key clears the previous message.
	press(m, runes("?"))
	if m.statusErr {
		t.Fatalf("status should reset, got %q", m.status)
	}
}

func TestKeys_CancelPromptLeavesBoard(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("r"))
	if got := m.input.Value(); got != m.snap.BoardName {
		t.Fatalf("rename prompt should prefill the name, got %q", got)
	}
	press(m, runes("x"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.inputKind != inputNone {
		t.Fatalf("esc should cancel the prompt")
	}

	press(m, runes("r"), tea.KeyMsg{Type: tea.KeyCtrlU}, runes("Groceries"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.snap.BoardName != "Groceries" {
		t.Fatalf("board name: got %q", m.snap.BoardName)
	}
}

func TestApplyEditorResult_SetsText(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("a"))

	path := filepath.Join(t.TempDir(), "card.md")
	if err := os.WriteFile(path, []byte("buy milk\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m.editPath, m.editBefore = path, ""
	m.applyEditorResult(externalEditorDoneMsg{})

	if card := m.selectedCard(); card == nil || card.Text != "buy milk" {
		t.Fatalf("text not applied: %#v", card)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("temp file should be removed")
	}
	if m.editPath != "" {
		t.Fatalf("edit state should reset")
	}
}

func TestApplyEditorResult_Unchanged(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("a"))

	path := filepath.Join(t.TempDir(), "card.md")
	if err := os.WriteFile(path, []byte("\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m.editPath, m.editBefore = path, ""
	m.applyEditorResult(externalEditorDoneMsg{})
	if m.status != "No changes" {
		t.Fatalf("status: got %q", m.status)
	}
}

func TestView_RendersListAndColumns(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.WindowSizeMsg{Width: 120, Height: 30})

	if out := m.View(); !strings.Contains(out, "No cards") {
		t.Fatalf("empty board view:\n%s", out)
	}

	ctx := context.Background()
	for _, a := range []board.Action{
		board.NewCard{},
		board.SetCurrentCardText{Text: "buy milk"},
		board.AddTagToCurrentCard{Tag: model.MustTag("status:todo")},
		board.NewCard{},
		board.SetCurrentCardText{Text: "write report"},
		board.AddTagToCurrentCard{Tag: model.MustTag("status:done")},
	} {
		if _, err := m.sess.Do(ctx, a); err != nil {
			t.Fatalf("%s: %v", a.Type(), err)
		}
	}
	m.snap = m.sess.Snapshot()

	out := m.View()
	for _, want := range []string{"buy milk", "write report", "all cards"} {
		if !strings.Contains(out, want) {
			t.Fatalf("default view missing %q:\n%s", want, out)
		}
	}

	m.do(board.ViewCategory{Category: "status"})
	out = m.View()
	for _, want := range []string{"todo (1)", "done (1)", "category status"} {
		if !strings.Contains(out, want) {
			t.Fatalf("category view missing %q:\n%s", want, out)
		}
	}
}

func TestSplitShellWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"vim", []string{"vim"}},
		{"code --wait", []string{"code", "--wait"}},
		{`"/Applications/My Editor" -w`, []string{"/Applications/My Editor", "-w"}},
		{`emacs -nw '--eval=(x y)'`, []string{"emacs", "-nw", "--eval=(x y)"}},
		{`vim\ -u\ foo`, []string{"vim -u foo"}},
		{`a '' b`, []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		if got := splitShellWords(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitShellWords(%q): got %#v want %#v", tt.in, got, tt.want)
		}
	}
}

func TestEditorArgv_Precedence(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	if got := editorArgv(""); !reflect.DeepEqual(got, []string{"vi"}) {
		t.Fatalf("fallback: got %v", got)
	}

	t.Setenv("EDITOR", "nano")
	if got := editorArgv(""); !reflect.DeepEqual(got, []string{"nano"}) {
		t.Fatalf("EDITOR: got %v", got)
	}

	t.Setenv("VISUAL", "code --wait")
	if got := editorArgv(""); !reflect.DeepEqual(got, []string{"code", "--wait"}) {
		t.Fatalf("VISUAL: got %v", got)
	}

	if got := editorArgv("hx"); !reflect.DeepEqual(got, []string{"hx"}) {
		t.Fatalf("configured: got %v", got)
	}
}
