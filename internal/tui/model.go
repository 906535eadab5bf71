package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"tagboard/internal/board"
	"tagboard/internal/model"
	"tagboard/internal/session"
)

type inputKind int

const (
	inputNone inputKind = iota
	inputAddTag
	inputDeleteTag
	inputCategory
	inputRename
)

const maxSuggestions = 5

type boardModel struct {
	sess *session.Session
	opts Options
	keys keyMap
	help help.Model

	snap          board.Snapshot
	width, height int

	input     textinput.Model
	inputKind inputKind

	status    string
	statusErr bool

	editPath   string
	editBefore string
}

func newModel(s *session.Session, opts Options) *boardModel {
	in := textinput.New()
	in.CharLimit = 200
	return &boardModel{
		sess:  s,
		opts:  opts,
		keys:  defaultKeyMap(),
		help:  help.New(),
		snap:  s.Snapshot(),
		input: in,
	}
}

func (m *boardModel) Init() tea.Cmd { return nil }

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case externalEditorDoneMsg:
		m.applyEditorResult(msg)
	case tea.KeyMsg:
		if m.inputKind != inputNone {
			return m, m.updateInput(msg)
		}
		return m, m.updateNormal(msg)
	}
	return m, nil
}

func (m *boardModel) updateNormal(msg tea.KeyMsg) tea.Cmd {
	m.status, m.statusErr = "", false
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.Down):
		m.do(board.SelectCardVerticalOffset{Offset: 1})
	case key.Matches(msg, k.Up):
		m.do(board.SelectCardVerticalOffset{Offset: -1})
	case key.Matches(msg, k.MoveDown):
		m.do(board.MoveCurrentCardVerticalOffset{Offset: 1})
	case key.Matches(msg, k.MoveUp):
		m.do(board.MoveCurrentCardVerticalOffset{Offset: -1})
	case key.Matches(msg, k.Left):
		m.do(board.SelectCardHorizontalOffset{Offset: -1})
	case key.Matches(msg, k.Right):
		m.do(board.SelectCardHorizontalOffset{Offset: 1})
	case key.Matches(msg, k.MoveLeft):
		m.do(board.MoveCurrentCardHorizontalInCategory{Offset: -1})
	case key.Matches(msg, k.MoveRight):
		m.do(board.MoveCurrentCardHorizontalInCategory{Offset: 1})
	case key.Matches(msg, k.New):
		m.do(board.NewCard{})
	case key.Matches(msg, k.Delete):
		m.do(board.DeleteCurrentCard{})
	case key.Matches(msg, k.Default):
		m.do(board.ViewDefault{})
	case key.Matches(msg, k.Category):
		return m.startInput(inputCategory, "category: ", "")
	case key.Matches(msg, k.AddTag):
		prefill := ""
		if cv := m.snap.CurrentCategoryView; cv != nil {
			prefill = cv.Category + ":"
		}
		return m.startInput(inputAddTag, "add tag: ", prefill)
	case key.Matches(msg, k.DeleteTag):
		return m.startInput(inputDeleteTag, "remove tag: ", "")
	case key.Matches(msg, k.Rename):
		return m.startInput(inputRename, "board name: ", m.snap.BoardName)
	case key.Matches(msg, k.Save):
		if m.do(board.Save{}) {
			m.flash("Saved " + m.sess.Path())
		}
	case key.Matches(msg, k.Edit):
		card := m.selectedCard()
		if card == nil {
			m.flashErr(board.ErrNoCardSelected)
			return nil
		}
		cmd, err := m.openEditor(card.Text)
		if err != nil {
			m.flashErr(err)
			return nil
		}
		return cmd
	case key.Matches(msg, k.Yank):
		card := m.selectedCard()
		if card == nil {
			m.flashErr(board.ErrNoCardSelected)
			return nil
		}
		if err := clipboard.WriteAll(card.Text); err != nil {
			m.flashErr(err)
			return nil
		}
		m.flash("Copied card text")
	case key.Matches(msg, k.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *boardModel) startInput(kind inputKind, prompt, value string) tea.Cmd {
	m.inputKind = kind
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *boardModel) stopInput() {
	m.inputKind = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m *boardModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.CancelInput):
		m.stopInput()
		return nil
	case key.Matches(msg, m.keys.Submit):
		kind, value := m.inputKind, strings.TrimSpace(m.input.Value())
		m.stopInput()
		m.submit(kind, value)
		return nil
	case key.Matches(msg, m.keys.Complete):
		if s := m.suggestions(); len(s) > 0 {
			m.input.SetValue(s[0])
			m.input.CursorEnd()
		}
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *boardModel) submit(kind inputKind, value string) {
	if value == "" {
		return
	}
	switch kind {
	case inputAddTag, inputDeleteTag:
		tag, err := model.NewTag(value)
		if err != nil {
			m.flashErr(err)
			return
		}
		if kind == inputAddTag {
			m.do(board.AddTagToCurrentCard{Tag: tag})
		} else {
			m.do(board.DeleteTagFromCurrentCard{Tag: tag})
		}
	case inputCategory:
		m.do(board.ViewCategory{Category: value})
	case inputRename:
		m.do(board.SetBoardName{Name: value})
	}
}

// candidates lists what the current prompt can complete to.
func (m *boardModel) candidates() []string {
	var out []string
	switch m.inputKind {
	case inputCategory:
		out = append(out, m.snap.Categories...)
	case inputAddTag:
		for _, t := range m.snap.Tags {
			out = append(out, t.String())
		}
	case inputDeleteTag:
		if card := m.selectedCard(); card != nil {
			for _, t := range card.Tags() {
				out = append(out, t.String())
			}
		}
	}
	return out
}

// suggestions fuzzy-matches the prompt value against candidates, best first.
func (m *boardModel) suggestions() []string {
	cands := m.candidates()
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		if len(cands) > maxSuggestions {
			cands = cands[:maxSuggestions]
		}
		return cands
	}
	var out []string
	for _, match := range fuzzy.Find(value, cands) {
		out = append(out, match.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// do performs a through the session and keeps the latest snapshot, even on error.
func (m *boardModel) do(a board.Action) bool {
	snap, err := m.sess.Do(context.Background(), a)
	m.snap = snap
	if err != nil {
		m.flashErr(err)
		return false
	}
	return true
}

func (m *boardModel) selectedCard() *model.Card {
	if id := m.snap.InteractionState.Selection.CardID; id != nil {
		return m.snap.Cards[*id]
	}
	return nil
}

func (m *boardModel) flash(s string) {
	m.status, m.statusErr = s, false
}

func (m *boardModel) flashErr(err error) {
	m.status, m.statusErr = err.Error(), true
}
