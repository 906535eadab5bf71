package tui

import (
	"os"
	"os/exec"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"tagboard/internal/board"
)

type externalEditorDoneMsg struct {
	err error
}

// editorArgv resolves the editor command: configured, then $VISUAL, then $EDITOR, then vi.
func editorArgv(configured string) []string {
	for _, v := range []string{configured, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if args := splitShellWords(strings.TrimSpace(v)); len(args) > 0 {
			return args
		}
	}
	return []string{"vi"}
}

// splitShellWords splits s like a POSIX shell would for simple cases: whitespace separates
// words, quotes group them and a backslash escapes the next rune outside single quotes.
func splitShellWords(s string) []string {
	var (
		out      []string
		cur      strings.Builder
		inWord   bool
		inSingle bool
		inDouble bool
		escaped  bool
	)
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && !inSingle:
			escaped, inWord = true, true
		case r == '\'' && !inDouble:
			inSingle, inWord = !inSingle, true
		case r == '"' && !inSingle:
			inDouble, inWord = !inDouble, true
		case unicode.IsSpace(r) && !inSingle && !inDouble:
			if inWord {
				out = append(out, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		out = append(out, cur.String())
	}
	return out
}

// openEditor writes the selected card's text to a temp file and suspends the program while the
// editor runs.
func (m *boardModel) openEditor(text string) (tea.Cmd, error) {
	args := editorArgv(m.opts.EditorCommand)

	f, err := os.CreateTemp("", "tagboard-card-*.md")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	_ = f.Close()

	m.editPath = path
	m.editBefore = text

	cmd := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalEditorDoneMsg{err: err}
	}), nil
}

// applyEditorResult sets the card text from the edited file, if it changed.
func (m *boardModel) applyEditorResult(msg externalEditorDoneMsg) {
	path, before := m.editPath, m.editBefore
	m.editPath, m.editBefore = "", ""
	if path == "" {
		return
	}
	defer func() { _ = os.Remove(path) }()

	if msg.err != nil {
		m.flash("Editor failed: " + msg.err.Error())
		return
	}
	b, err := os.ReadFile(path)
	if err != nil {
		m.flash("Editor read failed: " + err.Error())
		return
	}
	after := strings.TrimRight(string(b), "\n")
	if after == strings.TrimRight(before, "\n") {
		m.flash("No changes")
		return
	}
	m.do(board.SetCurrentCardText{Text: after})
}
