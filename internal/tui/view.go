package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"tagboard/internal/board"
	"tagboard/internal/model"
)

const (
	minColumnWidth = 14
	columnGap      = 1
	previewMin     = 80
)

func (m *boardModel) View() string {
	w, h := m.width, m.height
	if w <= 0 {
		w = 100
	}
	if h <= 0 {
		h = 30
	}

	header := m.renderHeader(w)
	footer := m.renderFooter(w)
	bodyH := h - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyH < 3 {
		bodyH = 3
	}

	mainW, previewW := w, 0
	if w >= previewMin {
		previewW = w / 3
		mainW = w - previewW
	}

	var main string
	if cv := m.snap.CurrentCategoryView; cv != nil {
		main = m.renderColumns(*cv, mainW, bodyH)
	} else {
		main = m.renderList(mainW, bodyH)
	}
	main = lipgloss.NewStyle().Width(mainW).Height(bodyH).MaxHeight(bodyH).Render(main)

	body := main
	if previewW > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, main, m.renderPreview(previewW, bodyH))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *boardModel) renderHeader(width int) string {
	mode := "all cards"
	if cv := m.snap.CurrentCategoryView; cv != nil {
		mode = "category " + cv.Category
	}
	name := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(m.snap.BoardName)
	right := styleMuted().Render(fmt.Sprintf("%s · %d cards", mode, len(m.snap.CardOrder)))
	return xansi.Truncate(name+"  "+right, width, "…")
}

func (m *boardModel) selectedID() (model.CardID, bool) {
	if id := m.snap.InteractionState.Selection.CardID; id != nil {
		return *id, true
	}
	return 0, false
}

// renderList draws the default view: every card in global order, scrolled to keep the
// selection visible.
func (m *boardModel) renderList(width, height int) string {
	if len(m.snap.CardOrder) == 0 {
		return styleMuted().Render("No cards. Press a to add one.")
	}
	sel, hasSel := m.selectedID()
	selIdx := 0
	for i, id := range m.snap.CardOrder {
		if hasSel && id == sel {
			selIdx = i
			break
		}
	}
	start := 0
	if selIdx >= height {
		start = selIdx - height + 1
	}
	end := min(len(m.snap.CardOrder), start+height)

	selected := lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg).Bold(true)
	tagStyle := lipgloss.NewStyle().Foreground(colorTagFg)

	lines := make([]string, 0, end-start)
	for _, id := range m.snap.CardOrder[start:end] {
		card := m.snap.Cards[id]
		if card == nil {
			continue
		}
		line := fmt.Sprintf("%3d  %s", card.ID, firstLine(card.Text))
		if tags := joinTags(card.Tags()); tags != "" {
			line += "  " + tagStyle.Render(tags)
		}
		line = xansi.Truncate(line, width-2, "…")
		if hasSel && id == sel {
			lines = append(lines, selected.Render("› "+line))
		} else {
			lines = append(lines, "  "+line)
		}
	}
	return strings.Join(lines, "\n")
}

// renderColumns draws one column per tag of the viewed category.
func (m *boardModel) renderColumns(cv board.CategoryView, width, height int) string {
	if len(cv.Columns) == 0 {
		return styleMuted().Render("No cards tagged " + cv.Category + ":*")
	}
	n := len(cv.Columns)
	colW := (width - columnGap*(n-1)) / n
	if colW < minColumnWidth {
		colW = minColumnWidth
	}

	sel, hasSel := m.selectedID()
	var selTag model.Tag
	if t := m.snap.InteractionState.Selection.Tag; t != nil {
		selTag = *t
	}

	parts := make([]string, 0, 2*n)
	for i, col := range cv.Columns {
		if i > 0 {
			parts = append(parts, strings.Repeat(" ", columnGap))
		}
		parts = append(parts, m.renderColumn(col, col.Tag == selTag, hasSel, sel, colW, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *boardModel) renderColumn(col board.Column, active, hasSel bool, sel model.CardID, width, height int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Width(width).Background(colorControlBg).Foreground(colorSurfaceFg)
	if active {
		titleStyle = titleStyle.Foreground(colorAccent)
	}
	title := titleStyle.Render(xansi.Truncate(fmt.Sprintf(" %s (%d)", col.Name, len(col.Cards)), width, "…"))

	border := colorCardBorder
	cardStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Width(width - 2)
	lines := []string{title}
	used := 1
	for _, id := range col.Cards {
		card := m.snap.Cards[id]
		if card == nil {
			continue
		}
		st := cardStyle.BorderForeground(border)
		if active && hasSel && id == sel {
			st = cardStyle.BorderForeground(colorSelectedBorder).Bold(true)
		}
		box := st.Render(xansi.Truncate(firstLine(card.Text), width-4, "…"))
		if used+lipgloss.Height(box) > height {
			lines = append(lines, styleMuted().Render(" …"))
			break
		}
		lines = append(lines, box)
		used += lipgloss.Height(box)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *boardModel) renderPreview(width, height int) string {
	st := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Width(width - 2).
		Height(height - 2).
		MaxHeight(height)

	card := m.selectedCard()
	if card == nil {
		return st.Render(styleMuted().Render("Nothing selected"))
	}
	head := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("#%d", card.ID))
	if tags := joinTags(card.Tags()); tags != "" {
		head += " " + lipgloss.NewStyle().Foreground(colorTagFg).Render(tags)
	}
	text := renderMarkdown(card.Text, width-4)
	if text == "" {
		text = styleMuted().Render("(empty)")
	}
	return st.Render(head + "\n\n" + text)
}

func (m *boardModel) renderFooter(width int) string {
	if m.inputKind != inputNone {
		line := m.input.View()
		if s := m.suggestions(); len(s) > 0 {
			line += "  " + styleMuted().Render(strings.Join(s, "  "))
		}
		return xansi.Truncate(line, width, "…")
	}
	if m.status != "" {
		st := lipgloss.NewStyle()
		if m.statusErr {
			st = st.Foreground(colorErrorFg)
		}
		return st.Render(xansi.Truncate(m.status, width, "…"))
	}
	return m.help.View(m.keys)
}

func firstLine(text string) string {
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	return "(empty)"
}

func joinTags(tags []model.Tag) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
