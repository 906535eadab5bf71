// Package publish renders a board snapshot as a markdown document.
package publish

import (
	"bytes"
	"fmt"
	"strings"

	"tagboard/internal/board"
	"tagboard/internal/model"
)

type RenderOptions struct {
	// Category renders one section per column of that category instead of the flat list.
	Category string
	// OmitTags drops the tag list after each card's first line.
	OmitTags bool
}

func RenderBoardMarkdown(snap board.Snapshot, opt RenderOptions) (string, error) {
	var buf bytes.Buffer
	category := strings.ToLower(strings.TrimSpace(opt.Category))

	title := strings.TrimSpace(snap.BoardName)
	if category != "" {
		title += ": " + category
	}
	buf.WriteString("# " + title + "\n")

	if category == "" {
		buf.WriteString("\n")
		if len(snap.CardOrder) == 0 {
			buf.WriteString("_No cards._\n")
		}
		for _, id := range snap.CardOrder {
			writeCard(&buf, snap.Cards[id], !opt.OmitTags)
		}
		return buf.String(), nil
	}

	view := columnsOf(snap, category)
	if len(view) == 0 {
		return "", fmt.Errorf("%w: %q", board.ErrNoSuchCategory, category)
	}
	for _, col := range view {
		fmt.Fprintf(&buf, "\n## %s\n\n", displayName(col.Name))
		for _, id := range col.Cards {
			writeCard(&buf, snap.Cards[id], !opt.OmitTags)
		}
	}
	return buf.String(), nil
}

// columnsOf groups snap's cards by the tags of category, matching Board.CategoryView.
func columnsOf(snap board.Snapshot, category string) []board.Column {
	if cv := snap.CurrentCategoryView; cv != nil && cv.Category == category {
		return cv.Columns
	}
	var cols []board.Column
	for _, t := range snap.Tags {
		if t.Category() != category {
			continue
		}
		col := board.Column{Tag: t, Name: t.Value()}
		for _, id := range snap.CardOrder {
			if c := snap.Cards[id]; c != nil && c.HasTag(t) {
				col.Cards = append(col.Cards, id)
			}
		}
		cols = append(cols, col)
	}
	return cols
}

func displayName(value string) string {
	if value == "" {
		return "(none)"
	}
	return value
}

func writeCard(buf *bytes.Buffer, c *model.Card, withTags bool) {
	if c == nil {
		return
	}
	lines := strings.Split(strings.TrimRight(c.Text, "\n"), "\n")
	first := strings.TrimSpace(lines[0])
	if first == "" {
		first = "_(empty)_"
	}
	fmt.Fprintf(buf, "- **#%d** %s", c.ID, first)
	if withTags {
		for _, t := range c.Tags() {
			buf.WriteString(" `" + t.String() + "`")
		}
	}
	buf.WriteString("\n")
	for _, l := range lines[1:] {
		if strings.TrimSpace(l) == "" {
			buf.WriteString("\n")
			continue
		}
		buf.WriteString("  " + l + "\n")
	}
}
