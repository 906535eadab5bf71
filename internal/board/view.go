package board

import (
	"sort"

	"tagboard/internal/model"
)

// Column is the set of cards sharing one exact tag, in default order.
type Column struct {
	Tag   model.Tag      `json:"tag"`
	Name  string         `json:"name"`
	Cards []model.CardID `json:"cards"`
}

type CategoryView struct {
	Category string   `json:"category"`
	Columns  []Column `json:"columns"`
}

// Snapshot is a read-only copy of everything a client needs to render the board.
type Snapshot struct {
	BoardName           string                       `json:"board_name"`
	Cards               map[model.CardID]*model.Card `json:"cards"`
	CardOrder           []model.CardID               `json:"card_order"`
	Categories          []string                     `json:"categories"`
	Tags                []model.Tag                  `json:"tags"`
	InteractionState    InteractionState             `json:"interaction_state"`
	CurrentCategoryView *CategoryView                `json:"current_category_view,omitempty"`
}

// Categories returns every tag category in use, sorted and deduplicated.
func (b *Board) Categories() []string {
	seen := map[string]struct{}{}
	for _, c := range b.cards {
		for _, t := range c.Tags() {
			seen[t.Category()] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// Tags returns every tag in use, sorted and deduplicated.
func (b *Board) Tags() []model.Tag {
	seen := map[model.Tag]struct{}{}
	for _, c := range b.cards {
		for _, t := range c.Tags() {
			seen[t] = struct{}{}
		}
	}
	out := make([]model.Tag, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (b *Board) HasCategory(category string) bool {
	for _, c := range b.cards {
		if c.HasCategory(category) {
			return true
		}
	}
	return false
}

// columnTags lists the tags of category that at least one card carries, sorted by value.
func (b *Board) columnTags(category string) []model.Tag {
	var out []model.Tag
	for _, t := range b.Tags() {
		if t.Category() == category {
			out = append(out, t)
		}
	}
	return out
}

// CategoryView groups cards by the tags of category. Columns are sorted by tag value and
// their cards follow the default order; a category nobody uses yields no columns.
func (b *Board) CategoryView(category string) CategoryView {
	v := CategoryView{Category: category, Columns: []Column{}}
	for _, t := range b.columnTags(category) {
		v.Columns = append(v.Columns, Column{
			Tag:   t,
			Name:  t.Value(),
			Cards: b.column(t),
		})
	}
	return v
}

func (b *Board) Snapshot() Snapshot {
	cards := make(map[model.CardID]*model.Card, len(b.cards))
	for id, c := range b.cards {
		cards[id] = c.Clone()
	}
	order := b.CardOrder()
	if order == nil {
		order = []model.CardID{}
	}
	s := Snapshot{
		BoardName:        b.Name,
		Cards:            cards,
		CardOrder:        order,
		Categories:       b.Categories(),
		Tags:             b.Tags(),
		InteractionState: b.State(),
	}
	if tag, ok := b.selectedTag(); ok {
		v := b.CategoryView(tag.Category())
		s.CurrentCategoryView = &v
	}
	return s
}
