package board

import (
	"path/filepath"
	"strings"

	"tagboard/internal/model"
)

// Selection is the single cursor of a board. A non-nil Tag means the board is in category view
// for Tag's category.
type Selection struct {
	CardID *model.CardID `json:"card_id"`
	Tag    *model.Tag    `json:"tag"`
}

type InteractionState struct {
	Selection Selection `json:"selection"`
	// Filter is stored and echoed back to clients; views do not apply it yet.
	Filter string `json:"filter"`
}

func (s InteractionState) clone() InteractionState {
	out := InteractionState{Filter: s.Filter}
	if s.Selection.CardID != nil {
		id := *s.Selection.CardID
		out.Selection.CardID = &id
	}
	if s.Selection.Tag != nil {
		t := *s.Selection.Tag
		out.Selection.Tag = &t
	}
	return out
}

// Board owns every card, the global card order and the interaction state.
//
// A Board is not safe for concurrent use; callers serialize access (see session.Session).
type Board struct {
	Name string

	cards      map[model.CardID]*model.Card
	nextCardID model.CardID
	cardOrder  []model.CardID
	state      InteractionState

	path string
}

// New returns an empty board backed by path. An empty path gives an in-memory board whose
// saves are no-ops.
func New(path string) *Board {
	return &Board{
		Name:  defaultName(path),
		cards: map[model.CardID]*model.Card{},
		path:  path,
	}
}

func defaultName(path string) string {
	base := strings.TrimSpace(filepath.Base(path))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "Board"
	}
	return base
}

func (b *Board) Path() string { return b.path }

func (b *Board) Len() int { return len(b.cardOrder) }

func (b *Board) NextCardID() model.CardID { return b.nextCardID }

func (b *Board) Card(id model.CardID) (*model.Card, bool) {
	c, ok := b.cards[id]
	return c, ok
}

// CardOrder returns a copy of the default ordering.
func (b *Board) CardOrder() []model.CardID {
	return append([]model.CardID(nil), b.cardOrder...)
}

// Cards returns the cards in default order.
func (b *Board) Cards() []*model.Card {
	out := make([]*model.Card, 0, len(b.cardOrder))
	for _, id := range b.cardOrder {
		out = append(out, b.cards[id])
	}
	return out
}

func (b *Board) State() InteractionState { return b.state.clone() }

func (b *Board) selectedID() (model.CardID, bool) {
	if b.state.Selection.CardID == nil {
		return 0, false
	}
	return *b.state.Selection.CardID, true
}

func (b *Board) selectedTag() (model.Tag, bool) {
	if b.state.Selection.Tag == nil {
		return model.Tag{}, false
	}
	return *b.state.Selection.Tag, true
}

func (b *Board) selectCard(id model.CardID) {
	b.state.Selection.CardID = &id
}

func (b *Board) selectTag(t model.Tag) {
	b.state.Selection.Tag = &t
}

func (b *Board) clearSelection() {
	b.state.Selection = Selection{}
}

// resetSelection points at the first card, with no tag. Used after loading.
func (b *Board) resetSelection() {
	b.clearSelection()
	if len(b.cardOrder) > 0 {
		b.selectCard(b.cardOrder[0])
	}
}

func (b *Board) allocCardID() model.CardID {
	id := b.nextCardID
	b.nextCardID = id.Next()
	return id
}

func insertAt(ids []model.CardID, i int, id model.CardID) []model.CardID {
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}

func removeID(ids []model.CardID, id model.CardID) []model.CardID {
	i := indexOf(ids, id)
	if i < 0 {
		return ids
	}
	return append(ids[:i], ids[i+1:]...)
}
