package board

import "tagboard/internal/model"

func indexOf(ids []model.CardID, id model.CardID) int {
	for i, x := range ids {
		if x == id {
			return i
		}
	}
	return -1
}

func clamp(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

// clampOffset returns i+offset clamped to [0, n-1] without computing the sum, which can overflow
// for offsets near the int limits.
func clampOffset(i, offset, n int) int {
	if offset > n-1-i {
		return n - 1
	}
	if offset < -i {
		return 0
	}
	return i + offset
}

// offsetInList returns the id offset steps away from id in ids, clamped to the ends. When id is
// not in ids it is returned unchanged.
func offsetInList(ids []model.CardID, id model.CardID, offset int) model.CardID {
	i := indexOf(ids, id)
	if i < 0 {
		return id
	}
	return ids[clampOffset(i, offset, len(ids))]
}

// neighbour reports the adjacent id in direction dir (+1 or -1). A clamped result equal to id
// means there is nothing in that direction.
func neighbour(ids []model.CardID, id model.CardID, dir int) (model.CardID, bool) {
	n := offsetInList(ids, id, dir)
	return n, n != id
}

// column lists the cards carrying tag, in default order.
func (b *Board) column(tag model.Tag) []model.CardID {
	var out []model.CardID
	for _, id := range b.cardOrder {
		if b.cards[id].HasTag(tag) {
			out = append(out, id)
		}
	}
	return out
}

// categoryCards lists the cards carrying any tag of category, in default order.
func (b *Board) categoryCards(category string) []model.CardID {
	var out []model.CardID
	for _, id := range b.cardOrder {
		if b.cards[id].HasCategory(category) {
			out = append(out, id)
		}
	}
	return out
}

// currentView is the list vertical navigation works in: the selected tag's column in category
// view, the default order otherwise.
func (b *Board) currentView() []model.CardID {
	if tag, ok := b.selectedTag(); ok {
		return b.column(tag)
	}
	return b.cardOrder
}

// selectionAfterDelete picks what to select once id is gone. In category view it prefers the
// same tag, then the same category, then the default order, each time next before previous.
func (b *Board) selectionAfterDelete(id model.CardID) Selection {
	if tag, ok := b.selectedTag(); ok {
		col := b.column(tag)
		for _, dir := range []int{1, -1} {
			if n, ok := neighbour(col, id, dir); ok {
				return Selection{CardID: &n, Tag: &tag}
			}
		}
		cat := b.categoryCards(tag.Category())
		for _, dir := range []int{1, -1} {
			if n, ok := neighbour(cat, id, dir); ok {
				t := b.cards[n].TagsInCategory(tag.Category())[0]
				return Selection{CardID: &n, Tag: &t}
			}
		}
	}
	for _, dir := range []int{1, -1} {
		if n, ok := neighbour(b.cardOrder, id, dir); ok {
			return Selection{CardID: &n}
		}
	}
	return Selection{}
}

// nearestWithCategory searches outward from index i of the default order: 1 below, 1 above,
// 2 below, 2 above, and so on. The downward-first order breaks ties. A negative i scans from
// the top.
func (b *Board) nearestWithCategory(i int, category string) (model.CardID, bool) {
	if i < 0 || i >= len(b.cardOrder) {
		for _, cid := range b.cardOrder {
			if b.cards[cid].HasCategory(category) {
				return cid, true
			}
		}
		return 0, false
	}
	if id := b.cardOrder[i]; b.cards[id].HasCategory(category) {
		return id, true
	}
	n := len(b.cardOrder)
	for d := 1; d < n; d++ {
		if j := i + d; j < n && b.cards[b.cardOrder[j]].HasCategory(category) {
			return b.cardOrder[j], true
		}
		if j := i - d; j >= 0 && b.cards[b.cardOrder[j]].HasCategory(category) {
			return b.cardOrder[j], true
		}
	}
	return 0, false
}

// reconcileTag keeps the selected tag consistent with the selected card: keep it if the card
// carries it, else switch to another tag of the card in that category, else leave category view.
func (b *Board) reconcileTag() {
	tag, ok := b.selectedTag()
	if !ok {
		return
	}
	id, ok := b.selectedID()
	if !ok {
		b.state.Selection.Tag = nil
		return
	}
	card := b.cards[id]
	if card.HasTag(tag) {
		return
	}
	if ts := card.TagsInCategory(tag.Category()); len(ts) > 0 {
		b.selectTag(ts[0])
		return
	}
	b.state.Selection.Tag = nil
}
