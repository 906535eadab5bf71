package board

import (
	"fmt"
	"strings"

	"tagboard/internal/model"
)

// PerformAction validates a, applies it and saves the board.
//
// A validation error leaves the board untouched and nothing is written. A *PersistError means
// the action was applied in memory but could not be saved.
func (b *Board) PerformAction(a Action) error {
	if err := b.apply(a); err != nil {
		return err
	}
	b.assertInvariants()
	return b.Save()
}

func (b *Board) apply(a Action) error {
	switch a := a.(type) {
	case SetBoardName:
		b.Name = a.Name
		return nil
	case NewCard:
		b.newCard()
		return nil
	case DeleteCurrentCard:
		return b.deleteCurrentCard()
	case SelectCardVerticalOffset:
		return b.selectVertical(a.Offset)
	case SelectCardHorizontalOffset:
		return b.selectHorizontal(a.Offset)
	case MoveCurrentCardVerticalOffset:
		return b.moveVertical(a.Offset)
	case MoveCurrentCardHorizontalInCategory:
		return b.moveHorizontal(a.Offset)
	case SetCurrentCardText:
		id, ok := b.selectedID()
		if !ok {
			return ErrNoCardSelected
		}
		b.cards[id].Text = a.Text
		return nil
	case AddTagToCurrentCard:
		id, ok := b.selectedID()
		if !ok {
			return ErrNoCardSelected
		}
		if err := b.checkAddTag(id, a.Tag); err != nil {
			return err
		}
		b.cards[id].AddTag(a.Tag)
		return nil
	case DeleteTagFromCurrentCard:
		id, ok := b.selectedID()
		if !ok {
			return ErrNoCardSelected
		}
		if err := b.checkDeleteTag(id, a.Tag); err != nil {
			return err
		}
		b.cards[id].DeleteTag(a.Tag)
		b.reconcileTag()
		return nil
	case ViewDefault:
		if _, ok := b.selectedTag(); !ok {
			return ErrNoTagSelected
		}
		b.state.Selection.Tag = nil
		return nil
	case ViewCategory:
		return b.viewCategory(a.Category)
	case Save:
		return nil
	case SetFilter:
		b.state.Filter = a.Filter
		return nil
	case SelectCard:
		if _, ok := b.cards[a.CardID]; !ok {
			return fmt.Errorf("%w: %d", ErrNoSuchCard, a.CardID)
		}
		b.selectCard(a.CardID)
		b.reconcileTag()
		return nil
	case MoveCurrentCardToIndex:
		return b.moveToIndex(a.Index)
	case MoveCurrentCardToColumn:
		return b.moveToColumn(a.Tag)
	}
	return fmt.Errorf("%w: %T", ErrUnknownAction, a)
}

func (b *Board) newCard() {
	id := b.allocCardID()
	card := model.NewCard(id)
	if tag, ok := b.selectedTag(); ok {
		card.AddTag(tag)
	}

	pos := len(b.cardOrder)
	if sel, ok := b.selectedID(); ok {
		if i := indexOf(b.cardOrder, sel); i >= 0 {
			pos = i + 1
		}
	}
	b.cards[id] = card
	b.cardOrder = insertAt(b.cardOrder, pos, id)
	b.selectCard(id)
}

func (b *Board) deleteCurrentCard() error {
	id, ok := b.selectedID()
	if !ok {
		return ErrNoCardSelected
	}
	next := b.selectionAfterDelete(id)
	b.cardOrder = removeID(b.cardOrder, id)
	delete(b.cards, id)
	b.state.Selection = next
	return nil
}

func (b *Board) selectVertical(offset int) error {
	id, ok := b.selectedID()
	if !ok {
		return ErrNoCardSelected
	}
	b.selectCard(offsetInList(b.currentView(), id, offset))
	return nil
}

func (b *Board) selectHorizontal(offset int) error {
	tag, ok := b.selectedTag()
	if !ok {
		return ErrNotInCategoryView
	}
	id, _ := b.selectedID()

	cols := b.columnTags(tag.Category())
	from := tagIndex(cols, tag)
	to := clampOffset(from, offset, len(cols))
	if to == from {
		return nil
	}

	pos := indexOf(b.column(tag), id)
	if pos < 0 {
		pos = 0
	}
	target := b.column(cols[to])
	b.selectCard(target[clamp(pos, 0, len(target)-1)])
	b.selectTag(cols[to])
	return nil
}

func (b *Board) moveVertical(offset int) error {
	id, ok := b.selectedID()
	if !ok {
		return ErrNoCardSelected
	}

	tag, inCategory := b.selectedTag()
	if !inCategory {
		i := indexOf(b.cardOrder, id)
		b.moveInOrder(id, clampOffset(i, offset, len(b.cardOrder)))
		return nil
	}

	// Compute the slot inside the column, then land next to the card occupying it.
	col := b.column(tag)
	i := indexOf(col, id)
	j := clampOffset(i, offset, len(col))
	if i == j {
		return nil
	}
	anchor := col[j]
	b.cardOrder = removeID(b.cardOrder, id)
	at := indexOf(b.cardOrder, anchor)
	if j > i {
		at++
	}
	b.cardOrder = insertAt(b.cardOrder, at, id)
	return nil
}

func (b *Board) moveInOrder(id model.CardID, to int) {
	if indexOf(b.cardOrder, id) == to {
		return
	}
	b.cardOrder = removeID(b.cardOrder, id)
	b.cardOrder = insertAt(b.cardOrder, to, id)
}

func (b *Board) moveToIndex(index int) error {
	id, ok := b.selectedID()
	if !ok {
		return ErrNoCardSelected
	}
	if index < 0 || index >= len(b.cardOrder) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrPositionOutOfBounds, index, len(b.cardOrder))
	}
	b.moveInOrder(id, index)
	return nil
}

func (b *Board) moveHorizontal(offset int) error {
	tag, ok := b.selectedTag()
	if !ok {
		return ErrNotInCategoryView
	}
	cols := b.columnTags(tag.Category())
	from := tagIndex(cols, tag)
	to := clampOffset(from, offset, len(cols))
	if to == from {
		return nil
	}
	return b.retagSelected(tag, cols[to])
}

func (b *Board) moveToColumn(target model.Tag) error {
	tag, ok := b.selectedTag()
	if !ok {
		return ErrNotInCategoryView
	}
	if target.Category() != tag.Category() || tagIndex(b.columnTags(tag.Category()), target) < 0 {
		return fmt.Errorf("%w: %s", ErrNoSuchColumn, target)
	}
	if target == tag {
		return nil
	}
	return b.retagSelected(tag, target)
}

// retagSelected is DeleteTagFromCurrentCard(from) followed by AddTagToCurrentCard(to). Both
// are validated before either is applied.
func (b *Board) retagSelected(from, to model.Tag) error {
	id, ok := b.selectedID()
	if !ok {
		return ErrNoCardSelected
	}
	if err := b.checkDeleteTag(id, from); err != nil {
		return err
	}
	if err := b.checkAddTag(id, to); err != nil {
		return err
	}
	card := b.cards[id]
	card.DeleteTag(from)
	card.AddTag(to)
	b.selectTag(to)
	return nil
}

func (b *Board) checkAddTag(id model.CardID, tag model.Tag) error {
	if b.cards[id].HasTag(tag) {
		return fmt.Errorf("%w: %s", ErrCardAlreadyHasTag, tag)
	}
	return nil
}

func (b *Board) checkDeleteTag(id model.CardID, tag model.Tag) error {
	if !b.cards[id].HasTag(tag) {
		return fmt.Errorf("%w: %s", ErrCardDoesntHaveTag, tag)
	}
	return nil
}

func (b *Board) viewCategory(category string) error {
	category = strings.ToLower(strings.TrimSpace(category))
	if !b.HasCategory(category) {
		return fmt.Errorf("%w: %q", ErrNoSuchCategory, category)
	}

	id, ok := b.selectedID()
	if !ok || !b.cards[id].HasCategory(category) {
		from := -1
		if ok {
			from = indexOf(b.cardOrder, id)
		}
		near, found := b.nearestWithCategory(from, category)
		if !found {
			// HasCategory above guarantees a carrier exists.
			return fmt.Errorf("%w: %q", ErrNoSuchCategory, category)
		}
		id = near
	}

	card := b.cards[id]
	next := card.TagsInCategory(category)[0]
	if cur, ok := b.selectedTag(); ok && card.HasTag(cur) && cur.Category() == category {
		next = cur
	}
	b.selectCard(id)
	b.selectTag(next)
	return nil
}

func tagIndex(tags []model.Tag, t model.Tag) int {
	for i, x := range tags {
		if x == t {
			return i
		}
	}
	return -1
}
