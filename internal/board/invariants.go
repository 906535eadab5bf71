package board

import (
	"fmt"
	"os"

	"tagboard/internal/model"
)

// debugChecks turns on invariant assertions after every action. Tests force it on.
var debugChecks = os.Getenv("TAGBOARD_DEBUG") == "1"

// checkInvariants verifies the structural invariants of the board. Selection is not checked;
// see checkSelection.
func (b *Board) checkInvariants() error {
	if len(b.cardOrder) != len(b.cards) {
		return fmt.Errorf("card_order has %d ids, cards has %d", len(b.cardOrder), len(b.cards))
	}
	seen := make(map[model.CardID]struct{}, len(b.cardOrder))
	for _, id := range b.cardOrder {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("card %d appears twice in card_order", id)
		}
		seen[id] = struct{}{}
		if _, ok := b.cards[id]; !ok {
			return fmt.Errorf("card_order references missing card %d", id)
		}
	}
	for key, c := range b.cards {
		if c == nil {
			return fmt.Errorf("card %d is null", key)
		}
		if c.ID != key {
			return fmt.Errorf("card stored under %d has id %d", key, c.ID)
		}
		if c.ID >= b.nextCardID {
			return fmt.Errorf("card id %d not below next_card_id %d", c.ID, b.nextCardID)
		}
	}
	return nil
}

func (b *Board) checkSelection() error {
	id, hasCard := b.selectedID()
	tag, hasTag := b.selectedTag()
	if len(b.cards) == 0 && (hasCard || hasTag) {
		return fmt.Errorf("empty board has a selection")
	}
	if hasCard {
		if _, ok := b.cards[id]; !ok {
			return fmt.Errorf("selected card %d does not exist", id)
		}
	}
	if hasTag {
		if !hasCard {
			return fmt.Errorf("tag %s selected without a card", tag)
		}
		if !b.cards[id].HasCategory(tag.Category()) {
			return fmt.Errorf("selected card %d has no tag in category %q", id, tag.Category())
		}
	}
	return nil
}

func (b *Board) assertInvariants() {
	if !debugChecks {
		return
	}
	if err := b.checkInvariants(); err != nil {
		panic("board invariant violated: " + err.Error())
	}
	if err := b.checkSelection(); err != nil {
		panic("selection invariant violated: " + err.Error())
	}
}
