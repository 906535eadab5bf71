package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"tagboard/internal/model"
	"tagboard/internal/store"
)

// boardFile is the on-disk shape. Interaction state is never persisted.
type boardFile struct {
	Name       string                       `json:"name"`
	Cards      map[model.CardID]*model.Card `json:"cards"`
	NextCardID model.CardID                 `json:"next_card_id"`
	CardOrder  []model.CardID               `json:"card_order"`
}

// Load reads the board at path. A missing file yields a new, empty board that will be created
// on the first save. The loaded board selects its first card, with no tag.
func Load(path string) (*Board, error) {
	if path == "" {
		return New(""), nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(path), nil
	}
	if err != nil {
		return nil, err
	}

	var f boardFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptBoard, path, err)
	}
	b := New(path)
	b.Name = f.Name
	if f.Cards != nil {
		b.cards = f.Cards
	}
	b.cardOrder = f.CardOrder
	b.nextCardID = f.NextCardID
	if err := b.checkInvariants(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptBoard, path, err)
	}
	b.resetSelection()
	return b, nil
}

// Save writes the board as pretty-printed JSON, replacing the file atomically.
func (b *Board) Save() error {
	if b.path == "" {
		return nil
	}
	order := b.cardOrder
	if order == nil {
		order = []model.CardID{}
	}
	raw, err := json.MarshalIndent(boardFile{
		Name:       b.Name,
		Cards:      b.cards,
		NextCardID: b.nextCardID,
		CardOrder:  order,
	}, "", "  ")
	if err != nil {
		return &PersistError{Path: b.path, Err: err}
	}
	raw = append(raw, '\n')
	if err := store.WriteFileAtomic(b.path, raw, 0o644); err != nil {
		return &PersistError{Path: b.path, Err: err}
	}
	return nil
}
