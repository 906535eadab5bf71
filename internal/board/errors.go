package board

import (
	"errors"
	"fmt"
)

var (
	ErrNoCardSelected      = errors.New("no card selected")
	ErrNoTagSelected       = errors.New("no tag selected")
	ErrNotInCategoryView   = errors.New("not in category view")
	ErrNoSuchCategory      = errors.New("no such category")
	ErrNoSuchColumn        = errors.New("no such column")
	ErrNoSuchCard          = errors.New("no such card")
	ErrCardAlreadyHasTag   = errors.New("card already has this tag")
	ErrCardDoesntHaveTag   = errors.New("card doesn't have this tag")
	ErrPositionOutOfBounds = errors.New("position out of bounds")
	ErrUnknownAction       = errors.New("unknown action")
	ErrCorruptBoard        = errors.New("corrupt board file")
)

// PersistError reports a failed save after the in-memory mutation was already applied.
// Memory and disk may disagree until the next successful save.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("save board %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a precondition failure of an action (as opposed to
// a persistence failure or a decoding problem).
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrNoCardSelected,
		ErrNoTagSelected,
		ErrNotInCategoryView,
		ErrNoSuchCategory,
		ErrNoSuchColumn,
		ErrNoSuchCard,
		ErrCardAlreadyHasTag,
		ErrCardDoesntHaveTag,
		ErrPositionOutOfBounds,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
