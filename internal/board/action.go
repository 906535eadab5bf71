package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tagboard/internal/model"
)

// Action is a closed set of board transitions. Only types in this package implement it.
type Action interface {
	Type() string
	isAction()
}

type SetBoardName struct {
	Name string `json:"name"`
}

type NewCard struct{}

type DeleteCurrentCard struct{}

type SelectCardVerticalOffset struct {
	Offset int `json:"offset"`
}

type SelectCardHorizontalOffset struct {
	Offset int `json:"offset"`
}

type MoveCurrentCardVerticalOffset struct {
	Offset int `json:"offset"`
}

type MoveCurrentCardHorizontalInCategory struct {
	Offset int `json:"offset"`
}

type SetCurrentCardText struct {
	Text string `json:"text"`
}

type AddTagToCurrentCard struct {
	Tag model.Tag `json:"tag"`
}

type DeleteTagFromCurrentCard struct {
	Tag model.Tag `json:"tag"`
}

type ViewDefault struct{}

type ViewCategory struct {
	Category string `json:"category"`
}

// Save persists the board without changing it.
type Save struct{}

type SetFilter struct {
	Filter string `json:"filter"`
}

type SelectCard struct {
	CardID model.CardID `json:"card_id"`
}

// MoveCurrentCardToIndex moves the selected card to an absolute position in the default order.
type MoveCurrentCardToIndex struct {
	Index int `json:"index"`
}

// MoveCurrentCardToColumn retags the selected card from the selected tag to Tag, which must be
// an existing column of the same category.
type MoveCurrentCardToColumn struct {
	Tag model.Tag `json:"tag"`
}

func (SetBoardName) Type() string                        { return "SetBoardName" }
func (NewCard) Type() string                             { return "NewCard" }
func (DeleteCurrentCard) Type() string                   { return "DeleteCurrentCard" }
func (SelectCardVerticalOffset) Type() string            { return "SelectCardVerticalOffset" }
func (SelectCardHorizontalOffset) Type() string          { return "SelectCardHorizontalOffset" }
func (MoveCurrentCardVerticalOffset) Type() string       { return "MoveCurrentCardVerticalOffset" }
func (MoveCurrentCardHorizontalInCategory) Type() string { return "MoveCurrentCardHorizontalInCategory" }
func (SetCurrentCardText) Type() string                  { return "SetCurrentCardText" }
func (AddTagToCurrentCard) Type() string                 { return "AddTagToCurrentCard" }
func (DeleteTagFromCurrentCard) Type() string            { return "DeleteTagFromCurrentCard" }
func (ViewDefault) Type() string                         { return "ViewDefault" }
func (ViewCategory) Type() string                        { return "ViewCategory" }
func (Save) Type() string                                { return "Save" }
func (SetFilter) Type() string                           { return "SetFilter" }
func (SelectCard) Type() string                          { return "SelectCard" }
func (MoveCurrentCardToIndex) Type() string              { return "MoveCurrentCardToIndex" }
func (MoveCurrentCardToColumn) Type() string             { return "MoveCurrentCardToColumn" }

func (SetBoardName) isAction()                        {}
func (NewCard) isAction()                             {}
func (DeleteCurrentCard) isAction()                   {}
func (SelectCardVerticalOffset) isAction()            {}
func (SelectCardHorizontalOffset) isAction()          {}
func (MoveCurrentCardVerticalOffset) isAction()       {}
func (MoveCurrentCardHorizontalInCategory) isAction() {}
func (SetCurrentCardText) isAction()                  {}
func (AddTagToCurrentCard) isAction()                 {}
func (DeleteTagFromCurrentCard) isAction()            {}
func (ViewDefault) isAction()                         {}
func (ViewCategory) isAction()                        {}
func (Save) isAction()                                {}
func (SetFilter) isAction()                           {}
func (SelectCard) isAction()                          {}
func (MoveCurrentCardToIndex) isAction()              {}
func (MoveCurrentCardToColumn) isAction()             {}

// DecodeAction parses a tagged JSON action such as {"type":"NewCard"} or
// {"type":"AddTagToCurrentCard","tag":"status:todo"}.
func DecodeAction(b []byte) (Action, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}

	var a Action
	switch strings.TrimSpace(head.Type) {
	case "SetBoardName":
		a = &SetBoardName{}
	case "NewCard":
		return NewCard{}, nil
	case "DeleteCurrentCard":
		return DeleteCurrentCard{}, nil
	case "SelectCardVerticalOffset":
		a = &SelectCardVerticalOffset{}
	case "SelectCardHorizontalOffset":
		a = &SelectCardHorizontalOffset{}
	case "MoveCurrentCardVerticalOffset":
		a = &MoveCurrentCardVerticalOffset{}
	case "MoveCurrentCardHorizontalInCategory":
		a = &MoveCurrentCardHorizontalInCategory{}
	case "SetCurrentCardText":
		a = &SetCurrentCardText{}
	case "AddTagToCurrentCard":
		a = &AddTagToCurrentCard{}
	case "DeleteTagFromCurrentCard":
		a = &DeleteTagFromCurrentCard{}
	case "ViewDefault":
		return ViewDefault{}, nil
	case "ViewCategory":
		a = &ViewCategory{}
	case "Save":
		return Save{}, nil
	case "SetFilter":
		a = &SetFilter{}
	case "SelectCard":
		a = &SelectCard{}
	case "MoveCurrentCardToIndex":
		a = &MoveCurrentCardToIndex{}
	case "MoveCurrentCardToColumn":
		a = &MoveCurrentCardToColumn{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, head.Type)
	}

	if err := json.Unmarshal(b, a); err != nil {
		var invalid model.InvalidTagError
		if errors.As(err, &invalid) {
			return nil, invalid
		}
		return nil, fmt.Errorf("decode %s: %w", head.Type, err)
	}
	return derefAction(a)
}

// derefAction turns the decoding pointer back into a value and rejects missing tags.
func derefAction(a Action) (Action, error) {
	switch a := a.(type) {
	case *SetBoardName:
		return *a, nil
	case *SelectCardVerticalOffset:
		return *a, nil
	case *SelectCardHorizontalOffset:
		return *a, nil
	case *MoveCurrentCardVerticalOffset:
		return *a, nil
	case *MoveCurrentCardHorizontalInCategory:
		return *a, nil
	case *SetCurrentCardText:
		return *a, nil
	case *AddTagToCurrentCard:
		if a.Tag.IsZero() {
			return nil, model.InvalidTagError{}
		}
		return *a, nil
	case *DeleteTagFromCurrentCard:
		if a.Tag.IsZero() {
			return nil, model.InvalidTagError{}
		}
		return *a, nil
	case *ViewCategory:
		return *a, nil
	case *SetFilter:
		return *a, nil
	case *SelectCard:
		return *a, nil
	case *MoveCurrentCardToIndex:
		return *a, nil
	case *MoveCurrentCardToColumn:
		if a.Tag.IsZero() {
			return nil, model.InvalidTagError{}
		}
		return *a, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownAction, a)
}

// EncodeAction is the inverse of DecodeAction.
func EncodeAction(a Action) ([]byte, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	fields["type"] = a.Type()
	return json.Marshal(fields)
}
