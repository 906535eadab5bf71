package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tag is a "category:value" label. The category is everything before the first colon, so
// values may themselves contain colons.
type Tag struct {
	tag   string
	colon int
}

type InvalidTagError struct {
	Tag string
}

func (e InvalidTagError) Error() string {
	return fmt.Sprintf("invalid tag %q (expected category:value)", e.Tag)
}

// NewTag parses s into a Tag, folding it to lowercase.
func NewTag(s string) (Tag, error) {
	folded := strings.ToLower(s)
	i := strings.IndexByte(folded, ':')
	if i < 0 {
		return Tag{}, InvalidTagError{Tag: s}
	}
	return Tag{tag: folded, colon: i}, nil
}

// MustTag is NewTag for literals known to be valid.
func MustTag(s string) Tag {
	t, err := NewTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Tag) String() string   { return t.tag }
func (t Tag) Category() string { return t.tag[:t.colon] }
func (t Tag) Value() string    { return t.tag[t.colon+1:] }
func (t Tag) IsZero() bool     { return t.tag == "" }

func (t Tag) Less(o Tag) bool { return t.tag < o.tag }

func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.tag)
}

func (t *Tag) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := NewTag(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Tag) MarshalText() ([]byte, error) { return []byte(t.tag), nil }

func (t *Tag) UnmarshalText(b []byte) error {
	parsed, err := NewTag(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
