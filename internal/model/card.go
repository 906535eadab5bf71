package model

import (
	"encoding/json"
	"sort"
)

type CardID uint64

func (id CardID) Next() CardID { return id + 1 }

// Card is one entry on a board. Tags have set semantics.
type Card struct {
	ID   CardID
	Text string
	tags map[Tag]struct{}
}

func NewCard(id CardID) *Card {
	return &Card{ID: id, tags: map[Tag]struct{}{}}
}

// Tags returns the card's tags in ascending order.
func (c *Card) Tags() []Tag {
	out := make([]Tag, 0, len(c.tags))
	for t := range c.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (c *Card) HasTag(t Tag) bool {
	_, ok := c.tags[t]
	return ok
}

// AddTag reports whether the tag was newly added.
func (c *Card) AddTag(t Tag) bool {
	if c.tags == nil {
		c.tags = map[Tag]struct{}{}
	}
	if _, ok := c.tags[t]; ok {
		return false
	}
	c.tags[t] = struct{}{}
	return true
}

// DeleteTag reports whether the tag was present.
func (c *Card) DeleteTag(t Tag) bool {
	if _, ok := c.tags[t]; !ok {
		return false
	}
	delete(c.tags, t)
	return true
}

func (c *Card) HasCategory(category string) bool {
	for t := range c.tags {
		if t.Category() == category {
			return true
		}
	}
	return false
}

// TagsInCategory returns the card's tags in category, sorted.
func (c *Card) TagsInCategory(category string) []Tag {
	var out []Tag
	for _, t := range c.Tags() {
		if t.Category() == category {
			out = append(out, t)
		}
	}
	return out
}

func (c *Card) Clone() *Card {
	cp := NewCard(c.ID)
	cp.Text = c.Text
	for t := range c.tags {
		cp.tags[t] = struct{}{}
	}
	return cp
}

type wireCard struct {
	ID   CardID `json:"id"`
	Text string `json:"text"`
	Tags []Tag  `json:"tags"`
}

func (c *Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireCard{ID: c.ID, Text: c.Text, Tags: c.Tags()})
}

// UnmarshalJSON collapses duplicate tags.
func (c *Card) UnmarshalJSON(b []byte) error {
	var w wireCard
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	c.ID = w.ID
	c.Text = w.Text
	c.tags = make(map[Tag]struct{}, len(w.Tags))
	for _, t := range w.Tags {
		c.tags[t] = struct{}{}
	}
	return nil
}
