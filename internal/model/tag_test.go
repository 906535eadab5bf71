package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewTag_SplitsOnFirstColon(t *testing.T) {
	tag, err := NewTag("Link:https://example.com")
	if err != nil {
		t.Fatalf("NewTag: %v", err)
	}
	if got := tag.Category(); got != "link" {
		t.Fatalf("expected category link; got %q", got)
	}
	if got := tag.Value(); got != "https://example.com" {
		t.Fatalf("expected value with colon preserved; got %q", got)
	}
	if got := tag.String(); got != "link:https://example.com" {
		t.Fatalf("expected lowercase tag string; got %q", got)
	}
}

func TestNewTag_RejectsMissingColon(t *testing.T) {
	_, err := NewTag("Status")
	var invalid InvalidTagError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTagError; got %v", err)
	}
	if invalid.Tag != "Status" {
		t.Fatalf("expected original string back; got %q", invalid.Tag)
	}
}

func TestNewTag_EmptyParts(t *testing.T) {
	tag, err := NewTag(":")
	if err != nil {
		t.Fatalf("NewTag(\":\"): %v", err)
	}
	if tag.Category() != "" || tag.Value() != "" {
		t.Fatalf("expected empty category and value; got %q %q", tag.Category(), tag.Value())
	}
}

func TestTag_EqualityIsCaseFolded(t *testing.T) {
	a := MustTag("status:TODO")
	b := MustTag("Status:todo")
	if a != b {
		t.Fatalf("expected %v == %v", a, b)
	}
	if !MustTag("a:b").Less(MustTag("a:c")) {
		t.Fatalf("expected lexicographic order")
	}
}

func TestTag_JSON(t *testing.T) {
	b, err := json.Marshal(MustTag("status:done"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"status:done"` {
		t.Fatalf("unexpected json %s", b)
	}

	var tag Tag
	if err := json.Unmarshal([]byte(`"nocolon"`), &tag); err == nil {
		t.Fatalf("expected error for invalid tag")
	}
}
