package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	Name  string         `json:"name"`
	Order []uint64       `json:"card_order"`
	Cards map[string]any `json:"cards"`
	Tag   *string        `json:"tag"`
}

func newSample() sample {
	return sample{
		Name:  "Work",
		Order: []uint64{0, 9007199254740993},
		Cards: map[string]any{"0": map[string]any{"text": "hi"}},
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]int{"a": 1}, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "{\"a\":1}\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWrite_EDN(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, newSample(), "edn", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{:card_order [0 9007199254740993] :cards {"0" {:text "hi"}} :name "Work" :tag nil}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("edn mismatch:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestWrite_EDNPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEDN(&buf, []any{"a", []any{}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "[\n  \"a\"\n  []\n]\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, newSample(), "yaml", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"name: Work", "- 9007199254740993", "text: hi", "tag: null"} {
		if !strings.Contains(out, want) {
			t.Fatalf("yaml output missing %q:\n%s", want, out)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "xml", false); err == nil {
		t.Fatalf("expected an error for xml")
	}
}
