package docs

import (
	"strings"
	"testing"
)

func TestTopics_AreSortedAndReadable(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatalf("expected embedded topics")
	}
	for i, topic := range topics {
		if i > 0 && topics[i-1] > topic {
			t.Fatalf("topics not sorted: %v", topics)
		}
		body, ok := Get(topic)
		if !ok || strings.TrimSpace(body) == "" {
			t.Fatalf("topic %q has no body", topic)
		}
	}
}

func TestGet_CaseInsensitiveAndUnknown(t *testing.T) {
	if _, ok := Get("ACTIONS"); !ok {
		t.Fatalf("expected actions topic")
	}
	for _, topic := range []string{"", "nope", "../docs"} {
		if _, ok := Get(topic); ok {
			t.Fatalf("Get(%q) should fail", topic)
		}
	}
}
