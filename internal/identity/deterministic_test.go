package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	first := TemplateUUID("Landing Hero")
	second := TemplateUUID("landing-hero")
	if first == uuid.Nil {
		t.Fatalf("expected non-nil template id")
	}
	if first != second {
		t.Fatalf("expected normalised names to share an id, got %s and %s", first, second)
	}
	if UUID("go-pagebuilder:page-document:draft:landing-hero") == first {
		t.Fatalf("expected ids of different kinds to differ")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("   "); got != uuid.Nil {
		t.Fatalf("expected nil uuid for blank key, got %s", got)
	}
}

func TestNewBlockIDUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 500; i++ {
		id := NewBlockID()
		if id == "" {
			t.Fatalf("expected id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate block id %s", id)
		}
		seen[id] = struct{}{}
	}
}
