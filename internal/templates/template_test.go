package templates

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/blocks"
)

func counterIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func TestInstantiateTwiceYieldsDisjointIDsAndUnsharedContent(t *testing.T) {
	catalog := NewBuiltinCatalog()
	tmpl, err := catalog.Get("stats-band")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	first := Instantiate(tmpl, nil)
	second := Instantiate(tmpl, nil)
	if len(first) != len(tmpl.Blocks) || len(second) != len(tmpl.Blocks) {
		t.Fatalf("expected %d blocks per instantiation", len(tmpl.Blocks))
	}

	ids := map[string]bool{}
	for _, block := range append(append([]blocks.Block{}, first...), second...) {
		if block.ID == "" || ids[block.ID] {
			t.Fatalf("expected disjoint non-empty ids, got duplicate %q", block.ID)
		}
		ids[block.ID] = true
	}

	for i := range first {
		if !reflect.DeepEqual(first[i].Content, second[i].Content) {
			t.Fatalf("expected structurally equal content at %d", i)
		}
	}

	stats := first[0].Content.(pbblocks.StatsContent)
	stats.Items[0].Value = "mutated"
	if second[0].Content.(pbblocks.StatsContent).Items[0].Value == "mutated" {
		t.Fatalf("instantiations share list storage")
	}
	again, _ := catalog.Get("stats-band")
	if again.Blocks[0].Content.(pbblocks.StatsContent).Items[0].Value == "mutated" {
		t.Fatalf("instantiation mutated the catalog entry")
	}
}

func TestInstantiateDefaults(t *testing.T) {
	tmpl := Template{
		Name: "Sparse",
		Blocks: []Seed{
			{Type: pbblocks.TypeHero},
			SeedOf(pbblocks.SpacerContent{Height: 12}),
		},
	}
	list := Instantiate(tmpl, counterIDs("t"))
	if got := pbblocks.IDs(list); !reflect.DeepEqual(got, []string{"t1", "t2"}) {
		t.Fatalf("unexpected ids %v", got)
	}
	if _, ok := list[0].Content.(pbblocks.HeroContent); !ok {
		t.Fatalf("expected empty hero content for a seed without content, got %#v", list[0].Content)
	}
	for _, block := range list {
		if !block.Styles.IsZero() || !block.Visibility.AllVisible() {
			t.Fatalf("expected empty styles and full visibility, got %+v", block)
		}
	}
}

func TestNormalize(t *testing.T) {
	if _, err := Normalize(Template{Name: "  "}); !errors.Is(err, ErrTemplateNameRequired) {
		t.Fatalf("expected ErrTemplateNameRequired, got %v", err)
	}

	divider := []Seed{{Type: pbblocks.TypeDivider}}
	derived, err := Normalize(Template{Name: "Pricing table", Blocks: divider})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if derived.ID == "" || derived.Category != DefaultCategory {
		t.Fatalf("expected derived id and default category, got %+v", derived)
	}
	again, _ := Normalize(Template{Name: "Pricing table", Blocks: divider})
	if again.ID != derived.ID {
		t.Fatalf("expected deterministic id, got %s and %s", derived.ID, again.ID)
	}

	if _, err := Normalize(Template{Name: "Empty"}); !errors.Is(err, ErrTemplateEmpty) {
		t.Fatalf("expected ErrTemplateEmpty, got %v", err)
	}

	_, err = Normalize(Template{Name: "Broken", Blocks: []Seed{{Type: pbblocks.TypeHero, Content: pbblocks.TextContent{}}}})
	if !errors.Is(err, blocks.ErrContentMismatch) {
		t.Fatalf("expected ErrContentMismatch, got %v", err)
	}
	_, err = Normalize(Template{Name: "Unknown", Blocks: []Seed{{Type: pbblocks.Type("slider")}}})
	if !errors.Is(err, blocks.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}
