package blocks

import (
	"errors"
	"reflect"
	"testing"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/validation"
)

func TestBuiltinRegistryCoversEveryType(t *testing.T) {
	registry := NewBuiltinRegistry()
	defs := registry.List()
	if len(defs) != len(pbblocks.Types()) {
		t.Fatalf("expected %d definitions, got %d", len(pbblocks.Types()), len(defs))
	}
	for i, typ := range pbblocks.Types() {
		if defs[i].Type != typ {
			t.Fatalf("expected palette order %s at %d, got %s", typ, i, defs[i].Type)
		}
		content, err := registry.DefaultContent(typ)
		if err != nil {
			t.Fatalf("default content for %s: %v", typ, err)
		}
		if content.BlockType() != typ {
			t.Fatalf("default content for %s has type %s", typ, content.BlockType())
		}
	}
}

func TestRegistryCategories(t *testing.T) {
	registry := NewBuiltinRegistry()
	want := []string{CategoryAdvanced, CategoryContent, CategoryLayout, CategoryMarketing, CategoryMedia}
	if got := registry.Categories(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected categories %v", got)
	}
	for _, def := range registry.ByCategory("MARKETING") {
		if def.Category != CategoryMarketing {
			t.Fatalf("unexpected definition %s in marketing", def.Type)
		}
	}
}

func TestDefaultContentIsACopy(t *testing.T) {
	registry := NewBuiltinRegistry()
	first, _ := registry.DefaultContent(pbblocks.TypeStats)
	stats := first.(pbblocks.StatsContent)
	if len(stats.Items) == 0 {
		t.Fatalf("expected default stats items")
	}
	stats.Items[0].Value = "mutated"

	second, _ := registry.DefaultContent(pbblocks.TypeStats)
	if second.(pbblocks.StatsContent).Items[0].Value == "mutated" {
		t.Fatalf("default content shared with caller")
	}
}

func TestDefaultContentUnknownType(t *testing.T) {
	registry := NewBuiltinRegistry()
	if _, err := registry.DefaultContent("carousel"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	empty := NewRegistry()
	if _, err := empty.DefaultContent(pbblocks.TypeHero); !errors.Is(err, ErrDefinitionNotFound) {
		t.Fatalf("expected ErrDefinitionNotFound, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(Definition{}); !errors.Is(err, ErrDefinitionTypeRequired) {
		t.Fatalf("expected ErrDefinitionTypeRequired, got %v", err)
	}
	if err := registry.Register(Definition{Type: "carousel"}); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	mismatched := Definition{Type: pbblocks.TypeHero, Defaults: pbblocks.SpacerContent{}}
	if err := registry.Register(mismatched); !errors.Is(err, ErrDefinitionDefaults) {
		t.Fatalf("expected ErrDefinitionDefaults, got %v", err)
	}
	outOfRange := Definition{
		Type:     pbblocks.TypeSpacer,
		Fields:   []Field{{Name: "height", Kind: FieldNumber, Min: intPtr(0), Max: intPtr(10)}},
		Defaults: pbblocks.SpacerContent{Height: 99},
	}
	if err := registry.Register(outOfRange); !errors.Is(err, ErrDefinitionDefaults) {
		t.Fatalf("expected defaults outside the shape to be rejected, got %v", err)
	}

	if err := registry.Register(Definition{Type: pbblocks.TypeSpacer, Fields: []Field{{Name: "height", Kind: FieldNumber}}}); err != nil {
		t.Fatalf("register: %v", err)
	}
	def, ok := registry.Lookup(pbblocks.TypeSpacer)
	if !ok || def.Label != "spacer" {
		t.Fatalf("expected label fallback, got %+v", def)
	}
	if _, ok := def.Defaults.(pbblocks.SpacerContent); !ok {
		t.Fatalf("expected empty spacer defaults, got %#v", def.Defaults)
	}
}

func TestValidatePatch(t *testing.T) {
	registry := NewBuiltinRegistry()

	valid := []map[string]any{
		{"title": "New headline"},
		{"alignment": "left", "buttonPosition": "inline"},
		{"alignment": ""},
		{"backgroundGradientAngle": 90},
		{"subtitle": nil},
	}
	for _, patch := range valid {
		if err := registry.ValidatePatch(pbblocks.TypeHero, patch); err != nil {
			t.Fatalf("expected %v to be valid: %v", patch, err)
		}
	}

	invalid := []map[string]any{
		{"headline": "x"},
		{"title": 42},
		{"alignment": "justify"},
		{"backgroundGradientAngle": 400},
		{"unknown": nil},
	}
	for _, patch := range invalid {
		err := registry.ValidatePatch(pbblocks.TypeHero, patch)
		if !errors.Is(err, validation.ErrSchemaValidation) {
			t.Fatalf("expected schema error for %v, got %v", patch, err)
		}
		if len(validation.Issues(err)) == 0 {
			t.Fatalf("expected issues for %v", patch)
		}
	}
}

func TestValidatePatchListItems(t *testing.T) {
	registry := NewBuiltinRegistry()
	ok := map[string]any{"items": []any{map[string]any{"value": "100+", "label": "Clients"}, map[string]any{}}}
	if err := registry.ValidatePatch(pbblocks.TypeStats, ok); err != nil {
		t.Fatalf("expected partial entries to be valid: %v", err)
	}
	bad := map[string]any{"items": []any{map[string]any{"value": "1", "extra": true}}}
	if err := registry.ValidatePatch(pbblocks.TypeStats, bad); !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected unknown list item key to fail, got %v", err)
	}
}

func TestValidateContent(t *testing.T) {
	registry := NewBuiltinRegistry()
	if err := registry.ValidateContent(pbblocks.DividerContent{Style: "dashed", Thickness: 2, Width: 50}); err != nil {
		t.Fatalf("validate divider: %v", err)
	}
	if err := registry.ValidateContent(nil); !errors.Is(err, ErrContentMismatch) {
		t.Fatalf("expected ErrContentMismatch, got %v", err)
	}
}

func TestSchemaIsACopy(t *testing.T) {
	registry := NewBuiltinRegistry()
	schema, ok := registry.Schema(pbblocks.TypeHero)
	if !ok {
		t.Fatalf("expected hero schema")
	}
	properties := schema["properties"].(map[string]any)
	delete(properties, "title")

	again, _ := registry.Schema(pbblocks.TypeHero)
	if _, ok := again["properties"].(map[string]any)["title"]; !ok {
		t.Fatalf("schema mutated through returned copy")
	}
}
