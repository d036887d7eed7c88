package validation

import (
	"errors"
	"strings"
	"testing"
)

func heroSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"title":    map[string]any{"type": "string"},
			"overlay":  map[string]any{"type": "number", "minimum": 0, "maximum": 1},
			"position": map[string]any{"enum": []any{"left", "center", "right"}},
		},
	}
}

func TestValidatorReportsIssues(t *testing.T) {
	v := NewValidator()
	if err := v.Register("hero", heroSchema()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !v.Has("hero") || v.Has("grid") {
		t.Fatalf("unexpected registrations")
	}

	if err := v.Validate("hero", map[string]any{"title": "Hi", "overlay": 0.4}); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	err := v.Validate("hero", map[string]any{"overlay": 3, "position": "top", "color": "red"})
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	issues := Issues(err)
	if len(issues) < 3 {
		t.Fatalf("expected an issue per bad field, got %+v", issues)
	}
	if !strings.HasPrefix(err.Error(), "hero: ") {
		t.Fatalf("expected schema name in message, got %q", err.Error())
	}
}

func TestValidatorNormalisesTypedPayloads(t *testing.T) {
	type hero struct {
		Title   string  `json:"title"`
		Overlay float64 `json:"overlay"`
	}
	v := NewValidator()
	_ = v.Register("hero", heroSchema())
	if err := v.Validate("hero", hero{Title: "Typed", Overlay: 0.2}); err != nil {
		t.Fatalf("expected struct payload to validate, got %v", err)
	}
	if err := v.Validate("hero", nil); err != nil {
		t.Fatalf("nil payload validates as an empty object, got %v", err)
	}
}

func TestValidatorRegistrationErrors(t *testing.T) {
	v := NewValidator()
	if err := v.Register(" ", heroSchema()); !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid for blank name, got %v", err)
	}
	if err := v.Register("broken", map[string]any{"type": 12}); !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid for bad schema, got %v", err)
	}
	if err := v.Validate("missing", map[string]any{}); !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation for unknown schema, got %v", err)
	}
}
