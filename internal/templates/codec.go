package templates

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/blocks"
	pbvalidation "github.com/goliatone/go-pagebuilder/internal/validation"
)

const recordSchemaName = "template_record"

// seedRecord and templateRecord are the self-describing wire form shared by
// the JSON and YAML codecs. They carry no external references.
type seedRecord struct {
	Type    string         `json:"type" yaml:"type"`
	Content map[string]any `json:"content,omitempty" yaml:"content,omitempty"`
}

type templateRecord struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string       `json:"category" yaml:"category"`
	Blocks      []seedRecord `json:"blocks" yaml:"blocks"`
}

// Validate applies the field rules a record must meet before conversion.
func (r templateRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120), validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("templates.record.name_required", "name is required")
			}
			return nil
		})),
		validation.Field(&r.ID, validation.Length(0, 120)),
		validation.Field(&r.Category, validation.Length(0, 64)),
		validation.Field(&r.Blocks, validation.Required),
	)
}

var (
	recordValidatorOnce sync.Once
	recordValidator     *pbvalidation.Validator
	recordValidatorErr  error
)

func recordSchema() map[string]any {
	types := make([]any, 0, len(pbblocks.Types()))
	for _, t := range pbblocks.Types() {
		types = append(types, string(t))
	}
	return map[string]any{
		"type":     "object",
		"required": []any{"name", "blocks"},
		"properties": map[string]any{
			"id":          map[string]any{"type": "string"},
			"name":        map[string]any{"type": "string", "minLength": 1},
			"description": map[string]any{"type": "string"},
			"category":    map[string]any{"type": "string"},
			"blocks": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"type"},
					"properties": map[string]any{
						"type":    map[string]any{"enum": types},
						"content": map[string]any{"type": "object"},
					},
					"additionalProperties": false,
				},
			},
		},
		"additionalProperties": false,
	}
}

func validateRecordPayload(payload any) error {
	recordValidatorOnce.Do(func() {
		recordValidator = pbvalidation.NewValidator()
		recordValidatorErr = recordValidator.Register(recordSchemaName, recordSchema())
	})
	if recordValidatorErr != nil {
		return recordValidatorErr
	}
	return recordValidator.Validate(recordSchemaName, payload)
}

func toRecord(t Template) (templateRecord, error) {
	rec := templateRecord{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category,
		Blocks:      make([]seedRecord, 0, len(t.Blocks)),
	}
	for i, seed := range t.Blocks {
		content, err := pbblocks.ContentMap(blocks.Block{Type: seed.Type, Content: seed.Content}.ContentOrEmpty())
		if err != nil {
			return templateRecord{}, fmt.Errorf("templates: export block %d: %w", i, err)
		}
		if len(content) == 0 {
			content = nil
		}
		rec.Blocks = append(rec.Blocks, seedRecord{Type: string(seed.Type), Content: content})
	}
	return rec, nil
}

func (r templateRecord) toTemplate() (Template, error) {
	t := Template{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Blocks:      make([]Seed, 0, len(r.Blocks)),
	}
	for i, seed := range r.Blocks {
		blockType, err := pbblocks.ParseType(seed.Type)
		if err != nil {
			return Template{}, fmt.Errorf("%w: block %d: %v", ErrTemplateInvalid, i, err)
		}
		content, err := pbblocks.ContentFromMap(blockType, seed.Content)
		if err != nil {
			return Template{}, fmt.Errorf("%w: block %d: %v", ErrTemplateInvalid, i, err)
		}
		t.Blocks = append(t.Blocks, Seed{Type: blockType, Content: content})
	}
	return Normalize(t)
}

// Export encodes t as an indented JSON record.
func Export(t Template) ([]byte, error) {
	rec, err := toRecord(t)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(rec, "", "  ")
}

// Import decodes a JSON record produced by Export. The record is checked
// against its schema and field rules before conversion.
func Import(data []byte) (Template, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return Template{}, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}
	return importPayload(payload)
}

// ExportYAML encodes t as a YAML record.
func ExportYAML(t Template) ([]byte, error) {
	rec, err := toRecord(t)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(rec)
}

// ImportYAML decodes a YAML record with the same rules as Import.
func ImportYAML(data []byte) (Template, error) {
	var payload any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return Template{}, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}
	return importPayload(payload)
}

func importPayload(payload any) (Template, error) {
	if err := validateRecordPayload(payload); err != nil {
		return Template{}, fmt.Errorf("%w: %w", ErrTemplateInvalid, err)
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return Template{}, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}
	var rec templateRecord
	if err := json.Unmarshal(encoded, &rec); err != nil {
		return Template{}, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}
	if err := rec.Validate(); err != nil {
		return Template{}, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}
	return rec.toTemplate()
}
