package blocks

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-pagebuilder/internal/validation"
)

var (
	ErrDefinitionTypeRequired = errors.New("blocks: definition type required")
	ErrDefinitionDefaults     = errors.New("blocks: definition defaults do not match type")
	ErrDefinitionNotFound     = errors.New("blocks: definition not found")
)

// FieldKind tells host content editors which control to render for a field.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldRichText FieldKind = "richtext"
	FieldMarkdown FieldKind = "markdown"
	FieldURL      FieldKind = "url"
	FieldColor    FieldKind = "color"
	FieldNumber   FieldKind = "number"
	FieldSelect   FieldKind = "select"
	FieldBool     FieldKind = "bool"
	FieldMedia    FieldKind = "media"
	FieldList     FieldKind = "list"
)

// Field describes one content key of a block type.
type Field struct {
	Name    string
	Label   string
	Kind    FieldKind
	Options []string
	Min     *int
	Max     *int
	// Item lists the keys of each entry when Kind is FieldList.
	Item []Field
}

// Definition is the registry entry for a block type: display metadata, the
// declared content shape and default content for new blocks.
type Definition struct {
	Type        Type
	Label       string
	Description string
	Icon        string
	Category    string
	Fields      []Field
	Defaults    Content
}

// Registry is the static catalogue of block types. It is safe for concurrent
// use.
type Registry struct {
	mu        sync.RWMutex
	entries   map[Type]Definition
	schemas   map[Type]map[string]any
	order     []Type
	validator *validation.Validator
}

// NewRegistry constructs an empty block type registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:   make(map[Type]Definition),
		schemas:   make(map[Type]map[string]any),
		validator: validation.NewValidator(),
	}
}

// NewBuiltinRegistry returns a registry preloaded with every supported block type.
func NewBuiltinRegistry() *Registry {
	reg := NewRegistry()
	for _, def := range BuiltinDefinitions() {
		if err := reg.Register(def); err != nil {
			panic(fmt.Sprintf("blocks: builtin definition %s: %v", def.Type, err))
		}
	}
	return reg
}

// Register records def, replacing an existing definition of the same type.
func (r *Registry) Register(def Definition) error {
	if r == nil {
		return ErrDefinitionNotFound
	}
	if strings.TrimSpace(string(def.Type)) == "" {
		return ErrDefinitionTypeRequired
	}
	if !def.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, def.Type)
	}
	if def.Defaults == nil {
		empty, err := emptyContent(def.Type)
		if err != nil {
			return err
		}
		def.Defaults = empty
	}
	if def.Defaults.BlockType() != def.Type {
		return fmt.Errorf("%w: %s", ErrDefinitionDefaults, def.Type)
	}
	if strings.TrimSpace(def.Label) == "" {
		def.Label = string(def.Type)
	}

	schema := SchemaFor(def.Fields)
	if err := r.validator.Register(string(def.Type), schema); err != nil {
		return err
	}
	if err := r.validator.Validate(string(def.Type), def.Defaults); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDefinitionDefaults, def.Type, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[def.Type]; !exists {
		r.order = append(r.order, def.Type)
	}
	def.Defaults = cloneContent(def.Defaults)
	def.Fields = cloneFields(def.Fields)
	r.entries[def.Type] = def
	r.schemas[def.Type] = schema
	return nil
}

// Lookup returns a copy of the definition registered for t.
func (r *Registry) Lookup(t Type) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.entries[t]
	if !ok {
		return Definition{}, false
	}
	return copyDefinition(def), true
}

// List returns the registered definitions in registration order.
func (r *Registry) List() []Definition {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, copyDefinition(r.entries[t]))
	}
	return out
}

// Categories returns the sorted set of definition categories.
func (r *Registry) Categories() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, def := range r.List() {
		category := strings.TrimSpace(def.Category)
		if category == "" {
			continue
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// ByCategory lists definitions belonging to category.
func (r *Registry) ByCategory(category string) []Definition {
	category = strings.TrimSpace(category)
	out := []Definition{}
	for _, def := range r.List() {
		if strings.EqualFold(def.Category, category) {
			out = append(out, def)
		}
	}
	return out
}

// DefaultContent returns a fresh copy of the default content for t.
func (r *Registry) DefaultContent(t Type) (Content, error) {
	def, ok := r.Lookup(t)
	if !ok {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
		}
		return nil, fmt.Errorf("%w: %s", ErrDefinitionNotFound, t)
	}
	return def.Defaults, nil
}

// Schema returns the JSON schema describing the content shape of t.
func (r *Registry) Schema(t Type) (map[string]any, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	schema, ok := r.schemas[t]
	if !ok {
		return nil, false
	}
	return cloneSchema(schema), true
}

// ValidatePatch checks a partial content update against the declared shape of
// t. Keys set to nil clear a value and only need to exist in the shape.
func (r *Registry) ValidatePatch(t Type, patch map[string]any) error {
	schema, ok := r.Schema(t)
	if !ok {
		return fmt.Errorf("%w: %s", ErrDefinitionNotFound, t)
	}
	properties, _ := schema["properties"].(map[string]any)

	values := make(map[string]any, len(patch))
	issues := []validation.ValidationIssue{}
	for key, value := range patch {
		if value == nil {
			if _, known := properties[key]; !known {
				issues = append(issues, validation.ValidationIssue{
					Location: "/" + key,
					Message:  "unknown field",
				})
			}
			continue
		}
		values[key] = value
	}
	if len(issues) > 0 {
		return &validation.PayloadValidationError{Schema: string(t), Issues: issues}
	}
	return r.validator.Validate(string(t), values)
}

// ValidateContent checks full content against its declared shape.
func (r *Registry) ValidateContent(content Content) error {
	if content == nil {
		return ErrContentMismatch
	}
	t := content.BlockType()
	if !r.validator.Has(string(t)) {
		return fmt.Errorf("%w: %s", ErrDefinitionNotFound, t)
	}
	return r.validator.Validate(string(t), content)
}

// SchemaFor builds the JSON schema for a field list. Unknown keys are rejected.
func SchemaFor(fields []Field) map[string]any {
	properties := make(map[string]any, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		properties[name] = fieldSchema(field)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
}

func fieldSchema(field Field) map[string]any {
	switch field.Kind {
	case FieldNumber:
		schema := map[string]any{"type": "integer"}
		if field.Min != nil {
			schema["minimum"] = *field.Min
		}
		if field.Max != nil {
			schema["maximum"] = *field.Max
		}
		return schema
	case FieldBool:
		return map[string]any{"type": "boolean"}
	case FieldSelect:
		options := make([]any, 0, len(field.Options)+1)
		options = append(options, "")
		for _, option := range field.Options {
			options = append(options, option)
		}
		return map[string]any{"type": "string", "enum": options}
	case FieldList:
		return map[string]any{
			"type":  "array",
			"items": SchemaFor(field.Item),
		}
	default:
		return map[string]any{"type": "string"}
	}
}

func copyDefinition(def Definition) Definition {
	def.Defaults = cloneContent(def.Defaults)
	def.Fields = cloneFields(def.Fields)
	return def
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, field := range fields {
		out[i] = field
		out[i].Options = append([]string(nil), field.Options...)
		out[i].Item = cloneFields(field.Item)
	}
	return out
}

func cloneSchema(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		switch typed := value.(type) {
		case map[string]any:
			out[key] = cloneSchema(typed)
		case []any:
			items := make([]any, len(typed))
			copy(items, typed)
			out[key] = items
		default:
			out[key] = value
		}
	}
	return out
}
