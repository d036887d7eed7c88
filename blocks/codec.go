package blocks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrContentMismatch is returned when content does not belong to the block type.
var ErrContentMismatch = errors.New("blocks: content does not match block type")

type blockEnvelope struct {
	ID         string          `json:"id"`
	Type       Type            `json:"type"`
	Content    json.RawMessage `json:"content,omitempty"`
	Styles     *Styles         `json:"styles,omitempty"`
	Visibility *Visibility     `json:"visibility,omitempty"`
}

// MarshalJSON encodes the block as a self-describing record keyed by type.
func (b Block) MarshalJSON() ([]byte, error) {
	if !b.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, b.Type)
	}
	content := b.ContentOrEmpty()
	if b.Content != nil && b.Content.BlockType() != b.Type {
		return nil, fmt.Errorf("%w: %s holds %s content", ErrContentMismatch, b.Type, b.Content.BlockType())
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("blocks: encode %s content: %w", b.Type, err)
	}
	env := blockEnvelope{
		ID:      b.ID,
		Type:    b.Type,
		Content: raw,
	}
	if !b.Styles.IsZero() {
		styles := b.Styles
		env.Styles = &styles
	}
	if !b.Visibility.AllVisible() {
		visibility := b.Visibility
		env.Visibility = &visibility
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes a record produced by MarshalJSON, dispatching the
// content payload on the type tag.
func (b *Block) UnmarshalJSON(data []byte) error {
	var env blockEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("blocks: decode block: %w", err)
	}
	if !env.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
	content, err := DecodeContent(env.Type, env.Content)
	if err != nil {
		return err
	}
	*b = Block{
		ID:      env.ID,
		Type:    env.Type,
		Content: content,
	}
	if env.Styles != nil {
		b.Styles = *env.Styles
	}
	if env.Visibility != nil {
		b.Visibility = *env.Visibility
	}
	return nil
}

// DecodeContent decodes raw into the content variant for t. Unknown keys are
// ignored so stored documents survive shape changes.
func DecodeContent(t Type, raw []byte) (Content, error) {
	return decodeContent(t, raw, false)
}

func decodeContent(t Type, raw []byte, strict bool) (Content, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return EmptyContent(t)
	}
	switch t {
	case TypeHero:
		return decodeInto[HeroContent](raw, strict)
	case TypeText:
		return decodeInto[TextContent](raw, strict)
	case TypeImage:
		return decodeInto[ImageContent](raw, strict)
	case TypeCTA:
		return decodeInto[CTAContent](raw, strict)
	case TypeGrid:
		return decodeInto[GridContent](raw, strict)
	case TypeTestimonials:
		return decodeInto[TestimonialsContent](raw, strict)
	case TypeFAQ:
		return decodeInto[FAQContent](raw, strict)
	case TypeStats:
		return decodeInto[StatsContent](raw, strict)
	case TypeVideo:
		return decodeInto[VideoContent](raw, strict)
	case TypeCode:
		return decodeInto[CodeContent](raw, strict)
	case TypeForm:
		return decodeInto[FormContent](raw, strict)
	case TypeSpacer:
		return decodeInto[SpacerContent](raw, strict)
	case TypeDivider:
		return decodeInto[DividerContent](raw, strict)
	case TypeColumns:
		return decodeInto[ColumnsContent](raw, strict)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
}

func decodeInto[T Content](raw []byte, strict bool) (Content, error) {
	var value T
	decoder := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("blocks: decode %s content: %w", value.BlockType(), err)
	}
	return value, nil
}

// ContentMap renders c as a generic key/value map using its JSON shape.
func ContentMap(c Content) (map[string]any, error) {
	if c == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("blocks: encode %s content: %w", c.BlockType(), err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("blocks: encode %s content: %w", c.BlockType(), err)
	}
	return out, nil
}

// ContentFromMap decodes a generic key/value map into the variant for t.
// Unknown keys are rejected.
func ContentFromMap(t Type, values map[string]any) (Content, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	if len(values) == 0 {
		return EmptyContent(t)
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("blocks: encode %s content: %w", t, err)
	}
	return decodeContent(t, raw, true)
}

// ApplyPatch merges patch into c and returns the updated variant. Keys set to
// nil are cleared; keys outside the variant's shape are rejected. c is not
// modified.
func ApplyPatch(c Content, patch map[string]any) (Content, error) {
	if c == nil {
		return nil, ErrContentMismatch
	}
	if len(patch) == 0 {
		return c.cloneContent(), nil
	}
	current, err := ContentMap(c)
	if err != nil {
		return nil, err
	}
	for key, value := range patch {
		if value == nil {
			delete(current, key)
			continue
		}
		current[key] = value
	}
	return ContentFromMap(c.BlockType(), current)
}
