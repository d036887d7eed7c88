package templates

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/identity"
)

var (
	ErrTemplateNotFound     = errors.New("templates: template not found")
	ErrTemplateExists       = errors.New("templates: template already registered")
	ErrTemplateNameRequired = errors.New("templates: template name required")
	ErrTemplateEmpty        = errors.New("templates: template has no blocks")
	ErrTemplateInvalid      = errors.New("templates: invalid template record")
)

// DefaultCategory is assigned to templates registered without one.
const DefaultCategory = "general"

// Seed is one id-free block of a template.
type Seed struct {
	Type    blocks.Type
	Content blocks.Content
}

type seedEnvelope struct {
	Type    blocks.Type     `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
}

// MarshalJSON encodes the seed as {"type","content"}.
func (s Seed) MarshalJSON() ([]byte, error) {
	block := blocks.Block{Type: s.Type, Content: s.Content}
	content := block.ContentOrEmpty()
	if content == nil {
		return nil, fmt.Errorf("%w: %q", blocks.ErrUnknownType, s.Type)
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(seedEnvelope{Type: s.Type, Content: raw})
}

// UnmarshalJSON decodes a seed, dispatching content on the type tag.
func (s *Seed) UnmarshalJSON(data []byte) error {
	var env seedEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if !env.Type.Valid() {
		return fmt.Errorf("%w: %q", blocks.ErrUnknownType, env.Type)
	}
	content, err := pbblocks.DecodeContent(env.Type, env.Content)
	if err != nil {
		return err
	}
	*s = Seed{Type: env.Type, Content: content}
	return nil
}

// SeedOf builds a seed from typed content.
func SeedOf(content blocks.Content) Seed {
	return Seed{Type: content.BlockType(), Content: content}
}

// Template is a named, categorised, immutable block sequence used to seed
// documents in bulk.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Blocks      []Seed `json:"blocks"`
}

// Clone deep copies the template.
func (t Template) Clone() Template {
	out := t
	out.Blocks = make([]Seed, len(t.Blocks))
	for i, seed := range t.Blocks {
		out.Blocks[i] = Seed{Type: seed.Type, Content: pbblocks.CloneContent(seed.Content)}
	}
	return out
}

// Normalize fills derived fields and checks the block list, which must hold at
// least one seed. Ids are slugged; templates without an id get one derived from
// their name.
func Normalize(t Template) (Template, error) {
	t = t.Clone()
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return Template{}, ErrTemplateNameRequired
	}
	if id := strings.TrimSpace(t.ID); id != "" {
		t.ID = identity.Slug(id)
	} else {
		t.ID = identity.TemplateUUID(t.Name).String()
	}
	t.Category = strings.ToLower(strings.TrimSpace(t.Category))
	if t.Category == "" {
		t.Category = DefaultCategory
	}
	t.Description = strings.TrimSpace(t.Description)
	if len(t.Blocks) == 0 {
		return Template{}, fmt.Errorf("%w: %s", ErrTemplateEmpty, t.ID)
	}
	for i, seed := range t.Blocks {
		if !seed.Type.Valid() {
			return Template{}, fmt.Errorf("%w: block %d: %q", blocks.ErrUnknownType, i, seed.Type)
		}
		if seed.Content == nil {
			empty, err := pbblocks.EmptyContent(seed.Type)
			if err != nil {
				return Template{}, err
			}
			t.Blocks[i].Content = empty
			continue
		}
		if seed.Content.BlockType() != seed.Type {
			return Template{}, fmt.Errorf("%w: block %d", blocks.ErrContentMismatch, i)
		}
	}
	return t, nil
}

// Instantiate turns a template into fresh document blocks. Every block gets a
// new id from newID, deep copied content, no style overrides and full
// visibility. Content is not validated; renderers tolerate missing values.
func Instantiate(t Template, newID func() string) []blocks.Block {
	if newID == nil {
		newID = identity.NewBlockID
	}
	out := make([]blocks.Block, 0, len(t.Blocks))
	for _, seed := range t.Blocks {
		content := pbblocks.CloneContent(seed.Content)
		if content == nil {
			empty, err := pbblocks.EmptyContent(seed.Type)
			if err != nil {
				continue
			}
			content = empty
		}
		out = append(out, blocks.Block{
			ID:      newID(),
			Type:    seed.Type,
			Content: content,
		})
	}
	return out
}
