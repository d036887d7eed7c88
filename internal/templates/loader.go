package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/markdown"
)

type markdownFrontMatter struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Category    string       `yaml:"category"`
	Heading     string       `yaml:"heading"`
	Blocks      []seedRecord `yaml:"blocks"`
}

// LoadDir reads every template file under fsys. JSON and YAML files hold one
// exported record each. Markdown files carry the record fields in YAML front
// matter and their body becomes a trailing text block. Hidden entries are
// skipped.
func LoadDir(fsys fs.FS, renderer *markdown.Renderer) ([]Template, error) {
	if renderer == nil {
		renderer = markdown.NewRenderer(markdown.Options{})
	}
	var out []Template
	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		base := entry.Name()
		if name != "." && strings.HasPrefix(base, ".") {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		var (
			t      Template
			parsed = true
		)
		switch strings.ToLower(path.Ext(base)) {
		case ".json":
			t, err = Import(data)
		case ".yaml", ".yml":
			t, err = ImportYAML(data)
		case ".md", ".markdown":
			t, err = loadMarkdown(data, renderer)
		default:
			parsed = false
		}
		if err != nil {
			return fmt.Errorf("templates: load %s: %w", name, err)
		}
		if parsed {
			out = append(out, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// IsTemplateFile reports whether name has an extension LoadDir understands.
func IsTemplateFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml", ".md", ".markdown":
		return !strings.HasPrefix(path.Base(name), ".")
	default:
		return false
	}
}

func loadMarkdown(data []byte, renderer *markdown.Renderer) (Template, error) {
	var meta markdownFrontMatter
	body, err := markdown.ParseFrontMatter(data, &meta)
	if err != nil {
		return Template{}, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}
	rec := templateRecord{
		ID:          meta.ID,
		Name:        meta.Name,
		Description: meta.Description,
		Category:    meta.Category,
		Blocks:      make([]seedRecord, 0, len(meta.Blocks)+1),
	}
	for _, seed := range meta.Blocks {
		content, _ := normalizeYAMLValue(seed.Content).(map[string]any)
		rec.Blocks = append(rec.Blocks, seedRecord{Type: seed.Type, Content: content})
	}
	if len(bytes.TrimSpace(body)) > 0 {
		html, err := renderer.Render(body)
		if err != nil {
			return Template{}, err
		}
		content := map[string]any{
			"content": strings.TrimSpace(string(html)),
			"format":  string(pbblocks.TextHTML),
		}
		if heading := strings.TrimSpace(meta.Heading); heading != "" {
			content["heading"] = heading
		}
		rec.Blocks = append(rec.Blocks, seedRecord{Type: string(pbblocks.TypeText), Content: content})
	}
	return importPayload(rec)
}

// normalizeYAMLValue converts the map[any]any values some YAML decoders emit
// for nested mappings into JSON compatible maps.
func normalizeYAMLValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = normalizeYAMLValue(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = normalizeYAMLValue(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = normalizeYAMLValue(item)
		}
		return out
	default:
		return value
	}
}
