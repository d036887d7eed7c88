package templates

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
)

// Catalog stores templates keyed by id. It is safe for concurrent use and
// hands out deep copies only.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Template
	order   []string
}

// NewCatalog builds a catalog seeded with templates.
func NewCatalog(templates ...Template) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]Template)}
	for _, t := range templates {
		if _, err := c.Register(t); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewBuiltinCatalog returns a catalog holding the builtin agency templates.
func NewBuiltinCatalog() *Catalog {
	c, err := NewCatalog(BuiltinTemplates()...)
	if err != nil {
		panic(fmt.Sprintf("templates: builtin catalog: %v", err))
	}
	return c
}

// Register normalises and stores t. Registering an id twice fails.
func (c *Catalog) Register(t Template) (Template, error) {
	normalized, err := Normalize(t)
	if err != nil {
		return Template{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[normalized.ID]; exists {
		return Template{}, fmt.Errorf("%w: %s", ErrTemplateExists, normalized.ID)
	}
	c.entries[normalized.ID] = normalized
	c.order = append(c.order, normalized.ID)
	return normalized.Clone(), nil
}

// Replace swaps the whole catalog content. Nothing changes when any template
// fails to normalise or two templates share an id.
func (c *Catalog) Replace(templates []Template) error {
	entries := make(map[string]Template, len(templates))
	order := make([]string, 0, len(templates))
	for _, t := range templates {
		normalized, err := Normalize(t)
		if err != nil {
			return err
		}
		if _, exists := entries[normalized.ID]; exists {
			return fmt.Errorf("%w: %s", ErrTemplateExists, normalized.ID)
		}
		entries[normalized.ID] = normalized
		order = append(order, normalized.ID)
	}
	c.mu.Lock()
	c.entries = entries
	c.order = order
	c.mu.Unlock()
	return nil
}

// Get returns the template with id.
func (c *Catalog) Get(id string) (Template, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.entries[strings.TrimSpace(id)]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return t.Clone(), nil
}

// List returns every template in registration order.
func (c *Catalog) List() []Template {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Template, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id].Clone())
	}
	return out
}

// Len reports the number of templates.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// ByCategory lists templates in category.
func (c *Catalog) ByCategory(category string) []Template {
	category = strings.ToLower(strings.TrimSpace(category))
	out := []Template{}
	for _, t := range c.List() {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Categories returns the sorted set of template categories.
func (c *Catalog) Categories() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, t := range c.List() {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	sort.Strings(out)
	return out
}

// Search fuzzy matches query against name, description and category, best
// match first. An empty query lists everything.
func (c *Catalog) Search(query string) []Template {
	all := c.List()
	query = strings.TrimSpace(query)
	if query == "" {
		return all
	}
	searchStrings := make([]string, len(all))
	for i, t := range all {
		searchStrings[i] = fmt.Sprintf("%s %s %s", t.Name, t.Description, t.Category)
	}
	matches := fuzzy.Find(query, searchStrings)
	results := make([]Template, 0, len(matches))
	for _, match := range matches {
		results = append(results, all[match.Index])
	}
	return results
}
