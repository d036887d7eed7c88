package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

// ErrThemePathRequired is returned when a theme selection is requested without
// a manifest directory.
var ErrThemePathRequired = errors.New("render: theme path required")

// ThemeConfig locates the go-theme manifest feeding preview CSS variables.
type ThemeConfig struct {
	Path              string
	Name              string
	Variant           string
	CSSVariablePrefix string
}

// LoadThemeSelection loads the manifest under cfg.Path and resolves the
// configured theme and variant.
func LoadThemeSelection(cfg ThemeConfig) (*gotheme.Selection, error) {
	cleaned := strings.TrimSpace(cfg.Path)
	if cleaned == "" {
		return nil, ErrThemePathRequired
	}
	cleaned = filepath.Clean(cleaned)

	manifest, err := gotheme.LoadDir(os.DirFS(cleaned), ".")
	if err != nil {
		return nil, fmt.Errorf("load theme manifest from %s: %w", cleaned, err)
	}

	normalized := *manifest
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = strings.TrimSpace(normalized.Name)
	}
	if name == "" {
		return nil, fmt.Errorf("render: theme name required for manifest in %s", cleaned)
	}
	normalized.Name = name

	registry := gotheme.NewRegistry()
	if err := registry.Register(&normalized); err != nil {
		return nil, fmt.Errorf("register theme manifest: %w", err)
	}

	selector := gotheme.Selector{
		Registry:       registry,
		DefaultTheme:   name,
		DefaultVariant: strings.TrimSpace(cfg.Variant),
	}
	selection, err := selector.Select(name, strings.TrimSpace(cfg.Variant))
	if err != nil {
		return nil, fmt.Errorf("select theme %s: %w", name, err)
	}
	return selection, nil
}

// ThemeVariables flattens a selection into CSS custom properties. A nil
// selection yields an empty map.
func ThemeVariables(selection *gotheme.Selection, prefix string) map[string]string {
	if selection == nil {
		return map[string]string{}
	}
	return selection.CSSVariables(prefix)
}

// WithThemeSelection resolves the selection's CSS variables once at
// construction and emits them on :root.
func WithThemeSelection(selection *gotheme.Selection, prefix string) Option {
	return WithThemeVariables(ThemeVariables(selection, prefix))
}
