package pagebuilder

import (
	"context"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/blocks"
	editorcmd "github.com/goliatone/go-pagebuilder/internal/commands/editor"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/internal/editor"
	"github.com/goliatone/go-pagebuilder/internal/render"
	"github.com/goliatone/go-pagebuilder/internal/templates"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Block exports the block value carried by documents.
type Block = pbblocks.Block

// Breakpoint exports the preview device class.
type Breakpoint = pbblocks.Breakpoint

// Editor exports the per-page editor controller.
type Editor = editor.Controller

// EditorState exports the controller lifecycle state.
type EditorState = editor.State

// Template exports the reusable block group.
type Template = templates.Template

// Registry exports the block type registry.
type Registry = blocks.Registry

// Catalog exports the template catalog.
type Catalog = templates.Catalog

// Compiler exports the preview compiler.
type Compiler = render.Compiler

// Commands exports the editor command handler set.
type Commands = editorcmd.HandlerSet

// Option exports container overrides such as di.WithBunDB or di.WithMedia.
type Option = di.Option

var (
	ErrSaveInFlight       = editor.ErrSaveInFlight
	ErrNothingToSave      = editor.ErrNothingToSave
	ErrStoreUnavailable   = editor.ErrStoreUnavailable
	ErrMediaUnavailable   = editor.ErrMediaUnavailable
	ErrCatalogUnavailable = editor.ErrCatalogUnavailable
	ErrPageIDRequired     = editor.ErrPageIDRequired
	ErrTemplateNotFound   = templates.ErrTemplateNotFound
	ErrPageNotFound       = interfaces.ErrPageNotFound
)

// Module is the top level page builder runtime.
type Module struct {
	container *di.Container
}

// New constructs a page builder module from cfg and optional container overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// OpenEditor returns the editor session for pageID, seeding it from the stored
// draft the first time the page is opened.
func (m *Module) OpenEditor(ctx context.Context, pageID string) (*Editor, error) {
	return m.container.Sessions().Open(ctx, pageID)
}

// CloseEditor drops the session for pageID. Unsaved edits are discarded.
func (m *Module) CloseEditor(pageID string) bool {
	return m.container.Sessions().Close(pageID)
}

// Registry returns the block type registry.
func (m *Module) Registry() *Registry {
	return m.container.Registry()
}

// Templates returns the template catalog.
func (m *Module) Templates() *Catalog {
	return m.container.Catalog()
}

// Compiler returns the preview compiler shared by editor sessions.
func (m *Module) Compiler() *Compiler {
	return m.container.Compiler()
}

// Compile renders list as a full preview document for bp.
func (m *Module) Compile(list []Block, bp Breakpoint) string {
	return m.container.Compiler().Compile(list, bp)
}

// Published loads the published block list for pageID.
func (m *Module) Published(ctx context.Context, pageID string) ([]Block, error) {
	loader := m.container.Loader()
	if loader == nil {
		return nil, ErrStoreUnavailable
	}
	return loader.LoadPublished(ctx, pageID)
}

// Commands returns the editor command handlers, or nil when commands are disabled.
func (m *Module) Commands() *Commands {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Commands()
}

// Close releases watchers, dispatcher subscriptions and owned database handles.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
