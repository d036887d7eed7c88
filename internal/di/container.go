package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
	editorcmd "github.com/goliatone/go-pagebuilder/internal/commands/editor"
	"github.com/goliatone/go-pagebuilder/internal/editor"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/logging/gologger"
	"github.com/goliatone/go-pagebuilder/internal/markdown"
	"github.com/goliatone/go-pagebuilder/internal/media"
	"github.com/goliatone/go-pagebuilder/internal/metrics"
	"github.com/goliatone/go-pagebuilder/internal/render"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/internal/templates"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Container wires the page builder collaborators from a Config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownedDB       *sql.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	store  interfaces.PageStore
	loader interfaces.PageLoader
	media  interfaces.MediaPicker

	metricsRegisterer prometheus.Registerer
	metricsRegistry   *prometheus.Registry
	metrics           metrics.Recorder

	registry *blocks.Registry
	catalog  *templates.Catalog
	watcher  *templates.Watcher
	markdown *markdown.Renderer
	compiler *render.Compiler

	sessions        *editor.Sessions
	commandRegistry editorcmd.CommandRegistry
	commands        *editorcmd.HandlerSet
	subscriptions   []editorcmd.Subscription
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the configured logging provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies the database used when storage provider is bun.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the go-repository-cache service used by the bun store.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithStore overrides the page store. A store that also implements
// interfaces.PageLoader seeds editor sessions.
func WithStore(store interfaces.PageStore) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithMedia overrides the media picker.
func WithMedia(picker interfaces.MediaPicker) Option {
	return func(c *Container) {
		c.media = picker
	}
}

// WithMetricsRegisterer registers metrics with reg instead of a private registry.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(c *Container) {
		c.metricsRegisterer = reg
	}
}

// WithCommandRegistry receives the editor command handlers when commands are enabled.
func WithCommandRegistry(reg editorcmd.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

// NewContainer validates cfg and builds every collaborator.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
		media:    media.NewNoOpPicker(),
		registry: blocks.NewBuiltinRegistry(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	c.configureMetrics()
	if c.Config.Features.Markdown {
		c.markdown = markdown.NewRenderer(markdown.Options{})
	}
	if err := c.configureCatalog(); err != nil {
		return nil, err
	}
	if err := c.configureCompiler(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		c.Close()
		return nil, err
	}
	c.configureSessions()
	if err := c.configureCommands(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	format := c.Config.Logging.Format
	if strings.EqualFold(strings.TrimSpace(c.Config.Logging.Provider), "console") && strings.TrimSpace(format) == "" {
		format = "console"
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return fmt.Errorf("di: logging provider: %w", err)
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureMetrics() {
	if !c.Config.Features.Metrics {
		c.metrics = metrics.Noop()
		return
	}
	reg := c.metricsRegisterer
	if reg == nil {
		c.metricsRegistry = prometheus.NewRegistry()
		reg = c.metricsRegistry
	}
	c.metrics = metrics.New(reg)
}

func (c *Container) configureCatalog() error {
	source := templates.DirectorySource{
		Dir:             c.Config.Templates.Dir,
		IncludeBuiltins: c.Config.Templates.IncludeBuiltins,
		Renderer:        c.markdown,
	}
	loaded, err := source.Load()
	if err != nil {
		return fmt.Errorf("di: load templates: %w", err)
	}
	catalog, err := templates.NewCatalog(loaded...)
	if err != nil {
		return fmt.Errorf("di: build template catalog: %w", err)
	}
	c.catalog = catalog

	if !c.Config.Templates.Watch {
		return nil
	}
	watcher, err := templates.NewWatcher(source, catalog, logging.TemplatesLogger(c.loggerProvider))
	if err != nil {
		return fmt.Errorf("di: watch templates: %w", err)
	}
	watcher.Start()
	c.watcher = watcher
	return nil
}

func (c *Container) configureCompiler() error {
	preview := c.Config.Preview
	opts := []render.Option{
		render.WithMarkdown(c.markdown),
	}
	if strings.TrimSpace(preview.StylesheetCSS) != "" {
		opts = append(opts, render.WithStylesheet(preview.StylesheetCSS))
	}
	if strings.TrimSpace(preview.StylesheetURL) != "" {
		opts = append(opts, render.WithStylesheetURL(preview.StylesheetURL))
	}
	if strings.TrimSpace(preview.ExtraCSS) != "" {
		opts = append(opts, render.WithExtraCSS(preview.ExtraCSS))
	}
	if strings.TrimSpace(preview.Title) != "" {
		opts = append(opts, render.WithTitle(preview.Title))
	}
	if bp := strings.TrimSpace(preview.DefaultBreakpoint); bp != "" {
		opts = append(opts, render.WithDefaultBreakpoint(blocks.Breakpoint(strings.ToLower(bp))))
	}
	if strings.TrimSpace(preview.ThemePath) != "" {
		selection, err := render.LoadThemeSelection(render.ThemeConfig{
			Path:              preview.ThemePath,
			Name:              preview.ThemeName,
			Variant:           preview.ThemeVariant,
			CSSVariablePrefix: preview.CSSVariablePrefix,
		})
		if err != nil {
			return fmt.Errorf("di: preview theme: %w", err)
		}
		opts = append(opts, render.WithThemeSelection(selection, preview.CSSVariablePrefix))
	}
	c.compiler = render.NewCompiler(opts...)
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		cfg.TTL = c.cacheTTL
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureStorage() error {
	if c.store == nil {
		switch strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider)) {
		case "bun":
			if err := c.openBunDB(); err != nil {
				return err
			}
			if err := storage.EnsureSchema(context.Background(), c.bunDB); err != nil {
				return err
			}
			c.configureCacheDefaults()
			c.store = storage.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer,
				storage.WithLogger(logging.StorageLogger(c.loggerProvider)),
			)
		default:
			c.store = storage.NewMemoryStore()
		}
	}
	if loader, ok := c.store.(interfaces.PageLoader); ok {
		c.loader = loader
	}
	return nil
}

func (c *Container) openBunDB() error {
	if c.bunDB != nil {
		return nil
	}
	dsn := strings.TrimSpace(c.Config.Storage.DSN)
	if dsn == "" {
		return errors.New("di: bun storage requires a DSN or WithBunDB")
	}
	driver, err := storage.SQLDriverName(c.Config.Storage.Driver)
	if err != nil {
		return err
	}
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("di: open %s: %w", driver, err)
	}
	db, err := storage.NewBunDB(sqlDB, c.Config.Storage.Driver)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	c.ownedDB = sqlDB
	c.bunDB = db
	return nil
}

func (c *Container) configureSessions() {
	opts := []editor.Option{
		editor.WithStore(c.store),
		editor.WithMedia(c.media),
		editor.WithLogger(logging.EditorLogger(c.loggerProvider)),
		editor.WithRegistry(c.registry),
		editor.WithCatalog(c.catalog),
		editor.WithCompiler(c.compiler),
		editor.WithMetrics(c.metrics),
		editor.WithHistoryLimit(c.Config.History.Limit),
		editor.WithCoalesceWindow(c.Config.History.CoalesceWindow),
		editor.WithAddAfterSelection(c.Config.Editor.AddAfterSelection),
	}
	c.sessions = editor.NewSessions(c.loader, logging.EditorLogger(c.loggerProvider), opts...)
}

func (c *Container) configureCommands() error {
	if !c.Config.Commands.Enabled {
		return nil
	}
	set, err := editorcmd.RegisterEditorCommands(c.commandRegistry, c.sessions, c.loggerProvider)
	if err != nil {
		return fmt.Errorf("di: register editor commands: %w", err)
	}
	c.commands = set
	if c.Config.Commands.AutoRegisterDispatcher {
		c.subscriptions = editorcmd.SubscribeDispatcher(set)
	}
	return nil
}

// Close stops the template watcher, drops dispatcher subscriptions and closes
// a database the container opened itself.
func (c *Container) Close() error {
	var errs []error
	if c.watcher != nil {
		if err := c.watcher.Stop(); err != nil {
			errs = append(errs, err)
		}
		c.watcher = nil
	}
	for _, sub := range c.subscriptions {
		sub.Unsubscribe()
	}
	c.subscriptions = nil
	if c.ownedDB != nil {
		if err := c.ownedDB.Close(); err != nil {
			errs = append(errs, err)
		}
		c.ownedDB = nil
	}
	return errors.Join(errs...)
}

// Sessions returns the editor session registry.
func (c *Container) Sessions() *editor.Sessions { return c.sessions }

// Registry returns the block type registry.
func (c *Container) Registry() *blocks.Registry { return c.registry }

// Catalog returns the template catalog.
func (c *Container) Catalog() *templates.Catalog { return c.catalog }

// Compiler returns the preview compiler.
func (c *Container) Compiler() *render.Compiler { return c.compiler }

// Store returns the page store.
func (c *Container) Store() interfaces.PageStore { return c.store }

// Loader returns the page loader, or nil when the store cannot load pages.
func (c *Container) Loader() interfaces.PageLoader { return c.loader }

// Commands returns the editor command handlers, or nil when commands are disabled.
func (c *Container) Commands() *editorcmd.HandlerSet { return c.commands }

// Metrics returns the metrics recorder.
func (c *Container) Metrics() metrics.Recorder { return c.metrics }

// MetricsGatherer returns the private registry created when metrics are
// enabled without WithMetricsRegisterer.
func (c *Container) MetricsGatherer() prometheus.Gatherer {
	if c.metricsRegistry == nil {
		return nil
	}
	return c.metricsRegistry
}

// Logger returns a module logger from the configured provider.
func (c *Container) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}
