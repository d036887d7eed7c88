package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrStorageProviderUnknown = errors.New("pagebuilder config: storage provider is invalid")
var ErrStorageDriverUnknown = errors.New("pagebuilder config: storage driver must be sqlite or postgres")
var ErrHistoryLimitInvalid = errors.New("pagebuilder config: history limit must be zero or positive")
var ErrCoalesceWindowInvalid = errors.New("pagebuilder config: coalesce window must be zero or positive")
var ErrCacheTTLInvalid = errors.New("pagebuilder config: cache ttl must be zero or positive")
var ErrPreviewBreakpointInvalid = errors.New("pagebuilder config: preview breakpoint must be small, medium or large")
var ErrThemeNameRequiresPath = errors.New("pagebuilder config: theme name requires a theme path")
var ErrTemplatesWatchRequiresDir = errors.New("pagebuilder config: template watching requires a template directory")
var ErrCommandsDispatcherRequiresCommands = errors.New("pagebuilder config: dispatcher auto-registration requires commands to be enabled")
var ErrLoggingProviderRequired = errors.New("pagebuilder config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("pagebuilder config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("pagebuilder config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("pagebuilder config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the page builder.
type Config struct {
	Storage   StorageConfig
	Cache     CacheConfig
	History   HistoryConfig
	Editor    EditorConfig
	Preview   PreviewConfig
	Templates TemplatesConfig
	Commands  CommandsConfig
	Features  Features
	Logging   LoggingConfig
}

// StorageConfig selects where page documents live. Provider is memory or bun;
// bun needs a Driver and either a DSN or an injected database.
type StorageConfig struct {
	Provider string
	Driver   string
	DSN      string
}

// CacheConfig captures go-repository-cache behaviour for the bun store.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// HistoryConfig bounds undo history per session.
type HistoryConfig struct {
	Limit          int
	CoalesceWindow time.Duration
}

// EditorConfig captures editing behaviour.
type EditorConfig struct {
	AddAfterSelection bool
}

// PreviewConfig configures the render compiler. StylesheetURL is linked from
// the document head next to the shared stylesheet; StylesheetCSS replaces the
// shared stylesheet outright.
type PreviewConfig struct {
	StylesheetURL     string
	StylesheetCSS     string
	ExtraCSS          string
	Title             string
	ThemePath         string
	ThemeName         string
	ThemeVariant      string
	CSSVariablePrefix string
	DefaultBreakpoint string
}

// TemplatesConfig controls where templates come from.
type TemplatesConfig struct {
	Dir             string
	Watch           bool
	IncludeBuiltins bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled                bool
	AutoRegisterDispatcher bool
}

// Features toggles module functionality.
type Features struct {
	Logger   bool
	Metrics  bool
	Markdown bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns in-memory storage, builtin templates and markdown
// text blocks.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider: "memory",
			Driver:   "sqlite",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		History: HistoryConfig{
			Limit:          200,
			CoalesceWindow: 750 * time.Millisecond,
		},
		Preview: PreviewConfig{
			Title:             "Page preview",
			CSSVariablePrefix: "theme",
			DefaultBreakpoint: "large",
		},
		Templates: TemplatesConfig{
			IncludeBuiltins: true,
		},
		Commands: CommandsConfig{},
		Features: Features{
			Markdown: true,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch normalize(cfg.Storage.Provider) {
	case "", "memory":
	case "bun":
		if !isSupportedDriver(cfg.Storage.Driver) {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.History.Limit < 0 {
		return ErrHistoryLimitInvalid
	}
	if cfg.History.CoalesceWindow < 0 {
		return ErrCoalesceWindowInvalid
	}
	switch normalize(cfg.Preview.DefaultBreakpoint) {
	case "", "small", "medium", "large":
	default:
		return fmt.Errorf("%w: %s", ErrPreviewBreakpointInvalid, cfg.Preview.DefaultBreakpoint)
	}
	if strings.TrimSpace(cfg.Preview.ThemeName) != "" && strings.TrimSpace(cfg.Preview.ThemePath) == "" {
		return ErrThemeNameRequiresPath
	}
	if cfg.Templates.Watch && strings.TrimSpace(cfg.Templates.Dir) == "" {
		return ErrTemplatesWatchRequiresDir
	}
	if cfg.Commands.AutoRegisterDispatcher && !cfg.Commands.Enabled {
		return ErrCommandsDispatcherRequiresCommands
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDriver(driver string) bool {
	switch normalize(driver) {
	case "sqlite", "sqlite3", "postgres", "postgresql", "pg":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
