package runtimeconfig_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
)

func TestConfigValidate_DefaultsAreValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Storage.Provider != "memory" || !cfg.Templates.IncludeBuiltins || !cfg.Features.Markdown {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestConfigValidate_Storage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Driver = "postgres"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected bun/postgres to validate, got %v", err)
	}

	cfg.Storage.Driver = "mysql"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}

	cfg.Storage.Provider = "s3"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_Ranges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"history limit", func(c *runtimeconfig.Config) { c.History.Limit = -1 }, runtimeconfig.ErrHistoryLimitInvalid},
		{"coalesce window", func(c *runtimeconfig.Config) { c.History.CoalesceWindow = -time.Second }, runtimeconfig.ErrCoalesceWindowInvalid},
		{"cache ttl", func(c *runtimeconfig.Config) { c.Cache.DefaultTTL = -time.Second }, runtimeconfig.ErrCacheTTLInvalid},
		{"breakpoint", func(c *runtimeconfig.Config) { c.Preview.DefaultBreakpoint = "tablet" }, runtimeconfig.ErrPreviewBreakpointInvalid},
		{"theme name", func(c *runtimeconfig.Config) { c.Preview.ThemeName = "agency" }, runtimeconfig.ErrThemeNameRequiresPath},
		{"watch", func(c *runtimeconfig.Config) { c.Templates.Watch = true }, runtimeconfig.ErrTemplatesWatchRequiresDir},
		{"dispatcher", func(c *runtimeconfig.Config) { c.Commands.AutoRegisterDispatcher = true }, runtimeconfig.ErrCommandsDispatcherRequiresCommands},
	}
	for _, tc := range cases {
		cfg := runtimeconfig.DefaultConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "loud"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}
