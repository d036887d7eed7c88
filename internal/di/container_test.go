package di_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	editorcmd "github.com/goliatone/go-pagebuilder/internal/commands/editor"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/pkg/testsupport"
)

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func newContainer(t *testing.T, cfg runtimeconfig.Config, opts ...di.Option) *di.Container {
	t.Helper()
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })
	return container
}

func TestNewContainerDefaults(t *testing.T) {
	container := newContainer(t, runtimeconfig.DefaultConfig())

	if _, ok := container.Store().(*storage.MemoryStore); !ok {
		t.Fatalf("expected memory store by default, got %T", container.Store())
	}
	if container.Loader() == nil {
		t.Fatalf("memory store should double as the session loader")
	}
	if _, err := container.Catalog().Get("landing-hero"); err != nil {
		t.Fatalf("expected builtin templates in the catalog")
	}
	if container.Commands() != nil {
		t.Fatalf("commands are disabled by default")
	}
	if container.MetricsGatherer() != nil {
		t.Fatalf("metrics are disabled by default")
	}

	ctx := context.Background()
	session, err := container.Sessions().Open(ctx, "home")
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if _, err := session.AddBlock(pbblocks.TypeText); err != nil {
		t.Fatalf("add block: %v", err)
	}
	if err := session.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	draft, err := container.Loader().LoadDraft(ctx, "home")
	if err != nil || len(draft) != 1 {
		t.Fatalf("expected saved draft, got %v %v", draft, err)
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.History.Limit = -5
	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrHistoryLimitInvalid) {
		t.Fatalf("expected ErrHistoryLimitInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	if _, err := di.NewContainer(cfg); err == nil {
		t.Fatalf("expected bun storage without DSN or database to fail")
	}
}

func TestNewContainerBunStorage(t *testing.T) {
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := storage.NewBunDB(sqlDB, storage.DriverSQLite)
	if err != nil {
		t.Fatalf("bun db: %v", err)
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	container := newContainer(t, cfg, di.WithBunDB(db))

	if _, ok := container.Store().(*storage.BunStore); !ok {
		t.Fatalf("expected bun store, got %T", container.Store())
	}

	ctx := context.Background()
	session, err := container.Sessions().Open(ctx, "about")
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if _, err := session.AddBlock(pbblocks.TypeHero); err != nil {
		t.Fatalf("add block: %v", err)
	}
	if err := session.Publish(ctx); err != nil {
		t.Fatalf("publish: %v", err)
	}
	published, err := container.Loader().LoadPublished(ctx, "about")
	if err != nil || len(published) != 1 || published[0].Type != pbblocks.TypeHero {
		t.Fatalf("expected published hero, got %v %v", published, err)
	}
}

func TestNewContainerCachedBunStorage(t *testing.T) {
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := storage.NewBunDB(sqlDB, storage.DriverSQLite)
	if err != nil {
		t.Fatalf("bun db: %v", err)
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Cache.Enabled = true
	container := newContainer(t, cfg, di.WithBunDB(db))
	if _, ok := container.Store().(*storage.BunStore); !ok {
		t.Fatalf("expected cached bun store, got %T", container.Store())
	}
}

func TestNewContainerLoadsTemplateDirectory(t *testing.T) {
	dir := t.TempDir()
	body := `{"id":"team-intro","name":"Team intro","category":"about","blocks":[{"type":"text","content":{"heading":"Team"}}]}`
	if err := os.WriteFile(filepath.Join(dir, "team.json"), []byte(body), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Templates.Dir = dir
	cfg.Templates.IncludeBuiltins = false
	cfg.Templates.Watch = true
	container := newContainer(t, cfg)

	if _, err := container.Catalog().Get("team-intro"); err != nil {
		t.Fatalf("expected directory template in catalog")
	}
	if _, err := container.Catalog().Get("landing-hero"); err == nil {
		t.Fatalf("builtins should be excluded")
	}
}

func TestNewContainerMetricsAndCommands(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Metrics = true
	cfg.Commands.Enabled = true
	reg := &recordingRegistry{}
	container := newContainer(t, cfg, di.WithCommandRegistry(reg))

	if container.Commands() == nil || len(reg.handlers) != len(container.Commands().All()) {
		t.Fatalf("expected editor handlers registered, got %d", len(reg.handlers))
	}

	ctx := context.Background()
	result := &editorcmd.BlockResult{}
	if err := container.Commands().AddBlock.Execute(ctx, editorcmd.AddBlockCommand{PageID: "home", BlockType: "hero", Result: result}); err != nil {
		t.Fatalf("add via command: %v", err)
	}
	session, _ := container.Sessions().Get("home")
	_ = session.Preview(pbblocks.BreakpointLarge)

	families, err := container.MetricsGatherer().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, family := range families {
		names[family.GetName()] = true
	}
	for _, want := range []string{"pagebuilder_mutations_total", "pagebuilder_compile_duration_seconds"} {
		if !names[want] {
			t.Fatalf("expected metric %s in %v", want, names)
		}
	}
}

func TestNewContainerGologger(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"
	container := newContainer(t, cfg)

	if container.Logger("editor") == nil {
		t.Fatalf("expected a module logger")
	}
}

func TestNewContainerPreviewStylesheets(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Preview.StylesheetURL = "https://cdn.example.com/site.css"
	container := newContainer(t, cfg)

	out := container.Compiler().Compile(nil, pbblocks.BreakpointLarge)
	if !strings.Contains(out, `<link rel="stylesheet" href="https://cdn.example.com/site.css">`) || !strings.Contains(out, ".pb-block{") {
		t.Fatalf("expected linked sheet next to the shared stylesheet:\n%s", out)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Preview.StylesheetCSS = ".custom{color:red}"
	out = newContainer(t, cfg).Compiler().Compile(nil, pbblocks.BreakpointLarge)
	if !strings.Contains(out, ".custom{color:red}") || strings.Contains(out, ".pb-block{") {
		t.Fatalf("expected inline stylesheet to replace the shared one:\n%s", out)
	}
}
