package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-pagebuilder"
	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/templates"
)

const allBreakpoints = "all"

type options struct {
	file         string
	pageID       string
	breakpoint   string
	fragment     bool
	outDir       string
	templatesDir string
	noBuiltins   bool
	list         bool
	search       string
	export       string
	stylesheet   string
	themePath    string
	themeName    string
	driver       string
	dsn          string
	logLevel     string
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("preview: %v", err)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.StringVar(&opts.file, "file", "", "Block list JSON file to compile")
	fs.StringVar(&opts.pageID, "page", "", "Compile the published page with this id from the database (requires --dsn)")
	fs.StringVar(&opts.breakpoint, "breakpoint", "large", "Breakpoint to compile: small, medium, large or all")
	fs.BoolVar(&opts.fragment, "fragment", false, "Emit block markup without the document wrapper")
	fs.StringVar(&opts.outDir, "out", "", "Write preview-<breakpoint>.html files here instead of stdout")
	fs.StringVar(&opts.templatesDir, "templates", "", "Directory of JSON, YAML or Markdown templates")
	fs.BoolVar(&opts.noBuiltins, "no-builtins", false, "Exclude the builtin templates")
	fs.BoolVar(&opts.list, "list-templates", false, "List catalog templates")
	fs.StringVar(&opts.search, "search", "", "Fuzzy search the catalog")
	fs.StringVar(&opts.export, "export", "", "Export the template with this id as YAML")
	fs.StringVar(&opts.stylesheet, "stylesheet", "", "Stylesheet URL linked from the preview document, after the shared stylesheet")
	fs.StringVar(&opts.themePath, "theme", "", "go-theme manifest used for CSS variables")
	fs.StringVar(&opts.themeName, "theme-name", "", "Theme name inside the manifest")
	fs.StringVar(&opts.driver, "driver", "sqlite", "Database driver: sqlite or postgres")
	fs.StringVar(&opts.dsn, "dsn", "", "Database DSN for --page")
	fs.StringVar(&opts.logLevel, "log-level", "", "Enable structured logging at this level")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	module, err := pagebuilder.New(buildConfig(opts))
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	switch {
	case opts.export != "":
		return exportTemplate(module.Templates(), opts.export, stdout)
	case opts.list || opts.search != "":
		return listTemplates(module.Templates(), opts.search, stdout)
	}

	list, err := loadBlocks(ctx, module, opts)
	if err != nil {
		return err
	}
	breakpoints, err := selectBreakpoints(opts.breakpoint)
	if err != nil {
		return err
	}
	for _, bp := range breakpoints {
		var html string
		if opts.fragment {
			html = module.Compiler().CompileFragment(list, bp)
		} else {
			html = module.Compile(list, bp)
		}
		if err := emit(opts.outDir, bp, html, stdout); err != nil {
			return err
		}
	}
	return nil
}

func buildConfig(opts options) pagebuilder.Config {
	cfg := pagebuilder.DefaultConfig()
	cfg.Templates.Dir = opts.templatesDir
	cfg.Templates.IncludeBuiltins = !opts.noBuiltins
	cfg.Preview.StylesheetURL = opts.stylesheet
	cfg.Preview.ThemePath = opts.themePath
	cfg.Preview.ThemeName = opts.themeName
	if opts.dsn != "" {
		cfg.Storage.Provider = "bun"
		cfg.Storage.Driver = opts.driver
		cfg.Storage.DSN = opts.dsn
	}
	if opts.logLevel != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = opts.logLevel
		cfg.Logging.Format = "console"
	}
	return cfg
}

func loadBlocks(ctx context.Context, module *pagebuilder.Module, opts options) ([]pbblocks.Block, error) {
	switch {
	case opts.pageID != "":
		if opts.dsn == "" {
			return nil, errors.New("--page requires --dsn")
		}
		return module.Published(ctx, opts.pageID)
	case opts.file != "":
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return nil, err
		}
		var list []pbblocks.Block
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode %s: %w", opts.file, err)
		}
		return list, nil
	default:
		return nil, errors.New("one of --file, --page, --list-templates, --search or --export is required")
	}
}

func selectBreakpoints(value string) ([]pbblocks.Breakpoint, error) {
	if strings.EqualFold(strings.TrimSpace(value), allBreakpoints) {
		return pbblocks.Breakpoints(), nil
	}
	bp, err := pbblocks.ParseBreakpoint(value)
	if err != nil {
		return nil, err
	}
	return []pbblocks.Breakpoint{bp}, nil
}

func emit(outDir string, bp pbblocks.Breakpoint, html string, stdout io.Writer) error {
	if outDir == "" {
		_, err := fmt.Fprintln(stdout, html)
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(outDir, fmt.Sprintf("preview-%s.html", bp))
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return err
	}
	_, err := fmt.Fprintf(stdout, "wrote %s\n", path)
	return err
}

func listTemplates(catalog *templates.Catalog, query string, stdout io.Writer) error {
	list := catalog.List()
	if query != "" {
		list = catalog.Search(query)
	}
	for _, tmpl := range list {
		if _, err := fmt.Fprintf(stdout, "%s\t%s\t%s\t%d blocks\n", tmpl.ID, tmpl.Category, tmpl.Name, len(tmpl.Blocks)); err != nil {
			return err
		}
	}
	return nil
}

func exportTemplate(catalog *templates.Catalog, id string, stdout io.Writer) error {
	tmpl, err := catalog.Get(id)
	if err != nil {
		return err
	}
	data, err := templates.ExportYAML(tmpl)
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}
