package render

import (
	"html"
	"sort"
	"strings"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/markdown"
)

// DefaultTitle is the preview document title when none is configured.
const DefaultTitle = "Page preview"

// Option configures a Compiler.
type Option func(*Compiler)

// WithStylesheet replaces the shared preview stylesheet with inline CSS.
func WithStylesheet(css string) Option {
	return func(c *Compiler) {
		c.stylesheet = css
	}
}

// WithStylesheetURL links an external stylesheet from the document head. The
// shared stylesheet is kept and the linked sheet loads after it.
func WithStylesheetURL(url string) Option {
	return func(c *Compiler) {
		if url = strings.TrimSpace(url); url != "" {
			c.stylesheetURLs = append(c.stylesheetURLs, url)
		}
	}
}

// WithExtraCSS appends rules after the shared stylesheet.
func WithExtraCSS(css string) Option {
	return func(c *Compiler) {
		c.extraCSS = css
	}
}

// WithTitle sets the preview document title.
func WithTitle(title string) Option {
	return func(c *Compiler) {
		if strings.TrimSpace(title) != "" {
			c.title = title
		}
	}
}

// WithThemeVariables emits vars as custom properties on :root. Keys without
// a leading "--" get one.
func WithThemeVariables(vars map[string]string) Option {
	return func(c *Compiler) {
		c.themeVars = make(map[string]string, len(vars))
		for key, value := range vars {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if !strings.HasPrefix(key, "--") {
				key = "--" + key
			}
			c.themeVars[key] = value
		}
	}
}

// WithMarkdown sets the renderer used for Markdown text blocks. Nil disables
// conversion and Markdown bodies are shown as escaped text.
func WithMarkdown(renderer *markdown.Renderer) Option {
	return func(c *Compiler) {
		c.markdown = renderer
	}
}

// WithDefaultBreakpoint selects the breakpoint used when Compile receives an
// unknown one.
func WithDefaultBreakpoint(bp blocks.Breakpoint) Option {
	return func(c *Compiler) {
		if bp.Valid() {
			c.fallbackBreakpoint = bp
		}
	}
}

// Compiler turns a block list into preview markup. Its output depends only on
// the blocks, the breakpoint and the options fixed at construction, so it is
// safe for concurrent use.
type Compiler struct {
	stylesheet         string
	stylesheetURLs     []string
	extraCSS           string
	title              string
	themeVars          map[string]string
	markdown           *markdown.Renderer
	fallbackBreakpoint blocks.Breakpoint
}

// NewCompiler builds a compiler with the shared stylesheet and Markdown
// support enabled.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		stylesheet:         DefaultStylesheet,
		title:              DefaultTitle,
		markdown:           markdown.NewRenderer(markdown.Options{}),
		fallbackBreakpoint: pbblocks.BreakpointLarge,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Compile renders the blocks visible at bp, in order, inside the preview
// document shell.
func (c *Compiler) Compile(list []blocks.Block, bp blocks.Breakpoint) string {
	bp = c.breakpoint(bp)
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	b.WriteString("<title>")
	b.WriteString(html.EscapeString(c.title))
	b.WriteString("</title>\n<style>\n")
	b.WriteString(c.stylesheet)
	c.writeThemeVars(&b)
	if c.extraCSS != "" {
		b.WriteString("\n")
		b.WriteString(c.extraCSS)
	}
	b.WriteString("\n</style>\n")
	for _, url := range c.stylesheetURLs {
		b.WriteString("<link rel=\"stylesheet\" href=\"")
		b.WriteString(html.EscapeString(url))
		b.WriteString("\">\n")
	}
	b.WriteString("</head>\n")
	b.WriteString("<body class=\"pb-preview pb-bp-")
	b.WriteString(string(bp))
	b.WriteString("\" data-breakpoint=\"")
	b.WriteString(string(bp))
	b.WriteString("\">\n<main class=\"pb-page\">\n")
	c.writeBlocks(&b, list, bp)
	b.WriteString("</main>\n</body>\n</html>\n")
	return b.String()
}

// CompileFragment renders the visible blocks without the document shell.
func (c *Compiler) CompileFragment(list []blocks.Block, bp blocks.Breakpoint) string {
	var b strings.Builder
	c.writeBlocks(&b, list, c.breakpoint(bp))
	return b.String()
}

// Visible returns the blocks shown at bp, in order.
func Visible(list []blocks.Block, bp blocks.Breakpoint) []blocks.Block {
	out := make([]blocks.Block, 0, len(list))
	for _, block := range list {
		if block.Visibility.Hidden(bp) {
			continue
		}
		out = append(out, block)
	}
	return out
}

func (c *Compiler) breakpoint(bp blocks.Breakpoint) blocks.Breakpoint {
	if bp.Valid() {
		return bp
	}
	return c.fallbackBreakpoint
}

func (c *Compiler) writeBlocks(b *strings.Builder, list []blocks.Block, bp blocks.Breakpoint) {
	for _, block := range Visible(list, bp) {
		c.writeBlock(b, block, bp)
	}
}

func (c *Compiler) writeThemeVars(b *strings.Builder) {
	if len(c.themeVars) == 0 {
		return
	}
	keys := make([]string, 0, len(c.themeVars))
	for key := range c.themeVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	b.WriteString("\n:root {")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(c.themeVars[key])
		b.WriteString(";")
	}
	b.WriteString("}")
}
