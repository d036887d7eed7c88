package render

import (
	"html"
	"strconv"
	"strings"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/blocks"
)

const (
	defaultButtonText    = "Learn more"
	defaultLink          = "#"
	defaultSpacerHeight  = 32
	defaultGridColumns   = 3
	defaultSubmitText    = "Submit"
	defaultDividerStyle  = "solid"
	defaultDividerColor  = "#e5e7eb"
	defaultDividerWidth  = 100
	defaultDividerWeight = 1
)

func esc(s string) string {
	return html.EscapeString(s)
}

func attr(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

func link(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultLink
	}
	return html.EscapeString(s)
}

// writeBlock emits the section wrapper and dispatches on the content variant.
func (c *Compiler) writeBlock(b *strings.Builder, block blocks.Block, bp blocks.Breakpoint) {
	content := block.ContentOrEmpty()
	if content == nil {
		return
	}

	var bg pbblocks.Background
	if carrier, ok := content.(pbblocks.BackgroundCarrier); ok {
		bg = carrier.BackgroundSettings()
	}

	classes := []string{"pb-block", "pb-" + string(block.Type)}
	if layer := backgroundLayer(bg); layer != "" {
		classes = append(classes, "pb-has-bg-image")
	}
	if extra := strings.TrimSpace(block.Styles.ClassName); extra != "" {
		classes = append(classes, extra)
	}

	b.WriteString("<section class=\"")
	b.WriteString(attr(strings.Join(classes, " ")))
	b.WriteString("\" id=\"block-")
	b.WriteString(attr(block.ID))
	b.WriteString("\" data-block-id=\"")
	b.WriteString(attr(block.ID))
	b.WriteString("\" data-block-type=\"")
	b.WriteString(string(block.Type))
	b.WriteString("\"")
	if style := sectionStyle(block.Styles, bg); style != "" {
		b.WriteString(" style=\"")
		b.WriteString(attr(style))
		b.WriteString("\"")
	}
	b.WriteString(">")
	b.WriteString(backgroundLayer(bg))

	switch typed := content.(type) {
	case pbblocks.HeroContent:
		writeHero(b, typed)
	case pbblocks.TextContent:
		c.writeText(b, typed)
	case pbblocks.ImageContent:
		writeImage(b, typed)
	case pbblocks.CTAContent:
		writeCTA(b, typed)
	case pbblocks.GridContent:
		writeGrid(b, typed, bp)
	case pbblocks.TestimonialsContent:
		writeTestimonials(b, typed)
	case pbblocks.FAQContent:
		writeFAQ(b, typed)
	case pbblocks.StatsContent:
		writeStats(b, typed)
	case pbblocks.VideoContent:
		writeVideo(b, typed)
	case pbblocks.CodeContent:
		writeCode(b, typed)
	case pbblocks.FormContent:
		writeForm(b, typed)
	case pbblocks.SpacerContent:
		writeSpacer(b, typed)
	case pbblocks.DividerContent:
		writeDivider(b, typed)
	case pbblocks.ColumnsContent:
		writeColumns(b, typed, bp)
	}

	b.WriteString("</section>\n")
}

func sectionStyle(styles blocks.Styles, bg pbblocks.Background) string {
	var parts []string
	if v := cssValue(styles.Padding, ""); v != "" {
		parts = append(parts, "padding:"+v+";")
	}
	if v := cssValue(styles.Margin, ""); v != "" {
		parts = append(parts, "margin:"+v+";")
	}
	if v := backgroundStyle(bg); v != "" {
		parts = append(parts, v)
	}
	if custom := strings.TrimSpace(styles.Custom); custom != "" {
		if !strings.HasSuffix(custom, ";") {
			custom += ";"
		}
		parts = append(parts, custom)
	}
	return strings.Join(parts, "")
}

func layoutClasses(align pbblocks.Alignment, position pbblocks.ButtonPosition) string {
	switch align {
	case pbblocks.AlignLeft, pbblocks.AlignCenter, pbblocks.AlignRight:
	default:
		align = pbblocks.AlignCenter
	}
	switch position {
	case pbblocks.ButtonInline, pbblocks.ButtonBelow:
	default:
		position = pbblocks.ButtonBelow
	}
	return "pb-inner pb-align-" + string(align) + " pb-layout-" + string(position)
}

func writeButton(b *strings.Builder, text, href string) {
	text = strings.TrimSpace(text)
	href = strings.TrimSpace(href)
	if text == "" && href == "" {
		return
	}
	if text == "" {
		text = defaultButtonText
	}
	b.WriteString("<div class=\"pb-actions\"><a class=\"pb-button\" href=\"")
	b.WriteString(link(href))
	b.WriteString("\">")
	b.WriteString(esc(text))
	b.WriteString("</a></div>")
}

func writeHero(b *strings.Builder, c pbblocks.HeroContent) {
	b.WriteString("<div class=\"")
	b.WriteString(layoutClasses(c.Alignment, c.ButtonPosition))
	b.WriteString("\"><div class=\"pb-copy\"><h1 class=\"pb-title\">")
	b.WriteString(esc(c.Title))
	b.WriteString("</h1>")
	if c.Subtitle != "" {
		b.WriteString("<p class=\"pb-subtitle\">")
		b.WriteString(esc(c.Subtitle))
		b.WriteString("</p>")
	}
	b.WriteString("</div>")
	writeButton(b, c.CTAText, c.CTALink)
	b.WriteString("</div>")
}

func (c *Compiler) writeText(b *strings.Builder, t pbblocks.TextContent) {
	b.WriteString("<div class=\"pb-inner\">")
	if t.Heading != "" {
		b.WriteString("<h2 class=\"pb-heading\">")
		b.WriteString(esc(t.Heading))
		b.WriteString("</h2>")
	}
	b.WriteString("<div class=\"pb-rich\">")
	b.WriteString(c.textBody(t))
	b.WriteString("</div></div>")
}

func (c *Compiler) textBody(t pbblocks.TextContent) string {
	if t.Format != pbblocks.TextMarkdown {
		return t.Body
	}
	if c.markdown == nil {
		return esc(t.Body)
	}
	out, err := c.markdown.RenderString(t.Body)
	if err != nil {
		return esc(t.Body)
	}
	return strings.TrimSpace(out)
}

func writeImage(b *strings.Builder, img pbblocks.ImageContent) {
	b.WriteString("<figure class=\"pb-inner pb-figure\">")
	if img.Link != "" {
		b.WriteString("<a href=\"")
		b.WriteString(link(img.Link))
		b.WriteString("\">")
	}
	if strings.TrimSpace(img.URL) == "" {
		b.WriteString("<div class=\"pb-placeholder\">No image selected</div>")
	} else {
		b.WriteString("<img src=\"")
		b.WriteString(attr(img.URL))
		b.WriteString("\" alt=\"")
		b.WriteString(attr(img.AltText))
		b.WriteString("\"")
		if img.Width > 0 {
			b.WriteString(" width=\"")
			b.WriteString(strconv.Itoa(img.Width))
			b.WriteString("\"")
		}
		b.WriteString(" loading=\"lazy\">")
	}
	if img.Link != "" {
		b.WriteString("</a>")
	}
	if img.Caption != "" {
		b.WriteString("<figcaption>")
		b.WriteString(esc(img.Caption))
		b.WriteString("</figcaption>")
	}
	b.WriteString("</figure>")
}

func writeCTA(b *strings.Builder, c pbblocks.CTAContent) {
	b.WriteString("<div class=\"")
	b.WriteString(layoutClasses(c.Alignment, c.ButtonPosition))
	b.WriteString("\"><div class=\"pb-copy\"><h2 class=\"pb-title\">")
	b.WriteString(esc(c.Title))
	b.WriteString("</h2>")
	if c.Description != "" {
		b.WriteString("<div class=\"pb-rich\">")
		b.WriteString(c.Description)
		b.WriteString("</div>")
	}
	b.WriteString("</div>")
	writeButton(b, c.ButtonText, c.ButtonLink)
	b.WriteString("</div>")
}

func writeSectionHeader(b *strings.Builder, title, subtitle string) {
	if title == "" && subtitle == "" {
		return
	}
	b.WriteString("<header class=\"pb-section-header\">")
	if title != "" {
		b.WriteString("<h2 class=\"pb-title\">")
		b.WriteString(esc(title))
		b.WriteString("</h2>")
	}
	if subtitle != "" {
		b.WriteString("<p class=\"pb-subtitle\">")
		b.WriteString(esc(subtitle))
		b.WriteString("</p>")
	}
	b.WriteString("</header>")
}

// responsiveColumns collapses a column count for narrower breakpoints.
func responsiveColumns(n int, bp blocks.Breakpoint) int {
	if n < 1 {
		n = 1
	}
	switch bp {
	case pbblocks.BreakpointSmall:
		return 1
	case pbblocks.BreakpointMedium:
		if n > 2 {
			return 2
		}
	}
	return n
}

func gridStyle(columns int, gap string) string {
	style := "grid-template-columns:repeat(" + strconv.Itoa(columns) + ", minmax(0, 1fr));"
	if gap = cssValue(gap, ""); gap != "" {
		style += "gap:" + gap + ";"
	}
	return style
}

func writeGrid(b *strings.Builder, g pbblocks.GridContent, bp blocks.Breakpoint) {
	columns := g.Columns
	if columns <= 0 {
		columns = defaultGridColumns
	}
	b.WriteString("<div class=\"pb-inner\">")
	writeSectionHeader(b, g.Title, g.Subtitle)
	b.WriteString("<div class=\"pb-grid\" style=\"")
	b.WriteString(gridStyle(responsiveColumns(columns, bp), ""))
	b.WriteString("\">")
	for _, item := range g.Items {
		b.WriteString("<article class=\"pb-card\">")
		if item.Image != "" {
			b.WriteString("<img class=\"pb-card-image\" src=\"")
			b.WriteString(attr(item.Image))
			b.WriteString("\" alt=\"")
			b.WriteString(attr(item.Title))
			b.WriteString("\" loading=\"lazy\">")
		}
		if item.Icon != "" {
			b.WriteString("<span class=\"pb-icon\" data-icon=\"")
			b.WriteString(attr(item.Icon))
			b.WriteString("\" aria-hidden=\"true\"></span>")
		}
		b.WriteString("<h3>")
		b.WriteString(esc(item.Title))
		b.WriteString("</h3><p>")
		b.WriteString(esc(item.Description))
		b.WriteString("</p>")
		if item.Link != "" {
			b.WriteString("<a class=\"pb-card-link\" href=\"")
			b.WriteString(link(item.Link))
			b.WriteString("\">")
			b.WriteString(defaultButtonText)
			b.WriteString("</a>")
		}
		b.WriteString("</article>")
	}
	b.WriteString("</div></div>")
}

func writeTestimonials(b *strings.Builder, t pbblocks.TestimonialsContent) {
	b.WriteString("<div class=\"pb-inner\">")
	writeSectionHeader(b, t.Title, "")
	b.WriteString("<div class=\"pb-testimonials\">")
	for _, item := range t.Items {
		b.WriteString("<figure class=\"pb-testimonial\"><blockquote>")
		b.WriteString(esc(item.Quote))
		b.WriteString("</blockquote><figcaption>")
		if item.Avatar != "" {
			b.WriteString("<img class=\"pb-avatar\" src=\"")
			b.WriteString(attr(item.Avatar))
			b.WriteString("\" alt=\"")
			b.WriteString(attr(item.Author))
			b.WriteString("\" loading=\"lazy\">")
		}
		b.WriteString("<span class=\"pb-author\">")
		b.WriteString(esc(item.Author))
		b.WriteString("</span>")
		if role := joinNonEmpty(", ", item.Role, item.Company); role != "" {
			b.WriteString("<span class=\"pb-role\">")
			b.WriteString(esc(role))
			b.WriteString("</span>")
		}
		b.WriteString("</figcaption></figure>")
	}
	b.WriteString("</div></div>")
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}

func writeFAQ(b *strings.Builder, f pbblocks.FAQContent) {
	b.WriteString("<div class=\"pb-inner\">")
	writeSectionHeader(b, f.Title, "")
	b.WriteString("<div class=\"pb-faq\">")
	for _, item := range f.Items {
		b.WriteString("<details class=\"pb-faq-item\"><summary>")
		b.WriteString(esc(item.Question))
		b.WriteString("</summary><div class=\"pb-rich\">")
		b.WriteString(item.Answer)
		b.WriteString("</div></details>")
	}
	b.WriteString("</div></div>")
}

func writeStats(b *strings.Builder, s pbblocks.StatsContent) {
	b.WriteString("<div class=\"pb-inner\">")
	writeSectionHeader(b, s.Title, "")
	b.WriteString("<dl class=\"pb-stats\">")
	for _, item := range s.Items {
		b.WriteString("<div class=\"pb-stat\"><dt class=\"pb-stat-value\">")
		b.WriteString(esc(item.Value))
		b.WriteString("</dt><dd class=\"pb-stat-label\">")
		b.WriteString(esc(item.Label))
		b.WriteString("</dd></div>")
	}
	b.WriteString("</dl></div>")
}

func writeVideo(b *strings.Builder, v pbblocks.VideoContent) {
	b.WriteString("<div class=\"pb-inner\">")
	if v.Title != "" {
		b.WriteString("<h2 class=\"pb-title\">")
		b.WriteString(esc(v.Title))
		b.WriteString("</h2>")
	}
	src, kind := videoSource(v.URL, v.Autoplay)
	switch kind {
	case videoEmbed:
		b.WriteString("<div class=\"pb-video\"><iframe src=\"")
		b.WriteString(attr(src))
		b.WriteString("\" title=\"")
		b.WriteString(attr(v.Title))
		b.WriteString("\" allow=\"autoplay; fullscreen; picture-in-picture\" allowfullscreen></iframe></div>")
	case videoFile:
		b.WriteString("<div class=\"pb-video\"><video src=\"")
		b.WriteString(attr(src))
		b.WriteString("\" controls")
		if v.Autoplay {
			b.WriteString(" autoplay muted playsinline")
		}
		b.WriteString("></video></div>")
	default:
		b.WriteString("<div class=\"pb-placeholder\">No video selected</div>")
	}
	if v.Caption != "" {
		b.WriteString("<p class=\"pb-caption\">")
		b.WriteString(esc(v.Caption))
		b.WriteString("</p>")
	}
	b.WriteString("</div>")
}

func writeCode(b *strings.Builder, c pbblocks.CodeContent) {
	b.WriteString("<div class=\"pb-inner pb-embed\">")
	b.WriteString(c.Code)
	b.WriteString("</div>")
}

func writeForm(b *strings.Builder, f pbblocks.FormContent) {
	b.WriteString("<div class=\"pb-inner\">")
	writeSectionHeader(b, f.Title, f.Description)
	b.WriteString("<form class=\"pb-form\" method=\"post\" action=\"")
	b.WriteString(link(f.Action))
	b.WriteString("\"")
	if f.SuccessMessage != "" {
		b.WriteString(" data-success-message=\"")
		b.WriteString(attr(f.SuccessMessage))
		b.WriteString("\"")
	}
	b.WriteString(">")
	for i, field := range f.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			name = "field_" + strconv.Itoa(i+1)
		}
		kind := strings.ToLower(strings.TrimSpace(field.Kind))
		b.WriteString("<label class=\"pb-field\"><span>")
		b.WriteString(esc(field.Label))
		b.WriteString("</span>")
		if kind == "textarea" {
			b.WriteString("<textarea name=\"")
			b.WriteString(attr(name))
			b.WriteString("\" placeholder=\"")
			b.WriteString(attr(field.Placeholder))
			b.WriteString("\"")
			writeRequired(b, field.Required)
			b.WriteString("></textarea>")
		} else {
			if kind == "" {
				kind = "text"
			}
			b.WriteString("<input type=\"")
			b.WriteString(attr(kind))
			b.WriteString("\" name=\"")
			b.WriteString(attr(name))
			b.WriteString("\" placeholder=\"")
			b.WriteString(attr(field.Placeholder))
			b.WriteString("\"")
			writeRequired(b, field.Required)
			b.WriteString(">")
		}
		b.WriteString("</label>")
	}
	submit := strings.TrimSpace(f.SubmitText)
	if submit == "" {
		submit = defaultSubmitText
	}
	b.WriteString("<button class=\"pb-button\" type=\"submit\">")
	b.WriteString(esc(submit))
	b.WriteString("</button></form></div>")
}

func writeRequired(b *strings.Builder, required bool) {
	if required {
		b.WriteString(" required")
	}
}

func writeSpacer(b *strings.Builder, s pbblocks.SpacerContent) {
	height := s.Height
	if height <= 0 {
		height = defaultSpacerHeight
	}
	b.WriteString("<div class=\"pb-spacer\" style=\"height:")
	b.WriteString(strconv.Itoa(height))
	b.WriteString("px\" aria-hidden=\"true\"></div>")
}

func writeDivider(b *strings.Builder, d pbblocks.DividerContent) {
	style := strings.ToLower(strings.TrimSpace(d.Style))
	switch style {
	case "solid", "dashed", "dotted", "double":
	default:
		style = defaultDividerStyle
	}
	thickness := d.Thickness
	if thickness <= 0 {
		thickness = defaultDividerWeight
	}
	width := d.Width
	if width <= 0 || width > 100 {
		width = defaultDividerWidth
	}
	b.WriteString("<hr class=\"pb-divider\" style=\"border:0;border-top:")
	b.WriteString(strconv.Itoa(thickness))
	b.WriteString("px ")
	b.WriteString(style)
	b.WriteString(" ")
	b.WriteString(attr(cssValue(d.Color, defaultDividerColor)))
	b.WriteString(";width:")
	b.WriteString(strconv.Itoa(width))
	b.WriteString("%\">")
}

func writeColumns(b *strings.Builder, c pbblocks.ColumnsContent, bp blocks.Breakpoint) {
	b.WriteString("<div class=\"pb-inner\"><div class=\"pb-columns\" style=\"")
	b.WriteString(attr(gridStyle(responsiveColumns(len(c.Columns), bp), c.Gap)))
	b.WriteString("\">")
	for _, col := range c.Columns {
		b.WriteString("<div class=\"pb-column\">")
		if col.Title != "" {
			b.WriteString("<h3>")
			b.WriteString(esc(col.Title))
			b.WriteString("</h3>")
		}
		b.WriteString("<div class=\"pb-rich\">")
		b.WriteString(col.Content)
		b.WriteString("</div></div>")
	}
	b.WriteString("</div></div>")
}
