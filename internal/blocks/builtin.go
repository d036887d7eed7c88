package blocks

import pbblocks "github.com/goliatone/go-pagebuilder/blocks"

const (
	CategoryLayout    = "layout"
	CategoryContent   = "content"
	CategoryMedia     = "media"
	CategoryMarketing = "marketing"
	CategoryAdvanced  = "advanced"
)

var (
	alignmentOptions = []string{
		string(pbblocks.AlignLeft),
		string(pbblocks.AlignCenter),
		string(pbblocks.AlignRight),
	}
	buttonPositionOptions = []string{
		string(pbblocks.ButtonInline),
		string(pbblocks.ButtonBelow),
	}
)

func intPtr(v int) *int { return &v }

func backgroundFields() []Field {
	return []Field{
		{Name: "backgroundType", Label: "Background", Kind: FieldSelect, Options: []string{
			string(pbblocks.BackgroundColor),
			string(pbblocks.BackgroundImage),
		}},
		{Name: "backgroundImage", Label: "Background image", Kind: FieldMedia},
		{Name: "backgroundColorMode", Label: "Colour mode", Kind: FieldSelect, Options: []string{
			string(pbblocks.ColorSolid),
			string(pbblocks.ColorGradient),
		}},
		{Name: "backgroundColor", Label: "Background colour", Kind: FieldColor},
		{Name: "backgroundGradientColor", Label: "Gradient colour", Kind: FieldColor},
		{Name: "backgroundGradientAngle", Label: "Gradient angle", Kind: FieldNumber, Min: intPtr(0), Max: intPtr(360)},
		{Name: "backgroundGradientStop", Label: "Gradient stop", Kind: FieldNumber, Min: intPtr(0), Max: intPtr(100)},
	}
}

func withBackground(fields ...Field) []Field {
	return append(fields, backgroundFields()...)
}

// BuiltinDefinitions returns the definitions of every supported block type in
// palette order.
func BuiltinDefinitions() []Definition {
	return []Definition{
		{
			Type:        pbblocks.TypeHero,
			Label:       "Hero",
			Description: "Large headline section with a call to action",
			Icon:        "layout-hero",
			Category:    CategoryLayout,
			Fields: withBackground(
				Field{Name: "title", Label: "Title", Kind: FieldText},
				Field{Name: "subtitle", Label: "Subtitle", Kind: FieldText},
				Field{Name: "ctaText", Label: "Button text", Kind: FieldText},
				Field{Name: "ctaLink", Label: "Button link", Kind: FieldURL},
				Field{Name: "alignment", Label: "Alignment", Kind: FieldSelect, Options: alignmentOptions},
				Field{Name: "buttonPosition", Label: "Button position", Kind: FieldSelect, Options: buttonPositionOptions},
			),
			Defaults: pbblocks.HeroContent{
				Title:          "Grow your brand with a team that ships",
				Subtitle:       "Strategy, design and performance marketing for ambitious companies.",
				CTAText:        "Get a proposal",
				CTALink:        "#contact",
				Alignment:      pbblocks.AlignCenter,
				ButtonPosition: pbblocks.ButtonBelow,
			},
		},
		{
			Type:        pbblocks.TypeText,
			Label:       "Text",
			Description: "Rich text section",
			Icon:        "text",
			Category:    CategoryContent,
			Fields: withBackground(
				Field{Name: "heading", Label: "Heading", Kind: FieldText},
				Field{Name: "content", Label: "Body", Kind: FieldRichText},
				Field{Name: "format", Label: "Format", Kind: FieldSelect, Options: []string{
					string(pbblocks.TextHTML),
					string(pbblocks.TextMarkdown),
				}},
			),
			Defaults: pbblocks.TextContent{
				Body:   "<p>Tell visitors what makes your agency different.</p>",
				Format: pbblocks.TextHTML,
			},
		},
		{
			Type:        pbblocks.TypeImage,
			Label:       "Image",
			Description: "Single image with optional caption",
			Icon:        "image",
			Category:    CategoryMedia,
			Fields: []Field{
				{Name: "url", Label: "Image", Kind: FieldMedia},
				{Name: "altText", Label: "Alternative text", Kind: FieldText},
				{Name: "caption", Label: "Caption", Kind: FieldText},
				{Name: "link", Label: "Link", Kind: FieldURL},
				{Name: "width", Label: "Width", Kind: FieldNumber, Min: intPtr(0)},
			},
			Defaults: pbblocks.ImageContent{},
		},
		{
			Type:        pbblocks.TypeCTA,
			Label:       "Call to action",
			Description: "Conversion band with a single button",
			Icon:        "megaphone",
			Category:    CategoryMarketing,
			Fields: withBackground(
				Field{Name: "title", Label: "Title", Kind: FieldText},
				Field{Name: "description", Label: "Description", Kind: FieldRichText},
				Field{Name: "buttonText", Label: "Button text", Kind: FieldText},
				Field{Name: "buttonLink", Label: "Button link", Kind: FieldURL},
				Field{Name: "alignment", Label: "Alignment", Kind: FieldSelect, Options: alignmentOptions},
				Field{Name: "buttonPosition", Label: "Button position", Kind: FieldSelect, Options: buttonPositionOptions},
			),
			Defaults: pbblocks.CTAContent{
				Title:          "Ready to grow?",
				Description:    "<p>Book a free discovery call with our strategists.</p>",
				ButtonText:     "Book a call",
				ButtonLink:     "#contact",
				Alignment:      pbblocks.AlignCenter,
				ButtonPosition: pbblocks.ButtonInline,
			},
		},
		{
			Type:        pbblocks.TypeGrid,
			Label:       "Grid",
			Description: "Cards for services, features or case studies",
			Icon:        "grid",
			Category:    CategoryLayout,
			Fields: withBackground(
				Field{Name: "title", Label: "Title", Kind: FieldText},
				Field{Name: "subtitle", Label: "Subtitle", Kind: FieldText},
				Field{Name: "columns", Label: "Columns", Kind: FieldNumber, Min: intPtr(1), Max: intPtr(6)},
				Field{Name: "items", Label: "Items", Kind: FieldList, Item: []Field{
					{Name: "icon", Label: "Icon", Kind: FieldText},
					{Name: "image", Label: "Image", Kind: FieldMedia},
					{Name: "title", Label: "Title", Kind: FieldText},
					{Name: "description", Label: "Description", Kind: FieldText},
					{Name: "link", Label: "Link", Kind: FieldURL},
				}},
			),
			Defaults: pbblocks.GridContent{
				Title:   "What we do",
				Columns: 3,
				Items: []pbblocks.GridItem{
					{Icon: "target", Title: "Strategy", Description: "Positioning and go-to-market plans."},
					{Icon: "pen", Title: "Design", Description: "Brand identities and websites."},
					{Icon: "chart", Title: "Growth", Description: "Paid media and conversion work."},
				},
			},
		},
		{
			Type:        pbblocks.TypeTestimonials,
			Label:       "Testimonials",
			Description: "Client quotes",
			Icon:        "quote",
			Category:    CategoryMarketing,
			Fields: withBackground(
				Field{Name: "title", Label: "Title", Kind: FieldText},
				Field{Name: "items", Label: "Quotes", Kind: FieldList, Item: []Field{
					{Name: "quote", Label: "Quote", Kind: FieldText},
					{Name: "author", Label: "Author", Kind: FieldText},
					{Name: "role", Label: "Role", Kind: FieldText},
					{Name: "company", Label: "Company", Kind: FieldText},
					{Name: "avatar", Label: "Avatar", Kind: FieldMedia},
				}},
			),
			Defaults: pbblocks.TestimonialsContent{
				Title: "What our clients say",
				Items: []pbblocks.Testimonial{
					{Quote: "They doubled our qualified leads in a quarter.", Author: "Alex Morgan", Role: "CMO", Company: "Northwind"},
				},
			},
		},
		{
			Type:        pbblocks.TypeFAQ,
			Label:       "FAQ",
			Description: "Questions and answers",
			Icon:        "help",
			Category:    CategoryContent,
			Fields: withBackground(
				Field{Name: "title", Label: "Title", Kind: FieldText},
				Field{Name: "items", Label: "Questions", Kind: FieldList, Item: []Field{
					{Name: "question", Label: "Question", Kind: FieldText},
					{Name: "answer", Label: "Answer", Kind: FieldRichText},
				}},
			),
			Defaults: pbblocks.FAQContent{
				Title: "Frequently asked questions",
				Items: []pbblocks.FAQItem{
					{Question: "How long does a project take?", Answer: "<p>Most engagements run six to twelve weeks.</p>"},
				},
			},
		},
		{
			Type:        pbblocks.TypeStats,
			Label:       "Stats",
			Description: "Headline numbers",
			Icon:        "hash",
			Category:    CategoryMarketing,
			Fields: withBackground(
				Field{Name: "title", Label: "Title", Kind: FieldText},
				Field{Name: "items", Label: "Figures", Kind: FieldList, Item: []Field{
					{Name: "value", Label: "Value", Kind: FieldText},
					{Name: "label", Label: "Label", Kind: FieldText},
				}},
			),
			Defaults: pbblocks.StatsContent{
				Items: []pbblocks.Stat{
					{Value: "100+", Label: "Clients"},
					{Value: "12", Label: "Years"},
					{Value: "4.9", Label: "Average rating"},
				},
			},
		},
		{
			Type:        pbblocks.TypeVideo,
			Label:       "Video",
			Description: "Embedded YouTube or Vimeo video",
			Icon:        "video",
			Category:    CategoryMedia,
			Fields: []Field{
				{Name: "url", Label: "Video URL", Kind: FieldURL},
				{Name: "title", Label: "Title", Kind: FieldText},
				{Name: "caption", Label: "Caption", Kind: FieldText},
				{Name: "autoplay", Label: "Autoplay", Kind: FieldBool},
			},
			Defaults: pbblocks.VideoContent{},
		},
		{
			Type:        pbblocks.TypeCode,
			Label:       "Custom code",
			Description: "Raw markup inserted as is",
			Icon:        "code",
			Category:    CategoryAdvanced,
			Fields: []Field{
				{Name: "code", Label: "Markup", Kind: FieldRichText},
			},
			Defaults: pbblocks.CodeContent{},
		},
		{
			Type:        pbblocks.TypeForm,
			Label:       "Form",
			Description: "Lead capture form",
			Icon:        "form",
			Category:    CategoryMarketing,
			Fields: withBackground(
				Field{Name: "title", Label: "Title", Kind: FieldText},
				Field{Name: "description", Label: "Description", Kind: FieldText},
				Field{Name: "action", Label: "Submit URL", Kind: FieldURL},
				Field{Name: "submitText", Label: "Button text", Kind: FieldText},
				Field{Name: "successMessage", Label: "Success message", Kind: FieldText},
				Field{Name: "fields", Label: "Fields", Kind: FieldList, Item: []Field{
					{Name: "name", Label: "Name", Kind: FieldText},
					{Name: "label", Label: "Label", Kind: FieldText},
					{Name: "kind", Label: "Input type", Kind: FieldSelect, Options: []string{"text", "email", "tel", "textarea"}},
					{Name: "placeholder", Label: "Placeholder", Kind: FieldText},
					{Name: "required", Label: "Required", Kind: FieldBool},
				}},
			),
			Defaults: pbblocks.FormContent{
				Title:          "Start a project",
				SubmitText:     "Send",
				SuccessMessage: "Thanks, we will be in touch shortly.",
				Fields: []pbblocks.FormField{
					{Name: "name", Label: "Name", Kind: "text", Required: true},
					{Name: "email", Label: "Email", Kind: "email", Required: true},
					{Name: "message", Label: "Message", Kind: "textarea"},
				},
			},
		},
		{
			Type:        pbblocks.TypeSpacer,
			Label:       "Spacer",
			Description: "Vertical whitespace",
			Icon:        "spacer",
			Category:    CategoryLayout,
			Fields: []Field{
				{Name: "height", Label: "Height", Kind: FieldNumber, Min: intPtr(0), Max: intPtr(800)},
			},
			Defaults: pbblocks.SpacerContent{Height: 48},
		},
		{
			Type:        pbblocks.TypeDivider,
			Label:       "Divider",
			Description: "Horizontal rule",
			Icon:        "minus",
			Category:    CategoryLayout,
			Fields: []Field{
				{Name: "style", Label: "Style", Kind: FieldSelect, Options: []string{"solid", "dashed", "dotted"}},
				{Name: "color", Label: "Colour", Kind: FieldColor},
				{Name: "thickness", Label: "Thickness", Kind: FieldNumber, Min: intPtr(1), Max: intPtr(20)},
				{Name: "width", Label: "Width", Kind: FieldNumber, Min: intPtr(1), Max: intPtr(100)},
			},
			Defaults: pbblocks.DividerContent{Style: "solid", Thickness: 1, Width: 100},
		},
		{
			Type:        pbblocks.TypeColumns,
			Label:       "Columns",
			Description: "Side by side content columns",
			Icon:        "columns",
			Category:    CategoryLayout,
			Fields: withBackground(
				Field{Name: "columns", Label: "Columns", Kind: FieldList, Item: []Field{
					{Name: "title", Label: "Title", Kind: FieldText},
					{Name: "content", Label: "Content", Kind: FieldRichText},
				}},
				Field{Name: "gap", Label: "Gap", Kind: FieldText},
			),
			Defaults: pbblocks.ColumnsContent{
				Gap: "2rem",
				Columns: []pbblocks.Column{
					{Title: "Our approach", Content: "<p>Research first, then design.</p>"},
					{Title: "Our promise", Content: "<p>Clear reporting every week.</p>"},
				},
			},
		},
	}
}
