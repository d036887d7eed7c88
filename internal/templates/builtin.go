package templates

import pbblocks "github.com/goliatone/go-pagebuilder/blocks"

// BuiltinTemplates returns the stock agency templates.
func BuiltinTemplates() []Template {
	return []Template{
		{
			ID:          "landing-hero",
			Name:        "Landing hero",
			Description: "Headline, short pitch and a primary call to action",
			Category:    "landing",
			Blocks: []Seed{
				SeedOf(pbblocks.HeroContent{
					Title:          "Marketing that moves the numbers",
					Subtitle:       "We plan, build and run campaigns for growing brands.",
					CTAText:        "Start a project",
					CTALink:        "#contact",
					Alignment:      pbblocks.AlignLeft,
					ButtonPosition: pbblocks.ButtonBelow,
					Background: pbblocks.Background{
						BackgroundType:          pbblocks.BackgroundColor,
						BackgroundColorMode:     pbblocks.ColorGradient,
						BackgroundColor:         "#0f172a",
						BackgroundGradientColor: "#1e3a8a",
						BackgroundGradientAngle: pbblocks.Int(135),
						BackgroundGradientStop:  pbblocks.Int(60),
					},
				}),
				SeedOf(pbblocks.SpacerContent{Height: 32}),
			},
		},
		{
			ID:          "services-grid",
			Name:        "Services grid",
			Description: "Three column overview of agency services",
			Category:    "services",
			Blocks: []Seed{
				SeedOf(pbblocks.GridContent{
					Title:    "Services",
					Subtitle: "Everything you need to launch and grow.",
					Columns:  3,
					Items: []pbblocks.GridItem{
						{Icon: "search", Title: "SEO", Description: "Technical audits and content plans.", Link: "/services/seo"},
						{Icon: "megaphone", Title: "Paid media", Description: "Search and social campaigns.", Link: "/services/ads"},
						{Icon: "layout", Title: "Web design", Description: "Fast, accessible marketing sites.", Link: "/services/web"},
					},
				}),
			},
		},
		{
			ID:          "social-proof",
			Name:        "Social proof",
			Description: "Client testimonials followed by a call to action",
			Category:    "marketing",
			Blocks: []Seed{
				SeedOf(pbblocks.TestimonialsContent{
					Title: "Trusted by teams like yours",
					Items: []pbblocks.Testimonial{
						{Quote: "Our pipeline tripled within six months.", Author: "Jordan Lee", Role: "Head of Growth", Company: "Brightline"},
						{Quote: "Clear reporting and real results.", Author: "Sam Patel", Role: "Founder", Company: "Oakwork"},
					},
				}),
				SeedOf(pbblocks.CTAContent{
					Title:          "Join them",
					Description:    "<p>Get a tailored growth plan in one week.</p>",
					ButtonText:     "Talk to us",
					ButtonLink:     "#contact",
					Alignment:      pbblocks.AlignCenter,
					ButtonPosition: pbblocks.ButtonInline,
				}),
			},
		},
		{
			ID:          "faq",
			Name:        "FAQ",
			Description: "Common questions about pricing and process",
			Category:    "support",
			Blocks: []Seed{
				SeedOf(pbblocks.FAQContent{
					Title: "Questions, answered",
					Items: []pbblocks.FAQItem{
						{Question: "What does an engagement cost?", Answer: "<p>Retainers start at a fixed monthly fee.</p>"},
						{Question: "Do you work with startups?", Answer: "<p>Yes, from seed stage onwards.</p>"},
					},
				}),
			},
		},
		{
			ID:          "stats-band",
			Name:        "Stats band",
			Description: "Headline results on a coloured band",
			Category:    "marketing",
			Blocks: []Seed{
				SeedOf(pbblocks.StatsContent{
					Title: "Results that compound",
					Items: []pbblocks.Stat{
						{Value: "100+", Label: "Clients"},
						{Value: "3x", Label: "Average ROAS"},
						{Value: "48h", Label: "Launch time"},
					},
					Background: pbblocks.Background{
						BackgroundType:      pbblocks.BackgroundColor,
						BackgroundColorMode: pbblocks.ColorSolid,
						BackgroundColor:     "#f1f5f9",
					},
				}),
			},
		},
		{
			ID:          "contact",
			Name:        "Contact section",
			Description: "Lead capture form with a short intro",
			Category:    "conversion",
			Blocks: []Seed{
				SeedOf(pbblocks.TextContent{
					Heading: "Let's work together",
					Body:    "<p>Tell us about your goals and we will reply within a business day.</p>",
					Format:  pbblocks.TextHTML,
				}),
				SeedOf(pbblocks.FormContent{
					Title:          "Project enquiry",
					Action:         "/api/leads",
					SubmitText:     "Send enquiry",
					SuccessMessage: "Thanks, we will be in touch.",
					Fields: []pbblocks.FormField{
						{Name: "name", Label: "Name", Kind: "text", Required: true},
						{Name: "email", Label: "Email", Kind: "email", Required: true},
						{Name: "budget", Label: "Budget", Kind: "text"},
						{Name: "message", Label: "Message", Kind: "textarea"},
					},
				}),
			},
		},
		{
			ID:          "two-column-story",
			Name:        "Two column story",
			Description: "Image led narrative with side by side copy",
			Category:    "content",
			Blocks: []Seed{
				SeedOf(pbblocks.ImageContent{AltText: "Team at work", Caption: "Our studio"}),
				SeedOf(pbblocks.ColumnsContent{
					Gap: "3rem",
					Columns: []pbblocks.Column{
						{Title: "Where we started", Content: "<p>A two person studio with one client.</p>"},
						{Title: "Where we are", Content: "<p>A team of specialists across three cities.</p>"},
					},
				}),
			},
		},
	}
}
