package blocks

// Content is the type specific payload of a block. The union is sealed: only
// the variants declared in this package implement it.
type Content interface {
	BlockType() Type
	cloneContent() Content
}

// Alignment is a layout hint honoured by hero and call-to-action blocks.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// ButtonPosition places the call-to-action button next to or below the copy.
type ButtonPosition string

const (
	ButtonInline ButtonPosition = "inline"
	ButtonBelow  ButtonPosition = "below"
)

// BackgroundType selects between an image and a colour background.
type BackgroundType string

const (
	BackgroundNone  BackgroundType = ""
	BackgroundColor BackgroundType = "color"
	BackgroundImage BackgroundType = "image"
)

// ColorMode selects a flat fill or a two stop linear gradient.
type ColorMode string

const (
	ColorSolid    ColorMode = "solid"
	ColorGradient ColorMode = "gradient"
)

// Background is embedded in section-like content variants; its fields are
// flattened into the owning content's JSON object.
type Background struct {
	BackgroundType          BackgroundType `json:"backgroundType,omitempty"`
	BackgroundImage         string         `json:"backgroundImage,omitempty"`
	BackgroundColorMode     ColorMode      `json:"backgroundColorMode,omitempty"`
	BackgroundColor         string         `json:"backgroundColor,omitempty"`
	BackgroundGradientColor string         `json:"backgroundGradientColor,omitempty"`
	BackgroundGradientAngle *int           `json:"backgroundGradientAngle,omitempty"`
	BackgroundGradientStop  *int           `json:"backgroundGradientStop,omitempty"`
}

// BackgroundSettings exposes the embedded background of a content variant.
func (b Background) BackgroundSettings() Background {
	return b
}

// BackgroundCarrier is implemented by every content variant embedding Background.
type BackgroundCarrier interface {
	BackgroundSettings() Background
}

func (b Background) clone() Background {
	out := b
	if b.BackgroundGradientAngle != nil {
		v := *b.BackgroundGradientAngle
		out.BackgroundGradientAngle = &v
	}
	if b.BackgroundGradientStop != nil {
		v := *b.BackgroundGradientStop
		out.BackgroundGradientStop = &v
	}
	return out
}

// HeroContent is the page masthead.
type HeroContent struct {
	Title          string         `json:"title,omitempty"`
	Subtitle       string         `json:"subtitle,omitempty"`
	CTAText        string         `json:"ctaText,omitempty"`
	CTALink        string         `json:"ctaLink,omitempty"`
	Alignment      Alignment      `json:"alignment,omitempty"`
	ButtonPosition ButtonPosition `json:"buttonPosition,omitempty"`
	Background
}

func (HeroContent) BlockType() Type { return TypeHero }

func (c HeroContent) cloneContent() Content {
	c.Background = c.Background.clone()
	return c
}

// TextFormat tells the compiler how to treat a text block body.
type TextFormat string

const (
	TextHTML     TextFormat = "html"
	TextMarkdown TextFormat = "markdown"
)

// TextContent holds rich text produced by the structured editor. Body is
// trusted markup and is emitted verbatim.
type TextContent struct {
	Heading string     `json:"heading,omitempty"`
	Body    string     `json:"content,omitempty"`
	Format  TextFormat `json:"format,omitempty"`
	Background
}

func (TextContent) BlockType() Type { return TypeText }

func (c TextContent) cloneContent() Content {
	c.Background = c.Background.clone()
	return c
}

// ImageContent is a single figure.
type ImageContent struct {
	URL     string `json:"url,omitempty"`
	AltText string `json:"altText,omitempty"`
	Caption string `json:"caption,omitempty"`
	Link    string `json:"link,omitempty"`
	Width   int    `json:"width,omitempty"`
}

func (ImageContent) BlockType() Type { return TypeImage }

func (c ImageContent) cloneContent() Content { return c }

// CTAContent is a call-to-action band. Description is trusted markup.
type CTAContent struct {
	Title          string         `json:"title,omitempty"`
	Description    string         `json:"description,omitempty"`
	ButtonText     string         `json:"buttonText,omitempty"`
	ButtonLink     string         `json:"buttonLink,omitempty"`
	Alignment      Alignment      `json:"alignment,omitempty"`
	ButtonPosition ButtonPosition `json:"buttonPosition,omitempty"`
	Background
}

func (CTAContent) BlockType() Type { return TypeCTA }

func (c CTAContent) cloneContent() Content {
	c.Background = c.Background.clone()
	return c
}

// GridItem is one card of a grid block.
type GridItem struct {
	Icon        string `json:"icon,omitempty"`
	Image       string `json:"image,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// GridContent renders a grid of cards (services, features, case studies).
type GridContent struct {
	Title    string     `json:"title,omitempty"`
	Subtitle string     `json:"subtitle,omitempty"`
	Columns  int        `json:"columns,omitempty"`
	Items    []GridItem `json:"items,omitempty"`
	Background
}

func (GridContent) BlockType() Type { return TypeGrid }

func (c GridContent) cloneContent() Content {
	c.Items = cloneSlice(c.Items)
	c.Background = c.Background.clone()
	return c
}

// Testimonial is one client quote.
type Testimonial struct {
	Quote   string `json:"quote,omitempty"`
	Author  string `json:"author,omitempty"`
	Role    string `json:"role,omitempty"`
	Company string `json:"company,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
}

// TestimonialsContent lists client quotes.
type TestimonialsContent struct {
	Title string        `json:"title,omitempty"`
	Items []Testimonial `json:"items,omitempty"`
	Background
}

func (TestimonialsContent) BlockType() Type { return TypeTestimonials }

func (c TestimonialsContent) cloneContent() Content {
	c.Items = cloneSlice(c.Items)
	c.Background = c.Background.clone()
	return c
}

// FAQItem pairs a plain-text question with a trusted markup answer.
type FAQItem struct {
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
}

// FAQContent lists questions and answers.
type FAQContent struct {
	Title string    `json:"title,omitempty"`
	Items []FAQItem `json:"items,omitempty"`
	Background
}

func (FAQContent) BlockType() Type { return TypeFAQ }

func (c FAQContent) cloneContent() Content {
	c.Items = cloneSlice(c.Items)
	c.Background = c.Background.clone()
	return c
}

// Stat is one figure of a stats band.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// StatsContent lists headline numbers.
type StatsContent struct {
	Title string `json:"title,omitempty"`
	Items []Stat `json:"items,omitempty"`
	Background
}

func (StatsContent) BlockType() Type { return TypeStats }

func (c StatsContent) cloneContent() Content {
	c.Items = cloneSlice(c.Items)
	c.Background = c.Background.clone()
	return c
}

// VideoContent embeds a hosted video.
type VideoContent struct {
	URL      string `json:"url,omitempty"`
	Title    string `json:"title,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Autoplay bool   `json:"autoplay,omitempty"`
}

func (VideoContent) BlockType() Type { return TypeVideo }

func (c VideoContent) cloneContent() Content { return c }

// CodeContent is raw author supplied markup emitted verbatim.
type CodeContent struct {
	Code string `json:"code,omitempty"`
}

func (CodeContent) BlockType() Type { return TypeCode }

func (c CodeContent) cloneContent() Content { return c }

// FormField describes one input of a lead-capture form.
type FormField struct {
	Name        string `json:"name,omitempty"`
	Label       string `json:"label,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// FormContent is a lead-capture form.
type FormContent struct {
	Title          string      `json:"title,omitempty"`
	Description    string      `json:"description,omitempty"`
	Action         string      `json:"action,omitempty"`
	SubmitText     string      `json:"submitText,omitempty"`
	SuccessMessage string      `json:"successMessage,omitempty"`
	Fields         []FormField `json:"fields,omitempty"`
	Background
}

func (FormContent) BlockType() Type { return TypeForm }

func (c FormContent) cloneContent() Content {
	c.Fields = cloneSlice(c.Fields)
	c.Background = c.Background.clone()
	return c
}

// SpacerContent inserts vertical whitespace.
type SpacerContent struct {
	Height int `json:"height,omitempty"`
}

func (SpacerContent) BlockType() Type { return TypeSpacer }

func (c SpacerContent) cloneContent() Content { return c }

// DividerContent draws a horizontal rule.
type DividerContent struct {
	Style     string `json:"style,omitempty"`
	Color     string `json:"color,omitempty"`
	Thickness int    `json:"thickness,omitempty"`
	Width     int    `json:"width,omitempty"`
}

func (DividerContent) BlockType() Type { return TypeDivider }

func (c DividerContent) cloneContent() Content { return c }

// Column is one column of a multi-column block. Content is trusted markup.
type Column struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

// ColumnsContent lays out side by side columns.
type ColumnsContent struct {
	Columns []Column `json:"columns,omitempty"`
	Gap     string   `json:"gap,omitempty"`
	Background
}

func (ColumnsContent) BlockType() Type { return TypeColumns }

func (c ColumnsContent) cloneContent() Content {
	c.Columns = cloneSlice(c.Columns)
	c.Background = c.Background.clone()
	return c
}

// EmptyContent returns the zero content variant for t.
func EmptyContent(t Type) (Content, error) {
	switch t {
	case TypeHero:
		return HeroContent{}, nil
	case TypeText:
		return TextContent{}, nil
	case TypeImage:
		return ImageContent{}, nil
	case TypeCTA:
		return CTAContent{}, nil
	case TypeGrid:
		return GridContent{}, nil
	case TypeTestimonials:
		return TestimonialsContent{}, nil
	case TypeFAQ:
		return FAQContent{}, nil
	case TypeStats:
		return StatsContent{}, nil
	case TypeVideo:
		return VideoContent{}, nil
	case TypeCode:
		return CodeContent{}, nil
	case TypeForm:
		return FormContent{}, nil
	case TypeSpacer:
		return SpacerContent{}, nil
	case TypeDivider:
		return DividerContent{}, nil
	case TypeColumns:
		return ColumnsContent{}, nil
	default:
		return nil, ErrUnknownType
	}
}

// CloneContent deep copies c. A nil input yields nil.
func CloneContent(c Content) Content {
	if c == nil {
		return nil
	}
	return c.cloneContent()
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// Int returns a pointer to v, convenient for optional gradient parameters.
func Int(v int) *int {
	return &v
}
