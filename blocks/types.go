package blocks

import (
	"errors"
	"fmt"
	"strings"
)

// Type identifies a block kind. The set is closed; every Type has exactly one
// Content variant.
type Type string

const (
	TypeHero         Type = "hero"
	TypeText         Type = "text"
	TypeImage        Type = "image"
	TypeCTA          Type = "cta"
	TypeGrid         Type = "grid"
	TypeTestimonials Type = "testimonials"
	TypeFAQ          Type = "faq"
	TypeStats        Type = "stats"
	TypeVideo        Type = "video"
	TypeCode         Type = "code"
	TypeForm         Type = "form"
	TypeSpacer       Type = "spacer"
	TypeDivider      Type = "divider"
	TypeColumns      Type = "columns"
)

// ErrUnknownType is returned when a block type is outside the supported set.
var ErrUnknownType = errors.New("blocks: unknown block type")

var allTypes = []Type{
	TypeHero,
	TypeText,
	TypeImage,
	TypeCTA,
	TypeGrid,
	TypeTestimonials,
	TypeFAQ,
	TypeStats,
	TypeVideo,
	TypeCode,
	TypeForm,
	TypeSpacer,
	TypeDivider,
	TypeColumns,
}

// Types returns every supported block type in catalogue order.
func Types() []Type {
	return append([]Type(nil), allTypes...)
}

// Valid reports whether t is a supported block type.
func (t Type) Valid() bool {
	for _, candidate := range allTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseType normalises raw and validates it against the supported set.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
	return t, nil
}

// Breakpoint names a device-width class used for visibility filtering.
type Breakpoint string

const (
	BreakpointSmall  Breakpoint = "small"
	BreakpointMedium Breakpoint = "medium"
	BreakpointLarge  Breakpoint = "large"
)

// ErrUnknownBreakpoint is returned for breakpoints outside small/medium/large.
var ErrUnknownBreakpoint = errors.New("blocks: unknown breakpoint")

// Breakpoints returns the supported breakpoints from narrowest to widest.
func Breakpoints() []Breakpoint {
	return []Breakpoint{BreakpointSmall, BreakpointMedium, BreakpointLarge}
}

// Valid reports whether b is a supported breakpoint.
func (b Breakpoint) Valid() bool {
	switch b {
	case BreakpointSmall, BreakpointMedium, BreakpointLarge:
		return true
	default:
		return false
	}
}

// ParseBreakpoint accepts the canonical names plus the common device aliases.
func ParseBreakpoint(raw string) (Breakpoint, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "small", "mobile", "sm":
		return BreakpointSmall, nil
	case "medium", "tablet", "md":
		return BreakpointMedium, nil
	case "large", "desktop", "lg":
		return BreakpointLarge, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBreakpoint, raw)
	}
}

// Visibility flags a block as hidden per breakpoint. The zero value is visible
// everywhere.
type Visibility struct {
	Small  bool `json:"small,omitempty"`
	Medium bool `json:"medium,omitempty"`
	Large  bool `json:"large,omitempty"`
}

// Hidden reports whether the block is hidden at bp.
func (v Visibility) Hidden(bp Breakpoint) bool {
	switch bp {
	case BreakpointSmall:
		return v.Small
	case BreakpointMedium:
		return v.Medium
	case BreakpointLarge:
		return v.Large
	default:
		return false
	}
}

// With returns a copy of v with the flag for bp set to hidden.
func (v Visibility) With(bp Breakpoint, hidden bool) Visibility {
	switch bp {
	case BreakpointSmall:
		v.Small = hidden
	case BreakpointMedium:
		v.Medium = hidden
	case BreakpointLarge:
		v.Large = hidden
	}
	return v
}

// AllVisible reports whether no breakpoint hides the block.
func (v Visibility) AllVisible() bool {
	return !v.Small && !v.Medium && !v.Large
}

// Styles carries type independent presentation overrides.
type Styles struct {
	Padding   string `json:"padding,omitempty"`
	Margin    string `json:"margin,omitempty"`
	ClassName string `json:"className,omitempty"`
	// Custom holds raw CSS declarations appended to the block's style attribute.
	Custom string `json:"custom,omitempty"`
}

// IsZero reports whether no override is set.
func (s Styles) IsZero() bool {
	return s == Styles{}
}

// Block is one typed, orderable unit of page content.
type Block struct {
	ID         string
	Type       Type
	Content    Content
	Styles     Styles
	Visibility Visibility
}

// New builds a block of the content's type. Callers supply the id.
func New(id string, content Content) Block {
	return Block{
		ID:      id,
		Type:    content.BlockType(),
		Content: content,
	}
}

// ContentOrEmpty returns the block content, substituting the zero variant of
// the block type when content is missing or of the wrong variant.
func (b Block) ContentOrEmpty() Content {
	if b.Content != nil && b.Content.BlockType() == b.Type {
		return b.Content
	}
	empty, err := EmptyContent(b.Type)
	if err != nil {
		return nil
	}
	return empty
}

// Clone returns a deep copy of the block. List valued content is copied so the
// result shares no references with b.
func (b Block) Clone() Block {
	out := b
	if b.Content != nil {
		out.Content = b.Content.cloneContent()
	}
	return out
}

// CloneList deep copies a block list. A nil input yields an empty, non-nil list.
func CloneList(list []Block) []Block {
	out := make([]Block, len(list))
	for i, block := range list {
		out[i] = block.Clone()
	}
	return out
}

// IDs returns the ids of list in order.
func IDs(list []Block) []string {
	out := make([]string, len(list))
	for i, block := range list {
		out[i] = block.ID
	}
	return out
}

// IndexOf returns the position of id within list or -1.
func IndexOf(list []Block, id string) int {
	for i, block := range list {
		if block.ID == id {
			return i
		}
	}
	return -1
}
