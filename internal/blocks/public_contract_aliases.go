package blocks

import pbblocks "github.com/goliatone/go-pagebuilder/blocks"

type (
	Block      = pbblocks.Block
	Type       = pbblocks.Type
	Content    = pbblocks.Content
	Breakpoint = pbblocks.Breakpoint
	Visibility = pbblocks.Visibility
	Styles     = pbblocks.Styles
)

var (
	ErrUnknownType       = pbblocks.ErrUnknownType
	ErrUnknownBreakpoint = pbblocks.ErrUnknownBreakpoint
	ErrContentMismatch   = pbblocks.ErrContentMismatch
)

func emptyContent(t Type) (Content, error) { return pbblocks.EmptyContent(t) }

func cloneContent(c Content) Content { return pbblocks.CloneContent(c) }
