package document

import (
	"fmt"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/identity"
)

// IDGenerator returns a new opaque block id.
type IDGenerator func() string

// Option configures a Document.
type Option func(*Document)

// WithRegistry supplies default content and patch validation.
func WithRegistry(registry *blocks.Registry) Option {
	return func(d *Document) {
		d.registry = registry
	}
}

// WithIDGenerator overrides the block id source.
func WithIDGenerator(gen IDGenerator) Option {
	return func(d *Document) {
		if gen != nil {
			d.newID = gen
		}
	}
}

// WithAddAfterSelection inserts added blocks after the selected block instead
// of appending them.
func WithAddAfterSelection(enabled bool) Option {
	return func(d *Document) {
		d.addAfterSelection = enabled
	}
}

// Document is the ordered block list of one page plus the selected block id.
//
// Every mutation swaps in a new list and returns a deep copy of it, so callers
// never hold a reference the document later changes. A Document is meant for a
// single writer.
type Document struct {
	blocks            []blocks.Block
	selected          string
	issued            map[string]struct{}
	registry          *blocks.Registry
	newID             IDGenerator
	addAfterSelection bool
}

// New seeds a document with initial blocks.
func New(initial []blocks.Block, opts ...Option) *Document {
	d := &Document{
		issued: make(map[string]struct{}),
		newID:  identity.NewBlockID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	d.blocks = pbblocks.CloneList(initial)
	for _, block := range d.blocks {
		d.issue(block.ID)
	}
	return d
}

// Blocks returns a copy of the current block list.
func (d *Document) Blocks() []blocks.Block {
	return pbblocks.CloneList(d.blocks)
}

// Len returns the number of blocks.
func (d *Document) Len() int {
	return len(d.blocks)
}

// Block returns a copy of the block with id.
func (d *Document) Block(id string) (blocks.Block, bool) {
	idx := pbblocks.IndexOf(d.blocks, id)
	if idx < 0 {
		return blocks.Block{}, false
	}
	return d.blocks[idx].Clone(), true
}

// Selected returns the selected block id, empty when nothing is selected.
func (d *Document) Selected() string {
	return d.selected
}

// Select marks id as selected. Unknown ids clear the selection and report false.
func (d *Document) Select(id string) bool {
	if id == "" || pbblocks.IndexOf(d.blocks, id) < 0 {
		d.selected = ""
		return false
	}
	d.selected = id
	return true
}

// NewID returns an id that was never issued by this document.
func (d *Document) NewID() string {
	for {
		id := d.newID()
		if id == "" {
			continue
		}
		if _, used := d.issued[id]; used {
			continue
		}
		d.issue(id)
		return id
	}
}

// Add creates a block of type t with default content. It is appended, or
// placed after the selected block when insertion after selection is enabled.
func (d *Document) Add(t blocks.Type) ([]blocks.Block, blocks.Block, error) {
	at := len(d.blocks)
	if d.addAfterSelection && d.selected != "" {
		if idx := pbblocks.IndexOf(d.blocks, d.selected); idx >= 0 {
			at = idx + 1
		}
	}
	return d.AddAt(t, at)
}

// AddAt creates a block of type t at index, clamped into range.
func (d *Document) AddAt(t blocks.Type, index int) ([]blocks.Block, blocks.Block, error) {
	content, err := d.defaultContent(t)
	if err != nil {
		return nil, blocks.Block{}, err
	}
	block := pbblocks.New(d.NewID(), content)
	d.blocks = insertAt(d.blocks, clamp(index, len(d.blocks)), block)
	return d.Blocks(), block.Clone(), nil
}

// Update merges patch into the content of block id. Unknown ids are not an
// error: found is false and the list is unchanged.
func (d *Document) Update(id string, patch map[string]any) ([]blocks.Block, bool, error) {
	idx := pbblocks.IndexOf(d.blocks, id)
	if idx < 0 {
		return d.Blocks(), false, nil
	}
	current := d.blocks[idx]
	if d.registry != nil {
		if err := d.registry.ValidatePatch(current.Type, patch); err != nil {
			return d.Blocks(), true, err
		}
	}
	content, err := pbblocks.ApplyPatch(current.ContentOrEmpty(), patch)
	if err != nil {
		return d.Blocks(), true, err
	}
	next := pbblocks.CloneList(d.blocks)
	next[idx].Content = content
	d.blocks = next
	return d.Blocks(), true, nil
}

// ReplaceContent swaps the whole content of block id.
func (d *Document) ReplaceContent(id string, content blocks.Content) ([]blocks.Block, bool, error) {
	idx := pbblocks.IndexOf(d.blocks, id)
	if idx < 0 {
		return d.Blocks(), false, nil
	}
	if content == nil || content.BlockType() != d.blocks[idx].Type {
		return d.Blocks(), true, fmt.Errorf("%w: block %s is %s", blocks.ErrContentMismatch, id, d.blocks[idx].Type)
	}
	next := pbblocks.CloneList(d.blocks)
	next[idx].Content = pbblocks.CloneContent(content)
	d.blocks = next
	return d.Blocks(), true, nil
}

// Delete removes block id. Its id is never issued again.
func (d *Document) Delete(id string) ([]blocks.Block, bool) {
	idx := pbblocks.IndexOf(d.blocks, id)
	if idx < 0 {
		return d.Blocks(), false
	}
	next := make([]blocks.Block, 0, len(d.blocks)-1)
	next = append(next, d.blocks[:idx]...)
	next = append(next, d.blocks[idx+1:]...)
	d.blocks = next
	if d.selected == id {
		d.selected = ""
	}
	return d.Blocks(), true
}

// Duplicate deep copies block id under a new id directly after the source.
func (d *Document) Duplicate(id string) ([]blocks.Block, blocks.Block, bool) {
	idx := pbblocks.IndexOf(d.blocks, id)
	if idx < 0 {
		return d.Blocks(), blocks.Block{}, false
	}
	clone := d.blocks[idx].Clone()
	clone.ID = d.NewID()
	d.blocks = insertAt(d.blocks, idx+1, clone)
	return d.Blocks(), clone.Clone(), true
}

// Reorder moves block id to newIndex, clamped into range. changed is false
// for unknown ids and moves that land on the current position.
func (d *Document) Reorder(id string, newIndex int) ([]blocks.Block, bool) {
	idx := pbblocks.IndexOf(d.blocks, id)
	if idx < 0 {
		return d.Blocks(), false
	}
	target := clamp(newIndex, len(d.blocks)-1)
	if target == idx {
		return d.Blocks(), false
	}
	block := d.blocks[idx]
	rest := make([]blocks.Block, 0, len(d.blocks))
	rest = append(rest, d.blocks[:idx]...)
	rest = append(rest, d.blocks[idx+1:]...)
	d.blocks = insertAt(rest, target, block)
	return d.Blocks(), true
}

// SetVisibility hides or shows block id at bp.
func (d *Document) SetVisibility(id string, bp blocks.Breakpoint, hidden bool) ([]blocks.Block, bool, error) {
	if !bp.Valid() {
		return d.Blocks(), false, fmt.Errorf("%w: %q", blocks.ErrUnknownBreakpoint, bp)
	}
	idx := pbblocks.IndexOf(d.blocks, id)
	if idx < 0 || d.blocks[idx].Visibility.Hidden(bp) == hidden {
		return d.Blocks(), false, nil
	}
	next := pbblocks.CloneList(d.blocks)
	next[idx].Visibility = next[idx].Visibility.With(bp, hidden)
	d.blocks = next
	return d.Blocks(), true, nil
}

// SetStyles replaces the style overrides of block id.
func (d *Document) SetStyles(id string, styles blocks.Styles) ([]blocks.Block, bool) {
	idx := pbblocks.IndexOf(d.blocks, id)
	if idx < 0 || d.blocks[idx].Styles == styles {
		return d.Blocks(), false
	}
	next := pbblocks.CloneList(d.blocks)
	next[idx].Styles = styles
	d.blocks = next
	return d.Blocks(), true
}

// InsertMany inserts list at index (negative appends). Blocks without an id or
// carrying an id this document already issued get a fresh one.
func (d *Document) InsertMany(list []blocks.Block, at int) []blocks.Block {
	if len(list) == 0 {
		return d.Blocks()
	}
	if at < 0 || at > len(d.blocks) {
		at = len(d.blocks)
	}
	incoming := pbblocks.CloneList(list)
	for i := range incoming {
		if _, used := d.issued[incoming[i].ID]; incoming[i].ID == "" || used {
			incoming[i].ID = d.NewID()
			continue
		}
		d.issue(incoming[i].ID)
	}
	next := make([]blocks.Block, 0, len(d.blocks)+len(incoming))
	next = append(next, d.blocks[:at]...)
	next = append(next, incoming...)
	next = append(next, d.blocks[at:]...)
	d.blocks = next
	return d.Blocks()
}

// Restore replaces the block list wholesale, as undo and redo do. Selection is
// kept only if the selected block still exists.
func (d *Document) Restore(list []blocks.Block) []blocks.Block {
	d.blocks = pbblocks.CloneList(list)
	for _, block := range d.blocks {
		d.issue(block.ID)
	}
	if d.selected != "" && pbblocks.IndexOf(d.blocks, d.selected) < 0 {
		d.selected = ""
	}
	return d.Blocks()
}

func (d *Document) defaultContent(t blocks.Type) (blocks.Content, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", blocks.ErrUnknownType, t)
	}
	if d.registry != nil {
		return d.registry.DefaultContent(t)
	}
	return pbblocks.EmptyContent(t)
}

func (d *Document) issue(id string) {
	if id != "" {
		d.issued[id] = struct{}{}
	}
}

func insertAt(list []blocks.Block, at int, block blocks.Block) []blocks.Block {
	next := make([]blocks.Block, 0, len(list)+1)
	next = append(next, list[:at]...)
	next = append(next, block)
	next = append(next, list[at:]...)
	return next
}

func clamp(index, max int) int {
	if index < 0 {
		return 0
	}
	if index > max {
		return max
	}
	return index
}
