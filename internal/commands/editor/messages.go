package editorcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-pagebuilder/blocks"
)

const (
	addBlockMessageType       = "pagebuilder.editor.add_block"
	updateBlockMessageType    = "pagebuilder.editor.update_block"
	deleteBlockMessageType    = "pagebuilder.editor.delete_block"
	duplicateBlockMessageType = "pagebuilder.editor.duplicate_block"
	reorderBlockMessageType   = "pagebuilder.editor.reorder_block"
	visibilityMessageType     = "pagebuilder.editor.set_visibility"
	applyTemplateMessageType  = "pagebuilder.editor.apply_template"
	historyMessageType        = "pagebuilder.editor.history"
	savePageMessageType       = "pagebuilder.editor.save"
	publishPageMessageType    = "pagebuilder.editor.publish"
)

// History directions accepted by HistoryCommand.
const (
	DirectionUndo = "undo"
	DirectionRedo = "redo"
)

// BlockResult receives the blocks a command created. It is optional.
type BlockResult struct {
	Blocks []blocks.Block
}

func (r *BlockResult) set(list ...blocks.Block) {
	if r != nil {
		r.Blocks = list
	}
}

// AddBlockCommand inserts a block of BlockType with registry defaults. A nil
// Index appends (or inserts after the selection when enabled).
type AddBlockCommand struct {
	PageID    string       `json:"page_id"`
	BlockType string       `json:"block_type"`
	Index     *int         `json:"index,omitempty"`
	Result    *BlockResult `json:"-"`
}

// Type implements command.Message.
func (AddBlockCommand) Type() string { return addBlockMessageType }

// Validate implements command validation.
func (m AddBlockCommand) Validate() error {
	errs := pageErrors(m.PageID, addBlockMessageType)
	if strings.TrimSpace(m.BlockType) == "" {
		errs["block_type"] = validation.NewError(addBlockMessageType+".block_type_required", "block_type is required")
	} else if _, err := blocks.ParseType(m.BlockType); err != nil {
		errs["block_type"] = validation.NewError(addBlockMessageType+".block_type_unknown", "block_type is not a known block type")
	}
	if m.Index != nil && *m.Index < 0 {
		errs["index"] = validation.NewError(addBlockMessageType+".index_invalid", "index must be zero or positive")
	}
	return errs.Filter()
}

// UpdateBlockCommand merges Patch into the content of a block.
type UpdateBlockCommand struct {
	PageID  string         `json:"page_id"`
	BlockID string         `json:"block_id"`
	Patch   map[string]any `json:"patch"`
}

// Type implements command.Message.
func (UpdateBlockCommand) Type() string { return updateBlockMessageType }

// Validate implements command validation.
func (m UpdateBlockCommand) Validate() error {
	errs := blockErrors(m.PageID, m.BlockID, updateBlockMessageType)
	if len(m.Patch) == 0 {
		errs["patch"] = validation.NewError(updateBlockMessageType+".patch_required", "patch must contain at least one key")
	}
	return errs.Filter()
}

// DeleteBlockCommand removes a block.
type DeleteBlockCommand struct {
	PageID  string `json:"page_id"`
	BlockID string `json:"block_id"`
}

// Type implements command.Message.
func (DeleteBlockCommand) Type() string { return deleteBlockMessageType }

// Validate implements command validation.
func (m DeleteBlockCommand) Validate() error {
	return blockErrors(m.PageID, m.BlockID, deleteBlockMessageType).Filter()
}

// DuplicateBlockCommand copies a block directly after itself.
type DuplicateBlockCommand struct {
	PageID  string       `json:"page_id"`
	BlockID string       `json:"block_id"`
	Result  *BlockResult `json:"-"`
}

// Type implements command.Message.
func (DuplicateBlockCommand) Type() string { return duplicateBlockMessageType }

// Validate implements command validation.
func (m DuplicateBlockCommand) Validate() error {
	return blockErrors(m.PageID, m.BlockID, duplicateBlockMessageType).Filter()
}

// ReorderBlockCommand moves a block to Index.
type ReorderBlockCommand struct {
	PageID  string `json:"page_id"`
	BlockID string `json:"block_id"`
	Index   int    `json:"index"`
}

// Type implements command.Message.
func (ReorderBlockCommand) Type() string { return reorderBlockMessageType }

// Validate implements command validation.
func (m ReorderBlockCommand) Validate() error {
	errs := blockErrors(m.PageID, m.BlockID, reorderBlockMessageType)
	if m.Index < 0 {
		errs["index"] = validation.NewError(reorderBlockMessageType+".index_invalid", "index must be zero or positive")
	}
	return errs.Filter()
}

// SetVisibilityCommand hides or shows a block at one breakpoint.
type SetVisibilityCommand struct {
	PageID     string `json:"page_id"`
	BlockID    string `json:"block_id"`
	Breakpoint string `json:"breakpoint"`
	Hidden     bool   `json:"hidden"`
}

// Type implements command.Message.
func (SetVisibilityCommand) Type() string { return visibilityMessageType }

// Validate implements command validation.
func (m SetVisibilityCommand) Validate() error {
	errs := blockErrors(m.PageID, m.BlockID, visibilityMessageType)
	if _, err := blocks.ParseBreakpoint(m.Breakpoint); err != nil {
		errs["breakpoint"] = validation.NewError(visibilityMessageType+".breakpoint_invalid", "breakpoint must be small, medium or large (or mobile, tablet, desktop)")
	}
	return errs.Filter()
}

// ApplyTemplateCommand inserts a catalog template. A nil Index appends.
type ApplyTemplateCommand struct {
	PageID     string       `json:"page_id"`
	TemplateID string       `json:"template_id"`
	Index      *int         `json:"index,omitempty"`
	Result     *BlockResult `json:"-"`
}

// Type implements command.Message.
func (ApplyTemplateCommand) Type() string { return applyTemplateMessageType }

// Validate implements command validation.
func (m ApplyTemplateCommand) Validate() error {
	errs := pageErrors(m.PageID, applyTemplateMessageType)
	if strings.TrimSpace(m.TemplateID) == "" {
		errs["template_id"] = validation.NewError(applyTemplateMessageType+".template_id_required", "template_id is required")
	}
	if m.Index != nil && *m.Index < 0 {
		errs["index"] = validation.NewError(applyTemplateMessageType+".index_invalid", "index must be zero or positive")
	}
	return errs.Filter()
}

// HistoryCommand moves the history cursor of a page.
type HistoryCommand struct {
	PageID    string `json:"page_id"`
	Direction string `json:"direction"`
}

// Type implements command.Message.
func (HistoryCommand) Type() string { return historyMessageType }

// Validate implements command validation.
func (m HistoryCommand) Validate() error {
	errs := pageErrors(m.PageID, historyMessageType)
	switch m.Direction {
	case DirectionUndo, DirectionRedo:
	default:
		errs["direction"] = validation.NewError(historyMessageType+".direction_invalid", "direction must be undo or redo")
	}
	return errs.Filter()
}

// SavePageCommand persists the draft of a page.
type SavePageCommand struct {
	PageID string `json:"page_id"`
}

// Type implements command.Message.
func (SavePageCommand) Type() string { return savePageMessageType }

// Validate implements command validation.
func (m SavePageCommand) Validate() error {
	return pageErrors(m.PageID, savePageMessageType).Filter()
}

// PublishPageCommand publishes the current document of a page.
type PublishPageCommand struct {
	PageID string `json:"page_id"`
}

// Type implements command.Message.
func (PublishPageCommand) Type() string { return publishPageMessageType }

// Validate implements command validation.
func (m PublishPageCommand) Validate() error {
	return pageErrors(m.PageID, publishPageMessageType).Filter()
}

func pageErrors(pageID, messageType string) validation.Errors {
	errs := validation.Errors{}
	if strings.TrimSpace(pageID) == "" {
		errs["page_id"] = validation.NewError(messageType+".page_id_required", "page_id is required")
	}
	return errs
}

func blockErrors(pageID, blockID, messageType string) validation.Errors {
	errs := pageErrors(pageID, messageType)
	if strings.TrimSpace(blockID) == "" {
		errs["block_id"] = validation.NewError(messageType+".block_id_required", "block_id is required")
	}
	return errs
}
