package editorcmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/commands"
	"github.com/goliatone/go-pagebuilder/internal/editor"
	"github.com/goliatone/go-pagebuilder/internal/media"
	"github.com/goliatone/go-pagebuilder/internal/templates"
	"github.com/goliatone/go-pagebuilder/internal/validation"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// ErrBlockNotFound is returned when a command names a block the page does not hold.
var ErrBlockNotFound = errors.New("editor command: block not found")

// SessionSource resolves the editor session for a page.
type SessionSource interface {
	Open(ctx context.Context, pageID string) (*editor.Controller, error)
}

type (
	AddBlockHandler       = commands.Handler[AddBlockCommand]
	UpdateBlockHandler    = commands.Handler[UpdateBlockCommand]
	DeleteBlockHandler    = commands.Handler[DeleteBlockCommand]
	DuplicateBlockHandler = commands.Handler[DuplicateBlockCommand]
	ReorderBlockHandler   = commands.Handler[ReorderBlockCommand]
	VisibilityHandler     = commands.Handler[SetVisibilityCommand]
	ApplyTemplateHandler  = commands.Handler[ApplyTemplateCommand]
	HistoryHandler        = commands.Handler[HistoryCommand]
	SavePageHandler       = commands.Handler[SavePageCommand]
	PublishPageHandler    = commands.Handler[PublishPageCommand]
)

// NewAddBlockHandler builds the handler for AddBlockCommand.
func NewAddBlockHandler(sessions SessionSource, logger interfaces.Logger, opts ...commands.HandlerOption[AddBlockCommand]) *AddBlockHandler {
	return newHandler(logger, "editor.add_block", func(ctx context.Context, msg AddBlockCommand) error {
		session, err := sessions.Open(ctx, msg.PageID)
		if err != nil {
			return err
		}
		t := blocks.Type(strings.TrimSpace(msg.BlockType))
		var block blocks.Block
		if msg.Index != nil {
			block, err = session.AddBlockAt(t, *msg.Index)
		} else {
			block, err = session.AddBlock(t)
		}
		if err != nil {
			return classify(err)
		}
		msg.Result.set(block)
		return nil
	}, func(msg AddBlockCommand) map[string]any {
		return map[string]any{"page_id": msg.PageID, "block_type": msg.BlockType}
	}, opts)
}

// NewUpdateBlockHandler builds the handler for UpdateBlockCommand.
func NewUpdateBlockHandler(sessions SessionSource, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateBlockCommand]) *UpdateBlockHandler {
	return newHandler(logger, "editor.update_block", func(ctx context.Context, msg UpdateBlockCommand) error {
		session, err := openWithBlock(ctx, sessions, msg.PageID, msg.BlockID)
		if err != nil {
			return err
		}
		_, err = session.UpdateBlock(msg.BlockID, msg.Patch)
		return classify(err)
	}, blockFields[UpdateBlockCommand](func(m UpdateBlockCommand) (string, string) { return m.PageID, m.BlockID }), opts)
}

// NewDeleteBlockHandler builds the handler for DeleteBlockCommand.
func NewDeleteBlockHandler(sessions SessionSource, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteBlockCommand]) *DeleteBlockHandler {
	return newHandler(logger, "editor.delete_block", func(ctx context.Context, msg DeleteBlockCommand) error {
		session, err := openWithBlock(ctx, sessions, msg.PageID, msg.BlockID)
		if err != nil {
			return err
		}
		session.DeleteBlock(msg.BlockID)
		return nil
	}, blockFields[DeleteBlockCommand](func(m DeleteBlockCommand) (string, string) { return m.PageID, m.BlockID }), opts)
}

// NewDuplicateBlockHandler builds the handler for DuplicateBlockCommand.
func NewDuplicateBlockHandler(sessions SessionSource, logger interfaces.Logger, opts ...commands.HandlerOption[DuplicateBlockCommand]) *DuplicateBlockHandler {
	return newHandler(logger, "editor.duplicate_block", func(ctx context.Context, msg DuplicateBlockCommand) error {
		session, err := openWithBlock(ctx, sessions, msg.PageID, msg.BlockID)
		if err != nil {
			return err
		}
		if copied, ok := session.DuplicateBlock(msg.BlockID); ok {
			msg.Result.set(copied)
		}
		return nil
	}, blockFields[DuplicateBlockCommand](func(m DuplicateBlockCommand) (string, string) { return m.PageID, m.BlockID }), opts)
}

// NewReorderBlockHandler builds the handler for ReorderBlockCommand.
func NewReorderBlockHandler(sessions SessionSource, logger interfaces.Logger, opts ...commands.HandlerOption[ReorderBlockCommand]) *ReorderBlockHandler {
	return newHandler(logger, "editor.reorder_block", func(ctx context.Context, msg ReorderBlockCommand) error {
		session, err := openWithBlock(ctx, sessions, msg.PageID, msg.BlockID)
		if err != nil {
			return err
		}
		session.Reorder(msg.BlockID, msg.Index)
		return nil
	}, blockFields[ReorderBlockCommand](func(m ReorderBlockCommand) (string, string) { return m.PageID, m.BlockID }), opts)
}

// NewVisibilityHandler builds the handler for SetVisibilityCommand.
func NewVisibilityHandler(sessions SessionSource, logger interfaces.Logger, opts ...commands.HandlerOption[SetVisibilityCommand]) *VisibilityHandler {
	return newHandler(logger, "editor.set_visibility", func(ctx context.Context, msg SetVisibilityCommand) error {
		bp, err := blocks.ParseBreakpoint(msg.Breakpoint)
		if err != nil {
			return classify(err)
		}
		session, err := openWithBlock(ctx, sessions, msg.PageID, msg.BlockID)
		if err != nil {
			return err
		}
		_, err = session.SetVisibility(msg.BlockID, bp, msg.Hidden)
		return classify(err)
	}, blockFields[SetVisibilityCommand](func(m SetVisibilityCommand) (string, string) { return m.PageID, m.BlockID }), opts)
}

// NewApplyTemplateHandler builds the handler for ApplyTemplateCommand.
func NewApplyTemplateHandler(sessions SessionSource, logger interfaces.Logger, opts ...commands.HandlerOption[ApplyTemplateCommand]) *ApplyTemplateHandler {
	return newHandler(logger, "editor.apply_template", func(ctx context.Context, msg ApplyTemplateCommand) error {
		session, err := sessions.Open(ctx, msg.PageID)
		if err != nil {
			return err
		}
		index := len(session.Blocks())
		if msg.Index != nil {
			index = *msg.Index
		}
		inserted, err := session.ApplyTemplateID(msg.TemplateID, index)
		if err != nil {
			return classify(err)
		}
		msg.Result.set(inserted...)
		return nil
	}, func(msg ApplyTemplateCommand) map[string]any {
		return map[string]any{"page_id": msg.PageID, "template_id": msg.TemplateID}
	}, opts)
}

// NewHistoryHandler builds the handler for HistoryCommand.
func NewHistoryHandler(sessions SessionSource, logger interfaces.Logger, opts ...commands.HandlerOption[HistoryCommand]) *HistoryHandler {
	return newHandler(logger, "editor.history", func(ctx context.Context, msg HistoryCommand) error {
		session, err := sessions.Open(ctx, msg.PageID)
		if err != nil {
			return err
		}
		if msg.Direction == DirectionRedo {
			session.Redo()
		} else {
			session.Undo()
		}
		return nil
	}, func(msg HistoryCommand) map[string]any {
		return map[string]any{"page_id": msg.PageID, "direction": msg.Direction}
	}, opts)
}

// NewSavePageHandler builds the handler for SavePageCommand.
func NewSavePageHandler(sessions SessionSource, logger interfaces.Logger, opts ...commands.HandlerOption[SavePageCommand]) *SavePageHandler {
	return newHandler(logger, "editor.save", func(ctx context.Context, msg SavePageCommand) error {
		session, err := sessions.Open(ctx, msg.PageID)
		if err != nil {
			return err
		}
		return classify(session.Save(ctx))
	}, func(msg SavePageCommand) map[string]any {
		return map[string]any{"page_id": msg.PageID}
	}, opts)
}

// NewPublishPageHandler builds the handler for PublishPageCommand.
func NewPublishPageHandler(sessions SessionSource, logger interfaces.Logger, opts ...commands.HandlerOption[PublishPageCommand]) *PublishPageHandler {
	return newHandler(logger, "editor.publish", func(ctx context.Context, msg PublishPageCommand) error {
		session, err := sessions.Open(ctx, msg.PageID)
		if err != nil {
			return err
		}
		return classify(session.Publish(ctx))
	}, func(msg PublishPageCommand) map[string]any {
		return map[string]any{"page_id": msg.PageID}
	}, opts)
}

func newHandler[T command.Message](logger interfaces.Logger, operation string, exec command.CommandFunc[T], fields func(T) map[string]any, opts []commands.HandlerOption[T]) *commands.Handler[T] {
	logger = commands.EnsureLogger(logger)
	handlerOpts := []commands.HandlerOption[T]{
		commands.WithLogger[T](logger),
		commands.WithOperation[T](operation),
		commands.WithMessageFields(fields),
		commands.WithTelemetry(commands.DefaultTelemetry[T](logger)),
	}
	return commands.NewHandler(exec, append(handlerOpts, opts...)...)
}

func blockFields[T command.Message](ids func(T) (string, string)) func(T) map[string]any {
	return func(msg T) map[string]any {
		pageID, blockID := ids(msg)
		return map[string]any{"page_id": pageID, "block_id": blockID}
	}
}

func openWithBlock(ctx context.Context, sessions SessionSource, pageID, blockID string) (*editor.Controller, error) {
	session, err := sessions.Open(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if _, ok := session.Block(blockID); !ok {
		return nil, commands.InvalidInput(fmt.Errorf("%w: %s", ErrBlockNotFound, blockID))
	}
	return session, nil
}

// classify marks caller mistakes so they surface as validation failures.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, blocks.ErrUnknownType),
		errors.Is(err, blocks.ErrUnknownBreakpoint),
		errors.Is(err, validation.ErrSchemaValidation),
		errors.Is(err, templates.ErrTemplateNotFound),
		errors.Is(err, media.ErrUnsupportedField),
		errors.Is(err, editor.ErrNothingToSave):
		return commands.InvalidInput(err)
	default:
		return err
	}
}
