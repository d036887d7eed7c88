package editorcmd

import (
	"errors"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-pagebuilder/internal/commands"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Subscription is returned for each handler subscribed to the global dispatcher.
type Subscription interface {
	Unsubscribe()
}

// HandlerSet groups the editor command handlers.
type HandlerSet struct {
	AddBlock       *AddBlockHandler
	UpdateBlock    *UpdateBlockHandler
	DeleteBlock    *DeleteBlockHandler
	DuplicateBlock *DuplicateBlockHandler
	ReorderBlock   *ReorderBlockHandler
	Visibility     *VisibilityHandler
	ApplyTemplate  *ApplyTemplateHandler
	History        *HistoryHandler
	Save           *SavePageHandler
	Publish        *PublishPageHandler
}

// All lists the handlers in registration order.
func (s *HandlerSet) All() []any {
	if s == nil {
		return nil
	}
	return []any{
		s.AddBlock,
		s.UpdateBlock,
		s.DeleteBlock,
		s.DuplicateBlock,
		s.ReorderBlock,
		s.Visibility,
		s.ApplyTemplate,
		s.History,
		s.Save,
		s.Publish,
	}
}

// RegisterEditorCommands builds the editor handlers and registers them with
// reg when it is non-nil.
func RegisterEditorCommands(reg CommandRegistry, sessions SessionSource, provider interfaces.LoggerProvider) (*HandlerSet, error) {
	if sessions == nil {
		return nil, errors.New("editor command registration: sessions are nil")
	}
	logger := commands.CommandLogger(provider, "editor")

	set := &HandlerSet{
		AddBlock:       NewAddBlockHandler(sessions, logger),
		UpdateBlock:    NewUpdateBlockHandler(sessions, logger),
		DeleteBlock:    NewDeleteBlockHandler(sessions, logger),
		DuplicateBlock: NewDuplicateBlockHandler(sessions, logger),
		ReorderBlock:   NewReorderBlockHandler(sessions, logger),
		Visibility:     NewVisibilityHandler(sessions, logger),
		ApplyTemplate:  NewApplyTemplateHandler(sessions, logger),
		History:        NewHistoryHandler(sessions, logger),
		Save:           NewSavePageHandler(sessions, logger),
		Publish:        NewPublishPageHandler(sessions, logger),
	}

	if reg != nil {
		for _, handler := range set.All() {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// SubscribeDispatcher subscribes every handler in set to the go-command
// dispatcher so messages can be sent with dispatcher.Dispatch.
func SubscribeDispatcher(set *HandlerSet) []Subscription {
	if set == nil {
		return nil
	}
	return []Subscription{
		dispatcher.SubscribeCommand(set.AddBlock),
		dispatcher.SubscribeCommand(set.UpdateBlock),
		dispatcher.SubscribeCommand(set.DeleteBlock),
		dispatcher.SubscribeCommand(set.DuplicateBlock),
		dispatcher.SubscribeCommand(set.ReorderBlock),
		dispatcher.SubscribeCommand(set.Visibility),
		dispatcher.SubscribeCommand(set.ApplyTemplate),
		dispatcher.SubscribeCommand(set.History),
		dispatcher.SubscribeCommand(set.Save),
		dispatcher.SubscribeCommand(set.Publish),
	}
}
