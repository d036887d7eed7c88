package editor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// ErrPageIDRequired is returned when a session is opened without a page id.
var ErrPageIDRequired = errors.New("editor: page id required")

// Sessions keeps one Controller per open page. It is safe for concurrent use.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Controller
	loader   interfaces.PageLoader
	logger   interfaces.Logger
	opts     []Option
}

// NewSessions builds a registry whose controllers share opts. A non-nil loader
// seeds new sessions from the stored draft.
func NewSessions(loader interfaces.PageLoader, logger interfaces.Logger, opts ...Option) *Sessions {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Sessions{
		sessions: map[string]*Controller{},
		loader:   loader,
		logger:   logger,
		opts:     append([]Option(nil), opts...),
	}
}

// Open returns the session for pageID, creating it when needed. A missing
// draft opens an empty document.
func (s *Sessions) Open(ctx context.Context, pageID string) (*Controller, error) {
	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return nil, ErrPageIDRequired
	}
	if existing, ok := s.Get(pageID); ok {
		return existing, nil
	}

	var initial []blocks.Block
	if s.loader != nil {
		draft, err := s.loader.LoadDraft(ctx, pageID)
		switch {
		case errors.Is(err, interfaces.ErrPageNotFound):
		case err != nil:
			return nil, fmt.Errorf("editor: load draft %s: %w", pageID, err)
		default:
			initial = draft
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[pageID]; ok {
		return existing, nil
	}
	controller := New(pageID, initial, s.opts...)
	s.sessions[pageID] = controller
	logging.WithPageContext(s.logger, pageID, "", "open").Debug("editor.session.opened", "blocks", len(initial))
	return controller, nil
}

// Get returns the open session for pageID.
func (s *Sessions) Get(pageID string) (*Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	controller, ok := s.sessions[strings.TrimSpace(pageID)]
	return controller, ok
}

// Close drops the session for pageID. Unsaved changes are discarded.
func (s *Sessions) Close(pageID string) bool {
	pageID = strings.TrimSpace(pageID)
	s.mu.Lock()
	controller, ok := s.sessions[pageID]
	delete(s.sessions, pageID)
	s.mu.Unlock()
	if ok && controller.State() != StateIdle {
		logging.WithPageContext(s.logger, pageID, "", "close").Warn("editor.session.closed_with_changes", "state", string(controller.State()))
	}
	return ok
}

// PageIDs lists open sessions in sorted order.
func (s *Sessions) PageIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
