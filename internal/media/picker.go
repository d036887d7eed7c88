package media

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

var (
	// ErrProviderUnavailable reports that no media picker has been configured.
	ErrProviderUnavailable = errors.New("media: provider unavailable")
	// ErrEmptySelection is returned when a picker confirms a selection without a URL.
	ErrEmptySelection = errors.New("media: selection has no url")
)

// Func adapts a function to interfaces.MediaPicker.
type Func func(ctx context.Context, req interfaces.MediaRequest) (interfaces.MediaSelection, bool, error)

func (f Func) PickMedia(ctx context.Context, req interfaces.MediaRequest) (interfaces.MediaSelection, bool, error) {
	return f(ctx, req)
}

// NewNoOpPicker returns a picker that always fails with ErrProviderUnavailable.
func NewNoOpPicker() interfaces.MediaPicker { return noopPicker{} }

type noopPicker struct{}

func (noopPicker) PickMedia(context.Context, interfaces.MediaRequest) (interfaces.MediaSelection, bool, error) {
	return interfaces.MediaSelection{}, false, ErrProviderUnavailable
}

// StaticPicker answers every request with a fixed selection. It suits
// headless hosts and scripted sessions. A zero URL means cancelled.
type StaticPicker struct {
	mu        sync.Mutex
	selection interfaces.MediaSelection
	requests  []interfaces.MediaRequest
}

// NewStaticPicker returns a picker that always hands back selection.
func NewStaticPicker(selection interfaces.MediaSelection) *StaticPicker {
	return &StaticPicker{selection: selection}
}

func (p *StaticPicker) PickMedia(ctx context.Context, req interfaces.MediaRequest) (interfaces.MediaSelection, bool, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.MediaSelection{}, false, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	if p.selection.URL == "" {
		return interfaces.MediaSelection{}, false, nil
	}
	return p.selection, true, nil
}

// Set replaces the selection returned by later calls.
func (p *StaticPicker) Set(selection interfaces.MediaSelection) {
	p.mu.Lock()
	p.selection = selection
	p.mu.Unlock()
}

// Requests returns the requests seen so far.
func (p *StaticPicker) Requests() []interfaces.MediaRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]interfaces.MediaRequest(nil), p.requests...)
}

var (
	_ interfaces.MediaPicker = Func(nil)
	_ interfaces.MediaPicker = noopPicker{}
	_ interfaces.MediaPicker = (*StaticPicker)(nil)
)
