package interfaces

import (
	"context"
	"errors"

	"github.com/goliatone/go-pagebuilder/blocks"
)

// ErrPageNotFound is returned by loaders when no record exists for a page.
var ErrPageNotFound = errors.New("page not found")

// PageStore persists the full block list of a page. Calls are all or nothing:
// callers never send diffs and never assume a partial write succeeded.
type PageStore interface {
	Save(ctx context.Context, pageID string, list []blocks.Block) error
	Publish(ctx context.Context, pageID string, list []blocks.Block) error
}

// PageLoader is implemented by stores that can seed an editor session.
type PageLoader interface {
	LoadDraft(ctx context.Context, pageID string) ([]blocks.Block, error)
	LoadPublished(ctx context.Context, pageID string) ([]blocks.Block, error)
}
