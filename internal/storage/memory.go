package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// MemoryStore keeps page documents in process. It backs tests and hosts that
// persist pages elsewhere.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]*PageDocument
	clock func() time.Time
}

var (
	_ interfaces.PageStore  = (*MemoryStore)(nil)
	_ interfaces.PageLoader = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:  make(map[string]*PageDocument),
		clock: time.Now,
	}
}

// Save replaces the draft of pageID.
func (m *MemoryStore) Save(ctx context.Context, pageID string, list []blocks.Block) error {
	return m.write(ctx, pageID, KindDraft, list)
}

// Publish replaces the published copy of pageID.
func (m *MemoryStore) Publish(ctx context.Context, pageID string, list []blocks.Block) error {
	return m.write(ctx, pageID, KindPublished, list)
}

// LoadDraft returns the most recently written copy of pageID, which is the
// published copy when it was written after the last draft save.
func (m *MemoryStore) LoadDraft(ctx context.Context, pageID string) ([]blocks.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc := latest(m.docs[DocumentKey(pageID, KindDraft)], m.docs[DocumentKey(pageID, KindPublished)])
	if doc == nil {
		return nil, interfaces.ErrPageNotFound
	}
	return blocks.CloneList(doc.Blocks), nil
}

// LoadPublished returns the published copy of pageID.
func (m *MemoryStore) LoadPublished(ctx context.Context, pageID string) ([]blocks.Block, error) {
	doc, err := m.Get(ctx, pageID, KindPublished)
	if err != nil {
		return nil, err
	}
	return doc.Blocks, nil
}

// Get returns a copy of the stored document.
func (m *MemoryStore) Get(ctx context.Context, pageID string, kind Kind) (*PageDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[DocumentKey(pageID, kind)]
	if !ok {
		return nil, interfaces.ErrPageNotFound
	}
	return cloneDocument(doc), nil
}

// Delete removes both copies of pageID.
func (m *MemoryStore) Delete(ctx context.Context, pageID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, DocumentKey(pageID, KindDraft))
	delete(m.docs, DocumentKey(pageID, KindPublished))
	return nil
}

func (m *MemoryStore) write(ctx context.Context, pageID string, kind Kind, list []blocks.Block) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return ErrPageIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock().UTC()
	key := DocumentKey(pageID, kind)
	revision := nextRevision(m.docs[DocumentKey(pageID, KindDraft)], m.docs[DocumentKey(pageID, KindPublished)])
	doc, ok := m.docs[key]
	if !ok {
		doc = &PageDocument{
			ID:        DocumentID(pageID, kind),
			Key:       key,
			PageID:    pageID,
			Kind:      kind,
			CreatedAt: now,
		}
		m.docs[key] = doc
	}
	doc.Blocks = blocks.CloneList(list)
	doc.Revision = revision
	doc.UpdatedAt = now
	return nil
}

// latest picks the document with the higher page revision.
func latest(draft, published *PageDocument) *PageDocument {
	switch {
	case draft == nil:
		return published
	case published == nil:
		return draft
	case published.Revision > draft.Revision:
		return published
	default:
		return draft
	}
}

func nextRevision(docs ...*PageDocument) int {
	revision := 0
	for _, doc := range docs {
		if doc != nil && doc.Revision > revision {
			revision = doc.Revision
		}
	}
	return revision + 1
}
