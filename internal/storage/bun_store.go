package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Drivers accepted by NewBunDB.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// NewPageDocumentRepository creates the go-repository-bun repository for page
// documents, keyed by DocumentKey.
func NewPageDocumentRepository(db *bun.DB) repository.Repository[*PageDocument] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PageDocument]{
		NewRecord:          func() *PageDocument { return &PageDocument{} },
		GetID:              func(doc *PageDocument) uuid.UUID { return doc.ID },
		SetID:              func(doc *PageDocument, id uuid.UUID) { doc.ID = id },
		GetIdentifier:      func() string { return "key" },
		GetIdentifierValue: func(doc *PageDocument) string { return doc.Key },
	})
}

// NewBunDB wraps sqlDB with the bun dialect for driver.
func NewBunDB(sqlDB *sql.DB, driver string) (*bun.DB, error) {
	if sqlDB == nil {
		return nil, ErrDatabaseRequired
	}
	switch normalizeDriver(driver) {
	case DriverSQLite:
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case DriverPostgres:
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// SQLDriverName maps a configured driver to the database/sql driver name.
func SQLDriverName(driver string) (string, error) {
	switch normalizeDriver(driver) {
	case DriverSQLite:
		return "sqlite3", nil
	case DriverPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

func normalizeDriver(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return DriverSQLite
	case "postgres", "postgresql", "pg":
		return DriverPostgres
	default:
		return ""
	}
}

// EnsureSchema creates the page document table when missing.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return ErrDatabaseRequired
	}
	if _, err := db.NewCreateTable().Model((*PageDocument)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("storage: create page_documents: %w", err)
	}
	return nil
}

// BunStore persists page documents through go-repository-bun with optional
// go-repository-cache decoration.
type BunStore struct {
	repo   repository.Repository[*PageDocument]
	clock  func() time.Time
	logger interfaces.Logger
}

var (
	_ interfaces.PageStore  = (*BunStore)(nil)
	_ interfaces.PageLoader = (*BunStore)(nil)
)

// BunOption configures a BunStore.
type BunOption func(*BunStore)

// WithLogger sets the store logger.
func WithLogger(logger interfaces.Logger) BunOption {
	return func(s *BunStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) BunOption {
	return func(s *BunStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewBunStore creates a store without caching.
func NewBunStore(db *bun.DB, opts ...BunOption) *BunStore {
	return NewBunStoreWithCache(db, nil, nil, opts...)
}

// NewBunStoreWithCache creates a store whose lookups go through the cache
// when both cacheService and serializer are set.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer, opts ...BunOption) *BunStore {
	base := NewPageDocumentRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	store := &BunStore{
		repo:   base,
		clock:  time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store
}

// Save replaces the draft of pageID.
func (s *BunStore) Save(ctx context.Context, pageID string, list []blocks.Block) error {
	return s.write(ctx, pageID, KindDraft, list)
}

// Publish replaces the published copy of pageID.
func (s *BunStore) Publish(ctx context.Context, pageID string, list []blocks.Block) error {
	return s.write(ctx, pageID, KindPublished, list)
}

// LoadDraft returns the most recently written copy of pageID.
func (s *BunStore) LoadDraft(ctx context.Context, pageID string) ([]blocks.Block, error) {
	draft, published, err := s.pair(ctx, pageID)
	if err != nil {
		return nil, err
	}
	doc := latest(draft, published)
	if doc == nil {
		return nil, interfaces.ErrPageNotFound
	}
	return blocks.CloneList(doc.Blocks), nil
}

// LoadPublished returns the published copy of pageID.
func (s *BunStore) LoadPublished(ctx context.Context, pageID string) ([]blocks.Block, error) {
	doc, err := s.Get(ctx, pageID, KindPublished)
	if err != nil {
		return nil, err
	}
	return doc.Blocks, nil
}

// Get returns the stored document for pageID and kind.
func (s *BunStore) Get(ctx context.Context, pageID string, kind Kind) (*PageDocument, error) {
	doc, err := s.find(ctx, pageID, kind)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, interfaces.ErrPageNotFound
	}
	return cloneDocument(doc), nil
}

// Delete removes both copies of pageID.
func (s *BunStore) Delete(ctx context.Context, pageID string) error {
	draft, published, err := s.pair(ctx, pageID)
	if err != nil {
		return err
	}
	for _, doc := range []*PageDocument{draft, published} {
		if doc == nil {
			continue
		}
		if err := s.repo.Delete(ctx, doc); err != nil {
			return fmt.Errorf("storage: delete %s: %w", doc.Key, err)
		}
	}
	return nil
}

func (s *BunStore) write(ctx context.Context, pageID string, kind Kind, list []blocks.Block) error {
	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return ErrPageIDRequired
	}
	draft, published, err := s.pair(ctx, pageID)
	if err != nil {
		return err
	}
	revision := nextRevision(draft, published)
	now := s.clock().UTC()

	current := draft
	if kind == KindPublished {
		current = published
	}

	if current == nil {
		record := &PageDocument{
			ID:        DocumentID(pageID, kind),
			Key:       DocumentKey(pageID, kind),
			PageID:    pageID,
			Kind:      kind,
			Blocks:    blocks.CloneList(list),
			Revision:  revision,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := s.repo.Create(ctx, record); err != nil {
			return fmt.Errorf("storage: create %s: %w", record.Key, err)
		}
	} else {
		record := cloneDocument(current)
		record.Blocks = blocks.CloneList(list)
		record.Revision = revision
		record.UpdatedAt = now
		if _, err := s.repo.Update(ctx, record); err != nil {
			return fmt.Errorf("storage: update %s: %w", record.Key, err)
		}
	}

	logging.WithPageContext(s.logger, pageID, "", string(kind)).Debug("storage.page.written",
		"revision", revision,
		"blocks", len(list),
	)
	return nil
}

func (s *BunStore) pair(ctx context.Context, pageID string) (*PageDocument, *PageDocument, error) {
	draft, err := s.find(ctx, pageID, KindDraft)
	if err != nil {
		return nil, nil, err
	}
	published, err := s.find(ctx, pageID, KindPublished)
	if err != nil {
		return nil, nil, err
	}
	return draft, published, nil
}

// find returns nil without error when the document does not exist.
func (s *BunStore) find(ctx context.Context, pageID string, kind Kind) (*PageDocument, error) {
	doc, err := s.repo.GetByIdentifier(ctx, DocumentKey(pageID, kind))
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: load %s: %w", DocumentKey(pageID, kind), err)
	}
	return doc, nil
}
