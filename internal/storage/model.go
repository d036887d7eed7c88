package storage

import (
	"time"

	"github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Kind separates the working copy of a page from its published copy.
type Kind string

const (
	KindDraft     Kind = "draft"
	KindPublished Kind = "published"
)

// PageDocument stores the full block list of one page for one kind.
type PageDocument struct {
	bun.BaseModel `bun:"table:page_documents,alias:pd"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Key       string         `bun:"key,notnull,unique" json:"key"`
	PageID    string         `bun:"page_id,notnull" json:"page_id"`
	Kind      Kind           `bun:"kind,notnull" json:"kind"`
	Blocks    []blocks.Block `bun:"blocks,type:jsonb,notnull" json:"blocks"`
	Revision  int            `bun:"revision,notnull,default:0" json:"revision"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// DocumentKey is the unique lookup key for a page document.
func DocumentKey(pageID string, kind Kind) string {
	return string(kind) + ":" + pageID
}

// DocumentID derives the stable primary key for a page document.
func DocumentID(pageID string, kind Kind) uuid.UUID {
	return identity.UUID("go-pagebuilder:page-document:" + DocumentKey(pageID, kind))
}

func cloneDocument(doc *PageDocument) *PageDocument {
	if doc == nil {
		return nil
	}
	cloned := *doc
	cloned.Blocks = blocks.CloneList(doc.Blocks)
	return &cloned
}
