package identity

import (
	"strings"

	"github.com/goliatone/go-slug"
	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by entity kind so ids of different kinds never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// NewBlockID returns a fresh, time ordered block id.
func NewBlockID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Slug normalises a human label into a stable key. Labels that normalise to
// nothing fall back to a lower cased, trimmed copy.
func Slug(label string) string {
	normalized, err := slug.Normalize(label)
	if err == nil && normalized != "" {
		return normalized
	}
	return strings.ToLower(strings.TrimSpace(label))
}

func TemplateUUID(name string) uuid.UUID {
	return UUID("go-pagebuilder:template:" + Slug(name))
}
