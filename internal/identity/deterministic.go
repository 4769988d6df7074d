package identity

import (
	"path"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
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

// DocumentUUID is the id of the document loaded from a slash separated path.
// Equivalent paths ("a/./b.md", "a/b.md") share an id.
func DocumentUUID(filePath string) uuid.UUID {
	trimmed := strings.TrimSpace(filePath)
	if trimmed == "" {
		return uuid.Nil
	}
	return UUID("editor:document:" + path.Clean(trimmed))
}
