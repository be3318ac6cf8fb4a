package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for the extracted-page cache
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// PageKey generates a cache key for a document's extracted pages.
// The size and modification time act as a content fingerprint, so a
// changed file naturally misses the stale entry instead of being served.
func PageKey(path string, size int64, modTime time.Time) string {
	raw := fmt.Sprintf("%s|%d|%d", path, size, modTime.UnixNano())
	hash := sha256.Sum256([]byte(raw))
	return "carequery:pages:v1:" + hex.EncodeToString(hash[:])
}
