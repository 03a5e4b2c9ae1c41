package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/erraggy/specdelta/schema"
)

// snapshotCache holds loaded snapshots for the lifetime of the server.
// Entries expire after cfg.CacheTTL and the least recently used entry is
// evicted once cfg.CacheMaxSize is reached.
var snapshotCache = newSnapshotCache()

func newSnapshotCache() *expirable.LRU[string, *schema.LoadResult] {
	return expirable.NewLRU[string, *schema.LoadResult](cfg.CacheMaxSize, nil, cfg.CacheTTL)
}

// makeCacheKey creates a cache key for the given spec input.
// File inputs are keyed by absolute path and modification time so edits
// invalidate the entry; content inputs by an xxhash of the content.
// An empty key means the input is not cached.
func makeCacheKey(s specInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		return "content:" + strconv.FormatUint(xxhash.Sum64String(s.Content), 16)
	case s.URL != "":
		return "url:" + s.URL
	default:
		return ""
	}
}
