package mcpserver

import (
	"fmt"
	"strings"

	"github.com/erraggy/specdelta/schema"
)

// specInput represents the three ways a schema snapshot can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a schema snapshot on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a schema snapshot from"`
	Content string `json:"content,omitempty" jsonschema:"Inline schema snapshot content (JSON or YAML)"`
}

func (s specInput) count() int {
	count := 0
	for _, v := range []string{s.File, s.URL, s.Content} {
		if v != "" {
			count++
		}
	}
	return count
}

// resolve loads the snapshot from whichever input was provided, using the
// cache when enabled. Unreadable input degrades to an empty snapshot unless
// strict loading is configured; the result's Warnings say why.
func (s specInput) resolve() (*schema.LoadResult, error) {
	if n := s.count(); n != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", n)
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set SPECDELTA_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
	}
	if key != "" {
		if cached, ok := snapshotCache.Get(key); ok {
			return cached, nil
		}
	}

	loader := schema.NewLoader()
	loader.Strict = cfg.StrictLoading

	var (
		result *schema.LoadResult
		err    error
	)
	switch {
	case s.File != "":
		result, err = loader.Load(s.File)
	case s.URL != "":
		if !cfg.AllowPrivateIPs {
			loader.HTTPClient = newSafeHTTPClient()
		}
		result, err = loader.Load(s.URL)
	default:
		result, err = loader.LoadReader(strings.NewReader(s.Content))
	}
	if err != nil {
		return nil, err
	}

	// Degraded results are not cached so a fixed input is picked up on retry.
	if key != "" && !result.Degraded {
		snapshotCache.Add(key, result)
	}
	return result, nil
}
