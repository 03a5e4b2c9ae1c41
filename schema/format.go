package schema

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/specdelta"
)

// SourceFormat represents the format of a snapshot document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent treats anything starting with '{' or '[' as JSON
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// detectFormatFromURL tries the URL path extension, then the Content-Type header
func detectFormatFromURL(urlStr, contentType string) SourceFormat {
	if parsed, err := url.Parse(urlStr); err == nil && parsed.Path != "" {
		if format := detectFormatFromPath(parsed.Path); format != SourceFormatUnknown {
			return format
		}
	}
	contentType = strings.ToLower(contentType)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	switch strings.TrimSpace(contentType) {
	case "application/json":
		return SourceFormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// IsURL determines if the given path is an http:// or https:// URL
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// fetchURL fetches content from a URL and returns the bytes and Content-Type header
func (l *Loader) fetchURL(urlStr string) ([]byte, string, error) {
	client := l.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", fmt.Errorf("schema: failed to create request: %w", err)
	}
	userAgent := l.UserAgent
	if userAgent == "" {
		userAgent = specdelta.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req) //nolint:gosec // URL is user-provided input
	if err != nil {
		return nil, "", fmt.Errorf("schema: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("schema: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	// Read one byte past the limit so oversized bodies are detectable.
	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxFileSize()+1))
	if err != nil {
		return nil, "", fmt.Errorf("schema: failed to read response body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
