package schema

import (
	"fmt"
	"io"
	"net/http"

	"github.com/erraggy/specdelta"
	"github.com/erraggy/specdelta/internal/options"
)

// Option is a function that configures a load operation
type Option func(*loadConfig) error

// loadConfig holds configuration for a load operation
type loadConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	strict               bool
	allowDuplicateFields bool
	maxFileSize          int64
	userAgent            string
	httpClient           *http.Client
	logger               Logger

	// Overrides SourcePath in the result
	sourceName *string
}

// LoadWithOptions loads a snapshot using functional options.
//
// Example:
//
//	result, err := schema.LoadWithOptions(
//	    schema.WithFilePath("api.json"),
//	    schema.WithStrict(true),
//	)
func LoadWithOptions(opts ...Option) (*LoadResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("schema: invalid options: %w", err)
	}

	l := &Loader{
		Strict:               cfg.strict,
		AllowDuplicateFields: cfg.allowDuplicateFields,
		MaxFileSize:          cfg.maxFileSize,
		UserAgent:            cfg.userAgent,
		HTTPClient:           cfg.httpClient,
		Logger:               cfg.logger,
	}

	var result *LoadResult
	switch {
	case cfg.filePath != nil:
		result, err = l.Load(*cfg.filePath)
	case cfg.reader != nil:
		result, err = l.LoadReader(cfg.reader)
	default:
		result, err = l.LoadBytes(cfg.bytes)
	}
	if err != nil {
		return result, err
	}

	if cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{
		userAgent: specdelta.UserAgent(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"input",
		"must specify an input source (use WithFilePath, WithReader, or WithBytes)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path, URL, or StdinPath as the input source
func WithFilePath(path string) Option {
	return func(cfg *loadConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *loadConfig) error {
		if r == nil {
			return fmt.Errorf("reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *loadConfig) error {
		if data == nil {
			return fmt.Errorf("bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithStrict enables strict loading
// Default: false
func WithStrict(enabled bool) Option {
	return func(cfg *loadConfig) error {
		cfg.strict = enabled
		return nil
	}
}

// WithAllowDuplicateFields enables last-wins handling of repeated field names
// Default: false
func WithAllowDuplicateFields(enabled bool) Option {
	return func(cfg *loadConfig) error {
		cfg.allowDuplicateFields = enabled
		return nil
	}
}

// WithMaxFileSize sets the document size limit in bytes (0 uses DefaultMaxFileSize)
func WithMaxFileSize(size int64) Option {
	return func(cfg *loadConfig) error {
		if size < 0 {
			return fmt.Errorf("max file size cannot be negative: %d", size)
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithUserAgent sets the User-Agent header for URL fetches
func WithUserAgent(ua string) Option {
	return func(cfg *loadConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithHTTPClient sets the HTTP client for URL fetches
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *loadConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(l Logger) Option {
	return func(cfg *loadConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithSourceName overrides SourcePath in the result
func WithSourceName(name string) Option {
	return func(cfg *loadConfig) error {
		cfg.sourceName = &name
		return nil
	}
}
