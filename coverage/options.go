package coverage

import (
	"context"
	"fmt"
	"strings"

	"github.com/erraggy/specdelta/internal/options"
	"github.com/erraggy/specdelta/schema"
	"github.com/erraggy/specdelta/specerrors"
)

// Option is a function that configures a coverage run
type Option func(*coverageConfig) error

type coverageConfig struct {
	// Schema input (exactly one must be set)
	schemaFilePath *string
	snapshot       *schema.Snapshot

	// Source input (exactly one must be set)
	sourceText     *string
	sourcePatterns []string

	cfg           Config
	strictLoading bool
}

// ValidateWithOptions loads a snapshot and generated sources and validates
// them in one call.
//
// Example:
//
//	report, err := coverage.ValidateWithOptions(ctx,
//	    coverage.WithSchemaFilePath("api.json"),
//	    coverage.WithSourcePatterns("src/**/*.rs"),
//	    coverage.WithCheckFields(true),
//	)
func ValidateWithOptions(ctx context.Context, opts ...Option) (*Report, error) {
	c, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("coverage: invalid options: %w", err)
	}

	v, err := New(c.cfg)
	if err != nil {
		return nil, err
	}

	snap := c.snapshot
	if c.schemaFilePath != nil {
		loader := schema.NewLoader()
		loader.Strict = c.strictLoading
		loader.Logger = c.cfg.Logger
		res, err := loader.Load(*c.schemaFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load schema: %w", err)
		}
		// An empty snapshot requires nothing, so a degraded schema is an error here.
		if res.Degraded {
			return nil, fmt.Errorf("failed to load schema: %w", degradedError(res))
		}
		snap = res.Snapshot
	}

	var source string
	if c.sourceText != nil {
		source = *c.sourceText
	} else {
		src, err := CollectSources(ctx, c.sourcePatterns...)
		if err != nil {
			return nil, err
		}
		source = src.Text
	}

	return v.Validate(snap, source), nil
}

// degradedError reports a tolerant load that fell back to an empty snapshot.
func degradedError(res *schema.LoadResult) error {
	return &specerrors.ParseError{
		Path:    res.SourcePath,
		Message: strings.Join(res.Warnings, "; "),
	}
}

func applyOptions(opts ...Option) (*coverageConfig, error) {
	c := &coverageConfig{cfg: DefaultConfig()}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"schema",
		"must specify a schema (use WithSchemaFilePath or WithSnapshot)",
		"must specify exactly one schema",
		c.schemaFilePath != nil, c.snapshot != nil,
	); err != nil {
		return nil, err
	}

	if err := options.ValidateSingleInputSource(
		"source",
		"must specify generated source (use WithSourceText or WithSourcePatterns)",
		"must specify exactly one kind of generated source",
		c.sourceText != nil, len(c.sourcePatterns) > 0,
	); err != nil {
		return nil, err
	}

	return c, nil
}

// WithSchemaFilePath specifies a file path or URL for the snapshot
func WithSchemaFilePath(path string) Option {
	return func(c *coverageConfig) error {
		c.schemaFilePath = &path
		return nil
	}
}

// WithSnapshot specifies an already loaded snapshot
func WithSnapshot(s *schema.Snapshot) Option {
	return func(c *coverageConfig) error {
		if s == nil {
			return fmt.Errorf("snapshot cannot be nil")
		}
		c.snapshot = s
		return nil
	}
}

// WithSourceText specifies the generated source directly
func WithSourceText(text string) Option {
	return func(c *coverageConfig) error {
		c.sourceText = &text
		return nil
	}
}

// WithSourcePatterns specifies glob patterns for generated source files
func WithSourcePatterns(patterns ...string) Option {
	return func(c *coverageConfig) error {
		c.sourcePatterns = append(c.sourcePatterns, patterns...)
		return nil
	}
}

// WithProfile selects the marker profile
// Default: RustProfile()
func WithProfile(p Profile) Option {
	return func(c *coverageConfig) error {
		c.cfg.Profile = p
		return nil
	}
}

// WithIgnored replaces the list of ignored entities
// Default: DefaultIgnored
func WithIgnored(names ...string) Option {
	return func(c *coverageConfig) error {
		c.cfg.Ignored = names
		return nil
	}
}

// WithCheckFields enables field warnings for struct entities
// Default: false
func WithCheckFields(enabled bool) Option {
	return func(c *coverageConfig) error {
		c.cfg.CheckFields = enabled
		return nil
	}
}

// WithStrictLoading rejects schemas that decode but miss required structure.
// An unreadable schema is an error in either mode.
// Default: false
func WithStrictLoading(enabled bool) Option {
	return func(c *coverageConfig) error {
		c.strictLoading = enabled
		return nil
	}
}

// WithLogger sets the logger for loading and validation
func WithLogger(l schema.Logger) Option {
	return func(c *coverageConfig) error {
		c.cfg.Logger = l
		return nil
	}
}
