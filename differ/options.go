package differ

import (
	"fmt"

	"github.com/erraggy/specdelta/internal/options"
	"github.com/erraggy/specdelta/schema"
)

// Option is a function that configures a diff operation
type Option func(*diffConfig) error

// diffConfig holds configuration for a diff operation
type diffConfig struct {
	// Input sources (exactly one source and one target must be set)
	sourceFilePath *string
	sourceSnapshot *schema.Snapshot
	targetFilePath *string
	targetSnapshot *schema.Snapshot

	mode            DiffMode
	includeInfo     bool
	duplicateFields DuplicateFieldPolicy
	breakingRules   *BreakingRulesConfig
	strictLoading   bool
	userAgent       string
	logger          schema.Logger
}

// DiffWithOptions compares two snapshots using functional options.
// This combines input source selection and configuration in a single call.
//
// Example:
//
//	result, err := differ.DiffWithOptions(
//	    differ.WithSourceFilePath("api-7.0.json"),
//	    differ.WithTargetFilePath("api-7.1.json"),
//	    differ.WithMode(differ.ModeBreaking),
//	)
func DiffWithOptions(opts ...Option) (*DiffResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("differ: invalid options: %w", err)
	}

	d := &Differ{
		Mode:            cfg.mode,
		IncludeInfo:     cfg.includeInfo,
		DuplicateFields: cfg.duplicateFields,
		BreakingRules:   cfg.breakingRules,
		Logger:          cfg.logger,
	}

	loader := d.loader()
	loader.Strict = cfg.strictLoading
	if cfg.userAgent != "" {
		loader.UserAgent = cfg.userAgent
	}

	source := cfg.sourceSnapshot
	if cfg.sourceFilePath != nil {
		res, err := loader.Load(*cfg.sourceFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load source: %w", err)
		}
		source = res.Snapshot
	}

	target := cfg.targetSnapshot
	if cfg.targetFilePath != nil {
		res, err := loader.Load(*cfg.targetFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load target: %w", err)
		}
		target = res.Snapshot
	}

	return d.DiffSnapshots(source, target)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*diffConfig, error) {
	cfg := &diffConfig{
		mode:        ModeSimple,
		includeInfo: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"source",
		"must specify a source (use WithSourceFilePath or WithSourceSnapshot)",
		"must specify exactly one source",
		cfg.sourceFilePath != nil, cfg.sourceSnapshot != nil,
	); err != nil {
		return nil, err
	}

	if err := options.ValidateSingleInputSource(
		"target",
		"must specify a target (use WithTargetFilePath or WithTargetSnapshot)",
		"must specify exactly one target",
		cfg.targetFilePath != nil, cfg.targetSnapshot != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithSourceFilePath specifies a file path or URL as the old snapshot
func WithSourceFilePath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.sourceFilePath = &path
		return nil
	}
}

// WithSourceSnapshot specifies a loaded snapshot as the old snapshot
func WithSourceSnapshot(s *schema.Snapshot) Option {
	return func(cfg *diffConfig) error {
		if s == nil {
			return fmt.Errorf("source snapshot cannot be nil")
		}
		cfg.sourceSnapshot = s
		return nil
	}
}

// WithTargetFilePath specifies a file path or URL as the new snapshot
func WithTargetFilePath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.targetFilePath = &path
		return nil
	}
}

// WithTargetSnapshot specifies a loaded snapshot as the new snapshot
func WithTargetSnapshot(s *schema.Snapshot) Option {
	return func(cfg *diffConfig) error {
		if s == nil {
			return fmt.Errorf("target snapshot cannot be nil")
		}
		cfg.targetSnapshot = s
		return nil
	}
}

// WithMode sets the diff mode (Simple or Breaking)
// Default: ModeSimple
func WithMode(mode DiffMode) Option {
	return func(cfg *diffConfig) error {
		cfg.mode = mode
		return nil
	}
}

// WithIncludeInfo enables or disables informational changes in ModeBreaking
// Default: true
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *diffConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// WithDuplicateFields selects the repeated-field-name policy
// Default: DuplicateReject
func WithDuplicateFields(policy DuplicateFieldPolicy) Option {
	return func(cfg *diffConfig) error {
		cfg.duplicateFields = policy
		return nil
	}
}

// WithBreakingRules overrides default severities in ModeBreaking
func WithBreakingRules(rules *BreakingRulesConfig) Option {
	return func(cfg *diffConfig) error {
		cfg.breakingRules = rules
		return nil
	}
}

// WithStrictLoading makes unreadable or invalid snapshot files an error
// instead of an empty snapshot
// Default: false
func WithStrictLoading(enabled bool) Option {
	return func(cfg *diffConfig) error {
		cfg.strictLoading = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent string for URL fetches
func WithUserAgent(ua string) Option {
	return func(cfg *diffConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithLogger sets the logger for loading and diffing
func WithLogger(l schema.Logger) Option {
	return func(cfg *diffConfig) error {
		cfg.logger = l
		return nil
	}
}
