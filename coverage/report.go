package coverage

import (
	"github.com/erraggy/specdelta/internal/issues"
	"github.com/erraggy/specdelta/schema"
)

// Strategy names how a report's findings were established
type Strategy string

// StrategyPresence marks findings based on textual presence of derived
// markers, a lower-confidence check than structural comparison.
const StrategyPresence Strategy = "presence"

// Tally counts covered items out of a total
type Tally struct {
	Covered int `json:"covered" yaml:"covered"`
	Total   int `json:"total" yaml:"total"`
}

// Percent returns the covered share as a whole percentage, rounded down.
// An empty tally is fully covered.
func (t Tally) Percent() int {
	if t.Total == 0 {
		return 100
	}
	return t.Covered * 100 / t.Total
}

// Missing returns the number of uncovered items.
func (t Tally) Missing() int {
	return t.Total - t.Covered
}

// Categories breaks entity coverage down by entity kind
type Categories struct {
	Struct Tally `json:"struct" yaml:"struct"`
	Union  Tally `json:"union" yaml:"union"`
	Marker Tally `json:"marker" yaml:"marker"`
}

func (c *Categories) tally(kind schema.Kind) *Tally {
	switch kind {
	case schema.KindUnion:
		return &c.Union
	case schema.KindMarker:
		return &c.Marker
	default:
		return &c.Struct
	}
}

// MissingOperation is an operation whose derived callable was not declared
type MissingOperation struct {
	// Name is the operation name from the schema
	Name string `json:"name" yaml:"name"`
	// Expected is the derived callable name that was searched for
	Expected string `json:"expected" yaml:"expected"`
}

// MissingVariant is a union member without a wrapping declaration
type MissingVariant struct {
	Entity  string `json:"entity" yaml:"entity"`
	Variant string `json:"variant" yaml:"variant"`
}

// Report contains the results of one coverage validation.
type Report struct {
	// Strategy is always StrategyPresence
	Strategy Strategy `json:"strategy" yaml:"strategy"`
	// Profile is the name of the marker profile used
	Profile string `json:"profile" yaml:"profile"`
	// Version is the snapshot version
	Version string `json:"version" yaml:"version"`
	// Entities counts covered entities, ignored ones included
	Entities Tally `json:"entities" yaml:"entities"`
	// Operations counts covered operations
	Operations Tally `json:"operations" yaml:"operations"`
	// Variants counts covered union members
	Variants Tally `json:"variants" yaml:"variants"`
	// Categories breaks Entities down by kind
	Categories Categories `json:"categories" yaml:"categories"`
	// Ignored lists the ignored entities present in the snapshot, sorted
	Ignored []string `json:"ignored" yaml:"ignored"`
	// MissingEntities lists entities without a declaration, sorted
	MissingEntities []string `json:"missing_entities" yaml:"missing_entities"`
	// MissingOperations lists operations without a callable, sorted by name
	MissingOperations []MissingOperation `json:"missing_operations" yaml:"missing_operations"`
	// MissingVariants lists union members without a declaration, sorted
	MissingVariants []MissingVariant `json:"missing_variants" yaml:"missing_variants"`
	// Findings holds one issue per missing item and per field warning
	Findings []issues.Issue `json:"findings" yaml:"findings"`
	// ErrorCount is the number of failing findings
	ErrorCount int `json:"error_count" yaml:"error_count"`
	// WarningCount is the number of warnings
	WarningCount int `json:"warning_count" yaml:"warning_count"`
	// Passed is false whenever any entity, operation, or variant is missing
	Passed bool `json:"passed" yaml:"passed"`
}

// Errors returns the failing findings.
func (r *Report) Errors() []issues.Issue {
	return r.filter(true)
}

// Warnings returns the non-failing findings.
func (r *Report) Warnings() []issues.Issue {
	return r.filter(false)
}

func (r *Report) filter(failures bool) []issues.Issue {
	var out []issues.Issue
	for _, f := range r.Findings {
		if f.IsFailure() == failures {
			out = append(out, f)
		}
	}
	return out
}
