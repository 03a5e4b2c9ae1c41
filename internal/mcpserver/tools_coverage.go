package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/specdelta/coverage"
)

type coverageInput struct {
	Spec        specInput `json:"spec"                   jsonschema:"The schema snapshot to check against"`
	Source      string    `json:"source,omitempty"       jsonschema:"Inline generated source text"`
	SourceFiles []string  `json:"source_files,omitempty" jsonschema:"Glob patterns for generated source files (supports **)"`
	Ignored     []string  `json:"ignored,omitempty"      jsonschema:"Entity names to skip (default from SPECDELTA_COVERAGE_IGNORED)"`
	CheckFields bool      `json:"check_fields,omitempty" jsonschema:"Warn about struct fields not found in the source"`
}

type coverageTally struct {
	Covered int `json:"covered"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

func newCoverageTally(t coverage.Tally) coverageTally {
	return coverageTally{Covered: t.Covered, Total: t.Total, Percent: t.Percent()}
}

type coverageFinding struct {
	Severity string `json:"severity"`
	Kind     string `json:"kind"`
	Path     string `json:"path"`
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
}

type coverageOutput struct {
	Passed     bool              `json:"passed"`
	Version    string            `json:"version"`
	Profile    string            `json:"profile"`
	Strategy   string            `json:"strategy"`
	Entities   coverageTally     `json:"entities"`
	Variants   coverageTally     `json:"variants"`
	Operations coverageTally     `json:"operations"`
	Findings   []coverageFinding `json:"findings,omitempty"`
	Summary    string            `json:"summary"`
}

func handleCoverage(ctx context.Context, _ *mcp.CallToolRequest, input coverageInput) (*mcp.CallToolResult, coverageOutput, error) {
	hasText, hasFiles := input.Source != "", len(input.SourceFiles) > 0
	if hasText == hasFiles {
		return errResult(fmt.Errorf("exactly one of source or source_files must be provided")), coverageOutput{}, nil
	}

	loaded, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), coverageOutput{}, nil
	}
	if loaded.Degraded {
		return errResult(fmt.Errorf("schema could not be loaded: %s", strings.Join(loaded.Warnings, "; "))), coverageOutput{}, nil
	}

	source := input.Source
	if hasFiles {
		src, err := coverage.CollectSources(ctx, input.SourceFiles...)
		if err != nil {
			return errResult(err), coverageOutput{}, nil
		}
		source = src.Text
	}

	r := coverage.Validate(loaded.Snapshot, source, coverage.Config{
		Profile:     coverage.RustProfile(),
		Ignored:     ignoredEntities(input.Ignored),
		CheckFields: input.CheckFields,
	})

	output := coverageOutput{
		Passed:     r.Passed,
		Version:    r.Version,
		Profile:    r.Profile,
		Strategy:   string(r.Strategy),
		Entities:   newCoverageTally(r.Entities),
		Variants:   newCoverageTally(r.Variants),
		Operations: newCoverageTally(r.Operations),
		Findings:   makeSlice[coverageFinding](len(r.Findings)),
	}
	for _, f := range r.Findings {
		output.Findings = append(output.Findings, coverageFinding{
			Severity: f.Severity.String(),
			Kind:     string(f.Kind),
			Path:     f.Path,
			Message:  f.Message,
			Expected: f.Expected,
		})
	}
	output.Summary = buildCoverageSummary(r)
	return nil, output, nil
}

// ignoredEntities returns the request's ignore list, or the server default.
func ignoredEntities(requested []string) []string {
	if len(requested) > 0 {
		return requested
	}
	return cfg.CoverageIgnored
}

func buildCoverageSummary(r *coverage.Report) string {
	if r.Passed {
		return fmt.Sprintf("All declarations found (%d entities, %d operations).", r.Entities.Total, r.Operations.Total)
	}
	return fmt.Sprintf("Coverage failed: %s missing.", formatCount(r.ErrorCount, "declaration"))
}
