package report

import (
	"fmt"
	"io"

	"github.com/erraggy/specdelta/coverage"
)

func tallyText(t coverage.Tally) string {
	return fmt.Sprintf("%d/%d (%d%%)", t.Covered, t.Total, t.Percent())
}

func result(passed bool) string {
	if passed {
		return "PASSED"
	}
	return "FAILED"
}

// CoverageText writes a plain-text rendering of r.
func CoverageText(w io.Writer, r *coverage.Report) error {
	out := &writer{w: w}
	out.printf("Coverage Report (%s strategy, profile %s)\n", r.Strategy, r.Profile)
	out.printf("Schema version: %s\n\n", r.Version)

	out.printf("Entities:   %s\n", tallyText(r.Entities))
	out.printf("  struct:   %s\n", tallyText(r.Categories.Struct))
	out.printf("  union:    %s\n", tallyText(r.Categories.Union))
	out.printf("  marker:   %s\n", tallyText(r.Categories.Marker))
	out.printf("Variants:   %s\n", tallyText(r.Variants))
	out.printf("Operations: %s\n\n", tallyText(r.Operations))

	if len(r.MissingEntities) > 0 {
		out.printf("Missing entities (%d):\n", len(r.MissingEntities))
		for _, name := range r.MissingEntities {
			out.printf("  - %s\n", name)
		}
		out.println("")
	}
	if len(r.MissingVariants) > 0 {
		out.printf("Missing variants (%d):\n", len(r.MissingVariants))
		for _, mv := range r.MissingVariants {
			out.printf("  - %s.%s\n", mv.Entity, mv.Variant)
		}
		out.println("")
	}
	if len(r.MissingOperations) > 0 {
		out.printf("Missing operations (%d):\n", len(r.MissingOperations))
		for _, mo := range r.MissingOperations {
			out.printf("  - %s (expected %s)\n", mo.Name, mo.Expected)
		}
		out.println("")
	}
	if warnings := r.Warnings(); len(warnings) > 0 {
		out.printf("Warnings (%d):\n", len(warnings))
		for _, issue := range warnings {
			out.printf("  %s\n", issue.String())
		}
		out.println("")
	}

	out.printf("Result: %s\n", result(r.Passed))
	return out.err
}

// CoverageMarkdown writes a Markdown rendering of r, including the
// per-category breakdown.
func CoverageMarkdown(w io.Writer, r *coverage.Report) error {
	out := &writer{w: w}
	out.printf("# Coverage Report\n\n")
	out.printf("Schema version **%s**, %s strategy, profile `%s`.\n\n", r.Version, r.Strategy, r.Profile)

	out.printf("| Category | Covered | Total | Percent |\n")
	out.printf("|---|---|---|---|\n")
	rows := []struct {
		label string
		tally coverage.Tally
	}{
		{"entities", r.Entities},
		{"struct types", r.Categories.Struct},
		{"union types", r.Categories.Union},
		{"marker types", r.Categories.Marker},
		{"variants", r.Variants},
		{"operations", r.Operations},
	}
	for _, row := range rows {
		out.printf("| %s | %d | %d | %d%% |\n", title(row.label), row.tally.Covered, row.tally.Total, row.tally.Percent())
	}
	out.println("")

	if len(r.MissingEntities) > 0 {
		out.printf("## %s\n\n", title("missing entities"))
		for _, name := range r.MissingEntities {
			out.printf("- `%s`\n", name)
		}
		out.println("")
	}
	if len(r.MissingVariants) > 0 {
		out.printf("## %s\n\n", title("missing variants"))
		for _, mv := range r.MissingVariants {
			out.printf("- `%s` in `%s`\n", mv.Variant, mv.Entity)
		}
		out.println("")
	}
	if len(r.MissingOperations) > 0 {
		out.printf("## %s\n\n", title("missing operations"))
		for _, mo := range r.MissingOperations {
			out.printf("- `%s` (expected `%s`)\n", mo.Name, mo.Expected)
		}
		out.println("")
	}
	if warnings := r.Warnings(); len(warnings) > 0 {
		out.printf("## %s\n\n", title("warnings"))
		for _, issue := range warnings {
			out.printf("- `%s`: %s\n", issue.Path, issue.Message)
		}
		out.println("")
	}

	out.printf("**Result: %s**\n", result(r.Passed))
	return out.err
}
