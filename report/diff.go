package report

import (
	"io"

	"github.com/erraggy/specdelta/differ"
)

// nameSection is one added or removed name list of a diff
type nameSection struct {
	label  string
	symbol string
	names  []string
}

// changedSection is one changed map of a diff
type changedSection struct {
	label   string
	changes map[string]differ.ChangeSet
}

func diffSections(r *differ.DiffResult) ([]nameSection, []changedSection) {
	names := []nameSection{
		{"added types", "+", r.AddedEntities},
		{"removed types", "-", r.RemovedEntities},
		{"added methods", "+", r.AddedOperations},
		{"removed methods", "-", r.RemovedOperations},
	}
	changed := []changedSection{
		{"changed types", r.ChangedEntities},
		{"changed methods", r.ChangedOperations},
	}
	return names, changed
}

// hasSeverities reports whether the changes carry breaking-mode severities.
// Simple mode marks every change informational.
func hasSeverities(r *differ.DiffResult) bool {
	return r.BreakingCount > 0 || r.WarningCount > 0
}

// DiffText writes a plain-text rendering of r.
func DiffText(w io.Writer, r *differ.DiffResult) error {
	out := &writer{w: w}
	out.printf("API Schema Diff\n")
	out.printf("===============\n\n")
	out.printf("Old: %s (%s)\n", r.OldVersion, orDash(r.OldDate))
	out.printf("New: %s (%s)\n\n", r.NewVersion, orDash(r.NewDate))
	out.printf("Types:   %d -> %d\n", r.Stats.OldEntities, r.Stats.NewEntities)
	out.printf("Methods: %d -> %d\n\n", r.Stats.OldOperations, r.Stats.NewOperations)

	if r.IsEmpty() {
		out.println("✓ No differences found")
		return out.err
	}

	names, changed := diffSections(r)
	for _, s := range names {
		if len(s.names) == 0 {
			continue
		}
		out.printf("%s (%d):\n", title(s.label), len(s.names))
		for _, name := range s.names {
			out.printf("  %s %s\n", s.symbol, name)
		}
		out.println("")
	}
	for _, s := range changed {
		if len(s.changes) == 0 {
			continue
		}
		out.printf("%s (%d):\n", title(s.label), len(s.changes))
		for _, name := range sortedKeys(s.changes) {
			out.printf("  ~ %s\n", name)
			cs := s.changes[name]
			for _, key := range sortedKeys(cs) {
				out.printf("      %s: %s\n", key, cs[key])
			}
		}
		out.println("")
	}

	if hasSeverities(r) {
		out.printf("Changes (%d):\n", len(r.Changes))
		for _, c := range r.Changes {
			out.printf("  %s\n", c.String())
		}
		out.println("")
	}

	out.printf("Summary:\n")
	out.printf("  Total changes: %d\n", len(r.Changes))
	if hasSeverities(r) {
		out.printf("  Breaking: %d, Warnings: %d, Info: %d\n", r.BreakingCount, r.WarningCount, r.InfoCount)
	}
	return out.err
}

// DiffMarkdown writes a Markdown rendering of r.
func DiffMarkdown(w io.Writer, r *differ.DiffResult) error {
	out := &writer{w: w}
	out.printf("# API Schema Diff\n\n")
	out.printf("| | Old | New |\n")
	out.printf("|---|---|---|\n")
	out.printf("| Version | %s | %s |\n", r.OldVersion, r.NewVersion)
	out.printf("| Release date | %s | %s |\n", orDash(r.OldDate), orDash(r.NewDate))
	out.printf("| Types | %d | %d |\n", r.Stats.OldEntities, r.Stats.NewEntities)
	out.printf("| Methods | %d | %d |\n\n", r.Stats.OldOperations, r.Stats.NewOperations)

	if r.IsEmpty() {
		out.println("No differences found.")
		return out.err
	}

	names, changed := diffSections(r)
	for _, s := range names {
		if len(s.names) == 0 {
			continue
		}
		out.printf("## %s\n\n", title(s.label))
		for _, name := range s.names {
			out.printf("- `%s`\n", name)
		}
		out.println("")
	}
	for _, s := range changed {
		if len(s.changes) == 0 {
			continue
		}
		out.printf("## %s\n\n", title(s.label))
		for _, name := range sortedKeys(s.changes) {
			out.printf("### `%s`\n\n", name)
			cs := s.changes[name]
			for _, key := range sortedKeys(cs) {
				out.printf("- **%s**: %s\n", key, cs[key])
			}
			out.println("")
		}
	}

	if hasSeverities(r) {
		out.printf("## Breaking Change Summary\n\n")
		out.printf("| Severity | Count |\n")
		out.printf("|---|---|\n")
		out.printf("| Breaking | %d |\n", r.BreakingCount)
		out.printf("| Warning | %d |\n", r.WarningCount)
		out.printf("| Info | %d |\n", r.InfoCount)
	}
	return out.err
}
