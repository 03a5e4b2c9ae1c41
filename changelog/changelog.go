package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/erraggy/specdelta/differ"
	"github.com/erraggy/specdelta/internal/fileutil"
)

// Separator divides the changelog header from its entries
const Separator = "---\n"

// DefaultHeader starts a changelog that does not exist yet
const DefaultHeader = "# Changelog\n\nAll notable changes to this project are documented in this file.\n\n" + Separator

// Info describes the release an entry is written for
type Info struct {
	// ReleaseVersion is the version of the released artifact (e.g., "0.5.0")
	ReleaseVersion string
	// APIVersion is the schema version the release targets (e.g., "7.1")
	APIVersion string
	// Date is the release date; empty omits it from the heading
	Date string
}

func (i Info) heading() string {
	if i.Date == "" {
		return fmt.Sprintf("## [%s]", i.ReleaseVersion)
	}
	return fmt.Sprintf("## [%s] - %s", i.ReleaseVersion, i.Date)
}

// Entry returns the Markdown changelog entry for a release. A nil diff
// produces a generic update line. Removed names are struck through and the
// entry ends with a Separator rule.
func Entry(info Info, diff *differ.DiffResult) string {
	var sb strings.Builder
	sb.WriteString(info.heading())
	sb.WriteString("\n\n")

	switch {
	case diff == nil:
		fmt.Fprintf(&sb, "- Updated to API %s\n", info.APIVersion)
	case diff.IsEmpty():
		fmt.Fprintf(&sb, "### API %s\n\n", info.APIVersion)
		sb.WriteString("- No schema changes\n")
	default:
		fmt.Fprintf(&sb, "### API %s\n\n", info.APIVersion)
		writeSections(&sb, diff)
	}
	return strings.TrimRight(sb.String(), "\n") + "\n\n" + Separator
}

func writeSections(sb *strings.Builder, diff *differ.DiffResult) {
	sections := []struct {
		title   string
		names   []string
		removed bool
	}{
		{"New Types", diff.AddedEntities, false},
		{"Removed Types", diff.RemovedEntities, true},
		{"New Methods", diff.AddedOperations, false},
		{"Removed Methods", diff.RemovedOperations, true},
	}
	for _, s := range sections {
		if len(s.names) == 0 {
			continue
		}
		fmt.Fprintf(sb, "#### %s\n\n", s.title)
		for _, name := range s.names {
			if s.removed {
				fmt.Fprintf(sb, "- ~~`%s`~~\n", name)
			} else {
				fmt.Fprintf(sb, "- `%s`\n", name)
			}
		}
		sb.WriteString("\n")
	}

	if len(diff.ChangedEntities) > 0 || len(diff.ChangedOperations) > 0 {
		sb.WriteString("#### Changed\n\n")
		if n := len(diff.ChangedEntities); n > 0 {
			fmt.Fprintf(sb, "- %d %s changed\n", n, plural(n, "type", "types"))
		}
		if n := len(diff.ChangedOperations); n > 0 {
			fmt.Fprintf(sb, "- %d %s changed\n", n, plural(n, "method", "methods"))
		}
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Prepend inserts entry into an existing changelog directly after the first
// separator line. A changelog without a separator gets header (DefaultHeader
// when empty) placed in front.
func Prepend(existing, entry, header string) string {
	entry = strings.TrimRight(entry, "\n") + "\n"
	if idx := strings.Index(existing, Separator); idx >= 0 {
		cut := idx + len(Separator)
		rest := strings.TrimLeft(existing[cut:], "\n")
		if rest == "" {
			return existing[:cut] + "\n" + entry
		}
		return existing[:cut] + "\n" + entry + "\n" + rest
	}

	if header == "" {
		header = DefaultHeader
	}
	header = strings.TrimRight(header, "\n") + "\n"
	out := header + "\n" + entry
	if existing = strings.TrimLeft(existing, "\n"); existing != "" {
		out += "\n" + existing
	}
	return out
}

// UpdateFile prepends entry to the changelog at path, creating the file with
// DefaultHeader when it does not exist.
func UpdateFile(path, entry string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("changelog: reading %s: %w", path, err)
	}
	updated := Prepend(string(existing), entry, DefaultHeader)
	if err := os.WriteFile(path, []byte(updated), fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("changelog: writing %s: %w", path, err)
	}
	return nil
}

// ReleaseNotes returns release notes built from a changelog entry: a title
// naming both versions followed by the entry body without its heading or
// trailing separator.
func ReleaseNotes(info Info, entry string) string {
	body := entry
	if strings.HasPrefix(body, "## ") {
		if nl := strings.IndexByte(body, '\n'); nl >= 0 {
			body = body[nl+1:]
		} else {
			body = ""
		}
	}
	body = strings.Trim(body, "\n")
	body = strings.TrimSuffix(body, strings.TrimSuffix(Separator, "\n"))
	body = strings.Trim(body, "\n")

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Release %s\n\n", info.ReleaseVersion)
	fmt.Fprintf(&sb, "Targets API version %s.\n", info.APIVersion)
	if body != "" {
		sb.WriteString("\n")
		sb.WriteString(body)
		sb.WriteString("\n")
	}
	return sb.String()
}
