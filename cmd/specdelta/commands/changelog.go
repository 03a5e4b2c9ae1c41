package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/erraggy/specdelta/changelog"
	"github.com/erraggy/specdelta/differ"
	"github.com/erraggy/specdelta/internal/fileutil"
)

// ChangelogFlags contains flags for the changelog command
type ChangelogFlags struct {
	Release string
	API     string
	Date    string
	Diff    string
	Old     string
	New     string
	Notes   string
	DryRun  bool
}

// SetupChangelogFlags creates and configures a FlagSet for the changelog command.
func SetupChangelogFlags() (*flag.FlagSet, *ChangelogFlags) {
	fs := flag.NewFlagSet("changelog", flag.ContinueOnError)
	flags := &ChangelogFlags{}

	fs.StringVar(&flags.Release, "release", "", "release version of the entry (required)")
	fs.StringVar(&flags.API, "api", "", "API version the release targets (default: new version of the diff)")
	fs.StringVar(&flags.Date, "date", time.Now().Format(time.DateOnly), "release date, empty to omit")
	fs.StringVar(&flags.Diff, "diff", "", "JSON diff report written by 'specdelta diff --format json'")
	fs.StringVar(&flags.Old, "old", "", "old snapshot to diff instead of reading --diff")
	fs.StringVar(&flags.New, "new", "", "new snapshot to diff instead of reading --diff")
	fs.StringVar(&flags.Notes, "notes", "", "also write release notes to this file")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "print the entry instead of updating the changelog")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: specdelta changelog [flags] <CHANGELOG.md>\n\n")
		Writef(fs.Output(), "Prepend a release entry summarizing schema changes to a changelog.\n")
		Writef(fs.Output(), "The file is created when it does not exist.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  specdelta changelog --release 0.5.0 --diff diff_report.json CHANGELOG.md\n")
		Writef(fs.Output(), "  specdelta changelog --release 0.5.0 --old api-v1.json --new api-v2.json --notes RELEASE.md CHANGELOG.md\n")
		Writef(fs.Output(), "  specdelta changelog --release 0.5.1 --api 7.1 --dry-run CHANGELOG.md\n")
	}

	return fs, flags
}

// HandleChangelog executes the changelog command
func HandleChangelog(args []string, stdout io.Writer) error {
	fs, flags := SetupChangelogFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("changelog command requires exactly one changelog path")
	}
	path := filepath.Clean(fs.Arg(0))

	if flags.Release == "" {
		return fmt.Errorf("changelog command requires --release")
	}
	if flags.Diff != "" && (flags.Old != "" || flags.New != "") {
		return fmt.Errorf("use either --diff or --old/--new, not both")
	}
	if (flags.Old == "") != (flags.New == "") {
		return fmt.Errorf("--old and --new must be used together")
	}

	diff, err := loadChangelogDiff(flags)
	if err != nil {
		return err
	}

	info := changelog.Info{ReleaseVersion: flags.Release, APIVersion: flags.API, Date: flags.Date}
	if info.APIVersion == "" && diff != nil {
		info.APIVersion = diff.NewVersion
	}
	if info.APIVersion == "" {
		return fmt.Errorf("changelog command requires --api when no diff is given")
	}

	entry := changelog.Entry(info, diff)
	if flags.DryRun {
		Writef(stdout, "%s", entry)
		return nil
	}

	if err := RejectSymlinkOutput(path); err != nil {
		return err
	}
	if err := changelog.UpdateFile(path, entry); err != nil {
		return err
	}
	Writef(stdout, "Updated %s for release %s (API %s)\n", path, info.ReleaseVersion, info.APIVersion)

	if flags.Notes != "" {
		notesPath := filepath.Clean(flags.Notes)
		if err := RejectSymlinkOutput(notesPath); err != nil {
			return err
		}
		notes := changelog.ReleaseNotes(info, entry)
		if err := os.WriteFile(notesPath, []byte(notes), fileutil.ReadableByAll); err != nil {
			return fmt.Errorf("commands: writing release notes: %w", err)
		}
		Writef(stdout, "Wrote release notes to %s\n", notesPath)
	}
	return nil
}

// loadChangelogDiff returns the diff named by the flags, or nil when there is none.
func loadChangelogDiff(flags *ChangelogFlags) (*differ.DiffResult, error) {
	switch {
	case flags.Diff != "":
		data, err := os.ReadFile(flags.Diff)
		if err != nil {
			return nil, fmt.Errorf("reading diff report: %w", err)
		}
		var diff differ.DiffResult
		if err := json.Unmarshal(data, &diff); err != nil {
			return nil, fmt.Errorf("decoding diff report %s: %w", flags.Diff, err)
		}
		return &diff, nil
	case flags.Old != "":
		diff, err := differ.DiffWithOptions(
			differ.WithSourceFilePath(flags.Old),
			differ.WithTargetFilePath(flags.New),
			differ.WithLogger(logger()),
		)
		if err != nil {
			return nil, fmt.Errorf("comparing snapshots: %w", err)
		}
		return diff, nil
	default:
		return nil, nil
	}
}
