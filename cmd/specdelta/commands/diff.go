package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/erraggy/specdelta"
	"github.com/erraggy/specdelta/differ"
	"github.com/erraggy/specdelta/report"
)

// Breaking rule presets accepted by --rules
const (
	RulesDefault = "default"
	RulesStrict  = "strict"
	RulesLenient = "lenient"
)

// DiffFlags contains flags for the diff command
type DiffFlags struct {
	Format               string
	Output               string
	Breaking             bool
	NoInfo               bool
	Strict               bool
	FailOnBreaking       bool
	Rules                string
	AllowDuplicateFields bool
}

// SetupDiffFlags creates and configures a FlagSet for the diff command.
// Returns the FlagSet and a DiffFlags struct with bound flag variables.
func SetupDiffFlags() (*flag.FlagSet, *DiffFlags) {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	flags := &DiffFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, markdown, json, or yaml")
	fs.StringVar(&flags.Output, "output", "", "write the report to a file instead of stdout")
	fs.StringVar(&flags.Output, "o", "", "write the report to a file instead of stdout")
	fs.BoolVar(&flags.Breaking, "breaking", false, "classify changes by severity")
	fs.BoolVar(&flags.NoInfo, "no-info", false, "with --breaking, exclude informational changes from the change list")
	fs.BoolVar(&flags.Strict, "strict", false, "fail on unreadable snapshots instead of treating them as empty")
	fs.BoolVar(&flags.FailOnBreaking, "fail-on-breaking", false, "exit 1 when breaking changes are found (implies --breaking)")
	fs.StringVar(&flags.Rules, "rules", RulesDefault, "breaking rule preset: default, strict, or lenient")
	fs.BoolVar(&flags.AllowDuplicateFields, "allow-duplicate-fields", false, "keep the last of repeated field names instead of failing")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: specdelta diff [flags] <old> <new>\n\n")
		Writef(fs.Output(), "Compare two API schema snapshots (files or URLs) and report added,\n")
		Writef(fs.Output(), "removed, and changed types and methods.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nSeverities (--breaking):\n")
		Writef(fs.Output(), "  Critical: Removed types or methods\n")
		Writef(fs.Output(), "  Error:    Removed fields, changed field types, changed return types\n")
		Writef(fs.Output(), "  Warning:  Fields that became required, removed union variants\n")
		Writef(fs.Output(), "  Info:     Additions, relaxed fields, documentation updates\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  specdelta diff api-v1.json api-v2.json\n")
		Writef(fs.Output(), "  specdelta diff --format json -o diff_report.json api-v1.json api-v2.json\n")
		Writef(fs.Output(), "  specdelta diff --fail-on-breaking --no-info old.yaml new.yaml\n")
		Writef(fs.Output(), "\nExit Status:\n")
		Writef(fs.Output(), "  0    Report produced (a missing snapshot counts as empty)\n")
		Writef(fs.Output(), "  1    Error, or breaking changes found with --fail-on-breaking\n")
	}

	return fs, flags
}

// rulesPreset maps a --rules value to its breaking rules.
func rulesPreset(name string) (*differ.BreakingRulesConfig, error) {
	switch name {
	case RulesDefault, "":
		return differ.DefaultRules(), nil
	case RulesStrict:
		return differ.StrictRules(), nil
	case RulesLenient:
		return differ.LenientRules(), nil
	default:
		return nil, fmt.Errorf("invalid rules '%s'. Valid presets: %s, %s, %s", name, RulesDefault, RulesStrict, RulesLenient)
	}
}

// HandleDiff executes the diff command
func HandleDiff(args []string, stdout io.Writer) error {
	fs, flags := SetupDiffFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("diff command requires exactly two file paths or URLs")
	}
	oldPath, newPath := fs.Arg(0), fs.Arg(1)

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	rules, err := rulesPreset(flags.Rules)
	if err != nil {
		return err
	}

	if flags.FailOnBreaking {
		flags.Breaking = true
	}
	mode := differ.ModeSimple
	if flags.Breaking {
		mode = differ.ModeBreaking
	}
	duplicates := differ.DuplicateReject
	if flags.AllowDuplicateFields {
		duplicates = differ.DuplicateLastWins
	}

	result, err := differ.DiffWithOptions(
		differ.WithSourceFilePath(oldPath),
		differ.WithTargetFilePath(newPath),
		differ.WithMode(mode),
		differ.WithIncludeInfo(!flags.NoInfo),
		differ.WithBreakingRules(rules),
		differ.WithDuplicateFields(duplicates),
		differ.WithStrictLoading(flags.Strict),
		differ.WithUserAgent(specdelta.UserAgent()),
		differ.WithLogger(logger()),
	)
	if err != nil {
		return fmt.Errorf("comparing snapshots: %w", err)
	}

	out, closeOut, err := openOutput(stdout, flags.Output, []string{oldPath, newPath})
	if err != nil {
		return err
	}
	if err := writeDiff(out, result, flags.Format); err != nil {
		_ = closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("commands: closing output file: %w", err)
	}

	if flags.FailOnBreaking && result.HasBreakingChanges {
		return ErrCheckFailed
	}
	return nil
}

func writeDiff(w io.Writer, result *differ.DiffResult, format string) error {
	switch format {
	case FormatMarkdown:
		return report.DiffMarkdown(w, result)
	case FormatJSON, FormatYAML:
		return OutputStructured(w, result, format)
	default:
		return report.DiffText(w, result)
	}
}
