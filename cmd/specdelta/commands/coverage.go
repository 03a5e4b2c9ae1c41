package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/erraggy/specdelta/coverage"
	"github.com/erraggy/specdelta/report"
)

// CoverageFlags contains flags for the coverage and validate commands
type CoverageFlags struct {
	Format        string
	Markdown      bool
	Output        string
	Ignore        string
	Profile       string
	StructMarker  string
	EnumMarker    string
	VariantMarker string
	FieldMarker   string
	FnPattern     string
	Separator     string
	CheckFields   bool
	Strict        bool
}

func setupCoverageFlags(name string, withCheckFields bool) (*flag.FlagSet, *CoverageFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	flags := &CoverageFlags{CheckFields: !withCheckFields}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, markdown, json, or yaml")
	fs.BoolVar(&flags.Markdown, "markdown", false, "shorthand for --format markdown")
	fs.StringVar(&flags.Output, "output", "", "write the report to a file instead of stdout")
	fs.StringVar(&flags.Output, "o", "", "write the report to a file instead of stdout")
	fs.StringVar(&flags.Ignore, "ignore", strings.Join(coverage.DefaultIgnored, ","), "comma separated type names that count as covered")
	fs.StringVar(&flags.Profile, "profile", coverage.ProfileRust, "marker profile: "+strings.Join(coverage.ProfileNames(), ", "))
	fs.StringVar(&flags.StructMarker, "struct-marker", "", "override the struct declaration template (e.g. 'pub struct %s')")
	fs.StringVar(&flags.EnumMarker, "enum-marker", "", "override the union declaration template (e.g. 'pub enum %s')")
	fs.StringVar(&flags.VariantMarker, "variant-marker", "", "override the union variant template (e.g. '%[1]s(%[1]s)')")
	fs.StringVar(&flags.FieldMarker, "field-marker", "", "override the struct field template (e.g. '%s:')")
	fs.StringVar(&flags.FnPattern, "fn-pattern", "", "override the regular expression that extracts method names")
	fs.StringVar(&flags.Separator, "separator", "", "override the word separator of derived method names")
	if withCheckFields {
		fs.BoolVar(&flags.CheckFields, "check-fields", false, "warn about struct fields missing from the source")
	}
	fs.BoolVar(&flags.Strict, "strict", false, "also require types and required on every field of the schema")

	return fs, flags
}

// SetupCoverageFlags creates and configures a FlagSet for the coverage command.
func SetupCoverageFlags() (*flag.FlagSet, *CoverageFlags) {
	fs, flags := setupCoverageFlags("coverage", true)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: specdelta coverage [flags] <schema> <source-glob>...\n\n")
		Writef(fs.Output(), "Report which types, union variants, and methods of a schema snapshot\n")
		Writef(fs.Output(), "are declared in generated source files.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  specdelta coverage api.json 'src/**/*.rs'\n")
		Writef(fs.Output(), "  specdelta coverage --markdown -o coverage.md api.json src/types.rs src/methods.rs\n")
		Writef(fs.Output(), "  specdelta coverage --ignore '' --check-fields api.json 'src/**/*.rs'\n")
		Writef(fs.Output(), "\nExit Status:\n")
		Writef(fs.Output(), "  0    Every type, variant, and method was found\n")
		Writef(fs.Output(), "  1    Error, or at least one declaration is missing\n")
	}
	return fs, flags
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
func SetupValidateFlags() (*flag.FlagSet, *CoverageFlags) {
	fs, flags := setupCoverageFlags("validate", false)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: specdelta validate [flags] <schema> <source-glob>...\n\n")
		Writef(fs.Output(), "Check generated source files against a schema snapshot. Missing types,\n")
		Writef(fs.Output(), "variants, and methods are errors; missing struct fields are warnings.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  specdelta validate api.json 'src/**/*.rs'\n")
		Writef(fs.Output(), "\nExit Status:\n")
		Writef(fs.Output(), "  0    Validation passed (warnings allowed)\n")
		Writef(fs.Output(), "  1    Error, or at least one declaration is missing\n")
	}
	return fs, flags
}

// BuildProfile resolves the named profile and applies any marker overrides.
func (f *CoverageFlags) BuildProfile() (coverage.Profile, error) {
	p, err := coverage.LookupProfile(f.Profile)
	if err != nil {
		return coverage.Profile{}, err
	}
	overrides := []struct {
		value  string
		target *string
	}{
		{f.StructMarker, &p.StructMarker},
		{f.EnumMarker, &p.UnionMarker},
		{f.VariantMarker, &p.VariantMarker},
		{f.FieldMarker, &p.FieldMarker},
		{f.FnPattern, &p.CallablePattern},
		{f.Separator, &p.Separator},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.target = o.value
		}
	}
	if err := p.Validate(); err != nil {
		return coverage.Profile{}, err
	}
	return p, nil
}

// HandleCoverage executes the coverage command
func HandleCoverage(ctx context.Context, args []string, stdout io.Writer) error {
	fs, flags := SetupCoverageFlags()
	return runCoverage(ctx, fs, flags, args, stdout)
}

// HandleValidate executes the validate command
func HandleValidate(ctx context.Context, args []string, stdout io.Writer) error {
	fs, flags := SetupValidateFlags()
	return runCoverage(ctx, fs, flags, args, stdout)
}

func runCoverage(ctx context.Context, fs *flag.FlagSet, flags *CoverageFlags, args []string, stdout io.Writer) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("%s command requires a schema and at least one source file or glob", fs.Name())
	}
	schemaPath, patterns := fs.Arg(0), fs.Args()[1:]

	if flags.Markdown {
		flags.Format = FormatMarkdown
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	profile, err := flags.BuildProfile()
	if err != nil {
		return err
	}

	r, err := coverage.ValidateWithOptions(ctx,
		coverage.WithSchemaFilePath(schemaPath),
		coverage.WithSourcePatterns(patterns...),
		coverage.WithProfile(profile),
		coverage.WithIgnored(splitList(flags.Ignore)...),
		coverage.WithCheckFields(flags.CheckFields),
		coverage.WithStrictLoading(flags.Strict),
		coverage.WithLogger(logger()),
	)
	if err != nil {
		return fmt.Errorf("checking coverage: %w", err)
	}

	out, closeOut, err := openOutput(stdout, flags.Output, append([]string{schemaPath}, patterns...))
	if err != nil {
		return err
	}
	if err := writeCoverage(out, r, flags.Format); err != nil {
		_ = closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("commands: closing output file: %w", err)
	}

	if !r.Passed {
		return ErrCheckFailed
	}
	return nil
}

func writeCoverage(w io.Writer, r *coverage.Report, format string) error {
	switch format {
	case FormatMarkdown:
		return report.CoverageMarkdown(w, r)
	case FormatJSON, FormatYAML:
		return OutputStructured(w, r, format)
	default:
		return report.CoverageText(w, r)
	}
}
