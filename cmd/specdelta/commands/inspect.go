package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/erraggy/specdelta"
	"github.com/erraggy/specdelta/schema"
)

// InspectFlags contains flags for the inspect command
type InspectFlags struct {
	Format string
	Names  bool
	Strict bool
}

// InspectSummary is the structured output of the inspect command
type InspectSummary struct {
	Source      string               `json:"source"       yaml:"source"`
	Version     string               `json:"version"      yaml:"version"`
	ReleaseDate string               `json:"release_date" yaml:"release_date"`
	Format      string               `json:"format"       yaml:"format"`
	SizeBytes   int64                `json:"size_bytes"   yaml:"size_bytes"`
	Fingerprint string               `json:"fingerprint"  yaml:"fingerprint"`
	Degraded    bool                 `json:"degraded"     yaml:"degraded"`
	Stats       schema.DocumentStats `json:"stats"        yaml:"stats"`
	Types       []string             `json:"types,omitempty"   yaml:"types,omitempty"`
	Methods     []string             `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// SetupInspectFlags creates and configures a FlagSet for the inspect command.
func SetupInspectFlags() (*flag.FlagSet, *InspectFlags) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	flags := &InspectFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Names, "names", false, "list type and method names")
	fs.BoolVar(&flags.Strict, "strict", false, "fail on an unreadable or malformed snapshot")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: specdelta inspect [flags] <file|url|->\n\n")
		Writef(fs.Output(), "Summarize a schema snapshot: version, release date, and counts of\n")
		Writef(fs.Output(), "types by kind, methods, fields, and parameters.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  specdelta inspect api.json\n")
		Writef(fs.Output(), "  specdelta inspect --strict --format json api.yaml\n")
		Writef(fs.Output(), "  cat api.json | specdelta inspect -\n")
	}

	return fs, flags
}

// HandleInspect executes the inspect command
func HandleInspect(args []string, stdout io.Writer) error {
	fs, flags := SetupInspectFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("inspect command requires exactly one file path, URL, or '-'")
	}
	if flags.Format == FormatMarkdown {
		return fmt.Errorf("inspect does not support markdown output")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	path := fs.Arg(0)
	loader := schema.NewLoader()
	loader.Strict = flags.Strict
	loader.UserAgent = specdelta.UserAgent()
	loader.Logger = logger()

	result, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	printWarnings(displayPath(path), result.Warnings)

	snap := result.Snapshot
	summary := InspectSummary{
		Source:      displayPath(path),
		Version:     snap.Version,
		ReleaseDate: snap.ReleaseDate,
		Format:      string(result.SourceFormat),
		SizeBytes:   result.SourceSize,
		Fingerprint: fmt.Sprintf("%016x", result.Fingerprint),
		Degraded:    result.Degraded,
		Stats:       snap.Stats(),
	}
	if flags.Names {
		summary.Types = snap.EntityNames()
		summary.Methods = snap.OperationNames()
	}

	if flags.Format != FormatText {
		return OutputStructured(stdout, summary, flags.Format)
	}
	writeInspectText(stdout, summary, result)
	return nil
}

func writeInspectText(w io.Writer, s InspectSummary, result *schema.LoadResult) {
	Writef(w, "API Schema Snapshot\n")
	Writef(w, "===================\n\n")
	Writef(w, "Source:       %s\n", s.Source)
	Writef(w, "Version:      %s\n", s.Version)
	if s.ReleaseDate != "" {
		Writef(w, "Release Date: %s\n", s.ReleaseDate)
	}
	Writef(w, "Format:       %s\n", s.Format)
	Writef(w, "Size:         %s\n", schema.FormatBytes(s.SizeBytes))
	Writef(w, "Fingerprint:  %s\n", s.Fingerprint)
	Writef(w, "Load Time:    %v\n\n", result.LoadTime)

	Writef(w, "Types:      %d (%d struct, %d union, %d marker)\n",
		s.Stats.EntityCount, s.Stats.StructCount, s.Stats.UnionCount, s.Stats.MarkerCount)
	Writef(w, "Fields:     %d\n", s.Stats.FieldCount)
	Writef(w, "Methods:    %d\n", s.Stats.OperationCount)
	Writef(w, "Parameters: %d\n", s.Stats.ParameterCount)

	if s.Degraded {
		Writef(w, "\n⚠ Snapshot could not be read and was treated as empty\n")
	}
	if len(s.Types) > 0 {
		Writef(w, "\nTypes:\n")
		for _, name := range s.Types {
			Writef(w, "  %s\n", name)
		}
	}
	if len(s.Methods) > 0 {
		Writef(w, "\nMethods:\n")
		for _, name := range s.Methods {
			Writef(w, "  %s\n", name)
		}
	}
}

// displayPath returns "<stdin>" for the stdin marker and the path otherwise.
func displayPath(path string) string {
	if path == schema.StdinPath {
		return "<stdin>"
	}
	return path
}
