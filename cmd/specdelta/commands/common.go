// Package commands provides CLI command handlers for specdelta.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/erraggy/specdelta/internal/fileutil"
	"github.com/erraggy/specdelta/report"
	"github.com/erraggy/specdelta/schema"
)

// Output format constants
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// ReportFormats lists every format a report command can produce.
var ReportFormats = []string{FormatText, FormatMarkdown, FormatJSON, FormatYAML}

// ErrCheckFailed reports that a command produced its output but the check it
// performs did not pass. The caller exits with status 1 without printing it.
var ErrCheckFailed = errors.New("check failed")

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if !slices.Contains(ReportFormats, format) {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s", format, strings.Join(ReportFormats, ", "))
	}
	return nil
}

// OutputStructured writes data in the specified format (json or yaml).
// JSON output is canonical so reports are byte-reproducible.
func OutputStructured(w io.Writer, data any, format string) error {
	switch format {
	case FormatJSON:
		return report.WriteJSON(w, data)
	case FormatYAML:
		return report.WriteYAML(w, data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// ValidateOutputPath rejects an output path that would overwrite one of the inputs.
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	for _, inputPath := range inputPaths {
		if schema.IsURL(inputPath) || inputPath == schema.StdinPath {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}
	return nil
}

// openOutput returns stdout when path is empty, otherwise a freshly created
// file. The returned close function must always be called.
func openOutput(stdout io.Writer, path string, inputs []string) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	cleaned := filepath.Clean(path)
	if err := ValidateOutputPath(cleaned, inputs); err != nil {
		return nil, nil, err
	}
	if err := RejectSymlinkOutput(cleaned); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cleaned, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileutil.OwnerReadWrite)
	if err != nil {
		return nil, nil, fmt.Errorf("commands: creating output file: %w", err)
	}
	return f, f.Close, nil
}

// splitList splits a comma separated flag value, dropping blanks.
func splitList(value string) []string {
	out := []string{}
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// logger returns the process-wide slog logger as a schema.Logger.
func logger() schema.Logger {
	return schema.NewSlogAdapter(slog.Default())
}

// printWarnings writes loader warnings to stderr so they never mix with a report on stdout.
func printWarnings(label string, warnings []string) {
	for _, w := range warnings {
		Writef(os.Stderr, "Warning: %s: %s\n", label, w)
	}
}

// Writef writes formatted output to w, reporting a failed write on stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
