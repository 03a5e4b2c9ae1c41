package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/specdelta"
	"github.com/erraggy/specdelta/cmd/specdelta/commands"
)

// commandNames lists every command for typo suggestions.
var commandNames = []string{"diff", "coverage", "validate", "changelog", "inspect", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("SPECDELTA_LOG_LEVEL")),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1], os.Args[2:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches one command and returns the process exit code.
func run(ctx context.Context, command string, args []string, stdout, stderr io.Writer) int {
	var err error
	switch command {
	case "version", "-v", "--version":
		_, _ = fmt.Fprintf(stdout, "specdelta v%s\n", specdelta.Version())
		return 0
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	case "diff":
		err = commands.HandleDiff(args, stdout)
	case "coverage":
		err = commands.HandleCoverage(ctx, args, stdout)
	case "validate":
		err = commands.HandleValidate(ctx, args, stdout)
	case "changelog":
		err = commands.HandleChangelog(args, stdout)
	case "inspect":
		err = commands.HandleInspect(args, stdout)
	case "mcp":
		err = commands.HandleMCP(ctx, args)
	default:
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			_, _ = fmt.Fprintf(stderr, "Did you mean '%s'?\n", suggestion)
		}
		_, _ = fmt.Fprintln(stderr)
		printUsage(stderr)
		return 1
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, commands.ErrCheckFailed):
		return 1
	default:
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

// logLevel parses SPECDELTA_LOG_LEVEL, defaulting to warn.
func logLevel(value string) slog.Level {
	var level slog.Level
	if value == "" || level.UnmarshalText([]byte(value)) != nil {
		return slog.LevelWarn
	}
	return level
}

// suggestCommand returns the closest command within edit distance 2, or "".
func suggestCommand(input string) string {
	best, bestDistance := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDistance {
			best, bestDistance = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, `specdelta - API schema snapshot tools

Usage:
  specdelta <command> [options]

Commands:
  diff        Compare two schema snapshots and report changes
  coverage    Report how much of a snapshot generated source declares
  validate    Check generated source against a snapshot
  changelog   Prepend a release entry to a changelog
  inspect     Summarize a schema snapshot
  mcp         Serve the tools over the Model Context Protocol (stdio)
  version     Show version information
  help        Show this help message

Examples:
  specdelta diff api-v1.json api-v2.json
  specdelta diff --format json -o diff_report.json api-v1.json api-v2.json
  specdelta coverage --markdown api.json 'src/**/*.rs'
  specdelta validate api.json 'src/**/*.rs'
  specdelta changelog --release 0.5.0 --diff diff_report.json CHANGELOG.md

Environment:
  SPECDELTA_LOG_LEVEL   debug, info, warn (default), or error

Run 'specdelta <command> --help' for more information on a command.`)
}
