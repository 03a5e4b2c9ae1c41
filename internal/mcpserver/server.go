// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes specdelta capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/specdelta"
)

const serverInstructions = `specdelta MCP server: diffs API schema snapshots, checks generated code coverage, and summarizes snapshots.

Configuration: All defaults are configurable via SPECDELTA_* environment variables set in your MCP client config.

Key settings:
- SPECDELTA_CACHE_ENABLED (default: true): disable snapshot caching entirely
- SPECDELTA_CACHE_MAX_SIZE (default: 16): maximum number of cached snapshots
- SPECDELTA_CACHE_TTL (default: 15m): how long a cached snapshot is reused
- SPECDELTA_MAX_INLINE_SIZE (default: 10MiB): maximum inline content size
- SPECDELTA_COVERAGE_IGNORED (default: InputFile,InputMedia): entities the coverage tool skips
- SPECDELTA_STRICT_LOADING (default: false): reject unreadable snapshots instead of treating them as empty

Caching: Loaded snapshots are cached per session. File entries use path+mtime as key (auto-invalidated on change). Content entries are keyed by a hash of the content.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "specdelta", Version: specdelta.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff",
		Description: "Compare two versions of an API schema snapshot (types and methods). Returns added, removed, and changed types and methods with per-field change descriptions. Set breaking=true to classify changes by severity (critical, error, warning, info); use no_info with breaking to drop informational changes. Both old and new must be provided; a missing or unreadable snapshot is treated as empty.",
	}, handleDiff)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "coverage",
		Description: "Check that generated source code declares every type, union variant, and method of a schema snapshot. Markers are derived from names (e.g. 'pub struct User', 'pub enum MessageOrigin', 'pub async fn send_message' for the Rust profile). Provide the source inline via source, or as glob patterns via source_files. This is a presence check, not a parse: passed=true means every expected declaration was found.",
	}, handleCoverage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Summarize a schema snapshot: version, release date, and counts of types by kind (struct, union, marker), methods, fields, and parameters. Set names=true to also list type and method names.",
	}, handleInspect)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
