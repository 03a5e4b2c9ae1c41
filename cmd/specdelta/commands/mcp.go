package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/specdelta/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: specdelta mcp\n\n")
		Writef(fs.Output(), "Serve the diff, coverage, and inspect tools over the Model Context\n")
		Writef(fs.Output(), "Protocol on stdin/stdout.\n\n")
		Writef(fs.Output(), "Environment:\n")
		Writef(fs.Output(), "  SPECDELTA_CACHE_ENABLED      cache loaded snapshots (default true)\n")
		Writef(fs.Output(), "  SPECDELTA_CACHE_MAX_SIZE     maximum cached snapshots (default 16)\n")
		Writef(fs.Output(), "  SPECDELTA_CACHE_TTL          cache entry lifetime (default 15m)\n")
		Writef(fs.Output(), "  SPECDELTA_MAX_INLINE_SIZE    maximum inline content bytes (default 10MiB)\n")
		Writef(fs.Output(), "  SPECDELTA_ALLOW_PRIVATE_IPS  allow URL inputs on private networks\n")
		Writef(fs.Output(), "  SPECDELTA_COVERAGE_IGNORED   default ignore list, '-' for none\n")
		Writef(fs.Output(), "  SPECDELTA_STRICT_LOADING     reject unreadable snapshots\n")
	}
	return fs
}

// HandleMCP runs the MCP server until ctx is canceled or the client disconnects.
func HandleMCP(ctx context.Context, args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}
	return mcpserver.Run(ctx)
}
