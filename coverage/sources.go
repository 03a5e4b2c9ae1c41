package coverage

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/erraggy/specdelta/specerrors"
)

// maxConcurrentReads bounds the number of source files read at once
const maxConcurrentReads = 8

// Sources is the generated source text gathered from one or more files.
type Sources struct {
	// Files lists the matched files in the order they were concatenated
	Files []string
	// Text is the concatenation of every file, separated by newlines
	Text string
	// Size is the total number of bytes read
	Size int64
}

// CollectSources expands each pattern (doublestar syntax, so "src/**/*.rs"
// matches recursively; a plain path matches itself) and reads every match.
// Files are concatenated in sorted path order so the result does not depend
// on read scheduling. Matching no files at all is a configuration error.
func CollectSources(ctx context.Context, patterns ...string) (*Sources, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, &specerrors.ConfigError{Option: "sources", Value: pattern, Message: "invalid glob pattern", Cause: err}
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, &specerrors.ConfigError{
			Option:  "sources",
			Value:   strings.Join(patterns, ", "),
			Message: "no source files matched",
		}
	}
	slices.Sort(files)

	contents := make([][]byte, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("coverage: reading %s: %w", path, err)
			}
			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	var size int64
	for i, data := range contents {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(data)
		size += int64(len(data))
	}
	return &Sources{Files: files, Text: sb.String(), Size: size}, nil
}
