package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/erraggy/specdelta"
	"github.com/erraggy/specdelta/specerrors"
)

// DefaultMaxFileSize is the default limit on snapshot document size (10 MiB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// StdinPath is the path that Load treats as standard input.
const StdinPath = "-"

// Loader reads snapshot documents.
type Loader struct {
	// Strict turns unreadable or undecodable input into errors instead of an
	// empty snapshot, and validates documents against SnapshotDocumentSchema.
	// Default: false
	Strict bool
	// AllowDuplicateFields collapses repeated field names so the last
	// declaration wins instead of failing with a MalformedSchemaError.
	// Default: false
	AllowDuplicateFields bool
	// MaxFileSize limits the document size in bytes. Zero means DefaultMaxFileSize.
	MaxFileSize int64
	// UserAgent is sent when fetching URLs. Empty means specdelta.UserAgent().
	UserAgent string
	// HTTPClient is used for URL fetches. Nil means a client with a 30s timeout.
	HTTPClient *http.Client
	// Logger receives debug and warning output. Nil disables logging.
	Logger Logger
}

// NewLoader creates a Loader with default settings
func NewLoader() *Loader {
	return &Loader{
		UserAgent: specdelta.UserAgent(),
	}
}

// LoadResult contains a loaded snapshot and metadata about its source.
type LoadResult struct {
	// Snapshot is the loaded snapshot; Empty() when Degraded
	Snapshot *Snapshot
	// SourcePath is the path, URL, or synthetic name the document was read from
	SourcePath string
	// SourceFormat is the format of the source document
	SourceFormat SourceFormat
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// LoadTime is the time taken to read the source data
	LoadTime time.Duration
	// Fingerprint is the xxhash64 of the raw source bytes
	Fingerprint uint64
	// Degraded is true when the input could not be read or decoded and an
	// empty snapshot was substituted
	Degraded bool
	// Warnings contains non-fatal issues encountered while loading
	Warnings []string
}

func (l *Loader) log() Logger {
	return OrNop(l.Logger)
}

func (l *Loader) maxFileSize() int64 {
	if l.MaxFileSize > 0 {
		return l.MaxFileSize
	}
	return DefaultMaxFileSize
}

// Load reads a snapshot from a local file, an http(s) URL, or StdinPath.
func (l *Loader) Load(path string) (*LoadResult, error) {
	if path == StdinPath {
		res, err := l.loadReader(os.Stdin, "stdin")
		if res != nil {
			res.SourcePath = "stdin"
		}
		return res, err
	}

	var (
		data        []byte
		format      SourceFormat
		err         error
		contentType string
	)
	start := time.Now()
	if IsURL(path) {
		data, contentType, err = l.fetchURL(path)
		format = detectFormatFromURL(path, contentType)
	} else {
		format = detectFormatFromPath(path)
		data, err = l.readFile(path)
	}
	loadTime := time.Since(start)

	res := &LoadResult{SourcePath: path, SourceFormat: format, LoadTime: loadTime}
	if err != nil {
		var limitErr *specerrors.ResourceLimitError
		if errors.As(err, &limitErr) {
			return nil, err
		}
		return l.degrade(res, "failed to read document", err)
	}
	if err := l.checkSize(int64(len(data))); err != nil {
		return nil, err
	}
	return l.decode(res, data)
}

// LoadBytes reads a snapshot from an in-memory document.
// SourcePath is set to LoadBytes.json or LoadBytes.yaml based on the content.
func (l *Loader) LoadBytes(data []byte) (*LoadResult, error) {
	if err := l.checkSize(int64(len(data))); err != nil {
		return nil, err
	}
	format := detectFormatFromContent(data)
	res := &LoadResult{SourcePath: syntheticName("LoadBytes", format), SourceFormat: format}
	return l.decode(res, data)
}

// LoadReader reads a snapshot from r.
// SourcePath is set to LoadReader.json or LoadReader.yaml based on the content.
func (l *Loader) LoadReader(r io.Reader) (*LoadResult, error) {
	return l.loadReader(r, "LoadReader")
}

func (l *Loader) loadReader(r io.Reader, name string) (*LoadResult, error) {
	start := time.Now()
	data, err := io.ReadAll(io.LimitReader(r, l.maxFileSize()+1))
	loadTime := time.Since(start)
	res := &LoadResult{SourcePath: name, SourceFormat: SourceFormatUnknown, LoadTime: loadTime}
	if err != nil {
		return l.degrade(res, "failed to read document", err)
	}
	if err := l.checkSize(int64(len(data))); err != nil {
		return nil, err
	}
	res.SourceFormat = detectFormatFromContent(data)
	res.SourcePath = syntheticName(name, res.SourceFormat)
	return l.decode(res, data)
}

func (l *Loader) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if err := l.checkSize(info.Size()); err != nil {
		return nil, err
	}
	return os.ReadFile(path) //nolint:gosec // path is user-provided input
}

func (l *Loader) checkSize(size int64) error {
	if limit := l.maxFileSize(); size > limit {
		return &specerrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Actual:       size,
			Message:      fmt.Sprintf("document is %s", FormatBytes(size)),
		}
	}
	return nil
}

func syntheticName(prefix string, format SourceFormat) string {
	if format == SourceFormatJSON {
		return prefix + ".json"
	}
	return prefix + ".yaml"
}

// decode turns raw bytes into a snapshot, filling in res.
func (l *Loader) decode(res *LoadResult, data []byte) (*LoadResult, error) {
	res.SourceSize = int64(len(data))
	res.Fingerprint = xxhash.Sum64(data)
	if res.SourceFormat == SourceFormatUnknown {
		res.SourceFormat = detectFormatFromContent(data)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return l.degrade(res, "document is empty", nil)
	}

	doc, err := decodeDocument(data, res.SourceFormat)
	if err != nil {
		return l.degrade(res, "document is not a valid snapshot", err)
	}
	if l.Strict {
		if err := validateStructure(data, res.SourceFormat, res.SourcePath); err != nil {
			return nil, err
		}
	}

	snap := doc.toSnapshot()
	if l.AllowDuplicateFields {
		dedupeSnapshot(snap)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	res.Snapshot = snap
	l.log().Debug("loaded snapshot",
		"path", res.SourcePath,
		"format", res.SourceFormat,
		"size", FormatBytes(res.SourceSize),
		"version", snap.Version,
		"entities", len(snap.Entities),
		"operations", len(snap.Operations),
	)
	return res, nil
}

// degrade substitutes an empty snapshot in tolerant mode and returns a
// *specerrors.ParseError in strict mode.
func (l *Loader) degrade(res *LoadResult, msg string, cause error) (*LoadResult, error) {
	if l.Strict {
		return nil, &specerrors.ParseError{Path: res.SourcePath, Message: msg, Cause: cause}
	}
	warning := msg
	if cause != nil {
		warning = fmt.Sprintf("%s: %v", msg, cause)
	}
	l.log().Warn("using empty snapshot", "path", res.SourcePath, "reason", warning)
	res.Snapshot = Empty()
	res.Degraded = true
	res.Warnings = append(res.Warnings, warning)
	return res, nil
}

// dedupeSnapshot applies last-wins field indexing to a freshly decoded snapshot.
func dedupeSnapshot(snap *Snapshot) {
	for _, e := range snap.Entities {
		e.Fields = DedupeFields(e.Fields)
	}
	for _, op := range snap.Operations {
		op.Fields = DedupeFields(op.Fields)
	}
}

// Load reads a snapshot with default Loader settings.
func Load(path string) (*LoadResult, error) {
	return NewLoader().Load(path)
}
