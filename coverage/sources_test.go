package coverage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/specdelta/specerrors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestCollectSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.rs"), "pub struct B")
	writeFile(t, filepath.Join(dir, "nested", "deep", "a.rs"), "pub struct A")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	src, err := CollectSources(context.Background(), filepath.Join(dir, "**", "*.rs"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "b.rs"),
		filepath.Join(dir, "nested", "deep", "a.rs"),
	}, src.Files)
	assert.Equal(t, "pub struct B\npub struct A", src.Text)
	assert.Equal(t, int64(24), src.Size)
}

func TestCollectSourcesDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	writeFile(t, path, "x")

	src, err := CollectSources(context.Background(), path, filepath.Join(dir, "*.rs"))
	require.NoError(t, err)
	assert.Equal(t, []string{path}, src.Files)
	assert.Equal(t, "x", src.Text)
}

func TestCollectSourcesNoMatch(t *testing.T) {
	_, err := CollectSources(context.Background(), filepath.Join(t.TempDir(), "*.rs"))
	require.Error(t, err)
	assert.ErrorIs(t, err, specerrors.ErrConfig)
	assert.Contains(t, err.Error(), "no source files matched")
}

func TestCollectSourcesCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lib.rs"), "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CollectSources(ctx, filepath.Join(dir, "*.rs"))
	require.ErrorIs(t, err, context.Canceled)
}
