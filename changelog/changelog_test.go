package changelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/specdelta/differ"
	"github.com/erraggy/specdelta/internal/testutil"
)

var release = Info{ReleaseVersion: "0.5.0", APIVersion: "7.1", Date: "2024-02-16"}

func fixtureDiff(t *testing.T) *differ.DiffResult {
	t.Helper()
	result, err := differ.New().Diff(
		filepath.Join("..", "testdata", "snapshots", "api-v1.json"),
		filepath.Join("..", "testdata", "snapshots", "api-v2.json"),
	)
	require.NoError(t, err)
	return result
}

func TestEntry(t *testing.T) {
	want := "## [0.5.0] - 2024-02-16\n\n" +
		"### API 7.1\n\n" +
		"#### New Types\n\n- `MessageOriginChannel`\n\n" +
		"#### Removed Types\n\n- ~~`ForceReply`~~\n\n" +
		"#### New Methods\n\n- `banChatMember`\n\n" +
		"#### Removed Methods\n\n- ~~`kickChatMember`~~\n\n" +
		"#### Changed\n\n- 3 types changed\n- 1 method changed\n\n" +
		"---\n"
	assert.Equal(t, want, Entry(release, fixtureDiff(t)))
}

func TestEntryEdgeCases(t *testing.T) {
	t.Run("nil diff", func(t *testing.T) {
		assert.Equal(t, "## [0.5.0] - 2024-02-16\n\n- Updated to API 7.1\n\n---\n", Entry(release, nil))
	})

	t.Run("no changes", func(t *testing.T) {
		snap := testutil.NewUserV1Snapshot()
		result, err := differ.DiffSnapshots(snap, snap)
		require.NoError(t, err)
		assert.Equal(t, "## [0.5.0] - 2024-02-16\n\n### API 7.1\n\n- No schema changes\n\n---\n", Entry(release, result))
	})

	t.Run("only changed", func(t *testing.T) {
		result, err := differ.DiffSnapshots(testutil.NewUserV1Snapshot(), testutil.NewUserV2Snapshot())
		require.NoError(t, err)
		info := Info{ReleaseVersion: "1.1.0", APIVersion: "1.1"}
		assert.Equal(t, "## [1.1.0]\n\n### API 1.1\n\n#### Changed\n\n- 1 type changed\n\n---\n", Entry(info, result))
	})
}

func TestPrepend(t *testing.T) {
	entry := "## [2.0.0]\n\n- second\n"

	tests := []struct {
		name     string
		existing string
		header   string
		want     string
	}{
		{
			name:     "empty changelog gets the default header",
			existing: "",
			want:     DefaultHeader + "\n" + entry,
		},
		{
			name:     "custom header",
			existing: "",
			header:   "# History\n---\n",
			want:     "# History\n---\n\n" + entry,
		},
		{
			name:     "inserted after the separator",
			existing: "# Changelog\n---\n\n## [1.0.0]\n\n- first\n",
			want:     "# Changelog\n---\n\n" + entry + "\n## [1.0.0]\n\n- first\n",
		},
		{
			name:     "separator with nothing below",
			existing: "# Changelog\n---\n",
			want:     "# Changelog\n---\n\n" + entry,
		},
		{
			name:     "no separator keeps old content below",
			existing: "## [1.0.0]\n\n- first\n",
			want:     DefaultHeader + "\n" + entry + "\n## [1.0.0]\n\n- first\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Prepend(tt.existing, entry, tt.header))
		})
	}
}

func TestUpdateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")

	require.NoError(t, UpdateFile(path, "## [1.0.0]\n\n- first\n"))
	require.NoError(t, UpdateFile(path, "## [2.0.0]\n\n- second\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := DefaultHeader + "\n## [2.0.0]\n\n- second\n\n## [1.0.0]\n\n- first\n"
	assert.Equal(t, want, string(data))
}

func TestUpdateFileSeparatesReleases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")

	first := Entry(Info{ReleaseVersion: "1.0.0", APIVersion: "7.0"}, nil)
	second := Entry(Info{ReleaseVersion: "1.1.0", APIVersion: "7.1"}, nil)
	require.NoError(t, UpdateFile(path, first))
	require.NoError(t, UpdateFile(path, second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := DefaultHeader + "\n" +
		"## [1.1.0]\n\n- Updated to API 7.1\n\n---\n\n" +
		"## [1.0.0]\n\n- Updated to API 7.0\n\n---\n"
	assert.Equal(t, want, string(data))
}

func TestUpdateFileReadError(t *testing.T) {
	// A directory cannot be read as a file.
	err := UpdateFile(t.TempDir(), "## [1.0.0]\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changelog: reading")
}

func TestReleaseNotes(t *testing.T) {
	entry := Entry(release, fixtureDiff(t))
	notes := ReleaseNotes(release, entry)

	assert.Contains(t, notes, "# Release 0.5.0\n\nTargets API version 7.1.\n\n### API 7.1\n")
	assert.NotContains(t, notes, "## [0.5.0]")
	assert.Contains(t, notes, "- `banChatMember`")
	assert.Contains(t, notes, "- ~~`kickChatMember`~~")
	assert.NotContains(t, notes, "---")

	assert.Equal(t, "# Release 0.5.0\n\nTargets API version 7.1.\n", ReleaseNotes(release, "## [0.5.0]"))
}
