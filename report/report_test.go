package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/specdelta/coverage"
	"github.com/erraggy/specdelta/differ"
	"github.com/erraggy/specdelta/internal/testutil"
)

func userDiff(t *testing.T, mode differ.DiffMode) *differ.DiffResult {
	t.Helper()
	d := differ.New()
	d.Mode = mode
	before := testutil.NewUserV1Snapshot()
	after := testutil.NewUserV2Snapshot()
	result, err := d.DiffSnapshots(before, after)
	require.NoError(t, err)
	return result
}

func TestDiffText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DiffText(&buf, userDiff(t, differ.ModeSimple)))
	out := buf.String()

	assert.Contains(t, out, "Old: 1.0 (2024-01-01)")
	assert.Contains(t, out, "New: 1.1 (2024-02-01)")
	assert.Contains(t, out, "Changed Types (1):")
	assert.Contains(t, out, "  ~ User\n      name: required flag became false\n      username: added, with types = [string]\n")
	assert.Contains(t, out, "Total changes: 2")
	assert.NotContains(t, out, "Breaking:")
}

func TestDiffTextBreaking(t *testing.T) {
	before := testutil.NewSnapshot("1").Struct("User").Operation("getMe", "User").Build()
	after := testutil.NewSnapshot("2").Build()
	d := differ.New()
	d.Mode = differ.ModeBreaking
	result, err := d.DiffSnapshots(before, after)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, DiffText(&buf, result))
	out := buf.String()
	assert.Contains(t, out, "Removed Types (1):\n  - User\n")
	assert.Contains(t, out, "Removed Methods (1):\n  - getMe\n")
	assert.Contains(t, out, "✗ types.User [removed] entity")
	assert.Contains(t, out, "Breaking: 2, Warnings: 0, Info: 0")
}

func TestDiffTextNoDifferences(t *testing.T) {
	snap := testutil.NewUserV1Snapshot()
	result, err := differ.DiffSnapshots(snap, snap)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, DiffText(&buf, result))
	assert.Contains(t, buf.String(), "No differences found")
	assert.NotContains(t, buf.String(), "Summary")
}

func TestDiffMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DiffMarkdown(&buf, userDiff(t, differ.ModeBreaking)))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# API Schema Diff\n"))
	assert.Contains(t, out, "| Version | 1.0 | 1.1 |")
	assert.Contains(t, out, "## Changed Types\n\n### `User`\n\n- **name**: required flag became false\n")
	assert.NotContains(t, out, "## Added Types")
	// Only informational changes, so no severity table.
	assert.NotContains(t, out, "## Breaking Change Summary")
}

func TestCoverageRenderers(t *testing.T) {
	snap := testutil.NewSnapshot("7.1").
		Struct("User", testutil.Required("id", "Integer"), testutil.Optional("bio", "String")).
		Union("Origin", "User", "Chat").
		Operation("sendMessage", "Message").
		Build()
	cfg := coverage.DefaultConfig()
	cfg.CheckFields = true
	r := coverage.Validate(snap, "pub struct User { pub id: i64 }\npub enum Origin { User(User) }", cfg)
	require.False(t, r.Passed)

	var text bytes.Buffer
	require.NoError(t, CoverageText(&text, r))
	out := text.String()
	assert.Contains(t, out, "Coverage Report (presence strategy, profile rust)")
	assert.Contains(t, out, "Entities:   2/2 (100%)")
	assert.Contains(t, out, "Variants:   1/2 (50%)")
	assert.Contains(t, out, "Operations: 0/1 (0%)")
	assert.Contains(t, out, "Missing variants (1):\n  - Origin.Chat\n")
	assert.Contains(t, out, "  - sendMessage (expected send_message)")
	assert.Contains(t, out, "User.bio")
	assert.Contains(t, out, "Result: FAILED")

	var md bytes.Buffer
	require.NoError(t, CoverageMarkdown(&md, r))
	out = md.String()
	assert.Contains(t, out, "| Union Types | 1 | 1 | 100% |")
	assert.Contains(t, out, "## Missing Operations\n\n- `sendMessage` (expected `send_message`)")
	assert.Contains(t, out, "## Warnings")
	assert.Contains(t, out, "**Result: FAILED**")
}

func TestCoverageTextPassed(t *testing.T) {
	r := coverage.Validate(testutil.NewSnapshot("1").Struct("Foo").Build(), "pub struct Foo", coverage.DefaultConfig())

	var buf bytes.Buffer
	require.NoError(t, CoverageText(&buf, r))
	assert.Contains(t, buf.String(), "Result: PASSED")
	assert.NotContains(t, buf.String(), "Missing")
}

func TestWriteJSONIsCanonical(t *testing.T) {
	result := userDiff(t, differ.ModeBreaking)

	var first, second bytes.Buffer
	require.NoError(t, WriteJSON(&first, result))
	require.NoError(t, WriteJSON(&second, userDiff(t, differ.ModeBreaking)))
	assert.Equal(t, first.Bytes(), second.Bytes())
	assert.True(t, bytes.HasSuffix(first.Bytes(), []byte("}\n")))
	// Canonical JSON sorts keys and has no insignificant whitespace.
	assert.True(t, strings.HasPrefix(first.String(), `{"added_entities":[]`))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(first.Bytes(), &decoded))
	assert.Equal(t, "1.0", decoded["old_version"])
}

func TestWriteIndentedJSONAndYAML(t *testing.T) {
	result := userDiff(t, differ.ModeSimple)

	var js bytes.Buffer
	require.NoError(t, WriteIndentedJSON(&js, result))
	assert.Contains(t, js.String(), "\n  \"old_version\": \"1.0\"")

	var y bytes.Buffer
	require.NoError(t, WriteYAML(&y, result))
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(y.Bytes(), &decoded))
	assert.Equal(t, "1.1", decoded["new_version"])
	assert.Contains(t, y.String(), "severity: info")
}

func TestDigest(t *testing.T) {
	a, err := Digest(userDiff(t, differ.ModeSimple))
	require.NoError(t, err)
	b, err := Digest(userDiff(t, differ.ModeSimple))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	c, err := Digest(userDiff(t, differ.ModeBreaking))
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "severities differ between modes")

	_, err = Digest(func() {})
	require.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderersReturnWriteErrors(t *testing.T) {
	result := userDiff(t, differ.ModeSimple)
	report := coverage.Validate(nil, "", coverage.DefaultConfig())

	assert.EqualError(t, DiffText(failingWriter{}, result), "disk full")
	assert.EqualError(t, DiffMarkdown(failingWriter{}, result), "disk full")
	assert.EqualError(t, CoverageText(failingWriter{}, report), "disk full")
	assert.EqualError(t, CoverageMarkdown(failingWriter{}, report), "disk full")
	assert.EqualError(t, WriteJSON(failingWriter{}, result), "disk full")
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Added Types", title("added types"))
	assert.Equal(t, "Missing Operations", title("missing operations"))
}

func TestDiffMarkdownSeveritySummary(t *testing.T) {
	before := testutil.NewSnapshot("1").Union("Origin", "A").Build()
	after := testutil.NewSnapshot("2").Union("Origin", "A", "B").Build()
	d := differ.New()
	d.Mode = differ.ModeBreaking
	result, err := d.DiffSnapshots(before, after)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, DiffMarkdown(&buf, result))
	out := buf.String()
	assert.Contains(t, out, "- **[variants]**: added subtypes: [B]")
	assert.Contains(t, out, "| Warning | 1 |")
}
