package mcpserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fixtureV1        = "../../testdata/snapshots/api-v1.json"
	fixtureV2        = "../../testdata/snapshots/api-v2.json"
	fixtureGenerated = "../../testdata/snapshots/generated.rs"
)

// startTestSession connects an in-memory client to a server with every tool registered.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "specdelta-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	return result
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %s has no description", tool.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"coverage", "diff", "inspect"}, names)
}

func TestIntegration_DiffFiles(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "diff", map[string]any{
		"old":      map[string]any{"file": fixtureV1},
		"new":      map[string]any{"file": fixtureV2},
		"breaking": true,
	})
	require.False(t, result.IsError)

	out := unmarshalStructured(t, result)
	assert.Equal(t, "7.0", out["old_version"])
	assert.Equal(t, "7.1", out["new_version"])
	assert.Equal(t, float64(2), out["breaking_count"])
	assert.Equal(t, float64(2), out["warning_count"])
	assert.Contains(t, out["summary"], "Breaking changes detected.")
}

func TestIntegration_DiffInline(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "diff", map[string]any{
		"old": map[string]any{"content": snapshotV1},
		"new": map[string]any{"content": snapshotV2},
	})
	require.False(t, result.IsError)

	out := unmarshalStructured(t, result)
	assert.Equal(t, []any{"Origin"}, out["removed_types"])
	assert.Equal(t, []any{"sendMessage"}, out["added_methods"])
	assert.Equal(t, float64(0), out["breaking_count"])
	assert.Contains(t, out["changed_types"], "User")
}

func TestIntegration_DiffIdentical(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "diff", map[string]any{
		"old": map[string]any{"file": fixtureV1},
		"new": map[string]any{"file": fixtureV1},
	})
	require.False(t, result.IsError)

	out := unmarshalStructured(t, result)
	assert.Equal(t, float64(0), out["total_changes"])
	assert.Equal(t, "No changes detected.", out["summary"])
}

func TestIntegration_DiffMissingInput(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "diff", map[string]any{
		"old": map[string]any{"file": fixtureV1},
		"new": map[string]any{},
	})
	assert.True(t, result.IsError)
}

func TestIntegration_CoveragePasses(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "coverage", map[string]any{
		"spec":         map[string]any{"file": fixtureV1},
		"source_files": []string{fixtureGenerated},
	})
	require.False(t, result.IsError)

	out := unmarshalStructured(t, result)
	assert.Equal(t, true, out["passed"])
	assert.Equal(t, "presence", out["strategy"])
	assert.Equal(t, "rust", out["profile"])
	assert.Contains(t, out["summary"], "All declarations found")
}

func TestIntegration_CoverageFails(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "coverage", map[string]any{
		"spec":         map[string]any{"file": fixtureV2},
		"source_files": []string{fixtureGenerated},
	})
	require.False(t, result.IsError)

	out := unmarshalStructured(t, result)
	assert.Equal(t, false, out["passed"])
	assert.Equal(t, "Coverage failed: 3 declarations missing.", out["summary"])
	findings, ok := out["findings"].([]any)
	require.True(t, ok)
	assert.Len(t, findings, 3)
}

func TestIntegration_CoverageInlineSource(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "coverage", map[string]any{
		"spec":   map[string]any{"content": snapshotV1},
		"source": "pub struct User {}\npub enum Origin {\n    User(User),\n}\npub async fn get_user() {}\n",
	})
	require.False(t, result.IsError)

	out := unmarshalStructured(t, result)
	assert.Equal(t, true, out["passed"])
}

func TestIntegration_CoverageUnreadableSchema(t *testing.T) {
	session := startTestSession(t)

	tests := []struct {
		name string
		spec map[string]any
	}{
		{"missing file", map[string]any{"file": filepath.Join(t.TempDir(), "typo-api.json")}},
		{"corrupt content", map[string]any{"content": `{"version": `}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, session, "coverage", map[string]any{
				"spec":         tt.spec,
				"source_files": []string{fixtureGenerated},
			})
			require.True(t, result.IsError)
			require.NotEmpty(t, result.Content)
			text, ok := result.Content[0].(*mcp.TextContent)
			require.True(t, ok, "expected TextContent, got %T", result.Content[0])
			assert.Contains(t, text.Text, "schema could not be loaded")
		})
	}
}

func TestIntegration_CoverageRequiresOneSource(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "coverage", map[string]any{
		"spec": map[string]any{"file": fixtureV1},
	})
	assert.True(t, result.IsError)
}

func TestIntegration_Inspect(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "inspect", map[string]any{
		"spec":  map[string]any{"file": fixtureV1},
		"names": true,
	})
	require.False(t, result.IsError)

	out := unmarshalStructured(t, result)
	assert.Equal(t, "7.0", out["version"])
	assert.Equal(t, "2023-12-29", out["release_date"])
	assert.Equal(t, false, out["degraded"])
	assert.Len(t, out["fingerprint"], 16)
	assert.Contains(t, out["methods"], "getMe")

	stats, ok := out["stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(6), stats["entity_count"])
	assert.Equal(t, float64(3), stats["operation_count"])
	assert.Equal(t, float64(1), stats["union_count"])
}

// unmarshalStructured decodes a tool result into a generic map.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}

func TestBuildDiffSummary(t *testing.T) {
	tests := []struct {
		name     string
		output   diffOutput
		breaking bool
		want     string
	}{
		{"empty", diffOutput{}, true, "No changes detected."},
		{"simple", diffOutput{TotalChanges: 3}, false, "3 changes found."},
		{"breaking mode without breaking", diffOutput{TotalChanges: 1}, true, "1 change found."},
		{"breaking", diffOutput{TotalChanges: 4, BreakingCount: 1}, true, "Breaking changes detected. 4 changes found (1 breaking change)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildDiffSummary(tt.output, tt.breaking))
		})
	}
}

func TestIgnoredEntities(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.CoverageIgnored = []string{"Default"} })

	assert.Equal(t, []string{"Default"}, ignoredEntities(nil))
	assert.Equal(t, []string{"X"}, ignoredEntities([]string{"X"}))
}
