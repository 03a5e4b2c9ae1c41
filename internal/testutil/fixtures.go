// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/specdelta/schema"
)

// SnapshotBuilder assembles snapshots for tests with a fluent API.
type SnapshotBuilder struct {
	snap *schema.Snapshot
}

// NewSnapshot starts a snapshot with the given version and no release date.
func NewSnapshot(version string) *SnapshotBuilder {
	snap := schema.Empty()
	snap.Version = version
	return &SnapshotBuilder{snap: snap}
}

// ReleaseDate sets the snapshot's release date.
func (b *SnapshotBuilder) ReleaseDate(date string) *SnapshotBuilder {
	b.snap.ReleaseDate = date
	return b
}

// Struct adds a struct entity (or a marker entity when fields is empty).
func (b *SnapshotBuilder) Struct(name string, fields ...schema.Field) *SnapshotBuilder {
	b.snap.Entities[name] = &schema.Entity{Name: name, Fields: fields}
	return b
}

// Union adds a union entity over the given subtypes.
func (b *SnapshotBuilder) Union(name string, subtypes ...string) *SnapshotBuilder {
	b.snap.Entities[name] = &schema.Entity{Name: name, Subtypes: subtypes}
	return b
}

// Entity adds a fully specified entity.
func (b *SnapshotBuilder) Entity(e *schema.Entity) *SnapshotBuilder {
	b.snap.Entities[e.Name] = e
	return b
}

// Operation adds an operation with the given return descriptor and parameters.
func (b *SnapshotBuilder) Operation(name string, returns any, fields ...schema.Field) *SnapshotBuilder {
	b.snap.Operations[name] = &schema.Operation{Name: name, Returns: returns, Fields: fields}
	return b
}

// Build returns the assembled snapshot.
func (b *SnapshotBuilder) Build() *schema.Snapshot {
	return b.snap
}

// Required returns a required field with declared types.
func Required(name string, types ...string) schema.Field {
	return schema.NewField(name, true, types...)
}

// Optional returns an optional field with declared types.
func Optional(name string, types ...string) schema.Field {
	return schema.NewField(name, false, types...)
}

// NewUserV1Snapshot returns a snapshot with a User entity holding a required id
// and a required name, plus a getUser operation.
func NewUserV1Snapshot() *schema.Snapshot {
	return NewSnapshot("1.0").
		ReleaseDate("2024-01-01").
		Struct("User",
			Required("id", "int"),
			Required("name", "string"),
		).
		Operation("getUser", "User", Required("user_id", "int")).
		Build()
}

// NewUserV2Snapshot returns NewUserV1Snapshot with an optional username added
// to User and name relaxed to optional.
func NewUserV2Snapshot() *schema.Snapshot {
	return NewSnapshot("1.1").
		ReleaseDate("2024-02-01").
		Struct("User",
			Required("id", "int"),
			Optional("name", "string"),
			Optional("username", "string"),
		).
		Operation("getUser", "User", Required("user_id", "int")).
		Build()
}

// NewUserV1Document returns the on-disk form of NewUserV1Snapshot.
func NewUserV1Document() map[string]any {
	return map[string]any{
		"version":      "1.0",
		"release_date": "2024-01-01",
		"types": map[string]any{
			"User": map[string]any{
				"name": "User",
				"fields": []any{
					map[string]any{"name": "id", "types": []any{"int"}, "required": true, "description": ""},
					map[string]any{"name": "name", "types": []any{"string"}, "required": true, "description": ""},
				},
			},
		},
		"methods": map[string]any{
			"getUser": map[string]any{
				"name":    "getUser",
				"returns": "User",
				"fields": []any{
					map[string]any{"name": "user_id", "types": []any{"int"}, "required": true, "description": ""},
				},
			},
		},
	}
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	return WriteTempFile(t, "test.yaml", string(data))
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	return WriteTempFile(t, "test.json", string(data))
}

// WriteTempFile writes content to name inside a fresh temporary directory.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}

	return tmpFile
}
