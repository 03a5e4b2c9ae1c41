package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/specdelta/specerrors"
)

//go:embed snapshot.schema.json
var snapshotSchemaJSON []byte

// SnapshotDocumentSchema returns the JSON Schema that strict loading validates against.
func SnapshotDocumentSchema() []byte {
	out := make([]byte, len(snapshotSchemaJSON))
	copy(out, snapshotSchemaJSON)
	return out
}

var compiledSnapshotSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	return compiler.Compile(snapshotSchemaJSON)
})

// validateStructure checks a decoded document against the embedded schema.
// YAML input is re-encoded as JSON first.
func validateStructure(data []byte, format SourceFormat, path string) error {
	compiled, err := compiledSnapshotSchema()
	if err != nil {
		return fmt.Errorf("schema: compile snapshot schema: %w", err)
	}

	jsonData := data
	if format != SourceFormatJSON {
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return &specerrors.ParseError{Path: path, Message: "failed to decode YAML", Cause: err}
		}
		jsonData, err = json.Marshal(generic)
		if err != nil {
			return &specerrors.ParseError{Path: path, Message: "document is not representable as JSON", Cause: err}
		}
	}

	result := compiled.ValidateJSON(jsonData)
	if result.IsValid() {
		return nil
	}
	return &specerrors.ValidationError{
		Path:    path,
		Message: fmt.Sprintf("document does not match the snapshot schema: %v", result.Errors),
	}
}
