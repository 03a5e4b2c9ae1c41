package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/specdelta/schema"
)

type inspectInput struct {
	Spec  specInput `json:"spec"            jsonschema:"The schema snapshot to summarize"`
	Names bool      `json:"names,omitempty" jsonschema:"Include type and method names"`
}

type inspectOutput struct {
	Version     string               `json:"version"`
	ReleaseDate string               `json:"release_date,omitempty"`
	Format      string               `json:"format"`
	SizeBytes   int64                `json:"size_bytes"`
	Fingerprint string               `json:"fingerprint"`
	Degraded    bool                 `json:"degraded"`
	Stats       schema.DocumentStats `json:"stats"`
	Types       []string             `json:"types,omitempty"`
	Methods     []string             `json:"methods,omitempty"`
	Warnings    []string             `json:"warnings,omitempty"`
}

func handleInspect(_ context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	loaded, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	snap := loaded.Snapshot
	output := inspectOutput{
		Version:     snap.Version,
		ReleaseDate: snap.ReleaseDate,
		Format:      string(loaded.SourceFormat),
		SizeBytes:   loaded.SourceSize,
		Fingerprint: fmt.Sprintf("%016x", loaded.Fingerprint),
		Degraded:    loaded.Degraded,
		Stats:       snap.Stats(),
		Warnings:    loaded.Warnings,
	}
	if input.Names {
		output.Types = snap.EntityNames()
		output.Methods = snap.OperationNames()
	}
	return nil, output, nil
}
