package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/specdelta/differ"
)

type diffInput struct {
	Old      specInput `json:"old"                jsonschema:"The older schema snapshot"`
	New      specInput `json:"new"                jsonschema:"The newer schema snapshot to compare against old"`
	Breaking bool      `json:"breaking,omitempty" jsonschema:"Classify changes by severity"`
	NoInfo   bool      `json:"no_info,omitempty"  jsonschema:"With breaking, suppress informational changes"`
}

type diffChange struct {
	Severity string `json:"severity"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

type diffOutput struct {
	OldVersion     string                      `json:"old_version"`
	NewVersion     string                      `json:"new_version"`
	AddedTypes     []string                    `json:"added_types,omitempty"`
	RemovedTypes   []string                    `json:"removed_types,omitempty"`
	ChangedTypes   map[string]differ.ChangeSet `json:"changed_types,omitempty"`
	AddedMethods   []string                    `json:"added_methods,omitempty"`
	RemovedMethods []string                    `json:"removed_methods,omitempty"`
	ChangedMethods map[string]differ.ChangeSet `json:"changed_methods,omitempty"`
	TotalChanges   int                         `json:"total_changes"`
	BreakingCount  int                         `json:"breaking_count"`
	WarningCount   int                         `json:"warning_count"`
	InfoCount      int                         `json:"info_count"`
	Changes        []diffChange                `json:"changes,omitempty"`
	Warnings       []string                    `json:"warnings,omitempty"`
	Summary        string                      `json:"summary"`
}

func handleDiff(_ context.Context, _ *mcp.CallToolRequest, input diffInput) (*mcp.CallToolResult, diffOutput, error) {
	oldResult, err := input.Old.resolve()
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	newResult, err := input.New.resolve()
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	opts := []differ.Option{
		differ.WithSourceSnapshot(oldResult.Snapshot),
		differ.WithTargetSnapshot(newResult.Snapshot),
	}
	if input.Breaking {
		opts = append(opts, differ.WithMode(differ.ModeBreaking))
	}
	if input.NoInfo {
		opts = append(opts, differ.WithIncludeInfo(false))
	}

	result, err := differ.DiffWithOptions(opts...)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	output := diffOutput{
		OldVersion:     result.OldVersion,
		NewVersion:     result.NewVersion,
		AddedTypes:     makeSlice[string](len(result.AddedEntities)),
		RemovedTypes:   makeSlice[string](len(result.RemovedEntities)),
		AddedMethods:   makeSlice[string](len(result.AddedOperations)),
		RemovedMethods: makeSlice[string](len(result.RemovedOperations)),
		TotalChanges:   len(result.Changes),
		BreakingCount:  result.BreakingCount,
		WarningCount:   result.WarningCount,
		InfoCount:      result.InfoCount,
		Changes:        makeSlice[diffChange](len(result.Changes)),
	}
	output.AddedTypes = append(output.AddedTypes, result.AddedEntities...)
	output.RemovedTypes = append(output.RemovedTypes, result.RemovedEntities...)
	output.AddedMethods = append(output.AddedMethods, result.AddedOperations...)
	output.RemovedMethods = append(output.RemovedMethods, result.RemovedOperations...)
	if len(result.ChangedEntities) > 0 {
		output.ChangedTypes = result.ChangedEntities
	}
	if len(result.ChangedOperations) > 0 {
		output.ChangedMethods = result.ChangedOperations
	}

	for _, c := range result.Changes {
		output.Changes = append(output.Changes, diffChange{
			Severity: c.Severity.String(),
			Type:     string(c.Type),
			Category: string(c.Category),
			Path:     c.Path,
			Message:  c.Message,
		})
	}

	for _, w := range oldResult.Warnings {
		output.Warnings = append(output.Warnings, "old: "+w)
	}
	for _, w := range newResult.Warnings {
		output.Warnings = append(output.Warnings, "new: "+w)
	}

	output.Summary = buildDiffSummary(output, input.Breaking)
	return nil, output, nil
}

func buildDiffSummary(output diffOutput, breaking bool) string {
	if output.TotalChanges == 0 {
		return "No changes detected."
	}

	summary := ""
	if breaking && output.BreakingCount > 0 {
		summary = "Breaking changes detected. "
	}

	summary += formatCount(output.TotalChanges, "change") + " found"
	if breaking && output.BreakingCount > 0 {
		summary += " (" + formatCount(output.BreakingCount, "breaking change") + ")."
	} else {
		summary += "."
	}
	return summary
}
