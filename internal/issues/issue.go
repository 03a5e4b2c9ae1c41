// Package issues provides the finding type reported by the coverage validator.
package issues

import (
	"fmt"

	"github.com/erraggy/specdelta/internal/severity"
)

// Kind identifies which part of the schema a finding concerns.
type Kind string

const (
	// KindEntity is a finding about an entity declaration
	KindEntity Kind = "entity"
	// KindOperation is a finding about an operation's callable
	KindOperation Kind = "operation"
	// KindVariant is a finding about one variant of a union entity
	KindVariant Kind = "variant"
	// KindField is a finding about a field of a struct entity
	KindField Kind = "field"
	// KindProfile is a finding about the marker profile itself
	KindProfile Kind = "profile"
)

// Issue represents a single problem found while checking generated source.
type Issue struct {
	// Path names the schema element (e.g., "User", "MessageOrigin.MessageOriginUser", "User.first_name")
	Path string `json:"path"`
	// Kind is the schema element category
	Kind Kind `json:"kind"`
	// Message is a human-readable description of the issue
	Message string `json:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity"`
	// Expected is the text that was searched for in the source, if any
	Expected string `json:"expected,omitempty"`
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	result := fmt.Sprintf("%s %s %s: %s", symbol, i.Kind, i.Path, i.Message)
	if i.Expected != "" {
		result += fmt.Sprintf(" (expected %q)", i.Expected)
	}
	return result
}

// IsFailure reports whether the issue fails a coverage run.
func (i Issue) IsFailure() bool {
	return i.Severity.IsBreaking()
}
