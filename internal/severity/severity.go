// Package severity provides severity level constants and utilities
// for changes reported by the differ and findings reported by the coverage validator.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

import "fmt"

// Severity indicates the severity level of a change or finding.
type Severity int

const (
	// SeverityError indicates a breaking change or a missing required declaration.
	SeverityError Severity = iota

	// SeverityWarning indicates a change that may break some consumers, or a
	// finding that does not fail a coverage run.
	SeverityWarning

	// SeverityInfo indicates an informational, backward-compatible change.
	SeverityInfo

	// SeverityCritical indicates a removed entity or operation.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity as its string name so reports stay readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name produced by MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	case "critical":
		*s = SeverityCritical
	default:
		return fmt.Errorf("severity: unknown level %q", string(text))
	}
	return nil
}

// Rank orders severities from least (0) to most severe (3).
// The declaration order of the constants is not severity order.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}

// IsBreaking reports whether s is Error or Critical.
func (s Severity) IsBreaking() bool {
	return s == SeverityError || s == SeverityCritical
}

// Max returns the more severe of a and b.
func Max(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}
