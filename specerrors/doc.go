// Package specerrors provides structured error types for the specdelta library.
//
// Import path: github.com/erraggy/specdelta/specerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors.
//
// # Error Types
//
//   - [ParseError]: unreadable or undecodable schema documents (strict loading only)
//   - [ValidationError]: schema documents that violate the snapshot document schema
//   - [MalformedSchemaError]: schema content that breaks a precondition of the diff engine,
//     such as a field name repeated within one field list
//   - [ResourceLimitError]: inputs that exceed a configured limit
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrValidation]: Matches any [ValidationError]
//   - [ErrMalformedSchema]: Matches any [MalformedSchemaError]
//   - [ErrDuplicateField]: Matches [MalformedSchemaError] caused by a repeated field name
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	result, err := differ.DiffWithOptions(
//	    differ.WithSourceFilePath("old.json"),
//	    differ.WithTargetFilePath("new.json"),
//	)
//	if errors.Is(err, specerrors.ErrDuplicateField) {
//	    // The schema repeats a field name; fix the document or opt into last-wins indexing
//	}
//
//	var malformed *specerrors.MalformedSchemaError
//	if errors.As(err, &malformed) {
//	    fmt.Printf("%s.%s is declared twice\n", malformed.Owner, malformed.Field)
//	}
//
// Note that a missing or undecodable schema document is not an error in the default
// tolerant loading mode: it loads as an empty snapshot so a diff against it reports
// every entity and operation as added or removed.
package specerrors
