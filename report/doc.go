// Package report renders diff and coverage results.
//
// Every renderer is a stateless function over one result structure, so the
// text, Markdown, JSON, and YAML forms of a report always agree. WriteJSON
// emits RFC 8785 canonical JSON: the same result always produces the same
// bytes, which makes reports safe to commit and compare in CI.
package report
