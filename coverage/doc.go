// Package coverage cross-checks a schema snapshot against generated source
// text.
//
// The check is a presence strategy: it derives an expected textual marker for
// every entity, operation, and union variant and tests whether the marker
// occurs in the source. It never parses the source, so a passing report means
// the declarations were found, not that they are correct. Findings are
// reported as issues, separate from the differ's change taxonomy.
//
// # Quick Start
//
//	res, _ := schema.Load("api.json")
//	src, _ := coverage.CollectSources(ctx, "src/**/*.rs")
//	report := coverage.Validate(res.Snapshot, src.Text, coverage.DefaultConfig())
//	if !report.Passed {
//		os.Exit(1)
//	}
//
// # Markers
//
// A Profile holds the fmt templates used to derive markers. RustProfile, the
// default, expects "pub struct Name" for record-like and marker entities,
// "pub enum Name" for unions, "Variant(Variant)" for every union member, and
// a "pub async fn name" for every operation, where name is the operation name
// converted to separated lower-case words ("sendMessage" -> "send_message").
//
// # Ignored entities
//
// Config.Ignored names entities that have no generated counterpart, such as
// abstract upload placeholders. They count as covered without being checked.
// The list is a plain value so validators with different lists can run
// concurrently.
package coverage
