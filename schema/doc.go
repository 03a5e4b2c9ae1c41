/*
Package schema provides the in-memory model of an API schema snapshot and the
loader that builds it from JSON or YAML documents.

# Overview

A Snapshot captures one version of an API schema: named entity types and named
operations, each with an ordered list of typed fields. Entities with subtypes are
discriminated unions over the named member entities. Snapshots are immutable once
loaded; the differ and coverage packages only read them.

# Loading

The Loader reads local files, stdin-provided bytes, or http(s) URLs:

	result, err := schema.NewLoader().Load("api.json")
	if err != nil {
		log.Fatal(err)
	}
	if result.Degraded {
		fmt.Println("document could not be read; using an empty snapshot")
	}
	fmt.Println(result.Snapshot.Version)

Or using functional options:

	result, err := schema.LoadWithOptions(
		schema.WithFilePath("api.yaml"),
		schema.WithStrict(true),
	)

# Tolerant and Strict Modes

By default a missing or undecodable document loads as an empty snapshot (version
"unknown") and the result is marked Degraded, so a diff against a snapshot that does
not exist yet reports everything as added. Strict mode instead returns a
*specerrors.ParseError and validates the decoded document against the snapshot
document schema, returning a *specerrors.ValidationError for structural problems.

In both modes a field name that repeats within one field list is rejected with a
*specerrors.MalformedSchemaError unless AllowDuplicateFields is set, in which case
the later declaration wins.

# Unknown Values

A field that omits "required" has Required == RequirementUnknown, and a field that
omits "types" has TypesDeclared == false. Unknown values never equal a concrete
value, so the differ reports them as changes instead of guessing.
*/
package schema
