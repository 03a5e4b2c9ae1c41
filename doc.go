// Package specdelta provides tools for tracking how a machine-readable API schema evolves.
//
// A schema document describes named entity types and named operations, each with typed
// fields. specdelta compares two versions of such a document and produces a structured,
// deterministic change report suitable for changelog generation and CI gating, and it
// cross-checks a schema against generated implementation source text.
//
// # Overview
//
// The library consists of the following packages:
//
//   - schema: In-memory snapshot model and the document loader
//   - differ: Compare two snapshots and report added, removed, and changed entities and operations
//   - coverage: Check generated source text for declarations matching every entity and operation
//   - report: Render diff and coverage reports as text, Markdown, JSON, or YAML
//   - changelog: Assemble changelog entries and release notes from a diff report
//   - specerrors: Structured error types for programmatic error handling
//
// # Schema Documents
//
// Schema documents are JSON or YAML with the following top-level keys:
//
//	version:      "7.10"
//	release_date: "2024-09-06"
//	types:
//	  User:
//	    description: "This object represents a user."
//	    fields:
//	      - {name: id, types: [Integer], required: true}
//	  MaybeMessage:
//	    subtypes: [Message, InaccessibleMessage]
//	methods:
//	  getMe:
//	    returns: User
//	    fields: []
//
// # Quick Start
//
// Diff two schema versions:
//
//	import "github.com/erraggy/specdelta/differ"
//
//	result, err := differ.DiffWithOptions(
//		differ.WithSourceFilePath("api-old.json"),
//		differ.WithTargetFilePath("api-new.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Added entities: %v\n", result.AddedEntities)
//
// Check generated code coverage:
//
//	import "github.com/erraggy/specdelta/coverage"
//
//	loaded, _ := schema.NewLoader().Load("api.json")
//	rep := coverage.Validate(loaded.Snapshot, generatedSource, coverage.DefaultConfig())
//	if !rep.Passed {
//		fmt.Println(rep.MissingEntities)
//	}
//
// # Determinism
//
// Diff reports never depend on map iteration order: name lists are sorted, change maps are
// marshaled with sorted keys, and the report package can emit RFC 8785 canonical JSON so the
// same two snapshots always produce byte-identical output.
package specdelta
