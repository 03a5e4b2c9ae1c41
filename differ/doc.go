/*
Package differ compares two API schema snapshots and reports what was added,
removed, and changed.

# Overview

A diff pairs entities and operations by name. Names only in the new snapshot are
added, names only in the old snapshot are removed, and names in both are compared
field by field. Identity is by name alone: an entity that turns from a struct into a
union is reported as changed, never as removed and re-added.

# Change Sets

Every changed entity or operation maps to a ChangeSet keyed by field name:

	"username": "added, with types = [String]"
	"first_name": "removed"
	"chat_id": "types changed from [Integer] to [Integer, String]; required flag became true"

Entities also carry the synthetic keys KeyVariants ("[variants]") and
KeyDescription ("[description]"); operations carry KeyReturns ("[returns]").
Unchanged fields never appear, and unchanged owners never appear in the changed maps.

# Diff Modes

  - ModeSimple: every change in DiffResult.Changes is SeverityInfo
  - ModeBreaking: changes are classified by severity and breaking changes counted

In ModeBreaking the default severities are:

  - SeverityCritical: removed entity or operation
  - SeverityError: removed field, changed field types, changed return type, removed union member
  - SeverityWarning: new required field, optional field made required, unknown required flag, new union member
  - SeverityInfo: everything else

BreakingRulesConfig overrides these per change kind; see StrictRules and LenientRules.
The added, removed, and changed collections are always complete; Mode, IncludeInfo,
and rules only shape the flat Changes list.

# Duplicate Fields

A field name repeated within one field list makes the comparison ambiguous, so
it fails with a *specerrors.MalformedSchemaError. DuplicateLastWins restores the
historical behavior of keeping the last declaration.

# Example

	result, err := differ.DiffWithOptions(
		differ.WithSourceFilePath("api-7.0.json"),
		differ.WithTargetFilePath("api-7.1.json"),
		differ.WithMode(differ.ModeBreaking),
	)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("added types:", result.AddedEntities)
	for _, change := range result.Changes {
		fmt.Println(change)
	}

A source that does not exist yet loads as an empty snapshot, so the first diff of a
new schema reports everything as added.
*/
package differ
