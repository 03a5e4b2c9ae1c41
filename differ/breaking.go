package differ

import (
	"github.com/erraggy/specdelta/internal/severity"
	"github.com/erraggy/specdelta/schema"
)

// addChange appends c with a mode-appropriate severity. In ModeSimple every
// change is informational; in ModeBreaking the rule for key may override
// defaultSeverity or drop the change.
func (d *Differ) addChange(changes *[]Change, key RuleKey, c Change, defaultSeverity Severity) {
	if d.Mode != ModeBreaking {
		c.Severity = SeverityInfo
		*changes = append(*changes, c)
		return
	}
	sev, ignore := d.BreakingRules.getRule(key).ApplyRule(defaultSeverity)
	if ignore {
		return
	}
	c.Severity = sev
	*changes = append(*changes, c)
}

// fieldPart is one independently classified aspect of a field delta
type fieldPart struct {
	key      RuleKey
	severity Severity
}

// fieldParts classifies a field delta into its rule keys and default severities
func fieldParts(fd fieldDelta) []fieldPart {
	switch {
	case fd.old == nil:
		if fd.new.Required == schema.RequirementOptional {
			return []fieldPart{{ruleKey(CategoryField, ChangeTypeAdded, ""), SeverityInfo}}
		}
		return []fieldPart{{ruleKey(CategoryField, ChangeTypeAdded, subTypeRequired), SeverityWarning}}
	case fd.new == nil:
		return []fieldPart{{ruleKey(CategoryField, ChangeTypeRemoved, ""), SeverityError}}
	}

	parts := make([]fieldPart, 0, 3)
	if fd.typesChanged() {
		parts = append(parts, fieldPart{ruleKey(CategoryField, ChangeTypeModified, subTypeTypes), SeverityError})
	}
	if fd.requiredChanged() {
		switch {
		case fd.old.Required == schema.RequirementUnknown || fd.new.Required == schema.RequirementUnknown:
			parts = append(parts, fieldPart{ruleKey(CategoryField, ChangeTypeModified, subTypeRequirementUnknown), SeverityWarning})
		case fd.new.Required == schema.RequirementRequired:
			parts = append(parts, fieldPart{ruleKey(CategoryField, ChangeTypeModified, subTypeRequiredTightened), SeverityWarning})
		default:
			parts = append(parts, fieldPart{ruleKey(CategoryField, ChangeTypeModified, subTypeRequiredRelaxed), SeverityInfo})
		}
	}
	if fd.descriptionChanged() {
		parts = append(parts, fieldPart{ruleKey(CategoryField, ChangeTypeModified, subTypeDescription), SeverityInfo})
	}
	return parts
}

// addFieldChanges appends one change per field delta. A modified field takes
// the highest severity among its non-ignored parts and is dropped only when
// every part is ignored.
func (d *Differ) addFieldChanges(changes *[]Change, ownerPath string, deltas []fieldDelta) {
	for _, fd := range deltas {
		c := Change{
			Path:     ownerPath + ".fields." + fd.name,
			Category: CategoryField,
			Message:  fd.message(),
		}
		switch {
		case fd.old == nil:
			c.Type = ChangeTypeAdded
			c.NewValue = fd.new.TypesString()
		case fd.new == nil:
			c.Type = ChangeTypeRemoved
			c.OldValue = fd.old.TypesString()
		default:
			c.Type = ChangeTypeModified
			if fd.typesChanged() {
				c.OldValue = fd.old.TypesString()
				c.NewValue = fd.new.TypesString()
			}
		}

		if d.Mode != ModeBreaking {
			c.Severity = SeverityInfo
			*changes = append(*changes, c)
			continue
		}

		kept := false
		for _, part := range fieldParts(fd) {
			sev, ignore := d.BreakingRules.getRule(part.key).ApplyRule(part.severity)
			if ignore {
				continue
			}
			if !kept {
				c.Severity = sev
				kept = true
				continue
			}
			c.Severity = severity.Max(c.Severity, sev)
		}
		if kept {
			*changes = append(*changes, c)
		}
	}
}
