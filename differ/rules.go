package differ

import (
	"github.com/erraggy/specdelta/internal/severity"
)

// Field rule sub-types
const (
	subTypeRequired           = "required"
	subTypeTypes              = "types"
	subTypeRequiredTightened  = "required_tightened"
	subTypeRequiredRelaxed    = "required_relaxed"
	subTypeRequirementUnknown = "required_unknown"
	subTypeDescription        = "description"
)

// BreakingChangeRule configures how a specific change type is treated.
type BreakingChangeRule struct {
	// Severity overrides the default severity for this change type.
	// If nil, the default severity is used.
	Severity *Severity

	// Ignore completely ignores this change type (not included in Changes).
	// The added/removed/changed collections of DiffResult are unaffected.
	Ignore bool
}

// BreakingRulesConfig configures which changes are considered breaking
// and their severity levels in ModeBreaking.
//
// Example:
//
//	rules := &differ.BreakingRulesConfig{
//	    Variant: &differ.VariantRules{
//	        Added: &differ.BreakingChangeRule{Severity: differ.SeverityPtr(differ.SeverityInfo)},
//	    },
//	    Entity: &differ.EntityRules{
//	        DescriptionModified: &differ.BreakingChangeRule{Ignore: true},
//	    },
//	}
//	d := differ.New()
//	d.Mode = differ.ModeBreaking
//	d.BreakingRules = rules
type BreakingRulesConfig struct {
	// Entity configures rules for entity-level changes
	Entity *EntityRules

	// Operation configures rules for operation-level changes
	Operation *OperationRules

	// Field configures rules for entity field and operation parameter changes
	Field *FieldRules

	// Variant configures rules for union member changes
	Variant *VariantRules
}

// EntityRules configures rules for entity changes.
type EntityRules struct {
	// Added configures the rule for a new entity.
	// Default: SeverityInfo
	Added *BreakingChangeRule

	// Removed configures the rule for a removed entity.
	// Default: SeverityCritical
	Removed *BreakingChangeRule

	// DescriptionModified configures the rule for entity description changes.
	// Default: SeverityInfo
	DescriptionModified *BreakingChangeRule
}

// OperationRules configures rules for operation changes.
type OperationRules struct {
	// Added configures the rule for a new operation.
	// Default: SeverityInfo
	Added *BreakingChangeRule

	// Removed configures the rule for a removed operation.
	// Default: SeverityCritical
	Removed *BreakingChangeRule

	// ReturnsModified configures the rule for return type changes.
	// Default: SeverityError
	ReturnsModified *BreakingChangeRule
}

// FieldRules configures rules for field and parameter changes.
type FieldRules struct {
	// Added configures the rule for a new optional field.
	// Default: SeverityInfo
	Added *BreakingChangeRule

	// RequiredAdded configures the rule for a new required field, or one
	// whose requirement is unknown.
	// Default: SeverityWarning
	RequiredAdded *BreakingChangeRule

	// Removed configures the rule for a removed field.
	// Default: SeverityError
	Removed *BreakingChangeRule

	// TypesChanged configures the rule for a changed type list.
	// Default: SeverityError
	TypesChanged *BreakingChangeRule

	// RequiredTightened configures the rule for optional becoming required.
	// Default: SeverityWarning
	RequiredTightened *BreakingChangeRule

	// RequiredRelaxed configures the rule for required becoming optional.
	// Default: SeverityInfo
	RequiredRelaxed *BreakingChangeRule

	// RequirementUnknown configures the rule for a required flag that is
	// unknown on either side.
	// Default: SeverityWarning
	RequirementUnknown *BreakingChangeRule

	// DescriptionModified configures the rule for field description changes.
	// Default: SeverityInfo
	DescriptionModified *BreakingChangeRule
}

// VariantRules configures rules for union member changes.
type VariantRules struct {
	// Added configures the rule for a new union member.
	// Default: SeverityWarning
	Added *BreakingChangeRule

	// Removed configures the rule for a removed union member.
	// Default: SeverityError
	Removed *BreakingChangeRule
}

// SeverityPtr returns a pointer to the given severity.
// This is a convenience function for creating BreakingChangeRule configurations.
func SeverityPtr(s Severity) *Severity {
	return &s
}

// RuleKey identifies a specific change type for rule lookup.
type RuleKey struct {
	Category   ChangeCategory
	ChangeType ChangeType
	SubType    string
}

func ruleKey(category ChangeCategory, changeType ChangeType, subType string) RuleKey {
	return RuleKey{Category: category, ChangeType: changeType, SubType: subType}
}

// getRule returns the configured rule for key, or nil for the default.
func (c *BreakingRulesConfig) getRule(key RuleKey) *BreakingChangeRule {
	if c == nil {
		return nil
	}

	switch key.Category {
	case CategoryEntity, CategoryDescription:
		return c.getEntityRule(key)
	case CategoryOperation, CategoryReturns:
		return c.getOperationRule(key)
	case CategoryField:
		return c.getFieldRule(key)
	case CategoryVariant:
		return c.getVariantRule(key)
	}
	return nil
}

func (c *BreakingRulesConfig) getEntityRule(key RuleKey) *BreakingChangeRule {
	if c.Entity == nil {
		return nil
	}
	switch key.ChangeType {
	case ChangeTypeAdded:
		return c.Entity.Added
	case ChangeTypeRemoved:
		return c.Entity.Removed
	case ChangeTypeModified:
		return c.Entity.DescriptionModified
	}
	return nil
}

func (c *BreakingRulesConfig) getOperationRule(key RuleKey) *BreakingChangeRule {
	if c.Operation == nil {
		return nil
	}
	switch key.ChangeType {
	case ChangeTypeAdded:
		return c.Operation.Added
	case ChangeTypeRemoved:
		return c.Operation.Removed
	case ChangeTypeModified:
		return c.Operation.ReturnsModified
	}
	return nil
}

func (c *BreakingRulesConfig) getFieldRule(key RuleKey) *BreakingChangeRule {
	if c.Field == nil {
		return nil
	}
	switch key.ChangeType {
	case ChangeTypeAdded:
		if key.SubType == subTypeRequired {
			return c.Field.RequiredAdded
		}
		return c.Field.Added
	case ChangeTypeRemoved:
		return c.Field.Removed
	case ChangeTypeModified:
		switch key.SubType {
		case subTypeTypes:
			return c.Field.TypesChanged
		case subTypeRequiredTightened:
			return c.Field.RequiredTightened
		case subTypeRequiredRelaxed:
			return c.Field.RequiredRelaxed
		case subTypeRequirementUnknown:
			return c.Field.RequirementUnknown
		case subTypeDescription:
			return c.Field.DescriptionModified
		}
	}
	return nil
}

func (c *BreakingRulesConfig) getVariantRule(key RuleKey) *BreakingChangeRule {
	if c.Variant == nil {
		return nil
	}
	switch key.ChangeType {
	case ChangeTypeAdded:
		return c.Variant.Added
	case ChangeTypeRemoved:
		return c.Variant.Removed
	}
	return nil
}

// ApplyRule applies a rule to the given default severity.
// Returns the (possibly overridden) severity and whether to ignore the change.
func (r *BreakingChangeRule) ApplyRule(defaultSeverity Severity) (Severity, bool) {
	if r == nil {
		return defaultSeverity, false
	}
	if r.Ignore {
		return 0, true
	}
	if r.Severity != nil {
		return *r.Severity, false
	}
	return defaultSeverity, false
}

// DefaultRules returns a BreakingRulesConfig with all default behaviors.
// This is equivalent to not setting any rules.
func DefaultRules() *BreakingRulesConfig {
	return &BreakingRulesConfig{}
}

// StrictRules returns a BreakingRulesConfig that treats more changes as breaking.
// New required fields, tightened requirements, and new union members become errors.
func StrictRules() *BreakingRulesConfig {
	return &BreakingRulesConfig{
		Field: &FieldRules{
			RequiredAdded:      &BreakingChangeRule{Severity: SeverityPtr(severity.SeverityError)},
			RequiredTightened:  &BreakingChangeRule{Severity: SeverityPtr(severity.SeverityError)},
			RequirementUnknown: &BreakingChangeRule{Severity: SeverityPtr(severity.SeverityError)},
		},
		Variant: &VariantRules{
			Added: &BreakingChangeRule{Severity: SeverityPtr(severity.SeverityError)},
		},
	}
}

// LenientRules returns a BreakingRulesConfig that treats fewer changes as breaking.
// Field removals, type changes, and lost union members become warnings.
func LenientRules() *BreakingRulesConfig {
	return &BreakingRulesConfig{
		Field: &FieldRules{
			Removed:      &BreakingChangeRule{Severity: SeverityPtr(severity.SeverityWarning)},
			TypesChanged: &BreakingChangeRule{Severity: SeverityPtr(severity.SeverityWarning)},
		},
		Variant: &VariantRules{
			Removed: &BreakingChangeRule{Severity: SeverityPtr(severity.SeverityWarning)},
		},
	}
}
