package differ

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/specdelta/schema"
)

// variantDelta holds the subtype names a union gained and lost, each sorted.
type variantDelta struct {
	added   []string
	removed []string
}

func (v variantDelta) empty() bool {
	return len(v.added) == 0 && len(v.removed) == 0
}

func (v variantDelta) message() string {
	parts := make([]string, 0, 2)
	if len(v.added) > 0 {
		parts = append(parts, "added subtypes: ["+strings.Join(v.added, ", ")+"]")
	}
	if len(v.removed) > 0 {
		parts = append(parts, "removed subtypes: ["+strings.Join(v.removed, ", ")+"]")
	}
	return strings.Join(parts, "; ")
}

// diffSubtypes compares subtype lists as sets
func diffSubtypes(oldSubtypes, newSubtypes []string) variantDelta {
	oldSet := make(map[string]struct{}, len(oldSubtypes))
	for _, s := range oldSubtypes {
		oldSet[s] = struct{}{}
	}
	newSet := make(map[string]struct{}, len(newSubtypes))
	for _, s := range newSubtypes {
		newSet[s] = struct{}{}
	}

	var v variantDelta
	for s := range newSet {
		if _, ok := oldSet[s]; !ok {
			v.added = append(v.added, s)
		}
	}
	for s := range oldSet {
		if _, ok := newSet[s]; !ok {
			v.removed = append(v.removed, s)
		}
	}
	slices.Sort(v.added)
	slices.Sort(v.removed)
	return v
}

// entityDelta is the structured form of one entity's changes
type entityDelta struct {
	fields      []fieldDelta
	variants    variantDelta
	description bool
}

func (e entityDelta) changeSet() ChangeSet {
	cs := deltasToChangeSet(e.fields)
	if !e.variants.empty() {
		cs[KeyVariants] = e.variants.message()
	}
	if e.description {
		cs[KeyDescription] = "description updated"
	}
	return cs
}

func compareEntities(name string, oldEntity, newEntity *schema.Entity, policy DuplicateFieldPolicy) (entityDelta, error) {
	fields, err := diffFields(name, oldEntity.Fields, newEntity.Fields, policy)
	if err != nil {
		return entityDelta{}, err
	}
	return entityDelta{
		fields:      fields,
		variants:    diffSubtypes(oldEntity.Subtypes, newEntity.Subtypes),
		description: oldEntity.Description != newEntity.Description,
	}, nil
}

// operationDelta is the structured form of one operation's changes
type operationDelta struct {
	fields  []fieldDelta
	returns bool
}

func (o operationDelta) changeSet(oldOp, newOp *schema.Operation) ChangeSet {
	cs := deltasToChangeSet(o.fields)
	if o.returns {
		cs[KeyReturns] = returnsMessage(oldOp, newOp)
	}
	return cs
}

func returnsMessage(oldOp, newOp *schema.Operation) string {
	return fmt.Sprintf("return type changed from %s to %s",
		schema.FormatReturns(oldOp.Returns), schema.FormatReturns(newOp.Returns))
}

func compareOperations(name string, oldOp, newOp *schema.Operation, policy DuplicateFieldPolicy) (operationDelta, error) {
	fields, err := diffFields(name, oldOp.Fields, newOp.Fields, policy)
	if err != nil {
		return operationDelta{}, err
	}
	return operationDelta{
		fields:  fields,
		returns: !schema.ReturnsEqual(oldOp.Returns, newOp.Returns),
	}, nil
}

// DiffEntity compares two versions of one entity. An empty ChangeSet means
// the entity is unchanged. Shape changes between struct and union are
// reported as field and variant changes, never as a replacement. A nil
// entity is compared as an empty definition.
func DiffEntity(oldEntity, newEntity *schema.Entity) (ChangeSet, error) {
	name := ""
	switch {
	case newEntity != nil:
		name = newEntity.Name
	case oldEntity != nil:
		name = oldEntity.Name
	}
	oldEntity, newEntity = schema.EntityOrEmpty(name, oldEntity), schema.EntityOrEmpty(name, newEntity)
	delta, err := compareEntities(name, oldEntity, newEntity, DuplicateReject)
	if err != nil {
		return nil, err
	}
	return delta.changeSet(), nil
}

// DiffOperation compares two versions of one operation. An empty ChangeSet
// means the operation is unchanged. Operation descriptions are not compared.
// A nil operation is compared as an empty definition.
func DiffOperation(oldOp, newOp *schema.Operation) (ChangeSet, error) {
	name := ""
	switch {
	case newOp != nil:
		name = newOp.Name
	case oldOp != nil:
		name = oldOp.Name
	}
	oldOp, newOp = schema.OperationOrEmpty(name, oldOp), schema.OperationOrEmpty(name, newOp)
	delta, err := compareOperations(name, oldOp, newOp, DuplicateReject)
	if err != nil {
		return nil, err
	}
	return delta.changeSet(oldOp, newOp), nil
}

// diffEntities fills the entity collections and changes of result
func (d *Differ) diffEntities(oldSnap, newSnap *schema.Snapshot, result *DiffResult) error {
	added, removed, common := partition(oldSnap.Entities, newSnap.Entities)
	result.AddedEntities = added
	result.RemovedEntities = removed

	buf := acquireChangeBuffer()
	defer buf.release()
	changes := &buf.changes

	for _, name := range added {
		d.addChange(changes, ruleKey(CategoryEntity, ChangeTypeAdded, ""), Change{
			Path:     "types." + name,
			Type:     ChangeTypeAdded,
			Category: CategoryEntity,
			NewValue: name,
			Message:  fmt.Sprintf("entity %q added", name),
		}, SeverityInfo)
	}
	for _, name := range removed {
		d.addChange(changes, ruleKey(CategoryEntity, ChangeTypeRemoved, ""), Change{
			Path:     "types." + name,
			Type:     ChangeTypeRemoved,
			Category: CategoryEntity,
			OldValue: name,
			Message:  fmt.Sprintf("entity %q removed", name),
		}, SeverityCritical)
	}

	for _, name := range common {
		oldEntity, _ := oldSnap.Entity(name)
		newEntity, _ := newSnap.Entity(name)
		delta, err := compareEntities(name, oldEntity, newEntity, d.DuplicateFields)
		if err != nil {
			return err
		}
		cs := delta.changeSet()
		if len(cs) == 0 {
			continue
		}
		result.ChangedEntities[name] = cs

		path := "types." + name
		d.addFieldChanges(changes, path, delta.fields)
		for _, v := range delta.variants.added {
			d.addChange(changes, ruleKey(CategoryVariant, ChangeTypeAdded, ""), Change{
				Path:     path + ".subtypes",
				Type:     ChangeTypeAdded,
				Category: CategoryVariant,
				NewValue: v,
				Message:  fmt.Sprintf("variant %q added", v),
			}, SeverityWarning)
		}
		for _, v := range delta.variants.removed {
			d.addChange(changes, ruleKey(CategoryVariant, ChangeTypeRemoved, ""), Change{
				Path:     path + ".subtypes",
				Type:     ChangeTypeRemoved,
				Category: CategoryVariant,
				OldValue: v,
				Message:  fmt.Sprintf("variant %q removed", v),
			}, SeverityError)
		}
		if delta.description {
			d.addChange(changes, ruleKey(CategoryDescription, ChangeTypeModified, ""), Change{
				Path:     path + ".description",
				Type:     ChangeTypeModified,
				Category: CategoryDescription,
				OldValue: oldEntity.Description,
				NewValue: newEntity.Description,
				Message:  "description updated",
			}, SeverityInfo)
		}
	}

	result.Changes = append(result.Changes, *changes...)
	return nil
}

// diffOperations fills the operation collections and changes of result
func (d *Differ) diffOperations(oldSnap, newSnap *schema.Snapshot, result *DiffResult) error {
	added, removed, common := partition(oldSnap.Operations, newSnap.Operations)
	result.AddedOperations = added
	result.RemovedOperations = removed

	buf := acquireChangeBuffer()
	defer buf.release()
	changes := &buf.changes

	for _, name := range added {
		d.addChange(changes, ruleKey(CategoryOperation, ChangeTypeAdded, ""), Change{
			Path:     "methods." + name,
			Type:     ChangeTypeAdded,
			Category: CategoryOperation,
			NewValue: name,
			Message:  fmt.Sprintf("operation %q added", name),
		}, SeverityInfo)
	}
	for _, name := range removed {
		d.addChange(changes, ruleKey(CategoryOperation, ChangeTypeRemoved, ""), Change{
			Path:     "methods." + name,
			Type:     ChangeTypeRemoved,
			Category: CategoryOperation,
			OldValue: name,
			Message:  fmt.Sprintf("operation %q removed", name),
		}, SeverityCritical)
	}

	for _, name := range common {
		oldOp, _ := oldSnap.Operation(name)
		newOp, _ := newSnap.Operation(name)
		delta, err := compareOperations(name, oldOp, newOp, d.DuplicateFields)
		if err != nil {
			return err
		}
		cs := delta.changeSet(oldOp, newOp)
		if len(cs) == 0 {
			continue
		}
		result.ChangedOperations[name] = cs

		path := "methods." + name
		d.addFieldChanges(changes, path, delta.fields)
		if delta.returns {
			d.addChange(changes, ruleKey(CategoryReturns, ChangeTypeModified, ""), Change{
				Path:     path + ".returns",
				Type:     ChangeTypeModified,
				Category: CategoryReturns,
				OldValue: oldOp.Returns,
				NewValue: newOp.Returns,
				Message:  returnsMessage(oldOp, newOp),
			}, SeverityError)
		}
	}

	result.Changes = append(result.Changes, *changes...)
	return nil
}
