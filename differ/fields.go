package differ

import (
	"fmt"
	"strings"

	"github.com/erraggy/specdelta/schema"
)

// fieldDelta describes one field that differs between two field lists.
// old is nil for additions and new is nil for removals.
type fieldDelta struct {
	name string
	old  *schema.Field
	new  *schema.Field
}

func (fd fieldDelta) typesChanged() bool {
	return !fd.old.SameTypes(*fd.new)
}

func (fd fieldDelta) requiredChanged() bool {
	return fd.old.Required != fd.new.Required
}

func (fd fieldDelta) descriptionChanged() bool {
	return fd.old.Description != fd.new.Description
}

func (fd fieldDelta) changed() bool {
	return fd.typesChanged() || fd.requiredChanged() || fd.descriptionChanged()
}

// message renders the delta. Modifications list every differing attribute.
func (fd fieldDelta) message() string {
	switch {
	case fd.old == nil:
		return "added, with types = " + fd.new.TypesString()
	case fd.new == nil:
		return "removed"
	}

	parts := make([]string, 0, 3)
	if fd.typesChanged() {
		parts = append(parts, fmt.Sprintf("types changed from %s to %s", fd.old.TypesString(), fd.new.TypesString()))
	}
	if fd.requiredChanged() {
		parts = append(parts, "required flag became "+fd.new.Required.String())
	}
	if fd.descriptionChanged() {
		parts = append(parts, "description updated")
	}
	return strings.Join(parts, "; ")
}

// diffFields pairs fields by name and returns a delta for every field that
// was added, removed, or modified. Unchanged fields produce nothing.
// Deltas follow new-list order, then removed fields in old-list order.
func diffFields(owner string, oldFields, newFields []schema.Field, policy DuplicateFieldPolicy) ([]fieldDelta, error) {
	lastWins := policy == DuplicateLastWins
	oldIndex, err := schema.IndexFields(owner, oldFields, lastWins)
	if err != nil {
		return nil, err
	}
	newIndex, err := schema.IndexFields(owner, newFields, lastWins)
	if err != nil {
		return nil, err
	}

	var deltas []fieldDelta
	for i := range newFields {
		nf := &newFields[i]
		// Skip declarations shadowed by a later duplicate.
		if newIndex[nf.Name] != i {
			continue
		}
		oi, ok := oldIndex[nf.Name]
		if !ok {
			deltas = append(deltas, fieldDelta{name: nf.Name, new: nf})
			continue
		}
		delta := fieldDelta{name: nf.Name, old: &oldFields[oi], new: nf}
		if delta.changed() {
			deltas = append(deltas, delta)
		}
	}
	for i := range oldFields {
		of := &oldFields[i]
		if oldIndex[of.Name] != i {
			continue
		}
		if _, ok := newIndex[of.Name]; !ok {
			deltas = append(deltas, fieldDelta{name: of.Name, old: of})
		}
	}
	return deltas, nil
}

func deltasToChangeSet(deltas []fieldDelta) ChangeSet {
	cs := make(ChangeSet, len(deltas))
	for _, fd := range deltas {
		cs[fd.name] = fd.message()
	}
	return cs
}

// CompareFields compares two field lists by name and describes every field that
// was added, removed, or modified. Unchanged fields have no entry.
// A name repeated within either list is a *specerrors.MalformedSchemaError.
func CompareFields(oldFields, newFields []schema.Field) (ChangeSet, error) {
	deltas, err := diffFields("", oldFields, newFields, DuplicateReject)
	if err != nil {
		return nil, err
	}
	return deltasToChangeSet(deltas), nil
}
