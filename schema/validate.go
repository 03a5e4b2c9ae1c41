package schema

import (
	"fmt"

	"github.com/erraggy/specdelta/specerrors"
)

// Validate checks the preconditions the differ relies on: every entity and
// operation name matches its key, and no field list repeats a field name.
// Owners are checked in lexicographic order so the reported error is stable.
// A nil definition is treated as empty and always passes.
func (s *Snapshot) Validate() error {
	for _, name := range s.EntityNames() {
		e := s.Entities[name]
		if e == nil {
			continue
		}
		if e.Name != "" && e.Name != name {
			return &specerrors.MalformedSchemaError{
				Owner:   name,
				Message: fmt.Sprintf("entity declares name %q under key %q", e.Name, name),
			}
		}
		if _, err := IndexFields(name, e.Fields, false); err != nil {
			return err
		}
	}
	for _, name := range s.OperationNames() {
		op := s.Operations[name]
		if op == nil {
			continue
		}
		if op.Name != "" && op.Name != name {
			return &specerrors.MalformedSchemaError{
				Owner:   name,
				Message: fmt.Sprintf("operation declares name %q under key %q", op.Name, name),
			}
		}
		if _, err := IndexFields(name, op.Fields, false); err != nil {
			return err
		}
	}
	return nil
}

// IndexFields maps field names to their position in fields.
// A repeated name is a *specerrors.MalformedSchemaError unless lastWins is set,
// in which case the later declaration replaces the earlier one.
func IndexFields(owner string, fields []Field, lastWins bool) (map[string]int, error) {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if _, dup := index[f.Name]; dup && !lastWins {
			return nil, &specerrors.MalformedSchemaError{
				Owner:     owner,
				Field:     f.Name,
				Duplicate: true,
			}
		}
		index[f.Name] = i
	}
	return index, nil
}

// DedupeFields returns fields with repeated names collapsed so that the last
// declaration of each name wins, keeping the position of the first occurrence.
func DedupeFields(fields []Field) []Field {
	index, _ := IndexFields("", fields, true)
	if len(index) == len(fields) {
		return fields
	}
	out := make([]Field, 0, len(index))
	seen := make(map[string]bool, len(index))
	for _, f := range fields {
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		out = append(out, fields[index[f.Name]])
	}
	return out
}
