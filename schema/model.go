package schema

import (
	"slices"
	"strings"
)

// UnknownVersion is the version reported for snapshots that do not declare one.
const UnknownVersion = "unknown"

// Requirement is the tri-state required flag of a field.
type Requirement int8

const (
	// RequirementUnknown means the document did not state whether the field is required
	RequirementUnknown Requirement = iota
	// RequirementOptional means the field may be omitted
	RequirementOptional
	// RequirementRequired means the field must be present
	RequirementRequired
)

// RequirementOf converts a concrete required flag to a Requirement.
func RequirementOf(required bool) Requirement {
	if required {
		return RequirementRequired
	}
	return RequirementOptional
}

// String returns "true", "false", or "unknown".
func (r Requirement) String() string {
	switch r {
	case RequirementRequired:
		return "true"
	case RequirementOptional:
		return "false"
	default:
		return "unknown"
	}
}

// Field is one named, typed member of an entity or one parameter of an operation.
type Field struct {
	// Name identifies the field within its owner's field list
	Name string
	// Types lists the possible type names, in declaration order
	Types []string
	// TypesDeclared is false when the document omitted the types list
	TypesDeclared bool
	// Required is the field's required flag
	Required Requirement
	// Description is free text, compared only for equality
	Description string
}

// NewField returns a field with a concrete required flag and declared types.
func NewField(name string, required bool, types ...string) Field {
	if types == nil {
		types = []string{}
	}
	return Field{
		Name:          name,
		Types:         types,
		TypesDeclared: true,
		Required:      RequirementOf(required),
	}
}

// SameTypes reports whether f and other declare the same type sequence.
// Order matters; an undeclared list equals only another undeclared list.
func (f Field) SameTypes(other Field) bool {
	if f.TypesDeclared != other.TypesDeclared {
		return false
	}
	return slices.Equal(f.Types, other.Types)
}

// TypesString formats the type list as "[A, B]", or "unknown" when undeclared.
func (f Field) TypesString() string {
	if !f.TypesDeclared {
		return "unknown"
	}
	return "[" + strings.Join(f.Types, ", ") + "]"
}

// Kind classifies an entity by shape.
type Kind string

const (
	// KindStruct is a record-like entity with fields
	KindStruct Kind = "struct"
	// KindUnion is a discriminated union over its subtypes
	KindUnion Kind = "union"
	// KindMarker is an entity with neither fields nor subtypes
	KindMarker Kind = "marker"
)

// Entity is a named data type of the schema.
type Entity struct {
	// Name matches the entity's key in the snapshot
	Name string
	// Fields lists the entity's fields in declaration order
	Fields []Field
	// Subtypes names the member entities of a union; order is irrelevant
	Subtypes []string
	// Description is free text, compared only for equality
	Description string
}

// IsUnion reports whether the entity declares subtypes.
func (e *Entity) IsUnion() bool {
	return len(e.Subtypes) > 0
}

// Kind returns the entity's shape category.
func (e *Entity) Kind() Kind {
	switch {
	case e.IsUnion():
		return KindUnion
	case len(e.Fields) > 0:
		return KindStruct
	default:
		return KindMarker
	}
}

// Operation is a named callable action of the schema.
type Operation struct {
	// Name matches the operation's key in the snapshot
	Name string
	// Fields lists the operation's parameters in declaration order
	Fields []Field
	// Returns is an opaque return type descriptor (string or structured value)
	Returns any
	// Description is free text; it is carried through but not diffed
	Description string
}

// Snapshot is one versioned capture of all entities and operations.
type Snapshot struct {
	// Version is the schema's declared version, or UnknownVersion
	Version string
	// ReleaseDate is the schema's declared release date, possibly empty
	ReleaseDate string
	// Entities maps entity name to definition
	Entities map[string]*Entity
	// Operations maps operation name to definition
	Operations map[string]*Operation
}

// Empty returns a snapshot with no entities or operations and an unknown version.
func Empty() *Snapshot {
	return &Snapshot{
		Version:    UnknownVersion,
		Entities:   map[string]*Entity{},
		Operations: map[string]*Operation{},
	}
}

// OrEmpty returns s, or Empty() when s is nil.
func OrEmpty(s *Snapshot) *Snapshot {
	if s == nil {
		return Empty()
	}
	return s
}

// EntityOrEmpty returns e, or an empty definition named name when e is nil.
func EntityOrEmpty(name string, e *Entity) *Entity {
	if e == nil {
		return &Entity{Name: name}
	}
	return e
}

// OperationOrEmpty returns op, or an empty definition named name when op is nil.
func OperationOrEmpty(name string, op *Operation) *Operation {
	if op == nil {
		return &Operation{Name: name}
	}
	return op
}

// Entity returns the named entity and whether it exists.
// A key mapped to nil yields an empty definition.
func (s *Snapshot) Entity(name string) (*Entity, bool) {
	e, ok := s.Entities[name]
	if !ok {
		return nil, false
	}
	return EntityOrEmpty(name, e), true
}

// Operation returns the named operation and whether it exists.
// A key mapped to nil yields an empty definition.
func (s *Snapshot) Operation(name string) (*Operation, bool) {
	op, ok := s.Operations[name]
	if !ok {
		return nil, false
	}
	return OperationOrEmpty(name, op), true
}

// EntityNames returns all entity names in lexicographic order.
func (s *Snapshot) EntityNames() []string {
	return sortedKeys(s.Entities)
}

// OperationNames returns all operation names in lexicographic order.
func (s *Snapshot) OperationNames() []string {
	return sortedKeys(s.Operations)
}

// DocumentStats contains statistical information about a snapshot.
type DocumentStats struct {
	EntityCount    int `json:"entity_count"`
	OperationCount int `json:"operation_count"`
	StructCount    int `json:"struct_count"`
	UnionCount     int `json:"union_count"`
	MarkerCount    int `json:"marker_count"`
	FieldCount     int `json:"field_count"`
	ParameterCount int `json:"parameter_count"`
}

// Stats counts the snapshot's entities by kind, operations, and fields.
func (s *Snapshot) Stats() DocumentStats {
	stats := DocumentStats{
		EntityCount:    len(s.Entities),
		OperationCount: len(s.Operations),
	}
	for name, e := range s.Entities {
		e = EntityOrEmpty(name, e)
		stats.FieldCount += len(e.Fields)
		switch e.Kind() {
		case KindStruct:
			stats.StructCount++
		case KindUnion:
			stats.UnionCount++
		case KindMarker:
			stats.MarkerCount++
		}
	}
	for _, op := range s.Operations {
		if op == nil {
			continue
		}
		stats.ParameterCount += len(op.Fields)
	}
	return stats
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
