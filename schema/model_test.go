package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequirementString(t *testing.T) {
	tests := []struct {
		req  Requirement
		want string
	}{
		{RequirementUnknown, "unknown"},
		{RequirementOptional, "false"},
		{RequirementRequired, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.String())
		})
	}
	assert.Equal(t, RequirementRequired, RequirementOf(true))
	assert.Equal(t, RequirementOptional, RequirementOf(false))
}

func TestFieldSameTypes(t *testing.T) {
	tests := []struct {
		name string
		a, b Field
		want bool
	}{
		{"identical", NewField("x", true, "A", "B"), NewField("x", true, "A", "B"), true},
		{"order matters", NewField("x", true, "A", "B"), NewField("x", true, "B", "A"), false},
		{"different length", NewField("x", true, "A"), NewField("x", true, "A", "B"), false},
		{"both undeclared", Field{Name: "x"}, Field{Name: "x"}, true},
		{"undeclared vs empty", Field{Name: "x"}, NewField("x", true), false},
		{"empty vs empty", NewField("x", true), NewField("x", false), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.SameTypes(tt.b))
			assert.Equal(t, tt.want, tt.b.SameTypes(tt.a))
		})
	}
}

func TestFieldTypesString(t *testing.T) {
	assert.Equal(t, "[Integer, String]", NewField("id", true, "Integer", "String").TypesString())
	assert.Equal(t, "[]", NewField("id", true).TypesString())
	assert.Equal(t, "unknown", Field{Name: "id"}.TypesString())
}

func TestEntityKind(t *testing.T) {
	tests := []struct {
		name   string
		entity *Entity
		want   Kind
	}{
		{"struct", &Entity{Name: "User", Fields: []Field{NewField("id", true, "int")}}, KindStruct},
		{"union", &Entity{Name: "Origin", Subtypes: []string{"A", "B"}}, KindUnion},
		{"union with fields", &Entity{Name: "Odd", Subtypes: []string{"A"}, Fields: []Field{NewField("x", true)}}, KindUnion},
		{"marker", &Entity{Name: "ForceReply"}, KindMarker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entity.Kind())
			assert.Equal(t, tt.want == KindUnion, tt.entity.IsUnion())
		})
	}
}

func TestEmptySnapshot(t *testing.T) {
	s := Empty()
	assert.Equal(t, UnknownVersion, s.Version)
	assert.Empty(t, s.ReleaseDate)
	assert.NotNil(t, s.Entities)
	assert.NotNil(t, s.Operations)
	assert.Empty(t, s.EntityNames())
	assert.Empty(t, s.OperationNames())

	assert.Same(t, s, OrEmpty(s))
	assert.Equal(t, UnknownVersion, OrEmpty(nil).Version)
}

func TestSnapshotAccessors(t *testing.T) {
	s := Empty()
	s.Entities["Zeta"] = &Entity{Name: "Zeta"}
	s.Entities["Alpha"] = &Entity{Name: "Alpha", Fields: []Field{NewField("a", true, "int")}}
	s.Entities["Mid"] = &Entity{Name: "Mid", Subtypes: []string{"Alpha", "Zeta"}}
	s.Operations["sendMessage"] = &Operation{Name: "sendMessage", Fields: []Field{NewField("chat_id", true, "int"), NewField("text", true, "string")}}
	s.Operations["getMe"] = &Operation{Name: "getMe"}

	assert.Equal(t, []string{"Alpha", "Mid", "Zeta"}, s.EntityNames())
	assert.Equal(t, []string{"getMe", "sendMessage"}, s.OperationNames())

	e, ok := s.Entity("Alpha")
	assert.True(t, ok)
	assert.Equal(t, "Alpha", e.Name)
	_, ok = s.Entity("Missing")
	assert.False(t, ok)

	op, ok := s.Operation("getMe")
	assert.True(t, ok)
	assert.Equal(t, "getMe", op.Name)

	stats := s.Stats()
	assert.Equal(t, DocumentStats{
		EntityCount:    3,
		OperationCount: 2,
		StructCount:    1,
		UnionCount:     1,
		MarkerCount:    1,
		FieldCount:     1,
		ParameterCount: 2,
	}, stats)
}

func TestSnapshotNilDefinitions(t *testing.T) {
	s := Empty()
	s.Entities["ForceReply"] = nil
	s.Operations["getMe"] = nil

	e, ok := s.Entity("ForceReply")
	assert.True(t, ok)
	assert.Equal(t, &Entity{Name: "ForceReply"}, e)
	assert.Equal(t, KindMarker, e.Kind())

	op, ok := s.Operation("getMe")
	assert.True(t, ok)
	assert.Equal(t, &Operation{Name: "getMe"}, op)

	assert.Equal(t, DocumentStats{EntityCount: 1, OperationCount: 1, MarkerCount: 1}, s.Stats())
	assert.NoError(t, s.Validate())
}
