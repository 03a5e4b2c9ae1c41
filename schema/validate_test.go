package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/specdelta/specerrors"
)

func TestSnapshotValidate(t *testing.T) {
	t.Run("valid snapshot", func(t *testing.T) {
		s := Empty()
		s.Entities["User"] = &Entity{Name: "User", Fields: []Field{NewField("id", true, "int")}}
		s.Operations["getMe"] = &Operation{Name: "getMe", Returns: "User"}
		assert.NoError(t, s.Validate())
	})

	t.Run("duplicate entity field", func(t *testing.T) {
		s := Empty()
		s.Entities["User"] = &Entity{Name: "User", Fields: []Field{
			NewField("id", true, "int"),
			NewField("id", false, "string"),
		}}
		err := s.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, specerrors.ErrMalformedSchema))
		assert.True(t, errors.Is(err, specerrors.ErrDuplicateField))

		var malformed *specerrors.MalformedSchemaError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, "User", malformed.Owner)
		assert.Equal(t, "id", malformed.Field)
	})

	t.Run("duplicate operation parameter", func(t *testing.T) {
		s := Empty()
		s.Operations["send"] = &Operation{Name: "send", Fields: []Field{
			NewField("text", true, "string"),
			NewField("text", true, "string"),
		}}
		err := s.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, specerrors.ErrDuplicateField))
	})

	t.Run("name disagrees with key", func(t *testing.T) {
		s := Empty()
		s.Entities["User"] = &Entity{Name: "Account"}
		err := s.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, specerrors.ErrMalformedSchema))
		assert.False(t, errors.Is(err, specerrors.ErrDuplicateField))
	})

	t.Run("empty name is accepted", func(t *testing.T) {
		s := Empty()
		s.Entities["User"] = &Entity{}
		assert.NoError(t, s.Validate())
	})
}

func TestIndexFields(t *testing.T) {
	fields := []Field{
		NewField("a", true, "int"),
		NewField("b", true, "int"),
		NewField("a", false, "string"),
	}

	_, err := IndexFields("Owner", fields, false)
	require.Error(t, err)

	index, err := IndexFields("Owner", fields, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, index)
}

func TestDedupeFields(t *testing.T) {
	t.Run("no duplicates returns input", func(t *testing.T) {
		fields := []Field{NewField("a", true), NewField("b", true)}
		assert.Equal(t, fields, DedupeFields(fields))
	})

	t.Run("last declaration wins in first position", func(t *testing.T) {
		fields := []Field{
			NewField("a", true, "int"),
			NewField("b", true, "int"),
			NewField("a", false, "string"),
		}
		got := DedupeFields(fields)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].Name)
		assert.Equal(t, []string{"string"}, got[0].Types)
		assert.Equal(t, RequirementOptional, got[0].Required)
		assert.Equal(t, "b", got[1].Name)
	})
}
