package differ

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/specdelta/internal/testutil"
	"github.com/erraggy/specdelta/schema"
	"github.com/erraggy/specdelta/specerrors"
)

func TestCompareFields(t *testing.T) {
	described := func(f schema.Field, desc string) schema.Field {
		f.Description = desc
		return f
	}

	tests := []struct {
		name     string
		old, new []schema.Field
		want     ChangeSet
	}{
		{
			name: "identical lists",
			old:  []schema.Field{testutil.Required("id", "Integer")},
			new:  []schema.Field{testutil.Required("id", "Integer")},
			want: ChangeSet{},
		},
		{
			name: "added field",
			old:  nil,
			new:  []schema.Field{testutil.Optional("username", "String")},
			want: ChangeSet{"username": "added, with types = [String]"},
		},
		{
			name: "added field with several types",
			new:  []schema.Field{testutil.Required("chat_id", "Integer", "String")},
			want: ChangeSet{"chat_id": "added, with types = [Integer, String]"},
		},
		{
			name: "removed field",
			old:  []schema.Field{testutil.Required("id", "Integer")},
			want: ChangeSet{"id": "removed"},
		},
		{
			name: "types changed",
			old:  []schema.Field{testutil.Required("chat_id", "Integer")},
			new:  []schema.Field{testutil.Required("chat_id", "Integer", "String")},
			want: ChangeSet{"chat_id": "types changed from [Integer] to [Integer, String]"},
		},
		{
			name: "type order is significant",
			old:  []schema.Field{testutil.Required("media", "A", "B")},
			new:  []schema.Field{testutil.Required("media", "B", "A")},
			want: ChangeSet{"media": "types changed from [A, B] to [B, A]"},
		},
		{
			name: "required relaxed",
			old:  []schema.Field{testutil.Required("name", "String")},
			new:  []schema.Field{testutil.Optional("name", "String")},
			want: ChangeSet{"name": "required flag became false"},
		},
		{
			name: "required tightened",
			old:  []schema.Field{testutil.Optional("name", "String")},
			new:  []schema.Field{testutil.Required("name", "String")},
			want: ChangeSet{"name": "required flag became true"},
		},
		{
			name: "description updated",
			old:  []schema.Field{described(testutil.Required("id", "Integer"), "old")},
			new:  []schema.Field{described(testutil.Required("id", "Integer"), "new")},
			want: ChangeSet{"id": "description updated"},
		},
		{
			name: "all attributes changed",
			old:  []schema.Field{described(testutil.Optional("id", "Integer"), "old")},
			new:  []schema.Field{described(testutil.Required("id", "String"), "new")},
			want: ChangeSet{"id": "types changed from [Integer] to [String]; required flag became true; description updated"},
		},
		{
			name: "unknown required flag differs from concrete",
			old:  []schema.Field{testutil.Required("id", "Integer")},
			new:  []schema.Field{{Name: "id", Types: []string{"Integer"}, TypesDeclared: true}},
			want: ChangeSet{"id": "required flag became unknown"},
		},
		{
			name: "undeclared types differ from declared",
			old:  []schema.Field{{Name: "id", Required: schema.RequirementRequired}},
			new:  []schema.Field{testutil.Required("id", "Integer")},
			want: ChangeSet{"id": "types changed from unknown to [Integer]"},
		},
		{
			name: "matching is by name, not position",
			old:  []schema.Field{testutil.Required("a", "X"), testutil.Required("b", "Y")},
			new:  []schema.Field{testutil.Required("b", "Y"), testutil.Required("a", "X")},
			want: ChangeSet{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompareFields(tt.old, tt.new)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareFieldsNoOp(t *testing.T) {
	old := []schema.Field{
		testutil.Required("id", "Integer"),
		testutil.Required("name", "String"),
		testutil.Optional("bio", "String"),
	}
	new := []schema.Field{
		testutil.Required("id", "Integer"),
		testutil.Optional("name", "String"),
		testutil.Optional("bio", "String"),
	}

	got, err := CompareFields(old, new)
	require.NoError(t, err)
	assert.NotContains(t, got, "id")
	assert.NotContains(t, got, "bio")
	assert.Len(t, got, 1)
}

func TestCompareFieldsDuplicates(t *testing.T) {
	dup := []schema.Field{
		testutil.Required("id", "Integer"),
		testutil.Optional("id", "String"),
	}

	_, err := CompareFields(dup, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, specerrors.ErrDuplicateField))

	_, err = CompareFields(nil, dup)
	assert.True(t, errors.Is(err, specerrors.ErrDuplicateField))
}

func TestDiffFieldsLastWins(t *testing.T) {
	old := []schema.Field{testutil.Optional("id", "String")}
	dup := []schema.Field{
		testutil.Required("id", "Integer"),
		testutil.Optional("id", "String"),
	}

	deltas, err := diffFields("User", old, dup, DuplicateLastWins)
	require.NoError(t, err)
	assert.Empty(t, deltas, "the later declaration matches the old field exactly")

	deltas, err = diffFields("User", dup, nil, DuplicateLastWins)
	require.NoError(t, err)
	require.Len(t, deltas, 1, "a duplicated name is removed once")
	assert.Equal(t, "removed", deltas[0].message())
}
