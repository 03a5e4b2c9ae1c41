package differ

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/specdelta/internal/testutil"
	"github.com/erraggy/specdelta/specerrors"
)

func TestDiffWithOptionsFilePaths(t *testing.T) {
	result, err := DiffWithOptions(
		WithSourceFilePath(testdataPath("api-v1.json")),
		WithTargetFilePath(testdataPath("api-v2.json")),
		WithMode(ModeBreaking),
	)
	require.NoError(t, err)
	assert.Equal(t, "7.0", result.OldVersion)
	assert.Equal(t, "7.1", result.NewVersion)
	assert.True(t, result.HasBreakingChanges)
	assert.Len(t, result.Changes, 8)
}

func TestDiffWithOptionsSnapshots(t *testing.T) {
	result, err := DiffWithOptions(
		WithSourceSnapshot(testutil.NewUserV1Snapshot()),
		WithTargetSnapshot(testutil.NewUserV2Snapshot()),
	)
	require.NoError(t, err)
	assert.Equal(t, "1.0", result.OldVersion)
	assert.Contains(t, result.ChangedEntities, "User")
}

func TestDiffWithOptionsMixedSources(t *testing.T) {
	result, err := DiffWithOptions(
		WithSourceSnapshot(testutil.NewSnapshot("0").Build()),
		WithTargetFilePath(testdataPath("api-v1.json")),
	)
	require.NoError(t, err)
	assert.Len(t, result.AddedEntities, 6)
	assert.Len(t, result.AddedOperations, 3)
}

func TestDiffWithOptionsIncludeInfo(t *testing.T) {
	result, err := DiffWithOptions(
		WithSourceFilePath(testdataPath("api-v1.json")),
		WithTargetFilePath(testdataPath("api-v2.json")),
		WithMode(ModeBreaking),
		WithIncludeInfo(false),
	)
	require.NoError(t, err)
	assert.Len(t, result.Changes, 4)
}

func TestDiffWithOptionsRules(t *testing.T) {
	result, err := DiffWithOptions(
		WithSourceFilePath(testdataPath("api-v1.json")),
		WithTargetFilePath(testdataPath("api-v2.json")),
		WithMode(ModeBreaking),
		WithBreakingRules(&BreakingRulesConfig{
			Entity:    &EntityRules{Removed: &BreakingChangeRule{Ignore: true}},
			Operation: &OperationRules{Removed: &BreakingChangeRule{Ignore: true}},
		}),
	)
	require.NoError(t, err)
	assert.False(t, result.HasBreakingChanges)
	assert.Equal(t, []string{"ForceReply"}, result.RemovedEntities)
}

func TestDiffWithOptionsMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	result, err := DiffWithOptions(
		WithSourceFilePath(missing),
		WithTargetFilePath(testdataPath("api-v1.json")),
	)
	require.NoError(t, err, "tolerant loading substitutes an empty snapshot")
	assert.Len(t, result.AddedEntities, 6)

	_, err = DiffWithOptions(
		WithSourceFilePath(missing),
		WithTargetFilePath(testdataPath("api-v1.json")),
		WithStrictLoading(true),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, specerrors.ErrParse)
	assert.Contains(t, err.Error(), "failed to load source")
}

func TestDiffWithOptionsValidation(t *testing.T) {
	v1 := testutil.NewUserV1Snapshot()

	tests := []struct {
		name    string
		opts    []Option
		wantMsg string
	}{
		{
			name:    "no source",
			opts:    []Option{WithTargetSnapshot(v1)},
			wantMsg: "must specify a source",
		},
		{
			name:    "no target",
			opts:    []Option{WithSourceSnapshot(v1)},
			wantMsg: "must specify a target",
		},
		{
			name:    "two sources",
			opts:    []Option{WithSourceSnapshot(v1), WithSourceFilePath("a.json"), WithTargetSnapshot(v1)},
			wantMsg: "must specify exactly one source",
		},
		{
			name:    "two targets",
			opts:    []Option{WithSourceSnapshot(v1), WithTargetSnapshot(v1), WithTargetFilePath("b.json")},
			wantMsg: "must specify exactly one target",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DiffWithOptions(tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, specerrors.ErrConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDiffWithOptionsNilSnapshot(t *testing.T) {
	_, err := DiffWithOptions(WithSourceSnapshot(nil), WithTargetSnapshot(testutil.NewUserV1Snapshot()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source snapshot cannot be nil")

	_, err = DiffWithOptions(WithSourceSnapshot(testutil.NewUserV1Snapshot()), WithTargetSnapshot(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target snapshot cannot be nil")
}

func TestApplyOptionsDefaults(t *testing.T) {
	cfg, err := applyOptions(WithSourceFilePath("a.json"), WithTargetFilePath("b.json"))
	require.NoError(t, err)
	assert.Equal(t, ModeSimple, cfg.mode)
	assert.True(t, cfg.includeInfo)
	assert.Equal(t, DuplicateReject, cfg.duplicateFields)
	assert.False(t, cfg.strictLoading)
}
