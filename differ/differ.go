package differ

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/erraggy/specdelta/internal/severity"
	"github.com/erraggy/specdelta/schema"
)

// DiffMode indicates the type of diff operation to perform
type DiffMode int

const (
	// ModeSimple reports all differences as informational
	ModeSimple DiffMode = iota
	// ModeBreaking assigns each change a severity and identifies breaking changes
	ModeBreaking
)

// ChangeType indicates whether a change is an addition, removal, or modification
type ChangeType string

const (
	// ChangeTypeAdded indicates a new element was added
	ChangeTypeAdded ChangeType = "added"
	// ChangeTypeRemoved indicates an element was removed
	ChangeTypeRemoved ChangeType = "removed"
	// ChangeTypeModified indicates an existing element was changed
	ChangeTypeModified ChangeType = "modified"
)

// ChangeCategory indicates which part of the schema was changed
type ChangeCategory string

const (
	// CategoryEntity indicates an entity was added or removed
	CategoryEntity ChangeCategory = "entity"
	// CategoryOperation indicates an operation was added or removed
	CategoryOperation ChangeCategory = "operation"
	// CategoryField indicates an entity field or operation parameter change
	CategoryField ChangeCategory = "field"
	// CategoryVariant indicates a union gained or lost a member
	CategoryVariant ChangeCategory = "variant"
	// CategoryDescription indicates an entity description change
	CategoryDescription ChangeCategory = "description"
	// CategoryReturns indicates an operation return type change
	CategoryReturns ChangeCategory = "returns"
)

// Severity indicates the severity level of a change
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational changes (additions, relaxed constraints)
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates potentially problematic changes
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates breaking changes (removed fields, changed types)
	SeverityError = severity.SeverityError
	// SeverityCritical indicates critical breaking changes (removed entities, operations)
	SeverityCritical = severity.SeverityCritical
)

// Synthetic change-set keys. They cannot collide with field names because
// field names never contain brackets.
const (
	// KeyVariants holds the merged subtype additions and removals of a union
	KeyVariants = "[variants]"
	// KeyDescription marks an entity description change
	KeyDescription = "[description]"
	// KeyReturns marks an operation return type change
	KeyReturns = "[returns]"
)

// ChangeSet maps a field name (or a synthetic key) to a description of how it changed.
// An empty ChangeSet means the owner is unchanged.
type ChangeSet map[string]string

// Change represents a single difference between two snapshots
type Change struct {
	// Path is the dotted path to the changed element (e.g., "types.User.fields.name")
	Path string `json:"path" yaml:"path"`
	// Type indicates if this is an addition, removal, or modification
	Type ChangeType `json:"type" yaml:"type"`
	// Category indicates which part of the schema was changed
	Category ChangeCategory `json:"category" yaml:"category"`
	// Severity indicates the impact level; always SeverityInfo in ModeSimple
	Severity Severity `json:"severity" yaml:"severity"`
	// OldValue is the value in the old snapshot (nil for additions)
	OldValue any `json:"old_value,omitempty" yaml:"old_value,omitempty"`
	// NewValue is the value in the new snapshot (nil for removals)
	NewValue any `json:"new_value,omitempty" yaml:"new_value,omitempty"`
	// Message is a human-readable description of the change
	Message string `json:"message" yaml:"message"`
}

// String returns a formatted string representation of the change
func (c Change) String() string {
	var symbol string
	switch c.Severity {
	case SeverityError, SeverityCritical:
		symbol = "✗"
	case SeverityWarning:
		symbol = "⚠"
	case SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "·"
	}

	return fmt.Sprintf("%s %s [%s] %s: %s", symbol, c.Path, c.Type, c.Category, c.Message)
}

// Stats holds the entity and operation counts of both snapshots
type Stats struct {
	OldEntities   int `json:"old_entities" yaml:"old_entities"`
	NewEntities   int `json:"new_entities" yaml:"new_entities"`
	OldOperations int `json:"old_operations" yaml:"old_operations"`
	NewOperations int `json:"new_operations" yaml:"new_operations"`
}

// DiffResult contains the results of comparing two snapshots.
//
// The added, removed, and changed collections are complete regardless of
// Mode and IncludeInfo; those settings only shape the flat Changes list.
type DiffResult struct {
	// OldVersion is the old snapshot's version, or "unknown"
	OldVersion string `json:"old_version" yaml:"old_version"`
	// NewVersion is the new snapshot's version, or "unknown"
	NewVersion string `json:"new_version" yaml:"new_version"`
	// OldDate is the old snapshot's release date
	OldDate string `json:"old_date" yaml:"old_date"`
	// NewDate is the new snapshot's release date
	NewDate string `json:"new_date" yaml:"new_date"`
	// AddedEntities lists entity names only in the new snapshot, sorted
	AddedEntities []string `json:"added_entities" yaml:"added_entities"`
	// RemovedEntities lists entity names only in the old snapshot, sorted
	RemovedEntities []string `json:"removed_entities" yaml:"removed_entities"`
	// ChangedEntities maps entity names present in both snapshots to their non-empty changes
	ChangedEntities map[string]ChangeSet `json:"changed_entities" yaml:"changed_entities"`
	// AddedOperations lists operation names only in the new snapshot, sorted
	AddedOperations []string `json:"added_operations" yaml:"added_operations"`
	// RemovedOperations lists operation names only in the old snapshot, sorted
	RemovedOperations []string `json:"removed_operations" yaml:"removed_operations"`
	// ChangedOperations maps operation names present in both snapshots to their non-empty changes
	ChangedOperations map[string]ChangeSet `json:"changed_operations" yaml:"changed_operations"`
	// Stats contains the entity and operation counts of both snapshots
	Stats Stats `json:"stats" yaml:"stats"`
	// Changes contains every detected change, sorted by path
	Changes []Change `json:"changes" yaml:"changes"`
	// BreakingCount is the number of breaking changes (Critical + Error severity)
	BreakingCount int `json:"breaking_count" yaml:"breaking_count"`
	// WarningCount is the number of warnings
	WarningCount int `json:"warning_count" yaml:"warning_count"`
	// InfoCount is the number of informational changes
	InfoCount int `json:"info_count" yaml:"info_count"`
	// HasBreakingChanges is true if any breaking changes were detected
	HasBreakingChanges bool `json:"has_breaking_changes" yaml:"has_breaking_changes"`
}

// IsEmpty reports whether the two snapshots had no entity or operation differences.
func (r *DiffResult) IsEmpty() bool {
	return len(r.AddedEntities) == 0 && len(r.RemovedEntities) == 0 && len(r.ChangedEntities) == 0 &&
		len(r.AddedOperations) == 0 && len(r.RemovedOperations) == 0 && len(r.ChangedOperations) == 0
}

// DuplicateFieldPolicy selects how repeated field names within one field list are handled
type DuplicateFieldPolicy int

const (
	// DuplicateReject fails with a *specerrors.MalformedSchemaError
	DuplicateReject DuplicateFieldPolicy = iota
	// DuplicateLastWins keeps the last declaration of each name
	DuplicateLastWins
)

// Differ handles snapshot comparison
type Differ struct {
	// Mode determines the type of diff operation (Simple or Breaking)
	Mode DiffMode
	// IncludeInfo determines whether informational changes appear in Changes.
	// It only has an effect in ModeBreaking.
	IncludeInfo bool
	// DuplicateFields selects the repeated-field-name policy
	DuplicateFields DuplicateFieldPolicy
	// BreakingRules overrides default severities in ModeBreaking. Nil uses defaults.
	BreakingRules *BreakingRulesConfig
	// Loader reads snapshots for Diff. Nil uses schema.NewLoader().
	Loader *schema.Loader
	// Logger receives debug output. Nil disables logging.
	Logger schema.Logger
}

// New creates a new Differ instance with default settings
func New() *Differ {
	return &Differ{
		Mode:        ModeSimple,
		IncludeInfo: true,
	}
}

func (d *Differ) log() schema.Logger {
	return schema.OrNop(d.Logger)
}

func (d *Differ) loader() *schema.Loader {
	if d.Loader != nil {
		return d.Loader
	}
	l := schema.NewLoader()
	l.Logger = d.Logger
	l.AllowDuplicateFields = d.DuplicateFields == DuplicateLastWins
	return l
}

// Diff loads and compares two snapshot documents.
// Missing or undecodable documents load as empty snapshots unless the Loader is strict.
func (d *Differ) Diff(sourcePath, targetPath string) (*DiffResult, error) {
	l := d.loader()

	source, err := l.Load(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load source snapshot: %w", err)
	}
	target, err := l.Load(targetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load target snapshot: %w", err)
	}

	return d.DiffSnapshots(source.Snapshot, target.Snapshot)
}

// DiffSnapshots compares two loaded snapshots. A nil snapshot is treated as empty.
// The only error is a repeated field name under DuplicateReject.
func (d *Differ) DiffSnapshots(oldSnap, newSnap *schema.Snapshot) (*DiffResult, error) {
	oldSnap = schema.OrEmpty(oldSnap)
	newSnap = schema.OrEmpty(newSnap)

	result := &DiffResult{
		OldVersion:        oldSnap.Version,
		NewVersion:        newSnap.Version,
		OldDate:           oldSnap.ReleaseDate,
		NewDate:           newSnap.ReleaseDate,
		ChangedEntities:   make(map[string]ChangeSet),
		ChangedOperations: make(map[string]ChangeSet),
		Stats: Stats{
			OldEntities:   len(oldSnap.Entities),
			NewEntities:   len(newSnap.Entities),
			OldOperations: len(oldSnap.Operations),
			NewOperations: len(newSnap.Operations),
		},
		Changes: make([]Change, 0),
	}

	if err := d.diffEntities(oldSnap, newSnap, result); err != nil {
		return nil, err
	}
	if err := d.diffOperations(oldSnap, newSnap, result); err != nil {
		return nil, err
	}

	d.finalize(result)

	d.log().Debug("diff complete",
		"old_version", result.OldVersion,
		"new_version", result.NewVersion,
		"changed_entities", len(result.ChangedEntities),
		"changed_operations", len(result.ChangedOperations),
		"changes", len(result.Changes),
	)
	return result, nil
}

// finalize applies IncludeInfo, sorts Changes, and computes the counts
func (d *Differ) finalize(result *DiffResult) {
	if d.Mode == ModeBreaking && !d.IncludeInfo {
		filtered := make([]Change, 0, len(result.Changes))
		for _, change := range result.Changes {
			if change.Severity != SeverityInfo {
				filtered = append(filtered, change)
			}
		}
		result.Changes = filtered
	}

	slices.SortStableFunc(result.Changes, func(a, b Change) int {
		return cmp.Compare(a.Path, b.Path)
	})

	for _, change := range result.Changes {
		switch change.Severity {
		case SeverityCritical, SeverityError:
			result.BreakingCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityInfo:
			result.InfoCount++
		}
	}

	result.HasBreakingChanges = result.BreakingCount > 0
}

// DiffSnapshots compares two snapshots with default settings.
func DiffSnapshots(oldSnap, newSnap *schema.Snapshot) (*DiffResult, error) {
	return New().DiffSnapshots(oldSnap, newSnap)
}

// partition splits the union of two name sets into added, removed, and common names, each sorted.
func partition[A, B any](oldNames map[string]A, newNames map[string]B) (added, removed, common []string) {
	added = make([]string, 0)
	removed = make([]string, 0)
	for name := range newNames {
		if _, ok := oldNames[name]; !ok {
			added = append(added, name)
		}
	}
	for name := range oldNames {
		if _, ok := newNames[name]; ok {
			common = append(common, name)
		} else {
			removed = append(removed, name)
		}
	}
	slices.Sort(added)
	slices.Sort(removed)
	slices.Sort(common)
	return added, removed, common
}
