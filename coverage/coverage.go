package coverage

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/erraggy/specdelta/internal/issues"
	"github.com/erraggy/specdelta/internal/naming"
	"github.com/erraggy/specdelta/internal/severity"
	"github.com/erraggy/specdelta/schema"
)

// Validator checks generated source text against a snapshot.
// A Validator is immutable and safe for concurrent use.
type Validator struct {
	profile  Profile
	callable *regexp.Regexp
	ignored  map[string]struct{}
	fields   bool
	logger   schema.Logger
}

// New creates a Validator from cfg. It fails when the profile is invalid.
func New(cfg Config) (*Validator, error) {
	profile := cfg.profile()
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("coverage: invalid profile %q: %w", profile.Name, err)
	}
	callable, err := profile.compileCallablePattern()
	if err != nil {
		return nil, err
	}

	ignored := make(map[string]struct{}, len(cfg.Ignored))
	for _, name := range cfg.Ignored {
		ignored[name] = struct{}{}
	}

	return &Validator{
		profile:  profile,
		callable: callable,
		ignored:  ignored,
		fields:   cfg.CheckFields,
		logger:   schema.OrNop(cfg.Logger),
	}, nil
}

// Validate is a convenience function that builds a Validator from cfg and
// runs it. An invalid profile yields a failed report holding a single
// critical finding.
func Validate(snap *schema.Snapshot, source string, cfg Config) *Report {
	v, err := New(cfg)
	if err != nil {
		r := newReport(schema.OrEmpty(snap), cfg.profile().Name)
		r.addFinding(issues.Issue{
			Path:     "profile",
			Kind:     issues.KindProfile,
			Message:  err.Error(),
			Severity: severity.SeverityCritical,
		})
		r.Passed = false
		return r
	}
	return v.Validate(snap, source)
}

func newReport(snap *schema.Snapshot, profile string) *Report {
	return &Report{
		Strategy:          StrategyPresence,
		Profile:           profile,
		Version:           snap.Version,
		Ignored:           []string{},
		MissingEntities:   []string{},
		MissingOperations: []MissingOperation{},
		MissingVariants:   []MissingVariant{},
		Findings:          []issues.Issue{},
	}
}

// Validate checks every entity, union variant, and operation of snap for a
// declaration in source. A nil snapshot is treated as empty.
func (v *Validator) Validate(snap *schema.Snapshot, source string) *Report {
	snap = schema.OrEmpty(snap)
	r := newReport(snap, v.profile.Name)

	v.checkEntities(snap, source, r)
	v.checkOperations(snap, source, r)

	r.Passed = len(r.MissingEntities) == 0 && len(r.MissingOperations) == 0 && len(r.MissingVariants) == 0
	v.logger.Debug("coverage validated",
		"version", r.Version,
		"entities", r.Entities.Total,
		"operations", r.Operations.Total,
		"missing", r.ErrorCount,
		"passed", r.Passed,
	)
	return r
}

func (v *Validator) checkEntities(snap *schema.Snapshot, source string, r *Report) {
	for _, name := range snap.EntityNames() {
		e, _ := snap.Entity(name)
		kind := e.Kind()
		category := r.Categories.tally(kind)
		r.Entities.Total++
		category.Total++

		if _, ok := v.ignored[name]; ok {
			r.Entities.Covered++
			category.Covered++
			r.Ignored = append(r.Ignored, name)
			continue
		}

		template := v.profile.StructMarker
		if kind == schema.KindUnion {
			template = v.profile.UnionMarker
		}
		marker := v.profile.render(template, name)
		if strings.Contains(source, marker) {
			r.Entities.Covered++
			category.Covered++
			if v.fields && kind == schema.KindStruct {
				v.checkFields(e, source, r)
			}
		} else {
			r.MissingEntities = append(r.MissingEntities, name)
			r.addFinding(issues.Issue{
				Path:     name,
				Kind:     issues.KindEntity,
				Message:  fmt.Sprintf("%s declaration not found", kind),
				Severity: severity.SeverityError,
				Expected: marker,
			})
		}

		if kind == schema.KindUnion {
			v.checkVariants(e, source, r)
		}
	}
}

func (v *Validator) checkVariants(e *schema.Entity, source string, r *Report) {
	variants := slices.Clone(e.Subtypes)
	slices.Sort(variants)
	variants = slices.Compact(variants)
	for _, variant := range variants {
		r.Variants.Total++
		marker := v.profile.render(v.profile.VariantMarker, variant)
		if strings.Contains(source, marker) {
			r.Variants.Covered++
			continue
		}
		r.MissingVariants = append(r.MissingVariants, MissingVariant{Entity: e.Name, Variant: variant})
		r.addFinding(issues.Issue{
			Path:     e.Name + "." + variant,
			Kind:     issues.KindVariant,
			Message:  "variant declaration not found",
			Severity: severity.SeverityError,
			Expected: marker,
		})
	}
}

func (v *Validator) checkFields(e *schema.Entity, source string, r *Report) {
	for _, f := range e.Fields {
		marker := v.profile.render(v.profile.FieldMarker, f.Name)
		if strings.Contains(source, marker) {
			continue
		}
		r.addFinding(issues.Issue{
			Path:     e.Name + "." + f.Name,
			Kind:     issues.KindField,
			Message:  "field not found",
			Severity: severity.SeverityWarning,
			Expected: marker,
		})
	}
}

func (v *Validator) checkOperations(snap *schema.Snapshot, source string, r *Report) {
	declared := make(map[string]struct{})
	for _, m := range v.callable.FindAllStringSubmatch(source, -1) {
		declared[m[1]] = struct{}{}
	}

	for _, name := range snap.OperationNames() {
		r.Operations.Total++
		expected := naming.ToSeparated(name, v.profile.Separator)
		if _, ok := declared[expected]; ok {
			r.Operations.Covered++
			continue
		}
		r.MissingOperations = append(r.MissingOperations, MissingOperation{Name: name, Expected: expected})
		r.addFinding(issues.Issue{
			Path:     name,
			Kind:     issues.KindOperation,
			Message:  "callable not declared",
			Severity: severity.SeverityError,
			Expected: expected,
		})
	}
}

func (r *Report) addFinding(issue issues.Issue) {
	r.Findings = append(r.Findings, issue)
	if issue.IsFailure() {
		r.ErrorCount++
	} else {
		r.WarningCount++
	}
}
