package coverage

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/erraggy/specdelta/specerrors"
)

// Profile describes how declarations look in one kind of generated source.
// Marker fields are fmt templates that receive the declared name.
type Profile struct {
	// Name identifies the profile (e.g., "rust")
	Name string `json:"name" yaml:"name"`
	// StructMarker is the declaration expected for record-like and marker entities
	StructMarker string `json:"struct_marker" yaml:"struct_marker"`
	// UnionMarker is the declaration expected for union-like entities
	UnionMarker string `json:"union_marker" yaml:"union_marker"`
	// VariantMarker is the declaration expected for every union member
	VariantMarker string `json:"variant_marker" yaml:"variant_marker"`
	// FieldMarker is the text expected for every field of a struct entity.
	// Only used when Config.CheckFields is set.
	FieldMarker string `json:"field_marker" yaml:"field_marker"`
	// CallablePattern extracts declared callable names from the source.
	// The first submatch is the name.
	CallablePattern string `json:"callable_pattern" yaml:"callable_pattern"`
	// Separator joins the words of a derived callable name
	Separator string `json:"separator" yaml:"separator"`
}

// ProfileRust is the name of the default profile
const ProfileRust = "rust"

// RustProfile returns the profile for Rust bindings.
func RustProfile() Profile {
	return Profile{
		Name:            ProfileRust,
		StructMarker:    "pub struct %s",
		UnionMarker:     "pub enum %s",
		VariantMarker:   "%[1]s(%[1]s)",
		FieldMarker:     "%s:",
		CallablePattern: `pub async fn (\w+)`,
		Separator:       "_",
	}
}

var profiles = map[string]func() Profile{
	ProfileRust: RustProfile,
}

// ProfileNames returns the names of the built-in profiles, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupProfile returns the built-in profile with the given name.
func LookupProfile(name string) (Profile, error) {
	p, ok := profiles[strings.ToLower(name)]
	if !ok {
		return Profile{}, &specerrors.ConfigError{
			Option:  "profile",
			Value:   name,
			Message: "unknown profile, expected one of: " + strings.Join(ProfileNames(), ", "),
		}
	}
	return p(), nil
}

// Validate reports whether every marker template renders a name and the
// callable pattern compiles with a capturing group.
func (p Profile) Validate() error {
	markers := []struct {
		option string
		value  string
	}{
		{"struct_marker", p.StructMarker},
		{"union_marker", p.UnionMarker},
		{"variant_marker", p.VariantMarker},
		{"field_marker", p.FieldMarker},
	}
	for _, m := range markers {
		if err := validateMarker(m.option, m.value); err != nil {
			return err
		}
	}

	if _, err := p.compileCallablePattern(); err != nil {
		return err
	}
	return nil
}

func validateMarker(option, template string) error {
	if template == "" {
		return &specerrors.ConfigError{Option: option, Message: "marker template is empty"}
	}
	const sample = "Sample"
	rendered := fmt.Sprintf(template, sample)
	if !strings.Contains(rendered, sample) || strings.Contains(rendered, "%!") {
		return &specerrors.ConfigError{
			Option:  option,
			Value:   template,
			Message: "marker template must format exactly one name (e.g., \"pub struct %s\")",
		}
	}
	return nil
}

func (p Profile) compileCallablePattern() (*regexp.Regexp, error) {
	re, err := regexp.Compile(p.CallablePattern)
	if err != nil {
		return nil, &specerrors.ConfigError{
			Option: "callable_pattern",
			Value:  p.CallablePattern,
			Cause:  err,
		}
	}
	if re.NumSubexp() < 1 {
		return nil, &specerrors.ConfigError{
			Option:  "callable_pattern",
			Value:   p.CallablePattern,
			Message: "pattern must capture the callable name in a group",
		}
	}
	return re, nil
}

func (p Profile) render(template, name string) string {
	return fmt.Sprintf(template, name)
}
