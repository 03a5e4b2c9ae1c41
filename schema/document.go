package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// rawDocument mirrors the on-disk snapshot layout. Scalars whose shape varies
// between producers (version numbers, list-valued descriptions) decode as any
// and are normalized afterwards.
type rawDocument struct {
	Version          any                     `json:"version" yaml:"version"`
	ReleaseDate      any                     `json:"release_date" yaml:"release_date"`
	ReleaseDateCamel any                     `json:"releaseDate" yaml:"releaseDate"`
	Types            map[string]rawEntity    `json:"types" yaml:"types"`
	Methods          map[string]rawOperation `json:"methods" yaml:"methods"`
}

type rawEntity struct {
	Name        string     `json:"name" yaml:"name"`
	Fields      []rawField `json:"fields" yaml:"fields"`
	Subtypes    []string   `json:"subtypes" yaml:"subtypes"`
	Description any        `json:"description" yaml:"description"`
}

type rawOperation struct {
	Name        string     `json:"name" yaml:"name"`
	Fields      []rawField `json:"fields" yaml:"fields"`
	Returns     any        `json:"returns" yaml:"returns"`
	Description any        `json:"description" yaml:"description"`
}

type rawField struct {
	Name        string    `json:"name" yaml:"name"`
	Types       *[]string `json:"types" yaml:"types"`
	Required    *bool     `json:"required" yaml:"required"`
	Description any       `json:"description" yaml:"description"`
}

// decodeDocument decodes JSON with encoding/json and everything else with the
// YAML decoder.
func decodeDocument(data []byte, format SourceFormat) (*rawDocument, error) {
	var doc rawDocument
	if format == SourceFormatJSON {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("schema: failed to decode JSON: %w", err)
		}
		return &doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: failed to decode YAML: %w", err)
	}
	return &doc, nil
}

// toSnapshot converts the raw document into the immutable model.
func (d *rawDocument) toSnapshot() *Snapshot {
	snap := Empty()
	if v := textValue(d.Version); v != "" {
		snap.Version = v
	}
	snap.ReleaseDate = textValue(d.ReleaseDate)
	if snap.ReleaseDate == "" {
		snap.ReleaseDate = textValue(d.ReleaseDateCamel)
	}

	for key, raw := range d.Types {
		snap.Entities[key] = &Entity{
			Name:        nameOrKey(raw.Name, key),
			Fields:      convertFields(raw.Fields),
			Subtypes:    raw.Subtypes,
			Description: textValue(raw.Description),
		}
	}
	for key, raw := range d.Methods {
		snap.Operations[key] = &Operation{
			Name:        nameOrKey(raw.Name, key),
			Fields:      convertFields(raw.Fields),
			Returns:     raw.Returns,
			Description: textValue(raw.Description),
		}
	}
	return snap
}

func nameOrKey(name, key string) string {
	if name == "" {
		return key
	}
	return name
}

func convertFields(raw []rawField) []Field {
	if len(raw) == 0 {
		return nil
	}
	fields := make([]Field, 0, len(raw))
	for _, rf := range raw {
		f := Field{
			Name:        rf.Name,
			Description: textValue(rf.Description),
		}
		if rf.Types != nil {
			f.Types = *rf.Types
			f.TypesDeclared = true
			if f.Types == nil {
				f.Types = []string{}
			}
		}
		if rf.Required != nil {
			f.Required = RequirementOf(*rf.Required)
		}
		fields = append(fields, f)
	}
	return fields
}

// textValue flattens a free-text value. Some producers emit descriptions as a
// list of paragraphs; those are joined with newlines.
func textValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, textValue(p))
		}
		return strings.Join(parts, "\n")
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}
