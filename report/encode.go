package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gowebpki/jcs"
	"go.yaml.in/yaml/v4"
)

// CanonicalJSON returns the RFC 8785 canonical JSON encoding of v.
func CanonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("report: marshaling to JSON: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("report: canonicalizing JSON: %w", err)
	}
	return canonical, nil
}

// WriteJSON writes v as canonical JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := CanonicalJSON(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteIndentedJSON writes v as indented JSON for human readers.
// Key order follows struct field order rather than the canonical form.
func WriteIndentedJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshaling to JSON: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteYAML writes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("report: marshaling to YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Digest returns the hex sha256 of v's canonical JSON. Equal reports have
// equal digests.
func Digest(v any) (string, error) {
	canonical, err := CanonicalJSON(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
