package schema

import (
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// CanonicalReturns renders a return type descriptor as RFC 8785 canonical JSON,
// so structured descriptors compare equal regardless of key order.
// Values that cannot be marshaled fall back to their %v formatting.
func CanonicalReturns(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return string(raw)
	}
	return string(canonical)
}

// ReturnsEqual reports whether two return type descriptors are equal by value.
func ReturnsEqual(a, b any) bool {
	return CanonicalReturns(a) == CanonicalReturns(b)
}

// FormatReturns renders a descriptor for messages: plain strings as-is,
// absent descriptors as "none", and everything else as canonical JSON.
func FormatReturns(v any) string {
	switch r := v.(type) {
	case nil:
		return "none"
	case string:
		return r
	default:
		return CanonicalReturns(r)
	}
}
