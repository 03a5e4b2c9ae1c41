package report

import (
	"fmt"
	"io"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// writer remembers the first write error so renderers can write freely and
// check once at the end.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *writer) println(s string) {
	w.printf("%s\n", s)
}

// title capitalizes every word of a section label ("added types" -> "Added Types").
func title(label string) string {
	return cases.Title(language.English).String(label)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
