// Package sde supplies raw documents from a Static Data Export directory
// tree. It owns the loosely-typed document model and the filesystem walker
// that parses YAML sources into it; everything downstream treats the
// resulting documents as read-only.
package sde

import (
	"sort"
)

// Fields is the loosely-typed field mapping of one document entry. Values
// are scalars, nested mappings (localized text), or nested lists, exactly
// as parsed from the source document.
type Fields map[string]interface{}

// Entry is one record of a raw document. FSD documents key entries by a
// numeric entity identifier; BSD documents are plain record lists, where
// Key is nil.
type Entry struct {
	// Key is the entity identifier, with its source scalar type
	// preserved (numeric keys stay numeric)
	Key interface{}
	// Fields holds the entry's field mapping
	Fields Fields
}

// Document is an ordered sequence of entries for one entity kind.
type Document struct {
	Entries []Entry
}

// Len returns the number of entries.
func (d Document) Len() int {
	return len(d.Entries)
}

// Get returns the named field value.
func (f Fields) Get(name string) (interface{}, bool) {
	v, ok := f[name]
	return v, ok
}

// Value returns the named field value, or nil when absent.
func (f Fields) Value(name string) interface{} {
	return f[name]
}

// Localized unwraps a localized-text field, returning the translation
// under the given language key.
func (f Fields) Localized(name, lang string) (string, bool) {
	v, ok := f[name]
	if !ok {
		return "", false
	}

	switch m := v.(type) {
	case map[string]interface{}:
		if s, ok := m[lang].(string); ok {
			return s, true
		}
	case Fields:
		if s, ok := m[lang].(string); ok {
			return s, true
		}
	}
	return "", false
}

// Text unwraps a localized-text field, falling back to a fixed label when
// the field or the requested translation is absent.
func (f Fields) Text(name, lang, fallback string) string {
	if s, ok := f.Localized(name, lang); ok {
		return s
	}
	return fallback
}

// Bool reads a boolean-like field; absence and non-boolean values are false.
func (f Fields) Bool(name string) bool {
	b, _ := f[name].(bool)
	return b
}

// String reads a plain string field with a default for absent values.
func (f Fields) String(name, fallback string) string {
	if s, ok := f[name].(string); ok {
		return s
	}
	return fallback
}

// Float reads a numeric field with a default for absent values.
func (f Fields) Float(name string, fallback float64) float64 {
	switch n := f[name].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return fallback
}

// Map reads a nested mapping field; absent or non-mapping values yield nil.
func (f Fields) Map(name string) Fields {
	switch m := f[name].(type) {
	case map[string]interface{}:
		return Fields(m)
	case Fields:
		return m
	}
	return nil
}

// List reads a nested list field; absent or non-list values yield nil.
func (f Fields) List(name string) []interface{} {
	l, _ := f[name].([]interface{})
	return l
}

// sortEntries orders entries by key for deterministic output: numeric keys
// ascending, then any remaining keys lexicographically.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, aNum := asInt64(entries[i].Key)
		b, bNum := asInt64(entries[j].Key)
		switch {
		case aNum && bNum:
			return a < b
		case aNum != bNum:
			return aNum
		default:
			return keyString(entries[i].Key) < keyString(entries[j].Key)
		}
	})
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	}
	return 0, false
}

func keyString(v interface{}) string {
	s, _ := v.(string)
	return s
}
