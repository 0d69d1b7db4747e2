package build

import (
	"sort"

	"golang.org/x/text/cases"
)

// foldMap is a map keyed case-insensitively. Each write stores the spelling it
// was made with.
type foldMap[V any] struct {
	entries map[string]foldEntry[V]
}

type foldEntry[V any] struct {
	name  string
	value V
}

func newFoldMap[V any]() foldMap[V] {
	return foldMap[V]{entries: make(map[string]foldEntry[V])}
}

// fold returns the canonical form of a key. A Caser holds state, so one is
// created per call.
func fold(key string) string {
	return cases.Fold().String(key)
}

func (m foldMap[V]) set(key string, value V) {
	m.entries[fold(key)] = foldEntry[V]{name: key, value: value}
}

func (m foldMap[V]) get(key string) (V, bool) {
	e, ok := m.entries[fold(key)]
	return e.value, ok
}

func (m foldMap[V]) len() int {
	return len(m.entries)
}

// sortedKeys returns the keys of a batch in byte order. Batches are applied in
// this order, so among keys differing only by case the last in order wins.
func sortedKeys[V any](batch map[string]V) []string {
	keys := make([]string, 0, len(batch))
	for k := range batch {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}

// names returns the stored spellings in sorted order
func (m foldMap[V]) names() []string {
	names := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		names = append(names, e.name)
	}

	sort.Strings(names)
	return names
}
