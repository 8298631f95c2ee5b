// Package keyindex maintains the per-run lookup tables that resolve
// textual cross-references (member numbers, place names, contact names,
// project names) to entity ids during an import.
package keyindex

import (
	"strings"

	"github.com/google/uuid"
)

type Kind string

const (
	Members  Kind = "members"
	Places   Kind = "places"
	Contacts Kind = "contacts"
	Projects Kind = "projects"
)

// Index maps natural keys to entity ids, case-insensitively. It belongs
// to a single in-flight run and is not safe for concurrent use.
type Index struct {
	tables map[Kind]map[string]uuid.UUID
}

func New() *Index {
	return &Index{tables: make(map[Kind]map[string]uuid.UUID)}
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Put registers a natural key. Later puts for the same key win, which
// lets a phase refresh replace stale entries.
func (i *Index) Put(kind Kind, key string, id uuid.UUID) {
	key = normalize(key)
	if key == "" {
		return
	}
	table, ok := i.tables[kind]
	if !ok {
		table = make(map[string]uuid.UUID)
		i.tables[kind] = table
	}
	table[key] = id
}

// Lookup resolves a natural key to an entity id. Blank keys never match.
func (i *Index) Lookup(kind Kind, key string) (uuid.UUID, bool) {
	key = normalize(key)
	if key == "" {
		return uuid.Nil, false
	}
	id, ok := i.tables[kind][key]
	return id, ok
}

// Replace swaps the whole table for one kind, used when a phase reloads
// its keys from the repository after persisting.
func (i *Index) Replace(kind Kind, entries map[string]uuid.UUID) {
	table := make(map[string]uuid.UUID, len(entries))
	for key, id := range entries {
		if normalized := normalize(key); normalized != "" {
			table[normalized] = id
		}
	}
	i.tables[kind] = table
}
