// Package favorites holds the set of games the user has marked as favorite.
package favorites

import (
	"encoding/json"
	"sort"
	"strings"
)

// StorageKey is the key the serialized set is stored under.
const StorageKey = "favs"

// Set is a set of game ids. A nil Set is empty and safe to read.
type Set map[string]struct{}

// New returns a set holding ids.
func New(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is a favorite.
func (s Set) Has(id string) bool {
	_, ok := s[strings.TrimSpace(id)]
	return ok
}

// Len returns the number of favorites.
func (s Set) Len() int {
	return len(s)
}

// Toggle returns a copy of s with id added if it was absent or removed if it
// was present. s itself is not modified.
func (s Set) Toggle(id string) Set {
	id = strings.TrimSpace(id)
	out := make(Set, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	if id == "" {
		return out
	}
	if _, ok := out[id]; ok {
		delete(out, id)
	} else {
		out[id] = struct{}{}
	}
	return out
}

// IDs returns the ids in sorted order.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Encode serializes the set as a JSON array of ids.
func Encode(s Set) ([]byte, error) {
	return json.Marshal(s.IDs())
}

// Decode parses a stored JSON array. Missing or corrupt data yields an empty
// set. Numeric ids are accepted and kept as their string form.
func Decode(data []byte) Set {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Set{}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Set{}
	}

	ids := make([]string, 0, len(raw))
	for _, item := range raw {
		var id string
		if err := json.Unmarshal(item, &id); err == nil {
			ids = append(ids, id)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(item, &n); err == nil {
			ids = append(ids, n.String())
		}
	}
	return New(ids...)
}
