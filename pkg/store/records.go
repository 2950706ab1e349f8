package store

import (
	"iter"
	"maps"
	"slices"
)

// Records maps short names to entries. Operations in this package never
// modify the Records they are given; they return a new snapshot.
type Records map[string]Entry

// Record is a single name/entry pair, used where order matters.
type Record struct {
	Name  string
	Entry Entry
}

// Sorted returns all records in ascending name order.
func (r Records) Sorted() []Record {
	out := make([]Record, 0, len(r))
	for name, entry := range r.All() {
		out = append(out, Record{Name: name, Entry: entry})
	}
	return out
}

// All iterates over the records in ascending name order.
func (r Records) All() iter.Seq2[string, Entry] {
	return func(yield func(string, Entry) bool) {
		for _, name := range slices.Sorted(maps.Keys(r)) {
			if !yield(name, r[name]) {
				return
			}
		}
	}
}

// clone returns a shallow copy that is never nil.
func (r Records) clone() Records {
	if r == nil {
		return Records{}
	}
	return maps.Clone(r)
}
