package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Kind tells which variant an Entry holds.
type Kind int

const (
	// KindSimple entries map a name to a single string (fast dirs).
	KindSimple Kind = iota
	// KindRich entries map a name to a link plus optional tags (fast links).
	KindRich
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindRich:
		return "rich"
	default:
		return "unknown"
	}
}

// Entry is the value stored under a short name.
//
// A simple entry only uses Path. A rich entry uses Link, which is never
// empty, and Tags, which is nil when the entry has no tags.
type Entry struct {
	Kind Kind
	Path string
	Link string
	Tags []string
}

// Simple returns a simple entry pointing at path.
func Simple(path string) Entry {
	return Entry{Kind: KindSimple, Path: path}
}

// Rich returns a rich entry for link with the given tags.
func Rich(link string, tags ...string) Entry {
	e := Entry{Kind: KindRich, Link: link}
	if len(tags) > 0 {
		e.Tags = tags
	}
	return e
}

// Value returns the target of the entry: the path or the link.
func (e Entry) Value() string {
	if e.Kind == KindRich {
		return e.Link
	}
	return e.Path
}

// Equal reports whether e and o hold the same kind, target and tags.
func (e Entry) Equal(o Entry) bool {
	return e.Kind == o.Kind && e.Path == o.Path && e.Link == o.Link && slices.Equal(e.Tags, o.Tags)
}

// richJSON is the on-disk shape of a rich entry.
type richJSON struct {
	Link string   `json:"link"`
	Tags []string `json:"tags,omitempty"`
}

// MarshalJSON encodes simple entries as a string and rich entries as an object.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Kind == KindRich {
		return json.Marshal(richJSON{Link: e.Link, Tags: e.Tags})
	}
	return json.Marshal(e.Path)
}

// UnmarshalJSON accepts either a string or a {link, tags} object.
func (e *Entry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty entry")
	}

	switch data[0] {
	case '"':
		var path string
		if err := json.Unmarshal(data, &path); err != nil {
			return err
		}
		*e = Simple(path)
		return nil
	case '{':
		var raw richJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw.Link == "" {
			return fmt.Errorf("entry has no link")
		}
		*e = Rich(raw.Link, raw.Tags...)
		return nil
	default:
		return fmt.Errorf("unexpected entry value %s", truncate(string(data), 20))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "..."
}
