package store

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/fast/pkg/errors"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/afero"
)

// Outcome describes what SetSimple did.
type Outcome int

const (
	// OutcomeAdded means a new name was inserted.
	OutcomeAdded Outcome = iota
	// OutcomeReplaced means an existing name got a new value.
	OutcomeReplaced
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	if o == OutcomeReplaced {
		return "replaced"
	}
	return "added"
}

// Letters and digits from any script, nothing else.
var namePattern = regexp.MustCompile(`^[\p{L}\p{N}]+$`)

var nameRules = []validation.Rule{
	validation.Required,
	validation.Match(namePattern).Error("must contain only letters and digits"),
}

// ValidateName reports whether name can be used as a short name.
func ValidateName(name string) bool {
	return CheckName(name) == nil
}

// CheckName is ValidateName returning an ErrInvalidName error with the reason.
func CheckName(name string) error {
	if err := validation.Validate(name, nameRules...); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidName, "invalid name '%s': %v", name, err).
			WithDetail("name", name)
	}
	return nil
}

// SplitTags turns a comma separated string into tags. Each tag is trimmed
// of surrounding whitespace and blank items are dropped, so "abc, def"
// yields [abc def] and an input without any tag yields nil.
func SplitTags(csv string) []string {
	var tags []string
	for _, tag := range strings.Split(csv, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// DirExists reports whether path names an existing directory.
func DirExists(fs afero.Fs, path string) bool {
	ok, err := afero.DirExists(fs, path)
	return err == nil && ok
}

// SetSimple inserts or replaces a simple entry.
//
// A missing key is added. An existing key is only replaced when overwrite is
// set; otherwise ErrDuplicateKey is returned. An empty value is rejected with
// ErrEmptyValue. On error the returned Records is r itself.
func SetSimple(r Records, key, value string, overwrite bool) (Records, Outcome, error) {
	_, exists := r[key]
	if exists && !overwrite {
		return r, OutcomeAdded, errors.Newf(errors.ErrDuplicateKey,
			"fast dir '%s' already exists. Hint: use add --replace to update", key).
			WithDetail("key", key)
	}
	if value == "" {
		return r, OutcomeAdded, errors.New(errors.ErrEmptyValue, "dest cannot be empty").
			WithDetail("key", key)
	}

	next := r.clone()
	next[key] = Simple(value)
	if exists {
		return next, OutcomeReplaced, nil
	}
	return next, OutcomeAdded, nil
}

// CreateRich adds a new rich entry for key.
func CreateRich(r Records, key, link, tagsCSV string) (Records, error) {
	if err := CheckName(key); err != nil {
		return r, err
	}
	if _, exists := r[key]; exists {
		return r, errors.Newf(errors.ErrDuplicateKey,
			"fast link '%s' already exists. Hint: use update to change it", key).
			WithDetail("key", key)
	}
	if link == "" {
		return r, errors.New(errors.ErrEmptyLink, "link cannot be empty").
			WithDetail("key", key)
	}

	next := r.clone()
	next[key] = Rich(link, SplitTags(tagsCSV)...)
	return next, nil
}

// UpdateRich changes the link and/or tags of an existing rich entry.
// Empty arguments leave the matching field untouched; new tags replace the
// old ones instead of being merged.
func UpdateRich(r Records, key, link, tagsCSV string) (Records, error) {
	entry, exists := r[key]
	if !exists {
		return r, errors.Newf(errors.ErrKeyNotFound,
			"fast link '%s' does not exist. Hint: try 'fl list' for a complete list of fast links", key).
			WithDetail("key", key)
	}
	if entry.Kind != KindRich {
		return r, errors.Newf(errors.ErrInvalidInput, "'%s' is not a fast link", key).
			WithDetail("key", key)
	}

	tags := SplitTags(tagsCSV)
	if link == "" && len(tags) == 0 {
		return r, nil
	}

	if link != "" {
		entry.Link = link
	}
	if len(tags) > 0 {
		entry.Tags = tags
	}

	next := r.clone()
	next[key] = entry
	return next, nil
}

// Remove deletes key and reports whether it was present.
func Remove(r Records, key string) (Records, bool) {
	if _, exists := r[key]; !exists {
		return r, false
	}
	next := r.clone()
	delete(next, key)
	return next, true
}

// View returns, in name order, every record whose name contains substring.
// The result is empty, never nil, when nothing matches.
func View(r Records, substring string) []Record {
	out := []Record{}
	for name, entry := range r.All() {
		if strings.Contains(name, substring) {
			out = append(out, Record{Name: name, Entry: entry})
		}
	}
	return out
}
