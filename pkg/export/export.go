// Package export writes a record set in formats other tools can read.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/fast/pkg/errors"
	"github.com/arthur-debert/fast/pkg/store"
	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"
)

// Format is an export format name.
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatOPML Format = "opml"
)

// Formats lists the supported formats in the order shown to users.
var Formats = []Format{FormatJSON, FormatYAML, FormatOPML}

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatOPML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput,
		"unknown export format '%s'. Hint: use one of json, yaml, opml", s)
}

// item is the flat shape used by the YAML export.
type item struct {
	Name string   `yaml:"name"`
	Path string   `yaml:"path,omitempty"`
	Link string   `yaml:"link,omitempty"`
	Tags []string `yaml:"tags,omitempty,flow"`
}

// Write encodes r to w in format f. Entries are written in name order.
func Write(w io.Writer, f Format, r store.Records, title string) error {
	if r == nil {
		r = store.Records{}
	}

	var err error
	switch f {
	case FormatJSON:
		err = writeJSON(w, r)
	case FormatYAML:
		err = writeYAML(w, r)
	case FormatOPML:
		err = writeOPML(w, r, title)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown export format '%s'", f)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to export as %s", f)
	}
	return nil
}

// writeJSON uses the store file encoding so an export can be used as a store.
func writeJSON(w io.Writer, r store.Records) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeYAML(w io.Writer, r store.Records) error {
	items := make([]item, 0, len(r))
	for name, e := range r.All() {
		it := item{Name: name}
		if e.Kind == store.KindRich {
			it.Link = e.Link
			it.Tags = e.Tags
		} else {
			it.Path = e.Path
		}
		items = append(items, it)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(items); err != nil {
		return err
	}
	return enc.Close()
}

// writeOPML writes an OPML 2.0 outline with one link outline per entry.
// Tags become the comma separated category attribute.
func writeOPML(w io.Writer, r store.Records, title string) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	opml := doc.CreateElement("opml")
	opml.CreateAttr("version", "2.0")
	opml.CreateElement("head").CreateElement("title").SetText(title)

	body := opml.CreateElement("body")
	for name, e := range r.All() {
		outline := body.CreateElement("outline")
		outline.CreateAttr("text", name)
		outline.CreateAttr("type", "link")
		if e.Kind == store.KindRich {
			outline.CreateAttr("url", e.Link)
			if len(e.Tags) > 0 {
				outline.CreateAttr("category", strings.Join(e.Tags, ","))
			}
		} else {
			outline.CreateAttr("url", fileURL(e.Path))
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write opml: %w", err)
	}
	return nil
}

func fileURL(path string) string {
	if strings.HasPrefix(path, "/") {
		return "file://" + path
	}
	return path
}
