package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/fast/pkg/store"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Printer writes user facing output for the fd and fl commands.
//
// Entry lines rendered without color are byte-identical to store.Layout.Line,
// so scripts reading list output see the same text whether or not a
// terminal is attached.
type Printer struct {
	out    io.Writer
	r      *lipgloss.Renderer
	color  bool
	layout store.Layout
}

// NewPrinter creates a printer writing to w. colorMode is one of the
// Color* constants.
func NewPrinter(w io.Writer, colorMode string, layout store.Layout) *Printer {
	color := UseColor(colorMode, w)

	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{out: w, r: r, color: color, layout: layout}
}

// Color reports whether the printer styles its output.
func (p *Printer) Color() bool { return p.color }

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.out }

func (p *Printer) style(name string) lipgloss.Style {
	return GetStyle(name).Renderer(p.r)
}

// Line renders a single entry.
func (p *Printer) Line(name string, e store.Entry) string {
	if !p.color {
		return p.layout.Line(name, e)
	}

	arrow := p.style("Arrow").Render("->")
	if e.Kind == store.KindRich {
		paddedName := fmt.Sprintf("%-*s", p.layout.NameWidth, name)
		paddedTags := fmt.Sprintf("%-*s", p.layout.TagsWidth, strings.Join(e.Tags, ","))
		return fmt.Sprintf("%s |%s| %s %s",
			p.style("Name").Render(paddedName),
			p.style("Tags").Render(paddedTags),
			arrow,
			p.style("Link").Render(e.Link))
	}
	return fmt.Sprintf("%s %s %s", p.style("Name").Render(name), arrow, p.style("Path").Render(e.Path))
}

// Records writes one line per record in the given order.
func (p *Printer) Records(records []store.Record) {
	for _, rec := range records {
		fmt.Fprintln(p.out, p.Line(rec.Name, rec.Entry))
	}
}

// All writes every entry of r sorted by name.
func (p *Printer) All(r store.Records) {
	for name, entry := range r.All() {
		fmt.Fprintln(p.out, p.Line(name, entry))
	}
}

// Message writes an unstyled line.
func (p *Printer) Message(format string, args ...interface{}) {
	fmt.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Success writes a line in the success style.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.style("Success").Render(fmt.Sprintf(format, args...)))
}

// Warning writes a line in the warning style.
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.style("Warning").Render(fmt.Sprintf(format, args...)))
}

// Error writes a line in the error style.
func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.style("Error").Render(fmt.Sprintf(format, args...)))
}

// Raw writes s followed by a newline, never styled. Used for output that a
// shell evaluates.
func (p *Printer) Raw(s string) {
	fmt.Fprintln(p.out, s)
}
