// Package xmlout serializes an xmltree back to XML, emitting the text of a
// configured set of tags as CDATA sections.
//
// XUnit consumers expect the raw captured output inside tags like
// system-out and failure, so those tags must not have their text escaped.
// The tag set is carried by the Writer itself rather than any shared
// serializer state, so concurrent writers with different sets are safe.
package xmlout

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/drew/xunitmerge/internal/xmltree"
)

// Declaration is written before the root element unless disabled.
// Matches the declaration emitted by the common XUnit producers.
const Declaration = "<?xml version='1.0' encoding='utf-8'?>\n"

// DefaultCDATATags is the set of tags whose text XUnit consumers read as
// raw captured output.
var DefaultCDATATags = []string{"system-out", "system-err", "skipped", "error", "failure"}

// Writer serializes element trees. The zero value is not usable; construct
// with NewWriter.
type Writer struct {
	cdata       map[string]bool
	declaration bool
}

// Option configures a Writer
type Option func(*Writer)

// WithoutDeclaration suppresses the XML declaration header
func WithoutDeclaration() Option {
	return func(w *Writer) { w.declaration = false }
}

// NewWriter returns a Writer that wraps the text of the given tags in
// CDATA sections. A nil or empty tag list yields the standard serializer.
func NewWriter(cdataTags []string, opts ...Option) *Writer {
	w := &Writer{cdata: make(map[string]bool, len(cdataTags)), declaration: true}
	for _, tag := range cdataTags {
		w.cdata[tag] = true
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// WriteDocument writes the declaration (if enabled) followed by the tree
// rooted at root. Output is UTF-8.
func (w *Writer) WriteDocument(dst io.Writer, root *xmltree.Element) error {
	b := bufio.NewWriter(dst)
	if w.declaration {
		b.WriteString(Declaration)
	}
	w.writeElement(b, root)
	return b.Flush()
}

func (w *Writer) writeElement(b *bufio.Writer, e *xmltree.Element) {
	if w.cdata[e.Tag] {
		// Attribute values are still escaped; only the text is exempt.
		// A literal "]]>" in the text is passed through unescaped, which
		// is a known limitation inherited from the format itself.
		b.WriteByte('<')
		b.WriteString(e.Tag)
		writeAttrs(b, e.Attrib)
		b.WriteString("><![CDATA[")
		b.WriteString(e.Text)
		b.WriteString("]]></")
		b.WriteString(e.Tag)
		b.WriteByte('>')
	} else if e.Text == "" && len(e.Children) == 0 {
		b.WriteByte('<')
		b.WriteString(e.Tag)
		writeAttrs(b, e.Attrib)
		b.WriteString(" />")
	} else {
		b.WriteByte('<')
		b.WriteString(e.Tag)
		writeAttrs(b, e.Attrib)
		b.WriteByte('>')
		b.WriteString(escapeText(e.Text))
		for _, c := range e.Children {
			w.writeElement(b, c)
		}
		b.WriteString("</")
		b.WriteString(e.Tag)
		b.WriteByte('>')
	}
	b.WriteString(escapeText(e.Tail))
}

// writeAttrs emits attributes sorted by name for deterministic output
func writeAttrs(b *bufio.Writer, attrib map[string]string) {
	if len(attrib) == 0 {
		return
	}
	names := make([]string, 0, len(attrib))
	for name := range attrib {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(attrib[name]))
		b.WriteByte('"')
	}
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\n", "&#10;",
	"\t", "&#9;",
	"\r", "&#13;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
