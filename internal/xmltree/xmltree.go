// Package xmltree provides a mutable, order-preserving XML element tree.
//
// encoding/xml struct mapping cannot represent arbitrary report shapes
// (unknown attributes, mixed children, raw text that must survive a
// round-trip), so the merge works on this generic tree instead.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Element is a single XML element: tag name, attributes, text content,
// trailing text (the text between this element's closing tag and the next
// sibling), and ordered children.
type Element struct {
	Tag      string
	Attrib   map[string]string
	Text     string
	Tail     string
	Children []*Element
}

// NewElement creates an element with an empty attribute map
func NewElement(tag string) *Element {
	return &Element{Tag: tag, Attrib: make(map[string]string)}
}

// Attr returns the value of the named attribute, or "" if absent
func (e *Element) Attr(name string) string {
	return e.Attrib[name]
}

// SetAttr sets the named attribute
func (e *Element) SetAttr(name, value string) {
	if e.Attrib == nil {
		e.Attrib = make(map[string]string)
	}
	e.Attrib[name] = value
}

// DeleteAttr removes the named attribute; absence is not an error
func (e *Element) DeleteAttr(name string) {
	delete(e.Attrib, name)
}

// Append adds children to the end of the child list
func (e *Element) Append(children ...*Element) {
	e.Children = append(e.Children, children...)
}

// Walk visits e and every descendant in document order
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Parse reads a well-formed XML document and returns its root element.
// Comments, directives, and processing instructions are dropped.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			elem := NewElement(t.Name.Local)
			for _, a := range t.Attr {
				// xmlns declarations are namespace plumbing, not report data
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				elem.Attrib[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("invalid XML: multiple root elements")
				}
				root = elem
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
			}
			stack = append(stack, elem)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				continue // whitespace outside the root
			}
			cur := stack[len(stack)-1]
			if n := len(cur.Children); n > 0 {
				cur.Children[n-1].Tail += string(t)
			} else {
				cur.Text += string(t)
			}
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("invalid XML: unclosed element <%s>", stack[len(stack)-1].Tag)
	}
	if root == nil {
		return nil, fmt.Errorf("invalid XML: no root element")
	}
	return root, nil
}

// ParseFile opens, reads, and closes a single file, returning its root
// element. The handle is released before ParseFile returns, so callers
// parsing many files hold at most one handle at a time.
func ParseFile(path string) (*Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}
