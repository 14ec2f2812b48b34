// Package xmldom is an XHTML host document backed by github.com/beevik/etree.
//
// Inner markup must be well-formed XML; HTML-only constructs such as
// unclosed void tags are rejected with dom.ErrMalformedMarkup. Named HTML
// entities are accepted. Empty elements serialize with explicit end tags.
package xmldom

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/alnah/go-nbrender/dom"
)

// Compile-time interface implementation checks.
var (
	_ dom.Document   = (*Document)(nil)
	_ dom.Serializer = (*Document)(nil)
	_ dom.Element    = (*Element)(nil)
)

// fragmentRoot wraps inner markup so a fragment with several top-level
// nodes parses as one document.
const fragmentRoot = "nbrender-fragment"

// Document creates etree elements. Use New or NewIndented.
type Document struct {
	indent int
}

// New returns an XHTML host document.
func New() *Document {
	return &Document{indent: -1}
}

// NewIndented returns an XHTML host document whose Serialize indents
// nested elements by n spaces.
func NewIndented(n int) *Document {
	return &Document{indent: n}
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) dom.Element {
	return &Element{el: etree.NewElement(tag)}
}

// Serialize writes el and its descendants as XML. The tree is copied
// first so el stays detached.
func (d *Document) Serialize(w io.Writer, el dom.Element) error {
	e, err := own(el)
	if err != nil {
		return err
	}
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	doc.AddChild(e.el.Copy())
	if d.indent >= 0 {
		doc.Indent(d.indent)
	}
	_, err = doc.WriteTo(w)
	return err
}

// String serializes el without indentation, returning an empty string
// if el is foreign.
func String(el dom.Element) string {
	var sb strings.Builder
	if err := New().Serialize(&sb, el); err != nil {
		return ""
	}
	return sb.String()
}

// Element wraps an *etree.Element.
type Element struct {
	el *etree.Element
}

// Etree exposes the underlying element.
func (e *Element) Etree() *etree.Element {
	return e.el
}

// Tag returns the element name.
func (e *Element) Tag() string {
	return e.el.Tag
}

// SetClassName replaces the class attribute.
func (e *Element) SetClassName(name string) {
	if name == "" {
		e.el.RemoveAttr("class")
		return
	}
	e.el.CreateAttr("class", name)
}

// SetAttribute sets or replaces one attribute.
func (e *Element) SetAttribute(key, value string) {
	e.el.CreateAttr(key, value)
}

// SetText replaces all children with character data.
func (e *Element) SetText(text string) {
	e.clear()
	if text != "" {
		e.el.SetText(text)
	}
}

// SetInnerHTML parses markup as an XML fragment and moves the parsed
// nodes under this element.
func (e *Element) SetInnerHTML(markup string) error {
	frag := etree.NewDocument()
	frag.ReadSettings.Entity = xml.HTMLEntity
	if err := frag.ReadFromString("<" + fragmentRoot + ">" + markup + "</" + fragmentRoot + ">"); err != nil {
		return fmt.Errorf("%w: %v", dom.ErrMalformedMarkup, err)
	}
	root := frag.Root()
	if root == nil {
		return fmt.Errorf("%w: empty fragment", dom.ErrMalformedMarkup)
	}
	e.clear()
	// AddChild unbinds each token from the fragment root.
	for len(root.Child) > 0 {
		e.el.AddChild(root.Child[0])
	}
	return nil
}

// AppendChild appends child as the last child.
func (e *Element) AppendChild(child dom.Element) {
	c, err := own(child)
	if err != nil {
		panic(err)
	}
	e.el.AddChild(c.el)
}

func (e *Element) clear() {
	for len(e.el.Child) > 0 {
		e.el.RemoveChildAt(len(e.el.Child) - 1)
	}
}

func own(el dom.Element) (*Element, error) {
	e, ok := el.(*Element)
	if !ok || e == nil {
		return nil, fmt.Errorf("xmldom: foreign element %T", el)
	}
	return e, nil
}
