// Package htmldom is an HTML5 host document backed by golang.org/x/net/html.
package htmldom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-nbrender/dom"
)

// Compile-time interface implementation checks.
var (
	_ dom.Document   = (*Document)(nil)
	_ dom.Serializer = (*Document)(nil)
	_ dom.Element    = (*Element)(nil)
)

// Document creates html.Node elements. The zero value is ready to use.
type Document struct{}

// New returns an HTML5 host document.
func New() *Document {
	return &Document{}
}

// CreateElement returns a detached element node.
func (d *Document) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(tag)
	return &Element{node: &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}}
}

// Serialize renders el and its descendants as HTML.
func (d *Document) Serialize(w io.Writer, el dom.Element) error {
	e, err := own(el)
	if err != nil {
		return err
	}
	return html.Render(w, e.node)
}

// String serializes el, returning an empty string if el is foreign.
func String(el dom.Element) string {
	var sb strings.Builder
	if err := New().Serialize(&sb, el); err != nil {
		return ""
	}
	return sb.String()
}

// Element wraps an *html.Node of type html.ElementNode.
type Element struct {
	node *html.Node
}

// Node exposes the underlying node for callers that post-process the tree.
func (e *Element) Node() *html.Node {
	return e.node
}

// Tag returns the element name.
func (e *Element) Tag() string {
	return e.node.Data
}

// SetClassName replaces the class attribute.
func (e *Element) SetClassName(name string) {
	if name == "" {
		e.removeAttr("class")
		return
	}
	e.SetAttribute("class", name)
}

// SetAttribute sets or replaces one attribute.
func (e *Element) SetAttribute(key, value string) {
	for i := range e.node.Attr {
		if e.node.Attr[i].Namespace == "" && e.node.Attr[i].Key == key {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: value})
}

// SetText replaces all children with one text node.
func (e *Element) SetText(text string) {
	e.clear()
	if text == "" {
		return
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// SetInnerHTML parses markup in the context of this element and replaces
// all children with the result, like the DOM innerHTML setter.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		return fmt.Errorf("%w: %v", dom.ErrMalformedMarkup, err)
	}
	e.clear()
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// AppendChild appends child as the last child.
func (e *Element) AppendChild(child dom.Element) {
	c, err := own(child)
	if err != nil {
		panic(err)
	}
	e.node.AppendChild(c.node)
}

func (e *Element) clear() {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
}

func (e *Element) removeAttr(key string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
}

func own(el dom.Element) (*Element, error) {
	e, ok := el.(*Element)
	if !ok || e == nil {
		return nil, fmt.Errorf("htmldom: foreign element %T", el)
	}
	return e, nil
}
