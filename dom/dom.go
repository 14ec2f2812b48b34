// Package dom defines the document-creation facility the renderer builds
// markup through.
//
// A host supplies a Document; the renderer only ever creates elements,
// sets their class list, attributes and content, and appends children.
// Two hosts ship with the module:
//   - htmldom: HTML5 nodes from golang.org/x/net/html (the default)
//   - xmldom: XHTML elements from github.com/beevik/etree
//
// Elements from different hosts must not be mixed in one tree.
package dom

import (
	"errors"
	"io"
)

// ErrMalformedMarkup indicates a host could not parse markup given to
// SetInnerHTML.
var ErrMalformedMarkup = errors.New("malformed markup")

// Document creates detached elements.
type Document interface {
	CreateElement(tag string) Element
}

// Element is a mutable node of a markup tree.
type Element interface {
	// Tag returns the element name.
	Tag() string

	// SetClassName replaces the class attribute. An empty name removes it.
	SetClassName(name string)

	// SetAttribute sets or replaces one attribute.
	SetAttribute(key, value string)

	// SetText replaces all children with a single text node.
	SetText(text string)

	// SetInnerHTML replaces all children with the nodes parsed from markup.
	// Returns an error wrapping ErrMalformedMarkup if the host rejects it.
	SetInnerHTML(markup string) error

	// AppendChild appends child as the last child.
	// Panics if child was created by a different host.
	AppendChild(child Element)
}

// Serializer writes an element subtree as markup.
type Serializer interface {
	Serialize(w io.Writer, el Element) error
}
