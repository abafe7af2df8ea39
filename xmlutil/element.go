package xmlutil

import (
	"strings"

	"github.com/andaru/nodl/nodlerr"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Element is an element node of a Document.
type Element struct {
	Node *xmlquery.Node
	doc  *Document
}

// Tag returns the element's local name.
func (e *Element) Tag() string { return e.Node.Data }

// Document returns the document owning e.
func (e *Element) Document() *Document { return e.doc }

// Source returns the owning document's source name.
func (e *Element) Source() string { return e.doc.Source }

// Position returns the position of e's start tag, if known.
func (e *Element) Position() Position { return e.doc.Position(e.Node) }

// Line returns the line of e's start tag, 0 when unknown.
func (e *Element) Line() int { return e.Position().Line }

// Location returns the error options locating e.
func (e *Element) Location() nodlerr.Option {
	return nodlerr.WithLocation(e.doc.Source, e.Line())
}

// Attr returns the unqualified attribute name and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Node.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Children returns the direct element children of e in document order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.Node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, e.wrap(c))
		}
	}
	return out
}

// Child returns the first direct child element named tag, or nil.
func (e *Element) Child(tag string) *Element {
	for c := e.Node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == tag {
			return e.wrap(c)
		}
	}
	return nil
}

// Select returns the elements matching expr evaluated relative to e.
func (e *Element) Select(expr *xpath.Expr) []*Element {
	var out []*Element
	for _, n := range xmlquery.QuerySelectorAll(e.Node, expr) {
		if n.Type == xmlquery.ElementNode {
			out = append(out, e.wrap(n))
		}
	}
	return out
}

// String returns the element serialized by xmlquery.
func (e *Element) String() string { return e.Node.OutputXML(true) }

func (e *Element) wrap(n *xmlquery.Node) *Element { return &Element{Node: n, doc: e.doc} }

// ParseBool parses an xsd:boolean lexical value, case-insensitively.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return false, false
}
