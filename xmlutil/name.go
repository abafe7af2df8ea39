package xmlutil

import (
	"encoding/xml"

	"github.com/antchfx/xmlquery"
)

// XMLName is a shortcut for creating xml.Name, where typically you want at least
// a local name, and perhaps a namespace value as well.
func XMLName(local string, spaces ...string) xml.Name {
	n := xml.Name{Local: local}
	if len(spaces) > 0 {
		n.Space = spaces[0]
	}
	return n
}

// Attr returns an unqualified attribute.
func Attr(name, value string) xmlquery.Attr {
	return xmlquery.Attr{Name: XMLName(name), Value: value}
}

// NewElement returns a detached element node with the given attributes
// and children, for building trees without a serialized source.
func NewElement(tag string, attrs []xmlquery.Attr, children ...*xmlquery.Node) *xmlquery.Node {
	n := &xmlquery.Node{Type: xmlquery.ElementNode, Data: tag, Attr: attrs}
	for _, c := range children {
		AppendChild(n, c)
	}
	return n
}

// AppendChild links child as the last child of parent.
func AppendChild(parent, child *xmlquery.Node) {
	child.Parent = parent
	child.NextSibling = nil
	child.PrevSibling = parent.LastChild
	if parent.LastChild != nil {
		parent.LastChild.NextSibling = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}
