// Package xmlutil provides NoDL document access on top of xmlquery
// trees, keeping the source name and element positions needed for
// error reporting.
package xmlutil

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/andaru/nodl/nodlerr"
	"github.com/antchfx/xmlquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

// Position is a 1-based line and column. The zero value is unknown.
type Position struct {
	Line   int
	Column int
}

// Document is a parsed XML document.
type Document struct {
	// Source names the document in errors, typically a file path.
	Source string
	// Raw holds the serialized document, nil for built trees.
	Raw []byte

	root *xmlquery.Node
	pos  map[*xmlquery.Node]Position
}

// Parse parses raw into a Document. Malformed input returns a
// nodlerr syntax error carrying source and line.
func Parse(raw []byte, source string) (*Document, error) {
	starts, err := scanStarts(raw)
	if err != nil {
		return nil, syntaxError(err, source)
	}
	if len(starts) == 0 {
		return nil, errors.WithStack(nodlerr.Syntax("no root element", nodlerr.WithSource(source), nodlerr.WithLine(1)))
	}
	top, err := xmlquery.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, syntaxError(err, source)
	}
	root := firstElement(top)
	if root == nil {
		return nil, errors.WithStack(nodlerr.Syntax("no root element", nodlerr.WithSource(source), nodlerr.WithLine(1)))
	}

	d := &Document{Source: source, Raw: raw, root: root, pos: make(map[*xmlquery.Node]Position, len(starts))}
	i := 0
	walkElements(root, func(n *xmlquery.Node) {
		if i < len(starts) {
			d.pos[n] = starts[i]
		}
		i++
	})
	return d, nil
}

// NewDocument wraps an existing tree. n may be a document node or an
// element; positions are unknown.
func NewDocument(n *xmlquery.Node, source string) *Document {
	root := n
	if n != nil && n.Type != xmlquery.ElementNode {
		root = firstElement(n)
	}
	return &Document{Source: source, root: root}
}

// Root returns the root element, or nil for an empty tree.
func (d *Document) Root() *Element {
	if d.root == nil {
		return nil
	}
	return &Element{Node: d.root, doc: d}
}

// Position returns the start position of n, if known.
func (d *Document) Position(n *xmlquery.Node) Position { return d.pos[n] }

// Bytes returns the serialized document: Raw when the document was
// parsed, otherwise the root element rendered by xmlquery.
func (d *Document) Bytes() []byte {
	if d.Raw != nil {
		return d.Raw
	}
	if d.root == nil {
		return nil
	}
	return []byte(d.root.OutputXML(true))
}

// scanStarts returns the position of each start tag in document order.
func scanStarts(raw []byte) ([]Position, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.CharsetReader = charset.NewReaderLabel
	var starts []Position
	for {
		line, col := dec.InputPos()
		tok, err := dec.Token()
		if err == io.EOF {
			return starts, nil
		} else if err != nil {
			return nil, err
		}
		if _, ok := tok.(xml.StartElement); ok {
			starts = append(starts, Position{Line: line, Column: col})
		}
	}
}

func syntaxError(err error, source string) error {
	opts := []nodlerr.Option{nodlerr.WithSource(source)}
	msg := err.Error()
	var serr *xml.SyntaxError
	if errors.As(err, &serr) {
		opts = append(opts, nodlerr.WithLine(serr.Line))
		msg = serr.Msg
	}
	return errors.WithStack(nodlerr.Syntax(strings.TrimSpace(msg), opts...))
}

func firstElement(n *xmlquery.Node) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

func walkElements(n *xmlquery.Node, fn func(*xmlquery.Node)) {
	if n.Type != xmlquery.ElementNode {
		return
	}
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, fn)
	}
}
