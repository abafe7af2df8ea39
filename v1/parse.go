// Package v1 parses version 1 NoDL documents.
//
// Parse validates an interface element against the version 1 schema
// and converts each node element into a types.Node. The element
// parsers may also be called directly on trees that were not
// validated; they check the attributes they need themselves.
package v1

import (
	"bytes"
	"io"
	"strings"

	"github.com/andaru/nodl/nodlerr"
	"github.com/andaru/nodl/qos"
	"github.com/andaru/nodl/schema"
	"github.com/andaru/nodl/types"
	"github.com/andaru/nodl/xmlutil"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
)

// Version is the interface version handled by this package.
const Version = 1

var xpNode = xpath.MustCompile(`node`)

// Parse validates the interface element e against the version 1
// schema and returns its nodes in document order.
func Parse(e *xmlutil.Element) ([]types.Node, error) {
	var (
		r      io.Reader
		offset int
	)
	doc := e.Document()
	if root := doc.Root(); doc.Raw != nil && root != nil && root.Node == e.Node {
		r = bytes.NewReader(doc.Raw)
	} else {
		r = strings.NewReader(e.String())
		if line := e.Line(); line > 0 {
			offset = line - 1
		}
	}
	if err := schema.Validate(schema.V1(), r, e.Source(), offset); err != nil {
		return nil, err
	}
	return ParseNodes(e)
}

// ParseNodes parses every node child of the interface element e.
func ParseNodes(e *xmlutil.Element) ([]types.Node, error) {
	var nodes []types.Node
	for _, ne := range e.Select(xpNode) {
		n, err := ParseNode(ne)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// ParseNode parses a node element. Children other than action,
// parameter, service and topic are rejected.
func ParseNode(e *xmlutil.Element) (types.Node, error) {
	name, err := requireAttr(e, "name")
	if err != nil {
		return types.Node{}, err
	}
	exe, err := requireAttr(e, "executable")
	if err != nil {
		return types.Node{}, err
	}

	var (
		actions    []types.Action
		parameters []types.Parameter
		services   []types.Service
		topics     []types.Topic
	)
	for _, c := range e.Children() {
		switch c.Tag() {
		case "action":
			a, err := ParseAction(c)
			if err != nil {
				return types.Node{}, err
			}
			actions = append(actions, a)
		case "parameter":
			p, err := ParseParameter(c)
			if err != nil {
				return types.Node{}, err
			}
			parameters = append(parameters, p)
		case "service":
			s, err := ParseService(c)
			if err != nil {
				return types.Node{}, err
			}
			services = append(services, s)
		case "topic":
			t, err := ParseTopic(c)
			if err != nil {
				return types.Node{}, err
			}
			topics = append(topics, t)
		default:
			return types.Node{}, errors.WithStack(nodlerr.UnknownChildElement(c.Tag(), name, c.Location()))
		}
	}
	return types.NewNode(name, exe, actions, parameters, services, topics), nil
}

// ParseAction parses an action element.
func ParseAction(e *xmlutil.Element) (types.Action, error) {
	ep, err := parseEndpoint(e, "server", "client")
	if err != nil {
		return types.Action{}, err
	}
	return types.Action{Name: ep.name, Type: ep.typ, Server: ep.first, Client: ep.second, QoS: ep.qos}, nil
}

// ParseService parses a service element.
func ParseService(e *xmlutil.Element) (types.Service, error) {
	ep, err := parseEndpoint(e, "server", "client")
	if err != nil {
		return types.Service{}, err
	}
	return types.Service{Name: ep.name, Type: ep.typ, Server: ep.first, Client: ep.second, QoS: ep.qos}, nil
}

// ParseTopic parses a topic element.
func ParseTopic(e *xmlutil.Element) (types.Topic, error) {
	ep, err := parseEndpoint(e, "publisher", "subscription")
	if err != nil {
		return types.Topic{}, err
	}
	return types.Topic{Name: ep.name, Type: ep.typ, Publisher: ep.first, Subscription: ep.second, QoS: ep.qos}, nil
}

// ParseParameter parses a parameter element.
func ParseParameter(e *xmlutil.Element) (types.Parameter, error) {
	name, typ, err := nameAndType(e)
	if err != nil {
		return types.Parameter{}, err
	}
	return types.Parameter{Name: name, Type: typ}, nil
}

// endpoint holds the fields shared by actions, services and topics.
type endpoint struct {
	name, typ     string
	first, second bool
	qos           qos.Profile
}

// parseEndpoint reads name, type, the two role flags and the optional
// qos child. At least one role must be set.
func parseEndpoint(e *xmlutil.Element, firstRole, secondRole string) (ep endpoint, err error) {
	if ep.name, ep.typ, err = nameAndType(e); err != nil {
		return ep, err
	}
	if ep.first, err = boolAttr(e, firstRole); err != nil {
		return ep, err
	}
	if ep.second, err = boolAttr(e, secondRole); err != nil {
		return ep, err
	}
	if !ep.first && !ep.second {
		return ep, errors.WithStack(nodlerr.AmbiguousInterface(e.Tag(), ep.name, e.Location()))
	}
	ep.qos, err = ParseQoS(e.Child("qos"))
	return ep, err
}

func nameAndType(e *xmlutil.Element) (name, typ string, err error) {
	if name, err = requireAttr(e, "name"); err != nil {
		return "", "", err
	}
	if typ, err = requireAttr(e, "type"); err != nil {
		return "", "", err
	}
	return name, typ, nil
}

// requireAttr returns the value of a mandatory, non-empty attribute.
func requireAttr(e *xmlutil.Element, name string) (string, error) {
	v, ok := e.Attr(name)
	if !ok || v == "" {
		return "", errors.WithStack(nodlerr.MissingAttribute(name, e.Tag(), e.Location()))
	}
	return v, nil
}

// boolAttr returns an optional boolean attribute, false when absent.
func boolAttr(e *xmlutil.Element, name string) (bool, error) {
	v, ok := e.Attr(name)
	if !ok {
		return false, nil
	}
	b, ok := xmlutil.ParseBool(v)
	if !ok {
		return false, errors.WithStack(nodlerr.InvalidAttributeValue(name, v, e.Location()))
	}
	return b, nil
}
