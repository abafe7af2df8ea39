// Package types holds the typed NoDL data model.
//
// A Node describes one executable's communication interfaces: its
// actions, parameters, services and topics. Each interface is a
// comparable value type satisfying Interface. Nodes keep their
// interfaces in insertion-ordered, name-keyed collections.
package types

import (
	"bytes"
	"fmt"

	"github.com/andaru/nodl/qos"
	"github.com/pkg/errors"
)

// Kind identifies an interface variant
type Kind int

const (
	KindAction Kind = iota
	KindParameter
	KindService
	KindTopic
)

func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindParameter:
		return "parameter"
	case KindService:
		return "service"
	case KindTopic:
		return "topic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "action":
		*k = KindAction
	case "parameter":
		*k = KindParameter
	case "service":
		*k = KindService
	case "topic":
		*k = KindTopic
	default:
		return errors.New("unknown value")
	}
	return nil
}

// Interface is a NoDL communication interface.
type Interface interface {
	// InterfaceName returns the interface name, unique within its Node.
	InterfaceName() string
	// InterfaceType returns the message, service, action or parameter type.
	InterfaceType() string
	Kind() Kind
}

// Action is an action exposed or consumed by a node.
type Action struct {
	Name   string      `json:"name" yaml:"name"`
	Type   string      `json:"type" yaml:"type"`
	Server bool        `json:"server" yaml:"server"`
	Client bool        `json:"client" yaml:"client"`
	QoS    qos.Profile `json:"qos" yaml:"qos"`
}

// Parameter is a node parameter.
type Parameter struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Service is a service exposed or consumed by a node.
type Service struct {
	Name   string      `json:"name" yaml:"name"`
	Type   string      `json:"type" yaml:"type"`
	Server bool        `json:"server" yaml:"server"`
	Client bool        `json:"client" yaml:"client"`
	QoS    qos.Profile `json:"qos" yaml:"qos"`
}

// Topic is a topic published or subscribed to by a node.
type Topic struct {
	Name         string      `json:"name" yaml:"name"`
	Type         string      `json:"type" yaml:"type"`
	Publisher    bool        `json:"publisher" yaml:"publisher"`
	Subscription bool        `json:"subscription" yaml:"subscription"`
	QoS          qos.Profile `json:"qos" yaml:"qos"`
}

func (a Action) InterfaceName() string    { return a.Name }
func (a Action) InterfaceType() string    { return a.Type }
func (Action) Kind() Kind                 { return KindAction }
func (p Parameter) InterfaceName() string { return p.Name }
func (p Parameter) InterfaceType() string { return p.Type }
func (Parameter) Kind() Kind              { return KindParameter }
func (s Service) InterfaceName() string   { return s.Name }
func (s Service) InterfaceType() string   { return s.Type }
func (Service) Kind() Kind                { return KindService }
func (t Topic) InterfaceName() string     { return t.Name }
func (t Topic) InterfaceType() string     { return t.Type }
func (Topic) Kind() Kind                  { return KindTopic }

// Equal reports whether a and b are the same variant with identical
// fields. Interfaces of different variants sharing a name and type
// are not equal.
func Equal(a, b Interface) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Kind() == b.Kind() && a == b
}

func (a Action) String() string {
	return fmt.Sprintf("action %s (%s) server=%t client=%t", a.Name, a.Type, a.Server, a.Client)
}

func (p Parameter) String() string { return fmt.Sprintf("parameter %s (%s)", p.Name, p.Type) }

func (s Service) String() string {
	return fmt.Sprintf("service %s (%s) server=%t client=%t", s.Name, s.Type, s.Server, s.Client)
}

func (t Topic) String() string {
	return fmt.Sprintf("topic %s (%s) publisher=%t subscription=%t", t.Name, t.Type, t.Publisher, t.Subscription)
}
