package types

import (
	"encoding/json"
	"fmt"
	"iter"
)

// Interfaces is an insertion-ordered collection of interfaces keyed by
// name. Putting an interface whose name is already present replaces
// the stored value but keeps its original position.
type Interfaces[T Interface] struct {
	names []string
	items map[string]T
}

// NewInterfaces returns a collection holding items, in order.
func NewInterfaces[T Interface](items ...T) Interfaces[T] {
	s := Interfaces[T]{items: make(map[string]T, len(items))}
	for _, it := range items {
		s.Put(it)
	}
	return s
}

// Put stores v under its name, last write wins.
func (s *Interfaces[T]) Put(v T) {
	if s.items == nil {
		s.items = map[string]T{}
	}
	name := v.InterfaceName()
	if _, ok := s.items[name]; !ok {
		s.names = append(s.names, name)
	}
	s.items[name] = v
}

// Get returns the interface named name.
func (s Interfaces[T]) Get(name string) (T, bool) {
	v, ok := s.items[name]
	return v, ok
}

func (s Interfaces[T]) Len() int { return len(s.names) }

// Names returns the interface names in insertion order.
func (s Interfaces[T]) Names() []string { return append([]string(nil), s.names...) }

// Values returns the interfaces in insertion order.
func (s Interfaces[T]) Values() []T {
	out := make([]T, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.items[name])
	}
	return out
}

// All iterates name, interface pairs in insertion order.
func (s Interfaces[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for _, name := range s.names {
			if !yield(name, s.items[name]) {
				return
			}
		}
	}
}

// Equal reports whether s and o hold equal interfaces in the same order.
func (s Interfaces[T]) Equal(o Interfaces[T]) bool {
	if len(s.names) != len(o.names) {
		return false
	}
	for i, name := range s.names {
		if o.names[i] != name || !Equal(s.items[name], o.items[name]) {
			return false
		}
	}
	return true
}

func (s Interfaces[T]) MarshalJSON() ([]byte, error) { return json.Marshal(s.Values()) }

func (s *Interfaces[T]) UnmarshalJSON(b []byte) error {
	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*s = NewInterfaces(items...)
	return nil
}

func (s Interfaces[T]) MarshalYAML() (interface{}, error) { return s.Values(), nil }

// Node is a named, independently executable unit and the interfaces
// it exposes.
type Node struct {
	Name       string                `json:"name" yaml:"name"`
	Executable string                `json:"executable" yaml:"executable"`
	Actions    Interfaces[Action]    `json:"actions" yaml:"actions"`
	Parameters Interfaces[Parameter] `json:"parameters" yaml:"parameters"`
	Services   Interfaces[Service]   `json:"services" yaml:"services"`
	Topics     Interfaces[Topic]     `json:"topics" yaml:"topics"`
}

// NewNode returns a Node indexing each interface list by name.
func NewNode(name, executable string, actions []Action, parameters []Parameter, services []Service, topics []Topic) Node {
	return Node{
		Name:       name,
		Executable: executable,
		Actions:    NewInterfaces(actions...),
		Parameters: NewInterfaces(parameters...),
		Services:   NewInterfaces(services...),
		Topics:     NewInterfaces(topics...),
	}
}

// Equal reports whether n and o describe the same node.
func (n Node) Equal(o Node) bool {
	return n.Name == o.Name &&
		n.Executable == o.Executable &&
		n.Actions.Equal(o.Actions) &&
		n.Parameters.Equal(o.Parameters) &&
		n.Services.Equal(o.Services) &&
		n.Topics.Equal(o.Topics)
}

func (n Node) String() string {
	return fmt.Sprintf("node %s (%s): %d actions, %d parameters, %d services, %d topics",
		n.Name, n.Executable, n.Actions.Len(), n.Parameters.Len(), n.Services.Len(), n.Topics.Len())
}

// Interfaces returns every interface of n: actions, parameters,
// services then topics, each in insertion order.
func (n Node) Interfaces() []Interface {
	var out []Interface
	for _, v := range n.Actions.Values() {
		out = append(out, v)
	}
	for _, v := range n.Parameters.Values() {
		out = append(out, v)
	}
	for _, v := range n.Services.Values() {
		out = append(out, v)
	}
	for _, v := range n.Topics.Values() {
		out = append(out, v)
	}
	return out
}

// NodesEqual reports whether a and b hold equal nodes in the same order.
func NodesEqual(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
