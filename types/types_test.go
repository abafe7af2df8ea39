package types

import (
	"encoding/json"
	"testing"

	"github.com/andaru/nodl/qos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestKind(t *testing.T) {
	for _, tc := range []struct {
		kind Kind
		want string
	}{
		{KindAction, "action"},
		{KindParameter, "parameter"},
		{KindService, "service"},
		{KindTopic, "topic"},
		{Kind(9), "Kind(9)"},
	} {
		t.Run(tc.want, func(t *testing.T) {
			check := assert.New(t)
			check.Equal(tc.want, tc.kind.String())
			b, err := tc.kind.MarshalText()
			check.NoError(err)
			var k Kind
			if err := k.UnmarshalText(b); err == nil {
				check.Equal(tc.kind, k)
			} else {
				check.Equal(Kind(9), tc.kind)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	check := assert.New(t)

	a := Action{Name: "foo", Type: "bar", Server: true, QoS: qos.Default()}
	s := Service{Name: "foo", Type: "bar", Server: true, QoS: qos.Default()}
	check.True(Equal(a, a))
	check.False(Equal(a, s), "different variants are never equal")

	b := a
	b.QoS.Depth = 11
	check.False(Equal(a, b), "QoS fields take part in equality")

	check.True(Equal(nil, nil))
	check.False(Equal(a, nil))
	check.False(Equal(Parameter{Name: "x", Type: "int"}, Parameter{Name: "x", Type: "float"}))
}

func TestInterfaces(t *testing.T) {
	check := assert.New(t)

	s := NewInterfaces(
		Topic{Name: "a", Type: "t1", Publisher: true},
		Topic{Name: "b", Type: "t2", Subscription: true},
		Topic{Name: "a", Type: "t3", Subscription: true},
	)
	check.Equal(2, s.Len())
	check.Equal([]string{"a", "b"}, s.Names(), "replacement keeps the original position")

	got, ok := s.Get("a")
	check.True(ok)
	check.Equal("t3", got.Type, "last write wins")

	_, ok = s.Get("missing")
	check.False(ok)

	var names []string
	for name := range s.All() {
		names = append(names, name)
		break
	}
	check.Equal([]string{"a"}, names)

	var empty Interfaces[Parameter]
	check.Zero(empty.Len())
	empty.Put(Parameter{Name: "p", Type: "int"})
	check.Equal(1, empty.Len())

	other := NewInterfaces(Topic{Name: "b", Type: "t2", Subscription: true}, Topic{Name: "a", Type: "t3", Subscription: true})
	check.False(s.Equal(other), "order matters")
}

func testNode() Node {
	return NewNode("node", "exe",
		[]Action{{Name: "act", Type: "pkg/Act", Server: true, QoS: qos.Default()}},
		[]Parameter{{Name: "param", Type: "bool"}},
		[]Service{{Name: "srv", Type: "pkg/Srv", Client: true, QoS: qos.Default()}},
		[]Topic{{Name: "top", Type: "pkg/Msg", Publisher: true, QoS: qos.SensorData()}},
	)
}

func TestNode(t *testing.T) {
	check := assert.New(t)

	n := testNode()
	check.True(n.Equal(testNode()))
	check.Equal("node node (exe): 1 actions, 1 parameters, 1 services, 1 topics", n.String())

	kinds := []Kind{}
	for _, i := range n.Interfaces() {
		kinds = append(kinds, i.Kind())
	}
	check.Equal([]Kind{KindAction, KindParameter, KindService, KindTopic}, kinds)

	other := testNode()
	other.Executable = "other"
	check.False(n.Equal(other))
	check.True(NodesEqual([]Node{n}, []Node{testNode()}))
	check.False(NodesEqual([]Node{n}, []Node{other}))
	check.False(NodesEqual([]Node{n}, nil))
}

func TestNodeJSON(t *testing.T) {
	n := NewNode("node", "exe", nil, []Parameter{{Name: "b", Type: "int"}, {Name: "a", Type: "str"}}, nil, nil)

	b, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "node",
		"executable": "exe",
		"actions": [],
		"parameters": [{"name": "b", "type": "int"}, {"name": "a", "type": "str"}],
		"services": [],
		"topics": []
	}`, string(b))

	var decoded Node
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.True(t, n.Equal(decoded))

	full := testNode()
	b, err = json.Marshal(full)
	require.NoError(t, err)
	decoded = Node{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.True(t, full.Equal(decoded))
}

func TestNodeYAML(t *testing.T) {
	check := assert.New(t)

	out, err := yaml.Marshal(testNode())
	require.NoError(t, err)
	s := string(out)
	check.Contains(s, "name: node\n")
	check.Contains(s, "executable: exe\n")
	check.Contains(s, "parameters:\n    - name: param\n      type: bool\n")
	check.Contains(s, "reliability: best_effort")
}
