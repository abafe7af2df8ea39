package nodl

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andaru/nodl/nodlerr"
	"github.com/andaru/nodl/qos"
	"github.com/andaru/nodl/types"
	"github.com/andaru/nodl/xmlutil"
	"github.com/antchfx/xmlquery"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodlError(t *testing.T, err error) *nodlerr.Error {
	t.Helper()
	require.Error(t, err)
	nerr, ok := nodlerr.As(err)
	require.True(t, ok, "unexpected error type %T: %v", err, err)
	return nerr
}

func TestVersions(t *testing.T) {
	assert.Equal(t, []int{1}, SupportedVersions())
	assert.Equal(t, 1, MaxSupportedVersion())
}

func TestParseFile(t *testing.T) {
	check := assert.New(t)

	nodes, err := Parse("testdata/test.nodl.xml")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	check.Equal("foo", nodes[0].Name)
	check.Equal("talker", nodes[1].Name)

	echo, ok := nodes[1].Topics.Get("echo")
	require.True(t, ok)
	check.Equal(qos.LivelinessAutomatic, echo.QoS.Liveliness)

	_, err = Parse("testdata/missing.nodl.xml")
	check.ErrorIs(err, fs.ErrNotExist)
}

func TestParseErrorsNameAbsolutePath(t *testing.T) {
	abs, err := filepath.Abs("testdata/malformed.nodl.xml")
	require.NoError(t, err)

	_, err = Parse("testdata/malformed.nodl.xml")
	nerr := nodlError(t, err)
	assert.Equal(t, nodlerr.KindSyntax, nerr.Kind)
	assert.Equal(t, abs, nerr.Source)
	assert.Equal(t, 4, nerr.Line)
}

func TestParseReader(t *testing.T) {
	f, err := os.Open("testdata/future.nodl.xml")
	require.NoError(t, err)
	defer f.Close()

	_, err = ParseReader(f)
	nerr := nodlError(t, err)
	assert.Equal(t, nodlerr.KindUnsupportedVersion, nerr.Kind)
	assert.Equal(t, "testdata/future.nodl.xml", nerr.Source)
	assert.Equal(t, "2", nerr.Version)
	assert.Equal(t, 1, nerr.MaxVersion)
	assert.Contains(t, err.Error(), "unsupported interface version: 2 must be <= 1")

	nodes, err := ParseReader(strings.NewReader(`<interface version="1"><node name="n" executable="e"><parameter name="p" type="int"/></node></interface>`))
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
}

func TestParseTopicScenario(t *testing.T) {
	nodes, err := ParseBytes([]byte(`<interface version="1"><node name="n" executable="e"><topic name="t" type="std_msgs/String" publisher="true"/></node></interface>`), "scenario")
	require.NoError(t, err)

	want := types.NewNode("n", "e", nil, nil, nil, []types.Topic{
		{Name: "t", Type: "std_msgs/String", Publisher: true, QoS: qos.Default()},
	})
	require.Len(t, nodes, 1)
	assert.True(t, want.Equal(nodes[0]), "got %v", nodes[0])

	topic, _ := nodes[0].Topics.Get("t")
	assert.False(t, topic.Subscription)
}

func TestParseFailures(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		want  nodlerr.Kind
		check func(*assert.Assertions, *nodlerr.Error)
	}{
		{
			name:  "ambiguous topic",
			input: `<interface version="1"><node name="n" executable="e"><topic name="t" type="std_msgs/String"/></node></interface>`,
			want:  nodlerr.KindAmbiguousInterface,
			check: func(a *assert.Assertions, e *nodlerr.Error) {
				a.Equal("topic", e.Element)
				a.Equal("t", e.Name)
			},
		},
		{
			name:  "missing version",
			input: "<interface>\n  <node name=\"n\" executable=\"e\"/>\n</interface>",
			want:  nodlerr.KindMissingVersion,
			check: func(a *assert.Assertions, e *nodlerr.Error) {
				a.Equal(1, e.Line)
				a.Equal("interface", e.Element)
			},
		},
		{
			name:  "future version",
			input: `<interface version="2"><node name="n" executable="e"/></interface>`,
			want:  nodlerr.KindUnsupportedVersion,
			check: func(a *assert.Assertions, e *nodlerr.Error) {
				a.Equal("2", e.Version)
				a.Equal(1, e.MaxVersion)
			},
		},
		{name: "version zero", input: `<interface version="0"><node name="n" executable="e"/></interface>`, want: nodlerr.KindUnsupportedVersion},
		{name: "non-numeric version", input: `<interface version="one"><node name="n" executable="e"/></interface>`, want: nodlerr.KindUnsupportedVersion},
		{name: "not an interface", input: `<notinterface version="1"/>`, want: nodlerr.KindDocumentInvalid},
		{name: "empty interface", input: `<interface version="1"/>`, want: nodlerr.KindDocumentInvalid},
		{name: "malformed", input: `<interface version="1">`, want: nodlerr.KindSyntax},
		{
			name:  "bad qos enum",
			input: "<interface version=\"1\">\n<node name=\"n\" executable=\"e\">\n<topic name=\"t\" type=\"T\" publisher=\"true\">\n<qos depth=\"1\" reliability=\"sometimes\"/>\n</topic>\n</node>\n</interface>",
			want:  nodlerr.KindInvalidQoSValue,
			check: func(a *assert.Assertions, e *nodlerr.Error) {
				a.Equal("reliability", e.Attribute)
				a.Equal("sometimes", e.Value)
				a.Equal(4, e.Line)
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tc.input), "case.nodl.xml")
			nerr := nodlError(t, err)
			assert.Equal(t, tc.want, nerr.Kind, "error: %v", err)
			assert.Equal(t, "case.nodl.xml", nerr.Source)
			if tc.check != nil {
				tc.check(assert.New(t), nerr)
			}
		})
	}
}

func TestParseElementTree(t *testing.T) {
	attr := xmlutil.Attr

	_, err := ParseElementTree(xmlutil.NewDocument(xmlutil.NewElement("notinterface", nil), ""))
	assert.Equal(t, nodlerr.KindDocumentInvalid, nodlError(t, err).Kind)

	_, err = ParseElementTree(xmlutil.NewDocument(&xmlquery.Node{Type: xmlquery.DocumentNode}, ""))
	assert.Equal(t, nodlerr.KindDocumentInvalid, nodlError(t, err).Kind)

	_, err = ParseElementTree(xmlutil.NewDocument(
		xmlutil.NewElement("interface", nil, xmlutil.NewElement("node", nil)), ""))
	assert.Equal(t, nodlerr.KindMissingVersion, nodlError(t, err).Kind)

	nodes, err := ParseElementTree(xmlutil.NewDocument(
		xmlutil.NewElement("interface", []xmlquery.Attr{attr("version", "1")},
			xmlutil.NewElement("node", []xmlquery.Attr{attr("name", "n"), attr("executable", "e")})), ""))
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
}

func TestParseQoSScenario(t *testing.T) {
	nodes, err := ParseBytes([]byte(`<interface version="1"><node name="n" executable="e"><service name="s" type="S" server="true"><qos depth="10" history="keep_last"/></service></node></interface>`), "")
	require.NoError(t, err)
	s, _ := nodes[0].Services.Get("s")
	assert.Equal(t, qos.Default(), s.QoS)
}

func TestRoleCombinations(t *testing.T) {
	for _, tc := range []struct {
		tag, first, second string
	}{
		{"action", "server", "client"},
		{"service", "server", "client"},
		{"topic", "publisher", "subscription"},
	} {
		for _, roles := range [][2]string{{"", ""}, {"true", ""}, {"", "true"}, {"true", "true"}, {"false", "false"}, {"true", "false"}} {
			t.Run(fmt.Sprintf("%s %s=%q %s=%q", tc.tag, tc.first, roles[0], tc.second, roles[1]), func(t *testing.T) {
				attrs := ""
				if roles[0] != "" {
					attrs += fmt.Sprintf(` %s="%s"`, tc.first, roles[0])
				}
				if roles[1] != "" {
					attrs += fmt.Sprintf(` %s="%s"`, tc.second, roles[1])
				}
				input := fmt.Sprintf(`<interface version="1"><node name="n" executable="e"><%s name="x" type="T"%s/></node></interface>`, tc.tag, attrs)
				nodes, err := ParseBytes([]byte(input), "")

				first, second := roles[0] == "true", roles[1] == "true"
				if !first && !second {
					assert.True(t, nodlerr.IsKind(err, nodlerr.KindAmbiguousInterface), "got %v", err)
					return
				}
				require.NoError(t, err)
				iface := nodes[0].Interfaces()[0]
				switch v := iface.(type) {
				case types.Action:
					assert.Equal(t, [2]bool{first, second}, [2]bool{v.Server, v.Client})
				case types.Service:
					assert.Equal(t, [2]bool{first, second}, [2]bool{v.Server, v.Client})
				case types.Topic:
					assert.Equal(t, [2]bool{first, second}, [2]bool{v.Publisher, v.Subscription})
				}
			})
		}
	}
}

func TestQoSShortKeys(t *testing.T) {
	for attr, keys := range map[string][]string{
		"history":     qos.HistoryKeys(),
		"reliability": qos.ReliabilityKeys(),
		"durability":  qos.DurabilityKeys(),
		"liveliness":  qos.LivelinessKeys(),
	} {
		for _, key := range append(keys, "unsupported") {
			t.Run(attr+"="+key, func(t *testing.T) {
				input := fmt.Sprintf(`<interface version="1"><node name="n" executable="e"><topic name="t" type="T" publisher="true"><qos depth="1" %s="%s"/></topic></node></interface>`, attr, key)
				nodes, err := ParseBytes([]byte(input), "")
				if key == "unsupported" {
					nerr := nodlError(t, err)
					assert.Equal(t, nodlerr.KindInvalidQoSValue, nerr.Kind)
					assert.Equal(t, attr, nerr.Attribute)
					return
				}
				require.NoError(t, err)
				topic, _ := nodes[0].Topics.Get("t")
				var got fmt.Stringer
				switch attr {
				case "history":
					got = topic.QoS.History
				case "reliability":
					got = topic.QoS.Reliability
				case "durability":
					got = topic.QoS.Durability
				case "liveliness":
					got = topic.QoS.Liveliness
				}
				assert.Equal(t, key, got.String())
			})
		}
	}
}

// nodeSpec describes a generated node element.
type nodeSpec struct {
	Name       string
	Executable string
	Topics     []string
	Depth      uint64
}

func (s nodeSpec) xml() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<node name="%s" executable="%s">`, s.Name, s.Executable)
	for i, topic := range s.Topics {
		fmt.Fprintf(&b, `<topic name="%s" type="pkg/T%d" publisher="true"><qos depth="%d"/></topic>`, topic, i, s.Depth)
	}
	b.WriteString(`</node>`)
	return b.String()
}

func TestParseProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	genNode := gopter.CombineGens(
		gen.Identifier(),
		gen.SliceOfN(3, gen.Identifier()),
		gen.UInt64Range(1, 1000),
	).Map(func(v []interface{}) nodeSpec {
		return nodeSpec{Name: v[0].(string), Topics: v[1].([]string), Depth: v[2].(uint64)}
	})

	properties.Property("parsing is idempotent and ordered", prop.ForAll(
		func(specs []nodeSpec) bool {
			var b strings.Builder
			b.WriteString(`<interface version="1">`)
			for i := range specs {
				specs[i].Name = fmt.Sprintf("%s_%d", specs[i].Name, i)
				specs[i].Executable = fmt.Sprintf("exe_%d", i)
				b.WriteString(specs[i].xml())
			}
			b.WriteString(`</interface>`)

			first, err := ParseBytes([]byte(b.String()), "generated")
			if err != nil {
				return false
			}
			second, err := ParseBytes([]byte(b.String()), "generated")
			if err != nil || !types.NodesEqual(first, second) || len(first) != len(specs) {
				return false
			}
			for i, n := range first {
				if n.Name != specs[i].Name {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(4, genNode),
	))

	properties.TestingRun(t)
}

func TestParseMultiple(t *testing.T) {
	check := assert.New(t)

	nodes, err := ParseMultiple("testdata/test.nodl.xml", "testdata/listener.nodl.xml")
	require.NoError(t, err)
	var names []string
	for _, n := range nodes {
		names = append(names, n.Name+"/"+n.Executable)
	}
	check.Equal([]string{"foo/row", "talker/talker", "listener/listener", "foo/other_row"}, names,
		"the same node name with different executables is allowed")

	_, err = ParseMultiple("testdata/test.nodl.xml", "testdata/duplicate.nodl.xml")
	nerr := nodlError(t, err)
	check.Equal(nodlerr.KindDuplicateNode, nerr.Kind)
	check.Equal("rower", nerr.Name, "the later definition is reported")
	check.Equal("row", nerr.Executable)
	check.EqualError(err, "multiple definitions of node rower found for executable row")

	_, err = ParseMultiple("testdata/test.nodl.xml", "testdata/test.nodl.xml")
	check.True(nodlerr.IsKind(err, nodlerr.KindDuplicateNode), "same name and executable")

	nodes, err = ParseMultiple("testdata/listener.nodl.xml", "testdata/malformed.nodl.xml")
	check.True(nodlerr.IsKind(err, nodlerr.KindSyntax))
	check.Nil(nodes, "no partial results")

	nodes, err = ParseMultiple()
	check.NoError(err)
	check.Empty(nodes)
}
