package nodl

import (
	"bytes"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/andaru/nodl/nodlerr"
	"github.com/andaru/nodl/schema"
	"github.com/andaru/nodl/types"
	"github.com/andaru/nodl/v1"
	"github.com/andaru/nodl/xmlutil"
	"github.com/pkg/errors"
)

// VersionParser parses an interface element of a single version.
type VersionParser func(*xmlutil.Element) ([]types.Node, error)

var versions = map[int]VersionParser{
	v1.Version: v1.Parse,
}

// SupportedVersions returns the supported interface versions, ascending.
func SupportedVersions() []int { return slices.Sorted(maps.Keys(versions)) }

// MaxSupportedVersion returns the highest supported interface version.
func MaxSupportedVersion() int { return slices.Max(SupportedVersions()) }

// Parse parses the NoDL document at path. Relative paths are made
// absolute first so that errors name the file unambiguously.
func Parse(path string) ([]types.Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return ParseBytes(b, abs)
}

// ParseReader parses a document read from r. When r has a Name
// method, as *os.File does, its result names the source in errors.
func ParseReader(r io.Reader) ([]types.Node, error) {
	var source string
	if named, ok := r.(interface{ Name() string }); ok {
		source = named.Name()
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return ParseBytes(b, source)
}

// ParseBytes parses the serialized document b, naming it source.
func ParseBytes(b []byte, source string) ([]types.Node, error) {
	doc, err := xmlutil.Parse(b, source)
	if err != nil {
		return nil, err
	}
	return ParseElementTree(doc)
}

// ParseElementTree validates doc against the interface envelope schema
// and parses its root interface element.
func ParseElementTree(doc *xmlutil.Document) ([]types.Node, error) {
	root := doc.Root()
	if root == nil {
		return nil, errors.WithStack(nodlerr.DocumentInvalid("no root element", nodlerr.WithSource(doc.Source)))
	}
	if err := schema.Validate(schema.Interface(), bytes.NewReader(doc.Bytes()), doc.Source, 0); err != nil {
		return nil, err
	}
	return ParseInterface(root)
}

// ParseInterface dispatches the interface element e to the parser
// registered for its version attribute.
func ParseInterface(e *xmlutil.Element) ([]types.Node, error) {
	v, ok := e.Attr("version")
	if !ok {
		return nil, errors.WithStack(nodlerr.MissingVersion(e.Tag(), e.Location()))
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	parse, ok := versions[n]
	if err != nil || !ok {
		return nil, errors.WithStack(nodlerr.UnsupportedVersion(v, MaxSupportedVersion(), e.Location()))
	}
	return parse(e)
}

// ParseMultiple parses each path in order and concatenates the
// resulting nodes. Any failure aborts the call. A node whose
// executable was already seen is a duplicate-node error naming the
// later node.
func ParseMultiple(paths ...string) ([]types.Node, error) {
	var (
		out  []types.Node
		seen = map[string]struct{}{}
	)
	for _, path := range paths {
		nodes, err := Parse(path)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			if _, dup := seen[n.Executable]; dup {
				return nil, errors.WithStack(nodlerr.DuplicateNode(n.Name, n.Executable, nodlerr.WithSource(path)))
			}
			seen[n.Executable] = struct{}{}
			out = append(out, n)
		}
	}
	return out, nil
}
