package schema

import (
	"embed"
	"io"
	"strings"
	"sync"

	"github.com/andaru/nodl/nodlerr"
	"github.com/golang/glog"
	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"
	"github.com/pkg/errors"
)

// Bundled schema file names.
const (
	InterfaceFile = "xsd/interface.xsd"
	V1File        = "xsd/v1.xsd"
)

//go:embed xsd/*.xsd
var files embed.FS

var (
	interfaceSchema = sync.OnceValue(func() *xsd.Schema { return mustLoad(InterfaceFile) })
	v1Schema        = sync.OnceValue(func() *xsd.Schema { return mustLoad(V1File) })
)

// Interface returns the interface envelope schema.
func Interface() *xsd.Schema { return interfaceSchema() }

// V1 returns the version 1 schema.
func V1() *xsd.Schema { return v1Schema() }

// Source returns the text of the bundled schema document name.
func Source(name string) ([]byte, error) { return files.ReadFile(name) }

func mustLoad(name string) *xsd.Schema {
	s, err := xsd.Load(files, name)
	if err != nil {
		panic(errors.Wrapf(err, "bundled schema %s", name))
	}
	glog.V(2).Infof("compiled schema %s", name)
	return s
}

// Validate validates the document read from r against s. The first
// diagnostic is returned as a document-invalid error located in
// source; lineOffset is added to reported lines.
func Validate(s *xsd.Schema, r io.Reader, source string, lineOffset int) error {
	err := s.Validate(r)
	if err == nil {
		return nil
	}
	opts := []nodlerr.Option{nodlerr.WithSource(source), nodlerr.WithCause(err)}
	msg := err.Error()
	if vs, ok := xsderrors.AsValidations(err); ok && len(vs) > 0 {
		v := vs[0]
		msg = v.Message
		if v.Path != "" {
			msg += " at " + v.Path
		}
		if v.Line > 0 {
			opts = append(opts, nodlerr.WithLine(v.Line+lineOffset))
		}
		if v.Column > 0 {
			opts = append(opts, nodlerr.WithColumn(v.Column))
		}
	}
	return errors.WithStack(nodlerr.DocumentInvalid(strings.TrimSpace(msg), opts...))
}
