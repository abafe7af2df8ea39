package nodlerr

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Kind classifies a NoDL error
type Kind int

const (
	// KindSyntax is raised when the input is not well-formed XML
	KindSyntax Kind = iota
	// KindDocumentInvalid is raised when a document violates a schema
	KindDocumentInvalid
	// KindMissingVersion is raised when <interface> has no version attribute
	KindMissingVersion
	// KindUnsupportedVersion is raised for future or malformed versions
	KindUnsupportedVersion
	// KindMissingAttribute is raised when a required attribute is absent
	KindMissingAttribute
	// KindAmbiguousInterface is raised when an action, service or topic
	// declares neither side of its role pair
	KindAmbiguousInterface
	// KindInvalidQoSValue is raised for QoS policy values outside their enum
	KindInvalidQoSValue
	// KindInvalidAttributeValue is raised for malformed boolean, integer or
	// duration attribute text
	KindInvalidAttributeValue
	// KindInvalidQoSProfile is raised when a QoS profile cannot be constructed
	KindInvalidQoSProfile
	// KindNoNoDLFiles is raised when a package exports no NoDL documents
	KindNoNoDLFiles
	// KindDuplicateNode is raised when merged documents redefine an executable
	KindDuplicateNode
	// KindUnknownChildElement is raised for unsupported children of <node>
	KindUnknownChildElement
	// KindExecutableNotFound is raised when no node matches an executable
	KindExecutableNotFound
	// KindPackageNotFound is raised when a package is absent from the prefix path
	KindPackageNotFound
)

var kindNames = [...]string{
	KindSyntax:                "syntax",
	KindDocumentInvalid:       "document-invalid",
	KindMissingVersion:        "missing-version",
	KindUnsupportedVersion:    "unsupported-version",
	KindMissingAttribute:      "missing-attribute",
	KindAmbiguousInterface:    "ambiguous-interface",
	KindInvalidQoSValue:       "invalid-qos-value",
	KindInvalidAttributeValue: "invalid-attribute-value",
	KindInvalidQoSProfile:     "invalid-qos-profile",
	KindNoNoDLFiles:           "no-nodl-files",
	KindDuplicateNode:         "duplicate-node",
	KindUnknownChildElement:   "unknown-child-element",
	KindExecutableNotFound:    "executable-not-found",
	KindPackageNotFound:       "package-not-found",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return errors.New("unknown value")
}

// Error represents a NoDL parsing or discovery error.
//
// Only the fields relevant to the Kind are populated; the remainder
// are zero. Location fields (Source, Line, Column) are filled
// whenever the failing element came from a document with known
// source positions.
type Error struct {
	Kind       Kind   `json:"kind"`
	Source     string `json:"source,omitempty"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Element    string `json:"element,omitempty"`
	Attribute  string `json:"attribute,omitempty"`
	Value      string `json:"value,omitempty"`
	Name       string `json:"name,omitempty"`
	Executable string `json:"executable,omitempty"`
	Package    string `json:"package,omitempty"`
	Version    string `json:"version,omitempty"`
	MaxVersion int    `json:"max-version,omitempty"`
	Message    string `json:"message,omitempty"`

	cause error
}

func (e *Error) Error() string {
	var s string
	switch e.Kind {
	case KindSyntax:
		s = "XML syntax error: " + e.location() + ": " + e.Message
		return s
	case KindDocumentInvalid:
		s = fmt.Sprintf("error parsing NoDL from %s, line %d, col %d: %s",
			e.source(), e.Line, e.Column, e.Message)
		return s
	case KindMissingVersion:
		s = e.location() + ": missing version attribute in <" + e.Element + ">"
	case KindUnsupportedVersion:
		s = fmt.Sprintf("unsupported interface version: %s must be <= %d", e.Version, e.MaxVersion)
	case KindMissingAttribute:
		s = fmt.Sprintf("error parsing %s from %s: missing required attribute %q",
			e.Element, e.location(), e.Attribute)
	case KindAmbiguousInterface:
		s = fmt.Sprintf("%s: ambiguous %s interface %q", e.location(), e.Element, e.Name)
	case KindInvalidQoSValue:
		s = fmt.Sprintf("%s: value %q is not valid for QoS attribute %s", e.location(), e.Value, e.Attribute)
	case KindInvalidAttributeValue:
		s = fmt.Sprintf("%s: attribute %s has invalid value %q", e.location(), e.Attribute, e.Value)
	case KindInvalidQoSProfile:
		s = e.location() + ": invalid QoS profile"
		if e.cause != nil {
			s += ": " + e.cause.Error()
		}
	case KindNoNoDLFiles:
		s = e.Package + " has no NoDL files in its ament index"
	case KindDuplicateNode:
		s = fmt.Sprintf("multiple definitions of node %s found for executable %s", e.Name, e.Executable)
	case KindUnknownChildElement:
		s = fmt.Sprintf("%s: node %s cannot contain <%s>, must be one of (action, parameter, service, topic)",
			e.location(), e.Name, e.Element)
	case KindExecutableNotFound:
		s = fmt.Sprintf("%s has no matching NoDL entries for executable %q", e.Package, e.Executable)
	case KindPackageNotFound:
		s = fmt.Sprintf("package %q not found", e.Package)
	default:
		s = e.Kind.String()
	}
	if e.Message != "" {
		s += ": " + e.Message
	}
	return s
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.cause }

func (e *Error) source() string {
	if e.Source == "" {
		return "<input>"
	}
	return e.Source
}

func (e *Error) location() string {
	if e.Line > 0 {
		return e.source() + ":" + strconv.Itoa(e.Line)
	}
	return e.source()
}

func newError(kind Kind, opts []Option) *Error {
	e := &Error{Kind: kind}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func Syntax(msg string, opts ...Option) *Error {
	e := newError(KindSyntax, opts)
	e.Message = msg
	return e
}

func DocumentInvalid(msg string, opts ...Option) *Error {
	e := newError(KindDocumentInvalid, opts)
	e.Message = msg
	return e
}

func MissingVersion(elementName string, opts ...Option) *Error {
	e := newError(KindMissingVersion, opts)
	e.Element = elementName
	return e
}

func UnsupportedVersion(version string, maxVersion int, opts ...Option) *Error {
	e := newError(KindUnsupportedVersion, opts)
	e.Version = version
	e.MaxVersion = maxVersion
	return e
}

func MissingAttribute(attributeName, elementName string, opts ...Option) *Error {
	e := newError(KindMissingAttribute, opts)
	e.Attribute = attributeName
	e.Element = elementName
	return e
}

func AmbiguousInterface(elementName, name string, opts ...Option) *Error {
	e := newError(KindAmbiguousInterface, opts)
	e.Element = elementName
	e.Name = name
	return e
}

func InvalidQoSValue(attributeName, value string, opts ...Option) *Error {
	e := newError(KindInvalidQoSValue, opts)
	e.Attribute = attributeName
	e.Value = value
	return e
}

func InvalidAttributeValue(attributeName, value string, opts ...Option) *Error {
	e := newError(KindInvalidAttributeValue, opts)
	e.Attribute = attributeName
	e.Value = value
	return e
}

func InvalidQoSProfile(cause error, opts ...Option) *Error {
	e := newError(KindInvalidQoSProfile, opts)
	e.cause = cause
	return e
}

func NoNoDLFiles(packageName string, opts ...Option) *Error {
	e := newError(KindNoNoDLFiles, opts)
	e.Package = packageName
	return e
}

func DuplicateNode(name, executable string, opts ...Option) *Error {
	e := newError(KindDuplicateNode, opts)
	e.Name = name
	e.Executable = executable
	return e
}

func UnknownChildElement(elementName, nodeName string, opts ...Option) *Error {
	e := newError(KindUnknownChildElement, opts)
	e.Element = elementName
	e.Name = nodeName
	return e
}

func ExecutableNotFound(packageName, executable string, opts ...Option) *Error {
	e := newError(KindExecutableNotFound, opts)
	e.Package = packageName
	e.Executable = executable
	return e
}

func PackageNotFound(packageName string, opts ...Option) *Error {
	e := newError(KindPackageNotFound, opts)
	e.Package = packageName
	return e
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err's chain contains an *Error of kind k.
func IsKind(err error, k Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == k
}
