package v1

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/andaru/nodl/nodlerr"
	"github.com/andaru/nodl/qos"
	"github.com/andaru/nodl/xmlutil"
	"github.com/pkg/errors"
)

// QoS attribute names.
const (
	attrHistory                  = "history"
	attrDepth                    = "depth"
	attrReliability              = "reliability"
	attrDurability               = "durability"
	attrLifespan                 = "lifespan"
	attrDeadline                 = "deadline"
	attrLiveliness               = "liveliness"
	attrLivelinessLeaseDuration  = "liveliness_lease_duration"
	attrAvoidNamespaceConvention = "avoid_ros_namespace_conventions"
)

// ParseQoS parses a qos element into a profile. A nil element yields
// qos.Default(). Attributes not present keep their default values.
func ParseQoS(e *xmlutil.Element) (qos.Profile, error) {
	if e == nil {
		return qos.Default(), nil
	}

	var o qos.Options
	for _, step := range []func() error{
		func() (err error) { o.History, err = enumAttr(e, attrHistory, qos.ParseHistoryPolicy); return },
		func() (err error) { o.Depth, err = depthAttr(e); return },
		func() (err error) { o.Reliability, err = enumAttr(e, attrReliability, qos.ParseReliabilityPolicy); return },
		func() (err error) { o.Durability, err = enumAttr(e, attrDurability, qos.ParseDurabilityPolicy); return },
		func() (err error) { o.Lifespan, err = durationAttr(e, attrLifespan); return },
		func() (err error) { o.Deadline, err = durationAttr(e, attrDeadline); return },
		func() (err error) { o.Liveliness, err = enumAttr(e, attrLiveliness, qos.ParseLivelinessPolicy); return },
		func() (err error) { o.LivelinessLeaseDuration, err = durationAttr(e, attrLivelinessLeaseDuration); return },
		func() (err error) { o.AvoidROSNamespaceConventions, err = qosBoolAttr(e); return },
	} {
		if err := step(); err != nil {
			return qos.Profile{}, err
		}
	}

	p, err := o.Profile()
	if err != nil {
		return qos.Profile{}, errors.WithStack(nodlerr.InvalidQoSProfile(err, e.Location()))
	}
	return p, nil
}

func enumAttr[T any](e *xmlutil.Element, name string, parse func(string) (T, error)) (*T, error) {
	v, ok := e.Attr(name)
	if !ok {
		return nil, nil
	}
	p, err := parse(v)
	if err != nil {
		return nil, errors.WithStack(nodlerr.InvalidQoSValue(name, v, e.Location(), nodlerr.WithCause(err)))
	}
	return &p, nil
}

func depthAttr(e *xmlutil.Element) (*uint64, error) {
	v, ok := e.Attr(attrDepth)
	if !ok {
		return nil, nil
	}
	d, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return nil, errors.WithStack(nodlerr.InvalidAttributeValue(attrDepth, v, e.Location(), nodlerr.WithCause(err)))
	}
	return &d, nil
}

// durationAttr parses a non-negative, finite number of nanoseconds.
// Fractional nanoseconds are truncated.
func durationAttr(e *xmlutil.Element, name string) (*time.Duration, error) {
	v, ok := e.Attr(name)
	if !ok {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	switch {
	case err != nil:
		return nil, errors.WithStack(nodlerr.InvalidAttributeValue(name, v, e.Location(), nodlerr.WithCause(err)))
	case math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt64:
		return nil, errors.WithStack(nodlerr.InvalidAttributeValue(name, v, e.Location(),
			nodlerr.WithMessage("duration must be a finite, non-negative number of nanoseconds")))
	}
	d := time.Duration(f)
	return &d, nil
}

func qosBoolAttr(e *xmlutil.Element) (*bool, error) {
	v, ok := e.Attr(attrAvoidNamespaceConvention)
	if !ok {
		return nil, nil
	}
	b, ok := xmlutil.ParseBool(v)
	if !ok {
		return nil, errors.WithStack(nodlerr.InvalidAttributeValue(attrAvoidNamespaceConvention, v, e.Location(),
			nodlerr.WithMessage("expected true, false, 1 or 0")))
	}
	return &b, nil
}
