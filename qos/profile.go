// Package qos models quality of service profiles attached to NoDL
// topics, services and actions.
//
// Only profile values are modelled; nothing here configures a
// middleware. A Profile is a plain comparable struct. Options holds
// the subset of policies a document sets explicitly and is turned
// into a Profile by merging it over Default and checking the
// construction constraints.
package qos

import (
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrHistoryOrDepthRequired is returned when neither history nor depth is set.
	ErrHistoryOrDepthRequired = errors.New("history and/or depth settings are required")
	// ErrInvalidDepth is returned when keep_last history is combined with a zero depth.
	ErrInvalidDepth = errors.New("depth must be greater than zero when history is keep_last")
)

// Profile is a quality of service profile.
//
// Zero durations mean "unspecified", leaving the choice to the middleware.
type Profile struct {
	History                      HistoryPolicy     `json:"history"`
	Depth                        uint64            `json:"depth"`
	Reliability                  ReliabilityPolicy `json:"reliability"`
	Durability                   DurabilityPolicy  `json:"durability"`
	Lifespan                     time.Duration     `json:"lifespan"`
	Deadline                     time.Duration     `json:"deadline"`
	Liveliness                   LivelinessPolicy  `json:"liveliness"`
	LivelinessLeaseDuration      time.Duration     `json:"liveliness_lease_duration"`
	AvoidROSNamespaceConventions bool              `json:"avoid_ros_namespace_conventions"`
}

// Default returns the default profile, used whenever a document
// supplies no QoS element.
func Default() Profile {
	return Profile{
		History:     HistoryKeepLast,
		Depth:       10,
		Reliability: ReliabilityReliable,
		Durability:  DurabilityVolatile,
		Liveliness:  LivelinessSystemDefault,
	}
}

// SystemDefault returns a profile deferring every policy to the middleware.
func SystemDefault() Profile {
	return Profile{
		History:     HistorySystemDefault,
		Reliability: ReliabilitySystemDefault,
		Durability:  DurabilitySystemDefault,
		Liveliness:  LivelinessSystemDefault,
	}
}

// SensorData returns the best effort profile for sensor streams.
func SensorData() Profile {
	p := Default()
	p.Depth = 5
	p.Reliability = ReliabilityBestEffort
	return p
}

// ServicesDefault returns the default profile for services.
func ServicesDefault() Profile { return Default() }

// ParameterEvents returns the profile used for parameter event topics.
func ParameterEvents() Profile {
	p := Default()
	p.Depth = 1000
	return p
}

// ActionStatusDefault returns the profile used for action status topics.
func ActionStatusDefault() Profile {
	p := Default()
	p.Depth = 1
	p.Durability = DurabilityTransientLocal
	return p
}

// Options holds explicitly set policies. Nil fields are unset.
type Options struct {
	History                      *HistoryPolicy
	Depth                        *uint64
	Reliability                  *ReliabilityPolicy
	Durability                   *DurabilityPolicy
	Lifespan                     *time.Duration
	Deadline                     *time.Duration
	Liveliness                   *LivelinessPolicy
	LivelinessLeaseDuration      *time.Duration
	AvoidROSNamespaceConventions *bool
}

// ProfileError reports a rejected policy combination.
type ProfileError struct {
	Options Options
	err     error
}

func (e *ProfileError) Error() string { return "invalid QoS profile: " + e.err.Error() }
func (e *ProfileError) Unwrap() error { return e.err }

// Profile merges o over Default and validates the result.
//
// At least one of History or Depth must be set. Depth without
// History implies keep_last, which requires a non-zero depth.
func (o Options) Profile() (Profile, error) {
	if o.History == nil && o.Depth == nil {
		return Profile{}, &ProfileError{Options: o, err: ErrHistoryOrDepthRequired}
	}
	p := o.Apply(Default())
	if o.History == nil {
		p.History = HistoryKeepLast
	}
	if p.History == HistoryKeepLast && o.Depth != nil && *o.Depth == 0 {
		return Profile{}, &ProfileError{Options: o, err: ErrInvalidDepth}
	}
	return p, nil
}

// Apply returns base with every set field of o copied over it.
func (o Options) Apply(base Profile) Profile {
	p := base
	setIf(&p.History, o.History)
	setIf(&p.Depth, o.Depth)
	setIf(&p.Reliability, o.Reliability)
	setIf(&p.Durability, o.Durability)
	setIf(&p.Lifespan, o.Lifespan)
	setIf(&p.Deadline, o.Deadline)
	setIf(&p.Liveliness, o.Liveliness)
	setIf(&p.LivelinessLeaseDuration, o.LivelinessLeaseDuration)
	setIf(&p.AvoidROSNamespaceConventions, o.AvoidROSNamespaceConventions)
	return p
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

type profileView struct {
	History                      HistoryPolicy     `yaml:"history"`
	Depth                        uint64            `yaml:"depth"`
	Reliability                  ReliabilityPolicy `yaml:"reliability"`
	Durability                   DurabilityPolicy  `yaml:"durability"`
	Lifespan                     int64             `yaml:"lifespan"`
	Deadline                     int64             `yaml:"deadline"`
	Liveliness                   LivelinessPolicy  `yaml:"liveliness"`
	LivelinessLeaseDuration      int64             `yaml:"liveliness_lease_duration"`
	AvoidROSNamespaceConventions bool              `yaml:"avoid_ros_namespace_conventions"`
}

// MarshalYAML renders durations as integer nanoseconds, matching the
// JSON encoding of time.Duration.
func (p Profile) MarshalYAML() (interface{}, error) {
	return profileView{
		History:                      p.History,
		Depth:                        p.Depth,
		Reliability:                  p.Reliability,
		Durability:                   p.Durability,
		Lifespan:                     p.Lifespan.Nanoseconds(),
		Deadline:                     p.Deadline.Nanoseconds(),
		Liveliness:                   p.Liveliness,
		LivelinessLeaseDuration:      p.LivelinessLeaseDuration.Nanoseconds(),
		AvoidROSNamespaceConventions: p.AvoidROSNamespaceConventions,
	}, nil
}
