package qos

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnknownShortKey is returned when a policy short key has no match.
var ErrUnknownShortKey = errors.New("unknown short key")

// HistoryPolicy is the QoS history policy
type HistoryPolicy int

const (
	HistorySystemDefault HistoryPolicy = iota
	HistoryKeepLast
	HistoryKeepAll
)

// ReliabilityPolicy is the QoS reliability policy
type ReliabilityPolicy int

const (
	ReliabilitySystemDefault ReliabilityPolicy = iota
	ReliabilityReliable
	ReliabilityBestEffort
)

// DurabilityPolicy is the QoS durability policy
type DurabilityPolicy int

const (
	DurabilitySystemDefault DurabilityPolicy = iota
	DurabilityTransientLocal
	DurabilityVolatile
)

// LivelinessPolicy is the QoS liveliness policy
type LivelinessPolicy int

const (
	LivelinessSystemDefault LivelinessPolicy = iota
	LivelinessAutomatic
	LivelinessManualByNode
	LivelinessManualByTopic
)

var (
	historyKeys     = []string{"system_default", "keep_last", "keep_all"}
	reliabilityKeys = []string{"system_default", "reliable", "best_effort"}
	durabilityKeys  = []string{"system_default", "transient_local", "volatile"}
	livelinessKeys  = []string{"system_default", "automatic", "manual_by_node", "manual_by_topic"}
)

// HistoryKeys returns the history policy short keys, in policy order.
func HistoryKeys() []string { return append([]string(nil), historyKeys...) }

// ReliabilityKeys returns the reliability policy short keys, in policy order.
func ReliabilityKeys() []string { return append([]string(nil), reliabilityKeys...) }

// DurabilityKeys returns the durability policy short keys, in policy order.
func DurabilityKeys() []string { return append([]string(nil), durabilityKeys...) }

// LivelinessKeys returns the liveliness policy short keys, in policy order.
func LivelinessKeys() []string { return append([]string(nil), livelinessKeys...) }

func shortKey(keys []string, v int, typ string) string {
	if v >= 0 && v < len(keys) {
		return keys[v]
	}
	return fmt.Sprintf("%s(%d)", typ, v)
}

// lookup matches key exactly (case-sensitive) against keys.
func lookup(keys []string, key string) (int, error) {
	for i, k := range keys {
		if k == key {
			return i, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownShortKey, "%q", key)
}

func (p HistoryPolicy) String() string { return shortKey(historyKeys, int(p), "HistoryPolicy") }
func (p ReliabilityPolicy) String() string {
	return shortKey(reliabilityKeys, int(p), "ReliabilityPolicy")
}
func (p DurabilityPolicy) String() string {
	return shortKey(durabilityKeys, int(p), "DurabilityPolicy")
}
func (p LivelinessPolicy) String() string {
	return shortKey(livelinessKeys, int(p), "LivelinessPolicy")
}

// ParseHistoryPolicy returns the history policy for a short key.
func ParseHistoryPolicy(key string) (HistoryPolicy, error) {
	i, err := lookup(historyKeys, key)
	return HistoryPolicy(i), err
}

// ParseReliabilityPolicy returns the reliability policy for a short key.
func ParseReliabilityPolicy(key string) (ReliabilityPolicy, error) {
	i, err := lookup(reliabilityKeys, key)
	return ReliabilityPolicy(i), err
}

// ParseDurabilityPolicy returns the durability policy for a short key.
func ParseDurabilityPolicy(key string) (DurabilityPolicy, error) {
	i, err := lookup(durabilityKeys, key)
	return DurabilityPolicy(i), err
}

// ParseLivelinessPolicy returns the liveliness policy for a short key.
func ParseLivelinessPolicy(key string) (LivelinessPolicy, error) {
	i, err := lookup(livelinessKeys, key)
	return LivelinessPolicy(i), err
}

func (p HistoryPolicy) MarshalText() ([]byte, error)     { return []byte(p.String()), nil }
func (p ReliabilityPolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
func (p DurabilityPolicy) MarshalText() ([]byte, error)  { return []byte(p.String()), nil }
func (p LivelinessPolicy) MarshalText() ([]byte, error)  { return []byte(p.String()), nil }

func (p *HistoryPolicy) UnmarshalText(b []byte) (err error) {
	*p, err = ParseHistoryPolicy(string(b))
	return err
}

func (p *ReliabilityPolicy) UnmarshalText(b []byte) (err error) {
	*p, err = ParseReliabilityPolicy(string(b))
	return err
}

func (p *DurabilityPolicy) UnmarshalText(b []byte) (err error) {
	*p, err = ParseDurabilityPolicy(string(b))
	return err
}

func (p *LivelinessPolicy) UnmarshalText(b []byte) (err error) {
	*p, err = ParseLivelinessPolicy(string(b))
	return err
}
