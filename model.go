// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package pkgexports

import (
	"fmt"
	"strings"
)

// Kind is the classified shape of an exports value.
type Kind uint8

const (
	// KindPath is a direct target path.
	KindPath Kind = iota + 1
	// KindConditions is a map of condition names to values.
	KindConditions
	// KindSubpaths is a map of "."-prefixed subpath keys to values or null.
	KindSubpaths
	// KindTargets is an ordered list of alternative values.
	KindTargets
)

// String returns kind name.
func (k Kind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindConditions:
		return "conditions"
	case KindSubpaths:
		return "subpaths"
	case KindTargets:
		return "targets"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is an immutable classified exports value.
//
// The zero Value is an empty subpath map.
type Value struct {
	path    string
	entries []Entry
	targets []*Value
	kind    Kind
}

// Entry is one ordered key of a condition or subpath map.
type Entry struct {
	// Key is a condition name or a subpath key.
	Key string
	// Value is the mapped value, nil for JSON null.
	Value *Value
}

// RawMap is an ordered JSON-like object used as Classify input.
type RawMap []RawEntry

// RawEntry is one key of RawMap.
type RawEntry struct {
	Key   string
	Value any
}

// Kind returns classified shape.
func (v Value) Kind() Kind {
	if v.kind == 0 {
		return KindSubpaths
	}

	return v.kind
}

// Path returns target of KindPath value, empty for map kinds.
func (v Value) Path() string {
	return v.path
}

// Entries returns a copy of map entries in manifest order.
func (v Value) Entries() []Entry {
	out := make([]Entry, len(v.entries))
	copy(out, v.entries)
	return out
}

// Targets returns a copy of list items; nil items are JSON nulls.
func (v Value) Targets() []*Value {
	out := make([]*Value, len(v.targets))
	copy(out, v.targets)
	return out
}

// Len returns number of map entries.
func (v Value) Len() int {
	return len(v.entries)
}

// Environment selects the environment condition added to the restrictive set.
type Environment uint8

const (
	// EnvironmentUnknown is unset environment placeholder.
	EnvironmentUnknown Environment = iota
	// EnvironmentBrowser adds the "browser" condition.
	EnvironmentBrowser
	// EnvironmentNode adds the "node" condition.
	EnvironmentNode
)

// ConditionOrder selects how a condition map picks its winning key.
type ConditionOrder uint8

const (
	// OrderUnknown is unset order placeholder.
	OrderUnknown ConditionOrder = iota
	// OrderPriority walks enabled condition names in configured order.
	OrderPriority
	// OrderManifest walks map keys in manifest order, as Node.js does.
	OrderManifest
)

// Options controls resolver behavior.
type Options struct {
	// Conditions are restrictive conditions in priority order.
	// Empty value defaults to "import", "default".
	Conditions []string `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	// FallbackConditions limit the second resolution attempt.
	// Empty value accepts any condition key in manifest order.
	FallbackConditions []string `json:"fallback_conditions,omitempty" yaml:"fallback_conditions,omitempty"`
	// Environment adds "browser" or "node" to restrictive conditions.
	// Unset value defaults to browser.
	Environment Environment `json:"environment,omitempty" yaml:"environment,omitempty"`
	// Order selects condition matching order. Unset value defaults to priority order.
	Order ConditionOrder `json:"order,omitempty" yaml:"order,omitempty"`
	// IsolateSubpaths skips unresolvable subpaths instead of failing the whole call.
	IsolateSubpaths bool `json:"isolate_subpaths,omitempty" yaml:"isolate_subpaths,omitempty"`
}

// defaultConditions are the ESM-oriented restrictive conditions.
var defaultConditions = []string{"import", "default"}

// applyDefaults fills zero-valued options with defaults.
func (opts *Options) applyDefaults() {
	if len(opts.Conditions) == 0 {
		opts.Conditions = defaultConditions
	}

	if !opts.Environment.valid() {
		opts.Environment = EnvironmentBrowser
	}

	if !opts.Order.valid() {
		opts.Order = OrderPriority
	}
}

// valid reports whether environment value is supported.
func (e Environment) valid() bool {
	return e == EnvironmentBrowser || e == EnvironmentNode
}

// condition returns the condition name enabled by environment.
func (e Environment) condition() string {
	if e == EnvironmentNode {
		return "node"
	}

	return "browser"
}

// String returns environment name.
func (e Environment) String() string {
	switch e {
	case EnvironmentBrowser:
		return "browser"
	case EnvironmentNode:
		return "node"
	default:
		return "unknown"
	}
}

// ParseEnvironment parses "browser" or "node", case-insensitive.
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "browser":
		return EnvironmentBrowser, nil
	case "node":
		return EnvironmentNode, nil
	default:
		return EnvironmentUnknown, fmt.Errorf("unsupported environment %q", s)
	}
}

// valid reports whether order value is supported.
func (o ConditionOrder) valid() bool {
	return o == OrderPriority || o == OrderManifest
}

// String returns order name.
func (o ConditionOrder) String() string {
	switch o {
	case OrderPriority:
		return "priority"
	case OrderManifest:
		return "manifest"
	default:
		return "unknown"
	}
}

// ParseConditionOrder parses "priority" or "manifest", case-insensitive.
func ParseConditionOrder(s string) (ConditionOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "priority":
		return OrderPriority, nil
	case "manifest":
		return OrderManifest, nil
	default:
		return OrderUnknown, fmt.Errorf("unsupported condition order %q", s)
	}
}
