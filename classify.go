// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package pkgexports

import (
	"fmt"
	"sort"
	"strings"
)

// NewPath returns a direct path value.
func NewPath(target string) Value {
	return Value{kind: KindPath, path: target}
}

// NewTargets returns a target list; nil items stand for null.
func NewTargets(items ...*Value) Value {
	out := make([]*Value, len(items))
	copy(out, items)

	return Value{kind: KindTargets, targets: out}
}

// NewMap classifies ordered entries into a condition or subpath map.
//
// Classification is computed once for the whole map:
//   - every key lacks a leading "." -> KindConditions
//   - otherwise -> KindSubpaths
//
// An empty map is an empty subpath map.
func NewMap(entries ...Entry) Value {
	out := make([]Entry, len(entries))
	copy(out, entries)

	return Value{kind: classifyKeys(out), entries: out}
}

// Classify converts a raw JSON-like exports value into a classified Value.
//
// Accepted inputs are string, RawMap, map[string]any, []any and nil. Nil at top
// level is an empty subpath map, nil inside a map or list is an explicit null.
// map[string]any keys are taken in lexical order.
func Classify(raw any) (Value, error) {
	if raw == nil {
		return Value{kind: KindSubpaths}, nil
	}

	return classifyRaw(raw, "")
}

// classifyRaw classifies one non-nil raw value; at is the key path for error context.
func classifyRaw(raw any, at string) (Value, error) {
	switch v := raw.(type) {
	case string:
		return NewPath(v), nil
	case RawMap:
		return classifyRawMap(v, at)
	case map[string]any:
		return classifyRawMap(sortedRawMap(v), at)
	case []any:
		return classifyRawList(v, at)
	default:
		return Value{}, fmt.Errorf("%w: unsupported type %T at %q", ErrInvalidExports, raw, keyPath(at))
	}
}

// classifyRawMap classifies map entries recursively preserving order.
func classifyRawMap(raw RawMap, at string) (Value, error) {
	entries := make([]Entry, 0, len(raw))
	for _, re := range raw {
		if re.Value == nil {
			entries = append(entries, Entry{Key: re.Key})
			continue
		}

		child, err := classifyRaw(re.Value, at+"/"+re.Key)
		if err != nil {
			return Value{}, err
		}

		entries = append(entries, Entry{Key: re.Key, Value: &child})
	}

	return Value{kind: classifyKeys(entries), entries: entries}, nil
}

// classifyRawList classifies list items recursively preserving order.
func classifyRawList(raw []any, at string) (Value, error) {
	targets := make([]*Value, 0, len(raw))
	for i, item := range raw {
		if item == nil {
			targets = append(targets, nil)
			continue
		}

		child, err := classifyRaw(item, fmt.Sprintf("%s[%d]", at, i))
		if err != nil {
			return Value{}, err
		}

		targets = append(targets, &child)
	}

	return Value{kind: KindTargets, targets: targets}, nil
}

// classifyKeys applies the all-or-nothing condition key heuristic.
func classifyKeys(entries []Entry) Kind {
	if len(entries) == 0 {
		return KindSubpaths
	}

	for i := range entries {
		if strings.HasPrefix(entries[i].Key, ".") {
			return KindSubpaths
		}
	}

	return KindConditions
}

// sortedRawMap converts an unordered map to RawMap with lexical key order.
func sortedRawMap(m map[string]any) RawMap {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(RawMap, 0, len(keys))
	for _, k := range keys {
		out = append(out, RawEntry{Key: k, Value: m[k]})
	}

	return out
}

// keyPath formats classification key path for messages.
func keyPath(at string) string {
	if at == "" {
		return "exports"
	}

	return "exports" + at
}
