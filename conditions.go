// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package pkgexports

import (
	"errors"
	"fmt"
	"strings"
)

// conditionSet is a compiled set of enabled conditions.
type conditionSet struct {
	// enabled is a lookup set over names.
	enabled map[string]struct{}
	// names are enabled conditions in priority order.
	names []string
	// order selects priority or manifest key order matching.
	order ConditionOrder
	// any accepts every key in manifest order.
	any bool
}

// newConditionSet compiles names into a set, dropping blanks and duplicates.
func newConditionSet(names []string, order ConditionOrder) conditionSet {
	set := conditionSet{
		enabled: make(map[string]struct{}, len(names)),
		names:   make([]string, 0, len(names)),
		order:   order,
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if _, ok := set.enabled[name]; ok {
			continue
		}

		set.enabled[name] = struct{}{}
		set.names = append(set.names, name)
	}

	return set
}

// restrictiveSet builds the first-attempt set: configured conditions plus the
// environment condition placed right before "default".
func restrictiveSet(opts Options) conditionSet {
	env := opts.Environment.condition()
	names := make([]string, 0, len(opts.Conditions)+1)

	placed := false
	for _, name := range opts.Conditions {
		if name == env {
			placed = true
		}

		if name == "default" && !placed {
			names = append(names, env)
			placed = true
		}

		names = append(names, name)
	}

	if !placed {
		names = append(names, env)
	}

	return newConditionSet(names, opts.Order)
}

// fallbackSet builds the second-attempt set; empty fallback conditions accept any key.
func fallbackSet(opts Options) conditionSet {
	if len(opts.FallbackConditions) == 0 {
		return conditionSet{any: true, order: OrderManifest}
	}

	return newConditionSet(opts.FallbackConditions, opts.Order)
}

// pick returns the winning entry of a condition map.
func (s conditionSet) pick(entries []Entry) (Entry, bool) {
	if s.any {
		if len(entries) == 0 {
			return Entry{}, false
		}

		return entries[0], true
	}

	if s.order == OrderManifest {
		for i := range entries {
			if _, ok := s.enabled[entries[i].Key]; ok {
				return entries[i], true
			}
		}

		return Entry{}, false
	}

	for _, name := range s.names {
		for i := range entries {
			if entries[i].Key == name {
				return entries[i], true
			}
		}
	}

	return Entry{}, false
}

// String describes the set for error messages.
func (s conditionSet) String() string {
	if s.any {
		return "any condition"
	}

	return "[" + strings.Join(s.names, " ") + "]"
}

// resolveConditions resolves a value to concrete targets under one condition set.
//
// A matched condition mapped to null resolves to no targets without error.
func resolveConditions(v Value, set conditionSet) ([]string, error) {
	switch v.Kind() {
	case KindPath:
		return []string{v.path}, nil
	case KindConditions:
		entry, ok := set.pick(v.entries)
		if !ok {
			return nil, fmt.Errorf("%w: keys [%s] not in %s", ErrNoMatchingCondition, joinKeys(v.entries), set)
		}

		if entry.Value == nil {
			return []string{}, nil
		}

		return resolveConditions(*entry.Value, set)
	case KindTargets:
		return resolveTargets(v.targets, set)
	default:
		if len(v.entries) == 0 {
			return nil, fmt.Errorf("%w: empty condition map", ErrNoMatchingCondition)
		}

		return nil, fmt.Errorf("%w: subpath map [%s] in condition position", ErrUnexpectedShape, joinKeys(v.entries))
	}
}

// resolveTargets concatenates the targets of every list item in order.
//
// Items that fail are skipped; the list fails with the first item error only
// when no item resolved. Null items contribute nothing.
func resolveTargets(items []*Value, set conditionSet) ([]string, error) {
	out := []string{}
	resolved := false

	var firstErr error
	for _, item := range items {
		if item == nil {
			resolved = true
			continue
		}

		paths, err := resolveConditions(*item, set)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		resolved = true
		out = append(out, paths...)
	}

	if !resolved && firstErr != nil {
		return nil, firstErr
	}

	return out, nil
}

// resolveTwoStage tries the restrictive set, then the fallback set on a missing condition.
func resolveTwoStage(subpath string, v Value, restricted conditionSet, fallback conditionSet) ([]string, error) {
	paths, err := resolveConditions(v, restricted)
	if err == nil {
		return paths, nil
	}

	if !errors.Is(err, ErrNoMatchingCondition) {
		return nil, &ResolutionError{
			Subpath:    subpath,
			Reason:     ErrUnexpectedShape,
			Restricted: err,
		}
	}

	paths, fbErr := resolveConditions(v, fallback)
	if fbErr == nil {
		return paths, nil
	}

	reason := ErrNoMatchingCondition
	if errors.Is(fbErr, ErrUnexpectedShape) {
		reason = ErrUnexpectedShape
	}

	return nil, &ResolutionError{
		Subpath:    subpath,
		Reason:     reason,
		Restricted: err,
		Fallback:   fbErr,
	}
}

// joinKeys joins entry keys with spaces.
func joinKeys(entries []Entry) string {
	keys := make([]string, len(entries))
	for i := range entries {
		keys[i] = entries[i].Key
	}

	return strings.Join(keys, " ")
}
