// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package pkgexports

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// placeholder stands in for the matched wildcard segment during condition resolution.
// NUL bytes never appear in real paths.
const placeholder = "\x00pkgexports-placeholder\x00"

// lookupSubpath finds the value serving entry: exact key first, then the longest
// pattern key. segment is the part of entry matched by "*" or by a trailing-"/" key.
func lookupSubpath(entries []Entry, entry string) (value *Value, segment string, found bool) {
	for i := range entries {
		if entries[i].Key == entry {
			return entries[i].Value, "", true
		}
	}

	longest := ""
	for i := range entries {
		key := entries[i].Key
		if found && len(key) < len(longest) {
			continue
		}

		if strings.HasSuffix(key, "/") {
			if rest, ok := strings.CutPrefix(entry, key); ok {
				value, segment, found, longest = entries[i].Value, rest, true, key
			}

			continue
		}

		if len(key) < 2 {
			continue
		}

		star := strings.IndexByte(key[1:], '*')
		if star < 0 {
			continue
		}

		prefix, suffix := key[:star+1], key[star+2:]
		if len(entry) <= len(prefix)+len(suffix) ||
			!strings.HasPrefix(entry, prefix) ||
			!strings.HasSuffix(entry, suffix) {
			continue
		}

		value, segment, found, longest = entries[i].Value, entry[len(prefix):len(entry)-len(suffix)], true, key
	}

	return value, segment, found
}

// injectSubpath substitutes segment into resolved targets in place.
//
// Targets with "*" get every "*" replaced; targets ending with "/" get segment appended.
func injectSubpath(targets []string, segment string) {
	if segment == "" {
		return
	}

	for i, target := range targets {
		switch {
		case strings.Contains(target, "*"):
			targets[i] = strings.ReplaceAll(target, "*", segment)
		case strings.HasSuffix(target, "/"):
			targets[i] = target + segment
		}
	}
}

// expandWildcard resolves one wildcard subpath key of subpaths into existing files.
//
// A key with no matching restrictive condition expands to nothing.
func (r *Resolver) expandWildcard(fsys fs.FS, subpaths []Entry, key string) ([]string, error) {
	if strings.Count(key, "*") > 1 {
		r.sink.Report(DiagnosticAmbiguousWildcard, Diagnostic{
			Subpath: key,
			Message: fmt.Sprintf("subpath %q has more than one wildcard and is skipped", key),
		})
		return nil, nil
	}

	value, segment, found := lookupSubpath(subpaths, strings.ReplaceAll(key, "*", placeholder))
	if !found || value == nil {
		return nil, nil
	}

	targets, err := resolveConditions(*value, r.restricted)
	if err != nil {
		if errors.Is(err, ErrNoMatchingCondition) {
			return nil, nil
		}

		return nil, &ResolutionError{Subpath: key, Reason: ErrUnexpectedShape, Restricted: err}
	}

	if len(targets) == 0 {
		r.sink.Report(DiagnosticNullTarget, Diagnostic{
			Subpath: key,
			Message: fmt.Sprintf("wildcard subpath %q resolves to null under the selected conditions and exports nothing", key),
		})
		return nil, nil
	}

	injectSubpath(targets, segment)

	var out []string
	for _, target := range targets {
		if !strings.Contains(target, placeholder) {
			r.sink.Report(DiagnosticStaticTarget, Diagnostic{
				Subpath: key,
				Pattern: target,
				Message: fmt.Sprintf("wildcard subpath %q maps every match to the single target %q", key, target),
			})
		}

		pattern := strings.ReplaceAll(target, placeholder, "*")
		matches, err := r.globFiles(fsys, key, pattern)
		if err != nil {
			return nil, err
		}

		out = append(out, matches...)
	}

	return out, nil
}

// globFiles expands pattern against fsys returning existing files only, in walk order.
func (r *Resolver) globFiles(fsys fs.FS, key string, pattern string) ([]string, error) {
	rel, prefix, ok := splitTarget(pattern)
	if !ok {
		r.sink.Report(DiagnosticOutsidePackage, Diagnostic{
			Subpath: key,
			Pattern: pattern,
			Message: fmt.Sprintf("target %q of subpath %q is outside the package root", pattern, key),
		})
		return nil, nil
	}

	matches, err := doublestar.Glob(fsys, rel, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("%w: subpath %q: glob %q: %v", ErrInvalidExports, key, pattern, err)
	}

	if len(matches) == 0 {
		r.sink.Report(DiagnosticEmptyExpansion, Diagnostic{
			Subpath: key,
			Pattern: pattern,
			Message: fmt.Sprintf("target %q of subpath %q matched no files", pattern, key),
		})
		return nil, nil
	}

	if prefix != "" {
		for i := range matches {
			matches[i] = prefix + matches[i]
		}
	}

	return matches, nil
}
