// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package pkgexports

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Resolver expands exports values into reachable file lists.
//
// Resolver is immutable after construction and safe for concurrent use when
// its Sink is.
type Resolver struct {
	// sink receives advisory diagnostics.
	sink Sink
	// restricted is the first-attempt condition set.
	restricted conditionSet
	// fallback is the second-attempt condition set.
	fallback conditionSet
	// opts are normalized options.
	opts Options
}

// NewResolver creates a resolver; nil sink discards diagnostics.
func NewResolver(opts Options, sink Sink) *Resolver {
	opts.applyDefaults()
	if sink == nil {
		sink = NopSink()
	}

	return &Resolver{
		sink:       sink,
		restricted: restrictiveSet(opts),
		fallback:   fallbackSet(opts),
		opts:       opts,
	}
}

// Options returns normalized resolver options.
func (r *Resolver) Options() Options {
	return r.opts
}

// Resolve returns files exposed by exports, relative to package root cwd.
func (r *Resolver) Resolve(exports Value, cwd string) ([]string, error) {
	return r.ResolveFS(exports, os.DirFS(cwd))
}

// ResolveFS returns files exposed by exports with wildcard targets expanded against fsys.
//
// Result order follows manifest order and is not deduplicated:
//   - direct path -> the path itself, without existence check
//   - condition map -> targets of the winning condition
//   - target list -> targets of every resolvable item, in order
//   - subpath map -> per key in order; null skipped, wildcard keys expanded
//
// Any subpath error aborts the call unless Options.IsolateSubpaths is set.
func (r *Resolver) ResolveFS(exports Value, fsys fs.FS) ([]string, error) {
	if r == nil {
		return nil, ErrNilResolver
	}

	switch exports.Kind() {
	case KindPath:
		return []string{exports.path}, nil
	case KindConditions, KindTargets:
		return r.resolveValue(".", exports)
	}

	out := make([]string, 0, len(exports.entries))
	for _, entry := range exports.entries {
		if entry.Value == nil {
			continue
		}

		paths, err := r.resolveSubpath(fsys, exports.entries, entry)
		if err != nil {
			if !r.opts.IsolateSubpaths {
				return nil, err
			}

			r.sink.Report(DiagnosticUnresolvedSubpath, Diagnostic{
				Err:     err,
				Subpath: entry.Key,
				Message: fmt.Sprintf("subpath %q skipped: %v", entry.Key, err),
			})
			continue
		}

		out = append(out, paths...)
	}

	return out, nil
}

// resolveSubpath resolves one non-null subpath map entry.
func (r *Resolver) resolveSubpath(fsys fs.FS, entries []Entry, entry Entry) ([]string, error) {
	if !strings.HasPrefix(entry.Key, ".") {
		return nil, &ResolutionError{
			Subpath:    entry.Key,
			Reason:     ErrUnexpectedShape,
			Restricted: fmt.Errorf("%w: condition key %q mixed with subpath keys", ErrUnexpectedShape, entry.Key),
		}
	}

	if strings.Contains(entry.Key, "*") {
		return r.expandWildcard(fsys, entries, entry.Key)
	}

	return r.resolveValue(entry.Key, *entry.Value)
}

// resolveValue runs two-stage condition resolution for subpath and reports
// values that resolve to an explicit null.
func (r *Resolver) resolveValue(subpath string, v Value) ([]string, error) {
	paths, err := resolveTwoStage(subpath, v, r.restricted, r.fallback)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		r.sink.Report(DiagnosticNullTarget, Diagnostic{
			Subpath: subpath,
			Message: fmt.Sprintf("subpath %q resolves to null under the selected conditions and exports nothing", subpath),
		})
	}

	return paths, nil
}

// Resolve classifies raw and resolves it with default options against cwd.
//
// Go maps are unordered: a map[string]any input is resolved in lexical key
// order, not in the order it was written. Pass a RawMap, or a Value from
// ParseManifestJSON/ParseManifestYAML, to keep manifest order.
func Resolve(raw any, cwd string) ([]string, error) {
	exports, err := Classify(raw)
	if err != nil {
		return nil, err
	}

	return NewResolver(Options{}, nil).Resolve(exports, cwd)
}
