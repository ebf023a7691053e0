// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package pkgexports

import (
	"errors"
	"fmt"
)

// Sentinel errors for pkgexports operations.
var (
	// ErrNoMatchingCondition indicates a condition map with no key in the enabled condition set.
	ErrNoMatchingCondition = errors.New("no matching condition")
	// ErrUnexpectedShape indicates a subpath map where a single resolvable value was expected.
	ErrUnexpectedShape = errors.New("unexpected exports shape")
	// ErrInvalidExports indicates a raw exports value of unsupported type.
	ErrInvalidExports = errors.New("invalid exports value")
	// ErrInvalidManifest indicates malformed package manifest input.
	ErrInvalidManifest = errors.New("invalid manifest")
	// ErrNoExports indicates a manifest without "exports" field.
	ErrNoExports = errors.New("manifest has no exports")
	// ErrManifestNotFound indicates a package directory without a supported manifest file.
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrNilResolver indicates a nil Resolver receiver.
	ErrNilResolver = errors.New("resolver is nil")
)

// ResolutionError describes a subpath that failed both resolution attempts.
type ResolutionError struct {
	// Subpath is the exports key being resolved, "." for top-level values.
	Subpath string
	// Reason is the sentinel describing the final failure.
	Reason error
	// Restricted is the error of the restrictive condition attempt.
	Restricted error
	// Fallback is the error of the fallback attempt, nil when it was not run.
	Fallback error
}

// Error implements error.
func (e *ResolutionError) Error() string {
	if e.Fallback == nil {
		return fmt.Sprintf("resolve %q: %v", e.Subpath, e.Restricted)
	}

	return fmt.Sprintf("resolve %q: %v (fallback: %v)", e.Subpath, e.Restricted, e.Fallback)
}

// Unwrap returns the reason sentinel for errors.Is checks.
func (e *ResolutionError) Unwrap() error {
	return e.Reason
}
