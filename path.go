// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package pkgexports

import (
	"path"
	"strings"
)

// relativePrefix is the conventional prefix of package-relative targets.
const relativePrefix = "./"

// splitTarget converts an exports target into a root-relative slash path and the
// prefix that must be re-applied to matches. ok is false when target is absolute
// or escapes the package root.
func splitTarget(raw string) (rel string, prefix string, ok bool) {
	if strings.Contains(raw, `\`) {
		raw = strings.ReplaceAll(raw, `\`, `/`)
	}

	if isAbsoluteTarget(raw) {
		return "", "", false
	}

	if strings.HasPrefix(raw, relativePrefix) {
		prefix = relativePrefix
		raw = strings.TrimLeft(raw[len(relativePrefix):], "/")
	}

	if raw == "" {
		return "", "", false
	}

	// Fast path for already-normalized relative targets.
	if !isSimpleNormalizedPath(raw) {
		raw = path.Clean(raw)
		if raw == "." || raw == ".." || strings.HasPrefix(raw, "../") {
			return "", "", false
		}
	}

	return raw, prefix, true
}

// isAbsoluteTarget reports slash-rooted, drive-letter and URL-like targets.
func isAbsoluteTarget(raw string) bool {
	if strings.HasPrefix(raw, "/") {
		return true
	}

	if len(raw) >= 2 && raw[1] == ':' {
		c := raw[0] | 0x20
		return c >= 'a' && c <= 'z'
	}

	return strings.Contains(raw, "://")
}

// isSimpleNormalizedPath reports whether path is already normalized enough to skip path.Clean.
func isSimpleNormalizedPath(path string) bool {
	if path == "" ||
		path == "." ||
		path == ".." ||
		strings.HasPrefix(path, "/") ||
		strings.HasSuffix(path, "/") ||
		strings.HasPrefix(path, "./") ||
		strings.HasPrefix(path, "../") ||
		strings.Contains(path, "//") ||
		strings.Contains(path, "/./") ||
		strings.Contains(path, "/../") ||
		strings.HasSuffix(path, "/..") {
		return false
	}

	return true
}
