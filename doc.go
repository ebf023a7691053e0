// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

/*
Package pkgexports resolves the "exports" map of a JavaScript package manifest into
the ordered list of files the package makes importable.

The exports value is one of three shapes, recursively:
  - a direct path (`"./index.js"`)
  - a condition map (`{"import": "./a.mjs", "default": "./b.js"}`)
  - a subpath map (`{"./feature/*": "./src/feature/*.js", "./internal/*": null}`)

Basic flow:
  - load a manifest (`FindManifest` / `LoadManifest` / `ParseManifestJSON`)
    or classify a raw value (`Classify`)
  - build a resolver (`NewResolver`) with condition options and a diagnostics sink
  - resolve against the package root (`Resolve` / `ResolveFS` / `ResolvePackage`)

Condition maps are resolved in two stages: a restrictive ESM-oriented condition set
first (`import`, `default` and the environment condition), then an unrestricted
fallback. Wildcard subpaths are expanded against the filesystem and only existing
files are returned.

Resolution is fail-fast: one subpath that cannot be resolved aborts the whole call.
Set `Options.IsolateSubpaths` to skip failing subpaths and report them to the sink
instead.
*/
package pkgexports
