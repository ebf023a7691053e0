// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package pkgexports

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

const sampleManifestJSON = `{
  "name": "demo",
  "version": "1.2.3",
  "scripts": {"test": "node --test"},
  "exports": {
    "./z": "./z.js",
    ".": {
      "types": "./index.d.ts",
      "import": "./index.mjs",
      "default": "./index.cjs"
    },
    "./feature/*": "./src/feature/*.js",
    "./internal/*": null
  },
  "files": ["src", "index.mjs"]
}`

const sampleManifestYAML = `
name: demo
version: 1.2.3
exports:
  ./z: ./z.js
  .:
    types: ./index.d.ts
    import: ./index.mjs
    default: ./index.cjs
  ./feature/*: ./src/feature/*.js
  ./internal/*: null
`

func exportKeys(v Value) []string {
	entries := v.Entries()
	keys := make([]string, len(entries))
	for i := range entries {
		keys[i] = entries[i].Key
	}

	return keys
}

func TestParseManifestJSONKeepsOrder(t *testing.T) {
	t.Parallel()

	m, err := ParseManifestJSON([]byte(sampleManifestJSON))
	if err != nil {
		t.Fatalf("ParseManifestJSON: %v", err)
	}

	if m.Name != "demo" || m.Version != "1.2.3" {
		t.Fatalf("unexpected manifest header: %+v", m)
	}

	if m.Exports == nil {
		t.Fatalf("exports must be set")
	}

	want := []string{"./z", ".", "./feature/*", "./internal/*"}
	if diff := cmp.Diff(want, exportKeys(*m.Exports)); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}

	dot := m.Exports.Entries()[1].Value
	if dot == nil || dot.Kind() != KindConditions {
		t.Fatalf("\".\" must be a condition map: %+v", dot)
	}

	if diff := cmp.Diff([]string{"types", "import", "default"}, exportKeys(*dot)); diff != "" {
		t.Fatalf("condition order mismatch (-want +got):\n%s", diff)
	}

	if m.Exports.Entries()[3].Value != nil {
		t.Fatalf("./internal/* must be null")
	}
}

func TestParseManifestYAMLKeepsOrder(t *testing.T) {
	t.Parallel()

	m, err := ParseManifestYAML([]byte(sampleManifestYAML))
	if err != nil {
		t.Fatalf("ParseManifestYAML: %v", err)
	}

	if m.Name != "demo" || m.Version != "1.2.3" {
		t.Fatalf("unexpected manifest header: %+v", m)
	}

	want := []string{"./z", ".", "./feature/*", "./internal/*"}
	if diff := cmp.Diff(want, exportKeys(*m.Exports)); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}

	if m.Exports.Entries()[3].Value != nil {
		t.Fatalf("./internal/* must be null")
	}
}

func TestParseManifestJSONStringAndMissingExports(t *testing.T) {
	t.Parallel()

	m, err := ParseManifestJSON([]byte(`{"name":"a","exports":"./index.js"}`))
	if err != nil {
		t.Fatalf("ParseManifestJSON: %v", err)
	}

	if m.Exports == nil || m.Exports.Kind() != KindPath || m.Exports.Path() != "./index.js" {
		t.Fatalf("unexpected exports: %+v", m.Exports)
	}

	m, err = ParseManifestJSON([]byte(`{"name":"a","main":"./index.js"}`))
	if err != nil {
		t.Fatalf("ParseManifestJSON: %v", err)
	}

	if m.Exports != nil {
		t.Fatalf("exports must be nil when absent")
	}
}

func TestParseManifestJSONDuplicateKeys(t *testing.T) {
	t.Parallel()

	v, err := ParseExportsJSON([]byte(`{"./a": "./one.js", "./b": "./b.js", "./a": "./two.js"}`))
	if err != nil {
		t.Fatalf("ParseExportsJSON: %v", err)
	}

	entries := v.Entries()
	if len(entries) != 2 || entries[0].Key != "./a" || entries[0].Value.Path() != "./two.js" {
		t.Fatalf("duplicate key must keep first position and last value: %+v", entries)
	}
}

func TestParseManifestErrors(t *testing.T) {
	t.Parallel()

	if _, err := ParseManifestJSON([]byte(`[1, 2]`)); !errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("array manifest err=%v, want ErrInvalidManifest", err)
	}

	if _, err := ParseManifestJSON([]byte(`{"exports": ["./a.js", 1]}`)); !errors.Is(err, ErrInvalidExports) {
		t.Fatalf("number list item err=%v, want ErrInvalidExports", err)
	}

	if _, err := ParseManifestJSON([]byte(`{"exports": {"./a": 1}}`)); !errors.Is(err, ErrInvalidExports) {
		t.Fatalf("number target err=%v, want ErrInvalidExports", err)
	}

	if _, err := ParseManifestYAML([]byte("- a\n- b\n")); !errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("sequence manifest err=%v, want ErrInvalidManifest", err)
	}

	if _, err := ParseManifestYAML([]byte("exports:\n  ./a: true\n")); !errors.Is(err, ErrInvalidExports) {
		t.Fatalf("bool target err=%v, want ErrInvalidExports", err)
	}
}

func TestParseManifestTargetLists(t *testing.T) {
	t.Parallel()

	const jsonDoc = `{"exports": {
  ".": "./index.js",
  "./polyfill": ["./poly.js", "./fallback.js"],
  "./env": {"import": ["./e.mjs", null]}
}}`

	const yamlDoc = `
exports:
  .: ./index.js
  ./polyfill:
    - ./poly.js
    - ./fallback.js
  ./env:
    import: [./e.mjs, null]
`

	want := []string{"./index.js", "./poly.js", "./fallback.js", "./e.mjs"}

	for name, parse := range map[string]func([]byte) (*Manifest, error){
		"json": ParseManifestJSON,
		"yaml": ParseManifestYAML,
	} {
		doc := jsonDoc
		if name == "yaml" {
			doc = yamlDoc
		}

		m, err := parse([]byte(doc))
		if err != nil {
			t.Fatalf("%s: parse: %v", name, err)
		}

		got, err := NewResolver(Options{}, nil).ResolveFS(*m.Exports, fstest.MapFS{})
		if err != nil {
			t.Fatalf("%s: ResolveFS: %v", name, err)
		}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s: mismatch (-want +got):\n%s", name, diff)
		}
	}

	v, err := ParseExportsJSON([]byte(`[]`))
	if err != nil || v.Kind() != KindTargets || len(v.Targets()) != 0 {
		t.Fatalf("empty list: v=%+v err=%v", v, err)
	}
}

func TestParseExportsYAMLAlias(t *testing.T) {
	t.Parallel()

	v, err := ParseExportsYAML([]byte(`
./a: &shared
  import: ./a.mjs
  default: ./a.js
./b: *shared
`))
	if err != nil {
		t.Fatalf("ParseExportsYAML: %v", err)
	}

	b := v.Entries()[1].Value
	if b == nil || b.Kind() != KindConditions || b.Len() != 2 {
		t.Fatalf("alias must resolve to the anchored mapping: %+v", b)
	}
}

func TestFindAndResolvePackage(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "src/feature/a.js", "src/feature/b.js", "internal/x.js")
	if err := os.WriteFile(filepath.Join(root, "package.json"), []byte(sampleManifestJSON), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, files, err := NewResolver(Options{}, nil).ResolvePackage(root)
	if err != nil {
		t.Fatalf("ResolvePackage: %v", err)
	}

	if m.Path != filepath.Join(root, "package.json") {
		t.Fatalf("m.Path=%q", m.Path)
	}

	want := []string{"./z.js", "./index.mjs", "./src/feature/a.js", "./src/feature/b.js"}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Fatalf("ResolvePackage mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvePackageYAMLAndErrors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if _, err := FindManifest(root); !errors.Is(err, ErrManifestNotFound) {
		t.Fatalf("err=%v, want ErrManifestNotFound", err)
	}

	if err := os.WriteFile(filepath.Join(root, "package.yaml"), []byte("name: bare\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, _, err := NewResolver(Options{}, nil).ResolvePackage(root)
	if !errors.Is(err, ErrNoExports) {
		t.Fatalf("err=%v, want ErrNoExports", err)
	}

	if m == nil || m.Name != "bare" {
		t.Fatalf("manifest must be returned with ErrNoExports: %+v", m)
	}
}
