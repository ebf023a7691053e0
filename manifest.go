// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package pkgexports

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// manifestFileNames are probed in order by FindManifest.
var manifestFileNames = []string{"package.json", "package.yaml", "package.yml"}

// Manifest is the subset of a package manifest used for exports resolution.
type Manifest struct {
	// Exports is the classified "exports" value, nil when the field is absent.
	Exports *Value `json:"-" yaml:"-"`
	// Name is the package name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Version is the package version.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	// Path is the manifest file path when loaded from disk.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// setExports classifies raw and stores it as manifest exports.
func (m *Manifest) setExports(raw any) error {
	v, err := Classify(raw)
	if err != nil {
		return err
	}

	m.Exports = &v
	return nil
}

// LoadManifest reads and parses a manifest file, choosing the format by extension.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m *Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		m, err = ParseManifestYAML(data)
	default:
		m, err = ParseManifestJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	m.Path = path
	return m, nil
}

// FindManifest returns the first supported manifest file in dir.
func FindManifest(dir string) (string, error) {
	for _, name := range manifestFileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return "", fmt.Errorf("stat manifest: %w", err)
		}

		if info.Mode().IsRegular() {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w in %s", ErrManifestNotFound, dir)
}

// LoadPackage finds and loads the manifest of package directory dir.
func LoadPackage(dir string) (*Manifest, error) {
	path, err := FindManifest(dir)
	if err != nil {
		return nil, err
	}

	return LoadManifest(path)
}

// ResolvePackage loads the manifest in dir and resolves its exports with dir as root.
func (r *Resolver) ResolvePackage(dir string) (*Manifest, []string, error) {
	m, err := LoadPackage(dir)
	if err != nil {
		return nil, nil, err
	}

	if m.Exports == nil {
		return m, nil, fmt.Errorf("%w: %s", ErrNoExports, m.Path)
	}

	files, err := r.Resolve(*m.Exports, dir)
	if err != nil {
		return m, nil, err
	}

	return m, files, nil
}
