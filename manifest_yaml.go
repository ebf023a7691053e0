// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package pkgexports

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseManifestYAML parses a package.yaml document.
//
// Mapping key order inside "exports" is kept as written.
func ParseManifestYAML(data []byte) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidManifest)
		}

		root = root.Content[0]
	}

	root = resolveAlias(root)
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level is not a mapping (line %d)", ErrInvalidManifest, root.Line)
	}

	m := &Manifest{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], resolveAlias(root.Content[i+1])

		switch key.Value {
		case "name":
			if err := value.Decode(&m.Name); err != nil {
				return nil, fmt.Errorf("%w: name: %v", ErrInvalidManifest, err)
			}
		case "version":
			if err := value.Decode(&m.Version); err != nil {
				return nil, fmt.Errorf("%w: version: %v", ErrInvalidManifest, err)
			}
		case "exports":
			raw, err := decodeRawYAML(value)
			if err != nil {
				return nil, err
			}

			if err := m.setExports(raw); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// ParseExportsYAML parses a standalone YAML exports value.
func ParseExportsYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidExports, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Classify(nil)
	}

	raw, err := decodeRawYAML(doc.Content[0])
	if err != nil {
		return Value{}, err
	}

	return Classify(raw)
}

// decodeRawYAML converts one YAML node into string, RawMap, []any or nil.
func decodeRawYAML(n *yaml.Node) (any, error) {
	n = resolveAlias(n)

	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!str":
			return n.Value, nil
		default:
			return nil, fmt.Errorf("%w: unsupported scalar %s at line %d", ErrInvalidExports, n.ShortTag(), n.Line)
		}
	case yaml.MappingNode:
		out := make(RawMap, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			value, err := decodeRawYAML(n.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", n.Content[i].Value, err)
			}

			out = append(out, RawEntry{Key: n.Content[i].Value, Value: value})
		}

		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for i, item := range n.Content {
			value, err := decodeRawYAML(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}

			out = append(out, value)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: unsupported node at line %d", ErrInvalidExports, n.Line)
	}
}

// resolveAlias follows YAML alias nodes to their anchors.
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}

	return n
}
