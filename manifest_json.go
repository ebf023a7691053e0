// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package pkgexports

import (
	"bytes"
	"fmt"

	"github.com/francoispqt/gojay"
)

// ParseManifestJSON parses a package.json document.
//
// Only "name", "version" and "exports" are decoded. Object key order inside
// "exports" is kept as written.
func ParseManifestJSON(data []byte) (*Manifest, error) {
	d := &manifestJSONDecoder{m: &Manifest{}}
	if err := gojay.UnmarshalJSONObject(data, d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	if d.err != nil {
		return nil, d.err
	}

	return d.m, nil
}

// ParseExportsJSON parses a standalone JSON exports value.
func ParseExportsJSON(data []byte) (Value, error) {
	raw, err := decodeRawJSON(data)
	if err != nil {
		return Value{}, err
	}

	return Classify(raw)
}

// manifestJSONDecoder decodes top-level manifest fields.
type manifestJSONDecoder struct {
	m *Manifest
	// err keeps exports classification errors apart from syntax errors.
	err error
}

// UnmarshalJSONObject implements gojay.UnmarshalerJSONObject.
func (d *manifestJSONDecoder) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "name":
		return dec.String(&d.m.Name)
	case "version":
		return dec.String(&d.m.Version)
	case "exports":
		var embedded gojay.EmbeddedJSON
		if err := dec.EmbeddedJSON(&embedded); err != nil {
			return err
		}

		raw, err := decodeRawJSON(embedded)
		if err == nil {
			err = d.m.setExports(raw)
		}
		if err != nil {
			d.err = err
		}
	}

	return nil
}

// NKeys implements gojay.UnmarshalerJSONObject; zero decodes every key.
func (d *manifestJSONDecoder) NKeys() int {
	return 0
}

// rawJSONObject collects object members in document order.
type rawJSONObject struct {
	entries RawMap
	err     error
}

// UnmarshalJSONObject implements gojay.UnmarshalerJSONObject.
func (o *rawJSONObject) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	var embedded gojay.EmbeddedJSON
	if err := dec.EmbeddedJSON(&embedded); err != nil {
		return err
	}

	value, err := decodeRawJSON(embedded)
	if err != nil {
		if o.err == nil {
			o.err = fmt.Errorf("key %q: %w", key, err)
		}
		return nil
	}

	// Duplicate keys keep the first position and the last value.
	for i := range o.entries {
		if o.entries[i].Key == key {
			o.entries[i].Value = value
			return nil
		}
	}

	o.entries = append(o.entries, RawEntry{Key: key, Value: value})
	return nil
}

// NKeys implements gojay.UnmarshalerJSONObject.
func (o *rawJSONObject) NKeys() int {
	return 0
}

// rawJSONArray collects array items in document order.
type rawJSONArray struct {
	items []any
	err   error
}

// UnmarshalJSONArray implements gojay.UnmarshalerJSONArray.
func (a *rawJSONArray) UnmarshalJSONArray(dec *gojay.Decoder) error {
	var embedded gojay.EmbeddedJSON
	if err := dec.EmbeddedJSON(&embedded); err != nil {
		return err
	}

	value, err := decodeRawJSON(embedded)
	if err != nil {
		if a.err == nil {
			a.err = fmt.Errorf("index %d: %w", len(a.items), err)
		}
		return nil
	}

	a.items = append(a.items, value)
	return nil
}

// decodeRawJSON decodes one JSON exports value into string, RawMap, []any or nil.
func decodeRawJSON(data []byte) (any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidExports)
	}

	switch data[0] {
	case 'n':
		if !bytes.Equal(data, []byte("null")) {
			return nil, fmt.Errorf("%w: malformed literal %q", ErrInvalidManifest, data)
		}

		return nil, nil
	case '"':
		var s string
		if err := gojay.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}

		return s, nil
	case '{':
		obj := &rawJSONObject{}
		if err := gojay.UnmarshalJSONObject(data, obj); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}

		if obj.err != nil {
			return nil, obj.err
		}

		if obj.entries == nil {
			obj.entries = RawMap{}
		}

		return obj.entries, nil
	case '[':
		arr := &rawJSONArray{}
		if err := gojay.UnmarshalJSONArray(data, arr); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}

		if arr.err != nil {
			return nil, arr.err
		}

		if arr.items == nil {
			arr.items = []any{}
		}

		return arr.items, nil
	default:
		return nil, fmt.Errorf("%w: unsupported literal %q", ErrInvalidExports, data)
	}
}
