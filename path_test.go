// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package pkgexports

import "testing"

func TestSplitTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		rel    string
		prefix string
		ok     bool
	}{
		{raw: "./dist/*.js", rel: "dist/*.js", prefix: "./", ok: true},
		{raw: "dist/a.js", rel: "dist/a.js", ok: true},
		{raw: ".//dist/a.js", rel: "dist/a.js", prefix: "./", ok: true},
		{raw: "./dist/../lib/a.js", rel: "lib/a.js", prefix: "./", ok: true},
		{raw: `.\dist\a.js`, rel: "dist/a.js", prefix: "./", ok: true},
		{raw: "./../outside.js"},
		{raw: "../outside.js"},
		{raw: "/abs/a.js"},
		{raw: "C:/abs/a.js"},
		{raw: "https://cdn.example.com/a.js"},
		{raw: "./"},
	}

	for _, tt := range tests {
		rel, prefix, ok := splitTarget(tt.raw)
		if rel != tt.rel || prefix != tt.prefix || ok != tt.ok {
			t.Fatalf("splitTarget(%q)=(%q,%q,%v), want (%q,%q,%v)",
				tt.raw, rel, prefix, ok, tt.rel, tt.prefix, tt.ok)
		}
	}
}
