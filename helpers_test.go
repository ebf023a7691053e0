// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package pkgexports

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// reported is one diagnostic captured by recordingSink.
type reported struct {
	kind DiagnosticKind
	d    Diagnostic
}

// recordingSink captures diagnostics for assertions.
type recordingSink struct {
	got []reported
	mu  sync.Mutex
}

func (s *recordingSink) Report(kind DiagnosticKind, d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, reported{kind: kind, d: d})
}

func (s *recordingSink) kinds() []DiagnosticKind {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]DiagnosticKind, len(s.got))
	for i := range s.got {
		out[i] = s.got[i].kind
	}

	return out
}

func mustClassify(t testing.TB, raw any) Value {
	t.Helper()

	v, err := Classify(raw)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	return v
}

func writeFiles(t testing.TB, root string, paths ...string) {
	t.Helper()

	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("MkdirAll(%s): %v", full, err)
		}

		if err := os.WriteFile(full, []byte("export {};\n"), 0o600); err != nil {
			t.Fatalf("WriteFile(%s): %v", full, err)
		}
	}
}
