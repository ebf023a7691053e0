// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package pkgexports

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapSinkWritesStructuredWarning(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewZapSink(zap.New(core))

	sink.Report(DiagnosticEmptyExpansion, Diagnostic{
		Subpath: "./feature/*",
		Pattern: "./src/feature/*.js",
		Message: "no files",
		Err:     errors.New("boom"),
	})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("len(entries)=%d, want 1", len(entries))
	}

	entry := entries[0]
	if entry.Level != zapcore.WarnLevel || entry.Message != "no files" {
		t.Fatalf("unexpected entry: %+v", entry.Entry)
	}

	fields := entry.ContextMap()
	if fields["kind"] != string(DiagnosticEmptyExpansion) ||
		fields["subpath"] != "./feature/*" ||
		fields["pattern"] != "./src/feature/*.js" ||
		fields["error"] != "boom" {
		t.Fatalf("unexpected fields: %+v", fields)
	}

	if _, ok := fields["file"]; ok {
		t.Fatalf("empty file must not be logged: %+v", fields)
	}
}

func TestZapSinkDefaultsMessageToKind(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	NewZapSink(zap.New(core)).Report(DiagnosticStaticTarget, Diagnostic{})

	if got := logs.All()[0].Message; got != string(DiagnosticStaticTarget) {
		t.Fatalf("message=%q, want kind", got)
	}

	// nil logger must not panic
	NewZapSink(nil).Report(DiagnosticStaticTarget, Diagnostic{})
}

func TestResolverRoutesDiagnosticsThroughSinkFunc(t *testing.T) {
	t.Parallel()

	var kinds []DiagnosticKind
	sink := SinkFunc(func(kind DiagnosticKind, _ Diagnostic) {
		kinds = append(kinds, kind)
	})

	_, err := NewResolver(Options{}, sink).ResolveFS(mustClassify(t, RawMap{
		{Key: "./a/*/*", Value: "./a/*/*.js"},
	}), nil)
	if err != nil {
		t.Fatalf("ResolveFS: %v", err)
	}

	if len(kinds) != 1 || kinds[0] != DiagnosticAmbiguousWildcard {
		t.Fatalf("kinds=%v, want [%s]", kinds, DiagnosticAmbiguousWildcard)
	}
}
