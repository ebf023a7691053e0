// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package pkgexports

import "go.uber.org/zap"

// DiagnosticKind identifies one advisory, non-fatal finding.
type DiagnosticKind string

const (
	// DiagnosticAmbiguousWildcard is reported for subpath keys with more than one "*".
	DiagnosticAmbiguousWildcard DiagnosticKind = "ambiguous-wildcard"
	// DiagnosticStaticTarget is reported when a wildcard key maps to a target without "*".
	DiagnosticStaticTarget DiagnosticKind = "static-target"
	// DiagnosticOutsidePackage is reported for targets that are absolute or escape the package root.
	DiagnosticOutsidePackage DiagnosticKind = "outside-package"
	// DiagnosticEmptyExpansion is reported when a wildcard target matched no files.
	DiagnosticEmptyExpansion DiagnosticKind = "empty-expansion"
	// DiagnosticNullTarget is reported when the selected condition of a subpath maps to null.
	DiagnosticNullTarget DiagnosticKind = "null-target"
	// DiagnosticUnresolvedSubpath is reported for skipped subpaths when IsolateSubpaths is set.
	DiagnosticUnresolvedSubpath DiagnosticKind = "unresolved-subpath"
)

// Diagnostic is the context of one reported finding.
type Diagnostic struct {
	// Err is the underlying error, if any.
	Err error `json:"-" yaml:"-"`
	// Subpath is the exports key involved.
	Subpath string `json:"subpath,omitempty" yaml:"subpath,omitempty"`
	// Pattern is the resolved target or glob involved.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	// File is the source file involved, used by file analysis passes.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
	// Message is a human-readable description.
	Message string `json:"message" yaml:"message"`
}

// Sink receives advisory diagnostics.
type Sink interface {
	Report(kind DiagnosticKind, d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(kind DiagnosticKind, d Diagnostic)

// Report implements Sink.
func (f SinkFunc) Report(kind DiagnosticKind, d Diagnostic) {
	f(kind, d)
}

// nopSink discards diagnostics.
type nopSink struct{}

// Report implements Sink.
func (nopSink) Report(DiagnosticKind, Diagnostic) {}

// NopSink returns a Sink that discards everything.
func NopSink() Sink {
	return nopSink{}
}

// ZapSink writes diagnostics as structured zap warnings.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a sink over logger; nil logger discards output.
func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ZapSink{logger: logger}
}

// Report implements Sink.
func (s *ZapSink) Report(kind DiagnosticKind, d Diagnostic) {
	fields := make([]zap.Field, 0, 5)
	fields = append(fields, zap.String("kind", string(kind)))
	if d.Subpath != "" {
		fields = append(fields, zap.String("subpath", d.Subpath))
	}
	if d.Pattern != "" {
		fields = append(fields, zap.String("pattern", d.Pattern))
	}
	if d.File != "" {
		fields = append(fields, zap.String("file", d.File))
	}
	if d.Err != nil {
		fields = append(fields, zap.Error(d.Err))
	}

	msg := d.Message
	if msg == "" {
		msg = string(kind)
	}

	s.logger.Warn(msg, fields...)
}
