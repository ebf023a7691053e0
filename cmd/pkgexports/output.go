// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/francoispqt/gojay"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/pkgexports"
	"github.com/woozymasta/pkgexports/barrel"
)

// styles holds lipgloss styles bound to one output writer.
type styles struct {
	warning lipgloss.Style
	err     lipgloss.Style
	header  lipgloss.Style
	barrel  lipgloss.Style
	muted   lipgloss.Style
}

// newStyles detects the color profile of w; non-terminals get plain text.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		err:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		header:  r.NewStyle().Bold(true),
		barrel:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		muted:   r.NewStyle().Faint(true),
	}
}

// consoleSink prints diagnostics as human readable warnings.
type consoleSink struct {
	w     io.Writer
	style lipgloss.Style
	mu    sync.Mutex
}

func newConsoleSink(w io.Writer) *consoleSink {
	return &consoleSink{w: w, style: newStyles(w).warning}
}

// Report implements pkgexports.Sink.
func (s *consoleSink) Report(kind pkgexports.DiagnosticKind, d pkgexports.Diagnostic) {
	msg := d.Message
	if msg == "" {
		msg = string(kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.w, "%s %s\n", s.style.Render("[WARNING]"), msg)
}

// teeSink fans diagnostics out to several sinks.
type teeSink []pkgexports.Sink

// Report implements pkgexports.Sink.
func (t teeSink) Report(kind pkgexports.DiagnosticKind, d pkgexports.Diagnostic) {
	for _, s := range t {
		s.Report(kind, d)
	}
}

// printer renders package results in the configured format.
type printer struct {
	out    io.Writer
	errOut io.Writer
	format string
}

// printFiles writes resolved file lists.
func (p printer) printFiles(results []packageResult) error {
	switch p.format {
	case formatJSON:
		return p.printJSON(jsonResults{results: results})
	case formatYAML:
		return p.printYAML(results, false)
	}

	st := newStyles(p.out)
	multi := len(results) > 1
	for i, res := range results {
		if res.failed() {
			p.printError(res)
			continue
		}

		if multi {
			if i > 0 {
				_, _ = fmt.Fprintln(p.out)
			}
			_, _ = fmt.Fprintln(p.out, st.header.Render(packageTitle(res)))
		}

		for _, file := range res.Files {
			_, _ = fmt.Fprintln(p.out, file)
		}
	}

	return nil
}

// printBarrels writes per-module export and declaration counts.
func (p printer) printBarrels(results []packageResult) error {
	switch p.format {
	case formatJSON:
		return p.printJSON(jsonResults{results: results, barrels: true})
	case formatYAML:
		return p.printYAML(results, true)
	}

	st := newStyles(p.out)
	for i, res := range results {
		if res.failed() {
			p.printError(res)
			continue
		}

		if i > 0 {
			_, _ = fmt.Fprintln(p.out)
		}
		_, _ = fmt.Fprintln(p.out, st.header.Render(packageTitle(res)))

		for _, rep := range res.Reports {
			line := fmt.Sprintf("%s %s", rep.File,
				st.muted.Render(fmt.Sprintf("exports=%d declarations=%d", rep.Exports, rep.Declarations)))
			if rep.IsBarrel() {
				line += " " + st.barrel.Render("BARREL")
			}

			_, _ = fmt.Fprintln(p.out, line)
		}
	}

	return nil
}

func (p printer) printError(res packageResult) {
	st := newStyles(p.errOut)
	_, _ = fmt.Fprintf(p.errOut, "%s %s: %v\n", st.err.Render("[ERROR]"), res.Dir, res.Err)
}

// packageTitle is "name@version (dir)" or just dir for unnamed packages.
func packageTitle(res packageResult) string {
	switch {
	case res.Name == "":
		return res.Dir
	case res.Version == "":
		return fmt.Sprintf("%s (%s)", res.Name, res.Dir)
	default:
		return fmt.Sprintf("%s@%s (%s)", res.Name, res.Version, res.Dir)
	}
}

func (p printer) printJSON(v jsonResults) error {
	if err := gojay.NewEncoder(p.out).EncodeArray(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	_, err := fmt.Fprintln(p.out)
	return err
}

// yamlResult is the YAML document shape of one package.
type yamlResult struct {
	Dir     string          `yaml:"dir"`
	Name    string          `yaml:"name,omitempty"`
	Version string          `yaml:"version,omitempty"`
	Error   string          `yaml:"error,omitempty"`
	Files   []string        `yaml:"files,omitempty"`
	Modules []barrel.Report `yaml:"modules,omitempty"`
}

func (p printer) printYAML(results []packageResult, barrels bool) error {
	docs := make([]yamlResult, 0, len(results))
	for _, res := range results {
		doc := yamlResult{Dir: res.Dir, Name: res.Name, Version: res.Version}
		if res.failed() {
			doc.Error = res.Err.Error()
		} else if barrels {
			doc.Modules = res.Reports
		} else {
			doc.Files = res.Files
		}

		docs = append(docs, doc)
	}

	enc := yaml.NewEncoder(p.out)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return enc.Close()
}

// jsonResults encodes results as a JSON array.
type jsonResults struct {
	results []packageResult
	barrels bool
}

// MarshalJSONArray implements gojay.MarshalerJSONArray.
func (j jsonResults) MarshalJSONArray(enc *gojay.Encoder) {
	for _, res := range j.results {
		enc.Object(jsonResult{res: res, barrels: j.barrels})
	}
}

// IsNil implements gojay.MarshalerJSONArray.
func (j jsonResults) IsNil() bool {
	return j.results == nil
}

type jsonResult struct {
	res     packageResult
	barrels bool
}

// MarshalJSONObject implements gojay.MarshalerJSONObject.
func (j jsonResult) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("dir", j.res.Dir)
	enc.StringKeyOmitEmpty("name", j.res.Name)
	enc.StringKeyOmitEmpty("version", j.res.Version)

	if j.res.failed() {
		enc.StringKey("error", j.res.Err.Error())
		return
	}

	if j.barrels {
		enc.ArrayKey("modules", jsonReports(j.res.Reports))
		return
	}

	enc.ArrayKey("files", jsonStrings(j.res.Files))
}

// IsNil implements gojay.MarshalerJSONObject.
func (j jsonResult) IsNil() bool {
	return false
}

type jsonStrings []string

func (s jsonStrings) MarshalJSONArray(enc *gojay.Encoder) {
	for _, v := range s {
		enc.String(v)
	}
}

// IsNil is false so empty lists encode as [].
func (s jsonStrings) IsNil() bool {
	return false
}

type jsonReports []barrel.Report

func (r jsonReports) MarshalJSONArray(enc *gojay.Encoder) {
	for _, rep := range r {
		enc.Object(jsonReport(rep))
	}
}

func (r jsonReports) IsNil() bool {
	return false
}

type jsonReport barrel.Report

func (r jsonReport) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("file", r.File)
	enc.IntKey("exports", r.Exports)
	enc.IntKey("declarations", r.Declarations)
	enc.BoolKey("barrel", barrel.Report(r).IsBarrel())
}

func (r jsonReport) IsNil() bool {
	return false
}
