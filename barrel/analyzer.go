// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

// Package barrel counts named exports against declarations in JavaScript and
// TypeScript modules to flag barrel files: modules that mostly re-export other
// modules instead of declaring their own code.
package barrel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/woozymasta/pkgexports"
)

const (
	// KindStarReexport is reported for `export * from "..."` statements.
	KindStarReexport pkgexports.DiagnosticKind = "star-reexport"
	// KindSyntaxError is reported when a file parsed with recoverable errors.
	KindSyntaxError pkgexports.DiagnosticKind = "syntax-error"
)

// Counts is the export/declaration balance of one module.
type Counts struct {
	// Exports is the number of exported bindings.
	Exports int `json:"exports" yaml:"exports"`
	// Declarations is the number of top-level function, class and variable statements.
	Declarations int `json:"declarations" yaml:"declarations"`
}

// IsBarrel reports whether module exports more than it declares.
func (c Counts) IsBarrel() bool {
	return c.Exports > c.Declarations
}

// Report is the analysis result for one file.
type Report struct {
	// File is the analyzed path as given by the caller.
	File   string `json:"file" yaml:"file"`
	Counts `yaml:",inline"`
}

// language selects a tree-sitter grammar.
type language uint8

const (
	langJavaScript language = iota
	langTypeScript
	langTSX
	langCount
)

// Analyzer parses modules and counts exports and declarations.
//
// Analyzer reuses tree-sitter parsers and is not safe for concurrent use.
type Analyzer struct {
	sink    pkgexports.Sink
	parsers [langCount]*sitter.Parser
}

// NewAnalyzer creates an analyzer; nil sink discards diagnostics.
func NewAnalyzer(sink pkgexports.Sink) *Analyzer {
	if sink == nil {
		sink = pkgexports.NopSink()
	}

	return &Analyzer{sink: sink}
}

// Close releases parser resources.
func (a *Analyzer) Close() {
	for i, p := range a.parsers {
		if p != nil {
			p.Close()
			a.parsers[i] = nil
		}
	}
}

// Analyze counts top-level exports and declarations of src; file selects the grammar.
func (a *Analyzer) Analyze(ctx context.Context, file string, src []byte) (Counts, error) {
	tree, err := a.parser(languageOf(file)).ParseCtx(ctx, nil, src)
	if err != nil {
		return Counts{}, fmt.Errorf("parse %s: %w", file, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		a.sink.Report(KindSyntaxError, pkgexports.Diagnostic{
			File:    file,
			Message: fmt.Sprintf("%q has syntax errors, counts may be incomplete", file),
		})
	}

	var c Counts
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		if node.Type() == "export_statement" {
			a.countExport(node, file, src, &c)
			continue
		}

		if isDeclaration(node) {
			c.Declarations++
		}
	}

	return c, nil
}

// AnalyzeFile reads rel under root and analyzes it.
func (a *Analyzer) AnalyzeFile(ctx context.Context, root string, rel string) (Report, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return Report{}, fmt.Errorf("read module: %w", err)
	}

	counts, err := a.Analyze(ctx, rel, data)
	if err != nil {
		return Report{}, err
	}

	return Report{File: rel, Counts: counts}, nil
}

// AnalyzeFiles analyzes files under root in order.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, root string, files []string) ([]Report, error) {
	reports := make([]Report, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		report, err := a.AnalyzeFile(ctx, root, file)
		if err != nil {
			return nil, err
		}

		reports = append(reports, report)
	}

	return reports, nil
}

// parser returns a lazily created parser for lang.
func (a *Analyzer) parser(lang language) *sitter.Parser {
	if p := a.parsers[lang]; p != nil {
		return p
	}

	p := sitter.NewParser()
	switch lang {
	case langTypeScript:
		p.SetLanguage(typescript.GetLanguage())
	case langTSX:
		p.SetLanguage(tsx.GetLanguage())
	default:
		p.SetLanguage(javascript.GetLanguage())
	}

	a.parsers[lang] = p
	return p
}

// countExport applies one export statement to counts.
func (a *Analyzer) countExport(node *sitter.Node, file string, src []byte, c *Counts) {
	source := node.ChildByFieldName("source")

	if clause := namedChildOfType(node, "export_clause"); clause != nil {
		// export { a, b } and export { a, b } from "x"
		c.Exports += countNamedOfType(clause, "export_specifier")
		return
	}

	if source != nil {
		// export * from "x" and export * as ns from "x"
		module := strings.Trim(source.Content(src), "'\"`")
		c.Exports++
		a.sink.Report(KindStarReexport, pkgexports.Diagnostic{
			File:    file,
			Pattern: module,
			Message: fmt.Sprintf(
				"%q re-exports everything from %q; this defeats tree-shaking and pulls in unused imports",
				file, module),
		})
		return
	}

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		if isDeclaration(decl) {
			c.Declarations++
		}
		return
	}

	value := node.ChildByFieldName("value")
	if value == nil {
		return
	}

	switch value.Type() {
	case "object":
		// export default { a, b }
		c.Exports += countNamedExcept(value, "comment")
	case "function", "function_expression", "generator_function", "class":
		c.Declarations++
	}
}

// isDeclaration reports top-level function, class and variable statements.
func isDeclaration(node *sitter.Node) bool {
	switch node.Type() {
	case "function_declaration",
		"generator_function_declaration",
		"function_signature",
		"class_declaration",
		"abstract_class_declaration",
		"lexical_declaration",
		"variable_declaration":
		return true
	case "ambient_declaration":
		// declare function f(): void; declare const x: number;
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if isDeclaration(node.NamedChild(i)) {
				return true
			}
		}
	}

	return false
}

// languageOf picks grammar by file extension.
func languageOf(file string) language {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".ts", ".mts", ".cts":
		return langTypeScript
	case ".tsx":
		return langTSX
	default:
		return langJavaScript
	}
}

func namedChildOfType(node *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == typ {
			return child
		}
	}

	return nil
}

func countNamedOfType(node *sitter.Node, typ string) int {
	n := 0
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if node.NamedChild(i).Type() == typ {
			n++
		}
	}

	return n
}

func countNamedExcept(node *sitter.Node, typ string) int {
	n := 0
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if node.NamedChild(i).Type() != typ {
			n++
		}
	}

	return n
}
