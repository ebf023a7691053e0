// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package main

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/woozymasta/pkgexports"
	"github.com/woozymasta/pkgexports/barrel"
)

// packageResult is the outcome of processing one package directory.
type packageResult struct {
	Err     error
	Dir     string
	Name    string
	Version string
	Files   []string
	Reports []barrel.Report
}

// failed reports whether the package could not be processed.
func (p packageResult) failed() bool {
	return p.Err != nil
}

// packageFunc processes one package directory.
type packageFunc func(ctx context.Context, dir string) packageResult

// runPackages applies fn to dirs with at most jobs concurrent calls.
// Results keep the order of dirs; a failed package does not stop the others.
func runPackages(ctx context.Context, dirs []string, jobs int, fn packageFunc) []packageResult {
	results := make([]packageResult, len(dirs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))

	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = packageResult{Dir: dir, Err: err}
				return nil
			}

			results[i] = fn(gctx, dir)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// resolveFunc returns a packageFunc that resolves exports of each package.
func resolveFunc(opts pkgexports.Options, sink pkgexports.Sink, logger *zap.Logger) packageFunc {
	r := pkgexports.NewResolver(opts, sink)

	return func(_ context.Context, dir string) packageResult {
		res := packageResult{Dir: dir}

		m, files, err := r.ResolvePackage(dir)
		if m != nil {
			res.Name, res.Version = m.Name, m.Version
		}
		if err != nil {
			logger.Debug("resolve failed", zap.String("dir", dir), zap.Error(err))
			res.Err = err
			return res
		}

		logger.Debug("resolved package",
			zap.String("dir", dir),
			zap.String("name", res.Name),
			zap.Int("files", len(files)))

		res.Files = files
		return res
	}
}

// barrelFunc returns a packageFunc that resolves a package and analyzes
// every resolved script module.
func barrelFunc(opts pkgexports.Options, sink pkgexports.Sink, logger *zap.Logger) packageFunc {
	resolve := resolveFunc(opts, sink, logger)

	return func(ctx context.Context, dir string) packageResult {
		res := resolve(ctx, dir)
		if res.failed() {
			return res
		}

		modules := make([]string, 0, len(res.Files))
		for _, file := range res.Files {
			if isScriptModule(file) {
				modules = append(modules, file)
			}
		}

		a := barrel.NewAnalyzer(sink)
		defer a.Close()

		reports, err := a.AnalyzeFiles(ctx, dir, modules)
		if err != nil {
			logger.Debug("analyze failed", zap.String("dir", dir), zap.Error(err))
			res.Err = err
			return res
		}

		res.Reports = reports
		return res
	}
}

// isScriptModule reports files the barrel analyzer can parse.
func isScriptModule(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".js", ".mjs", ".cjs", ".jsx", ".ts", ".mts", ".cts", ".tsx":
		return true
	default:
		return false
	}
}
