// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/woozymasta/pkgexports"
)

// app carries state shared by subcommands after PersistentPreRunE.
type app struct {
	cfg        *Config
	logger     *zap.Logger
	newLogger  func(verbose bool) (*zap.Logger, error)
	configPath string
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	a := &app{newLogger: newLogger}

	root := &cobra.Command{
		Use:           "pkgexports",
		Short:         "Resolve package.json exports into the files a bundler would load",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, a.configPath)
			if err != nil {
				return err
			}

			logger, err := a.newLogger(cfg.Verbose)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			a.cfg, a.logger = cfg, logger
			logger.Debug("config loaded",
				zap.Strings("conditions", cfg.Conditions),
				zap.Strings("fallback_conditions", cfg.FallbackConditions),
				zap.String("environment", cfg.Environment),
				zap.String("order", cfg.Order),
				zap.Int("jobs", cfg.Jobs))

			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./.pkgexports.yaml)")
	flags.StringSlice("conditions", []string{"import", "default"}, "restrictive condition names in priority order")
	flags.StringSlice("fallback-conditions", nil, "fallback condition names; empty accepts any condition")
	flags.String("env", "browser", "target environment condition: browser or node")
	flags.String("order", "priority", "condition order: priority or manifest")
	flags.Bool("isolate", false, "skip failing subpaths with a warning instead of aborting")
	flags.StringP("format", "f", formatText, "output format: text, json or yaml")
	flags.IntP("jobs", "j", 0, "packages processed concurrently (default number of CPUs)")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newFilesCmd(),
		a.newBarrelsCmd(),
	)

	return root
}

func (a *app) newFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "files [dir...]",
		Short: "Print files reachable through the exports of each package",
		RunE: func(cmd *cobra.Command, args []string) error {
			results := a.run(cmd, args, resolveFunc)
			p := printer{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr(), format: a.cfg.Format}
			if err := p.printFiles(results); err != nil {
				return err
			}

			return failedError(results)
		},
	}
}

func (a *app) newBarrelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "barrels [dir...]",
		Short: "Count exports and declarations of resolved modules and flag barrel files",
		RunE: func(cmd *cobra.Command, args []string) error {
			results := a.run(cmd, args, barrelFunc)
			p := printer{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr(), format: a.cfg.Format}
			if err := p.printBarrels(results); err != nil {
				return err
			}

			return failedError(results)
		},
	}
}

// run processes package directories (default ".") with the configured resolver.
func (a *app) run(
	cmd *cobra.Command,
	dirs []string,
	build func(pkgexports.Options, pkgexports.Sink, *zap.Logger) packageFunc,
) []packageResult {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	var sink pkgexports.Sink = newConsoleSink(cmd.ErrOrStderr())
	if a.cfg.Verbose {
		sink = teeSink{sink, pkgexports.NewZapSink(a.logger)}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return runPackages(ctx, dirs, a.cfg.Jobs, build(a.cfg.resolverOptions(), sink, a.logger))
}

// failedError summarizes failed packages, nil when all succeeded.
func failedError(results []packageResult) error {
	failed := 0
	for _, res := range results {
		if res.failed() {
			failed++
		}
	}

	if failed == 0 {
		return nil
	}

	return fmt.Errorf("%d of %d packages failed", failed, len(results))
}

// newLogger builds the production zap logger; verbose lowers the level to debug.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	return cfg.Build()
}
