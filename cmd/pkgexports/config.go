// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pkgexports

package main

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/woozymasta/pkgexports"
)

const (
	// configFileName is the project config file looked up in the working directory.
	configFileName = ".pkgexports"
	// envPrefix prefixes environment overrides, e.g. PKGEXPORTS_ENVIRONMENT.
	envPrefix = "PKGEXPORTS"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// Config is the merged CLI configuration: defaults, config file, env and flags.
type Config struct {
	Environment        string   `mapstructure:"environment" yaml:"environment"`
	Order              string   `mapstructure:"order" yaml:"order"`
	Format             string   `mapstructure:"format" yaml:"format"`
	Conditions         []string `mapstructure:"conditions" yaml:"conditions"`
	FallbackConditions []string `mapstructure:"fallback_conditions" yaml:"fallback_conditions"`
	Jobs               int      `mapstructure:"jobs" yaml:"jobs"`
	Isolate            bool     `mapstructure:"isolate" yaml:"isolate"`
	Verbose            bool     `mapstructure:"verbose" yaml:"verbose"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"conditions":          "conditions",
	"fallback-conditions": "fallback_conditions",
	"env":                 "environment",
	"order":               "order",
	"isolate":             "isolate",
	"format":              "format",
	"jobs":                "jobs",
	"verbose":             "verbose",
}

// loadConfig merges configuration sources for cmd; explicit path must exist.
func loadConfig(cmd *cobra.Command, path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("conditions", []string{"import", "default"})
	v.SetDefault("fallback_conditions", []string{})
	v.SetDefault("environment", "browser")
	v.SetDefault("order", "priority")
	v.SetDefault("format", formatText)
	v.SetDefault("jobs", runtime.NumCPU())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks enumerations and bounds.
func (c *Config) validate() error {
	switch c.Format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unsupported format %q (want text, json or yaml)", c.Format)
	}

	if _, err := pkgexports.ParseEnvironment(c.Environment); err != nil {
		return err
	}

	if _, err := pkgexports.ParseConditionOrder(c.Order); err != nil {
		return err
	}

	if c.Jobs < 1 {
		c.Jobs = 1
	}

	return nil
}

// resolverOptions converts config into resolver options.
func (c *Config) resolverOptions() pkgexports.Options {
	env, _ := pkgexports.ParseEnvironment(c.Environment)
	order, _ := pkgexports.ParseConditionOrder(c.Order)

	return pkgexports.Options{
		Conditions:         c.Conditions,
		FallbackConditions: c.FallbackConditions,
		Environment:        env,
		Order:              order,
		IsolateSubpaths:    c.Isolate,
	}
}
