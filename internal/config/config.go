// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package config loads greetgen settings.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// GREETGEN_* environment variables, then command-line flags that were set
// explicitly.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/greetgen/greet"
	"github.com/albertocavalcante/greetgen/internal/scan"
)

const (
	// EnvPrefix is the name prefix for environment variables,
	// for example GREETGEN_OUTPUT=greet.go.
	EnvPrefix = "GREETGEN_"

	// ConfigName is the file looked up in the package directory when no
	// explicit path is given.
	ConfigName = "greetgen.yaml"
)

// Config holds the generator settings.
type Config struct {
	// Output is the generated file name, written into the package directory.
	Output string `yaml:"output" env:"OUTPUT"`

	// Tag is the build tag that marks template files.
	Tag string `yaml:"tag" env:"TAG"`

	// Types limits generation to the named records.
	Types []string `yaml:"types" env:"TYPES" envSeparator:","`

	// DefaultTemplate replaces greet.DefaultTemplate for styles without a
	// content argument.
	DefaultTemplate string `yaml:"defaultTemplate" env:"DEFAULT_TEMPLATE"`

	// PointerReceiver declares Greet on *T.
	PointerReceiver bool `yaml:"pointerReceiver" env:"POINTER_RECEIVER"`

	// Dump logs records handed to derive2 at info level.
	Dump bool `yaml:"dump" env:"DUMP"`

	// DryRun prints the generated file instead of writing it.
	DryRun bool `yaml:"-" env:"DRY_RUN"`

	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"logLevel" env:"LOG_LEVEL"`

	// LogFormat is "console" or "json".
	LogFormat string `yaml:"logFormat" env:"LOG_FORMAT"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Output:    scan.DefaultOutput,
		Tag:       scan.DefaultTag,
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Load builds the settings for the package in dir. If path is empty and
// dir contains ConfigName, that file is read. Environment variables are
// applied on top of the file.
func Load(path, dir string) (*Config, error) {
	cfg := Default()

	if path == "" {
		candidate := filepath.Join(dir, ConfigName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Flag names shared by RegisterFlags and ApplyFlags.
const (
	FlagOutput          = "output"
	FlagTag             = "tag"
	FlagTypes           = "types"
	FlagDefaultTemplate = "default-template"
	FlagPointerReceiver = "pointer-receiver"
	FlagDump            = "dump"
	FlagDryRun          = "dry-run"
	FlagLogLevel        = "log-level"
	FlagLogFormat       = "log-format"
)

// RegisterFlags declares the settings as flags on fs, with the built-in
// defaults shown in help.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.StringP(FlagOutput, "o", d.Output, "generated file name")
	fs.String(FlagTag, d.Tag, "build tag marking template files")
	fs.StringSliceP(FlagTypes, "t", nil, "comma-separated record names to generate (default: all)")
	fs.String(FlagDefaultTemplate, greet.DefaultTemplate, "template for styles without a content argument")
	fs.Bool(FlagPointerReceiver, false, "declare Greet on the pointer type")
	fs.Bool(FlagDump, false, "log records handed to derive2 at info level")
	fs.Bool(FlagDryRun, false, "print to stdout without writing files")
	fs.String(FlagLogLevel, d.LogLevel, "log level (debug, info, warn, error)")
	fs.String(FlagLogFormat, d.LogFormat, "log format (console, json)")
}

// ApplyFlags copies the flags that were set explicitly on fs into c.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagOutput:
			c.Output, err = fs.GetString(f.Name)
		case FlagTag:
			c.Tag, err = fs.GetString(f.Name)
		case FlagTypes:
			c.Types, err = fs.GetStringSlice(f.Name)
		case FlagDefaultTemplate:
			c.DefaultTemplate, err = fs.GetString(f.Name)
		case FlagPointerReceiver:
			c.PointerReceiver, err = fs.GetBool(f.Name)
		case FlagDump:
			c.Dump, err = fs.GetBool(f.Name)
		case FlagDryRun:
			c.DryRun, err = fs.GetBool(f.Name)
		case FlagLogLevel:
			c.LogLevel, err = fs.GetString(f.Name)
		case FlagLogFormat:
			c.LogFormat, err = fs.GetString(f.Name)
		}
	})
	return err
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Output == "" || !strings.HasSuffix(c.Output, ".go") || strings.HasSuffix(c.Output, "_test.go") {
		errs = append(errs, fmt.Errorf("output %q: must be a non-test .go file name", c.Output))
	}
	if strings.ContainsRune(c.Output, filepath.Separator) || strings.ContainsRune(c.Output, '/') {
		errs = append(errs, fmt.Errorf("output %q: must not contain a directory", c.Output))
	}
	if c.Tag == "" || strings.ContainsAny(c.Tag, " \t!&|()") {
		errs = append(errs, fmt.Errorf("tag %q: must be a single build tag", c.Tag))
	}
	if c.DefaultTemplate != "" {
		if _, err := greet.Parse(c.DefaultTemplate); err != nil {
			errs = append(errs, fmt.Errorf("default template: %w", err))
		}
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log format %q: must be console or json", c.LogFormat))
	}
	for i, t := range c.Types {
		c.Types[i] = strings.TrimSpace(t)
	}
	return errors.Join(errs...)
}
