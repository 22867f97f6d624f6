// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command greetgen adds Greet methods to annotated Go types.
//
// It is meant to be run by go generate:
//
//	//go:generate go run github.com/albertocavalcante/greetgen/cmd/greetgen
//
// Usage:
//
//	greetgen [flags] [dir]
//	greetgen styles
//
// Flags:
//
//	-o, --output            Generated file name (default: greet_generated.go)
//	    --tag               Build tag marking template files (default: greetgen)
//	-t, --types             Comma-separated types to generate (default: all)
//	    --default-template  Template for styles without a content argument
//	    --pointer-receiver  Declare Greet on *T
//	    --dump              Log records handed to derive2
//	    --dry-run           Print to stdout without writing files
//	    --config            Path to a greetgen.yaml file
//	    --log-level         Log level (default: info)
//	    --log-format        Log format, console or json (default: console)
//	    --version           Show version information
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/albertocavalcante/greetgen/generator"
	"github.com/albertocavalcante/greetgen/internal/config"
	"github.com/albertocavalcante/greetgen/internal/emit"
	"github.com/albertocavalcante/greetgen/internal/logging"
	"github.com/albertocavalcante/greetgen/internal/pipeline"
	"github.com/albertocavalcante/greetgen/internal/scan"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errDiagnostics is returned after diagnostics have been printed.
var errDiagnostics = errors.New("generation reported diagnostics")

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "greetgen [flags] [dir]",
		Short: "Add Greet methods to annotated Go types",
		Long: `greetgen scans a Go package for //greet: directives and writes a single
generated file with a Greet method for every annotated struct.

Styles:
  //greet:expand                  re-declare a struct from a template file
  //greet:derive                  add Greet to a struct in place
  //greet:attr content="..."      re-declare with an inline template
  //greet:derive2 + //greet2:config content="..."
                                  add Greet with a companion template

Template files carry a //go:build greetgen constraint so they are excluded
from normal builds.`,
		Example: `  # From a go:generate directive in the package
  //go:generate go run github.com/albertocavalcante/greetgen/cmd/greetgen

  # Preview the output for two types
  greetgen --dry-run -t Person,Robot ./people`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return run(cmd, dir, configPath, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	config.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&configPath, "config", "", "path to a "+config.ConfigName+" file")

	cmd.AddCommand(newStylesCmd(stdout))
	return cmd
}

func run(cmd *cobra.Command, dir, configPath string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(configPath, dir)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	registerStyles(cfg, logger)

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	opts := pipeline.Options{Logger: logger}
	opts.Scan = scan.Options{Tag: cfg.Tag, Output: cfg.Output}
	opts.Generator = generator.Config{
		DefaultTemplate: cfg.DefaultTemplate,
		Types:           cfg.Types,
		Tag:             cfg.Tag,
	}
	opts.Emit.PointerReceiver = cfg.PointerReceiver

	res, err := pipeline.Dir(ctx, dir, opts)
	if err != nil {
		return err
	}

	for _, d := range res.Diagnostics {
		fmt.Fprintln(stderr, d.String())
	}

	if res.Source != nil {
		if cfg.DryRun {
			if _, err := stdout.Write(res.Source); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		} else {
			path := filepath.Join(dir, cfg.Output)
			if err := os.WriteFile(path, res.Source, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			logger.Info().
				Str("file", path).
				Strs("types", res.Generated).
				Msg("wrote generated file")
		}
	} else {
		logger.Info().Str("dir", dir).Msg("no types to generate")
		if !cfg.DryRun {
			path := filepath.Join(dir, cfg.Output)
			removed, err := removeStale(path)
			if err != nil {
				return err
			}
			if removed {
				logger.Info().Str("file", path).Msg("removed stale generated file")
			}
		}
	}

	if len(res.Diagnostics) > 0 {
		return errDiagnostics
	}
	return nil
}

// removeStale deletes path if it holds a file greetgen generated earlier.
// Files without the generated-code header are left alone.
func removeStale(path string) (bool, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read output: %w", err)
	}
	if !emit.IsGenerated(src, emit.DefaultTool) {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("remove stale output: %w", err)
	}
	return true, nil
}

func newStylesCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the supported directive styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registerStyles(config.Default(), zerolog.Nop())
			for _, g := range generator.All() {
				meta := g.Metadata()
				placement := "compiled file"
				if meta.Replaces {
					placement = "template file"
				}
				fmt.Fprintf(stdout, "%-8s v%-6s %-14s %s\n", meta.Name, meta.Version, placement, meta.Description)
				fmt.Fprintf(stdout, "         usage: %s\n", meta.Usage)
			}
			return nil
		},
	}
}
