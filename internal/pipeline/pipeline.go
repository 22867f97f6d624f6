// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package pipeline runs a full generation: scan, select, plan and emit.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/albertocavalcante/greetgen/generator"
	"github.com/albertocavalcante/greetgen/internal/diag"
	"github.com/albertocavalcante/greetgen/internal/emit"
	"github.com/albertocavalcante/greetgen/internal/scan"
	"github.com/albertocavalcante/greetgen/model"
)

// Options configures a run.
type Options struct {
	Scan      scan.Options
	Generator generator.Config
	Emit      emit.Options
	Logger    zerolog.Logger
}

// Result is the outcome of a run.
type Result struct {
	// Package is the scanned package.
	Package *model.Package

	// Source is the generated file, or nil when no record produced output.
	Source []byte

	// Generated lists the records that received a Greet method.
	Generated []string

	// Diagnostics holds every problem found. Records with diagnostics are
	// left out of Source; the rest are still generated.
	Diagnostics diag.List
}

// Dir runs the pipeline over the package in dir.
func Dir(ctx context.Context, dir string, opts Options) (*Result, error) {
	opts.Scan.Logger = opts.Logger
	scanned, err := scan.Dir(ctx, dir, opts.Scan)
	if err != nil {
		return nil, err
	}
	return finish(ctx, scanned, opts)
}

// Sources runs the pipeline over in-memory files.
func Sources(ctx context.Context, sources []scan.Source, opts Options) (*Result, error) {
	opts.Scan.Logger = opts.Logger
	scanned, err := scan.Sources(ctx, sources, opts.Scan)
	if err != nil {
		return nil, err
	}
	return finish(ctx, scanned, opts)
}

func finish(ctx context.Context, scanned *scan.Result, opts Options) (*Result, error) {
	res := &Result{Package: scanned.Package}
	res.Diagnostics.Append(scanned.Diagnostics)

	records, diags := generator.Select(scanned.Package.Records, opts.Generator.Types)
	res.Diagnostics.Append(diags)

	outs, diags, err := generator.Plan(ctx, records, opts.Generator)
	if err != nil {
		return nil, err
	}
	res.Diagnostics.Append(diags)
	res.Diagnostics.Sort()

	for _, out := range outs {
		opts.Logger.Debug().
			Str("record", out.Record.Name).
			Str("style", out.Style).
			Bool("redeclare", out.Redeclare).
			Msg("generated Greet")
		res.Generated = append(res.Generated, out.Record.Name)
	}

	if len(outs) == 0 {
		return res, nil
	}

	if opts.Emit.Filename == "" {
		opts.Emit.Filename = opts.Scan.Output
	}
	src, err := emit.File(scanned.Package.Name, outs, opts.Emit)
	if err != nil {
		return nil, fmt.Errorf("emit: %w", err)
	}
	res.Source = src
	return res, nil
}
