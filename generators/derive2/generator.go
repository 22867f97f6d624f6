// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package derive2 implements the //greet:derive2 style, which reads its
// template from a companion directive in the greet2 namespace:
//
//	//greet:derive2
//	//greet2:config content="Hello, {name} ({age})"
//	type Person struct { ... }
package derive2

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/albertocavalcante/greetgen/generator"
	"github.com/albertocavalcante/greetgen/internal/diag"
	"github.com/albertocavalcante/greetgen/model"
)

const (
	// Name is the directive verb for this style.
	Name = "derive2"

	// Companion is the namespace of the configuration directive.
	Companion = "greet2"

	// ConfigVerb is the only verb accepted in the companion namespace.
	ConfigVerb = "config"
)

// Generator implements [generator.Generator] for //greet:derive2.
type Generator struct {
	logger zerolog.Logger
	dump   bool
}

// Option configures the generator.
type Option func(*Generator)

// WithDump logs every record handed to the style at info level.
func WithDump(logger zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
		g.dump = true
	}
}

// NewGenerator creates a new derive2 style.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Metadata returns information about this style.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:        Name,
		Version:     "1.0.0",
		Description: "Add Greet to a struct with the template from a //greet2:config directive",
		Usage:       `//greet:derive2 with //greet2:config content="..."`,
		Companion:   Companion,
	}
}

// Generate validates the companion configuration, then rec, and returns
// the method.
func (g *Generator) Generate(_ context.Context, rec *model.Record, _ generator.Config) (*generator.Output, error) {
	if g.dump {
		g.logger.Info().
			Str("record", rec.Name).
			Str("kind", string(rec.Kind)).
			Interface("fields", rec.Fields).
			Interface("directives", rec.Directives).
			Str("pos", rec.Pos.String()).
			Msg("derive2 input")
	}

	var diags diag.List
	d, _ := rec.Directive(generator.Namespace)
	generator.CheckNoArgs(d, Name, &diags)

	var configs []model.Directive
	for _, c := range rec.Directives {
		if c.Namespace == Companion {
			configs = append(configs, c)
		}
	}
	switch len(configs) {
	case 0:
		diags.Addf(d.Pos, Name, Companion, "%s: missing attribute %s", rec.Name, Companion)
		return nil, diags
	case 1:
	default:
		diags.Addf(configs[1].Pos, Name, Companion, "%s: duplicate attribute %s", rec.Name, Companion)
		return nil, diags
	}
	cfg := configs[0]
	if cfg.Verb != ConfigVerb {
		diags.Addf(cfg.Pos, Name, Companion, "%s: unknown attribute //%s:%s", rec.Name, Companion, cfg.Verb)
		return nil, diags
	}

	content, ok := generator.Content(cfg, Name, &diags)
	if !ok {
		return nil, diags
	}
	generator.CheckShape(rec, Name, &diags)
	if err := diags.Err(); err != nil {
		return nil, err
	}
	return &generator.Output{
		Record:   rec,
		Template: content,
	}, nil
}
