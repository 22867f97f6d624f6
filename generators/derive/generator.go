// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package derive implements the //greet:derive style, which adds a Greet
// method with the default template to a struct in a compiled file.
package derive

import (
	"context"

	"github.com/albertocavalcante/greetgen/generator"
	"github.com/albertocavalcante/greetgen/internal/diag"
	"github.com/albertocavalcante/greetgen/model"
)

// Name is the directive verb for this style.
const Name = "derive"

// Generator implements [generator.Generator] for //greet:derive.
type Generator struct{}

// NewGenerator creates a new derive style.
func NewGenerator() *Generator {
	return &Generator{}
}

// Metadata returns information about this style.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:        Name,
		Version:     "1.0.0",
		Description: "Add Greet with the default template to a struct",
		Usage:       "//greet:derive",
	}
}

// Generate validates rec and returns the method.
func (g *Generator) Generate(_ context.Context, rec *model.Record, cfg generator.Config) (*generator.Output, error) {
	var diags diag.List
	d, _ := rec.Directive(generator.Namespace)
	generator.CheckNoArgs(d, Name, &diags)
	generator.CheckShape(rec, Name, &diags)
	if err := diags.Err(); err != nil {
		return nil, err
	}
	return &generator.Output{
		Record:   rec,
		Template: cfg.Template(),
	}, nil
}
