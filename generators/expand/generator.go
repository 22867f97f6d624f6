// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package expand implements the //greet:expand style: a struct declared in
// a template file is re-declared in the generated file together with a
// Greet method using the default template.
package expand

import (
	"context"

	"github.com/albertocavalcante/greetgen/generator"
	"github.com/albertocavalcante/greetgen/internal/diag"
	"github.com/albertocavalcante/greetgen/model"
)

// Name is the directive verb for this style.
const Name = "expand"

// Generator implements [generator.Generator] for //greet:expand.
type Generator struct{}

// NewGenerator creates a new expand style.
func NewGenerator() *Generator {
	return &Generator{}
}

// Metadata returns information about this style.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:        Name,
		Version:     "1.0.0",
		Description: "Re-declare a struct from a template file and add Greet with the default template",
		Usage:       "//greet:expand",
		Replaces:    true,
	}
}

// Generate validates rec and returns the declaration plus method.
func (g *Generator) Generate(_ context.Context, rec *model.Record, cfg generator.Config) (*generator.Output, error) {
	var diags diag.List
	d, _ := rec.Directive(generator.Namespace)
	generator.CheckNoArgs(d, Name, &diags)
	generator.CheckShape(rec, Name, &diags)
	if err := diags.Err(); err != nil {
		return nil, err
	}
	return &generator.Output{
		Record:    rec,
		Redeclare: true,
		Template:  cfg.Template(),
	}, nil
}
