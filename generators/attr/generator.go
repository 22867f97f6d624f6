// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package attr implements the //greet:attr style. The directive carries the
// template inline:
//
//	//greet:attr content="Hello, my name is {name} and I am {age} years old."
//
// The struct must live in a template file. It is emitted verbatim together
// with a Greet method using the given template.
package attr

import (
	"context"

	"github.com/albertocavalcante/greetgen/generator"
	"github.com/albertocavalcante/greetgen/internal/diag"
	"github.com/albertocavalcante/greetgen/model"
)

// Name is the directive verb for this style.
const Name = "attr"

// Generator implements [generator.Generator] for //greet:attr.
type Generator struct{}

// NewGenerator creates a new attr style.
func NewGenerator() *Generator {
	return &Generator{}
}

// Metadata returns information about this style.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:        Name,
		Version:     "1.0.0",
		Description: "Re-declare a struct from a template file and add Greet with an inline template",
		Usage:       `//greet:attr content="Hello, my name is {name} and I am {age} years old."`,
		Replaces:    true,
	}
}

// Generate validates the content argument, then rec, and returns the
// declaration plus method.
func (g *Generator) Generate(_ context.Context, rec *model.Record, _ generator.Config) (*generator.Output, error) {
	var diags diag.List
	d, _ := rec.Directive(generator.Namespace)
	content, ok := generator.Content(d, Name, &diags)
	if !ok {
		return nil, diags
	}
	generator.CheckShape(rec, Name, &diags)
	if err := diags.Err(); err != nil {
		return nil, err
	}
	return &generator.Output{
		Record:    rec,
		Redeclare: true,
		Template:  content,
	}, nil
}
