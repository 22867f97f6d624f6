// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package generator defines the interface for greetgen invocation styles.
//
// Each style corresponds to one directive verb in the "greet" namespace.
// A style validates a record and its configuration and returns an [Output]
// describing what to emit. Rendering is shared by all styles.
package generator

import (
	"context"

	"github.com/albertocavalcante/greetgen/model"
)

// Namespace is the directive namespace that selects a style.
const Namespace = "greet"

// Generator is the interface that all invocation styles must implement.
type Generator interface {
	// Metadata returns information about this style.
	Metadata() Metadata

	// Generate validates rec and describes the code to emit for it.
	// Validation failures are returned as a diag.List.
	Generate(ctx context.Context, rec *model.Record, cfg Config) (*Output, error)
}

// Metadata describes a style.
type Metadata struct {
	// Name is the directive verb (e.g., "derive", "attr").
	Name string

	// Version is the style version (semver).
	Version string

	// Description is a human-readable description.
	Description string

	// Usage is an example directive line.
	Usage string

	// Replaces is true for styles that re-declare the record. Those must
	// annotate declarations in template files; the others must annotate
	// declarations in compiled files.
	Replaces bool

	// Companion is the directive namespace holding this style's
	// configuration, if it reads one (e.g., "greet2").
	Companion string
}
