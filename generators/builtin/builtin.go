// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package builtin registers the four built-in invocation styles.
package builtin

import (
	"github.com/rs/zerolog"

	"github.com/albertocavalcante/greetgen/generator"
	"github.com/albertocavalcante/greetgen/generators/attr"
	"github.com/albertocavalcante/greetgen/generators/derive"
	"github.com/albertocavalcante/greetgen/generators/derive2"
	"github.com/albertocavalcante/greetgen/generators/expand"
)

// Options controls built-in registration.
type Options struct {
	// Dump logs the records seen by derive2 at info level.
	Dump bool

	// Logger receives dump output.
	Logger zerolog.Logger
}

// Register adds expand, derive, attr and derive2 to the generator registry.
func Register(opts Options) {
	generator.Register(expand.NewGenerator())
	generator.Register(derive.NewGenerator())
	generator.Register(attr.NewGenerator())

	var d2 []derive2.Option
	if opts.Dump {
		d2 = append(d2, derive2.WithDump(opts.Logger))
	}
	generator.Register(derive2.NewGenerator(d2...))
}
