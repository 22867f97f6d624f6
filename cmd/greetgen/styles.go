// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"github.com/rs/zerolog"

	"github.com/albertocavalcante/greetgen/generator"
	"github.com/albertocavalcante/greetgen/generators/builtin"
	"github.com/albertocavalcante/greetgen/internal/config"
)

// registerStyles fills the registry for one invocation. The derive2 dump
// option depends on the loaded settings, so the registry is rebuilt each time.
func registerStyles(cfg *config.Config, logger zerolog.Logger) {
	generator.Reset()
	builtin.Register(builtin.Options{Dump: cfg.Dump, Logger: logger})
}
