// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import "github.com/albertocavalcante/greetgen/greet"

// Config contains generator configuration.
type Config struct {
	// DefaultTemplate is used by styles without a content argument.
	// If empty, greet.DefaultTemplate is used.
	DefaultTemplate string

	// Types filters to specific record names (empty = all).
	Types []string

	// Tag is the build tag marking template files (for messages).
	Tag string
}

// Template returns the default template to use.
func (c Config) Template() string {
	if c.DefaultTemplate != "" {
		return c.DefaultTemplate
	}
	return greet.DefaultTemplate
}
