// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"github.com/albertocavalcante/greetgen/greet"
	"github.com/albertocavalcante/greetgen/internal/diag"
	"github.com/albertocavalcante/greetgen/model"
)

// ContentKey is the configuration key holding a custom template.
const ContentKey = "content"

// CheckShape reports records that cannot carry a Greet method: non-structs,
// and structs missing the fields the template placeholders read.
func CheckShape(rec *model.Record, style string, diags *diag.List) {
	if rec.Kind != model.KindStruct {
		diags.Addf(rec.Pos, style, "", "%s: only structs supported", rec.Name)
		return
	}
	for _, field := range []string{greet.Name, greet.Age} {
		if _, ok := rec.Field(field); !ok {
			diags.Addf(rec.Pos, style, field, "%s: missing field %q", rec.Name, field)
		}
	}
}

// CheckNoArgs reports every argument of d as unknown.
func CheckNoArgs(d model.Directive, style string, diags *diag.List) {
	for _, a := range d.Args {
		diags.Unknown(a.Pos, style, a.Key)
	}
}

// Content validates a directive whose only accepted key is "content" and
// returns the template. It reports missing, unknown and duplicate keys and
// templates that do not parse, each attributed to the offending key.
func Content(d model.Directive, style string, diags *diag.List) (string, bool) {
	var (
		content string
		found   bool
		ok      = true
	)
	for _, a := range d.Args {
		switch {
		case a.Key != ContentKey:
			diags.Unknown(a.Pos, style, a.Key)
			ok = false
		case found:
			diags.Duplicate(a.Pos, style, a.Key)
			ok = false
		default:
			found = true
			content = a.Value
			if _, err := greet.Parse(a.Value); err != nil {
				diags.Invalid(a.Pos, style, a.Key, err)
				ok = false
			}
		}
	}
	if !found {
		diags.Missing(d.Pos, style, ContentKey)
		return "", false
	}
	return content, ok
}
