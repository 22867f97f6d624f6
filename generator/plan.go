// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"context"
	"errors"

	"github.com/albertocavalcante/greetgen/internal/diag"
	"github.com/albertocavalcante/greetgen/model"
)

// Plan dispatches every record to the style named by its directive and
// collects the outputs. A record with diagnostics produces no output; the
// remaining records are unaffected. The returned error is non-nil only when
// ctx is done.
func Plan(ctx context.Context, records []*model.Record, cfg Config) ([]*Output, diag.List, error) {
	var (
		outs  []*Output
		diags diag.List
	)
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		out, ds := planRecord(ctx, rec, cfg)
		diags.Append(ds)
		if out != nil && len(ds) == 0 {
			outs = append(outs, out)
		}
	}
	return outs, diags, nil
}

func planRecord(ctx context.Context, rec *model.Record, cfg Config) (*Output, diag.List) {
	var (
		diags  diag.List
		styles []model.Directive
	)
	for _, d := range rec.Directives {
		if d.Namespace == Namespace {
			styles = append(styles, d)
		}
	}

	switch len(styles) {
	case 0:
		d := rec.Directives[0]
		diags.Addf(d.Pos, "", "", "%s: //%s:%s without a //%s: directive", rec.Name, d.Namespace, d.Verb, Namespace)
		return nil, diags
	case 1:
	default:
		diags.Addf(styles[1].Pos, "", "", "%s: conflicting directives //%s:%s and //%s:%s",
			rec.Name, Namespace, styles[0].Verb, Namespace, styles[1].Verb)
		return nil, diags
	}

	d := styles[0]
	g, ok := Get(d.Verb)
	if !ok {
		diags.Addf(d.Pos, "", "", "%s: unknown directive //%s:%s", rec.Name, Namespace, d.Verb)
		return nil, diags
	}
	meta := g.Metadata()

	for _, other := range rec.Directives {
		if other.Namespace != Namespace && other.Namespace != meta.Companion {
			diags.Addf(other.Pos, meta.Name, "", "%s: //%s:%s is not read by //%s:%s",
				rec.Name, other.Namespace, other.Verb, Namespace, meta.Name)
		}
	}

	tag := cfg.Tag
	if tag == "" {
		tag = "greetgen"
	}
	switch {
	case meta.Replaces && !rec.Template:
		diags.Addf(d.Pos, meta.Name, "", "%s: requires a file constrained by //go:build %s", rec.Name, tag)
	case !meta.Replaces && rec.Template:
		diags.Addf(d.Pos, meta.Name, "", "%s: must annotate a declaration in a compiled file", rec.Name)
	}
	if len(diags) > 0 {
		return nil, diags
	}

	out, err := g.Generate(ctx, rec, cfg)
	if err != nil {
		var l diag.List
		if errors.As(err, &l) {
			diags.Append(l)
		} else {
			diags.Add(rec.Pos, meta.Name, "", err.Error())
		}
		return nil, diags
	}
	out.Style = meta.Name
	return out, nil
}
