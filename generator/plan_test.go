// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"context"
	"errors"
	"go/token"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/albertocavalcante/greetgen/internal/diag"
	"github.com/albertocavalcante/greetgen/model"
)

func record(name string, template bool, dirs ...model.Directive) *model.Record {
	return &model.Record{
		Name: name,
		Kind: model.KindStruct,
		Fields: []model.Field{
			{Name: "name", Type: "string"},
			{Name: "age", Type: "int"},
		},
		Directives: dirs,
		File:       "p.go",
		Pos:        token.Position{Filename: "p.go", Line: 3, Column: 6},
		Template:   template,
	}
}

func dir(ns, verb string, line int) model.Directive {
	return model.Directive{
		Namespace: ns,
		Verb:      verb,
		Pos:       token.Position{Filename: "p.go", Line: line, Column: 1},
	}
}

func messages(l diag.List) []string {
	var out []string
	for _, d := range l {
		out = append(out, d.String())
	}
	return out
}

func TestPlan(t *testing.T) {
	Reset()
	defer Reset()
	Register(&mockGenerator{name: "inplace"})
	Register(&mockGenerator{name: "replace", replaces: true})
	Register(&mockGenerator{name: "paired", companion: "pair"})
	Register(&mockGenerator{name: "fails", err: errors.New("boom")})

	tests := []struct {
		name      string
		rec       *model.Record
		wantOut   bool
		wantDiags []string
	}{
		{
			name:    "in place",
			rec:     record("A", false, dir("greet", "inplace", 2)),
			wantOut: true,
		},
		{
			name:    "replace in template",
			rec:     record("A", true, dir("greet", "replace", 2)),
			wantOut: true,
		},
		{
			name:      "replace outside template",
			rec:       record("A", false, dir("greet", "replace", 2)),
			wantDiags: []string{"p.go:2:1: replace: A: requires a file constrained by //go:build greetgen"},
		},
		{
			name:      "in place inside template",
			rec:       record("A", true, dir("greet", "inplace", 2)),
			wantDiags: []string{"p.go:2:1: inplace: A: must annotate a declaration in a compiled file"},
		},
		{
			name:      "unknown verb",
			rec:       record("A", false, dir("greet", "nope", 2)),
			wantDiags: []string{"p.go:2:1: A: unknown directive //greet:nope"},
		},
		{
			name:      "conflict",
			rec:       record("A", false, dir("greet", "inplace", 1), dir("greet", "paired", 2)),
			wantDiags: []string{"p.go:2:1: A: conflicting directives //greet:inplace and //greet:paired"},
		},
		{
			name:      "companion alone",
			rec:       record("A", false, dir("pair", "config", 2)),
			wantDiags: []string{"p.go:2:1: A: //pair:config without a //greet: directive"},
		},
		{
			name:    "companion accepted",
			rec:     record("A", false, dir("greet", "paired", 1), dir("pair", "config", 2)),
			wantOut: true,
		},
		{
			name:      "companion of another style",
			rec:       record("A", false, dir("greet", "inplace", 1), dir("pair", "config", 2)),
			wantDiags: []string{"p.go:2:1: inplace: A: //pair:config is not read by //greet:inplace"},
		},
		{
			name:      "plain error",
			rec:       record("A", false, dir("greet", "fails", 2)),
			wantDiags: []string{"p.go:3:6: fails: boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outs, diags, err := Plan(context.Background(), []*model.Record{tt.rec}, Config{})
			if err != nil {
				t.Fatalf("Plan: %v", err)
			}
			if diff := cmp.Diff(tt.wantDiags, messages(diags)); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
			if got := len(outs) == 1; got != tt.wantOut {
				t.Fatalf("got %d outputs, want output=%v", len(outs), tt.wantOut)
			}
			if tt.wantOut && outs[0].Style != tt.rec.Directives[0].Verb {
				t.Errorf("got style %q, want %q", outs[0].Style, tt.rec.Directives[0].Verb)
			}
		})
	}
}

func TestPlan_Isolation(t *testing.T) {
	Reset()
	defer Reset()
	Register(&mockGenerator{name: "inplace"})

	records := []*model.Record{
		record("Bad", false, dir("greet", "nope", 2)),
		record("Good", false, dir("greet", "inplace", 8)),
	}
	outs, diags, err := Plan(context.Background(), records, Config{})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(diags) != 1 {
		t.Errorf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if len(outs) != 1 || outs[0].Record.Name != "Good" {
		t.Errorf("expected only Good to be generated, got %v", outs)
	}
}

func TestPlan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Plan(ctx, []*model.Record{record("A", false, dir("greet", "inplace", 2))}, Config{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestSelect(t *testing.T) {
	records := []*model.Record{
		record("A", false, dir("greet", "derive", 1)),
		record("B", false, dir("greet", "derive", 5)),
		record("C", false, dir("greet", "derive", 9)),
	}

	tests := []struct {
		name      string
		types     []string
		want      []string
		wantDiags []string
	}{
		{name: "all", want: []string{"A", "B", "C"}},
		{name: "source order", types: []string{"C", "A"}, want: []string{"A", "C"}},
		{name: "unknown", types: []string{"B", "Z", "Z"}, want: []string{"B"}, wantDiags: []string{"type Z has no greet directive"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := Select(records, tt.types)
			var names []string
			for _, r := range got {
				names = append(names, r.Name)
			}
			if diff := cmp.Diff(tt.want, names); diff != "" {
				t.Errorf("Select mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantDiags, messages(diags)); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
