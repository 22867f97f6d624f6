// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package emit

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/albertocavalcante/greetgen/generator"
	"github.com/albertocavalcante/greetgen/greet"
	"github.com/albertocavalcante/greetgen/model"
)

func person(name string) *model.Record {
	return &model.Record{
		Name: name,
		Kind: model.KindStruct,
		Fields: []model.Field{
			{Name: "name", Type: "string"},
			{Name: "age", Type: "uint32"},
		},
		Source: name + " struct {\n\tname string\n\tage  uint32\n}",
	}
}

func TestFile_MethodOnly(t *testing.T) {
	outs := []*generator.Output{{Record: person("PerSon"), Template: greet.DefaultTemplate}}

	got, err := File("main", outs, Options{Filename: "greet_generated.go"})
	if err != nil {
		t.Fatalf("File: %v", err)
	}

	want := `// Code generated by greetgen. DO NOT EDIT.

package main

import _greet "github.com/albertocavalcante/greetgen/greet"

var _PerSon_greeting = _greet.MustParse("Hello, my name is {name} and I am {age} years old.")

// Greet prints the greeting for PerSon to standard output.
func (p PerSon) Greet() {
	_PerSon_greeting.Println(p.name, p.age)
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("File mismatch (-want +got):\n%s", diff)
	}
}

func TestFile_Redeclare(t *testing.T) {
	rec := person("Person")
	rec.Doc = []string{"// Person is someone to greet.", "//go:generate greetgen"}
	outs := []*generator.Output{{
		Record:    rec,
		Redeclare: true,
		Template:  "Hello, my name is {name}  and I a {age} years old.",
	}}

	got, err := File("main", outs, Options{Filename: "greet_generated.go", PointerReceiver: true})
	if err != nil {
		t.Fatalf("File: %v", err)
	}

	want := `// Code generated by greetgen. DO NOT EDIT.

package main

import _greet "github.com/albertocavalcante/greetgen/greet"

// Person is someone to greet.
type Person struct {
	name string
	age  uint32
}

var _Person_greeting = _greet.MustParse("Hello, my name is {name}  and I a {age} years old.")

// Greet prints the greeting for Person to standard output.
func (p *Person) Greet() {
	_Person_greeting.Println(p.name, p.age)
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("File mismatch (-want +got):\n%s", diff)
	}
}

func TestFile_CarriedImports(t *testing.T) {
	rec := &model.Record{
		Name: "Event",
		Kind: model.KindStruct,
		Fields: []model.Field{
			{Name: "Name", Type: "string"},
			{Name: "Age", Type: "time.Duration"},
		},
		Source:  "Event struct {\n\tName string\n\tAge  time.Duration\n}",
		Imports: []string{`"time"`, `"strings"`},
	}
	outs := []*generator.Output{{Record: rec, Redeclare: true, Template: greet.DefaultTemplate}}

	got, err := File("events", outs, Options{Filename: "greet_generated.go"})
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	src := string(got)
	if !strings.Contains(src, `"time"`) {
		t.Errorf("expected time import to be kept:\n%s", src)
	}
	if strings.Contains(src, `"strings"`) {
		t.Errorf("expected unused strings import to be pruned:\n%s", src)
	}
	if !strings.Contains(src, "_Event_greeting.Println(e.Name, e.Age)") {
		t.Errorf("expected exported fields in Greet body:\n%s", src)
	}
}

func TestFile_Deterministic(t *testing.T) {
	outs := []*generator.Output{
		{Record: person("A"), Template: greet.DefaultTemplate},
		{Record: person("B"), Redeclare: true, Template: "{name}"},
	}
	first, err := File("p", outs, Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := File("p", outs, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Errorf("output differs between runs (-first +second):\n%s", diff)
	}
}

func TestFile_RuntimeImportName(t *testing.T) {
	outs := []*generator.Output{{Record: person("Person"), Template: greet.DefaultTemplate}}
	got, err := File("people", outs, Options{Filename: "greet_generated.go"})
	if err != nil {
		t.Fatalf("File: %v", err)
	}

	f, err := parser.ParseFile(token.NewFileSet(), "greet_generated.go", got, parser.ImportsOnly)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(f.Imports) != 1 {
		t.Fatalf("got %d imports, want 1", len(f.Imports))
	}
	imp := f.Imports[0]
	if imp.Name == nil || imp.Name.Name != RuntimeName {
		t.Errorf("runtime import name = %v, want %s", imp.Name, RuntimeName)
	}
	if strings.Contains(string(got), " greet.") {
		t.Errorf("output refers to the unaliased runtime name:\n%s", got)
	}
}

func TestIsGenerated(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{src: "// Code generated by greetgen. DO NOT EDIT.\n\npackage p\n", want: true},
		{src: "// Code generated by stringer. DO NOT EDIT.\n\npackage p\n"},
		{src: "package p\n"},
		{src: ""},
	}
	for _, tt := range tests {
		if got := IsGenerated([]byte(tt.src), DefaultTool); got != tt.want {
			t.Errorf("IsGenerated(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}
