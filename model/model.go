// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package model describes the records greetgen reads from Go source.
package model

import (
	"go/token"

	"github.com/albertocavalcante/greetgen/internal/names"
)

// Kind is the shape of a declared type.
type Kind string

const (
	// KindStruct is a struct type.
	KindStruct Kind = "struct"
	// KindOther is any other type (named basic types, interfaces, aliases, ...).
	KindOther Kind = "other"
)

// Package is a scanned Go package directory.
type Package struct {
	// Name is the package clause name.
	Name string

	// Dir is the directory the package was read from.
	Dir string

	// Records holds the annotated type declarations, ordered by file name
	// and then by source position.
	Records []*Record
}

// Record describes a single annotated type declaration.
type Record struct {
	// Name is the declared type name.
	Name string

	// Kind is the underlying shape of the type.
	Kind Kind

	// Fields lists struct fields in declaration order. Empty for non-structs.
	Fields []Field

	// Directives lists the greetgen directives found in the doc comment.
	Directives []Directive

	// Doc holds the doc comment lines that are not greetgen directives,
	// verbatim including their comment markers.
	Doc []string

	// Source is the verbatim text of the type spec, starting at the name.
	Source string

	// File is the base name of the declaring file.
	File string

	// Pos is the position of the type name.
	Pos token.Position

	// Template is true when the declaring file is excluded from the normal
	// build by the generator's build tag.
	Template bool

	// Imports holds the import specs of the declaring file as they appear in
	// source (e.g. `"time"` or `tm "time"`).
	Imports []string
}

// Field is a struct field.
type Field struct {
	Name     string
	Type     string
	Tag      string
	Embedded bool
}

// Directive is a parsed "//namespace:verb args" comment line.
type Directive struct {
	Namespace string
	Verb      string
	Args      []Arg
	Pos       token.Position
}

// Arg is a key=value argument of a directive.
type Arg struct {
	Key   string
	Value string
	Pos   token.Position
}

// Field returns the field that backs the template placeholder name.
// An exact match wins over the exported spelling, so "name" is preferred
// to "Name". Embedded fields are never matched.
func (r *Record) Field(name string) (Field, bool) {
	for _, candidate := range []string{name, names.Capitalize(name)} {
		for _, f := range r.Fields {
			if !f.Embedded && f.Name == candidate {
				return f, true
			}
		}
	}
	return Field{}, false
}

// Directive returns the first directive in namespace ns.
func (r *Record) Directive(ns string) (Directive, bool) {
	for _, d := range r.Directives {
		if d.Namespace == ns {
			return d, true
		}
	}
	return Directive{}, false
}

// Arg returns the first argument with the given key.
func (d Directive) Arg(key string) (Arg, bool) {
	for _, a := range d.Args {
		if a.Key == key {
			return a, true
		}
	}
	return Arg{}, false
}
