// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package scan reads a Go package directory and extracts annotated records.
package scan

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/build"
	"go/build/constraint"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/albertocavalcante/greetgen/internal/diag"
	"github.com/albertocavalcante/greetgen/internal/directive"
	"github.com/albertocavalcante/greetgen/model"
)

// Style is used for diagnostics about template files.
const Style = "template"

const (
	// DefaultTag is the build tag that marks template files.
	DefaultTag = "greetgen"

	// DefaultOutput is the file name the generator writes.
	DefaultOutput = "greet_generated.go"
)

// DefaultNamespaces are the directive namespaces recognized in doc comments.
var DefaultNamespaces = []string{"greet", "greet2"}

// Options configures how a package is scanned.
type Options struct {
	// Tag is the build tag marking template files.
	// If empty, DefaultTag is used.
	Tag string

	// Output is the generated file name, which is never read back.
	// If empty, DefaultOutput is used.
	Output string

	// Namespaces lists the directive namespaces to extract.
	// If empty, DefaultNamespaces is used.
	Namespaces []string

	// Logger receives per-file debug output.
	Logger zerolog.Logger
}

func (o *Options) defaults() {
	if o.Tag == "" {
		o.Tag = DefaultTag
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if len(o.Namespaces) == 0 {
		o.Namespaces = DefaultNamespaces
	}
}

// Result contains the scanned package and metadata.
type Result struct {
	// Package holds the annotated records.
	Package *model.Package

	// Files lists the files that were parsed, in order.
	Files []string

	// Diagnostics holds problems with directive syntax or record shape
	// found while scanning.
	Diagnostics diag.List
}

// Source is an in-memory Go file.
type Source struct {
	Name string
	Data []byte
}

// Dir scans the Go package in dir.
func Dir(ctx context.Context, dir string, opts Options) (*Result, error) {
	opts.defaults()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var sources []Source
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == opts.Output {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		sources = append(sources, Source{Name: name, Data: data})
	}

	res, err := Sources(ctx, sources, opts)
	if err != nil {
		return nil, err
	}
	res.Package.Dir = dir
	return res, nil
}

// Sources scans in-memory files as a single package. Files are processed
// in name order.
func Sources(ctx context.Context, sources []Source, opts Options) (*Result, error) {
	opts.defaults()

	sources = slices.Clone(sources)
	slices.SortFunc(sources, func(a, b Source) int { return strings.Compare(a.Name, b.Name) })

	fset := token.NewFileSet()
	res := &Result{Package: &model.Package{}}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if src.Name == opts.Output {
			continue
		}

		f, err := parser.ParseFile(fset, src.Name, src.Data, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", src.Name, err)
		}
		if ast.IsGenerated(f) {
			opts.Logger.Debug().Str("file", src.Name).Msg("skipping generated file")
			continue
		}
		if !buildable(src.Name, src.Data, opts.Tag) {
			opts.Logger.Debug().Str("file", src.Name).Msg("skipping file excluded by build constraints")
			continue
		}

		pkg := f.Name.Name
		switch res.Package.Name {
		case "":
			res.Package.Name = pkg
		case pkg:
		default:
			return nil, fmt.Errorf("%s: found packages %s and %s", src.Name, res.Package.Name, pkg)
		}

		fs := &fileScanner{
			fset:     fset,
			file:     f,
			name:     src.Name,
			src:      src.Data,
			opts:     &opts,
			template: hasTag(f, opts.Tag),
		}
		records, diags := fs.records()
		res.Package.Records = append(res.Package.Records, records...)
		res.Diagnostics.Append(diags)
		res.Files = append(res.Files, src.Name)

		opts.Logger.Debug().
			Str("file", src.Name).
			Bool("template", fs.template).
			Int("records", len(records)).
			Msg("scanned file")
	}

	return res, nil
}

// buildable reports whether the file takes part in the normal build or in
// the template build selected by tag, for the current GOOS and GOARCH.
func buildable(name string, data []byte, tag string) bool {
	for _, extra := range [][]string{nil, {tag}} {
		ctxt := build.Default
		ctxt.BuildTags = append(slices.Clone(ctxt.BuildTags), extra...)
		ctxt.OpenFile = func(string) (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
		ok, err := ctxt.MatchFile(".", filepath.Base(name))
		if err != nil || ok {
			return true
		}
	}
	return false
}

// hasTag reports whether the file's //go:build constraint mentions tag.
func hasTag(f *ast.File, tag string) bool {
	for _, cg := range f.Comments {
		if cg.Pos() > f.Package {
			break
		}
		for _, c := range cg.List {
			if !constraint.IsGoBuild(c.Text) {
				continue
			}
			expr, err := constraint.Parse(c.Text)
			if err != nil {
				continue
			}
			if mentions(expr, tag) {
				return true
			}
		}
	}
	return false
}

func mentions(expr constraint.Expr, tag string) bool {
	switch x := expr.(type) {
	case *constraint.TagExpr:
		return x.Tag == tag
	case *constraint.NotExpr:
		return false
	case *constraint.AndExpr:
		return mentions(x.X, tag) || mentions(x.Y, tag)
	case *constraint.OrExpr:
		return mentions(x.X, tag) || mentions(x.Y, tag)
	}
	return false
}

type fileScanner struct {
	fset     *token.FileSet
	file     *ast.File
	name     string
	src      []byte
	opts     *Options
	template bool
}

func (s *fileScanner) text(n ast.Node) string {
	tf := s.fset.File(n.Pos())
	return string(s.src[tf.Offset(n.Pos()):tf.Offset(n.End())])
}

func (s *fileScanner) imports() []string {
	var out []string
	for _, spec := range s.file.Imports {
		out = append(out, s.text(spec))
	}
	return out
}

func (s *fileScanner) records() ([]*model.Record, diag.List) {
	var (
		records []*model.Record
		diags   diag.List
	)
	imports := s.imports()

	for _, decl := range s.file.Decls {
		if s.template {
			s.checkDropped(decl, &diags)
		}
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			dirs, rest, ds := directive.Parse(s.fset, typeDoc(gd, ts), s.opts.Namespaces)
			diags.Append(ds)
			if len(dirs) == 0 {
				if s.template && len(ds) == 0 {
					s.dropped(ts.Name, ts.Name.Name, &diags)
				}
				continue
			}

			pos := s.fset.Position(ts.Name.Pos())
			if ts.TypeParams != nil {
				diags.Addf(pos, directive.Style, "", "%s: generic types are not supported", ts.Name.Name)
				continue
			}

			rec := &model.Record{
				Name:       ts.Name.Name,
				Kind:       model.KindOther,
				Directives: dirs,
				Doc:        rest,
				Source:     s.text(ts),
				File:       s.name,
				Pos:        pos,
				Template:   s.template,
				Imports:    imports,
			}
			if st, ok := ts.Type.(*ast.StructType); ok && !ts.Assign.IsValid() {
				rec.Kind = model.KindStruct
				rec.Fields = s.fields(st)
			}
			records = append(records, rec)
		}
	}
	return records, diags
}

// typeDoc returns the doc comment of ts. A lone spec outside parentheses
// carries its doc on the declaration.
func typeDoc(gd *ast.GenDecl, ts *ast.TypeSpec) *ast.CommentGroup {
	if ts.Doc == nil && !gd.Lparen.IsValid() {
		return gd.Doc
	}
	return ts.Doc
}

// checkDropped reports functions, methods, constants and variables in a
// template file. The file is excluded from the build and only annotated
// types are carried over, so anything else would vanish. Blank variables
// such as `var _ = x` are allowed. Types are checked in records.
func (s *fileScanner) checkDropped(decl ast.Decl, diags *diag.List) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		name := d.Name.Name
		if d.Recv != nil && len(d.Recv.List) == 1 {
			if recv := embeddedName(d.Recv.List[0].Type); recv != "" {
				name = recv + "." + name
			}
		}
		s.dropped(d.Name, name, diags)
	case *ast.GenDecl:
		if d.Tok != token.CONST && d.Tok != token.VAR {
			return
		}
		for _, spec := range d.Specs {
			for _, n := range spec.(*ast.ValueSpec).Names {
				if n.Name != "_" {
					s.dropped(n, n.Name, diags)
				}
			}
		}
	}
}

func (s *fileScanner) dropped(at ast.Node, name string, diags *diag.List) {
	diags.Addf(s.fset.Position(at.Pos()), Style, "",
		"%s: only annotated types are carried out of a template file", name)
}

func (s *fileScanner) fields(st *ast.StructType) []model.Field {
	var out []model.Field
	for _, f := range st.Fields.List {
		typ := s.text(f.Type)
		tag := ""
		if f.Tag != nil {
			tag = f.Tag.Value
		}
		if len(f.Names) == 0 {
			out = append(out, model.Field{Name: embeddedName(f.Type), Type: typ, Tag: tag, Embedded: true})
			continue
		}
		for _, n := range f.Names {
			out = append(out, model.Field{Name: n.Name, Type: typ, Tag: tag})
		}
	}
	return out
}

// embeddedName returns the implicit field name of an embedded type.
func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	}
	return ""
}
