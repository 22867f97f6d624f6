// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package emit renders generator outputs as a Go source file.
//
// Every style goes through the same path: an optional re-declaration of the
// record, a package-level parsed template, and a Greet method that fills the
// template with the record's name and age fields.
package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/imports"

	"github.com/albertocavalcante/greetgen/generator"
	"github.com/albertocavalcante/greetgen/greet"
	"github.com/albertocavalcante/greetgen/internal/names"
)

const (
	// RuntimeImport is the import path of the runtime used by generated code.
	RuntimeImport = "github.com/albertocavalcante/greetgen/greet"

	// RuntimeName is the name the runtime is imported under, kept clear of
	// names a host package would declare.
	RuntimeName = "_greet"
)

// DefaultTool is the tool named in the generated-code header.
const DefaultTool = "greetgen"

// Header returns the generated-code header line written by tool.
func Header(tool string) string {
	return "// Code generated by " + tool + ". DO NOT EDIT."
}

// IsGenerated reports whether src starts with the header written by tool.
func IsGenerated(src []byte, tool string) bool {
	return bytes.HasPrefix(src, []byte(Header(tool)))
}

// Options controls rendering.
type Options struct {
	// Tool is named in the generated-code header.
	// If empty, DefaultTool is used.
	Tool string

	// Filename is the output file name, used for formatting.
	Filename string

	// PointerReceiver declares Greet on *T instead of T.
	PointerReceiver bool
}

// File renders outs as a complete Go file in package pkg. Output is
// gofmt'd, and imports carried over from template files are pruned to the
// ones the re-declared records use.
func File(pkg string, outs []*generator.Output, opts Options) ([]byte, error) {
	if opts.Tool == "" {
		opts.Tool = DefaultTool
	}

	var buf bytes.Buffer
	buf.WriteString(Header(opts.Tool) + "\n\n")
	buf.WriteString("package " + pkg + "\n\n")

	if carried := carriedImports(outs); len(carried) > 0 {
		buf.WriteString("import (\n")
		fmt.Fprintf(&buf, "\t%s %q\n", RuntimeName, RuntimeImport)
		for _, spec := range carried {
			buf.WriteString("\t" + spec + "\n")
		}
		buf.WriteString(")\n\n")
	} else {
		fmt.Fprintf(&buf, "import %s %q\n\n", RuntimeName, RuntimeImport)
	}

	for _, out := range outs {
		buf.WriteString(Fragment(out, opts))
	}

	src, err := pruneImports(opts.Filename, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("prune imports: %w", err)
	}

	formatted, err := imports.Process(opts.Filename, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	return formatted, nil
}

// carriedImports returns the distinct import specs of template files whose
// records are re-declared, sorted.
func carriedImports(outs []*generator.Output) []string {
	var specs []string
	for _, out := range outs {
		if !out.Redeclare {
			continue
		}
		for _, spec := range out.Record.Imports {
			if !slices.Contains(specs, spec) && !strings.Contains(spec, strconv.Quote(RuntimeImport)) {
				specs = append(specs, spec)
			}
		}
	}
	slices.Sort(specs)
	return specs
}

// pruneImports removes imports the rendered file does not reference.
func pruneImports(filename string, src []byte) ([]byte, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	for _, spec := range slices.Clone(f.Imports) {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			return nil, err
		}
		name := ""
		if spec.Name != nil {
			name = spec.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		if !astutil.UsesImport(f, path) {
			astutil.DeleteNamedImport(fset, f, name, path)
		}
	}
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Fragment renders the declarations for a single output.
func Fragment(out *generator.Output, opts Options) string {
	rec := out.Record
	recv := names.Receiver(rec.Name)
	varName := names.GreetingVar(rec.Name)

	var buf bytes.Buffer
	if out.Redeclare {
		var doc []string
		for _, line := range rec.Doc {
			if !strings.HasPrefix(line, "//go:") {
				doc = append(doc, line)
			}
		}
		for len(doc) > 0 && strings.TrimSpace(doc[len(doc)-1]) == "//" {
			doc = doc[:len(doc)-1]
		}
		for _, line := range doc {
			buf.WriteString(line + "\n")
		}
		buf.WriteString("type " + rec.Source + "\n\n")
	}

	fmt.Fprintf(&buf, "var %s = %s.MustParse(%s)\n\n", varName, RuntimeName, strconv.Quote(out.Template))

	recvType := rec.Name
	if opts.PointerReceiver {
		recvType = "*" + rec.Name
	}
	nameField, _ := rec.Field(greet.Name)
	ageField, _ := rec.Field(greet.Age)

	fmt.Fprintf(&buf, "// Greet prints the greeting for %s to standard output.\n", rec.Name)
	fmt.Fprintf(&buf, "func (%s %s) Greet() {\n", recv, recvType)
	fmt.Fprintf(&buf, "\t%s.Println(%s.%s, %s.%s)\n", varName, recv, nameField.Name, recv, ageField.Name)
	buf.WriteString("}\n\n")
	return buf.String()
}
