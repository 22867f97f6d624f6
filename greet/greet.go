// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package greet is the runtime used by code generated with greetgen.
//
// A greeting template is plain text with two named placeholders, {name} and
// {age}. Generated Greet methods hold a parsed [Template] in a package-level
// variable and call [Template.Println] with the record's fields.
//
// The template language has no escapes, loops or conditionals. An opening
// brace always starts a placeholder; a closing brace on its own is literal.
package greet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultTemplate is used when a record is annotated without a content
// argument.
const DefaultTemplate = "Hello, my name is {name} and I am {age} years old."

// Placeholder names recognized inside templates.
const (
	Name = "name"
	Age  = "age"
)

// Greeter is implemented by every type that greetgen attaches a Greet
// method to.
type Greeter interface {
	Greet()
}

// Template is a parsed greeting template. It is safe for concurrent use.
type Template struct {
	raw      string
	segments []segment
}

// segment is either literal text or a placeholder reference.
type segment struct {
	text        string
	placeholder string
}

// Error describes why a template failed to parse.
type Error struct {
	// Offset is the byte offset of the offending brace in the template.
	Offset int
	// Placeholder is set for unknown placeholders, including the braces.
	Placeholder string
	Msg         string
}

func (e *Error) Error() string {
	if e.Placeholder != "" {
		return fmt.Sprintf("offset %d: %s %q", e.Offset, e.Msg, e.Placeholder)
	}
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// ErrUnknownPlaceholder is matched by errors.Is for templates that reference
// anything other than {name} or {age}.
var ErrUnknownPlaceholder = errors.New("unknown placeholder")

// Is reports whether target is ErrUnknownPlaceholder for unknown-placeholder errors.
func (e *Error) Is(target error) bool {
	return target == ErrUnknownPlaceholder && e.Msg == ErrUnknownPlaceholder.Error()
}

// Parse parses s as a greeting template.
func Parse(s string) (*Template, error) {
	t := &Template{raw: s}
	var lit strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '{' {
			lit.WriteByte(c)
			continue
		}
		end := strings.IndexByte(s[i+1:], '}')
		if end < 0 {
			return nil, &Error{Offset: i, Msg: "unclosed placeholder"}
		}
		name := s[i+1 : i+1+end]
		if name != Name && name != Age {
			return nil, &Error{Offset: i, Placeholder: "{" + name + "}", Msg: ErrUnknownPlaceholder.Error()}
		}
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{text: lit.String()})
			lit.Reset()
		}
		t.segments = append(t.segments, segment{placeholder: name})
		i += end + 1
	}
	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{text: lit.String()})
	}
	return t, nil
}

// MustParse is like Parse but panics if s is not a valid template.
// Generated code only passes templates that were validated at generation time.
func MustParse(s string) *Template {
	t, err := Parse(s)
	if err != nil {
		panic("greet: MustParse(" + fmt.Sprintf("%q", s) + "): " + err.Error())
	}
	return t
}

// String returns the source text of the template.
func (t *Template) String() string {
	return t.raw
}

// Placeholders returns the placeholder names in order of appearance,
// including repeats.
func (t *Template) Placeholders() []string {
	var names []string
	for _, seg := range t.segments {
		if seg.placeholder != "" {
			names = append(names, seg.placeholder)
		}
	}
	return names
}

// Execute substitutes name and age into the template in a single pass.
func (t *Template) Execute(name, age any) string {
	var b strings.Builder
	for _, seg := range t.segments {
		switch seg.placeholder {
		case "":
			b.WriteString(seg.text)
		case Name:
			fmt.Fprint(&b, name)
		case Age:
			fmt.Fprint(&b, age)
		}
	}
	return b.String()
}

// Fprintln writes the filled-in template and a newline to w.
func (t *Template) Fprintln(w io.Writer, name, age any) error {
	_, err := io.WriteString(w, t.Execute(name, age)+"\n")
	return err
}

// Println writes the filled-in template and a newline to standard output.
func (t *Template) Println(name, age any) {
	_ = t.Fprintln(os.Stdout, name, age)
}

// Format parses tmpl and executes it with name and age.
func Format(tmpl string, name, age any) (string, error) {
	t, err := Parse(tmpl)
	if err != nil {
		return "", err
	}
	return t.Execute(name, age), nil
}
