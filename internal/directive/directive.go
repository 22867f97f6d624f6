// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package directive parses greetgen directive comments.
//
// A directive is a line comment of the form
//
//	//namespace:verb key="value" key2=bare
//
// with no space between the slashes and the namespace, following the
// convention of //go: directives. Arguments are separated by spaces or
// commas. Values are bare words or Go string literals.
package directive

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/albertocavalcante/greetgen/internal/diag"
	"github.com/albertocavalcante/greetgen/model"
)

// Style used for diagnostics raised while parsing directive text.
const Style = "directive"

// ArgError is a malformed directive argument.
type ArgError struct {
	// Key is the argument key, when it could be read.
	Key string
	// Offset is the byte offset of the argument within the directive text.
	Offset int
	Err    error
}

func (e *ArgError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("argument %q: %v", e.Key, e.Err)
	}
	return e.Err.Error()
}

func (e *ArgError) Unwrap() error { return e.Err }

var (
	errExpectKeyValue = errors.New("expected key=value")
	errUnterminated   = errors.New("unterminated string literal")
)

// Split reports whether text is a directive comment in one of namespaces.
// It returns the namespace, the verb, the argument text and the offset of
// the argument text within text.
func Split(text string, namespaces []string) (ns, verb, args string, offset int, ok bool) {
	body, found := strings.CutPrefix(text, "//")
	if !found {
		return "", "", "", 0, false
	}
	head := body
	if i := strings.IndexAny(body, " \t"); i >= 0 {
		head = body[:i]
	}
	ns, verb, found = strings.Cut(head, ":")
	if !found || verb == "" || !isWord(verb) {
		return "", "", "", 0, false
	}
	known := false
	for _, n := range namespaces {
		if n == ns {
			known = true
			break
		}
	}
	if !known {
		return "", "", "", 0, false
	}
	offset = 2 + len(head)
	return ns, verb, text[offset:], offset, true
}

// ParseArgs parses the argument text of a directive. Positions in the
// returned args are byte offsets relative to the start of args.
func ParseArgs(args string) ([]model.Arg, error) {
	var out []model.Arg
	i := 0
	for {
		for i < len(args) && (args[i] == ' ' || args[i] == '\t' || args[i] == ',') {
			i++
		}
		if i >= len(args) {
			return out, nil
		}
		start := i
		for i < len(args) && args[i] != '=' && args[i] != ' ' && args[i] != '\t' && args[i] != ',' {
			i++
		}
		key := args[start:i]
		if i >= len(args) || args[i] != '=' || key == "" || !isWord(key) {
			return out, &ArgError{Key: key, Offset: start, Err: errExpectKeyValue}
		}
		i++ // '='

		value, n, err := readValue(args[i:])
		if err != nil {
			return out, &ArgError{Key: key, Offset: start, Err: err}
		}
		out = append(out, model.Arg{Key: key, Value: value, Pos: token.Position{Offset: start}})
		i += n
	}
}

// readValue reads one value from the front of s and returns it along with
// the number of bytes consumed.
func readValue(s string) (string, int, error) {
	if s == "" {
		return "", 0, nil
	}
	switch s[0] {
	case '"':
		for j := 1; j < len(s); j++ {
			switch s[j] {
			case '\\':
				j++
			case '"':
				v, err := strconv.Unquote(s[:j+1])
				if err != nil {
					return "", 0, err
				}
				return v, j + 1, nil
			}
		}
		return "", 0, errUnterminated
	case '`':
		end := strings.IndexByte(s[1:], '`')
		if end < 0 {
			return "", 0, errUnterminated
		}
		return s[1 : end+1], end + 2, nil
	}
	n := strings.IndexAny(s, " \t,")
	if n < 0 {
		n = len(s)
	}
	return s[:n], n, nil
}

func isWord(s string) bool {
	for _, r := range s {
		if !(r == '_' || r == '-' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return s != ""
}

// Parse extracts directives from a doc comment. It returns the directives,
// the remaining doc comment lines verbatim, and diagnostics for malformed
// directive lines. A nil comment group yields nothing.
func Parse(fset *token.FileSet, cg *ast.CommentGroup, namespaces []string) ([]model.Directive, []string, diag.List) {
	if cg == nil {
		return nil, nil, nil
	}
	var (
		dirs  []model.Directive
		doc   []string
		diags diag.List
	)
	for _, c := range cg.List {
		ns, verb, rest, offset, ok := Split(c.Text, namespaces)
		if !ok {
			doc = append(doc, c.Text)
			continue
		}
		pos := fset.Position(c.Slash)
		args, err := ParseArgs(rest)
		if err != nil {
			at := pos
			key := ""
			var ae *ArgError
			if errors.As(err, &ae) {
				at.Column += offset + ae.Offset
				at.Offset += offset + ae.Offset
				key = ae.Key
			}
			diags.Add(at, Style, key, fmt.Sprintf("//%s:%s: %v", ns, verb, err))
			continue
		}
		for i := range args {
			p := pos
			p.Column += offset + args[i].Pos.Offset
			p.Offset += offset + args[i].Pos.Offset
			args[i].Pos = p
		}
		dirs = append(dirs, model.Directive{Namespace: ns, Verb: verb, Args: args, Pos: pos})
	}
	return dirs, doc, diags
}
