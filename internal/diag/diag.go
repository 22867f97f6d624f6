// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package diag collects positioned generation diagnostics.
//
// Every generator style reports configuration and shape problems through
// this package. A diagnostic only stops generation for the record it is
// attached to.
package diag

import (
	"cmp"
	"fmt"
	"go/token"
	"slices"
	"strings"
)

// Diagnostic is a single positioned problem found while generating.
type Diagnostic struct {
	// Pos is where the problem was found.
	Pos token.Position

	// Style is the generator style that reported it (e.g. "attr").
	Style string

	// Key is the configuration key at fault, if any (e.g. "content").
	Key string

	// Msg is the human-readable message.
	Msg string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}
	if d.Style != "" {
		b.WriteString(d.Style)
		b.WriteString(": ")
	}
	b.WriteString(d.Msg)
	return b.String()
}

// List is an ordered set of diagnostics.
type List []Diagnostic

// Add appends a diagnostic.
func (l *List) Add(pos token.Position, style, key, msg string) {
	*l = append(*l, Diagnostic{Pos: pos, Style: style, Key: key, Msg: msg})
}

// Addf appends a diagnostic with a formatted message.
func (l *List) Addf(pos token.Position, style, key, format string, args ...any) {
	l.Add(pos, style, key, fmt.Sprintf(format, args...))
}

// Missing reports a required configuration key that is absent.
func (l *List) Missing(pos token.Position, style, key string) {
	l.Addf(pos, style, key, "missing field %q", key)
}

// Unknown reports a configuration key the style does not accept.
func (l *List) Unknown(pos token.Position, style, key string) {
	l.Addf(pos, style, key, "unknown field %q", key)
}

// Duplicate reports a configuration key given more than once.
func (l *List) Duplicate(pos token.Position, style, key string) {
	l.Addf(pos, style, key, "duplicate field %q", key)
}

// Invalid reports a configuration key with a malformed value.
func (l *List) Invalid(pos token.Position, style, key string, err error) {
	l.Addf(pos, style, key, "invalid value for %q: %v", key, err)
}

// Append adds all diagnostics of other.
func (l *List) Append(other List) {
	*l = append(*l, other...)
}

// Len returns the number of diagnostics.
func (l List) Len() int { return len(l) }

// Sort orders diagnostics by file, line and column.
func (l List) Sort() {
	slices.SortStableFunc(l, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Pos.Filename, b.Pos.Filename),
			cmp.Compare(a.Pos.Line, b.Pos.Line),
			cmp.Compare(a.Pos.Column, b.Pos.Column),
		)
	})
}

// Keys returns the configuration keys named by the diagnostics, in order.
func (l List) Keys() []string {
	var keys []string
	for _, d := range l {
		if d.Key != "" {
			keys = append(keys, d.Key)
		}
	}
	return keys
}

// Error implements the error interface.
func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no diagnostics"
	case 1:
		return l[0].String()
	}
	return fmt.Sprintf("%s (and %d more diagnostics)", l[0], len(l)-1)
}

// Err returns l as an error, or nil when it is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
