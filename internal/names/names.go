// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package names holds identifier helpers shared by the generators.
package names

import (
	"go/token"
	"unicode"
)

// Capitalize returns name with the first letter uppercased.
// Returns empty string for empty input.
func Capitalize(name string) string {
	if name == "" {
		return ""
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Receiver returns the receiver name for methods on typeName: the first
// letter, lowercased. Falls back to "r" when that letter would be a Go
// keyword or the blank identifier.
func Receiver(typeName string) string {
	if typeName == "" {
		return "r"
	}
	r := string(unicode.ToLower([]rune(typeName)[0]))
	if r == "_" || token.IsKeyword(r) || !token.IsIdentifier(r) {
		return "r"
	}
	return r
}

// GreetingVar returns the package-level variable holding the parsed
// template for typeName, in the stringer style (_Person_greeting).
func GreetingVar(typeName string) string {
	return "_" + typeName + "_greeting"
}
