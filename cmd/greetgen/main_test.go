// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSrc = `package people

//greet:derive
type Person struct {
	Name string
	Age  int
}
`

func writePackage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRun_Writes(t *testing.T) {
	dir := writePackage(t, map[string]string{"person.go": personSrc})

	_, stderr, err := execute(t, "--log-format", "json", dir)
	require.NoError(t, err, stderr)

	got, err := os.ReadFile(filepath.Join(dir, "greet_generated.go"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "// Code generated by greetgen. DO NOT EDIT.")
	assert.Contains(t, string(got), "func (p Person) Greet() {")
	assert.Contains(t, stderr, `"message":"wrote generated file"`)
}

func TestRun_DryRun(t *testing.T) {
	dir := writePackage(t, map[string]string{"person.go": personSrc})

	stdout, _, err := execute(t, "--dry-run", "--pointer-receiver", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "func (p *Person) Greet() {")
	assert.NoFileExists(t, filepath.Join(dir, "greet_generated.go"))
}

func TestRun_OutputName(t *testing.T) {
	dir := writePackage(t, map[string]string{"person.go": personSrc})

	_, _, err := execute(t, "-o", "hello.go", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "hello.go"))
}

func TestRun_Diagnostics(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"person.go": personSrc,
		"robot.go": `package people

//greet:attr content="Beep {name}"
type Robot struct{ name string; age int }
`,
	})

	_, stderr, err := execute(t, "--log-level", "error", dir)
	assert.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stderr, "robot.go:3:1: attr: Robot: requires a file constrained by //go:build greetgen")

	got, err := os.ReadFile(filepath.Join(dir, "greet_generated.go"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "func (p Person) Greet() {")
	assert.NotContains(t, string(got), "Robot")
}

func TestRun_ConfigFile(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"person.go":     personSrc,
		"greetgen.yaml": "output: from_config.go\n",
	})

	_, _, err := execute(t, dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "from_config.go"))
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := writePackage(t, map[string]string{"person.go": personSrc})

	_, _, err := execute(t, "-o", "out.txt", dir)
	assert.ErrorContains(t, err, "non-test .go file")
}

func TestStyles(t *testing.T) {
	stdout, _, err := execute(t, "styles")
	require.NoError(t, err)
	for _, name := range []string{"attr", "derive", "derive2", "expand"} {
		assert.Contains(t, stdout, name)
	}
	assert.Contains(t, stdout, "template file")
	assert.Contains(t, stdout, "derive2  v1.0.0")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev (commit: unknown")
}

func TestRun_DumpAtDefaultLevel(t *testing.T) {
	dir := writePackage(t, map[string]string{"robot.go": `package robots

//greet:derive2
//greet2:config content="Beep {name} {age}"
type Robot struct {
	Name string
	Age  int
}
`})

	_, stderr, err := execute(t, "--dump", "--dry-run", "--log-format", "json", dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"message":"derive2 input"`)
	assert.Contains(t, stderr, `"record":"Robot"`)
}

func TestRun_RemovesStaleOutput(t *testing.T) {
	dir := writePackage(t, map[string]string{"person.go": personSrc})
	out := filepath.Join(dir, "greet_generated.go")

	_, _, err := execute(t, dir)
	require.NoError(t, err)
	require.FileExists(t, out)

	plain := strings.Replace(personSrc, "//greet:derive\n", "", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "person.go"), []byte(plain), 0o644))

	_, _, err = execute(t, dir)
	require.NoError(t, err)
	assert.NoFileExists(t, out)
}

func TestRun_RemovesStaleOutputOnDiagnostics(t *testing.T) {
	dir := writePackage(t, map[string]string{"person.go": personSrc})
	out := filepath.Join(dir, "greet_generated.go")

	_, _, err := execute(t, dir)
	require.NoError(t, err)

	broken := strings.Replace(personSrc, "Age  int\n", "", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "person.go"), []byte(broken), 0o644))

	_, stderr, err := execute(t, "--log-level", "error", dir)
	assert.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stderr, `missing field "age"`)
	assert.NoFileExists(t, out)
}

func TestRun_KeepsHandwrittenOutput(t *testing.T) {
	handwritten := "package people\n\nfunc Hello() {}\n"
	dir := writePackage(t, map[string]string{
		"people.go":          "package people\n",
		"greet_generated.go": handwritten,
	})

	_, _, err := execute(t, dir)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "greet_generated.go"))
	require.NoError(t, err)
	assert.Equal(t, handwritten, string(got))
}

func TestRun_DryRunKeepsStaleOutput(t *testing.T) {
	stale := "// Code generated by greetgen. DO NOT EDIT.\n\npackage people\n"
	dir := writePackage(t, map[string]string{
		"people.go":          "package people\n",
		"greet_generated.go": stale,
	})

	_, _, err := execute(t, "--dry-run", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "greet_generated.go"))
}
