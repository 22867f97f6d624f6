// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package derive2

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertocavalcante/greetgen/generator"
	"github.com/albertocavalcante/greetgen/internal/diag"
	"github.com/albertocavalcante/greetgen/model"
)

func person(extra ...model.Directive) *model.Record {
	return &model.Record{
		Name: "Person",
		Kind: model.KindStruct,
		Fields: []model.Field{
			{Name: "name", Type: "string"},
			{Name: "age", Type: "uint32"},
		},
		Directives: append([]model.Directive{{Namespace: "greet", Verb: Name}}, extra...),
	}
}

func config(verb string, args ...model.Arg) model.Directive {
	return model.Directive{Namespace: Companion, Verb: verb, Args: args}
}

func TestGenerate(t *testing.T) {
	content := "Hello, my name is {name}  and I a {age} years old."
	out, err := NewGenerator().Generate(context.Background(),
		person(config(ConfigVerb, model.Arg{Key: "content", Value: content})), generator.Config{})
	require.NoError(t, err)
	assert.False(t, out.Redeclare)
	assert.Equal(t, content, out.Template)
}

func TestGenerate_Diagnostics(t *testing.T) {
	tests := []struct {
		name string
		rec  *model.Record
		want string
	}{
		{
			name: "missing companion",
			rec:  person(),
			want: "derive2: Person: missing attribute greet2",
		},
		{
			name: "duplicate companion",
			rec: person(
				config(ConfigVerb, model.Arg{Key: "content", Value: "a"}),
				config(ConfigVerb, model.Arg{Key: "content", Value: "b"}),
			),
			want: "derive2: Person: duplicate attribute greet2",
		},
		{
			name: "wrong verb",
			rec:  person(config("settings", model.Arg{Key: "content", Value: "a"})),
			want: "derive2: Person: unknown attribute //greet2:settings",
		},
		{
			name: "missing content",
			rec:  person(config(ConfigVerb)),
			want: `derive2: missing field "content"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator().Generate(context.Background(), tt.rec, generator.Config{})
			var diags diag.List
			require.ErrorAs(t, err, &diags)
			require.Len(t, diags, 1)
			assert.Equal(t, tt.want, diags[0].String())
		})
	}
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)

	g := NewGenerator(WithDump(logger))
	_, err := g.Generate(context.Background(),
		person(config(ConfigVerb, model.Arg{Key: "content", Value: "{name}"})), generator.Config{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"record":"Person"`)
	assert.Contains(t, buf.String(), `"message":"derive2 input"`)
	assert.Contains(t, buf.String(), `"level":"info"`)
}
