// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import "github.com/albertocavalcante/greetgen/model"

// Output describes the code to emit for one record.
type Output struct {
	// Record is the annotated record.
	Record *model.Record

	// Style is the name of the style that produced this output.
	Style string

	// Redeclare emits the record's declaration before the method.
	Redeclare bool

	// Template is the validated greeting template.
	Template string
}
