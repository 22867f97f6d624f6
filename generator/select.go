// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"go/token"

	"github.com/albertocavalcante/greetgen/internal/diag"
	"github.com/albertocavalcante/greetgen/model"
)

// Select narrows records to the named types, keeping source order.
// An empty filter selects everything. Names with no matching record are
// reported.
func Select(records []*model.Record, types []string) ([]*model.Record, diag.List) {
	if len(types) == 0 {
		return records, nil
	}

	filter := make(map[string]bool, len(types))
	for _, t := range types {
		filter[t] = true
	}

	var (
		selected []*model.Record
		seen     = make(map[string]bool)
	)
	for _, r := range records {
		if filter[r.Name] {
			selected = append(selected, r)
			seen[r.Name] = true
		}
	}

	var diags diag.List
	for _, t := range types {
		if !seen[t] {
			diags.Addf(token.Position{}, "", "", "type %s has no greet directive", t)
			seen[t] = true
		}
	}
	return selected, diags
}
