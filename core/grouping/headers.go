/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package grouping

import (
	"github.com/google/grouplist/core/columns"
)

// Header describes a column header of the list. Clicking a header toggles its
// column in the selection; how the click is delivered is up to the renderer.
type Header struct {
	Column    *columns.ColumnDef
	IsGrouped bool
}

// Headers returns one header per column, in column order
func Headers(cols []*columns.ColumnDef, selection Selection) []Header {
	headers := make([]Header, len(cols))
	for i, c := range cols {
		headers[i] = Header{
			Column:    c,
			IsGrouped: selection.Contains(c.Name()),
		}
	}
	return headers
}
