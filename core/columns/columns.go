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

package columns

import (
	"fmt"
)

// DefaultVisualWeight is used when a data source does not provide a sizing hint.
const DefaultVisualWeight = 100

// ErrorLabel is displayed in place of a value that could not be read.
const ErrorLabel = "#ERR"

// ColumnDef describes a column independently of its data.
type ColumnDef struct {
	name         string // must not contain any of the following characters: & = : ,
	displayName  string
	visualWeight int
}

// NewColumnDef creates a new ColumnDef. A non-positive visual weight is
// replaced by DefaultVisualWeight.
func NewColumnDef(name, displayName string, visualWeight int) *ColumnDef {
	if displayName == "" {
		displayName = name
	}
	if visualWeight <= 0 {
		visualWeight = DefaultVisualWeight
	}
	return &ColumnDef{
		name:         name,
		displayName:  displayName,
		visualWeight: visualWeight,
	}
}

func (cd *ColumnDef) Name() string {
	return cd.name
}

func (cd *ColumnDef) DisplayName() string {
	return cd.displayName
}

// VisualWeight is a sizing hint for renderers. It has no meaning for grouping.
func (cd *ColumnDef) VisualWeight() int {
	return cd.visualWeight
}

// IDataColumn is implemented by all typed columns.
//
// GetValue returns the raw value (nil when the cell is empty) and GetString
// returns the display-ready value.
type IDataColumn interface {
	ColumnDef() *ColumnDef
	Length() int
	GetValue(i uint32) (any, error)
	GetString(i uint32) (string, error)
	AppendString(s string) error
	Compare(i, j uint32) int
}

func outOfBounds(i uint32, length int) error {
	return fmt.Errorf("index %d out of bounds (length: %d)", i, length)
}
