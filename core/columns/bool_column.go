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
	"strings"
)

// BoolColumn stores booleans. Raw values are bool, formatted values are "Yes"/"No".
type BoolColumn struct {
	columnDef *ColumnDef
	data      []bool
	valid     []bool
}

func NewBoolColumn(columnDef *ColumnDef) *BoolColumn {
	return &BoolColumn{
		columnDef: columnDef,
	}
}

func (c *BoolColumn) ColumnDef() *ColumnDef {
	return c.columnDef
}

func (c *BoolColumn) Length() int {
	return len(c.data)
}

func (c *BoolColumn) Append(value bool) {
	c.data = append(c.data, value)
	c.valid = append(c.valid, true)
}

func (c *BoolColumn) AppendNull() {
	c.data = append(c.data, false)
	c.valid = append(c.valid, false)
}

// AppendString parses and adds a boolean from a string. The empty string is a null.
func (c *BoolColumn) AppendString(s string) error {
	if strings.TrimSpace(s) == "" {
		c.AppendNull()
		return nil
	}
	b, err := ParseBool(s)
	if err != nil {
		return err
	}
	c.Append(b)
	return nil
}

// ParseBool parses a string to a boolean value.
// Accepts: "true", "false", "yes", "no", "t", "f", "y", "n" (case-insensitive).
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "t", "y":
		return true, nil
	case "false", "no", "f", "n":
		return false, nil
	default:
		return false, fmt.Errorf("cannot parse %q as boolean", s)
	}
}

func (c *BoolColumn) GetValue(i uint32) (any, error) {
	if int(i) >= len(c.data) {
		return nil, outOfBounds(i, len(c.data))
	}
	if !c.valid[i] {
		return nil, nil
	}
	return c.data[i], nil
}

func (c *BoolColumn) GetString(i uint32) (string, error) {
	if int(i) >= len(c.data) {
		return "", outOfBounds(i, len(c.data))
	}
	if !c.valid[i] {
		return "", nil
	}
	if c.data[i] {
		return "Yes", nil
	}
	return "No", nil
}

// Compare orders nulls, then false, then true
func (c *BoolColumn) Compare(i, j uint32) int {
	if n, done := compareNulls(c.valid[i], c.valid[j]); done {
		return n
	}
	a, b := c.data[i], c.data[j]
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}
