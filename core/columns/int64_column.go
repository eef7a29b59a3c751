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
	"strconv"
	"strings"
)

// Int64Column stores signed integers. Empty cells are kept as nulls.
// The formatted value uses locale digit grouping, the raw value does not.
type Int64Column struct {
	columnDef *ColumnDef
	formatter *Formatter
	data      []int64
	valid     []bool
}

// NewInt64Column creates an empty int64 column. A nil formatter falls back to
// DefaultFormatter.
func NewInt64Column(columnDef *ColumnDef, formatter *Formatter) *Int64Column {
	if formatter == nil {
		formatter = DefaultFormatter()
	}
	return &Int64Column{
		columnDef: columnDef,
		formatter: formatter,
	}
}

func (c *Int64Column) ColumnDef() *ColumnDef {
	return c.columnDef
}

func (c *Int64Column) Length() int {
	return len(c.data)
}

func (c *Int64Column) Append(value int64) {
	c.data = append(c.data, value)
	c.valid = append(c.valid, true)
}

// AppendNull adds an empty cell
func (c *Int64Column) AppendNull() {
	c.data = append(c.data, 0)
	c.valid = append(c.valid, false)
}

// AppendString parses s as a base 10 integer. The empty string is a null.
func (c *Int64Column) AppendString(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		c.AppendNull()
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("cannot parse %q as int64: %w", s, err)
	}
	c.Append(v)
	return nil
}

func (c *Int64Column) GetValue(i uint32) (any, error) {
	if int(i) >= len(c.data) {
		return nil, outOfBounds(i, len(c.data))
	}
	if !c.valid[i] {
		return nil, nil
	}
	return c.data[i], nil
}

func (c *Int64Column) GetString(i uint32) (string, error) {
	if int(i) >= len(c.data) {
		return "", outOfBounds(i, len(c.data))
	}
	if !c.valid[i] {
		return "", nil
	}
	return c.formatter.Int(c.data[i]), nil
}

// Compare orders nulls first
func (c *Int64Column) Compare(i, j uint32) int {
	if n, done := compareNulls(c.valid[i], c.valid[j]); done {
		return n
	}
	switch {
	case c.data[i] < c.data[j]:
		return -1
	case c.data[i] > c.data[j]:
		return 1
	}
	return 0
}
