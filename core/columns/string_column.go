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
	"strings"
)

// StringColumn stores strings as-is. Raw and formatted values are identical.
type StringColumn struct {
	columnDef *ColumnDef
	data      []string
}

// NewStringColumn creates an empty string column
func NewStringColumn(columnDef *ColumnDef) *StringColumn {
	return &StringColumn{
		columnDef: columnDef,
		data:      make([]string, 0),
	}
}

func (c *StringColumn) Append(value string) {
	c.data = append(c.data, value)
}

// AppendString never fails for string columns
func (c *StringColumn) AppendString(s string) error {
	c.Append(s)
	return nil
}

func (c *StringColumn) Length() int {
	return len(c.data)
}

func (c *StringColumn) ColumnDef() *ColumnDef {
	return c.columnDef
}

func (c *StringColumn) GetValue(i uint32) (any, error) {
	if i >= uint32(len(c.data)) {
		return nil, outOfBounds(i, len(c.data))
	}
	return c.data[i], nil
}

func (c *StringColumn) GetString(i uint32) (string, error) {
	if i >= uint32(len(c.data)) {
		return "", outOfBounds(i, len(c.data))
	}
	return c.data[i], nil
}

func (c *StringColumn) Compare(i, j uint32) int {
	return strings.Compare(c.data[i], c.data[j])
}
