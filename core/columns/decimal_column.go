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

	"github.com/shopspring/decimal"
)

// DecimalPlaces is the number of fraction digits shown for decimal values.
const DecimalPlaces = 2

// DecimalColumn stores exact decimal numbers such as amounts and prices.
//
// The raw value is the decimal.Decimal itself, which prints in its shortest
// form ("12.5"); the formatted value is fixed to DecimalPlaces digits with
// locale grouping ("12.50").
type DecimalColumn struct {
	columnDef *ColumnDef
	formatter *Formatter
	data      []decimal.Decimal
	valid     []bool
}

func NewDecimalColumn(columnDef *ColumnDef, formatter *Formatter) *DecimalColumn {
	if formatter == nil {
		formatter = DefaultFormatter()
	}
	return &DecimalColumn{
		columnDef: columnDef,
		formatter: formatter,
	}
}

func (c *DecimalColumn) ColumnDef() *ColumnDef {
	return c.columnDef
}

func (c *DecimalColumn) Length() int {
	return len(c.data)
}

func (c *DecimalColumn) Append(value decimal.Decimal) {
	c.data = append(c.data, value)
	c.valid = append(c.valid, true)
}

func (c *DecimalColumn) AppendNull() {
	c.data = append(c.data, decimal.Zero)
	c.valid = append(c.valid, false)
}

func (c *DecimalColumn) AppendString(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		c.AppendNull()
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("cannot parse %q as decimal: %w", s, err)
	}
	c.Append(d)
	return nil
}

func (c *DecimalColumn) GetValue(i uint32) (any, error) {
	if int(i) >= len(c.data) {
		return nil, outOfBounds(i, len(c.data))
	}
	if !c.valid[i] {
		return nil, nil
	}
	return c.data[i], nil
}

func (c *DecimalColumn) GetString(i uint32) (string, error) {
	if int(i) >= len(c.data) {
		return "", outOfBounds(i, len(c.data))
	}
	if !c.valid[i] {
		return "", nil
	}
	return c.formatter.Decimal(c.data[i], DecimalPlaces), nil
}

func (c *DecimalColumn) Compare(i, j uint32) int {
	if n, done := compareNulls(c.valid[i], c.valid[j]); done {
		return n
	}
	return c.data[i].Cmp(c.data[j])
}
