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
	"time"
)

// DatetimeFormat is the display format of datetime cells
const DatetimeFormat = "2006-01-02 15:04:05"

// dateParseFormats lists formats to try when parsing datetime strings, in order of preference.
var dateParseFormats = []string{
	time.RFC3339Nano,      // 2006-01-02T15:04:05.999999999Z07:00
	time.RFC3339,          // 2006-01-02T15:04:05Z07:00
	"2006-01-02T15:04:05", // ISO without timezone
	"2006-01-02 15:04:05", // Space separator
	"2006-01-02",          // Date only (midnight)
	"2006/01/02",          // YYYY/MM/DD
	"02-Jan-2006",         // DD-Mon-YYYY
	"Jan 2, 2006",         // Natural format
}

// DatetimeColumn stores instants. Raw values are time.Time in UTC, formatted
// values use DatetimeFormat, so two instants in the same second group
// separately but display alike.
type DatetimeColumn struct {
	columnDef *ColumnDef
	data      []time.Time
	valid     []bool
	location  *time.Location
}

// NewDatetimeColumn creates an empty datetime column. Strings without a zone
// and displayed values use loc, UTC when nil.
func NewDatetimeColumn(columnDef *ColumnDef, loc *time.Location) *DatetimeColumn {
	if loc == nil {
		loc = time.UTC
	}
	return &DatetimeColumn{
		columnDef: columnDef,
		location:  loc,
	}
}

func (c *DatetimeColumn) ColumnDef() *ColumnDef {
	return c.columnDef
}

func (c *DatetimeColumn) Length() int {
	return len(c.data)
}

func (c *DatetimeColumn) Append(value time.Time) {
	c.data = append(c.data, value.UTC())
	c.valid = append(c.valid, true)
}

func (c *DatetimeColumn) AppendNull() {
	c.data = append(c.data, time.Time{})
	c.valid = append(c.valid, false)
}

// AppendString parses s with ParseDatetime. The empty string is a null.
func (c *DatetimeColumn) AppendString(s string) error {
	if strings.TrimSpace(s) == "" {
		c.AppendNull()
		return nil
	}
	t, err := ParseDatetime(s, c.location)
	if err != nil {
		return err
	}
	c.Append(t)
	return nil
}

func (c *DatetimeColumn) GetValue(i uint32) (any, error) {
	if int(i) >= len(c.data) {
		return nil, outOfBounds(i, len(c.data))
	}
	if !c.valid[i] {
		return nil, nil
	}
	return c.data[i], nil
}

func (c *DatetimeColumn) GetString(i uint32) (string, error) {
	if int(i) >= len(c.data) {
		return "", outOfBounds(i, len(c.data))
	}
	if !c.valid[i] {
		return "", nil
	}
	return c.data[i].In(c.location).Format(DatetimeFormat), nil
}

func (c *DatetimeColumn) Compare(i, j uint32) int {
	if n, done := compareNulls(c.valid[i], c.valid[j]); done {
		return n
	}
	return c.data[i].Compare(c.data[j])
}

// ParseDatetime parses s with the first matching layout of dateParseFormats.
// Layouts without a zone are read in loc, UTC when nil.
func ParseDatetime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.UTC
	}
	for _, format := range dateParseFormats {
		if t, err := time.ParseInLocation(format, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as datetime", s)
}
