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

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter produces display strings for typed values in a given locale.
// Columns hold a Formatter so that the formatted value of a cell is fixed
// when the data is loaded.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter creates a Formatter for a BCP 47 locale such as "en-US" or "de".
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}, nil
}

// DefaultFormatter formats values for English.
func DefaultFormatter() *Formatter {
	return &Formatter{
		tag:     language.English,
		printer: message.NewPrinter(language.English),
	}
}

// Locale returns the formatter's language tag
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Int formats v with locale digit grouping
func (f *Formatter) Int(v int64) string {
	return f.printer.Sprintf("%d", v)
}

// Decimal formats d with exactly places fraction digits and locale digit grouping
func (f *Formatter) Decimal(d decimal.Decimal, places int32) string {
	return f.printer.Sprint(number.Decimal(d.Round(places).InexactFloat64(), number.Scale(int(places))))
}
