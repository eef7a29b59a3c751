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

// Package filtering selects the records of a dataset with boolean expressions
// such as `status == "Open" and priority != "Low"`.
package filtering

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/grouplist/core/columns"
	"github.com/google/grouplist/core/tables"
	"github.com/hashicorp/go-bexpr"
	"github.com/shopspring/decimal"
)

// Filter evaluates an expression against the raw values of a record.
// The zero Filter matches every record.
type Filter struct {
	expression string
	evaluator  *bexpr.Evaluator
	columns    []*columns.ColumnDef
}

// New parses expression. Selectors in the expression are column names of cols.
// An empty expression matches every record.
func New(expression string, cols []*columns.ColumnDef) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return &Filter{}, nil
	}
	evaluator, err := bexpr.CreateEvaluator(expression)
	if err != nil {
		return nil, fmt.Errorf("error parsing filter expression '%s': %w", expression, err)
	}
	return &Filter{
		expression: expression,
		evaluator:  evaluator,
		columns:    cols,
	}, nil
}

// Expression returns the expression the filter was created from
func (f *Filter) Expression() string {
	return f.expression
}

// Match implements tables.RecordFilter
func (f *Filter) Match(r tables.Record) (bool, error) {
	if f.evaluator == nil {
		return true, nil
	}
	vars := f.vars(r)
	ok, err := f.evaluator.Evaluate(vars)
	if err != nil {
		return false, fmt.Errorf(
			"error evaluating filter '%s': %w, input values: %s",
			f.expression, err, stringify(vars),
		)
	}
	return ok, nil
}

// vars exposes the raw values of r by column name. Values the evaluator
// cannot compare are converted: decimals to float64, missing values to "".
func (f *Filter) vars(r tables.Record) map[string]any {
	vars := make(map[string]any, len(f.columns))
	for _, c := range f.columns {
		switch v := r.RawValue(c.Name()).(type) {
		case nil:
			vars[c.Name()] = ""
		case decimal.Decimal:
			vars[c.Name()] = v.InexactFloat64()
		default:
			vars[c.Name()] = v
		}
	}
	return vars
}

func stringify(obj any) string {
	b, err := json.Marshal(obj)
	if err != nil {
		b = []byte(fmt.Sprintf("%+v", obj))
	}
	return string(b)
}
