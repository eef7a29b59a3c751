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
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewColumnDefDefaults(t *testing.T) {
	def := NewColumnDef("status", "", 0)
	if def.DisplayName() != "status" {
		t.Errorf("DisplayName() = %q, want %q", def.DisplayName(), "status")
	}
	if def.VisualWeight() != DefaultVisualWeight {
		t.Errorf("VisualWeight() = %d, want %d", def.VisualWeight(), DefaultVisualWeight)
	}

	def = NewColumnDef("amount", "Amount", 80)
	if def.Name() != "amount" || def.DisplayName() != "Amount" || def.VisualWeight() != 80 {
		t.Errorf("unexpected column def: %q %q %d", def.Name(), def.DisplayName(), def.VisualWeight())
	}
}

func TestRawAndFormattedValues(t *testing.T) {
	tests := []struct {
		name          string
		column        IDataColumn
		input         string
		wantRaw       any
		wantFormatted string
	}{
		{"string", NewStringColumn(NewColumnDef("s", "", 0)), "Open", "Open", "Open"},
		{"int", NewInt64Column(NewColumnDef("i", "", 0), nil), "1234567", int64(1234567), "1,234,567"},
		{"int null", NewInt64Column(NewColumnDef("i", "", 0), nil), "", nil, ""},
		{"bool", NewBoolColumn(NewColumnDef("b", "", 0)), "yes", true, "Yes"},
		{"bool false", NewBoolColumn(NewColumnDef("b", "", 0)), "F", false, "No"},
		{"bool null", NewBoolColumn(NewColumnDef("b", "", 0)), " ", nil, ""},
		{"decimal null", NewDecimalColumn(NewColumnDef("d", "", 0), nil), "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.column.AppendString(tt.input); err != nil {
				t.Fatalf("AppendString(%q) failed: %v", tt.input, err)
			}
			raw, err := tt.column.GetValue(0)
			if err != nil {
				t.Fatalf("GetValue failed: %v", err)
			}
			if raw != tt.wantRaw {
				t.Errorf("GetValue(0) = %#v, want %#v", raw, tt.wantRaw)
			}
			formatted, err := tt.column.GetString(0)
			if err != nil {
				t.Fatalf("GetString failed: %v", err)
			}
			if formatted != tt.wantFormatted {
				t.Errorf("GetString(0) = %q, want %q", formatted, tt.wantFormatted)
			}
		})
	}
}

func TestDecimalColumnRawDiffersFromFormatted(t *testing.T) {
	col := NewDecimalColumn(NewColumnDef("amount", "Amount", 0), nil)
	if err := col.AppendString("12.5"); err != nil {
		t.Fatalf("AppendString failed: %v", err)
	}

	raw, _ := col.GetValue(0)
	d, ok := raw.(decimal.Decimal)
	if !ok {
		t.Fatalf("raw value has type %T, want decimal.Decimal", raw)
	}
	if d.String() != "12.5" {
		t.Errorf("raw value = %s, want 12.5", d.String())
	}
	if s, _ := col.GetString(0); s != "12.50" {
		t.Errorf("formatted value = %q, want %q", s, "12.50")
	}
}

func TestAppendStringRejectsInvalidInput(t *testing.T) {
	if err := NewInt64Column(NewColumnDef("i", "", 0), nil).AppendString("abc"); err == nil {
		t.Error("expected error for non-integer input")
	}
	if err := NewDecimalColumn(NewColumnDef("d", "", 0), nil).AppendString("1.2.3"); err == nil {
		t.Error("expected error for invalid decimal input")
	}
	if err := NewBoolColumn(NewColumnDef("b", "", 0)).AppendString("maybe"); err == nil {
		t.Error("expected error for invalid boolean input")
	}
}

func TestGetValueOutOfBounds(t *testing.T) {
	col := NewStringColumn(NewColumnDef("s", "", 0))
	if _, err := col.GetValue(0); err == nil {
		t.Error("expected out of bounds error")
	}
	if _, err := col.GetString(3); err == nil {
		t.Error("expected out of bounds error")
	}
}

func TestCompareNullsFirst(t *testing.T) {
	col := NewInt64Column(NewColumnDef("i", "", 0), nil)
	for _, s := range []string{"5", "", "3"} {
		if err := col.AppendString(s); err != nil {
			t.Fatalf("AppendString(%q) failed: %v", s, err)
		}
	}
	if got := CompareAtIndex(col, 1, 0); got != -1 {
		t.Errorf("null vs 5 = %d, want -1", got)
	}
	if got := CompareAtIndex(col, 0, 2); got != 1 {
		t.Errorf("5 vs 3 = %d, want 1", got)
	}
	if got := CompareAtIndex(col, 1, 1); got != 0 {
		t.Errorf("null vs null = %d, want 0", got)
	}
}

func TestNewFormatterRejectsInvalidLocale(t *testing.T) {
	if _, err := NewFormatter("not a locale!"); err == nil {
		t.Error("expected error for invalid locale")
	}
	f, err := NewFormatter("en-US")
	if err != nil {
		t.Fatalf("NewFormatter failed: %v", err)
	}
	if f.Locale() != "en-US" {
		t.Errorf("Locale() = %q, want en-US", f.Locale())
	}
}
