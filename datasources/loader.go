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

// Package datasources provides a unified interface for loading data from
// various sources (CSV, protobuf) into tables, with optional per-column
// annotations.
package datasources

import (
	"fmt"

	"github.com/google/grouplist/core/columns"
	"github.com/google/grouplist/core/tables"
)

// ColumnType represents the data type of a column.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt64
	TypeDecimal
	TypeBool
	TypeDatetime
)

// String returns the string representation of the column type.
func (t ColumnType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt64:
		return "int64"
	case TypeDecimal:
		return "decimal"
	case TypeBool:
		return "bool"
	case TypeDatetime:
		return "datetime"
	default:
		return "unknown"
	}
}

// ParseColumnType is the inverse of ColumnType.String
func ParseColumnType(s string) (ColumnType, error) {
	for _, t := range []ColumnType{TypeString, TypeInt64, TypeDecimal, TypeBool, TypeDatetime} {
		if t.String() == s {
			return t, nil
		}
	}
	return TypeString, fmt.Errorf("unknown column type %q", s)
}

// ColumnSchema represents a single column's schema discovered from a data source.
type ColumnSchema struct {
	Name string
	Type ColumnType
}

// TableSchema represents the full table schema discovered from a data source.
type TableSchema struct {
	Columns []*ColumnSchema
}

// ColumnAnnotation overrides how a discovered column is presented.
// Empty fields keep the discovered value.
type ColumnAnnotation struct {
	Name         string `mapstructure:"name" validate:"required"`
	DisplayName  string `mapstructure:"display_name"`
	VisualWeight int    `mapstructure:"visual_weight" validate:"gte=0"`
	Type         string `mapstructure:"type" validate:"omitempty,oneof=string int64 decimal bool datetime"`
}

// SourceConfig describes one data source.
//
// Options are loader specific, e.g. file_path for csv.
type SourceConfig struct {
	Name        string             `mapstructure:"name" validate:"required"`
	Type        string             `mapstructure:"type" validate:"required"`
	Description string             `mapstructure:"description"`
	IDColumn    string             `mapstructure:"id_column"`
	Options     map[string]string  `mapstructure:"options"`
	Columns     []ColumnAnnotation `mapstructure:"columns" validate:"dive"`
}

// EnrichedColumn combines discovered schema with annotations.
type EnrichedColumn struct {
	Name         string
	Type         ColumnType
	DisplayName  string
	VisualWeight int
}

// DataSourceLoader is the interface that all data source loaders must implement.
// Built-in loaders exist for "csv" and "proto".
type DataSourceLoader interface {
	// SourceType returns the type identifier used in config (e.g., "proto", "csv").
	SourceType() string

	// DiscoverSchema returns the schema discovered from the data source.
	// This is called first to determine column names and types.
	DiscoverSchema(config SourceConfig) (*TableSchema, error)

	// Load retrieves data and returns a DataTable.
	// The enriched columns contain the discovered schema plus annotations.
	Load(config SourceConfig, columns []*EnrichedColumn) (*tables.DataTable, error)
}

// EnrichSchema combines a discovered TableSchema with column annotations.
// Annotations for columns the schema does not have are ignored.
func EnrichSchema(schema *TableSchema, annotations []ColumnAnnotation) ([]*EnrichedColumn, error) {
	annotationMap := make(map[string]ColumnAnnotation, len(annotations))
	for _, a := range annotations {
		annotationMap[a.Name] = a
	}

	result := make([]*EnrichedColumn, len(schema.Columns))
	for i, col := range schema.Columns {
		enriched := &EnrichedColumn{
			Name:        col.Name,
			Type:        col.Type,
			DisplayName: col.Name, // default to column name
		}

		if ann, ok := annotationMap[col.Name]; ok {
			if ann.DisplayName != "" {
				enriched.DisplayName = ann.DisplayName
			}
			enriched.VisualWeight = ann.VisualWeight
			if ann.Type != "" {
				t, err := ParseColumnType(ann.Type)
				if err != nil {
					return nil, fmt.Errorf("column %q: %w", col.Name, err)
				}
				enriched.Type = t
			}
		}

		result[i] = enriched
	}
	return result, nil
}

// CreateColumnDef creates a columns.ColumnDef from an EnrichedColumn.
func CreateColumnDef(col *EnrichedColumn) *columns.ColumnDef {
	return columns.NewColumnDef(col.Name, col.DisplayName, col.VisualWeight)
}

// NewColumn creates an empty typed column for col.
func NewColumn(col *EnrichedColumn, formatter *columns.Formatter) columns.IDataColumn {
	def := CreateColumnDef(col)
	switch col.Type {
	case TypeInt64:
		return columns.NewInt64Column(def, formatter)
	case TypeDecimal:
		return columns.NewDecimalColumn(def, formatter)
	case TypeBool:
		return columns.NewBoolColumn(def)
	case TypeDatetime:
		return columns.NewDatetimeColumn(def, nil)
	default:
		return columns.NewStringColumn(def)
	}
}

// BuildTable creates a DataTable from string rows. Values are parsed
// according to the column types; rows shorter than the schema are padded
// with empty values.
func BuildTable(enriched []*EnrichedColumn, rows [][]string, formatter *columns.Formatter) (*tables.DataTable, error) {
	table := tables.NewDataTable()
	for i, e := range enriched {
		col := NewColumn(e, formatter)
		for r, row := range rows {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			if err := col.AppendString(value); err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", r+1, e.Name, err)
			}
		}
		table.AddColumn(col)
	}
	return table, nil
}
