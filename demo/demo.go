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

// Package demo bundles a small orders dataset so the server and the CLI have
// something to list without any configuration.
package demo

import (
	"embed"

	"github.com/google/grouplist/core/columns"
	"github.com/google/grouplist/datasources"
)

//go:embed data/*.csv
var dataFS embed.FS

// SourceType is the loader type reading from the embedded files
const SourceType = "demo_csv"

// SourceName is the name the orders source is registered under
const SourceName = "orders"

// OrdersSource returns the config of the embedded orders source.
func OrdersSource() datasources.SourceConfig {
	return datasources.SourceConfig{
		Name:        SourceName,
		Type:        SourceType,
		Description: "Sample customer orders",
		IDColumn:    "order_id",
		Options:     map[string]string{"file_path": "data/orders.csv"},
		Columns: []datasources.ColumnAnnotation{
			{Name: "order_id", DisplayName: "Order", VisualWeight: 60, Type: "string"},
			{Name: "customer", DisplayName: "Customer", VisualWeight: 120},
			{Name: "status", DisplayName: "Status"},
			{Name: "region", DisplayName: "Region", VisualWeight: 70},
			{Name: "category", DisplayName: "Category"},
			{Name: "quantity", DisplayName: "Qty", VisualWeight: 50},
			{Name: "amount", DisplayName: "Amount", VisualWeight: 80},
			{Name: "express", DisplayName: "Express", VisualWeight: 60},
		},
	}
}

// Register adds the embedded loader and the orders source to m.
func Register(m *datasources.Manager, formatter *columns.Formatter) error {
	m.RegisterLoader(datasources.NewFSCsvLoader(SourceType, dataFS, formatter))
	return m.AddSource(OrdersSource())
}
