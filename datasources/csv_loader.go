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

package datasources

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/grouplist/core/columns"
	"github.com/google/grouplist/core/tables"
	"github.com/shopspring/decimal"
)

// CsvLoader implements DataSourceLoader for CSV files. Column types are
// inferred from the data: int64, then decimal, then bool, then datetime,
// else string.
//
// Required options:
//   - file_path: Path to the CSV file
//
// Optional options:
//   - has_header: a strconv.ParseBool value (default: "true")
//   - delimiter: Field delimiter (default: ",")
type CsvLoader struct {
	sourceType string
	open       func(path string) (io.ReadCloser, error)
	formatter  *columns.Formatter
}

// NewCsvLoader creates a CSV loader reading from the file system.
func NewCsvLoader(formatter *columns.Formatter) *CsvLoader {
	return &CsvLoader{
		sourceType: "csv",
		open: func(path string) (io.ReadCloser, error) {
			return os.Open(path)
		},
		formatter: formatter,
	}
}

// NewFSCsvLoader creates a CSV loader registered as sourceType that reads
// file_path from fsys.
func NewFSCsvLoader(sourceType string, fsys fs.FS, formatter *columns.Formatter) *CsvLoader {
	return &CsvLoader{
		sourceType: sourceType,
		open: func(path string) (io.ReadCloser, error) {
			return fsys.Open(path)
		},
		formatter: formatter,
	}
}

// SourceType returns the type this loader is registered under, "csv" by default.
func (l *CsvLoader) SourceType() string {
	return l.sourceType
}

// readAll returns the column names and the data rows of the configured file.
func (l *CsvLoader) readAll(config SourceConfig) ([]string, [][]string, error) {
	filePath := config.Options["file_path"]
	if filePath == "" {
		return nil, nil, fmt.Errorf("file_path is required")
	}

	hasHeader := true
	if h := config.Options["has_header"]; h != "" {
		v, err := strconv.ParseBool(h)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid has_header %q: %w", h, err)
		}
		hasHeader = v
	}

	delimiter := ','
	if d := config.Options["delimiter"]; d != "" {
		r, _ := utf8.DecodeRuneInString(d)
		delimiter = r
	}

	file, err := l.open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("CSV file is empty")
	}

	var columnNames []string
	dataStart := 0
	if hasHeader {
		for _, name := range records[0] {
			columnNames = append(columnNames, strings.TrimSpace(name))
		}
		dataStart = 1
	} else {
		// Generate column names: col_0, col_1, etc.
		for i := range records[0] {
			columnNames = append(columnNames, fmt.Sprintf("col_%d", i))
		}
	}
	return columnNames, records[dataStart:], nil
}

// DiscoverSchema discovers the table schema by reading the CSV data.
func (l *CsvLoader) DiscoverSchema(config SourceConfig) (*TableSchema, error) {
	columnNames, rows, err := l.readAll(config)
	if err != nil {
		return nil, err
	}

	schema := &TableSchema{
		Columns: make([]*ColumnSchema, len(columnNames)),
	}
	for i, name := range columnNames {
		schema.Columns[i] = &ColumnSchema{
			Name: name,
			Type: inferColumnType(i, rows),
		}
	}
	return schema, nil
}

// Load loads a CSV file with typed columns.
func (l *CsvLoader) Load(config SourceConfig, enrichedColumns []*EnrichedColumn) (*tables.DataTable, error) {
	_, rows, err := l.readAll(config)
	if err != nil {
		return nil, err
	}
	return BuildTable(enrichedColumns, rows, l.formatter)
}

// inferColumnType picks the narrowest type every non-empty value parses as.
// A column with no values is a string column.
func inferColumnType(colIdx int, records [][]string) ColumnType {
	isInt := true
	isDecimal := true
	isBool := true
	isDatetime := true
	seen := false

	for _, record := range records {
		if colIdx >= len(record) {
			continue
		}
		val := strings.TrimSpace(record[colIdx])
		if val == "" {
			continue // Skip empty values
		}
		seen = true

		if isInt {
			if _, err := strconv.ParseInt(val, 10, 64); err != nil {
				isInt = false
			}
		}
		if isDecimal {
			if _, err := decimal.NewFromString(val); err != nil {
				isDecimal = false
			}
		}
		if isBool {
			if _, err := columns.ParseBool(val); err != nil {
				isBool = false
			}
		}
		if isDatetime {
			if _, err := columns.ParseDatetime(val, nil); err != nil {
				isDatetime = false
			}
		}
		if !isInt && !isDecimal && !isBool && !isDatetime {
			break
		}
	}

	switch {
	case !seen:
		return TypeString
	case isInt:
		return TypeInt64
	case isDecimal:
		return TypeDecimal
	case isBool:
		return TypeBool
	case isDatetime:
		return TypeDatetime
	default:
		return TypeString
	}
}
