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
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/grouplist/core/tables"
)

// Manager handles loading and caching of data sources.
// Source configs are registered eagerly; data is loaded lazily on demand.
type Manager struct {
	mu sync.RWMutex

	// Source configs indexed by name
	sources map[string]SourceConfig
	// Order of source names (preserves registration order)
	sourceOrder []string

	// Cached tables indexed by source name - populated lazily
	tables map[string]*tables.DataTable

	// Registered loaders indexed by source type
	loaders map[string]DataSourceLoader

	// Base directory for resolving relative paths
	baseDir string
}

// NewManager creates a new data source manager.
func NewManager() *Manager {
	return &Manager{
		sources: make(map[string]SourceConfig),
		tables:  make(map[string]*tables.DataTable),
		loaders: make(map[string]DataSourceLoader),
	}
}

// RegisterLoader registers a data source loader for a specific source type.
// If a loader is already registered for this type, it will be replaced.
func (m *Manager) RegisterLoader(loader DataSourceLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// AddSource registers a source config. Data is not loaded until LoadData.
func (m *Manager) AddSource(config SourceConfig) error {
	if config.Name == "" {
		return fmt.Errorf("source name is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sources[config.Name]; ok {
		return fmt.Errorf("source %q already registered", config.Name)
	}
	m.sources[config.Name] = config
	m.sourceOrder = append(m.sourceOrder, config.Name)
	return nil
}

// SetBaseDir sets the base directory for resolving relative paths in options.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// GetSourceNames returns all registered source names in registration order.
func (m *Manager) GetSourceNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, len(m.sourceOrder))
	copy(names, m.sourceOrder)
	return names
}

// GetSource returns the config of a source and whether it exists.
func (m *Manager) GetSource(name string) (SourceConfig, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	source, ok := m.sources[name]
	return source, ok
}

// LoadData loads data for a source by name.
// Returns cached data if already loaded; otherwise loads from the source.
//
// The loading process:
// 1. Loader discovers schema from the data source (column names and types)
// 2. Manager enriches schema with the column annotations of the source
// 3. Loader creates table with the enriched schema
func (m *Manager) LoadData(sourceName string) (*tables.DataTable, error) {
	m.mu.RLock()
	if table, ok := m.tables[sourceName]; ok {
		m.mu.RUnlock()
		return table, nil
	}
	source, ok := m.sources[sourceName]
	if !ok {
		m.mu.RUnlock()
		return nil, fmt.Errorf("source %q not found", sourceName)
	}
	loader, hasLoader := m.loaders[source.Type]
	baseDir := m.baseDir
	m.mu.RUnlock()

	if !hasLoader {
		return nil, fmt.Errorf("no loader registered for source type %q", source.Type)
	}

	source.Options = resolveOptionPaths(source.Options, baseDir)

	schema, err := loader.DiscoverSchema(source)
	if err != nil {
		return nil, fmt.Errorf("failed to discover schema for source %q: %w", sourceName, err)
	}

	enrichedColumns, err := EnrichSchema(schema, source.Columns)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", sourceName, err)
	}

	table, err := loader.Load(source, enrichedColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to load source %q: %w", sourceName, err)
	}

	if source.IDColumn != "" {
		if err := table.SetIDColumn(source.IDColumn); err != nil {
			return nil, fmt.Errorf("source %q: %w", sourceName, err)
		}
	}

	m.mu.Lock()
	m.tables[sourceName] = table
	m.mu.Unlock()

	return table, nil
}

// resolveOptionPaths resolves relative file paths in options against baseDir.
func resolveOptionPaths(options map[string]string, baseDir string) map[string]string {
	if baseDir == "" {
		return options
	}

	resolved := make(map[string]string, len(options))
	pathKeys := map[string]bool{
		"file_path":      true,
		"proto_file":     true,
		"descriptor_set": true,
	}

	for k, v := range options {
		if pathKeys[k] && v != "" && !filepath.IsAbs(v) {
			resolved[k] = filepath.Join(baseDir, v)
		} else {
			resolved[k] = v
		}
	}
	return resolved
}

// InvalidateCache removes a source from the cache, forcing reload on next access.
func (m *Manager) InvalidateCache(sourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, sourceName)
}

// IsLoaded returns whether data for a source is currently cached.
func (m *Manager) IsLoaded(sourceName string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tables[sourceName]
	return ok
}

// RegisterTable registers a programmatically created table as a loaded source.
func (m *Manager) RegisterTable(name, description string, table *tables.DataTable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sources[name]; !ok {
		m.sourceOrder = append(m.sourceOrder, name)
	}
	m.sources[name] = SourceConfig{Name: name, Type: "table", Description: description}
	m.tables[name] = table
}
