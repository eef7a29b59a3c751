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

package server

import (
	"bytes"
	"net/http"

	"github.com/google/grouplist/core/columns"
	"github.com/google/grouplist/core/grouping"
	"github.com/google/grouplist/core/query"
	"github.com/google/grouplist/core/tables"
	"github.com/google/grouplist/core/views"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type (
	// ToggleRequest asks for the selection after clicking column
	ToggleRequest struct {
		Source  string   `json:"source" validate:"required"`
		Grouped []string `json:"grouped"`
		Column  string   `json:"column" validate:"required"`
	}

	// ToggleResponse is the new selection and the list URL showing it
	ToggleResponse struct {
		Grouped []string `json:"grouped"`
		URL     string   `json:"url"`
	}
)

// HandleLanding lists the registered sources
func (s *Server) HandleLanding(c *CustomContext) error {
	vm := views.LandingViewModel{
		Title:    s.opts.Title,
		Subtitle: s.opts.Subtitle,
	}
	for _, name := range s.manager.GetSourceNames() {
		source, _ := s.manager.GetSource(name)
		info := views.SourceInfo{
			Name:        name,
			Description: source.Description,
			URL:         (&query.Query{Path: "/list", Source: name, Limit: s.pageLimit()}).ToSafeURL(),
		}
		// only loaded sources are counted; listing must not trigger loads
		if s.manager.IsLoaded(name) {
			if table, err := s.manager.LoadData(name); err == nil {
				info.Loaded = true
				info.RecordCount = table.Length()
				info.ColumnCount = len(table.GetColumnNames())
			}
		}
		vm.Sources = append(vm.Sources, info)
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderLanding(&buf, vm); err != nil {
		return c.InternalError(err, "error rendering landing page")
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// HandleList renders the grouped list described by the URL
func (s *Server) HandleList(c *CustomContext) error {
	q := s.parseQuery(c)
	ds, err := s.dataset(q)
	if err != nil {
		return err
	}

	vm := views.BuildListViewModel(ds, q, s.opts.Title+" - "+q.Source)
	if s.opts.Debug {
		if err := vm.CheckGroups(); err != nil {
			return c.InternalError(err, "grouping produced an invalid partition")
		}
	}
	zerolog.Ctx(c.Request().Context()).Debug().
		Str("source", q.Source).
		Strs("grouped", q.GroupedColumns).
		Int("groups", len(vm.Groups)).
		Int("records", vm.TotalRows).
		Msg("list built")

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, vm); err != nil {
		return c.InternalError(err, "error rendering list")
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// HandleAPIList returns the grouped list as JSON. The limit is not applied.
func (s *Server) HandleAPIList(c *CustomContext) error {
	q := s.parseQuery(c)
	ds, err := s.dataset(q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views.BuildGroupingResult(q.Source, ds, q.GroupedColumns))
}

// HandleToggle toggles a column in a selection of the source's columns.
// Names in Grouped that are not columns of the source are dropped.
func (s *Server) HandleToggle(c *CustomContext) error {
	var req ToggleRequest
	if err := ValidateRequest(c, &req); err != nil {
		return err
	}
	table, err := s.table(req.Source)
	if err != nil {
		return err
	}

	var column *columns.ColumnDef
	for _, def := range table.ColumnDefs() {
		if def.Name() == req.Column {
			column = def
			break
		}
	}
	if column == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown column "+req.Column)
	}

	selection := grouping.Toggle(grouping.SelectionFromNames(req.Grouped, table.ColumnDefs()), column)
	q := &query.Query{
		Path:           "/list",
		Source:         req.Source,
		GroupedColumns: selection.Names(),
		Limit:          s.pageLimit(),
	}
	return c.JSON(http.StatusOK, ToggleResponse{
		Grouped: q.GroupedColumns,
		URL:     q.ToURL(),
	})
}

// parseQuery reads the list state from the request URL. A URL without a
// limit gets the configured page limit.
func (s *Server) parseQuery(c *CustomContext) *query.Query {
	q := query.NewQuery(c.Request().URL)
	if !c.QueryParams().Has("limit") {
		q.Limit = s.pageLimit()
	}
	return q
}

func (s *Server) pageLimit() int {
	if s.opts.PageLimit > 0 {
		return s.opts.PageLimit
	}
	return query.DefaultLimit
}

// table loads a source, mapping failures to HTTP errors
func (s *Server) table(source string) (*tables.DataTable, error) {
	if source == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "source is required")
	}
	if _, ok := s.manager.GetSource(source); !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "unknown source "+source)
	}
	table, err := s.manager.LoadData(source)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to load source "+source).SetInternal(err)
	}
	return table, nil
}

func (s *Server) dataset(q *query.Query) (*tables.Dataset, error) {
	table, err := s.table(q.Source)
	if err != nil {
		return nil, err
	}
	ds, err := views.BuildDataset(table, q)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ds, nil
}
