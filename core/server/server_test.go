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
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/grouplist/core/columns"
	"github.com/google/grouplist/core/views"
	"github.com/google/grouplist/datasources"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ticketsCSV = `id,status,priority
t1,Open,High
t2,Closed,Low
t3,Open,Low
t4,Pending,High
`

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	m := datasources.NewManager()
	m.RegisterLoader(datasources.NewFSCsvLoader("mem", fstest.MapFS{
		"tickets.csv": &fstest.MapFile{Data: []byte(ticketsCSV)},
	}, columns.DefaultFormatter()))
	require.NoError(t, m.AddSource(datasources.SourceConfig{
		Name:        "tickets",
		Type:        "mem",
		Description: "Support tickets",
		IDColumn:    "id",
		Options:     map[string]string{"file_path": "tickets.csv"},
	}))
	require.NoError(t, m.AddSource(datasources.SourceConfig{
		Name:    "broken",
		Type:    "mem",
		Options: map[string]string{"file_path": "missing.csv"},
	}))

	s, err := NewServer(m, zerolog.New(io.Discard), opts)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	rec := do(t, newTestServer(t, Options{}), http.MethodGet, "/hc", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestLanding(t *testing.T) {
	s := newTestServer(t, Options{Title: "Support", PageLimit: 20})

	rec := do(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Support</h1>")
	assert.Contains(t, body, "Support tickets")
	assert.Contains(t, body, "/list?limit=20&amp;source=tickets")
	assert.Contains(t, body, "not loaded yet")

	do(t, s, http.MethodGet, "/list?source=tickets", "")
	body = do(t, s, http.MethodGet, "/", "").Body.String()
	assert.Contains(t, body, "4 records")
}

func TestList(t *testing.T) {
	s := newTestServer(t, Options{Debug: true})

	rec := do(t, s, http.MethodGet, "/list?source=tickets&grouped=status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Grouped by status")
	assert.Contains(t, body, "3 groups shown")
	// status header toggles itself off, priority header appends priority
	assert.Contains(t, body, "/list?limit=100&amp;source=tickets")
	assert.Contains(t, body, "grouped=status%2Cpriority")

	first := strings.Index(body, "Open ")
	second := strings.Index(body, "Closed ")
	assert.True(t, first > 0 && second > first, "groups follow first occurrence")
}

func TestListErrors(t *testing.T) {
	s := newTestServer(t, Options{})
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/list", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/list?source=nope", "").Code)
	assert.Equal(t, http.StatusInternalServerError, do(t, s, http.MethodGet, "/list?source=broken", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/list?source=tickets&filter=status+%3D%3D", "").Code)
}

func TestAPIList(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(t, s, http.MethodGet, "/api/list?source=tickets&grouped=priority,nope&sort=-id", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result views.GroupingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, []string{"priority"}, result.Grouped)
	require.Len(t, result.Groups, 2)
	assert.Equal(t, "_High", result.Groups[0].Key)
	assert.Equal(t, "High ", result.Groups[0].Label)
	assert.Equal(t, 2, result.Groups[0].Count)
	assert.Equal(t, 2, result.Groups[1].StartIndex)

	ids := make([]string, len(result.Records))
	for i, r := range result.Records {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"t4", "t1", "t3", "t2"}, ids)
}

func TestToggle(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(t, s, http.MethodPost, "/api/toggle", `{"source":"tickets","grouped":["status"],"column":"priority"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp ToggleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"status", "priority"}, resp.Grouped)
	assert.Equal(t, "/list?grouped=status%2Cpriority&limit=100&source=tickets", resp.URL)

	rec = do(t, s, http.MethodPost, "/api/toggle", `{"source":"tickets","grouped":["status","priority"],"column":"status"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"priority"}, resp.Grouped)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/api/toggle", `{"source":"tickets"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/api/toggle", `{"source":"tickets","column":"nope"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodPost, "/api/toggle", `{"source":"nope","column":"id"}`).Code)
}
