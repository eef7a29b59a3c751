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

package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/grouplist/core/config"
	"github.com/google/grouplist/core/views"
	"github.com/google/grouplist/datasources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoManager(t *testing.T) *datasources.Manager {
	t.Helper()
	m, err := newManager(config.Default())
	require.NoError(t, err)
	return m
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "grouplist", rootCmd.Use)
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "print", "browse"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	err := printList(&buf, demoManager(t), listOptions{
		Grouped: []string{"region", "status"},
		JSON:    true,
	})
	require.NoError(t, err)

	var result views.GroupingResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "orders", result.Source)
	assert.Equal(t, []string{"region", "status"}, result.Grouped)
	require.NotEmpty(t, result.Groups)
	assert.Equal(t, "EU Open ", result.Groups[0].Label)
	assert.Equal(t, 3, result.Groups[0].Count)
	assert.Equal(t, "1001", result.Records[0].ID)
	assert.Equal(t, "1005", result.Records[1].ID)
	assert.Equal(t, "1011", result.Records[2].ID)
	assert.Len(t, result.Records, 12)
}

func TestPrintText(t *testing.T) {
	var buf bytes.Buffer
	err := printList(&buf, demoManager(t), listOptions{
		Grouped: []string{"status"},
		Filter:  `region == "EU"`,
		Sort:    []string{"-order_id"},
		Width:   80,
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Open")
	assert.Contains(t, out, "(3)")
	assert.NotContains(t, out, "1002")
	// descending order puts 1011 before 1001
	assert.Less(t, strings.Index(out, "1011"), strings.Index(out, "1001"))
}

func TestPrintErrors(t *testing.T) {
	m := demoManager(t)
	assert.Error(t, printList(&bytes.Buffer{}, m, listOptions{Source: "nope"}))
	assert.Error(t, printList(&bytes.Buffer{}, m, listOptions{Filter: "region =="}))

	empty := datasources.NewManager()
	_, err := listOptions{}.toQuery(empty)
	assert.Error(t, err)
}

func TestToQuerySort(t *testing.T) {
	q, err := listOptions{Source: "orders", Sort: []string{"-amount", "region"}}.toQuery(demoManager(t))
	require.NoError(t, err)
	require.Len(t, q.Sort, 2)
	assert.True(t, q.Sort[0].Descending)
	assert.Equal(t, "amount", q.Sort[0].Name)
	assert.False(t, q.Sort[1].Descending)
}
