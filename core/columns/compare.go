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

// compareNulls handles the cases where at least one side is null.
// Nulls sort before any value. done is false when both sides hold values.
func compareNulls(validI, validJ bool) (n int, done bool) {
	switch {
	case validI && validJ:
		return 0, false
	case !validI && !validJ:
		return 0, true
	case !validI:
		return -1, true
	default:
		return 1, true
	}
}

// CompareAtIndex compares values at indices i and j for the given column.
// Returns -1 if value[i] < value[j], 0 if equal, 1 if value[i] > value[j].
func CompareAtIndex(col IDataColumn, i, j uint32) int {
	if i >= uint32(col.Length()) || j >= uint32(col.Length()) {
		return 0
	}
	return col.Compare(i, j)
}
