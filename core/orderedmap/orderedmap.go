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

// Package orderedmap provides a map that remembers the order in which keys
// were first inserted.
package orderedmap

// OrderedMap is a map whose iteration order is the first-insertion order of its keys.
// Updating the value of an existing key does not move it.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New creates an empty ordered map
func New[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		values: make(map[K]V),
	}
}

// Set stores value under key, appending key to the order on first insertion
func (om *OrderedMap[K, V]) Set(key K, value V) {
	if _, exists := om.values[key]; !exists {
		om.keys = append(om.keys, key)
	}
	om.values[key] = value
}

// Get returns the value stored under key
func (om *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := om.values[key]
	return v, ok
}

// Keys returns a copy of the keys in insertion order
func (om *OrderedMap[K, V]) Keys() []K {
	out := make([]K, len(om.keys))
	copy(out, om.keys)
	return out
}

// Values returns the values in key insertion order
func (om *OrderedMap[K, V]) Values() []V {
	out := make([]V, len(om.keys))
	for i, k := range om.keys {
		out[i] = om.values[k]
	}
	return out
}

func (om *OrderedMap[K, V]) Len() int {
	return len(om.keys)
}

// Range calls f for every entry in insertion order until f returns false
func (om *OrderedMap[K, V]) Range(f func(key K, value V) bool) {
	for _, k := range om.keys {
		if !f(k, om.values[k]) {
			return
		}
	}
}
