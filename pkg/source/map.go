// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package source

import "fmt"

// Map associates nodes from a single source file with the span of text which
// produced them.  Node identity is by Go pointer identity (T is typically an
// interface over pointer-typed AST node structs), so T must be comparable.
type Map[T comparable] struct {
	mapping map[T]Span
	file    *File
}

// NewMap constructs an initially empty source map for a given file.
func NewMap[T comparable](file *File) *Map[T] {
	return &Map[T]{make(map[T]Span), file}
}

// File returns the source file underlying this map.
func (m *Map[T]) File() *File { return m.file }

// Put registers a node with the span of text which produced it.  Panics if
// the node has already been registered, since that would indicate a bug in
// the parse-event adapter.
func (m *Map[T]) Put(item T, span Span) {
	if _, ok := m.mapping[item]; ok {
		panic(fmt.Sprintf("source map key already exists: %v", any(item)))
	}

	m.mapping[item] = span
}

// Has checks whether a given node is registered in this map.
func (m *Map[T]) Has(item T) bool {
	_, ok := m.mapping[item]
	return ok
}

// Get returns the span registered for a given node.  Panics if the node is
// not registered.
func (m *Map[T]) Get(item T) Span {
	if s, ok := m.mapping[item]; ok {
		return s
	}

	panic(fmt.Sprintf("invalid source map key: %v", any(item)))
}

// SyntaxError constructs a syntax error for a node registered in this map.
func (m *Map[T]) SyntaxError(item T, msg string) *SyntaxError {
	return m.file.SyntaxError(m.Get(item), msg)
}

// Maps aggregates the per-file source maps of an entire schema collection, so
// that diagnostics can be produced for a node without the caller needing to
// know which file it came from.
type Maps[T comparable] struct {
	maps []*Map[T]
}

// NewMaps constructs an initially empty aggregate of source maps.
func NewMaps[T comparable]() *Maps[T] {
	return &Maps[T]{nil}
}

// Join incorporates a single file's source map into this aggregate.
func (m *Maps[T]) Join(child *Map[T]) {
	m.maps = append(m.maps, child)
}

// Has checks whether a node is registered in any of the joined source maps.
func (m *Maps[T]) Has(item T) bool {
	for _, c := range m.maps {
		if c.Has(item) {
			return true
		}
	}

	return false
}

// Get returns the file and span registered for a given node, panicking if it
// cannot be found in any joined source map.
func (m *Maps[T]) Get(item T) (*File, Span) {
	for _, c := range m.maps {
		if c.Has(item) {
			return c.file, c.Get(item)
		}
	}

	panic(fmt.Sprintf("missing source mapping for node: %v", any(item)))
}

// SyntaxError constructs a syntax error for a node registered in one of the
// joined source maps.
func (m *Maps[T]) SyntaxError(item T, msg string) *SyntaxError {
	file, span := m.Get(item)
	return file.SyntaxError(span, msg)
}
