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

// Package source provides source-file tracking for the TLV schema compiler:
// logical source names, their text, and a mapping from AST nodes back to the
// spans of text which produced them.  This is the "Source Map" component.
package source

// Span represents a contiguous slice of a source file's text.  Rather than
// storing the slice directly, the physical offsets are retained so that the
// enclosing line, column, etc can be recovered on demand.
type Span struct {
	// Start is the first character (rune) offset of this span in the original text.
	start int
	// End is one past the final character (rune) offset of this span in the original text.
	end int
	// Line is the 1-indexed line on which this span begins.
	line int
	// Column is the 1-indexed column on which this span begins.
	column int
}

// NewSpan constructs a new span, checking the internal invariant that start
// does not exceed end.
func NewSpan(start, end, line, column int) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end, line, column}
}

// Start returns the starting character (rune) offset of this span in the original text.
func (p Span) Start() int { return p.start }

// End returns one past the last character (rune) offset of this span in the original text.
func (p Span) End() int { return p.end }

// Length returns the number of characters (runes) covered by this span.
func (p Span) Length() int { return p.end - p.start }

// Line returns the 1-indexed line number on which this span begins.
func (p Span) Line() int { return p.line }

// Column returns the 1-indexed column at which this span begins.
func (p Span) Column() int { return p.column }
