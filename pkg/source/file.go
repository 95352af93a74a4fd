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

// File represents a single named schema source (e.g. "foo.weave" or a
// synthetic name such as "<default-schema>") together with its full text.
// Parser positions are always reported relative to a File.
type File struct {
	// Logical name of this source, used in diagnostic output.
	name string
	// Full text of this source.
	text []rune
}

// NewFile constructs a new source file from a logical name and its text.
func NewFile(name string, text string) *File {
	return &File{name, []rune(text)}
}

// Name returns the logical name of this source file.
func (f *File) Name() string { return f.name }

// Text returns the full text of this source file.
func (f *File) Text() string { return string(f.text) }

// Line represents a single physical line of a source file, as identified by
// an enclosing span.
type Line struct {
	text   []rune
	start  int
	end    int
	number int
}

// String returns the text of this line (excluding any trailing newline).
func (l Line) String() string { return string(l.text[l.start:l.end]) }

// Number returns the 1-indexed line number.
func (l Line) Number() int { return l.number }

// Start returns the offset of the first character of this line in the
// original source text.
func (l Line) Start() int { return l.start }

// Length returns the number of characters on this line.
func (l Line) Length() int { return l.end - l.start }

// FindEnclosingLine determines the physical line containing the start of a
// given span.  If the span lies beyond the end of the file, the final line is
// returned.
func (f *File) FindEnclosingLine(span Span) Line {
	var (
		start  = 0
		number = 1
	)

	for i := 0; i < len(f.text); i++ {
		if i == span.Start() {
			return Line{f.text, start, findEndOfLine(i, f.text), number}
		} else if f.text[i] == '\n' {
			number++
			start = i + 1
		}
	}

	return Line{f.text, start, len(f.text), number}
}

func findEndOfLine(index int, text []rune) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}

	return len(text)
}

// SyntaxError constructs a syntax error anchored to a span of this file.
func (f *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{f, span, msg}
}

// SyntaxError is a structured error retaining the span of text in which it
// arose, along with a human-readable message.  Unlike a semantic Diagnostic
// (see package diag), a SyntaxError always terminates the parse of a single
// source file.
type SyntaxError struct {
	file *File
	span Span
	msg  string
}

// File returns the source file in which this error arose.
func (e *SyntaxError) File() *File { return e.file }

// Span returns the span of text on which this error is reported.
func (e *SyntaxError) Span() Span { return e.span }

// Message returns the message to be reported.
func (e *SyntaxError) Message() string { return e.msg }

// Error implements the standard error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.file.Name(), e.span.Line(), e.span.Column(), e.msg)
}
