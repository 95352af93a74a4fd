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

// Package diag implements the Diagnostic Sink: the plain-data representation
// of semantic errors accumulated during validation, and their rendering into
// the human-readable block format described by the schema.
package diag

import (
	"fmt"
	"strings"

	"github.com/openweave/openweave-tlv-schema/pkg/source"
)

// Diagnostic is a single semantic error discovered during validation.  Unlike
// a source.SyntaxError, a Diagnostic never terminates anything: the validator
// accumulates as many of these as it can find in a single pass.
type Diagnostic struct {
	// Message is the primary, one-line description of the problem.
	Message string
	// Detail is an optional secondary explanation, rendered as a NOTE line.
	Detail string
	// File is the source file this diagnostic refers to, if any.
	File *source.File
	// Span is the offending span within File, if any.
	Span source.Span
	// HasRef indicates whether File/Span are populated.
	HasRef bool
}

// New constructs a diagnostic with no source reference.  Used rarely, e.g.
// for a node that has no registered source span.
func New(message string) Diagnostic {
	return Diagnostic{Message: message}
}

// NewDetailed constructs a diagnostic with an additional NOTE-level detail.
func NewDetailed(message, detail string) Diagnostic {
	return Diagnostic{Message: message, Detail: detail}
}

// At anchors this diagnostic to a source location.
func (d Diagnostic) At(file *source.File, span source.Span) Diagnostic {
	d.File, d.Span, d.HasRef = file, span, true
	return d
}

// WithDetail attaches (or replaces) the NOTE-level detail of this diagnostic.
func (d Diagnostic) WithDetail(detail string) Diagnostic {
	d.Detail = detail
	return d
}

// String renders this diagnostic in the block format described by the
// schema's diagnostic format:
//
//	<source>:<line>:<col>: ERROR: <message>
//	NOTE: <detail>     (optional, when detail present)
//
//	<original source line>
//	      ^            (caret under startCol)
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.HasRef {
		fmt.Fprintf(&b, "%s:%d:%d: ERROR: %s\n", d.File.Name(), d.Span.Line(), d.Span.Column(), d.Message)
	} else {
		fmt.Fprintf(&b, "ERROR: %s\n", d.Message)
	}

	if d.Detail != "" {
		fmt.Fprintf(&b, "NOTE: %s\n", d.Detail)
	}

	if d.HasRef {
		line := d.File.FindEnclosingLine(d.Span)
		offset := d.Span.Start() - line.Start()

		if offset < 0 {
			offset = 0
		}

		length := line.Length() - offset
		if max := d.Span.Length(); length > max {
			length = max
		}

		if length < 1 {
			length = 1
		}

		b.WriteString("\n")
		b.WriteString(line.String())
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", offset))
		b.WriteString(strings.Repeat("^", length))
	}

	return b.String()
}

// Sink accumulates diagnostics discovered over the course of validation.
// Validation never stops at the first error: every rule that can be checked
// independently is checked, so a single pass surfaces as many problems as
// possible.
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink constructs an empty diagnostic sink.
func NewSink() *Sink {
	return &Sink{}
}

// Report appends a diagnostic to this sink.
func (s *Sink) Report(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
}

// Reportf is a convenience for reporting an undetailed, unanchored diagnostic.
func (s *Sink) Reportf(format string, args ...any) {
	s.Report(New(fmt.Sprintf(format, args...)))
}

// Len returns the number of diagnostics accumulated so far.
func (s *Sink) Len() int { return len(s.diagnostics) }

// All returns the accumulated diagnostics, in the order they were reported.
func (s *Sink) All() []Diagnostic {
	return s.diagnostics
}

// String renders every accumulated diagnostic, de-duplicating identical NOTE
// lines between consecutive diagnostics sharing the same detail (as the
// `validate` CLI command is specified to do).
func (s *Sink) String() string {
	var (
		b        strings.Builder
		lastNote string
	)

	for i, d := range s.diagnostics {
		if i > 0 {
			b.WriteString("\n\n")
		}

		if d.Detail != "" && d.Detail == lastNote {
			d.Detail = ""
		} else if d.Detail != "" {
			lastNote = d.Detail
		}

		b.WriteString(d.String())
	}

	return b.String()
}
