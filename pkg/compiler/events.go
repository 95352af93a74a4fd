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

// Package compiler implements the remainder of the schema pipeline sitting
// above pkg/ast: the parse-event adapter, symbol index, resolver, derived
// value engine, validator, and the Collection orchestration and query
// API. The concrete grammar and tokenizer are external collaborators; this
// package consumes a stream of ParseEvent values with source positions
// rather than schema text.
package compiler

import "github.com/openweave/openweave-tlv-schema/pkg/source"

// ParseEvent is the sealed set of events a tokenizer/parser emits, in the
// order described by the adapter's contract: for any production, a name
// event (if named), then its qualifier events, then its body events, then a
// matching end event. A real grammar is expected to emit these; the adapter
// never reads schema text itself.
type ParseEvent interface {
	// Span returns the source position this event was produced from.
	Span() source.Span
}

type eventBase struct {
	span source.Span
}

// Span returns the source position this event was produced from.
func (e eventBase) Span() source.Span { return e.span }

// DefinitionKind discriminates the kind of definition an
// EventBeginDefinition/EventEndDefinition pair brackets.
type DefinitionKind int

// The definition kinds a parse-event stream may bracket.
const (
	DefVendor DefinitionKind = iota
	DefNamespace
	DefProfile
	DefMessage
	DefStatusCode
	DefTypeDef
)

// EventBeginDefinition opens a vendor/namespace/profile/message/status
// code/type definition. The adapter allocates the matching AST node on
// receipt of this event.
type EventBeginDefinition struct {
	eventBase
	Kind DefinitionKind
}

// EventEndDefinition closes the most recently opened definition.
type EventEndDefinition struct {
	eventBase
}

// EventName supplies the name of the innermost open definition, type
// component, field, or alternate. Name may contain '.' when the grammar
// accepted a dotted (scoped) name; the adapter is responsible for expanding
// a dotted namespace name into nested namespace definitions.
type EventName struct {
	eventBase
	Name   string
	Quoted bool
}

// QualifierEvent is the sealed set of qualifier events; the adapter attaches
// whichever of these immediately follows a name event to the innermost open
// node.
type QualifierEvent interface {
	ParseEvent
	isQualifierEvent()
}

// EventFlagQualifier introduces one of the no-argument flag qualifiers.
type EventFlagQualifier struct {
	eventBase
	Kind int // mirrors ast.QualifierKind for QualExtensible..QualNullable
}

func (EventFlagQualifier) isQualifierEvent() {}

// EventOrderQualifier introduces an order qualifier.
type EventOrderQualifier struct {
	eventBase
	Order int // mirrors ast.OrderKind
}

func (EventOrderQualifier) isQualifierEvent() {}

// EventRangeQualifier introduces a range qualifier, in either bit-width or
// explicit-bound form.
type EventRangeQualifier struct {
	eventBase
	HasWidth            bool
	Width               uint
	HasLower, HasUpper  bool
	LowerNum, UpperNum  string // decimal literal text, parsed by the adapter
	LowerIsInt, UpperIsInt bool
}

func (EventRangeQualifier) isQualifierEvent() {}

// EventLengthQualifier introduces a length qualifier.
type EventLengthQualifier struct {
	eventBase
	Lower    uint64
	HasUpper bool
	Upper    uint64
}

func (EventLengthQualifier) isQualifierEvent() {}

// EventTagQualifier introduces a tag qualifier.
type EventTagQualifier struct {
	eventBase
	Anonymous      bool
	ProfileCurrent bool
	ProfileName    string
	ProfileNumber  uint64
	ProfileIsName  bool
	ProfileIsNum   bool
	Number         uint64
}

func (EventTagQualifier) isQualifierEvent() {}

// EventIDQualifier introduces an id qualifier.
type EventIDQualifier struct {
	eventBase
	VendorName   string
	VendorNumber uint64
	VendorIsName bool
	VendorIsNum  bool
	Number       uint64
}

func (EventIDQualifier) isQualifierEvent() {}

// EventDoc supplies a documentation comment, attached by the adapter to
// the definition, field, alternate or pattern element that follows it
// (dedented first). It is accepted only at those positions; anywhere else
// the adapter reports a syntax error instead of discarding it.
type EventDoc struct {
	eventBase
	Text string
}

// TypeKind discriminates the kind of type an EventBeginType/EventEndType
// pair brackets.
type TypeKind int

// The type kinds a parse-event stream may bracket.
const (
	TypeSignedInteger TypeKind = iota
	TypeUnsignedInteger
	TypeFloat
	TypeBoolean
	TypeString
	TypeByteString
	TypeNull
	TypeAny
	TypeStructure
	TypeFieldGroup
	TypeArray
	TypeList
	TypeChoiceOf
	TypeReference
)

// EventBeginType opens a type (scalar or aggregate). For TypeReference, the
// immediately following EventName supplies the referenced name rather than
// a definition name.
type EventBeginType struct {
	eventBase
	Kind TypeKind
}

// EventEndType closes the most recently opened type.
type EventEndType struct {
	eventBase
}

// EventBeginField opens a structure/field-group field.
type EventBeginField struct {
	eventBase
}

// EventEndField closes the most recently opened field.
type EventEndField struct {
	eventBase
}

// EventInclude emits an includes-statement referencing a field group by
// name.
type EventInclude struct {
	eventBase
	RefName string
}

// EventBeginAlternate opens a choice alternate; HasName/Name follow via a
// subsequent EventName only when the alternate was written with an explicit
// name.
type EventBeginAlternate struct {
	eventBase
}

// EventEndAlternate closes the most recently opened alternate.
type EventEndAlternate struct {
	eventBase
}

// EventBeginPatternElement opens a patterned array/list element.
type EventBeginPatternElement struct {
	eventBase
}

// EventEndPatternElement closes the most recently opened pattern element,
// carrying its quantifier token exactly as written in schema source (one of
// "?", "*", "+", "{n}", "{n..m}", or "" for an unquantified element); the
// adapter applies the normalisation rules (`?` -> (0,1), `*` -> (0,inf),
// `+` -> (1,inf), `{n}` -> (n,n), `{n..m}` -> (n,m), unquantified -> (1,1)).
type EventEndPatternElement struct {
	eventBase
	Quantifier string
}

// EventEnumValue supplies one named enumerated value of an integer type.
type EventEnumValue struct {
	eventBase
	Name  string
	Value string // decimal literal text, parsed by the adapter
}

// EventMessageNoPayload marks an explicit empty-payload message, in place
// of the EventBeginType/EventEndType pair that would otherwise bracket the
// payload type.
type EventMessageNoPayload struct {
	eventBase
}
