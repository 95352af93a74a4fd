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
package ast

import (
	"fmt"
	"math/big"
)

// QualifierKind identifies which of the handful of qualifier shapes a given
// Qualifier node is.  Every qualifier-bearing node may carry at most one
// qualifier of a given kind (invariant 14), and only the kinds legal for
// that node's class (the qualifier-bearer capability matrix, see
// allowedQualifierKinds in pkg/compiler/validator.go).
type QualifierKind int

// The qualifier kinds, exactly as enumerated in the schema's data model.
const (
	QualExtensible QualifierKind = iota
	QualOptional
	QualPrivate
	QualInvariant
	QualNullable
	QualOrder
	QualRange
	QualLength
	QualTag
	QualID
)

// String renders a qualifier kind using the same spelling as schema source
// text, for use in diagnostic messages ("X qualifier not allowed on Y").
func (k QualifierKind) String() string {
	switch k {
	case QualExtensible:
		return "extensible"
	case QualOptional:
		return "optional"
	case QualPrivate:
		return "private"
	case QualInvariant:
		return "invariant"
	case QualNullable:
		return "nullable"
	case QualOrder:
		return "order"
	case QualRange:
		return "range"
	case QualLength:
		return "length"
	case QualTag:
		return "tag"
	case QualID:
		return "id"
	default:
		return "unknown"
	}
}

// Qualifier is implemented by every qualifier node.  Qualifiers are owned by
// the node they modify; HasQualifiers.Qualifiers() returns the owned slice.
type Qualifier interface {
	Node
	// Kind identifies which qualifier shape this is.
	Kind() QualifierKind
}

// HasQualifiers is implemented by every node kind which can carry
// qualifiers.
type HasQualifiers interface {
	Node
	Qualifiers() []Qualifier
}

// FlagQualifier represents one of the no-argument flag qualifiers:
// extensible, optional, private, invariant, nullable.
type FlagQualifier struct {
	base
	kind QualifierKind
}

// NewFlagQualifier constructs a new flag qualifier of the given kind.
func NewFlagQualifier(kind QualifierKind) *FlagQualifier {
	return &FlagQualifier{kind: kind}
}

// Kind identifies which qualifier shape this is.
func (q *FlagQualifier) Kind() QualifierKind { return q.kind }

// Describe returns a short debug summary.
func (q *FlagQualifier) Describe() string { return q.kind.String() }

// OrderKind identifies the ordering discipline declared by an OrderQualifier.
type OrderKind int

// The three ordering disciplines a structure may declare.
const (
	TagOrder OrderKind = iota
	SchemaOrder
	AnyOrder
)

// String renders an ordering discipline using schema source spelling.
func (k OrderKind) String() string {
	switch k {
	case TagOrder:
		return "tag-order"
	case SchemaOrder:
		return "schema-order"
	case AnyOrder:
		return "any-order"
	default:
		return "unknown-order"
	}
}

// OrderQualifier records a structure's declared field ordering discipline.
type OrderQualifier struct {
	base
	Order OrderKind
}

// NewOrderQualifier constructs a new order qualifier.
func NewOrderQualifier(order OrderKind) *OrderQualifier {
	return &OrderQualifier{Order: order}
}

// Kind identifies which qualifier shape this is.
func (q *OrderQualifier) Kind() QualifierKind { return QualOrder }

// Describe returns a short debug summary.
func (q *OrderQualifier) Describe() string { return q.Order.String() }

// RangeQualifier restricts the representable values of an integer or float
// type, either by a fixed bit width or by an explicit lower/upper pair.
// Exactly one of HasWidth or (HasLower || HasUpper) is expected to hold once
// the parse-event adapter has finished constructing it; enforcing that
// invariant structurally is the validator's job (bounds are nonsensical, not
// structurally impossible, so they are checked rather than made unrepresentable).
type RangeQualifier struct {
	base
	// HasWidth indicates a bit-width form (Width is one of 8, 16, 32, 64).
	HasWidth bool
	Width    uint
	// HasLower/HasUpper indicate an explicit-bound form.  Bounds are held as
	// big.Rat to admit both integer and decimal literals; LowerIsInt and
	// UpperIsInt report whether a given bound was written as an integer literal.
	HasLower     bool
	Lower        *big.Rat
	LowerIsInt   bool
	HasUpper     bool
	Upper        *big.Rat
	UpperIsInt   bool
}

// NewWidthRangeQualifier constructs a range qualifier in bit-width form.
func NewWidthRangeQualifier(width uint) *RangeQualifier {
	return &RangeQualifier{HasWidth: true, Width: width}
}

// NewBoundsRangeQualifier constructs a range qualifier in explicit-bound
// form.  Either bound may be nil to indicate it was omitted.
func NewBoundsRangeQualifier(lower, upper *big.Rat, lowerIsInt, upperIsInt bool) *RangeQualifier {
	return &RangeQualifier{
		HasLower: lower != nil, Lower: lower, LowerIsInt: lowerIsInt,
		HasUpper: upper != nil, Upper: upper, UpperIsInt: upperIsInt,
	}
}

// Kind identifies which qualifier shape this is.
func (q *RangeQualifier) Kind() QualifierKind { return QualRange }

// Describe returns a short debug summary.
func (q *RangeQualifier) Describe() string {
	if q.HasWidth {
		return fmt.Sprintf("range %dbit", q.Width)
	}

	return "range"
}

// LengthQualifier restricts the length (in bytes, or elements, depending on
// context) of a string/byte-string type.  Lower is required; Upper is
// optional.
type LengthQualifier struct {
	base
	Lower    uint64
	HasUpper bool
	Upper    uint64
}

// NewLengthQualifier constructs a new length qualifier.
func NewLengthQualifier(lower uint64, hasUpper bool, upper uint64) *LengthQualifier {
	return &LengthQualifier{Lower: lower, HasUpper: hasUpper, Upper: upper}
}

// Kind identifies which qualifier shape this is.
func (q *LengthQualifier) Kind() QualifierKind { return QualLength }

// Describe returns a short debug summary.
func (q *LengthQualifier) Describe() string { return "length" }

// TagShape identifies which of the three tag forms a TagQualifier takes.
type TagShape int

// The three tag shapes.
const (
	// TagAnonymous indicates no explicit tag was given.
	TagAnonymous TagShape = iota
	// TagContextSpecific indicates a bare "[n]" tag.
	TagContextSpecific
	// TagProfileSpecific indicates a "[profile:n]" tag.
	TagProfileSpecific
)

// ProfileRefKind identifies how a profile-specific tag names its profile.
type ProfileRefKind int

// The three ways a profile may be named in a tag qualifier.
const (
	// ProfileRefByName names the profile by its (possibly dotted) name.
	ProfileRefByName ProfileRefKind = iota
	// ProfileRefCurrent is the `*` reference to the enclosing profile.
	ProfileRefCurrent
	// ProfileRefByNumber names the profile by its numeric id.
	ProfileRefByNumber
)

// ProfileRef names a profile from within a tag qualifier: by name, by the
// special `*` (meaning "the enclosing profile"), or by numeric id.
type ProfileRef struct {
	Kind   ProfileRefKind
	Name   string
	Number uint64
	// Resolved is filled in by Resolver Pass C.
	Resolved *Profile
}

// TagQualifier declares the numeric tag (and optional scoping profile) under
// which a field, alternate, or type definition's default tag is encoded.
type TagQualifier struct {
	base
	Shape   TagShape
	Profile ProfileRef
	// Number is meaningless when Shape == TagAnonymous.
	Number uint64
}

// NewAnonymousTag constructs the anonymous tag qualifier.
func NewAnonymousTag() *TagQualifier {
	return &TagQualifier{Shape: TagAnonymous}
}

// NewContextSpecificTag constructs a context-specific tag qualifier.
func NewContextSpecificTag(number uint64) *TagQualifier {
	return &TagQualifier{Shape: TagContextSpecific, Number: number}
}

// NewProfileSpecificTag constructs a profile-specific tag qualifier.
func NewProfileSpecificTag(profile ProfileRef, number uint64) *TagQualifier {
	return &TagQualifier{Shape: TagProfileSpecific, Profile: profile, Number: number}
}

// Kind identifies which qualifier shape this is.
func (q *TagQualifier) Kind() QualifierKind { return QualTag }

// Describe returns a short debug summary.
func (q *TagQualifier) Describe() string {
	switch q.Shape {
	case TagAnonymous:
		return "tag anonymous"
	case TagContextSpecific:
		return fmt.Sprintf("tag [%d]", q.Number)
	default:
		return fmt.Sprintf("tag [%s:%d]", q.Profile.Name, q.Number)
	}
}

// VendorRefKind identifies how an id qualifier scopes itself to a vendor.
type VendorRefKind int

// The three vendor-scoping forms an id qualifier may take.
const (
	// VendorRefNone indicates no vendor scope was given.
	VendorRefNone VendorRefKind = iota
	// VendorRefByName scopes by vendor name.
	VendorRefByName
	// VendorRefByNumber scopes by numeric vendor id.
	VendorRefByNumber
)

// VendorRef names a vendor from within an id qualifier: absent, by name, or
// by numeric id.
type VendorRef struct {
	Kind   VendorRefKind
	Name   string
	Number uint64
	// Resolved is filled in by Resolver Pass C when Kind == VendorRefByName.
	Resolved *Vendor
}

// IDQualifier declares the numeric id of a vendor, profile, message, or
// status code, optionally scoped by a vendor (profile ids only).
type IDQualifier struct {
	base
	Vendor VendorRef
	Number uint64
}

// NewIDQualifier constructs a new id qualifier.
func NewIDQualifier(vendor VendorRef, number uint64) *IDQualifier {
	return &IDQualifier{Vendor: vendor, Number: number}
}

// Kind identifies which qualifier shape this is.
func (q *IDQualifier) Kind() QualifierKind { return QualID }

// Describe returns a short debug summary.
func (q *IDQualifier) Describe() string { return fmt.Sprintf("id %d", q.Number) }

// FindQualifier returns the first qualifier of the given kind attached to n,
// or nil if none is present.
func FindQualifier(n HasQualifiers, kind QualifierKind) Qualifier {
	for _, q := range n.Qualifiers() {
		if q.Kind() == kind {
			return q
		}
	}

	return nil
}

// HasFlag reports whether n carries the flag qualifier of the given kind.
func HasFlag(n HasQualifiers, kind QualifierKind) bool {
	return FindQualifier(n, kind) != nil
}
