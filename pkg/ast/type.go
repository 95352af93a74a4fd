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

// Type is implemented by every node which denotes a structure's payload, a
// field's type, an alternate's type, or the underlying type of a type
// definition.  It carries no methods of its own beyond Node; its variety is
// discriminated by a type switch in the code which consumes it (the
// resolver, derived-value engine, and validator all switch on concrete
// *ast type).
type Type interface {
	Node
}

// EnumValue names one admissible integer value of an enum-qualified integer
// type.
type EnumValue struct {
	EnumName string
	Value    *big.Int
}

// SignedIntegerType is a signed integer scalar type, optionally restricted
// by a range qualifier and/or an enumeration of named values. Range is a
// convenience accessor for the RangeQualifier found in Quals (every
// qualifier this node actually carries, including a Nullable flag, lives in
// Quals so the validator's qualifier-bearer capability check applies to it
// uniformly).
type SignedIntegerType struct {
	base
	Quals []Qualifier
	Range *RangeQualifier
	Enums []EnumValue
}

// Qualifiers returns the qualifiers attached to this type.
func (t *SignedIntegerType) Qualifiers() []Qualifier { return t.Quals }

// Describe returns a short debug summary.
func (t *SignedIntegerType) Describe() string { return "sint" }

// UnsignedIntegerType is an unsigned integer scalar type, optionally
// restricted by a range qualifier and/or an enumeration of named values.
type UnsignedIntegerType struct {
	base
	Quals []Qualifier
	Range *RangeQualifier
	Enums []EnumValue
}

// Qualifiers returns the qualifiers attached to this type.
func (t *UnsignedIntegerType) Qualifiers() []Qualifier { return t.Quals }

// Describe returns a short debug summary.
func (t *UnsignedIntegerType) Describe() string { return "uint" }

// FloatType is a floating-point scalar type, optionally restricted by a
// range qualifier.
type FloatType struct {
	base
	Quals []Qualifier
	Range *RangeQualifier
}

// Qualifiers returns the qualifiers attached to this type.
func (t *FloatType) Qualifiers() []Qualifier { return t.Quals }

// Describe returns a short debug summary.
func (t *FloatType) Describe() string { return "float" }

// BooleanType is the boolean scalar type.
type BooleanType struct {
	base
	Quals []Qualifier
}

// Qualifiers returns the qualifiers attached to this type.
func (t *BooleanType) Qualifiers() []Qualifier { return t.Quals }

// Describe returns a short debug summary.
func (t *BooleanType) Describe() string { return "bool" }

// StringType is the UTF-8 string scalar type, optionally restricted by a
// length qualifier.
type StringType struct {
	base
	Quals  []Qualifier
	Length *LengthQualifier
}

// Qualifiers returns the qualifiers attached to this type.
func (t *StringType) Qualifiers() []Qualifier { return t.Quals }

// Describe returns a short debug summary.
func (t *StringType) Describe() string { return "string" }

// ByteStringType is the raw byte-string scalar type, optionally restricted
// by a length qualifier.
type ByteStringType struct {
	base
	Quals  []Qualifier
	Length *LengthQualifier
}

// Qualifiers returns the qualifiers attached to this type.
func (t *ByteStringType) Qualifiers() []Qualifier { return t.Quals }

// Describe returns a short debug summary.
func (t *ByteStringType) Describe() string { return "bytes" }

// NullType is the unit type, denoting the TLV null element.
type NullType struct {
	base
}

// Describe returns a short debug summary.
func (t *NullType) Describe() string { return "null" }

// AnyType is the wildcard type, matching any single TLV element.
type AnyType struct {
	base
}

// Describe returns a short debug summary.
func (t *AnyType) Describe() string { return "any" }

// ReferencedType is an occurrence of a named type reference.  Target is
// filled in by Resolver Pass A; until then it is nil. Terminal is filled in
// by Pass B: the non-reference type reached by following Target's own
// underlying-type chain to its end (or nil if that chain is circular or
// Target itself never resolved).
type ReferencedType struct {
	base
	RefName  string
	Target   *TypeDef
	Terminal Type
}

// Name returns the unresolved name as written in the source.
func (t *ReferencedType) Name() string { return t.RefName }

// Describe returns a short debug summary.
func (t *ReferencedType) Describe() string { return fmt.Sprintf("ref %s", t.RefName) }

// Field is a single named member of a structure, carrying its own
// qualifiers, type, and optional documentation.
type Field struct {
	base
	doc
	FieldName string
	Quals     []Qualifier
	FieldType Type
}

// Name returns this field's name.
func (f *Field) Name() string { return f.FieldName }

// Qualifiers returns the qualifiers attached to this field.
func (f *Field) Qualifiers() []Qualifier { return f.Quals }

// Describe returns a short debug summary.
func (f *Field) Describe() string { return fmt.Sprintf("field %s", f.FieldName) }

// Include incorporates the fields of a referenced field group into the
// enclosing structure.
type Include struct {
	base
	Ref *ReferencedType
}

// Describe returns a short debug summary.
func (inc *Include) Describe() string { return fmt.Sprintf("include %s", inc.Ref.RefName) }

// StructureType is an ordered aggregate of fields, optionally assembled in
// part from included field groups.  IsFieldGroup distinguishes a bare field
// group (which may only appear via Include, never directly as a payload or
// field type) from a full structure.
type StructureType struct {
	base
	IsFieldGroup bool
	Quals        []Qualifier
	Order        *OrderQualifier
	Fields       []*Field
	Includes     []*Include
}

// Qualifiers returns the qualifiers attached to this type.
func (t *StructureType) Qualifiers() []Qualifier { return t.Quals }

// Describe returns a short debug summary.
func (t *StructureType) Describe() string {
	if t.IsFieldGroup {
		return "FIELD GROUP type"
	}

	return "STRUCTURE type"
}

// Quantifier expresses the admissible repetition count of a patterned array
// element: at least Lower occurrences, and at most Upper unless Unbounded.
type Quantifier struct {
	Lower     uint64
	Upper     uint64
	Unbounded bool
}

// Describe renders this quantifier in schema source spelling, e.g. "[2..*]".
func (q Quantifier) Describe() string {
	if q.Unbounded {
		return fmt.Sprintf("[%d..*]", q.Lower)
	}

	if q.Lower == q.Upper {
		return fmt.Sprintf("[%d]", q.Lower)
	}

	return fmt.Sprintf("[%d..%d]", q.Lower, q.Upper)
}

// PatternElement is a single named (or anonymous) slot of a patterned array,
// repeated according to its quantifier.
type PatternElement struct {
	base
	doc
	ElemName string
	HasName  bool
	Quals    []Qualifier
	ElemType Type
	Quant    Quantifier
}

// Name returns this element's name.  Anonymous elements are assigned a
// synthetic name by the parse-event adapter and keep HasName false, which
// distinguishes a user-given name from a synthesized one for diagnostics.
func (e *PatternElement) Name() string { return e.ElemName }

// Qualifiers returns the qualifiers attached to this element.
func (e *PatternElement) Qualifiers() []Qualifier { return e.Quals }

// Describe returns a short debug summary.
func (e *PatternElement) Describe() string {
	return fmt.Sprintf("element %s%s", e.ElemName, e.Quant.Describe())
}

// ArrayType is a sequence type: either a homogeneous array/list of a single
// uniform element type, or a patterned array/list assembled from named
// pattern elements each with its own quantifier.  IsList distinguishes the
// unordered "list" form from the ordered "array" form.
type ArrayType struct {
	base
	IsList    bool
	Quals     []Qualifier
	Uniform   Type
	Patterned []*PatternElement
}

// Qualifiers returns the qualifiers attached to this type.
func (t *ArrayType) Qualifiers() []Qualifier { return t.Quals }

// Describe returns a short debug summary.
func (t *ArrayType) Describe() string {
	if t.IsList {
		return "list"
	}

	return "array"
}

// Alternate is a single named option of a choice type.
type Alternate struct {
	base
	doc
	AltName string
	HasName bool
	Quals   []Qualifier
	AltType Type
}

// Name returns this alternate's name.
func (a *Alternate) Name() string { return a.AltName }

// Qualifiers returns the qualifiers attached to this alternate.
func (a *Alternate) Qualifiers() []Qualifier { return a.Quals }

// Describe returns a short debug summary.
func (a *Alternate) Describe() string { return fmt.Sprintf("alternate %s", a.AltName) }

// ChoiceType is a tagged union of alternates, each independently tagged; the
// wire form is the single alternate actually present.
type ChoiceType struct {
	base
	Quals      []Qualifier
	Alternates []*Alternate
}

// Qualifiers returns the qualifiers attached to this type.
func (t *ChoiceType) Qualifiers() []Qualifier { return t.Quals }

// Describe returns a short debug summary.
func (t *ChoiceType) Describe() string { return "choice" }
