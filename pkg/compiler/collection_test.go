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
package compiler

import (
	"math/big"
	"testing"

	"github.com/openweave/openweave-tlv-schema/pkg/ast"
)

// E1: a happy-path structure with two tagged scalar fields validates clean,
// and the query API surfaces its field types and tags.
func TestScenarioHappyPath(t *testing.T) {
	b := newEvb().
		BeginDef(DefTypeDef).Name("temperature-sample").
		BeginType(TypeStructure).
		BeginField().Name("temperature").Tag(1).BeginType(TypeFloat).EndType().EndField().
		BeginField().Name("timestamp").Tag(2).BeginType(TypeUnsignedInteger).EndType().EndField().
		EndType().
		EndDef()

	c, _ := load(t, b)

	diags := c.Validate()
	if len(diags) != 0 {
		t.Fatalf("expected zero errors, got %v", messages(diags))
	}

	td, ok := c.GetTypeDef("temperature-sample")
	if !ok {
		t.Fatalf("temperature-sample not found")
	}

	st, ok := td.Underlying.(*ast.StructureType)
	if !ok {
		t.Fatalf("expected underlying type to be a structure, got %T", td.Underlying)
	}

	field, ok := GetField(st, "temperature")
	if !ok {
		t.Fatalf("field temperature not found")
	}

	if _, ok := field.FieldType.(*ast.FloatType); !ok {
		t.Fatalf("expected temperature field to be a float, got %T", field.FieldType)
	}

	tag, ok := EffectiveTag(field)
	if !ok || tag.NoTag || tag.Number != 1 {
		t.Fatalf("expected context-specific tag 1, got %+v (ok=%v)", tag, ok)
	}
}

// E2: a duplicate field declared directly within a field group produces
// exactly one error, attributed to the field group itself, even though the
// field group is reached only via an including structure.
func TestScenarioDuplicateFieldViaIncludes(t *testing.T) {
	b := newEvb().
		BeginDef(DefTypeDef).Name("fg").
		BeginType(TypeFieldGroup).
		BeginField().Name("f1").Tag(0).BeginType(TypeSignedInteger).EndType().EndField().
		BeginField().Name("f2").Tag(1).BeginType(TypeSignedInteger).EndType().EndField().
		BeginField().Name("f1").Tag(2).BeginType(TypeString).EndType().EndField().
		EndType().
		EndDef().
		BeginDef(DefTypeDef).Name("s").
		BeginType(TypeStructure).
		Include("fg").
		EndType().
		EndDef()

	c, _ := load(t, b)

	diags := c.Validate()

	want := "duplicate field in FIELD GROUP type: f1"
	if countMessages(diags, want) != 1 {
		t.Fatalf("expected exactly one %q, got %v", want, messages(diags))
	}

	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic overall, got %v", messages(diags))
	}
}

// E3: a profile's composed id combines a by-name vendor reference with its
// own id number, and a later profile sharing the same fully-qualified name
// with a differing id is flagged as inconsistent.
func TestScenarioProfileIDComposition(t *testing.T) {
	b := newEvb().
		BeginDef(DefVendor).Name("Nest").ID(0x235A).EndDef().
		BeginDef(DefProfile).Name("profile").IDVendorName("Nest", 1).EndDef()

	c, _ := load(t, b)

	diags := c.Validate()
	if len(diags) != 0 {
		t.Fatalf("expected zero errors, got %v", messages(diags))
	}

	p, ok := c.GetProfile("profile")
	if !ok {
		t.Fatalf("profile not found")
	}

	id, ok := ProfileID(p)
	if !ok || id != 0x235A0001 {
		t.Fatalf("expected id 0x235A0001, got 0x%X (ok=%v)", id, ok)
	}

	second := newEvb().
		BeginDef(DefProfile).Name("profile").ID(42).EndDef()
	loadInto(t, c, second)

	diags = c.Validate()

	want := "inconsistent profile id: 0x0000002A (42)"
	if !hasMessage(diags, want) {
		t.Fatalf("expected %q among %v", want, messages(diags))
	}
}

// E4: a choice's possible-tags set unions its leaf alternates' tags
// (recursing into a nested choice) and includes the untagged sentinel for
// an alternate with no tag of its own.
func TestScenarioChoicePossibleTags(t *testing.T) {
	b := newEvb().
		BeginDef(DefTypeDef).Name("c1").
		BeginType(TypeChoiceOf).
		BeginAlt().Name("a").Tag(1).BeginType(TypeString).EndType().EndAlt().
		BeginAlt().BeginType(TypeChoiceOf).
		BeginAlt().Name("b").Tag(2).BeginType(TypeBoolean).EndType().EndAlt().
		EndType().EndAlt().
		BeginAlt().Name("c").BeginType(TypeSignedInteger).EndType().EndAlt().
		EndType().
		EndDef()

	c, _ := load(t, b)

	diags := c.Validate()
	if len(diags) != 0 {
		t.Fatalf("expected zero errors, got %v", messages(diags))
	}

	td, ok := c.GetTypeDef("c1")
	if !ok {
		t.Fatalf("c1 not found")
	}

	ct, ok := td.Underlying.(*ast.ChoiceType)
	if !ok {
		t.Fatalf("expected choice type, got %T", td.Underlying)
	}

	tags := PossibleTags(ct.Alternates[0])
	if len(tags) != 1 || tags[0].Number != 1 {
		t.Fatalf("expected alternate a to carry tag 1, got %+v", tags)
	}

	leaves := AllLeafAlternates(ct)
	if len(leaves) != 3 {
		t.Fatalf("expected 3 leaf alternates (a, b, c), got %d", len(leaves))
	}

	sawOne, sawTwo, sawUntagged := false, false, false

	for _, leaf := range leaves {
		if !leaf.HasTag {
			sawUntagged = true
			continue
		}

		switch leaf.Tag.Number {
		case 1:
			sawOne = true
		case 2:
			sawTwo = true
		}
	}

	if !sawOne || !sawTwo || !sawUntagged {
		t.Fatalf("expected leaf tags {1, 2, untagged}, got %+v", leaves)
	}
}

// E5: a three-way circular type-reference chain is rejected, with the same
// de-duplicated message reported once per participant.
func TestScenarioCircularReference(t *testing.T) {
	refType := func(b *evb, name string) *evb {
		return b.BeginType(TypeReference).Name(name).EndType()
	}

	b := newEvb().BeginDef(DefTypeDef).Name("a")
	refType(b, "b")
	b.EndDef().
		BeginDef(DefTypeDef).Name("b")
	refType(b, "c")
	b.EndDef().
		BeginDef(DefTypeDef).Name("c")
	refType(b, "a")
	b.EndDef()

	c, _ := load(t, b)

	diags := c.Validate()

	want := "circular type reference: a|b|c"
	if countMessages(diags, want) != 3 {
		t.Fatalf("expected exactly 3 occurrences of %q, got %v", want, messages(diags))
	}
}

// E6: an enumerated integer value outside the effective range (an explicit
// 8-bit width here) is flagged, while an in-range value is not.
func TestScenarioEnumOutOfRange(t *testing.T) {
	b := newEvb().
		BeginDef(DefTypeDef).Name("e").
		BeginType(TypeSignedInteger).RangeWidth(8).
		EnumVal("ok", "127").
		EnumVal("bad", "128").
		EndType().
		EndDef()

	c, _ := load(t, b)

	diags := c.Validate()

	want := "enumerated integer value out of range: 128"
	if !hasMessage(diags, want) {
		t.Fatalf("expected %q among %v", want, messages(diags))
	}

	if hasMessage(diags, "out of range: 127") {
		t.Fatalf("127 should be within an 8-bit signed range, got %v", messages(diags))
	}
}

// --- Universal properties (SPEC_FULL.md testable properties) ---

// Property: Validate is idempotent — calling it twice on an unchanged
// collection produces the same diagnostics.
func TestPropertyValidateIdempotent(t *testing.T) {
	b := newEvb().
		BeginDef(DefTypeDef).Name("fg").
		BeginType(TypeFieldGroup).
		BeginField().Name("f1").Tag(0).BeginType(TypeSignedInteger).EndType().EndField().
		BeginField().Name("f1").Tag(1).BeginType(TypeSignedInteger).EndType().EndField().
		EndType().
		EndDef()

	c, _ := load(t, b)

	first := messages(c.Validate())
	second := messages(c.Validate())

	if len(first) != len(second) {
		t.Fatalf("expected stable diagnostic count, got %d then %d", len(first), len(second))
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("diagnostic %d changed between runs: %q vs %q", i, first[i], second[i])
		}
	}
}

// Property: resolution does not depend on declaration order — a type
// definition may reference a sibling declared later in the same file.
func TestPropertyOrderInvariantResolution(t *testing.T) {
	b := newEvb().
		BeginDef(DefTypeDef).Name("first").
		BeginType(TypeReference).Name("second").EndType().
		EndDef().
		BeginDef(DefTypeDef).Name("second").
		BeginType(TypeUnsignedInteger).EndType().
		EndDef()

	c, _ := load(t, b)

	diags := c.Validate()
	if len(diags) != 0 {
		t.Fatalf("expected zero errors, got %v", messages(diags))
	}

	first, ok := c.GetTypeDef("first")
	if !ok {
		t.Fatalf("first not found")
	}

	rt, ok := first.Underlying.(*ast.ReferencedType)
	if !ok {
		t.Fatalf("expected a referenced type, got %T", first.Underlying)
	}

	if rt.Target == nil || rt.Target.Name() != "second" {
		t.Fatalf("expected reference to resolve to second, got %+v", rt.Target)
	}

	if _, ok := rt.Terminal.(*ast.UnsignedIntegerType); !ok {
		t.Fatalf("expected terminal type to be unsigned integer, got %T", rt.Terminal)
	}
}

// Property: a structure's flattened field list (AllFields) equals direct
// fields concatenated with each included field group's own flattened list,
// in declaration order.
func TestPropertyIncludesExpansionIsConcatenation(t *testing.T) {
	b := newEvb().
		BeginDef(DefTypeDef).Name("base").
		BeginType(TypeFieldGroup).
		BeginField().Name("a").Tag(0).BeginType(TypeBoolean).EndType().EndField().
		BeginField().Name("b").Tag(1).BeginType(TypeBoolean).EndType().EndField().
		EndType().
		EndDef().
		BeginDef(DefTypeDef).Name("outer").
		BeginType(TypeStructure).
		BeginField().Name("c").Tag(2).BeginType(TypeBoolean).EndType().EndField().
		Include("base").
		EndType().
		EndDef()

	c, _ := load(t, b)

	diags := c.Validate()
	if len(diags) != 0 {
		t.Fatalf("expected zero errors, got %v", messages(diags))
	}

	outer, ok := c.GetTypeDef("outer")
	if !ok {
		t.Fatalf("outer not found")
	}

	st := outer.Underlying.(*ast.StructureType)
	fields := AllFields(st)

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name()
	}

	want := []string{"c", "a", "b"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}

	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

// Property: a node's effective tag agrees with its possible-tags set exactly
// when that set is a singleton; EffectiveTag panics otherwise, so this
// property is checked via PossibleTags' cardinality rather than by calling
// EffectiveTag on an ambiguous node.
func TestPropertyEffectiveTagAgreesWithPossibleTags(t *testing.T) {
	b := newEvb().
		BeginDef(DefTypeDef).Name("aliased").
		BeginType(TypeReference).Name("target").EndType().
		EndDef().
		BeginDef(DefTypeDef).Name("target").Tag(7).
		BeginType(TypeUnsignedInteger).EndType().
		EndDef()

	c, _ := load(t, b)

	diags := c.Validate()
	if len(diags) != 0 {
		t.Fatalf("expected zero errors, got %v", messages(diags))
	}

	aliased, ok := c.GetTypeDef("aliased")
	if !ok {
		t.Fatalf("aliased not found")
	}

	rt := aliased.Underlying.(*ast.ReferencedType)

	tags := PossibleTags(rt.Target)
	if len(tags) != 1 {
		t.Fatalf("expected target's own possible tags to be a singleton, got %+v", tags)
	}

	effective, ok := EffectiveDefaultTag(rt.Target)
	if !ok || effective != tags[0] {
		t.Fatalf("expected effective default tag to equal the singleton possible tag, got %+v (ok=%v) vs %+v", effective, ok, tags[0])
	}
}

// Property: integer bounds classify the boundary values of a width-derived
// range correctly (inclusive at both ends, exclusive just beyond).
func TestPropertyIntBoundsBoundaryClassification(t *testing.T) {
	b := newEvb().
		BeginDef(DefTypeDef).Name("e").
		BeginType(TypeSignedInteger).RangeWidth(8).
		EndType().
		EndDef()

	c, _ := load(t, b)

	diags := c.Validate()
	if len(diags) != 0 {
		t.Fatalf("expected zero errors, got %v", messages(diags))
	}

	td, _ := c.GetTypeDef("e")
	bounds := EffectiveIntBounds(td.Underlying)

	for _, v := range []int64{-128, 127} {
		if !bounds.Contains(big.NewInt(v)) {
			t.Fatalf("expected %d to be within 8-bit signed bounds %+v", v, bounds)
		}
	}

	for _, v := range []int64{-129, 128} {
		if bounds.Contains(big.NewInt(v)) {
			t.Fatalf("expected %d to be outside 8-bit signed bounds %+v", v, bounds)
		}
	}
}
