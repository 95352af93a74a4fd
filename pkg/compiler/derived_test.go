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

func TestEffectiveDefaultTagOwnQualifier(t *testing.T) {
	tq := ast.NewContextSpecificTag(5)
	td := &ast.TypeDef{TypeName: "t", Quals: []ast.Qualifier{tq}, Underlying: &ast.UnsignedIntegerType{}}
	ast.Attach(tq, td)

	tag, ok := EffectiveDefaultTag(td)
	if !ok || tag.NoTag || tag.Number != 5 {
		t.Fatalf("expected tag 5, got %+v (ok=%v)", tag, ok)
	}
}

func TestEffectiveDefaultTagFollowsReferenceChain(t *testing.T) {
	inner := &ast.TypeDef{TypeName: "inner", Underlying: &ast.UnsignedIntegerType{}}
	tq := ast.NewContextSpecificTag(9)
	inner.Quals = []ast.Qualifier{tq}
	ast.Attach(tq, inner)

	rt := &ast.ReferencedType{RefName: "inner", Target: inner}
	outer := &ast.TypeDef{TypeName: "outer", Underlying: rt}
	ast.Attach(rt, outer)

	tag, ok := EffectiveDefaultTag(outer)
	if !ok || tag.Number != 9 {
		t.Fatalf("expected tag 9 inherited from inner, got %+v (ok=%v)", tag, ok)
	}
}

func TestEffectiveDefaultTagNoneFound(t *testing.T) {
	td := &ast.TypeDef{TypeName: "untagged", Underlying: &ast.UnsignedIntegerType{}}

	if _, ok := EffectiveDefaultTag(td); ok {
		t.Fatalf("expected no effective default tag")
	}
}

func TestPossibleTagsChoiceUnionsLeavesAndSentinel(t *testing.T) {
	a := &ast.Alternate{AltName: "a", HasName: true, AltType: &ast.StringType{}}
	tagA := ast.NewContextSpecificTag(1)
	a.Quals = []ast.Qualifier{tagA}
	ast.Attach(tagA, a)

	bInner := &ast.Alternate{AltName: "b", HasName: true, AltType: &ast.BooleanType{}}
	tagB := ast.NewContextSpecificTag(2)
	bInner.Quals = []ast.Qualifier{tagB}
	ast.Attach(tagB, bInner)

	nested := &ast.ChoiceType{Alternates: []*ast.Alternate{bInner}}
	ast.Attach(bInner, nested)

	bAlt := &ast.Alternate{HasName: false, AltType: nested}
	ast.Attach(nested, bAlt)

	cAlt := &ast.Alternate{AltName: "c", HasName: true, AltType: &ast.SignedIntegerType{}}

	ct := &ast.ChoiceType{Alternates: []*ast.Alternate{a, bAlt, cAlt}}
	ast.Attach(a, ct)
	ast.Attach(bAlt, ct)
	ast.Attach(cAlt, ct)

	td := &ast.TypeDef{TypeName: "c1", Underlying: ct}
	ast.Attach(ct, td)

	tags := PossibleTags(td)
	if len(tags) != 3 {
		t.Fatalf("expected 3 possible tags (1, 2, untagged), got %+v", tags)
	}

	var sawOne, sawTwo, sawNoTag bool

	for _, tg := range tags {
		switch {
		case tg.NoTag:
			sawNoTag = true
		case tg.Number == 1:
			sawOne = true
		case tg.Number == 2:
			sawTwo = true
		}
	}

	if !sawOne || !sawTwo || !sawNoTag {
		t.Fatalf("expected {1, 2, untagged}, got %+v", tags)
	}
}

func TestEffectiveTagPanicsOnAmbiguity(t *testing.T) {
	a := &ast.Alternate{AltName: "a", HasName: true, AltType: &ast.StringType{}}
	tagA := ast.NewContextSpecificTag(1)
	a.Quals = []ast.Qualifier{tagA}
	ast.Attach(tagA, a)

	b := &ast.Alternate{AltName: "b", HasName: true, AltType: &ast.BooleanType{}}
	tagB := ast.NewContextSpecificTag(2)
	b.Quals = []ast.Qualifier{tagB}
	ast.Attach(tagB, b)

	ct := &ast.ChoiceType{Alternates: []*ast.Alternate{a, b}}
	ast.Attach(a, ct)
	ast.Attach(b, ct)

	td := &ast.TypeDef{TypeName: "ambiguous", Underlying: ct}
	ast.Attach(ct, td)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected EffectiveTag to panic on an ambiguous node")
		}
	}()

	EffectiveTag(td)
}

func TestAllLeafAlternatesEnumeratesInDeclarationOrder(t *testing.T) {
	a := &ast.Alternate{AltName: "a", HasName: true, AltType: &ast.StringType{}}
	b := &ast.Alternate{AltName: "b", HasName: true, AltType: &ast.BooleanType{}}
	nested := &ast.ChoiceType{Alternates: []*ast.Alternate{b}}
	ast.Attach(b, nested)

	nestedAlt := &ast.Alternate{HasName: false, AltType: nested}
	ast.Attach(nested, nestedAlt)

	c := &ast.Alternate{AltName: "c", HasName: true, AltType: &ast.SignedIntegerType{}}

	ct := &ast.ChoiceType{Alternates: []*ast.Alternate{a, nestedAlt, c}}

	leaves := AllLeafAlternates(ct)
	if len(leaves) != 3 {
		t.Fatalf("expected 3 leaves, got %d", len(leaves))
	}

	names := []string{leaves[0].Name, leaves[1].Name, leaves[2].Name}
	want := []string{"a", "b", "c"}

	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected leaf order %v, got %v", want, names)
		}
	}

	if len(leaves[1].Chain) != 2 || leaves[1].Chain[0] != b || leaves[1].Chain[1] != nestedAlt {
		t.Fatalf("expected b's chain to be [b, enclosing nested-choice alternate] (deepest first), got %+v", leaves[1].Chain)
	}
}

func TestIntBoundsSignedWidth(t *testing.T) {
	r := ast.NewWidthRangeQualifier(8)
	it := &ast.SignedIntegerType{Range: r}

	bounds := EffectiveIntBounds(it)
	if bounds.Lower.Cmp(big.NewInt(-128)) != 0 || bounds.Upper.Cmp(big.NewInt(127)) != 0 {
		t.Fatalf("expected [-128, 127], got [%s, %s]", bounds.Lower, bounds.Upper)
	}

	if !bounds.Contains(big.NewInt(-128)) || !bounds.Contains(big.NewInt(127)) {
		t.Fatalf("expected boundary values to be contained")
	}

	if bounds.Contains(big.NewInt(-129)) || bounds.Contains(big.NewInt(128)) {
		t.Fatalf("expected just-outside values to be excluded")
	}
}

func TestIntBoundsUnsignedDefaultWidth(t *testing.T) {
	ut := &ast.UnsignedIntegerType{}

	bounds := EffectiveIntBounds(ut)
	if bounds.Lower.Sign() != 0 {
		t.Fatalf("expected unsigned lower bound of 0, got %s", bounds.Lower)
	}

	want := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))
	if bounds.Upper.Cmp(want) != 0 {
		t.Fatalf("expected default 64-bit unsigned upper bound %s, got %s", want, bounds.Upper)
	}
}

func TestIntBoundsExplicitBounds(t *testing.T) {
	lower := big.NewRat(0, 1)
	upper := big.NewRat(10, 1)
	r := ast.NewBoundsRangeQualifier(lower, upper, true, true)
	it := &ast.UnsignedIntegerType{Range: r}

	bounds := EffectiveIntBounds(it)
	if bounds.Lower.Cmp(big.NewInt(0)) != 0 || bounds.Upper.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("expected [0, 10], got [%s, %s]", bounds.Lower, bounds.Upper)
	}
}

func TestProfileIDNoVendor(t *testing.T) {
	idQ := ast.NewIDQualifier(ast.VendorRef{Kind: ast.VendorRefNone}, 7)
	p := &ast.Profile{Quals: []ast.Qualifier{idQ}}
	ast.Attach(idQ, p)

	id, ok := ProfileID(p)
	if !ok || id != 7 {
		t.Fatalf("expected bare id 7, got %d (ok=%v)", id, ok)
	}
}

func TestProfileIDComposedByNumber(t *testing.T) {
	idQ := ast.NewIDQualifier(ast.VendorRef{Kind: ast.VendorRefByNumber, Number: 0x235A}, 1)
	p := &ast.Profile{Quals: []ast.Qualifier{idQ}}
	ast.Attach(idQ, p)

	id, ok := ProfileID(p)
	if !ok || id != 0x235A0001 {
		t.Fatalf("expected 0x235A0001, got 0x%X (ok=%v)", id, ok)
	}
}

func TestProfileIDUnresolvedVendorName(t *testing.T) {
	idQ := ast.NewIDQualifier(ast.VendorRef{Kind: ast.VendorRefByName, Name: "nope"}, 1)
	p := &ast.Profile{Quals: []ast.Qualifier{idQ}}
	ast.Attach(idQ, p)

	if _, ok := ProfileID(p); ok {
		t.Fatalf("expected no id when the named vendor never resolved")
	}
}
