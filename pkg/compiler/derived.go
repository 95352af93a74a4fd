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

	"github.com/openweave/openweave-tlv-schema/pkg/ast"
)

// Tag identifies a single resolved tag: either the "no tag" sentinel (the
// untagged-leaf case of a possible-tags set), a context-specific tag
// (ProfileResolved nil, HasProfileNumber false), or a profile-specific tag
// scoped either to a resolved *ast.Profile or, when the profile was named
// only by number and never resolved to a node, to that raw number. Every
// field is comparable so Tag itself can be used as a map key, which the
// choice possible-tags union and the validator's duplicate-tag check both
// rely on.
type Tag struct {
	NoTag            bool
	ProfileResolved  *ast.Profile
	HasProfileNumber bool
	ProfileNumber    uint64
	Number           uint64
}

func tagFromQualifier(tq *ast.TagQualifier) Tag {
	switch tq.Shape {
	case ast.TagAnonymous:
		return Tag{NoTag: true}
	case ast.TagContextSpecific:
		return Tag{Number: tq.Number}
	default: // ast.TagProfileSpecific
		t := Tag{Number: tq.Number}

		switch tq.Profile.Kind {
		case ast.ProfileRefCurrent, ast.ProfileRefByName:
			t.ProfileResolved = tq.Profile.Resolved
		case ast.ProfileRefByNumber:
			t.HasProfileNumber = true
			t.ProfileNumber = tq.Profile.Number
		}

		return t
	}
}

// findOwnTagQualifier returns the *ast.TagQualifier attached directly to n,
// or nil if n carries no qualifiers or none of them is a tag.
func findOwnTagQualifier(n ast.Node) *ast.TagQualifier {
	hq, ok := n.(ast.HasQualifiers)
	if !ok {
		return nil
	}

	q := ast.FindQualifier(hq, ast.QualTag)
	if q == nil {
		return nil
	}

	return q.(*ast.TagQualifier)
}

// typeOf returns the type denoted by n, for the four node kinds which can
// carry a tag: structure field, choice alternate, list pattern element, and
// type definition.
func typeOf(n ast.Node) ast.Type {
	switch v := n.(type) {
	case *ast.Field:
		return v.FieldType
	case *ast.Alternate:
		return v.AltType
	case *ast.PatternElement:
		return v.ElemType
	case *ast.TypeDef:
		return v.Underlying
	default:
		return nil
	}
}

// EffectiveDefaultTag computes a type definition's effective default tag:
// its own tag qualifier if present, else the effective default tag of the
// type definition its body refers to (recursively, stopping at the first
// hit). Returns false if no tag is found anywhere along the chain.
func EffectiveDefaultTag(td *ast.TypeDef) (Tag, bool) {
	return effectiveDefaultTag(td, make(map[*ast.TypeDef]bool))
}

func effectiveDefaultTag(td *ast.TypeDef, visiting map[*ast.TypeDef]bool) (Tag, bool) {
	if visiting[td] {
		return Tag{}, false
	}

	visiting[td] = true

	if q := findOwnTagQualifier(td); q != nil {
		return tagFromQualifier(q), true
	}

	if ref, ok := td.Underlying.(*ast.ReferencedType); ok && ref.Target != nil {
		return effectiveDefaultTag(ref.Target, visiting)
	}

	return Tag{}, false
}

// PossibleTags computes the possible-tags set of a node that can carry a
// tag (structure field, choice alternate, list pattern element, or type
// definition), per the rules:
//
//   - an explicit tag on the node itself is the whole set;
//   - else a reference type whose target has an effective default tag
//     contributes that tag;
//   - else a `choice of` type, written directly or reached through a
//     reference, contributes the union of its leaf
//     alternates' possible tags, plus the "no tag" sentinel if any leaf
//     alternate has none;
//   - otherwise the set is empty.
func PossibleTags(n ast.Node) []Tag {
	if q := findOwnTagQualifier(n); q != nil {
		return []Tag{tagFromQualifier(q)}
	}

	switch u := typeOf(n).(type) {
	case *ast.ReferencedType:
		if u.Target != nil {
			if t, ok := EffectiveDefaultTag(u.Target); ok {
				return []Tag{t}
			}
		}

		if ct, ok := u.Terminal.(*ast.ChoiceType); ok {
			return possibleTagsOfChoice(ct)
		}

		return nil
	case *ast.ChoiceType:
		return possibleTagsOfChoice(u)
	default:
		return nil
	}
}

func possibleTagsOfChoice(ct *ast.ChoiceType) []Tag {
	var (
		result   []Tag
		seen     = make(map[Tag]bool)
		sawNoTag bool
	)

	for _, leaf := range leafAlternates(ct) {
		tags := PossibleTags(leaf)
		if len(tags) == 0 {
			sawNoTag = true
			continue
		}

		for _, t := range tags {
			if !seen[t] {
				seen[t] = true

				result = append(result, t)
			}
		}
	}

	if sawNoTag {
		nt := Tag{NoTag: true}
		if !seen[nt] {
			result = append(result, nt)
		}
	}

	return result
}

// leafAlternates returns every alternate of ct (recursing into nested
// choices) whose own underlying type is not itself a choice.
func leafAlternates(ct *ast.ChoiceType) []*ast.Alternate {
	var result []*ast.Alternate

	for _, alt := range ct.Alternates {
		if nested, ok := alt.AltType.(*ast.ChoiceType); ok {
			result = append(result, leafAlternates(nested)...)
		} else {
			result = append(result, alt)
		}
	}

	return result
}

// LeafAlternate is one entry of a choice's leaf-alternate enumeration: the
// chain of alternates traversed from the originating choice down to the
// leaf (deepest first), the leaf's effective name, and its default tag (if
// it has exactly one).
type LeafAlternate struct {
	Chain  []*ast.Alternate
	Name   string
	Tag    Tag
	HasTag bool
}

// AllLeafAlternates enumerates every leaf alternate of ct, in declaration
// order.
func AllLeafAlternates(ct *ast.ChoiceType) []LeafAlternate {
	var result []LeafAlternate

	var recurse func(c *ast.ChoiceType, path []*ast.Alternate)

	recurse = func(c *ast.ChoiceType, path []*ast.Alternate) {
		for _, alt := range c.Alternates {
			next := append(append([]*ast.Alternate{}, path...), alt)

			if nested, ok := alt.AltType.(*ast.ChoiceType); ok {
				recurse(nested, next)
				continue
			}

			chain := make([]*ast.Alternate, len(next))
			for i, a := range next {
				chain[len(next)-1-i] = a
			}

			entry := LeafAlternate{Chain: chain, Name: alt.Name()}

			if tags := PossibleTags(alt); len(tags) == 1 {
				entry.Tag = tags[0]
				entry.HasTag = true
			}

			result = append(result, entry)
		}
	}

	recurse(ct, nil)

	return result
}

// EffectiveTag returns the single tag of a node's possible-tags set.
// Panics if the set has more than one entry: this is a programmer error
// (the caller should have checked PossibleTags first), never a schema
// error, and so is never routed through the diagnostic sink.
func EffectiveTag(n ast.Node) (Tag, bool) {
	tags := PossibleTags(n)

	switch len(tags) {
	case 0:
		return Tag{}, false
	case 1:
		return tags[0], true
	default:
		panic("EffectiveTag: node has more than one possible tag (ambiguous)")
	}
}

// IntBounds is the effective inclusive [Lower, Upper] range of an integer
// type, derived from its range qualifier (or the 64-bit default when none
// is present).
type IntBounds struct {
	Lower  *big.Int
	Upper  *big.Int
	Signed bool
}

// Contains reports whether v lies within b (inclusive).
func (b IntBounds) Contains(v *big.Int) bool {
	return v.Cmp(b.Lower) >= 0 && v.Cmp(b.Upper) <= 0
}

// EffectiveIntBounds computes the effective bounds of a signed or unsigned
// integer type. Panics if t is not one of those two kinds.
func EffectiveIntBounds(t ast.Type) IntBounds {
	switch v := t.(type) {
	case *ast.SignedIntegerType:
		return rangeBounds(v.Range, true)
	case *ast.UnsignedIntegerType:
		return rangeBounds(v.Range, false)
	default:
		panic("EffectiveIntBounds: not an integer type")
	}
}

func rangeBounds(r *ast.RangeQualifier, signed bool) IntBounds {
	if r == nil {
		return widthBounds(64, signed)
	}

	if r.HasWidth {
		return widthBounds(r.Width, signed)
	}

	bounds := widthBounds(64, signed)

	if lower := ratToInt(r.Lower); lower != nil {
		bounds.Lower = lower
	}

	if upper := ratToInt(r.Upper); upper != nil {
		bounds.Upper = upper
	}

	return IntBounds{Lower: bounds.Lower, Upper: bounds.Upper, Signed: signed}
}

func ratToInt(r *big.Rat) *big.Int {
	if r == nil {
		return nil
	}

	return new(big.Int).Quo(r.Num(), r.Denom())
}

func widthBounds(w uint, signed bool) IntBounds {
	if !signed {
		upper := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), w), big.NewInt(1))
		return IntBounds{Lower: big.NewInt(0), Upper: upper, Signed: false}
	}

	magnitude := new(big.Int).Lsh(big.NewInt(1), w-1)
	lower := new(big.Int).Neg(magnitude)
	upper := new(big.Int).Sub(magnitude, big.NewInt(1))

	return IntBounds{Lower: lower, Upper: upper, Signed: true}
}

// ProfileID computes a profile's composed numeric id: idNum alone when no
// vendor slot is present, or (vendorId<<16)|idNum when a vendor is given.
// Returns false if the profile has no id qualifier, or its vendor slot
// names a vendor that never resolved or itself carries no id.
func ProfileID(p *ast.Profile) (uint64, bool) {
	idQ := findIDQualifier(p)
	if idQ == nil {
		return 0, false
	}

	switch idQ.Vendor.Kind {
	case ast.VendorRefNone:
		return idQ.Number, true
	case ast.VendorRefByNumber:
		return (idQ.Vendor.Number << 16) | idQ.Number, true
	case ast.VendorRefByName:
		if idQ.Vendor.Resolved == nil {
			return 0, false
		}

		vid := findIDQualifier(idQ.Vendor.Resolved)
		if vid == nil {
			return 0, false
		}

		return (vid.Number << 16) | idQ.Number, true
	default:
		return 0, false
	}
}

func findIDQualifier(n ast.HasQualifiers) *ast.IDQualifier {
	q := ast.FindQualifier(n, ast.QualID)
	if q == nil {
		return nil
	}

	return q.(*ast.IDQualifier)
}
