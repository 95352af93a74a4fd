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
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/openweave/openweave-tlv-schema/pkg/ast"
)

// validator walks every node of every loaded file exactly once (via the
// shared walk helper) and applies the structural rule set: qualifier-bearer
// capability and duplication, field/include/tag rules on structures and
// field groups, array/list/choice member rules, numeric bound rules, and the
// per-definition id rules for vendors, profiles, messages and status codes.
// Cross-file consistency (vendor/profile id agreement and uniqueness) runs
// separately, after every file's own nodes have been checked.
type validator struct {
	col *Collection
}

func newValidator(col *Collection) *validator {
	return &validator{col: col}
}

func (v *validator) run() {
	log.Debugf("validator: checking %d loaded file(s)", len(v.col.files))

	for _, f := range v.col.files {
		walk(f, v.visit)
	}

	v.checkCrossCollection()
}

func (v *validator) visit(n ast.Node) {
	v.checkQualifiers(n)

	switch t := n.(type) {
	case *ast.Vendor:
		v.checkVendor(t)
	case *ast.Profile:
		v.checkProfile(t)
	case *ast.Message:
		v.checkMessage(t)
	case *ast.StatusCode:
		v.checkStatusCode(t)
	case *ast.StructureType:
		v.checkStructure(t)
	case *ast.Field:
		v.checkFieldType(t)
		v.checkFieldTag(t)
	case *ast.ArrayType:
		v.checkArray(t)
	case *ast.PatternElement:
		v.checkPatternElementType(t)
	case *ast.ChoiceType:
		v.checkAlternateNames(t)
	case *ast.SignedIntegerType:
		v.checkEnumBounds(t)
	case *ast.UnsignedIntegerType:
		v.checkEnumBounds(t)
	case *ast.RangeQualifier:
		v.checkRangeQualifier(t)
	case *ast.LengthQualifier:
		v.checkLengthQualifier(t)
	}
}

// allowedQualifierKinds is the qualifier-bearer capability matrix: which
// qualifier kinds may legally appear on a given node kind. Grounded directly
// on the original schema compiler's per-class _allowedQualifiers attribute
// (Vendor/Profile/Message/StatusCode -> id; TypeDef -> tag; the scalar and
// aggregate type classes as below). LinearTypePatternElement is the one
// dynamic case in the original: a LIST pattern element may carry a tag, an
// ARRAY pattern element may carry none.
func allowedQualifierKinds(n ast.Node) []ast.QualifierKind {
	switch v := n.(type) {
	case *ast.Vendor:
		return []ast.QualifierKind{ast.QualID}
	case *ast.Profile:
		return []ast.QualifierKind{ast.QualID}
	case *ast.Message:
		return []ast.QualifierKind{ast.QualID}
	case *ast.StatusCode:
		return []ast.QualifierKind{ast.QualID}
	case *ast.TypeDef:
		return []ast.QualifierKind{ast.QualTag}
	case *ast.FloatType:
		return []ast.QualifierKind{ast.QualRange, ast.QualNullable}
	case *ast.BooleanType:
		return []ast.QualifierKind{ast.QualNullable}
	case *ast.StringType:
		return []ast.QualifierKind{ast.QualLength, ast.QualNullable}
	case *ast.ByteStringType:
		return []ast.QualifierKind{ast.QualLength, ast.QualNullable}
	case *ast.NullType:
		return nil
	case *ast.AnyType:
		return nil
	case *ast.SignedIntegerType:
		return []ast.QualifierKind{ast.QualRange, ast.QualNullable}
	case *ast.UnsignedIntegerType:
		return []ast.QualifierKind{ast.QualRange, ast.QualNullable}
	case *ast.StructureType:
		if v.IsFieldGroup {
			return nil
		}

		return []ast.QualifierKind{
			ast.QualExtensible, ast.QualOrder, ast.QualPrivate, ast.QualInvariant, ast.QualNullable,
		}
	case *ast.ChoiceType:
		return []ast.QualifierKind{ast.QualNullable}
	case *ast.ArrayType:
		return []ast.QualifierKind{ast.QualLength, ast.QualNullable}
	case *ast.Field:
		return []ast.QualifierKind{ast.QualTag, ast.QualOptional}
	case *ast.Alternate:
		return []ast.QualifierKind{ast.QualTag}
	case *ast.PatternElement:
		if arr, ok := v.Parent().(*ast.ArrayType); ok && arr.IsList {
			return []ast.QualifierKind{ast.QualTag}
		}

		return nil
	default:
		return nil
	}
}

// checkQualifiers implements invariant 14 in full: every qualifier attached
// to n must be one this node kind allows, and no kind may repeat. A repeated
// order qualifier gets the more specific "multiple order qualifiers" message
// (the three ordering disciplines all share ast.QualOrder, so this one check
// also implements the structure's at-most-one-order-qualifier rule).
func (v *validator) checkQualifiers(n ast.Node) {
	hq, ok := n.(ast.HasQualifiers)
	if !ok {
		return
	}

	allowed := make(map[ast.QualifierKind]bool)
	for _, k := range allowedQualifierKinds(n) {
		allowed[k] = true
	}

	seen := make(map[ast.QualifierKind]bool)

	for _, q := range hq.Qualifiers() {
		if !allowed[q.Kind()] {
			v.col.reportf(q, "%s qualifier not allowed on %s", q.Kind(), n.Describe())
			continue
		}

		if !seen[q.Kind()] {
			seen[q.Kind()] = true
			continue
		}

		if q.Kind() == ast.QualOrder {
			v.col.reportf(q, "multiple order qualifiers")
		} else {
			v.col.reportf(q, "duplicate qualifier")
		}
	}
}

func (v *validator) checkVendor(vn *ast.Vendor) {
	if !ast.IsGlobalScope(vn) {
		v.col.reportf(vn, "VENDOR definition not at global scope")
	}

	idQ := findIDQualifier(vn)
	if idQ == nil {
		v.col.reportf(vn, "id qualifier missing on VENDOR definition")
		return
	}

	if idQ.Vendor.Kind != ast.VendorRefNone || idQ.Number > 65535 {
		v.col.reportf(idQ, "invalid id value for VENDOR definition")
	}
}

func (v *validator) checkProfile(p *ast.Profile) {
	if ast.EnclosingProfile(p) != nil {
		v.col.reportf(p, "nested PROFILE definition")
	}

	idQ := findIDQualifier(p)
	if idQ == nil {
		v.col.reportf(p, "id qualifier missing on PROFILE definition")
	} else {
		switch idQ.Vendor.Kind {
		case ast.VendorRefNone:
			if idQ.Number > 0xFFFFFFFF {
				v.col.reportf(idQ, "invalid id value for PROFILE definition")
			}
		default:
			if idQ.Vendor.Kind == ast.VendorRefByNumber && idQ.Vendor.Number > 0xFFFF {
				v.col.reportf(idQ, "invalid vendor id value for PROFILE definition")
			}

			if idQ.Number > 0xFFFF {
				v.col.reportf(idQ, "invalid profile number value for PROFILE definition")
			}
		}
	}

	v.checkProfileMemberIDs(p)
}

func (v *validator) checkProfileMemberIDs(p *ast.Profile) {
	msgIDs := make(map[uint64]bool)
	statusIDs := make(map[uint64]bool)

	for _, s := range p.Statements {
		switch n := s.(type) {
		case *ast.Message:
			idQ := findIDQualifier(n)
			if idQ == nil {
				continue
			}

			if msgIDs[idQ.Number] {
				v.col.reportf(n, "duplicate message id: %d", idQ.Number)
			}

			msgIDs[idQ.Number] = true
		case *ast.StatusCode:
			idQ := findIDQualifier(n)
			if idQ == nil {
				continue
			}

			if statusIDs[idQ.Number] {
				v.col.reportf(n, "duplicate status code id: %d", idQ.Number)
			}

			statusIDs[idQ.Number] = true
		}
	}
}

func (v *validator) checkMessage(m *ast.Message) {
	if _, ok := m.Parent().(*ast.Profile); !ok {
		v.col.reportf(m, "MESSAGE definition not within PROFILE definition")
	}

	idQ := findIDQualifier(m)
	if idQ == nil {
		v.col.reportf(m, "id qualifier missing on MESSAGE definition")
		return
	}

	if idQ.Number > 255 {
		v.col.reportf(idQ, "invalid id value for MESSAGE definition")
	}
}

func (v *validator) checkStatusCode(s *ast.StatusCode) {
	if _, ok := s.Parent().(*ast.Profile); !ok {
		v.col.reportf(s, "STATUS CODE definition not within PROFILE definition")
	}

	idQ := findIDQualifier(s)
	if idQ == nil {
		v.col.reportf(s, "id qualifier missing on STATUS CODE definition")
		return
	}

	if idQ.Number > 65535 {
		v.col.reportf(idQ, "invalid id value for STATUS CODE definition")
	}
}

// isFieldGroupType reports whether t is, directly or through a resolved type
// reference, a field-group structure. Used by the "FIELD GROUP type not
// allowed" rule for fields and array/list elements.
func isFieldGroupType(t ast.Type) bool {
	switch v := t.(type) {
	case *ast.StructureType:
		return v.IsFieldGroup
	case *ast.ReferencedType:
		if st, ok := v.Terminal.(*ast.StructureType); ok {
			return st.IsFieldGroup
		}
	}

	return false
}

// fieldOcc is one field reached while flattening a structure's direct and
// included fields; origin is the StructureType that directly declares it
// (as opposed to the structure whose allFields() expansion reached it).
type fieldOcc struct {
	field  *ast.Field
	origin *ast.StructureType
}

// collectFields flattens st's directly-declared fields with those of every
// included field group, recursively, in declaration order: exactly the
// concatenation the query API's allFields() exposes.
func collectFields(st *ast.StructureType) []fieldOcc {
	var result []fieldOcc

	for _, f := range st.Fields {
		result = append(result, fieldOcc{field: f, origin: st})
	}

	for _, inc := range st.Includes {
		if inc.Ref == nil {
			continue
		}

		if target, ok := inc.Ref.Terminal.(*ast.StructureType); ok {
			result = append(result, collectFields(target)...)
		}
	}

	return result
}

func (v *validator) checkStructure(st *ast.StructureType) {
	v.checkDuplicateIncludes(st)
	v.checkFieldNames(st)
	v.checkFieldTagsDisjoint(st)
}

func (v *validator) checkDuplicateIncludes(st *ast.StructureType) {
	seen := make(map[*ast.TypeDef]bool)

	for _, inc := range st.Includes {
		if inc.Ref == nil || inc.Ref.Target == nil {
			continue
		}

		if seen[inc.Ref.Target] {
			v.col.reportf(inc, "duplicate includes statement")
			continue
		}

		seen[inc.Ref.Target] = true
	}
}

// checkFieldNames implements the field-name-uniqueness tie-break: a name
// collision between two fields declared directly within the same field group
// is left for that field group's own validation to report, avoiding a
// duplicate report against every structure that includes it. A collision
// between fields contributed by two different included field groups has no
// single origin to defer to, so it is reported here.
func (v *validator) checkFieldNames(st *ast.StructureType) {
	seen := make(map[string]*ast.StructureType)

	for _, occ := range collectFields(st) {
		name := occ.field.Name()

		firstOrigin, ok := seen[name]
		if !ok {
			seen[name] = occ.origin
			continue
		}

		// A duplicate whose origin matches the first occurrence's origin
		// (and that origin isn't st itself) was already, or will already
		// be, reported by that shared field group's own checkFieldNames
		// pass; reporting it again here would duplicate the same error
		// once per including structure.
		if occ.origin != st && occ.origin == firstOrigin {
			continue
		}

		v.col.reportf(occ.field, "duplicate field in %s: %s", st.Describe(), name)
	}
}

// checkFieldTagsDisjoint implements invariant 5's tag-uniqueness half: the
// possible-tag sets of every field reachable from st (direct or included)
// must be pairwise disjoint. The untagged sentinel never participates here;
// a field contributing it is already flagged by checkFieldTag.
func (v *validator) checkFieldTagsDisjoint(st *ast.StructureType) {
	seen := make(map[Tag]bool)

	for _, occ := range collectFields(st) {
		for _, t := range PossibleTags(occ.field) {
			if t.NoTag {
				continue
			}

			if seen[t] {
				v.col.reportf(occ.field, "duplicate tag in %s: %s", st.Describe(), tagString(t))
				continue
			}

			seen[t] = true
		}
	}
}

func tagString(t Tag) string {
	switch {
	case t.ProfileResolved != nil:
		return fmt.Sprintf("%s:%d", ast.FullyQualifiedName(t.ProfileResolved), t.Number)
	case t.HasProfileNumber:
		return fmt.Sprintf("0x%x:%d", t.ProfileNumber, t.Number)
	default:
		return fmt.Sprintf("%d", t.Number)
	}
}

func (v *validator) checkFieldType(f *ast.Field) {
	if isFieldGroupType(f.FieldType) {
		v.col.reportf(f, "FIELD GROUP type not allowed")
	}
}

// checkFieldTag implements invariant 5's tagging half, including the
// mixed-tagged-and-untagged CHOICE OF tie-break: a field whose possible-tags
// set is empty, or contains the untagged sentinel, is missing a tag.
func (v *validator) checkFieldTag(f *ast.Field) {
	if tq := findOwnTagQualifier(f); tq != nil {
		if tq.Shape == ast.TagAnonymous {
			v.col.reportf(f, "invalid use of anonymous tag")
		}

		return
	}

	tags := PossibleTags(f)
	if len(tags) == 0 {
		v.col.reportf(f, "missing tag on structure field: %s", f.Name())
		return
	}

	for _, t := range tags {
		if t.NoTag {
			v.col.reportf(f, "missing tag on structure field: %s", f.Name())
			return
		}
	}
}

func (v *validator) checkArray(at *ast.ArrayType) {
	if at.Uniform != nil && isFieldGroupType(at.Uniform) {
		v.col.reportf(at, "FIELD GROUP type not allowed")
	}

	seen := make(map[string]bool)

	for _, e := range at.Patterned {
		name := e.Name()

		if seen[name] {
			v.col.reportf(e, "duplicate item in %s: %s", at.Describe(), name)
			continue
		}

		seen[name] = true
	}
}

func (v *validator) checkPatternElementType(e *ast.PatternElement) {
	if isFieldGroupType(e.ElemType) {
		v.col.reportf(e, "FIELD GROUP type not allowed")
	}
}

func (v *validator) checkAlternateNames(ct *ast.ChoiceType) {
	seen := make(map[string]bool)

	for _, a := range ct.Alternates {
		name := a.Name()

		if seen[name] {
			v.col.reportf(a, "duplicate CHOICE OF alternate")
			continue
		}

		seen[name] = true
	}
}

func (v *validator) checkEnumBounds(t ast.Type) {
	var enums []ast.EnumValue

	switch it := t.(type) {
	case *ast.SignedIntegerType:
		enums = it.Enums
	case *ast.UnsignedIntegerType:
		enums = it.Enums
	}

	if len(enums) == 0 {
		return
	}

	bounds := EffectiveIntBounds(t)

	for _, e := range enums {
		if !bounds.Contains(e.Value) {
			v.col.reportf(t, "enumerated integer value out of range: %s", e.Value.String())
		}
	}
}

// checkRangeQualifier applies the three range rules together: upper >= lower
// when both bounds are explicit, width restricted to {32,64} on FLOAT, and
// explicit bounds restricted to integers on a SIGNED/UNSIGNED INTEGER parent.
func (v *validator) checkRangeQualifier(r *ast.RangeQualifier) {
	if r.HasWidth {
		if _, onFloat := r.Parent().(*ast.FloatType); onFloat && r.Width != 32 && r.Width != 64 {
			v.col.reportf(r, "only 32bit and 64bit range qualifiers allowed on FLOAT type")
		}

		return
	}

	if r.HasLower && r.HasUpper && r.Upper.Cmp(r.Lower) < 0 {
		v.col.reportf(r, "upper bound of range qualifier must be >= lower bound")
	}

	switch r.Parent().(type) {
	case *ast.SignedIntegerType, *ast.UnsignedIntegerType:
		if (r.HasLower && !r.LowerIsInt) || (r.HasUpper && !r.UpperIsInt) {
			v.col.reportf(r, "bounds values for range qualifier on integer type must be integers")
		}
	}
}

// checkLengthQualifier applies the length bound rule. Lower and Upper are
// unsigned, so the "bounds >= 0" half of the original rule can never fail
// here; only ordering is checked.
func (v *validator) checkLengthQualifier(l *ast.LengthQualifier) {
	if l.HasUpper && l.Upper < l.Lower {
		v.col.reportf(l, "upper bound of length qualifier must be >= lower bound")
	}
}

// checkCrossCollection runs the whole-collection consistency rules: vendors
// (or profiles) sharing a name must share an id, and profiles with distinct
// fully qualified names must have distinct ids.
func (v *validator) checkCrossCollection() {
	vendorIDs := make(map[string]uint64)
	vendorSeen := make(map[string]bool)

	for _, vn := range v.col.index.orderedVendors {
		idQ := findIDQualifier(vn)
		if idQ == nil {
			continue
		}

		name := vn.Name()

		if !vendorSeen[name] {
			vendorSeen[name] = true
			vendorIDs[name] = idQ.Number
			continue
		}

		if vendorIDs[name] != idQ.Number {
			v.col.reportf(vn, "inconsistent vendor id: 0x%x (%d)", idQ.Number, idQ.Number)
		}
	}

	profileIDsByName := make(map[string]uint64)
	profileNameSeen := make(map[string]bool)
	profileOwnerOfID := make(map[uint64]string)

	for _, p := range v.col.index.orderedProfiles {
		id, ok := ProfileID(p)
		if !ok {
			continue
		}

		fqn := ast.FullyQualifiedName(p)

		if !profileNameSeen[fqn] {
			profileNameSeen[fqn] = true
			profileIDsByName[fqn] = id
		} else if profileIDsByName[fqn] != id {
			v.col.reportf(p, "inconsistent profile id: 0x%08X (%d)", id, id)
		}

		if owner, ok := profileOwnerOfID[id]; ok {
			if owner != fqn {
				v.col.reportf(p, "non-unique profile id: 0x%08X (%d)", id, id)
			}
		} else {
			profileOwnerOfID[id] = fqn
		}
	}
}
