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

import "github.com/openweave/openweave-tlv-schema/pkg/ast"

// AllFields returns every field of st, in order: its own directly-declared
// fields followed by those of each included field group, expanded
// recursively. This is the same flattening the validator's field-name and
// field-tag checks use (see collectFields), exposed here read-only for
// consumers such as a code generator.
func AllFields(st *ast.StructureType) []*ast.Field {
	var result []*ast.Field

	for _, occ := range collectFields(st) {
		result = append(result, occ.field)
	}

	return result
}

// GetField returns the first field of st (direct or included, expanded
// recursively) with the given name.
func GetField(st *ast.StructureType, name string) (*ast.Field, bool) {
	for _, f := range AllFields(st) {
		if f.Name() == name {
			return f, true
		}
	}

	return nil, false
}

// GetAlternate returns the alternate of ct with the given name, considering
// only ct's immediate alternates (not those of nested choices).
func GetAlternate(ct *ast.ChoiceType, name string) (*ast.Alternate, bool) {
	for _, a := range ct.Alternates {
		if a.Name() == name {
			return a, true
		}
	}

	return nil, false
}

// AllLeafAlternatesWithNamesAndTags enumerates every leaf alternate of ct
// (recursing into nested choices), each with its effective name and default
// tag. It is a thin, query-facing alias of AllLeafAlternates.
func AllLeafAlternatesWithNamesAndTags(ct *ast.ChoiceType) []LeafAlternate {
	return AllLeafAlternates(ct)
}
