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

// walk visits n and every node reachable from it, depth-first,
// pre-order. It is the single shared tree-traversal used by the resolver
// and the validator, so that "visit every node once" always means the same
// thing across passes. On integer, float, string and structure types only
// the qualifier held in the typed Range, Length or Order field is visited;
// the qualifiers of boolean and choice types are not visited.
func walk(n ast.Node, visit func(ast.Node)) {
	visit(n)
	walkChildren(n, func(c ast.Node) { walk(c, visit) })
}

func walkChildren(n ast.Node, visit func(ast.Node)) {
	switch v := n.(type) {
	case *ast.File:
		for _, s := range v.Statements {
			visit(s)
		}
	case *ast.Vendor:
		for _, q := range v.Quals {
			visit(q)
		}
	case *ast.Namespace:
		for _, s := range v.Statements {
			visit(s)
		}
	case *ast.Profile:
		for _, q := range v.Quals {
			visit(q)
		}

		for _, s := range v.Statements {
			visit(s)
		}
	case *ast.Message:
		for _, q := range v.Quals {
			visit(q)
		}

		if v.Payload != nil {
			visit(v.Payload)
		}
	case *ast.StatusCode:
		for _, q := range v.Quals {
			visit(q)
		}
	case *ast.TypeDef:
		for _, q := range v.Quals {
			visit(q)
		}

		if v.Underlying != nil {
			visit(v.Underlying)
		}
	case *ast.SignedIntegerType:
		if v.Range != nil {
			visit(v.Range)
		}
	case *ast.UnsignedIntegerType:
		if v.Range != nil {
			visit(v.Range)
		}
	case *ast.FloatType:
		if v.Range != nil {
			visit(v.Range)
		}
	case *ast.StringType:
		if v.Length != nil {
			visit(v.Length)
		}
	case *ast.ByteStringType:
		if v.Length != nil {
			visit(v.Length)
		}
	case *ast.StructureType:
		if v.Order != nil {
			visit(v.Order)
		}

		for _, f := range v.Fields {
			visit(f)
		}

		for _, inc := range v.Includes {
			visit(inc)
		}
	case *ast.Field:
		for _, q := range v.Quals {
			visit(q)
		}

		if v.FieldType != nil {
			visit(v.FieldType)
		}
	case *ast.Include:
		if v.Ref != nil {
			visit(v.Ref)
		}
	case *ast.ArrayType:
		for _, q := range v.Quals {
			visit(q)
		}

		if v.Uniform != nil {
			visit(v.Uniform)
		}

		for _, e := range v.Patterned {
			visit(e)
		}
	case *ast.PatternElement:
		for _, q := range v.Quals {
			visit(q)
		}

		if v.ElemType != nil {
			visit(v.ElemType)
		}
	case *ast.ChoiceType:
		for _, alt := range v.Alternates {
			visit(alt)
		}
	case *ast.Alternate:
		for _, q := range v.Quals {
			visit(q)
		}

		if v.AltType != nil {
			visit(v.AltType)
		}
	}
}
