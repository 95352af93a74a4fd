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
	"github.com/openweave/openweave-tlv-schema/pkg/ast"
	"github.com/openweave/openweave-tlv-schema/pkg/source"
)

// defaultSchemaName is the logical source name under which the default
// schema fragment is registered, so it shows up distinctly (rather than as
// "<unknown>") in any diagnostic that happens to reference it.
const defaultSchemaName = "<default-schema>"

// defaultSchemaSourceText mirrors the schema source text a real grammar
// would accept for the default fragment ("common => VENDOR [ id 0 ]"); kept
// here only as documentation, since the tokenizer that would parse it is an
// external collaborator this package does not implement. buildDefaultSchema
// constructs the equivalent AST directly, the same way tests build fixture
// trees without going through a parser.
const defaultSchemaSourceText = "common => VENDOR [ id 0 ]\n"

// buildDefaultSchema constructs the AST for the default schema fragment
// directly: a single global-scope vendor "common" with id 0, plus its own
// per-file source map (every node mapped to the same span, since there is
// no real lexer behind it). Validate loads this exactly once, the first
// time it runs on a collection.
func buildDefaultSchema() (*ast.File, *source.Map[ast.Node]) {
	file := source.NewFile(defaultSchemaName, defaultSchemaSourceText)
	span := source.NewSpan(0, len(defaultSchemaSourceText), 1, 1)
	spans := source.NewMap[ast.Node](file)

	id := ast.NewIDQualifier(ast.VendorRef{Kind: ast.VendorRefNone}, 0)

	vendor := &ast.Vendor{VendorName: "common", Quals: []ast.Qualifier{id}}
	ast.Attach(id, vendor)

	root := &ast.File{FileName: defaultSchemaName, Statements: []ast.Node{vendor}}
	ast.Attach(vendor, root)

	spans.Put(root, span)
	spans.Put(vendor, span)
	spans.Put(id, span)

	return root, spans
}
