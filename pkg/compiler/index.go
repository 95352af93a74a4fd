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

// symbolIndex holds the four multi-maps a schema collection maintains over
// its loaded files: vendors, namespaces, profiles and type definitions, each
// keyed by name (vendors) or fully qualified name (the rest). Lookups return
// the first-registered entry; later entries are retained only so the
// cross-definition consistency checks (duplicate ids, duplicate names with
// differing ids) can see every declaration sharing a key.
type symbolIndex struct {
	vendors    map[string][]*ast.Vendor
	namespaces map[string][]*ast.Namespace
	profiles   map[string][]*ast.Profile
	typeDefs   map[string][]*ast.TypeDef

	// Parallel ordered slices, in file-load / encounter order, so passes
	// which must report diagnostics deterministically (e.g. circular
	// reference detection) do not depend on Go's randomised map iteration.
	orderedVendors  []*ast.Vendor
	orderedProfiles []*ast.Profile
	orderedTypeDefs []*ast.TypeDef
}

func newSymbolIndex() *symbolIndex {
	return &symbolIndex{
		vendors:    make(map[string][]*ast.Vendor),
		namespaces: make(map[string][]*ast.Namespace),
		profiles:   make(map[string][]*ast.Profile),
		typeDefs:   make(map[string][]*ast.TypeDef),
	}
}

// reset clears every multi-map, so the index can be rebuilt from scratch on
// each Validate call (cheap: proportional to the number of loaded files,
// not to schema complexity).
func (idx *symbolIndex) reset() {
	idx.vendors = make(map[string][]*ast.Vendor)
	idx.namespaces = make(map[string][]*ast.Namespace)
	idx.profiles = make(map[string][]*ast.Profile)
	idx.typeDefs = make(map[string][]*ast.TypeDef)
	idx.orderedVendors = nil
	idx.orderedProfiles = nil
	idx.orderedTypeDefs = nil
}

func (idx *symbolIndex) addVendor(v *ast.Vendor) {
	idx.vendors[v.Name()] = append(idx.vendors[v.Name()], v)
	idx.orderedVendors = append(idx.orderedVendors, v)
}

func (idx *symbolIndex) addNamespace(n *ast.Namespace) {
	key := ast.FullyQualifiedName(n)
	idx.namespaces[key] = append(idx.namespaces[key], n)
}

func (idx *symbolIndex) addProfile(p *ast.Profile) {
	key := ast.FullyQualifiedName(p)
	idx.profiles[key] = append(idx.profiles[key], p)
	idx.orderedProfiles = append(idx.orderedProfiles, p)
}

func (idx *symbolIndex) addTypeDef(t *ast.TypeDef) {
	key := ast.FullyQualifiedName(t)
	idx.typeDefs[key] = append(idx.typeDefs[key], t)
	idx.orderedTypeDefs = append(idx.orderedTypeDefs, t)
}

// lookupVendor returns the first-registered vendor with the given name.
func (idx *symbolIndex) lookupVendor(name string) (*ast.Vendor, bool) {
	if vs := idx.vendors[name]; len(vs) > 0 {
		return vs[0], true
	}

	return nil, false
}

// lookupProfile returns the first-registered profile with the given fully
// qualified name.
func (idx *symbolIndex) lookupProfile(fqn string) (*ast.Profile, bool) {
	if ps := idx.profiles[fqn]; len(ps) > 0 {
		return ps[0], true
	}

	return nil, false
}

// lookupTypeDef returns the first-registered type definition with the given
// fully qualified name.
func (idx *symbolIndex) lookupTypeDef(fqn string) (*ast.TypeDef, bool) {
	if ts := idx.typeDefs[fqn]; len(ts) > 0 {
		return ts[0], true
	}

	return nil, false
}

// indexFile visits every definition node reachable from a file's top-level
// statements, recursing into namespaces/profiles, and registers each
// vendor/namespace/profile/type-def it finds. Messages, status codes,
// fields and the rest of the type tree are not symbol-table entries and are
// left to the resolver/validator's own tree walks.
func (idx *symbolIndex) indexFile(f *ast.File) {
	idx.indexStatements(f.Statements)
}

func (idx *symbolIndex) indexStatements(stmts []ast.Node) {
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *ast.Vendor:
			idx.addVendor(n)
		case *ast.Profile:
			idx.addProfile(n)
			idx.addNamespace(&n.Namespace)
			idx.indexStatements(n.Statements)
		case *ast.Namespace:
			idx.addNamespace(n)
			idx.indexStatements(n.Statements)
		case *ast.TypeDef:
			idx.addTypeDef(n)
		}
	}
}
