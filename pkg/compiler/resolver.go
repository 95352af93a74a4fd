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
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/openweave/openweave-tlv-schema/pkg/ast"
	"github.com/openweave/openweave-tlv-schema/pkg/diag"
)

// resolver runs the three resolution passes over every file currently
// loaded into a collection. Each pass is idempotent, so re-running
// Validate after additional files are loaded simply recomputes every
// binding from scratch; nothing is incrementally patched.
type resolver struct {
	col *Collection
}

func newResolver(col *Collection) *resolver {
	return &resolver{col: col}
}

// run executes passes A, B and C in order, reporting into col.sink.
func (r *resolver) run() {
	refs, includes := r.collectReferences()

	log.Debugf("resolver pass A: resolving %d type references", len(refs)+len(includes))
	r.passA(refs, includes)

	log.Debugf("resolver pass B: flattening type-definition chains")
	r.passB(refs, includes)

	log.Debugf("resolver pass C: resolving vendor and profile references")
	r.passC()
}

// collectReferences walks every loaded file and returns every ReferencedType
// node reachable from a type position, plus every includes-statement, in
// file-load order.
func (r *resolver) collectReferences() (refs []*ast.ReferencedType, includes []*ast.Include) {
	for _, f := range r.col.files {
		walk(f, func(n ast.Node) {
			switch v := n.(type) {
			case *ast.ReferencedType:
				refs = append(refs, v)
			case *ast.Include:
				includes = append(includes, v)
			}
		})
	}

	return refs, includes
}

// passA resolves each reference (and each includes-statement's implicit
// reference) against the symbol index, searching `ns.name` for every
// enclosing namespace innermost-first, then the bare name.
func (r *resolver) passA(refs []*ast.ReferencedType, includes []*ast.Include) {
	for _, rt := range refs {
		r.resolveOne(rt)
	}

	for _, inc := range includes {
		r.resolveOne(inc.Ref)
	}
}

func (r *resolver) resolveOne(rt *ast.ReferencedType) {
	if td, ok := r.searchTypeDef(rt); ok {
		rt.Target = td
		return
	}

	r.col.reportf(rt, "invalid type reference: %s", rt.RefName)
}

func (r *resolver) searchTypeDef(rt *ast.ReferencedType) (*ast.TypeDef, bool) {
	for _, ns := range ast.EnclosingNamespaces(rt) {
		fqn := ast.FullyQualifiedName(ns)

		key := rt.RefName
		if fqn != "" {
			key = fqn + "." + rt.RefName
		}

		if td, ok := r.col.index.lookupTypeDef(key); ok {
			return td, true
		}
	}

	return r.col.index.lookupTypeDef(rt.RefName)
}

// passB follows each type definition's own underlying-type chain to its
// terminal (non-reference) type, detecting cycles by tracking the current
// recursion path. Every participant of a detected cycle is reported once,
// with the same de-duplicated "circular type reference: a|b|c" message.
func (r *resolver) passB(refs []*ast.ReferencedType, includes []*ast.Include) {
	terminal := make(map[*ast.TypeDef]ast.Type)

	for _, td := range r.col.index.orderedTypeDefs {
		r.flatten(td, nil, terminal)
	}

	for _, rt := range refs {
		if rt.Target != nil {
			rt.Terminal, _ = terminal[rt.Target]
		}
	}

	for _, inc := range includes {
		if inc.Ref.Target != nil {
			inc.Ref.Terminal, _ = terminal[inc.Ref.Target]
		}
	}
}

func (r *resolver) flatten(td *ast.TypeDef, path []*ast.TypeDef, terminal map[*ast.TypeDef]ast.Type) ast.Type {
	if t, done := terminal[td]; done {
		return t
	}

	for i, p := range path {
		if p == td {
			r.reportCycle(path[i:])

			for _, victim := range path[i:] {
				terminal[victim] = nil
			}

			return nil
		}
	}

	ref, isRef := td.Underlying.(*ast.ReferencedType)
	if !isRef {
		terminal[td] = td.Underlying
		return td.Underlying
	}

	if ref.Target == nil {
		terminal[td] = nil
		return nil
	}

	t := r.flatten(ref.Target, append(path, td), terminal)
	if _, already := terminal[td]; !already {
		terminal[td] = t
	}

	return t
}

func (r *resolver) reportCycle(cycle []*ast.TypeDef) {
	names := make([]string, len(cycle))
	for i, td := range cycle {
		names[i] = td.Name()
	}

	msg := fmt.Sprintf("circular type reference: %s", strings.Join(names, "|"))
	for _, td := range cycle {
		r.col.reportf(td, "%s", msg)
	}
}

// passC resolves every profile-scoped id qualifier's vendor slot and every
// tag qualifier's profile slot, including the `*` current-profile
// reference.
func (r *resolver) passC() {
	for _, f := range r.col.files {
		walk(f, func(n ast.Node) {
			switch v := n.(type) {
			case *ast.IDQualifier:
				r.resolveIDVendor(v)
			case *ast.TagQualifier:
				r.resolveTagProfile(v)
			}
		})
	}
}

func (r *resolver) resolveIDVendor(id *ast.IDQualifier) {
	if _, isProfile := id.Parent().(*ast.Profile); !isProfile {
		return
	}

	if id.Vendor.Kind != ast.VendorRefByName {
		return
	}

	if v, ok := r.col.index.lookupVendor(id.Vendor.Name); ok {
		id.Vendor.Resolved = v
		return
	}

	r.col.reportf(id, "invalid vendor reference: %s", id.Vendor.Name)
}

func (r *resolver) resolveTagProfile(tag *ast.TagQualifier) {
	if tag.Shape != ast.TagProfileSpecific {
		return
	}

	switch tag.Profile.Kind {
	case ast.ProfileRefCurrent:
		if p := ast.EnclosingProfile(tag); p != nil {
			tag.Profile.Resolved = p
		} else {
			r.col.reportf(tag, "invalid reference to current profile")
		}
	case ast.ProfileRefByName:
		if p, ok := r.searchProfile(tag); ok {
			tag.Profile.Resolved = p
		} else {
			r.col.reportf(tag, "invalid profile reference: %s", tag.Profile.Name)
		}
	case ast.ProfileRefByNumber:
		// Resolved by numeric id at derived-value / validation time; no
		// node-identity resolution is possible here.
	}
}

func (r *resolver) searchProfile(tag *ast.TagQualifier) (*ast.Profile, bool) {
	for _, ns := range ast.EnclosingNamespaces(tag) {
		fqn := ast.FullyQualifiedName(ns)

		key := tag.Profile.Name
		if fqn != "" {
			key = fqn + "." + tag.Profile.Name
		}

		if p, ok := r.col.index.lookupProfile(key); ok {
			return p, true
		}
	}

	return r.col.index.lookupProfile(tag.Profile.Name)
}

// reportf is a small convenience used throughout the resolver and validator
// to anchor a formatted diagnostic at a node's registered source span.
func (c *Collection) reportf(n ast.Node, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	if file, span, ok := c.spanOf(n); ok {
		c.sink.Report(diag.New(msg).At(file, span))
		return
	}

	c.sink.Report(diag.New(msg))
}
