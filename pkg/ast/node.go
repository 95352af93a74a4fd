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

// Package ast defines the TLV Schema abstract syntax tree: a tagged tree of
// definitions, qualifiers, types and type components.  Every node carries a
// non-owning back-link to its parent; nodes are constructed and owned
// exclusively by the parse-event adapter (package compiler) and never
// mutated once validation begins.
package ast

import "strings"

// Node is the capability shared by every element of the abstract syntax
// tree: the ability to walk back up to an enclosing node, and to produce a
// short one-line description for debugging / dumping purposes.
type Node interface {
	// Parent returns the non-owning back-link to the enclosing node, or nil
	// for a root (a File).
	Parent() Node
	// Describe returns a short, one-line summary of this node (kind, name,
	// tag/id if applicable), in the spirit of the teacher's Lisp() debug
	// dump.  It deliberately never recurses into children.
	Describe() string
}

// base is embedded by every concrete node type to provide the non-owning
// parent back-link.  It is never exported directly; nodes expose it via the
// Node interface.
type base struct {
	parent Node
}

// Parent returns the enclosing node, or nil if this is a root.
func (b *base) Parent() Node { return b.parent }

// setParent assigns the enclosing node.  Only ever called once, by the
// adapter that constructs the node.
func (b *base) setParent(p Node) { b.parent = p }

// Attach attaches a child node to its parent.  Used by the parse-event
// adapter immediately after constructing each node; exported so that the
// adapter (package compiler) can wire up the tree without this package
// needing to know about every concrete node type that might be a parent.
func Attach(child Node, parent Node) {
	switch c := child.(type) {
	case interface{ setParent(Node) }:
		c.setParent(parent)
	}
}

// HasDocumentation is implemented by every node kind which can carry an
// attached documentation comment (definitions, fields, alternates, pattern
// elements).  Nodes which cannot carry documentation simply do not implement
// this interface.  The adapter accepts a documentation event only where one
// of these nodes begins; a documentation event anywhere else is reported as
// a syntax error rather than dropped.
type HasDocumentation interface {
	Node
	// Documentation returns the dedented documentation string attached to
	// this node, or the empty string if none was attached.
	Documentation() string
}

// doc is embedded by node kinds which support attached documentation.
type doc struct {
	text string
}

// Documentation returns the attached documentation string, or "".
func (d *doc) Documentation() string { return d.text }

// SetDocumentation assigns the attached documentation string.  Called once
// by the parse-event adapter.
func (d *doc) SetDocumentation(text string) { d.text = text }

// HasName is implemented by every node kind which introduces a name into one
// of the symbol tables (vendors, namespaces, profiles, type definitions) or
// whose uniqueness is checked among siblings (messages, status codes,
// fields, alternates, pattern elements).
type HasName interface {
	Node
	// Name returns the unqualified (single-segment) name of this node.
	Name() string
}

// Qualified is implemented by the node kinds whose fully-qualified name
// (dotted path from the outermost enclosing namespace) is used as a symbol
// table key: namespaces, profiles, and type definitions.
type Qualified interface {
	HasName
}

// FullyQualifiedName computes the dotted path from the outermost enclosing
// Namespace/Profile down to (and including) n, by walking the parent chain
// and collecting the name of every ancestor which is itself Qualified.  The
// enclosing File is not part of the path.  Name comparisons elsewhere in the
// compiler are case-sensitive and ASCII, per the schema's naming rules.
func FullyQualifiedName(n Qualified) string {
	var segments []string

	var cur Node = n

	for cur != nil {
		if _, isFile := cur.(*File); isFile {
			break
		}

		if q, ok := cur.(Qualified); ok {
			segments = append([]string{q.Name()}, segments...)
		}

		cur = cur.Parent()
	}

	return strings.Join(segments, ".")
}

// EnclosingProfile returns the nearest enclosing Profile of n, or nil if n is
// not (transitively) contained within a profile.  Used to resolve the `*`
// ("current profile") tag reference and to check the "MESSAGE/STATUS CODE
// definition not within PROFILE definition" and "PROFILE not nested inside
// another PROFILE" rules.
func EnclosingProfile(n Node) *Profile {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if p, ok := cur.(*Profile); ok {
			return p
		}
	}

	return nil
}

// EnclosingNamespaces returns every enclosing Namespace of n (which includes
// Profile, since Profile embeds Namespace), innermost first.  Used by the
// resolver when searching for a type reference's target, which considers
// "ns.name" for each enclosing namespace innermost first before the bare
// name.
func EnclosingNamespaces(n Node) []*Namespace {
	var result []*Namespace

	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		switch v := cur.(type) {
		case *Profile:
			result = append(result, &v.Namespace)
		case *Namespace:
			result = append(result, v)
		}
	}

	return result
}

// IsGlobalScope determines whether n sits directly at the root of a File,
// i.e. has no enclosing Namespace or Profile at all.  Used for the "VENDOR
// definition not at global scope" rule.
func IsGlobalScope(n Node) bool {
	return len(EnclosingNamespaces(n)) == 0
}
