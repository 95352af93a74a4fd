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
package ast

import "fmt"

// Vendor declares a single vendor and its numeric id.  Vendor definitions
// are only legal at global scope (outside any namespace or profile).
type Vendor struct {
	base
	doc
	VendorName string
	Quals      []Qualifier
}

// Name returns this vendor's name.
func (v *Vendor) Name() string { return v.VendorName }

// Qualifiers returns the qualifiers attached to this vendor (its id).
func (v *Vendor) Qualifiers() []Qualifier { return v.Quals }

// Describe returns a short debug summary.
func (v *Vendor) Describe() string { return fmt.Sprintf("vendor %s", v.VendorName) }

// Namespace declares a named lexical scope which may nest further
// namespaces, profiles, type definitions, messages, status codes, and
// vendors.
type Namespace struct {
	base
	doc
	NamespaceName string
	Statements    []Node
}

// Name returns this namespace's name.
func (n *Namespace) Name() string { return n.NamespaceName }

// Describe returns a short debug summary.
func (n *Namespace) Describe() string { return fmt.Sprintf("namespace %s", n.NamespaceName) }

// Profile is a namespace which additionally carries an id qualifier scoping
// it to a vendor, and may directly contain message and status code
// definitions.  It is structurally a Namespace (embedding gives it
// Statements, Name, doc for free) distinguished by its own id qualifier.
type Profile struct {
	Namespace
	Quals []Qualifier
}

// Qualifiers returns the qualifiers attached to this profile (its id).
func (p *Profile) Qualifiers() []Qualifier { return p.Quals }

// Describe returns a short debug summary.
func (p *Profile) Describe() string { return fmt.Sprintf("profile %s", p.NamespaceName) }

// Message declares a single message type within an enclosing profile, naming
// its payload structure (or explicitly declaring no payload).
type Message struct {
	base
	doc
	MessageName string
	Quals       []Qualifier
	Payload     Type
	NoPayload   bool
}

// Name returns this message's name.
func (m *Message) Name() string { return m.MessageName }

// Qualifiers returns the qualifiers attached to this message (its id).
func (m *Message) Qualifiers() []Qualifier { return m.Quals }

// Describe returns a short debug summary.
func (m *Message) Describe() string { return fmt.Sprintf("message %s", m.MessageName) }

// StatusCode declares a single named status code within an enclosing
// profile.
type StatusCode struct {
	base
	doc
	StatusName string
	Quals      []Qualifier
}

// Name returns this status code's name.
func (s *StatusCode) Name() string { return s.StatusName }

// Qualifiers returns the qualifiers attached to this status code (its id).
func (s *StatusCode) Qualifiers() []Qualifier { return s.Quals }

// Describe returns a short debug summary.
func (s *StatusCode) Describe() string { return fmt.Sprintf("status-code %s", s.StatusName) }

// TypeDef declares a named type: an alias for (or restriction of) some
// underlying type, optionally carrying its own default tag qualifier which
// every reference to it inherits unless overridden at the point of use.
type TypeDef struct {
	base
	doc
	TypeName   string
	Quals      []Qualifier
	Underlying Type
}

// Name returns this type definition's name.
func (t *TypeDef) Name() string { return t.TypeName }

// Qualifiers returns the qualifiers attached to this type definition (its
// default tag, if any).
func (t *TypeDef) Qualifiers() []Qualifier { return t.Quals }

// Describe returns a short debug summary.
func (t *TypeDef) Describe() string { return fmt.Sprintf("type %s", t.TypeName) }

// File is the root of a single parsed schema source: an ordered sequence of
// top-level vendor, namespace, profile, and type definition statements. A
// Collection (package compiler) aggregates one or more Files.
type File struct {
	base
	FileName   string
	Statements []Node
}

// Name returns the logical name of this source file (matching the
// underlying source.File's name).
func (f *File) Name() string { return f.FileName }

// Describe returns a short debug summary.
func (f *File) Describe() string { return fmt.Sprintf("file %s", f.FileName) }
