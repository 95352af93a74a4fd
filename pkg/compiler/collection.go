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

// Package compiler implements the TLV Schema compiler core: the parse-event
// adapter, symbol index, resolver, derived-value engine and validator,
// orchestrated by Collection. The concrete grammar/tokenizer, the CLI and the
// code-generation templating engine are external collaborators; this package
// only ever consumes a stream of ParseEvent values with source positions.
package compiler

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/openweave/openweave-tlv-schema/pkg/ast"
	"github.com/openweave/openweave-tlv-schema/pkg/diag"
	"github.com/openweave/openweave-tlv-schema/pkg/source"
)

// Tokenizer turns schema source text into a stream of parse events. It is
// the external collaborator standing in for the schema's concrete grammar
// and lexer: LoadFromText and LoadFromFile delegate to one, but callers that
// already hold parse events (as the test suite does) never need one and can
// use LoadFromEvents.
type Tokenizer interface {
	Tokenize(file *source.File) ([]ParseEvent, *source.SyntaxError)
}

// Collection is a schema collection: every file loaded into it so far,
// together with the symbol index and diagnostics produced by the most
// recent Validate. States progress Empty -> Loaded -> Resolved -> Validated;
// loading never discards a previously loaded file, and Validate recomputes
// Resolved and Validated from scratch every time it runs, so loading
// additional files after a prior Validate simply requires calling it again.
type Collection struct {
	tokenizer Tokenizer

	files []*ast.File
	spans *source.Maps[ast.Node]

	index *symbolIndex
	sink  *diag.Sink

	bootstrapped bool
	validated    bool
}

// NewCollection constructs an empty collection. tokenizer may be nil when
// the caller only ever loads via LoadFromEvents (e.g. a test building a
// parse-event stream directly).
func NewCollection(tokenizer Tokenizer) *Collection {
	return &Collection{
		tokenizer: tokenizer,
		spans:     source.NewMaps[ast.Node](),
		index:     newSymbolIndex(),
		sink:      diag.NewSink(),
	}
}

// LoadFromText tokenizes and adapts a schema given as an in-memory string,
// adding the result to this collection.
func (c *Collection) LoadFromText(name, text string) (*ast.File, *source.SyntaxError) {
	if c.tokenizer == nil {
		panic("compiler: LoadFromText requires a Tokenizer")
	}

	file := source.NewFile(name, text)

	events, err := c.tokenizer.Tokenize(file)
	if err != nil {
		return nil, err
	}

	return c.LoadFromEvents(file, events)
}

// LoadFromFile reads, tokenizes and adapts a schema from disk.
func (c *Collection) LoadFromFile(path string) (*ast.File, *source.SyntaxError) {
	text, readErr := os.ReadFile(path)
	if readErr != nil {
		empty := source.NewFile(path, "")
		return nil, empty.SyntaxError(source.NewSpan(0, 0, 1, 1), readErr.Error())
	}

	return c.LoadFromText(path, string(text))
}

// LoadFromEvents adapts an already-tokenized parse-event stream, adding the
// result to this collection. This is the entry point used by tests and any
// other programmatic caller that constructs events directly rather than
// going through a Tokenizer.
func (c *Collection) LoadFromEvents(file *source.File, events []ParseEvent) (*ast.File, *source.SyntaxError) {
	root, spans, err := Adapt(file, events)
	if err != nil {
		return nil, err
	}

	c.addFile(root, spans)

	return root, nil
}

func (c *Collection) addFile(root *ast.File, spans *source.Map[ast.Node]) {
	c.files = append(c.files, root)
	c.spans.Join(spans)
	c.validated = false

	log.Debugf("compiler: loaded %q (%d top-level statement(s))", root.Name(), len(root.Statements))
}

// Validate runs the resolver and the full validator rule suite over every
// loaded file, transparently loading the default schema fragment first if it
// has not been loaded yet. It is idempotent and safe to call again after
// loading additional files; every binding and diagnostic is recomputed from
// scratch rather than patched incrementally.
func (c *Collection) Validate() []diag.Diagnostic {
	if !c.bootstrapped {
		root, spans := buildDefaultSchema()
		c.addFile(root, spans)
		c.bootstrapped = true
	}

	c.index.reset()
	for _, f := range c.files {
		c.index.indexFile(f)
	}

	c.sink = diag.NewSink()

	newResolver(c).run()
	newValidator(c).run()

	c.validated = true

	return c.sink.All()
}

// Diagnostics returns the diagnostics produced by the most recent Validate
// call, or nil if Validate has never run.
func (c *Collection) Diagnostics() []diag.Diagnostic {
	return c.sink.All()
}

// spanOf returns the source file and span registered for n, if any. Nodes
// of the default schema fragment are registered against its built-in source
// text; any node with no registered span reports ok=false.
func (c *Collection) spanOf(n ast.Node) (file *source.File, span source.Span, ok bool) {
	if !c.spans.Has(n) {
		return nil, source.Span{}, false
	}

	file, span = c.spans.Get(n)

	return file, span, true
}

// AllFiles returns every file loaded into this collection, in load order
// (including the default schema fragment, once Validate has run).
func (c *Collection) AllFiles() []*ast.File {
	return append([]*ast.File(nil), c.files...)
}

// AllNodes returns every node reachable from any loaded file for which
// filter returns true (or every node at all, if filter is nil).
func (c *Collection) AllNodes(filter func(ast.Node) bool) []ast.Node {
	var result []ast.Node

	for _, f := range c.files {
		walk(f, func(n ast.Node) {
			if filter == nil || filter(n) {
				result = append(result, n)
			}
		})
	}

	return result
}

// GetVendor looks up a vendor by its bare name.
func (c *Collection) GetVendor(name string) (*ast.Vendor, bool) {
	return c.index.lookupVendor(name)
}

// GetProfile looks up a profile by its fully qualified (dotted) name.
func (c *Collection) GetProfile(fqn string) (*ast.Profile, bool) {
	return c.index.lookupProfile(fqn)
}

// GetTypeDef looks up a type definition by its fully qualified (dotted) name.
func (c *Collection) GetTypeDef(fqn string) (*ast.TypeDef, bool) {
	return c.index.lookupTypeDef(fqn)
}

// GetNamespaces returns every namespace registered under the given fully
// qualified name (ordinarily zero or one, but nothing prevents the same
// dotted path being declared, and thus merged, across multiple files).
func (c *Collection) GetNamespaces(fqn string) []*ast.Namespace {
	return append([]*ast.Namespace(nil), c.index.namespaces[fqn]...)
}
