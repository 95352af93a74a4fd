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
	"math/big"
	"strconv"
	"strings"

	"github.com/openweave/openweave-tlv-schema/pkg/ast"
	"github.com/openweave/openweave-tlv-schema/pkg/source"
)

// adaptError wraps the single terminating *source.SyntaxError an adapter
// run may produce; internal parse functions panic with this rather than
// threading an error return through every recursive call, and Adapt
// recovers it at the top. This mirrors the teacher's own recursive-descent
// parser, which signals malformed input by panicking with its own sentinel
// and recovering once at the entry point.
type adaptError struct {
	err *source.SyntaxError
}

// adapter consumes a flat sequence of ParseEvent values and builds the
// corresponding AST, registering every node's source span as it goes.
type adapter struct {
	file     *source.File
	events   []ParseEvent
	pos      int
	lastSpan source.Span
	spans    *source.Map[ast.Node]
}

// Adapt builds a *ast.File and its per-file source map from a flat sequence
// of parse events. It is the adapter's only entry point; a real
// tokenizer/grammar (an external collaborator) is expected to produce
// events in the order described by the adapter's contract (name ->
// qualifier list -> body, for each production).
func Adapt(file *source.File, events []ParseEvent) (root *ast.File, spans *source.Map[ast.Node], err *source.SyntaxError) {
	a := &adapter{file: file, events: events, spans: source.NewMap[ast.Node](file)}

	defer func() {
		if r := recover(); r != nil {
			if ae, ok := r.(adaptError); ok {
				err = ae.err
				return
			}

			panic(r)
		}
	}()

	root = a.parseFile()
	spans = a.spans

	return root, spans, nil
}

func (a *adapter) peek() ParseEvent {
	if a.pos < len(a.events) {
		return a.events[a.pos]
	}

	return nil
}

func (a *adapter) next() ParseEvent {
	e := a.peek()
	if e != nil {
		a.lastSpan = e.Span()
		a.pos++
	}

	return e
}

func (a *adapter) fail(span source.Span, msg string) {
	panic(adaptError{a.file.SyntaxError(span, msg)})
}

func (a *adapter) registerSpan(n ast.Node, span source.Span) {
	a.spans.Put(n, span)
}

func joinSpan(begin, end source.Span) source.Span {
	return source.NewSpan(begin.Start(), end.End(), begin.Line(), begin.Column())
}

// dedent strips the common leading whitespace from every non-blank line of
// a documentation comment and trims surrounding blank lines, mirroring how a
// doc-comment block is indented in schema source relative to its column.
func dedent(text string) string {
	lines := strings.Split(text, "\n")
	minIndent := -1

	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}

		indent := len(l) - len(strings.TrimLeft(l, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}

	if minIndent <= 0 {
		return strings.TrimSpace(text)
	}

	for i, l := range lines {
		if len(l) >= minIndent {
			lines[i] = l[minIndent:]
		} else {
			lines[i] = strings.TrimLeft(l, " \t")
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// normalizeQuantifier applies the `?`/`*`/`+`/`{n}`/`{n..m}`/unquantified
// normalisation rules to a pattern element's raw quantifier token.
func normalizeQuantifier(token string) ast.Quantifier {
	switch token {
	case "?":
		return ast.Quantifier{Lower: 0, Upper: 1}
	case "*":
		return ast.Quantifier{Lower: 0, Unbounded: true}
	case "+":
		return ast.Quantifier{Lower: 1, Unbounded: true}
	case "":
		return ast.Quantifier{Lower: 1, Upper: 1}
	}

	trimmed := strings.TrimSuffix(strings.TrimPrefix(token, "{"), "}")
	if idx := strings.Index(trimmed, ".."); idx >= 0 {
		lo, _ := strconv.ParseUint(trimmed[:idx], 10, 64)

		hiStr := trimmed[idx+2:]
		if hiStr == "*" {
			return ast.Quantifier{Lower: lo, Unbounded: true}
		}

		hi, _ := strconv.ParseUint(hiStr, 10, 64)

		return ast.Quantifier{Lower: lo, Upper: hi}
	}

	n, _ := strconv.ParseUint(trimmed, 10, 64)

	return ast.Quantifier{Lower: n, Upper: n}
}

func (a *adapter) collectLeadingDoc() string {
	var docs []string

	for {
		d, ok := a.peek().(*EventDoc)
		if !ok {
			break
		}

		a.next()
		docs = append(docs, dedent(d.Text))
	}

	return strings.Join(docs, "\n")
}

func (a *adapter) expectBeginDefinition() *EventBeginDefinition {
	ev := a.next()
	if ev == nil {
		a.fail(a.lastSpan, "unexpected end of input, expected definition")
	}

	bd, ok := ev.(*EventBeginDefinition)
	if !ok {
		a.fail(ev.Span(), "expected definition")
	}

	return bd
}

func (a *adapter) expectEndDefinition() *EventEndDefinition {
	ev := a.next()
	if ev == nil {
		a.fail(a.lastSpan, "unexpected end of input, expected '}'")
	}

	ed, ok := ev.(*EventEndDefinition)
	if !ok {
		a.fail(ev.Span(), "expected end of definition, missing '}'")
	}

	return ed
}

func (a *adapter) expectBeginType() *EventBeginType {
	ev := a.next()
	if ev == nil {
		a.fail(a.lastSpan, "unexpected end of input, expected type")
	}

	bt, ok := ev.(*EventBeginType)
	if !ok {
		a.fail(ev.Span(), "expected type")
	}

	return bt
}

func (a *adapter) expectEndType() *EventEndType {
	ev := a.next()
	if ev == nil {
		a.fail(a.lastSpan, "unexpected end of input, expected ']' or '}'")
	}

	et, ok := ev.(*EventEndType)
	if !ok {
		a.fail(ev.Span(), "expected end of type")
	}

	return et
}

func (a *adapter) expectEndField() *EventEndField {
	ev := a.next()
	if ev == nil {
		a.fail(a.lastSpan, "unexpected end of input, expected end of field")
	}

	ef, ok := ev.(*EventEndField)
	if !ok {
		a.fail(ev.Span(), "expected end of field")
	}

	return ef
}

func (a *adapter) expectEndAlternate() *EventEndAlternate {
	ev := a.next()
	if ev == nil {
		a.fail(a.lastSpan, "unexpected end of input, expected end of alternate")
	}

	ea, ok := ev.(*EventEndAlternate)
	if !ok {
		a.fail(ev.Span(), "expected end of alternate")
	}

	return ea
}

func (a *adapter) expectEndPatternElement() *EventEndPatternElement {
	ev := a.next()
	if ev == nil {
		a.fail(a.lastSpan, "unexpected end of input, expected end of element")
	}

	ep, ok := ev.(*EventEndPatternElement)
	if !ok {
		a.fail(ev.Span(), "expected end of element")
	}

	return ep
}

func (a *adapter) parseName() (string, source.Span) {
	ev := a.next()
	if ev == nil {
		a.fail(a.lastSpan, "unexpected end of input, expected name")
	}

	n, ok := ev.(*EventName)
	if !ok {
		a.fail(ev.Span(), "expected name")
	}

	return n.Name, n.Span()
}

func (a *adapter) buildQualifier(ev QualifierEvent) ast.Qualifier {
	switch q := ev.(type) {
	case *EventFlagQualifier:
		return ast.NewFlagQualifier(ast.QualifierKind(q.Kind))
	case *EventOrderQualifier:
		return ast.NewOrderQualifier(ast.OrderKind(q.Order))
	case *EventRangeQualifier:
		return a.buildRangeQualifier(q)
	case *EventLengthQualifier:
		return ast.NewLengthQualifier(q.Lower, q.HasUpper, q.Upper)
	case *EventTagQualifier:
		return a.buildTagQualifier(q)
	case *EventIDQualifier:
		return a.buildIDQualifier(q)
	default:
		a.fail(ev.Span(), "unrecognised qualifier event")
		return nil
	}
}

func (a *adapter) buildRangeQualifier(ev *EventRangeQualifier) *ast.RangeQualifier {
	if ev.HasWidth {
		return ast.NewWidthRangeQualifier(ev.Width)
	}

	var lower, upper *big.Rat

	if ev.HasLower {
		lower = new(big.Rat)
		if _, ok := lower.SetString(ev.LowerNum); !ok {
			a.fail(ev.Span(), fmt.Sprintf("invalid numeric literal: %s", ev.LowerNum))
		}
	}

	if ev.HasUpper {
		upper = new(big.Rat)
		if _, ok := upper.SetString(ev.UpperNum); !ok {
			a.fail(ev.Span(), fmt.Sprintf("invalid numeric literal: %s", ev.UpperNum))
		}
	}

	return ast.NewBoundsRangeQualifier(lower, upper, ev.LowerIsInt, ev.UpperIsInt)
}

func (a *adapter) buildTagQualifier(ev *EventTagQualifier) *ast.TagQualifier {
	if ev.Anonymous {
		return ast.NewAnonymousTag()
	}

	if !ev.ProfileIsName && !ev.ProfileIsNum && !ev.ProfileCurrent {
		return ast.NewContextSpecificTag(ev.Number)
	}

	var ref ast.ProfileRef

	switch {
	case ev.ProfileCurrent:
		ref = ast.ProfileRef{Kind: ast.ProfileRefCurrent}
	case ev.ProfileIsName:
		ref = ast.ProfileRef{Kind: ast.ProfileRefByName, Name: ev.ProfileName}
	case ev.ProfileIsNum:
		ref = ast.ProfileRef{Kind: ast.ProfileRefByNumber, Number: ev.ProfileNumber}
	}

	return ast.NewProfileSpecificTag(ref, ev.Number)
}

func (a *adapter) buildIDQualifier(ev *EventIDQualifier) *ast.IDQualifier {
	var ref ast.VendorRef

	switch {
	case ev.VendorIsName:
		ref = ast.VendorRef{Kind: ast.VendorRefByName, Name: ev.VendorName}
	case ev.VendorIsNum:
		ref = ast.VendorRef{Kind: ast.VendorRefByNumber, Number: ev.VendorNumber}
	default:
		ref = ast.VendorRef{Kind: ast.VendorRefNone}
	}

	return ast.NewIDQualifier(ref, ev.Number)
}

func (a *adapter) parseQualifiers() []ast.Qualifier {
	var quals []ast.Qualifier

	for {
		qev, ok := a.peek().(QualifierEvent)
		if !ok {
			break
		}

		a.next()

		q := a.buildQualifier(qev)
		a.registerSpan(q, qev.Span())
		quals = append(quals, q)
	}

	return quals
}

// findQual returns the first qualifier of the given kind in quals, or nil if
// none is present. Unlike ast.FindQualifier, it operates on a bare slice
// collected by parseQualifiers before the qualifiers are attached to their
// owning node.
func findQual(quals []ast.Qualifier, kind ast.QualifierKind) ast.Qualifier {
	for _, q := range quals {
		if q.Kind() == kind {
			return q
		}
	}

	return nil
}

func (a *adapter) parseFile() *ast.File {
	root := &ast.File{FileName: a.file.Name()}

	for a.peek() != nil {
		stmt := a.parseStatement()
		root.Statements = append(root.Statements, stmt)
		ast.Attach(stmt, root)
	}

	return root
}

func (a *adapter) parseStatementsUntilEnd() []ast.Node {
	var stmts []ast.Node

	for {
		p := a.peek()
		if p == nil {
			a.fail(a.lastSpan, "unexpected end of input, expected statement or '}'")
		}

		if _, ok := p.(*EventEndDefinition); ok {
			break
		}

		stmts = append(stmts, a.parseStatement())
	}

	return stmts
}

func (a *adapter) parseStatement() ast.Node {
	doc := a.collectLeadingDoc()
	begin := a.expectBeginDefinition()

	switch begin.Kind {
	case DefVendor:
		return a.parseVendor(begin, doc)
	case DefNamespace:
		return a.parseNamespace(begin, doc)
	case DefProfile:
		return a.parseProfile(begin, doc)
	case DefMessage:
		return a.parseMessage(begin, doc)
	case DefStatusCode:
		return a.parseStatusCode(begin, doc)
	case DefTypeDef:
		return a.parseTypeDef(begin, doc)
	default:
		a.fail(begin.Span(), "unrecognised definition kind")
		return nil
	}
}

func (a *adapter) parseVendor(begin *EventBeginDefinition, doc string) *ast.Vendor {
	name, _ := a.parseName()
	quals := a.parseQualifiers()
	end := a.expectEndDefinition()

	v := &ast.Vendor{VendorName: name, Quals: quals}
	v.SetDocumentation(doc)

	for _, q := range quals {
		ast.Attach(q, v)
	}

	a.registerSpan(v, joinSpan(begin.Span(), end.Span()))

	return v
}

// parseNamespace handles dotted namespace expansion: "a.b.c" becomes three
// nested namespace nodes in left-to-right outer-to-inner order, each
// inheriting the same source reference, with the innermost owning the
// nested statements.
func (a *adapter) parseNamespace(begin *EventBeginDefinition, doc string) ast.Node {
	name, _ := a.parseName()
	stmts := a.parseStatementsUntilEnd()
	end := a.expectEndDefinition()
	span := joinSpan(begin.Span(), end.Span())

	parts := strings.Split(name, ".")
	chain := make([]*ast.Namespace, len(parts))

	for i, part := range parts {
		ns := &ast.Namespace{NamespaceName: part}
		a.registerSpan(ns, span)
		chain[i] = ns
	}

	for i := 0; i < len(chain)-1; i++ {
		chain[i].Statements = []ast.Node{chain[i+1]}
		ast.Attach(chain[i+1], chain[i])
	}

	innermost := chain[len(chain)-1]
	innermost.Statements = stmts

	for _, s := range stmts {
		ast.Attach(s, innermost)
	}

	chain[0].SetDocumentation(doc)

	return chain[0]
}

func (a *adapter) parseProfile(begin *EventBeginDefinition, doc string) *ast.Profile {
	name, _ := a.parseName()
	quals := a.parseQualifiers()
	stmts := a.parseStatementsUntilEnd()
	end := a.expectEndDefinition()

	p := &ast.Profile{Quals: quals}
	p.NamespaceName = name
	p.Statements = stmts
	p.SetDocumentation(doc)

	for _, q := range quals {
		ast.Attach(q, p)
	}

	for _, s := range stmts {
		ast.Attach(s, p)
	}

	a.registerSpan(p, joinSpan(begin.Span(), end.Span()))

	return p
}

func (a *adapter) parseMessage(begin *EventBeginDefinition, doc string) *ast.Message {
	name, _ := a.parseName()
	quals := a.parseQualifiers()

	var (
		payload   ast.Type
		noPayload bool
	)

	if _, ok := a.peek().(*EventMessageNoPayload); ok {
		a.next()
		noPayload = true
	} else {
		payload = a.parseType()
	}

	end := a.expectEndDefinition()

	m := &ast.Message{MessageName: name, Quals: quals, Payload: payload, NoPayload: noPayload}
	m.SetDocumentation(doc)

	for _, q := range quals {
		ast.Attach(q, m)
	}

	if payload != nil {
		ast.Attach(payload, m)
	}

	a.registerSpan(m, joinSpan(begin.Span(), end.Span()))

	return m
}

func (a *adapter) parseStatusCode(begin *EventBeginDefinition, doc string) *ast.StatusCode {
	name, _ := a.parseName()
	quals := a.parseQualifiers()
	end := a.expectEndDefinition()

	s := &ast.StatusCode{StatusName: name, Quals: quals}
	s.SetDocumentation(doc)

	for _, q := range quals {
		ast.Attach(q, s)
	}

	a.registerSpan(s, joinSpan(begin.Span(), end.Span()))

	return s
}

func (a *adapter) parseTypeDef(begin *EventBeginDefinition, doc string) *ast.TypeDef {
	name, _ := a.parseName()
	quals := a.parseQualifiers()
	underlying := a.parseType()
	end := a.expectEndDefinition()

	t := &ast.TypeDef{TypeName: name, Quals: quals, Underlying: underlying}
	t.SetDocumentation(doc)

	for _, q := range quals {
		ast.Attach(q, t)
	}

	ast.Attach(underlying, t)
	a.registerSpan(t, joinSpan(begin.Span(), end.Span()))

	return t
}

func (a *adapter) parseType() ast.Type {
	begin := a.expectBeginType()

	switch begin.Kind {
	case TypeReference:
		return a.parseReferenceType(begin)
	case TypeSignedInteger, TypeUnsignedInteger:
		return a.parseIntegerType(begin)
	case TypeFloat:
		return a.parseFloatType(begin)
	case TypeBoolean:
		quals := a.parseQualifiers()
		end := a.expectEndType()
		t := &ast.BooleanType{Quals: quals}

		for _, q := range quals {
			ast.Attach(q, t)
		}

		a.registerSpan(t, joinSpan(begin.Span(), end.Span()))

		return t
	case TypeString, TypeByteString:
		return a.parseStringType(begin)
	case TypeNull:
		end := a.expectEndType()
		t := &ast.NullType{}
		a.registerSpan(t, joinSpan(begin.Span(), end.Span()))

		return t
	case TypeAny:
		end := a.expectEndType()
		t := &ast.AnyType{}
		a.registerSpan(t, joinSpan(begin.Span(), end.Span()))

		return t
	case TypeStructure, TypeFieldGroup:
		return a.parseStructureType(begin)
	case TypeArray, TypeList:
		return a.parseArrayType(begin)
	case TypeChoiceOf:
		return a.parseChoiceType(begin)
	default:
		a.fail(begin.Span(), "unrecognised type kind")
		return nil
	}
}

func (a *adapter) parseReferenceType(begin *EventBeginType) *ast.ReferencedType {
	name, _ := a.parseName()
	end := a.expectEndType()

	rt := &ast.ReferencedType{RefName: name}
	a.registerSpan(rt, joinSpan(begin.Span(), end.Span()))

	return rt
}

func (a *adapter) parseIntegerType(begin *EventBeginType) ast.Type {
	quals := a.parseQualifiers()
	rangeQ, _ := findQual(quals, ast.QualRange).(*ast.RangeQualifier)

	var enums []ast.EnumValue

	for {
		e, ok := a.peek().(*EventEnumValue)
		if !ok {
			break
		}

		a.next()

		val := new(big.Int)
		if _, ok := val.SetString(e.Value, 10); !ok {
			a.fail(e.Span(), fmt.Sprintf("invalid integer literal: %s", e.Value))
		}

		enums = append(enums, ast.EnumValue{EnumName: e.Name, Value: val})
	}

	end := a.expectEndType()

	var t ast.Type

	if begin.Kind == TypeSignedInteger {
		st := &ast.SignedIntegerType{Quals: quals, Range: rangeQ, Enums: enums}
		t = st
	} else {
		ut := &ast.UnsignedIntegerType{Quals: quals, Range: rangeQ, Enums: enums}
		t = ut
	}

	for _, q := range quals {
		ast.Attach(q, t)
	}

	a.registerSpan(t, joinSpan(begin.Span(), end.Span()))

	return t
}

func (a *adapter) parseFloatType(begin *EventBeginType) ast.Type {
	quals := a.parseQualifiers()
	rangeQ, _ := findQual(quals, ast.QualRange).(*ast.RangeQualifier)

	end := a.expectEndType()

	ft := &ast.FloatType{Quals: quals, Range: rangeQ}
	for _, q := range quals {
		ast.Attach(q, ft)
	}

	a.registerSpan(ft, joinSpan(begin.Span(), end.Span()))

	return ft
}

func (a *adapter) parseStringType(begin *EventBeginType) ast.Type {
	quals := a.parseQualifiers()
	lenQ, _ := findQual(quals, ast.QualLength).(*ast.LengthQualifier)

	end := a.expectEndType()

	var t ast.Type

	if begin.Kind == TypeString {
		st := &ast.StringType{Quals: quals, Length: lenQ}
		t = st
	} else {
		bt := &ast.ByteStringType{Quals: quals, Length: lenQ}
		t = bt
	}

	for _, q := range quals {
		ast.Attach(q, t)
	}

	a.registerSpan(t, joinSpan(begin.Span(), end.Span()))

	return t
}

func (a *adapter) parseStructureType(begin *EventBeginType) *ast.StructureType {
	quals := a.parseQualifiers()
	order, _ := findQual(quals, ast.QualOrder).(*ast.OrderQualifier)

	var (
		fields   []*ast.Field
		includes []*ast.Include
	)

loop:
	for {
		switch ev := a.peek().(type) {
		case *EventBeginField:
			a.next()
			fields = append(fields, a.parseField(ev))
		case *EventInclude:
			a.next()

			rt := &ast.ReferencedType{RefName: ev.RefName}
			a.registerSpan(rt, ev.Span())

			inc := &ast.Include{Ref: rt}
			ast.Attach(rt, inc)
			a.registerSpan(inc, ev.Span())
			includes = append(includes, inc)
		default:
			break loop
		}
	}

	end := a.expectEndType()

	st := &ast.StructureType{
		IsFieldGroup: begin.Kind == TypeFieldGroup,
		Quals:        quals,
		Order:        order,
		Fields:       fields,
		Includes:     includes,
	}

	for _, q := range quals {
		ast.Attach(q, st)
	}

	for _, f := range fields {
		ast.Attach(f, st)
	}

	for _, inc := range includes {
		ast.Attach(inc, st)
	}

	a.registerSpan(st, joinSpan(begin.Span(), end.Span()))

	return st
}

func (a *adapter) parseField(begin *EventBeginField) *ast.Field {
	doc := a.collectLeadingDoc()
	name, _ := a.parseName()
	quals := a.parseQualifiers()
	ftype := a.parseType()
	end := a.expectEndField()

	f := &ast.Field{FieldName: name, Quals: quals, FieldType: ftype}
	f.SetDocumentation(doc)

	for _, q := range quals {
		ast.Attach(q, f)
	}

	ast.Attach(ftype, f)
	a.registerSpan(f, joinSpan(begin.Span(), end.Span()))

	return f
}

func (a *adapter) parseArrayType(begin *EventBeginType) *ast.ArrayType {
	quals := a.parseQualifiers()

	if pe, ok := a.peek().(*EventBeginPatternElement); ok {
		var elems []*ast.PatternElement

		idx := 0

		for {
			pe, ok = a.peek().(*EventBeginPatternElement)
			if !ok {
				break
			}

			a.next()
			idx++
			elems = append(elems, a.parsePatternElement(pe, idx))
		}

		end := a.expectEndType()

		at := &ast.ArrayType{IsList: begin.Kind == TypeList, Quals: quals, Patterned: elems}

		for _, q := range quals {
			ast.Attach(q, at)
		}

		for _, e := range elems {
			ast.Attach(e, at)
		}

		a.registerSpan(at, joinSpan(begin.Span(), end.Span()))

		return at
	}

	elemType := a.parseType()
	end := a.expectEndType()

	at := &ast.ArrayType{IsList: begin.Kind == TypeList, Quals: quals, Uniform: elemType}

	for _, q := range quals {
		ast.Attach(q, at)
	}

	ast.Attach(elemType, at)
	a.registerSpan(at, joinSpan(begin.Span(), end.Span()))

	return at
}

func (a *adapter) parsePatternElement(begin *EventBeginPatternElement, idx int) *ast.PatternElement {
	doc := a.collectLeadingDoc()

	name := fmt.Sprintf("element-%d", idx)
	hasName := false

	if n, ok := a.peek().(*EventName); ok {
		a.next()

		name = n.Name
		hasName = true
	}

	quals := a.parseQualifiers()
	etype := a.parseType()
	end := a.expectEndPatternElement()
	quant := normalizeQuantifier(end.Quantifier)

	pe := &ast.PatternElement{ElemName: name, HasName: hasName, Quals: quals, ElemType: etype, Quant: quant}
	pe.SetDocumentation(doc)

	for _, q := range quals {
		ast.Attach(q, pe)
	}

	ast.Attach(etype, pe)
	a.registerSpan(pe, joinSpan(begin.Span(), end.Span()))

	return pe
}

func (a *adapter) parseChoiceType(begin *EventBeginType) *ast.ChoiceType {
	quals := a.parseQualifiers()

	var alts []*ast.Alternate

	idx := 0

	for {
		ba, ok := a.peek().(*EventBeginAlternate)
		if !ok {
			break
		}

		a.next()
		idx++
		alts = append(alts, a.parseAlternate(ba, idx))
	}

	end := a.expectEndType()

	ct := &ast.ChoiceType{Quals: quals, Alternates: alts}

	for _, q := range quals {
		ast.Attach(q, ct)
	}

	for _, alt := range alts {
		ast.Attach(alt, ct)
	}

	a.registerSpan(ct, joinSpan(begin.Span(), end.Span()))

	return ct
}

func (a *adapter) parseAlternate(begin *EventBeginAlternate, idx int) *ast.Alternate {
	doc := a.collectLeadingDoc()

	name := fmt.Sprintf("alternate-%d", idx)
	hasName := false

	if n, ok := a.peek().(*EventName); ok {
		a.next()

		name = n.Name
		hasName = true
	}

	quals := a.parseQualifiers()
	atype := a.parseType()
	end := a.expectEndAlternate()

	alt := &ast.Alternate{AltName: name, HasName: hasName, Quals: quals, AltType: atype}
	alt.SetDocumentation(doc)

	for _, q := range quals {
		ast.Attach(q, alt)
	}

	ast.Attach(atype, alt)
	a.registerSpan(alt, joinSpan(begin.Span(), end.Span()))

	return alt
}
