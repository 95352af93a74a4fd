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
	"strings"
	"testing"

	"github.com/openweave/openweave-tlv-schema/pkg/ast"
	"github.com/openweave/openweave-tlv-schema/pkg/diag"
	"github.com/openweave/openweave-tlv-schema/pkg/source"
)

// evb is a minimal parse-event stream builder standing in for a real
// tokenizer: every call appends one event with a freshly minted, strictly
// increasing span, in the name -> qualifiers -> body -> end order the
// adapter expects for each production.
type evb struct {
	events []ParseEvent
	n      int
}

func newEvb() *evb { return &evb{} }

func (b *evb) span() source.Span {
	b.n++
	return source.NewSpan(b.n, b.n+1, 1, b.n)
}

func (b *evb) push(e ParseEvent) *evb {
	b.events = append(b.events, e)
	return b
}

func (b *evb) BeginDef(k DefinitionKind) *evb {
	return b.push(&EventBeginDefinition{eventBase{b.span()}, k})
}

func (b *evb) EndDef() *evb { return b.push(&EventEndDefinition{eventBase{b.span()}}) }

func (b *evb) Name(s string) *evb { return b.push(&EventName{eventBase{b.span()}, s, false}) }

func (b *evb) BeginType(k TypeKind) *evb { return b.push(&EventBeginType{eventBase{b.span()}, k}) }

func (b *evb) EndType() *evb { return b.push(&EventEndType{eventBase{b.span()}}) }

func (b *evb) BeginField() *evb { return b.push(&EventBeginField{eventBase{b.span()}}) }

func (b *evb) EndField() *evb { return b.push(&EventEndField{eventBase{b.span()}}) }

func (b *evb) Include(ref string) *evb { return b.push(&EventInclude{eventBase{b.span()}, ref}) }

func (b *evb) BeginAlt() *evb { return b.push(&EventBeginAlternate{eventBase{b.span()}}) }

func (b *evb) EndAlt() *evb { return b.push(&EventEndAlternate{eventBase{b.span()}}) }

func (b *evb) BeginPE() *evb { return b.push(&EventBeginPatternElement{eventBase{b.span()}}) }

func (b *evb) EndPE(quant string) *evb {
	return b.push(&EventEndPatternElement{eventBase{b.span()}, quant})
}

func (b *evb) EnumVal(name, val string) *evb {
	return b.push(&EventEnumValue{eventBase{b.span()}, name, val})
}

func (b *evb) NoPayload() *evb { return b.push(&EventMessageNoPayload{eventBase{b.span()}}) }

func (b *evb) Flag(k ast.QualifierKind) *evb {
	return b.push(&EventFlagQualifier{eventBase{b.span()}, int(k)})
}

func (b *evb) Order(k ast.OrderKind) *evb {
	return b.push(&EventOrderQualifier{eventBase{b.span()}, int(k)})
}

func (b *evb) RangeWidth(w uint) *evb {
	return b.push(&EventRangeQualifier{eventBase: eventBase{b.span()}, HasWidth: true, Width: w})
}

func (b *evb) RangeBounds(lowerNum string, hasLower, lowerIsInt bool, upperNum string, hasUpper, upperIsInt bool) *evb {
	return b.push(&EventRangeQualifier{
		eventBase: eventBase{b.span()},
		HasLower:  hasLower, LowerNum: lowerNum, LowerIsInt: lowerIsInt,
		HasUpper: hasUpper, UpperNum: upperNum, UpperIsInt: upperIsInt,
	})
}

func (b *evb) Length(lower uint64, hasUpper bool, upper uint64) *evb {
	return b.push(&EventLengthQualifier{eventBase: eventBase{b.span()}, Lower: lower, HasUpper: hasUpper, Upper: upper})
}

func (b *evb) TagAnon() *evb {
	return b.push(&EventTagQualifier{eventBase: eventBase{b.span()}, Anonymous: true})
}

func (b *evb) Tag(n uint64) *evb {
	return b.push(&EventTagQualifier{eventBase: eventBase{b.span()}, Number: n})
}

func (b *evb) TagProfileCurrent(n uint64) *evb {
	return b.push(&EventTagQualifier{eventBase: eventBase{b.span()}, ProfileCurrent: true, Number: n})
}

func (b *evb) TagProfileName(name string, n uint64) *evb {
	return b.push(&EventTagQualifier{eventBase: eventBase{b.span()}, ProfileIsName: true, ProfileName: name, Number: n})
}

func (b *evb) ID(n uint64) *evb {
	return b.push(&EventIDQualifier{eventBase: eventBase{b.span()}, Number: n})
}

func (b *evb) IDVendorName(name string, n uint64) *evb {
	return b.push(&EventIDQualifier{eventBase: eventBase{b.span()}, VendorIsName: true, VendorName: name, Number: n})
}

func (b *evb) IDVendorNumber(num uint64, n uint64) *evb {
	return b.push(&EventIDQualifier{eventBase: eventBase{b.span()}, VendorIsNum: true, VendorNumber: num, Number: n})
}

// load loads b's accumulated events into a fresh Collection, failing the
// test immediately on a syntax error (every scenario in this package builds
// well-formed event streams; a syntax error here is a test bug).
func load(t *testing.T, b *evb) (*Collection, *ast.File) {
	t.Helper()

	file := source.NewFile("test.weave", "")
	c := NewCollection(nil)

	root, err := c.LoadFromEvents(file, b.events)
	if err != nil {
		t.Fatalf("unexpected syntax error: %s", err.Error())
	}

	return c, root
}

// loadInto adds b's events to an already-existing collection, for tests
// exercising multi-file behaviour (cross-collection consistency checks).
func loadInto(t *testing.T, c *Collection, b *evb) *ast.File {
	t.Helper()

	file := source.NewFile("test.weave", "")

	root, err := c.LoadFromEvents(file, b.events)
	if err != nil {
		t.Fatalf("unexpected syntax error: %s", err.Error())
	}

	return root
}

func messages(diags []diag.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}

	return out
}

func hasMessage(diags []diag.Diagnostic, substr string) bool {
	for _, d := range diags {
		if strings.Contains(d.Message, substr) {
			return true
		}
	}

	return false
}

func countMessages(diags []diag.Diagnostic, substr string) int {
	n := 0

	for _, d := range diags {
		if strings.Contains(d.Message, substr) {
			n++
		}
	}

	return n
}
