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
package source

import "testing"

func TestFileNameAndText(t *testing.T) {
	f := NewFile("schema.weave", "vendor Nest { id 1 }")

	if f.Name() != "schema.weave" {
		t.Fatalf("expected name %q, got %q", "schema.weave", f.Name())
	}

	if f.Text() != "vendor Nest { id 1 }" {
		t.Fatalf("unexpected text: %q", f.Text())
	}
}

func TestFindEnclosingLineFirstLine(t *testing.T) {
	f := NewFile("f", "alpha\nbeta\ngamma\n")

	line := f.FindEnclosingLine(NewSpan(2, 5, 1, 3))

	if line.Number() != 1 {
		t.Fatalf("expected line 1, got %d", line.Number())
	}

	if line.String() != "alpha" {
		t.Fatalf("expected %q, got %q", "alpha", line.String())
	}
}

func TestFindEnclosingLineMiddleLine(t *testing.T) {
	f := NewFile("f", "alpha\nbeta\ngamma\n")

	line := f.FindEnclosingLine(NewSpan(6, 10, 2, 1))

	if line.Number() != 2 {
		t.Fatalf("expected line 2, got %d", line.Number())
	}

	if line.String() != "beta" {
		t.Fatalf("expected %q, got %q", "beta", line.String())
	}

	if line.Start() != 6 {
		t.Fatalf("expected line start offset 6, got %d", line.Start())
	}

	if line.Length() != 4 {
		t.Fatalf("expected line length 4, got %d", line.Length())
	}
}

func TestFindEnclosingLineBeyondEndOfFileReturnsFinalLine(t *testing.T) {
	f := NewFile("f", "alpha\nbeta")

	line := f.FindEnclosingLine(NewSpan(999, 999, 1, 1))

	if line.Number() != 2 {
		t.Fatalf("expected the final line to be returned, got line %d", line.Number())
	}

	if line.String() != "beta" {
		t.Fatalf("expected %q, got %q", "beta", line.String())
	}
}

func TestSyntaxErrorFormatting(t *testing.T) {
	f := NewFile("schema.weave", "bad input")

	err := f.SyntaxError(NewSpan(0, 3, 1, 1), "unexpected token")

	if err.File() != f {
		t.Fatalf("expected File() to return the originating file")
	}

	if err.Message() != "unexpected token" {
		t.Fatalf("expected message %q, got %q", "unexpected token", err.Message())
	}

	want := "schema.weave:1:1: unexpected token"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
