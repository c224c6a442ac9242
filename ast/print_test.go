// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import "testing"

func TestPrintLiteralAndRef(t *testing.T) {
	if got, want := Print(&Literal{Value: "hi"}), `"hi"`; got != want {
		t.Errorf("Print(literal) = %q, want %q", got, want)
	}
	if got, want := Print(&Ref{LocalName: "x", Package: "pkg"}), "pkg.x"; got != want {
		t.Errorf("Print(ref) = %q, want %q", got, want)
	}
}

func TestPrintChoiceAndSequence(t *testing.T) {
	n := &Choice{Exps: []Node{&Literal{Value: "a"}, &Literal{Value: "bb"}}}
	if got, want := Print(n), `"a" / "bb"`; got != want {
		t.Errorf("Print(choice) = %q, want %q", got, want)
	}
	seq := &Sequence{Exps: []Node{&Literal{Value: "a"}, &Ref{LocalName: "b"}}}
	if got, want := Print(seq), `"a" b`; got != want {
		t.Errorf("Print(sequence) = %q, want %q", got, want)
	}
}

func TestPrintPredicateAndRepetition(t *testing.T) {
	neg := &Predicate{Kind: Negation, Exp: &Literal{Value: "x"}}
	if got, want := Print(neg), `! "x"`; got != want {
		t.Errorf("Print(negation) = %q, want %q", got, want)
	}
	atleast := &Atleast{Exp: &Ref{LocalName: "digit"}, Min: 1}
	if got, want := Print(atleast), "digit^1"; got != want {
		t.Errorf("Print(atleast) = %q, want %q", got, want)
	}
}

func TestPrintApplicationAndCharsets(t *testing.T) {
	app := &Application{Ref: &Ref{LocalName: "unicode_range"}, Arglist: []Node{&Literal{Value: "48"}, &Literal{Value: "57"}}}
	if got, want := Print(app), `unicode_range("48", "57")`; got != want {
		t.Errorf("Print(application) = %q, want %q", got, want)
	}
	cs := &CsRange{First: "0", Last: "9", Complement: true}
	if got, want := Print(cs), "![0-9]"; got != want {
		t.Errorf("Print(cs_range) = %q, want %q", got, want)
	}
}

func TestPrintNil(t *testing.T) {
	if got, want := Print(nil), "<nil>"; got != want {
		t.Errorf("Print(nil) = %q, want %q", got, want)
	}
}
