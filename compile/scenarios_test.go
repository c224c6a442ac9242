// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package compile

import (
	"testing"

	"github.com/vmorris/rosie-pattern-language/ast"
	"github.com/vmorris/rosie-pattern-language/env"
	"github.com/vmorris/rosie-pattern-language/peg"
)

// TestScenarioRepeatedCaptureNesting is §8 scenario 1: a = [0-9], b = a+,
// matched against "123" produces a single b-labeled capture with one
// a-labeled sub-capture per repetition (the repeated-sub-capture reading
// of the ambiguity the scenario itself calls out).
func TestScenarioRepeatedCaptureNesting(t *testing.T) {
	e := env.New()
	block := &ast.Block{Stmts: []*ast.Binding{
		{Ref: &ast.Ref{LocalName: "a"}, Exp: &ast.CsRange{First: "0", Last: "9"}},
		{Ref: &ast.Ref{LocalName: "b"}, Exp: &ast.Atleast{Exp: &ast.Ref{LocalName: "a"}, Min: 1}},
	}}
	if violations := CompileBlock(e, block, nil, testOptions()); len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}

	b, _ := e.Lookup("b", "")
	r := peg.MatchString(b.Peg, "123")
	if !r.Matched || r.N != 3 {
		t.Fatalf("expected a full 3-byte match, got %+v", r)
	}
	if len(r.Captures) != 1 || r.Captures[0].Label != "b" {
		t.Fatalf("expected a single b-labeled outer capture, got %+v", r.Captures)
	}
	subs := r.Captures[0].Subs
	if len(subs) != 3 {
		t.Fatalf("expected three a-labeled sub-captures (one per repetition), got %+v", subs)
	}
	for _, s := range subs {
		if s.Label != "a" || s.End-s.Start != 1 {
			t.Fatalf("unexpected sub-capture: %+v", s)
		}
	}
}

// TestScenarioNegationZeroWidth is §8 scenario 2.
func TestScenarioNegationZeroWidth(t *testing.T) {
	e := env.New()
	block := &ast.Block{Stmts: []*ast.Binding{
		{Ref: &ast.Ref{LocalName: "x"}, Exp: &ast.Literal{Value: "hi"}},
		{Ref: &ast.Ref{LocalName: "y"}, Exp: &ast.Predicate{Kind: ast.Negation, Exp: &ast.Ref{LocalName: "x"}}},
	}}
	if violations := CompileBlock(e, block, nil, testOptions()); len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}

	y, _ := e.Lookup("y", "")
	if r := peg.MatchString(y.Peg, "hi"); r.Matched {
		t.Fatalf("expected ! x to fail against \"hi\", got %+v", r)
	}
	r := peg.MatchString(y.Peg, "bye")
	if !r.Matched || r.N != 0 {
		t.Fatalf("expected ! x to match \"bye\" consuming 0 bytes, got %+v", r)
	}
}

// TestScenarioGrammarBalanced is §8 scenario 3, already covered at the
// grammar-compiler level by TestCompileGrammarRecursiveBalanced; this
// variant additionally exercises it bound inside a block.
func TestScenarioGrammarBalanced(t *testing.T) {
	e := env.New()
	block := &ast.Block{Stmts: []*ast.Binding{
		{Ref: &ast.Ref{LocalName: "S"}, Exp: balancedGrammar()},
	}}
	if violations := CompileBlock(e, block, nil, testOptions()); len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	s, _ := e.Lookup("S", "")
	mustMatch(t, s.Peg, "aaabbb")
	mustNotMatch(t, s.Peg, "aab")
}

// TestScenarioDigitRepetitionStopsAtNonDigit is §8 scenario 4.
func TestScenarioDigitRepetitionStopsAtNonDigit(t *testing.T) {
	e := env.New()
	block := &ast.Block{Stmts: []*ast.Binding{
		{Ref: &ast.Ref{LocalName: "digit"}, Exp: &ast.CsRange{First: "0", Last: "9"}},
		{Ref: &ast.Ref{LocalName: "num"}, Exp: &ast.Atleast{Exp: &ast.Ref{LocalName: "digit"}, Min: 1}},
	}}
	if violations := CompileBlock(e, block, nil, testOptions()); len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	num, _ := e.Lookup("num", "")
	r := peg.MatchString(num.Peg, "42x")
	if !r.Matched || r.N != 2 {
		t.Fatalf("expected num to match just \"42\", got %+v", r)
	}
	if len(r.Captures) != 1 || r.Captures[0].Label != "num" {
		t.Fatalf("expected a single num-labeled capture, got %+v", r.Captures)
	}
}

// TestScenarioMutualForwardReferenceFails is §8 scenario 6: a = b, b = a
// compiled as a top-level block (not a grammar) leaves both bindings
// Novalue and reports one unbound-identifier violation per binding.
func TestScenarioMutualForwardReferenceFails(t *testing.T) {
	e := env.New()
	block := &ast.Block{Stmts: []*ast.Binding{
		{Ref: &ast.Ref{LocalName: "a"}, Exp: &ast.Ref{LocalName: "b"}},
		{Ref: &ast.Ref{LocalName: "b"}, Exp: &ast.Ref{LocalName: "a"}},
	}}
	violations := CompileBlock(e, block, nil, testOptions())
	if len(violations) != 2 {
		t.Fatalf("expected exactly 2 violations, got %+v", violations)
	}
	for _, v := range violations {
		if v.Kind != ast.Compile {
			t.Fatalf("expected compile violations, got %+v", v)
		}
		if got := v.Message; got != "unbound identifier: b" && got != "unbound identifier: a" {
			t.Fatalf("unexpected violation message: %q", got)
		}
	}

	a, _ := e.Lookup("a", "")
	b, _ := e.Lookup("b", "")
	if a.Kind != env.KindNovalue || b.Kind != env.KindNovalue {
		t.Fatalf("expected both a and b to remain Novalue, got a=%+v b=%+v", a, b)
	}
}
