// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package compile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmorris/rosie-pattern-language/ast"
	"github.com/vmorris/rosie-pattern-language/env"
	"github.com/vmorris/rosie-pattern-language/peg"
)

func TestCompileBlockWrapsNonAliasBinding(t *testing.T) {
	block := &ast.Block{Stmts: []*ast.Binding{
		{Ref: &ast.Ref{LocalName: "greeting"}, Exp: &ast.Literal{Value: "hi"}},
	}}
	e := env.New()
	violations := CompileBlock(e, block, nil, testOptions())
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}

	b, ok := e.Lookup("greeting", "")
	if !ok {
		t.Fatal("expected greeting to be bound")
	}
	if b.Uncap == nil {
		t.Fatal("expected the wrap policy to set Uncap")
	}
	r := peg.MatchString(b.Peg, "hi")
	if !r.Matched || len(r.Captures) != 1 || r.Captures[0].Label != "greeting" {
		t.Fatalf("expected a single greeting-labeled capture, got %+v", r)
	}
}

func TestCompileBlockAliasBindingNotWrapped(t *testing.T) {
	block := &ast.Block{Stmts: []*ast.Binding{
		{Ref: &ast.Ref{LocalName: "x"}, Exp: &ast.Literal{Value: "x"}, IsAlias: true},
	}}
	e := env.New()
	if violations := CompileBlock(e, block, nil, testOptions()); len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}

	b, _ := e.Lookup("x", "")
	if b.Uncap != nil || !b.Alias {
		t.Fatalf("expected an unwrapped alias binding, got %+v", b)
	}
}

func TestCompileBlockGrammarBindingNotWrapped(t *testing.T) {
	block := &ast.Block{Stmts: []*ast.Binding{
		{Ref: &ast.Ref{LocalName: "S"}, Exp: balancedGrammar()},
	}}
	e := env.New()
	if violations := CompileBlock(e, block, nil, testOptions()); len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}

	b, _ := e.Lookup("S", "")
	if !b.IsGrammar || b.Uncap != nil {
		t.Fatalf("expected an unwrapped grammar binding, got %+v", b)
	}
}

func TestCompileBlockErrorInsertsViolationAndContinues(t *testing.T) {
	block := &ast.Block{Stmts: []*ast.Binding{
		{Ref: &ast.Ref{LocalName: "bad"}, Exp: &ast.Ref{LocalName: "nope"}},
		{Ref: &ast.Ref{LocalName: "ok"}, Exp: &ast.Literal{Value: "y"}},
	}}
	e := env.New()
	violations := CompileBlock(e, block, nil, testOptions())
	require.Len(t, violations, 1, "expected a single compile violation")
	require.Equal(t, ast.Compile, violations[0].Kind)
	require.Equal(t, componentName, violations[0].Who)
	require.Contains(t, violations[0].Message, "unbound identifier: nope")

	bad, _ := e.Lookup("bad", "")
	require.Equal(t, env.KindNovalue, bad.Kind, "expected bad to remain Novalue after its RHS failed")
	ok, found := e.Lookup("ok", "")
	require.True(t, found)
	require.Equal(t, env.KindPattern, ok.Kind, "expected ok to compile despite bad's failure")
}

func TestCompileBlockRebindingProducesNoViolation(t *testing.T) {
	block := &ast.Block{Stmts: []*ast.Binding{
		{Ref: &ast.Ref{LocalName: "x"}, Exp: &ast.Literal{Value: "a"}},
	}}
	e := env.New()
	e.Bind("x", env.NewStringBinding("already-bound"))

	violations := CompileBlock(e, block, nil, testOptions())
	require.Empty(t, violations, "rebinding is only logged at Debug level, not reported as a violation")

	x, found := e.Lookup("x", "")
	require.True(t, found)
	require.Equal(t, env.KindPattern, x.Kind, "expected x to be rebound to the new RHS")
}

func TestEffectivePrefix(t *testing.T) {
	if got := EffectivePrefix(nil); got != "" {
		t.Fatalf("EffectivePrefix(nil) = %q, want empty", got)
	}
	if got := EffectivePrefix(&LoadRequest{ImportPath: "foo", PackageName: "foo"}); got != "foo" {
		t.Fatalf("EffectivePrefix = %q, want foo", got)
	}
	if got := EffectivePrefix(&LoadRequest{ImportPath: "foo", Prefix: "."}); got != "" {
		t.Fatalf("EffectivePrefix with '.' override = %q, want empty", got)
	}
	if got := EffectivePrefix(&LoadRequest{ImportPath: "foo", Prefix: "bar"}); got != "bar" {
		t.Fatalf("EffectivePrefix = %q, want bar", got)
	}
	if got := EffectivePrefix(&LoadRequest{PackageName: "foo"}); got != "" {
		t.Fatalf("EffectivePrefix without importpath = %q, want empty", got)
	}
}
