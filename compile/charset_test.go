// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package compile

import (
	"testing"

	"github.com/vmorris/rosie-pattern-language/ast"
	"github.com/vmorris/rosie-pattern-language/env"
)

func TestCompileCsNamedDigit(t *testing.T) {
	b, err := CompileExpr(env.New(), &ast.CsNamed{Name: "digit"}, testOptions())
	if err != nil {
		t.Fatalf("CompileExpr: %v", err)
	}
	mustMatch(t, b.Peg, "5")
	mustNotMatch(t, b.Peg, "x")
}

func TestCompileCsNamedUnknown(t *testing.T) {
	_, err := CompileExpr(env.New(), &ast.CsNamed{Name: "bogus"}, testOptions())
	if err == nil || err.Error() != "unknown named charset: bogus" {
		t.Fatalf("err = %v, want unknown named charset", err)
	}
}

func TestCompileCsNamedComplement(t *testing.T) {
	b, err := CompileExpr(env.New(), &ast.CsNamed{Name: "digit", Complement: true}, testOptions())
	if err != nil {
		t.Fatalf("CompileExpr: %v", err)
	}
	mustMatch(t, b.Peg, "x")
	mustNotMatch(t, b.Peg, "5")
}

func TestCompileCsRange(t *testing.T) {
	b, err := CompileExpr(env.New(), &ast.CsRange{First: "a", Last: "f"}, testOptions())
	if err != nil {
		t.Fatalf("CompileExpr: %v", err)
	}
	mustMatch(t, b.Peg, "c")
	mustNotMatch(t, b.Peg, "g")
}

func TestCompileCsList(t *testing.T) {
	b, err := CompileExpr(env.New(), &ast.CsList{Chars: []string{"a", "b", "c"}}, testOptions())
	if err != nil {
		t.Fatalf("CompileExpr: %v", err)
	}
	mustMatch(t, b.Peg, "b")
	mustNotMatch(t, b.Peg, "d")
}

func TestCompileCsExpNestedComplementMerges(t *testing.T) {
	inner := &ast.CsExp{Cexp: &ast.CsNamed{Name: "digit"}, Complement: true}
	outer := &ast.CsExp{Cexp: inner, Complement: true}
	b, err := CompileExpr(env.New(), outer, testOptions())
	if err != nil {
		t.Fatalf("CompileExpr: %v", err)
	}
	// complement XOR complement = not complemented: behaves like digit.
	mustMatch(t, b.Peg, "5")
	mustNotMatch(t, b.Peg, "x")
}

func TestCompileCsUnion(t *testing.T) {
	node := &ast.CsUnion{Cexps: []ast.Node{
		&ast.CsNamed{Name: "digit"},
		&ast.CsNamed{Name: "alpha"},
	}}
	b, err := CompileExpr(env.New(), node, testOptions())
	if err != nil {
		t.Fatalf("CompileExpr: %v", err)
	}
	mustMatch(t, b.Peg, "5")
	mustMatch(t, b.Peg, "q")
	mustNotMatch(t, b.Peg, "_")
}

func TestCompileCsIntersectionNotImplemented(t *testing.T) {
	_, err := CompileExpr(env.New(), &ast.CsIntersection{}, testOptions())
	if err == nil || err.Error() != "character set intersection is not implemented" {
		t.Fatalf("err = %v, want not-implemented", err)
	}
}

func TestCompileCsDifferenceNotImplemented(t *testing.T) {
	_, err := CompileExpr(env.New(), &ast.CsDifference{}, testOptions())
	if err == nil || err.Error() != "character set difference is not implemented" {
		t.Fatalf("err = %v, want not-implemented", err)
	}
}
