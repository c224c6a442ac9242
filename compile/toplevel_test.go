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

func TestCompileTopLevelForceWrapsNonReference(t *testing.T) {
	b, err := CompileTopLevel(env.New(), &ast.Literal{Value: "hi"}, testOptions())
	if err != nil {
		t.Fatalf("CompileTopLevel: %v", err)
	}
	if b.Alias {
		t.Fatal("expected the alias flag to be cleared")
	}
	r := peg.MatchString(b.Peg, "hi")
	if !r.Matched || len(r.Captures) != 1 || r.Captures[0].Label != "*" {
		t.Fatalf("expected a single '*'-labeled capture, got %+v", r)
	}
}

func TestCompileTopLevelForceWrapsGrammar(t *testing.T) {
	b, err := CompileTopLevel(env.New(), balancedGrammar(), testOptions())
	if err != nil {
		t.Fatalf("CompileTopLevel: %v", err)
	}
	r := peg.MatchString(b.Peg, "aabb")
	if !r.Matched || len(r.Captures) != 1 || r.Captures[0].Label != "*" {
		t.Fatalf("expected a single '*'-labeled capture over the grammar, got %+v", r)
	}
}

func TestCompileTopLevelWrapsAliasReference(t *testing.T) {
	e := env.New()
	e.Bind("greeting", env.NewPatternBinding(peg.Lit([]byte("hi")), nil, true, true, nil))

	b, err := CompileTopLevel(e, &ast.Ref{LocalName: "greeting"}, testOptions())
	if err != nil {
		t.Fatalf("CompileTopLevel: %v", err)
	}
	if b.Alias {
		t.Fatal("expected the alias flag to be cleared on the returned binding")
	}
	r := peg.MatchString(b.Peg, "hi")
	if !r.Matched || len(r.Captures) != 1 || r.Captures[0].Label != "*" {
		t.Fatalf("expected an alias reference to be wrapped with '*', got %+v", r)
	}
}

func TestCompileTopLevelNonAliasReferenceUnchanged(t *testing.T) {
	e := env.New()
	already := peg.Capture("greeting", peg.Lit([]byte("hi")))
	e.Bind("greeting", env.NewPatternBinding(already, peg.Lit([]byte("hi")), false, true, nil))

	b, err := CompileTopLevel(e, &ast.Ref{LocalName: "greeting"}, testOptions())
	if err != nil {
		t.Fatalf("CompileTopLevel: %v", err)
	}
	r := peg.MatchString(b.Peg, "hi")
	if !r.Matched || len(r.Captures) != 1 || r.Captures[0].Label != "greeting" {
		t.Fatalf("expected the existing greeting label to survive untouched, got %+v", r)
	}
}
