// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package compile

import (
	"github.com/vmorris/rosie-pattern-language/ast"
	"github.com/vmorris/rosie-pattern-language/env"
	"github.com/vmorris/rosie-pattern-language/logging"
	"github.com/vmorris/rosie-pattern-language/peg"
)

// LoadRequest carries the package-loading context the block compiler
// needs to compute its capture-label prefix (§4.6); it is supplied by the
// (out of scope) module loader, never constructed by this package.
type LoadRequest struct {
	ImportPath  string
	Prefix      string
	PackageName string
}

// EffectivePrefix implements §4.6's prefix rule: request.prefix or
// request.packagename, but only when request.importpath is set and
// request.prefix isn't the "no prefix" marker ".".
func EffectivePrefix(req *LoadRequest) string {
	if req == nil || req.ImportPath == "" {
		return ""
	}
	if req.Prefix == "." {
		return ""
	}
	if req.Prefix != "" {
		return req.Prefix
	}
	return req.PackageName
}

// CompileBlock implements the two-pass block/module compiler (C6, §4.6).
// pkgEnv is mutated in place with each statement's final binding; the
// returned Violations records every Pass 2 failure (compilation of the
// remaining statements continues regardless, per §5's ordering
// guarantee).
func CompileBlock(pkgEnv *env.Environment, block *ast.Block, req *LoadRequest, opts Options) ast.Violations {
	var violations ast.Violations
	prefix := EffectivePrefix(req)
	log := logging.Get()

	// Pass 1: forward-declare every top-level name as Novalue.
	for _, stmt := range block.Stmts {
		id := stmt.Ref.LocalName
		if _, ok := pkgEnv.Lookup(id, ""); ok {
			log.Debugf("rebinding %s", id)
		}
		pkgEnv.Bind(id, env.NewNovalueBinding(!stmt.IsLocal, stmt))
	}

	// Pass 2: compile each RHS in source order.
	for _, stmt := range block.Stmts {
		id := stmt.Ref.LocalName

		var result env.Binding
		var err error
		if g, ok := stmt.Exp.(*ast.Grammar); ok {
			result, err = CompileGrammar(pkgEnv, g, opts, prefix)
		} else {
			result, err = CompileExpr(pkgEnv, stmt.Exp, opts)
		}
		if err != nil {
			violations = violations.Append(ast.NewViolation(ast.Compile, componentName, stmt.Exp.Loc(), stmt.Exp, "%s", err))
			continue
		}

		if !stmt.IsAlias && !result.IsGrammar {
			result = WrapPattern(joinPrefix(prefix, id), result)
		}
		result.Alias = stmt.IsAlias
		result.Exported = !stmt.IsLocal
		result.OriginAST = stmt
		pkgEnv.Bind(id, result)
	}

	return violations
}

// WrapPattern implements the wrap-pattern policy (§4.7): labeling a
// pattern with name at a binding or grammar-rule site peels off any
// previous capture label before applying the new one, so that an alias
// chain like p1 = p2 captures as p1, not p2.
func WrapPattern(label string, b env.Binding) env.Binding {
	if b.Uncap != nil {
		b.Peg = peg.Capture(label, b.Uncap)
		return b
	}
	b.Uncap = b.Peg
	b.Peg = peg.Capture(label, b.Peg)
	return b
}
