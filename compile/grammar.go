// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"
	"strings"

	"github.com/vmorris/rosie-pattern-language/ast"
	"github.com/vmorris/rosie-pattern-language/env"
	"github.com/vmorris/rosie-pattern-language/peg"
)

// CompileGrammar implements the three-pass grammar compiler (C5, §4.5).
// prefix is the capture-label prefix in force at the binding site that
// owns this grammar (its block's prefix, or "" for an anonymous/top-level
// grammar); it is threaded in directly by the block compiler rather than
// recovered from e, since prefix is a property of where the grammar sits,
// not of the grammar itself.
func CompileGrammar(e *env.Environment, g *ast.Grammar, opts Options, prefix string) (env.Binding, error) {
	if len(g.Rules) == 0 {
		return env.Binding{}, fmt.Errorf("invalid expression: empty grammar")
	}
	grammarID := g.Rules[0].Ref.LocalName

	// Pass 1: bind V-refs in a fresh frame.
	inner := e.Extend()
	table := peg.NewRuleTable()
	seen := map[string]bool{}
	for _, rule := range g.Rules {
		id := rule.Ref.LocalName
		if seen[id] {
			return env.Binding{}, fmt.Errorf("duplicate grammar rule name: %s", id)
		}
		seen[id] = true
		inner.Bind(id, env.NewPatternBinding(peg.V(table, id), nil, rule.IsAlias, false, rule))
	}

	labelFor := func(id string) string {
		if id == grammarID {
			return joinPrefix(prefix, id)
		}
		return joinPrefix(prefix, grammarID, id)
	}

	// Pass 2: compile rule bodies, wrapping non-alias rules with their
	// computed capture label.
	for _, rule := range g.Rules {
		id := rule.Ref.LocalName
		body, err := CompileExpr(inner, rule.Exp, opts)
		if err != nil {
			return env.Binding{}, err
		}
		p, err := requirePattern(body, id)
		if err != nil {
			return env.Binding{}, err
		}
		if !rule.IsAlias {
			p = peg.Capture(labelFor(id), p)
		}
		table.SetBody(id, p)
	}

	// Pass 3: build the fixpoint, translating back-end errors per §4.5.
	grammarPat, err := peg.Grammar(table, grammarID)
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "may be left recursive") {
			return env.Binding{}, fmt.Errorf("%s", msg)
		}
		return env.Binding{}, fmt.Errorf("peg compilation error: %s", msg)
	}

	result := env.NewGrammarBinding(grammarPat)
	result.OriginAST = g
	return result, nil
}
