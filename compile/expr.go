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

// CompileExpr dispatches on node's concrete AST type and returns the
// Binding it compiles to (§4.2). Errors are plain, message-only errors;
// callers that sit above a diagnostic sink (the block and top-level
// compilers) are responsible for wrapping them into ast.Violations with
// the offending node's location attached.
func CompileExpr(e *env.Environment, node ast.Node, opts Options) (env.Binding, error) {
	switch n := node.(type) {
	case *ast.Literal:
		decoded, bad, ok := decodeEscapes(n.Value)
		if !ok {
			return env.Binding{}, fmt.Errorf("invalid escape sequence in literal: \\%s", bad)
		}
		b := env.NewPatternBinding(peg.Lit([]byte(decoded)), nil, false, false, n)
		n.SetPat(b.Peg)
		return b, nil

	case *ast.RplString:
		decoded, bad, ok := decodeEscapes(n.Value)
		if !ok {
			return env.Binding{}, fmt.Errorf("invalid escape sequence in string: \\%s", bad)
		}
		return env.NewStringBinding(decoded), nil

	case *ast.Hashtag:
		return env.NewHashtagBinding(n.Value), nil

	case *ast.Sequence:
		if len(n.Exps) == 0 {
			return env.Binding{}, fmt.Errorf("invalid expression: empty sequence")
		}
		pats := make([]peg.Pattern, 0, len(n.Exps))
		for _, sub := range n.Exps {
			b, err := CompileExpr(e, sub, opts)
			if err != nil {
				return env.Binding{}, err
			}
			p, err := requirePattern(b, describeNode(sub))
			if err != nil {
				return env.Binding{}, err
			}
			pats = append(pats, p)
		}
		result := env.NewPatternBinding(peg.Seq(pats...), nil, false, false, n)
		n.SetPat(result.Peg)
		return result, nil

	case *ast.Choice:
		if len(n.Exps) == 0 {
			return env.Binding{}, fmt.Errorf("invalid expression: empty choice")
		}
		pats := make([]peg.Pattern, 0, len(n.Exps))
		for _, sub := range n.Exps {
			b, err := CompileExpr(e, sub, opts)
			if err != nil {
				return env.Binding{}, err
			}
			p, err := requirePattern(b, describeNode(sub))
			if err != nil {
				return env.Binding{}, err
			}
			pats = append(pats, p)
		}
		result := env.NewPatternBinding(peg.Alt(pats...), nil, false, false, n)
		n.SetPat(result.Peg)
		return result, nil

	case *ast.Predicate:
		b, err := CompileExpr(e, n.Exp, opts)
		if err != nil {
			return env.Binding{}, err
		}
		p, err := requirePattern(b, describeNode(n.Exp))
		if err != nil {
			return env.Binding{}, err
		}
		var out peg.Pattern
		switch n.Kind {
		case ast.LookAhead:
			out = peg.LookAhead(p)
		case ast.Negation:
			out = peg.Negation(p)
		case ast.LookBehind:
			out, err = peg.LookBehind(p)
			if err != nil {
				return env.Binding{}, translateLookBehindError(err, n.Exp)
			}
		default:
			return env.Binding{}, fmt.Errorf("invalid expression: unknown predicate kind")
		}
		result := env.NewPatternBinding(out, nil, false, false, n)
		n.SetPat(result.Peg)
		return result, nil

	case *ast.CsNamed:
		return compileCsNamed(n)
	case *ast.CsRange:
		return compileCsRange(n)
	case *ast.CsList:
		return compileCsList(n)
	case *ast.CsUnion:
		return compileCsUnion(e, n, opts)
	case *ast.CsIntersection:
		return env.Binding{}, fmt.Errorf("character set intersection is not implemented")
	case *ast.CsDifference:
		return env.Binding{}, fmt.Errorf("character set difference is not implemented")
	case *ast.CsExp:
		return compileCsExp(e, n, opts)

	case *ast.Atleast:
		b, err := CompileExpr(e, n.Exp, opts)
		if err != nil {
			return env.Binding{}, err
		}
		p, err := requirePattern(b, describeNode(n.Exp))
		if err != nil {
			return env.Binding{}, err
		}
		rep, err := peg.RepAtLeast(n.Min, p)
		if err != nil {
			return env.Binding{}, err
		}
		result := env.NewPatternBinding(rep, nil, false, false, n)
		n.SetPat(result.Peg)
		return result, nil

	case *ast.Atmost:
		b, err := CompileExpr(e, n.Exp, opts)
		if err != nil {
			return env.Binding{}, err
		}
		p, err := requirePattern(b, describeNode(n.Exp))
		if err != nil {
			return env.Binding{}, err
		}
		rep, err := peg.RepAtMost(n.Max, p)
		if err != nil {
			return env.Binding{}, err
		}
		result := env.NewPatternBinding(rep, nil, false, false, n)
		n.SetPat(result.Peg)
		return result, nil

	case *ast.Ref:
		b, ok := e.Lookup(n.LocalName, n.Package)
		if !ok || b.Kind == env.KindNovalue {
			return env.Binding{}, unboundIdentifierError(e, refName(n))
		}
		if b.Kind != env.KindPattern {
			return env.Binding{}, fmt.Errorf("type mismatch: expected a pattern, but '%s' is bound to %s", refName(n), b.Kind)
		}
		result := env.Binding{
			Kind:      env.KindPattern,
			Peg:       b.Peg,
			Uncap:     b.Uncap,
			Alias:     b.Alias,
			IsGrammar: b.IsGrammar,
			OriginAST: n,
			Name:      refName(n),
		}
		n.SetPat(result.Peg)
		return result, nil

	case *ast.Application:
		fb, ok := e.Lookup(n.Ref.LocalName, n.Ref.Package)
		if !ok || fb.Kind == env.KindNovalue {
			return env.Binding{}, unboundIdentifierError(e, refName(n.Ref))
		}
		if fb.Kind != env.KindPrimFunction {
			return env.Binding{}, fmt.Errorf("type mismatch: expected a function, but '%s' is bound to %s", refName(n.Ref), fb.Kind)
		}
		args := make([]peg.Pattern, 0, len(n.Arglist))
		for _, a := range n.Arglist {
			ab, err := CompileExpr(e, a, opts)
			if err != nil {
				return env.Binding{}, err
			}
			p, err := requirePattern(ab, describeNode(a))
			if err != nil {
				return env.Binding{}, err
			}
			args = append(args, p)
		}
		out, err := fb.Impl(args)
		if err != nil {
			return env.Binding{}, fmt.Errorf("error in function: '%s'", err)
		}
		result := env.NewPatternBinding(out, nil, false, false, n)
		result.Name = fb.Name
		n.SetPat(result.Peg)
		return result, nil

	case *ast.Grammar:
		return CompileGrammar(e, n, opts, "")

	default:
		return env.Binding{}, fmt.Errorf("invalid expression: %s", describeNode(node))
	}
}

// translateLookBehindError maps peg.LookBehind's structured construction
// error onto the three documented lookbehind messages (§4.2), printing the
// offending AST expression rather than the compiled pattern it lowered to.
func translateLookBehindError(err error, body ast.Node) error {
	msg := err.Error()
	printed := ast.Print(body)
	switch {
	case strings.Contains(msg, "fixed length"):
		return fmt.Errorf("lookbehind pattern does not have fixed length: %s", printed)
	case strings.Contains(msg, "too long"):
		return fmt.Errorf("lookbehind pattern too long: %s", printed)
	case strings.Contains(msg, "captures"):
		return fmt.Errorf("lookbehind pattern has captures: %s", printed)
	default:
		return fmt.Errorf("internal error: %s", msg)
	}
}
