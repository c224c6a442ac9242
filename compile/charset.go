// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"

	"github.com/vmorris/rosie-pattern-language/ast"
	"github.com/vmorris/rosie-pattern-language/env"
	"github.com/vmorris/rosie-pattern-language/peg"
)

var anyByte = peg.ByteRange(0x00, 0xFF)

// complementByte turns "matches pat" into "matches exactly one byte that
// pat does not", the "any byte minus peg" composition §4.2 calls for on a
// complemented cs_named/cs_range/cs_list/cs_exp.
func complementByte(pat peg.Pattern) peg.Pattern {
	return peg.Seq(peg.Negation(pat), anyByte)
}

// localeTable is the built-in POSIX/Unicode locale the surface language's
// cs_named nodes resolve against (§4.2, §6 "Consumed builtins").
var localeTable = map[string]peg.Pattern{
	"digit":  peg.ByteRange('0', '9'),
	"upper":  peg.ByteRange('A', 'Z'),
	"lower":  peg.ByteRange('a', 'z'),
	"alpha":  peg.Alt(peg.ByteRange('A', 'Z'), peg.ByteRange('a', 'z')),
	"alnum":  peg.Alt(peg.ByteRange('A', 'Z'), peg.ByteRange('a', 'z'), peg.ByteRange('0', '9')),
	"xdigit": peg.Alt(peg.ByteRange('0', '9'), peg.ByteRange('A', 'F'), peg.ByteRange('a', 'f')),
	"space":  peg.Alt(peg.ByteRange(0x09, 0x0D), peg.ByteRange(0x20, 0x20)),
	"blank":  peg.Alt(peg.ByteRange(0x20, 0x20), peg.ByteRange(0x09, 0x09)),
	"cntrl":  peg.Alt(peg.ByteRange(0x00, 0x1F), peg.ByteRange(0x7F, 0x7F)),
	"print":  peg.ByteRange(0x20, 0x7E),
	"graph":  peg.ByteRange(0x21, 0x7E),
	"punct": peg.Alt(
		peg.ByteRange(0x21, 0x2F),
		peg.ByteRange(0x3A, 0x40),
		peg.ByteRange(0x5B, 0x60),
		peg.ByteRange(0x7B, 0x7E),
	),
	"ascii": peg.ByteRange(0x00, 0x7F),
	"word":  peg.Alt(peg.ByteRange('A', 'Z'), peg.ByteRange('a', 'z'), peg.ByteRange('0', '9'), peg.ByteRange('_', '_')),
}

func compileCsNamed(n *ast.CsNamed) (env.Binding, error) {
	pat, ok := localeTable[n.Name]
	if !ok {
		return env.Binding{}, fmt.Errorf("unknown named charset: %s", n.Name)
	}
	if n.Complement {
		pat = complementByte(pat)
	}
	return env.NewPatternBinding(pat, nil, false, false, n), nil
}

func compileCsRange(n *ast.CsRange) (env.Binding, error) {
	first, bad, ok := decodeEscapes(n.First)
	if !ok {
		return env.Binding{}, fmt.Errorf("invalid escape sequence in character set: \\%s", bad)
	}
	last, bad, ok := decodeEscapes(n.Last)
	if !ok {
		return env.Binding{}, fmt.Errorf("invalid escape sequence in character set: \\%s", bad)
	}
	if len(first) != 1 || len(last) != 1 {
		return env.Binding{}, fmt.Errorf("invalid character set range: %s-%s", n.First, n.Last)
	}
	pat := peg.Pattern(peg.ByteRange(first[0], last[0]))
	if n.Complement {
		pat = complementByte(pat)
	}
	return env.NewPatternBinding(pat, nil, false, false, n), nil
}

func compileCsList(n *ast.CsList) (env.Binding, error) {
	var lits []peg.Pattern
	for _, raw := range n.Chars {
		decoded, bad, ok := decodeEscapes(raw)
		if !ok {
			return env.Binding{}, fmt.Errorf("invalid escape sequence in character set: \\%s", bad)
		}
		lits = append(lits, peg.Lit([]byte(decoded)))
	}
	if len(lits) == 0 {
		return env.Binding{}, fmt.Errorf("invalid expression: empty character list")
	}
	pat := peg.Alt(lits...)
	if n.Complement {
		pat = complementByte(pat)
	}
	return env.NewPatternBinding(pat, nil, false, false, n), nil
}

func compileCsUnion(e *env.Environment, n *ast.CsUnion, opts Options) (env.Binding, error) {
	var pats []peg.Pattern
	for _, sub := range n.Cexps {
		b, err := CompileExpr(e, sub, opts)
		if err != nil {
			return env.Binding{}, err
		}
		p, err := requirePattern(b, "union member")
		if err != nil {
			return env.Binding{}, err
		}
		pats = append(pats, p)
	}
	if len(pats) == 0 {
		return env.Binding{}, fmt.Errorf("invalid expression: empty character set union")
	}
	return env.NewPatternBinding(peg.Alt(pats...), nil, false, false, n), nil
}

func compileCsExp(e *env.Environment, n *ast.CsExp, opts Options) (env.Binding, error) {
	cexp := n.Cexp
	complement := n.Complement
	for {
		inner, ok := cexp.(*ast.CsExp)
		if !ok {
			break
		}
		complement = complement != inner.Complement
		cexp = inner.Cexp
	}

	result, err := CompileExpr(e, cexp, opts)
	if err != nil {
		return env.Binding{}, err
	}
	p, err := requirePattern(result, "character set expression")
	if err != nil {
		return env.Binding{}, err
	}
	if complement {
		p = complementByte(p)
	}
	return env.NewPatternBinding(p, nil, false, false, n), nil
}
