// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"
	"strings"
)

// Print renders n as a short, single-line approximation of its surface
// syntax, the same role the teacher's ast.Pretty/Term.String() plays when
// an error message needs to name the offending expression rather than its
// Go type (the "<printed exp>"/"<printed node>" placeholders in §4.2/§7).
// It is best-effort: nested nodes are rendered recursively but no attempt
// is made to round-trip exact surface syntax (escaping, parenthesization).
func Print(n Node) string {
	if n == nil {
		return "<nil>"
	}
	switch v := n.(type) {
	case *Ref:
		if v.Package == "" {
			return v.LocalName
		}
		return v.Package + "." + v.LocalName
	case *Literal:
		return fmt.Sprintf("%q", v.Value)
	case *RplString:
		return fmt.Sprintf("%q", v.Value)
	case *Hashtag:
		return v.Value
	case *Sequence:
		return printJoined(v.Exps, " ")
	case *Choice:
		return printJoined(v.Exps, " / ")
	case *Predicate:
		switch v.Kind {
		case LookAhead:
			return "> " + Print(v.Exp)
		case LookBehind:
			return "< " + Print(v.Exp)
		case Negation:
			return "! " + Print(v.Exp)
		default:
			return "? " + Print(v.Exp)
		}
	case *CsRange:
		return printComplement(v.Complement, fmt.Sprintf("[%s-%s]", v.First, v.Last))
	case *CsList:
		return printComplement(v.Complement, fmt.Sprintf("[%s]", strings.Join(v.Chars, "")))
	case *CsNamed:
		return printComplement(v.Complement, fmt.Sprintf("[:%s:]", v.Name))
	case *CsExp:
		return printComplement(v.Complement, Print(v.Cexp))
	case *CsUnion:
		return printJoined(v.Cexps, " || ")
	case *CsIntersection:
		return printJoined(v.Cexps, " && ")
	case *CsDifference:
		return printJoined(v.Cexps, " - ")
	case *Atleast:
		return fmt.Sprintf("%s^%d", Print(v.Exp), v.Min)
	case *Atmost:
		return fmt.Sprintf("%s^-%d", Print(v.Exp), v.Max)
	case *Binding:
		op := "="
		if v.IsLocal {
			op = ":="
		}
		return fmt.Sprintf("%s %s %s", Print(v.Ref), op, Print(v.Exp))
	case *Grammar:
		parts := make([]string, len(v.Rules))
		for i, r := range v.Rules {
			parts[i] = Print(r)
		}
		return "grammar{ " + strings.Join(parts, "; ") + " }"
	case *Application:
		args := make([]string, len(v.Arglist))
		for i, a := range v.Arglist {
			args[i] = Print(a)
		}
		return fmt.Sprintf("%s(%s)", Print(v.Ref), strings.Join(args, ", "))
	case *ImportDecl:
		return fmt.Sprintf("import %s", v.ImportPath)
	case *PackageDecl:
		return fmt.Sprintf("package %s", v.Name)
	case *Block:
		parts := make([]string, len(v.Stmts))
		for i, s := range v.Stmts {
			parts[i] = Print(s)
		}
		return strings.Join(parts, "\n")
	default:
		return fmt.Sprintf("%T", n)
	}
}

func printJoined(nodes []Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = Print(n)
	}
	return strings.Join(parts, sep)
}

func printComplement(complement bool, s string) string {
	if complement {
		return "!" + s
	}
	return s
}
