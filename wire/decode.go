// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package wire decodes the JSON-encoded tagged-variant AST named in the
// compiler's external interface (§6) into the ast.Node tree CompileExpr,
// CompileGrammar and CompileBlock consume. Decoding follows the same
// shape the teacher uses for its own tagged-union terms: unmarshal into a
// generic rawNode struct first, then switch on a discriminator field, rather than relying on
// encoding/json's struct-tag dispatch (grounded on
// ast.Expr.UnmarshalJSON in the teacher's ast/policy.go).
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/vmorris/rosie-pattern-language/ast"
)

// rawNode is the generic shape every wire node decodes into before the
// "type" discriminator picks a concrete Go type.
type rawNode struct {
	Type       string          `json:"type"`
	LocalName  string          `json:"localname"`
	Package    string          `json:"package"`
	Value      string          `json:"value"`
	Exps       []json.RawMessage `json:"exps"`
	Kind       string          `json:"kind"`
	Exp        json.RawMessage `json:"exp"`
	First      string          `json:"first"`
	Last       string          `json:"last"`
	Complement bool            `json:"complement"`
	Chars      []string        `json:"chars"`
	Name       string          `json:"name"`
	Cexp       json.RawMessage `json:"cexp"`
	Cexps      []json.RawMessage `json:"cexps"`
	Min        int             `json:"min"`
	Max        int             `json:"max"`
	Ref        json.RawMessage `json:"ref"`
	Arglist    []json.RawMessage `json:"arglist"`
	Rules      []json.RawMessage `json:"rules"`
	IsAlias    bool            `json:"is_alias"`
	IsLocal    bool            `json:"is_local"`
	Stmts      []json.RawMessage `json:"stmts"`
	PackageDecl json.RawMessage `json:"package_decl"`
	ImportDecls []json.RawMessage `json:"import_decls"`
	ImportPath string          `json:"importpath"`
	Prefix     string          `json:"prefix"`
}

// DecodeNode decodes a single wire-format AST node. Source locations are
// not attached: ast.Node exposes Loc() but no setter, since locations are
// normally stamped by the (out of scope) parser at parse time, not by a
// wire decoder reconstructing an already-parsed tree.
func DecodeNode(data []byte) (ast.Node, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decoding wire AST node")
	}
	return buildNode(&raw)
}

func buildNode(raw *rawNode) (ast.Node, error) {
	switch raw.Type {
	case "ref":
		return &ast.Ref{LocalName: raw.LocalName, Package: raw.Package}, nil

	case "literal":
		return &ast.Literal{Value: raw.Value}, nil

	case "string":
		return &ast.RplString{Value: raw.Value}, nil

	case "hashtag":
		return &ast.Hashtag{Value: raw.Value}, nil

	case "sequence":
		exps, err := decodeNodes(raw.Exps)
		if err != nil {
			return nil, err
		}
		return &ast.Sequence{Exps: exps}, nil

	case "choice":
		exps, err := decodeNodes(raw.Exps)
		if err != nil {
			return nil, err
		}
		return &ast.Choice{Exps: exps}, nil

	case "predicate":
		kind, err := decodePredicateKind(raw.Kind)
		if err != nil {
			return nil, err
		}
		inner, err := decodeOptionalNode(raw.Exp)
		if err != nil {
			return nil, err
		}
		return &ast.Predicate{Kind: kind, Exp: inner}, nil

	case "cs_range":
		return &ast.CsRange{First: raw.First, Last: raw.Last, Complement: raw.Complement}, nil

	case "cs_list":
		return &ast.CsList{Chars: raw.Chars, Complement: raw.Complement}, nil

	case "cs_named":
		return &ast.CsNamed{Name: raw.Name, Complement: raw.Complement}, nil

	case "cs_exp":
		cexp, err := decodeOptionalNode(raw.Cexp)
		if err != nil {
			return nil, err
		}
		return &ast.CsExp{Cexp: cexp, Complement: raw.Complement}, nil

	case "cs_union":
		cexps, err := decodeNodes(raw.Cexps)
		if err != nil {
			return nil, err
		}
		return &ast.CsUnion{Cexps: cexps}, nil

	case "cs_intersection":
		cexps, err := decodeNodes(raw.Cexps)
		if err != nil {
			return nil, err
		}
		return &ast.CsIntersection{Cexps: cexps}, nil

	case "cs_difference":
		cexps, err := decodeNodes(raw.Cexps)
		if err != nil {
			return nil, err
		}
		return &ast.CsDifference{Cexps: cexps}, nil

	case "atleast":
		inner, err := decodeOptionalNode(raw.Exp)
		if err != nil {
			return nil, err
		}
		return &ast.Atleast{Exp: inner, Min: raw.Min}, nil

	case "atmost":
		inner, err := decodeOptionalNode(raw.Exp)
		if err != nil {
			return nil, err
		}
		return &ast.Atmost{Exp: inner, Max: raw.Max}, nil

	case "application":
		ref, err := decodeRef(raw.Ref)
		if err != nil {
			return nil, err
		}
		args, err := decodeNodes(raw.Arglist)
		if err != nil {
			return nil, err
		}
		return &ast.Application{Ref: ref, Arglist: args}, nil

	case "grammar":
		rules, err := decodeBindings(raw.Rules)
		if err != nil {
			return nil, err
		}
		return &ast.Grammar{Rules: rules}, nil

	case "binding":
		return decodeBinding(raw)

	case "block":
		return decodeBlock(raw)

	case "import_decl":
		return &ast.ImportDecl{ImportPath: raw.ImportPath, Prefix: raw.Prefix}, nil

	case "package_decl":
		return &ast.PackageDecl{Name: raw.Name}, nil

	case "":
		return nil, errors.New("decoding wire AST node: missing \"type\" discriminator")

	default:
		return nil, fmt.Errorf("decoding wire AST node: unknown node type %q", raw.Type)
	}
}

func decodePredicateKind(kind string) (ast.PredicateKind, error) {
	switch kind {
	case "lookahead":
		return ast.LookAhead, nil
	case "lookbehind":
		return ast.LookBehind, nil
	case "negation":
		return ast.Negation, nil
	default:
		return 0, fmt.Errorf("decoding wire AST node: unknown predicate kind %q", kind)
	}
}

func decodeOptionalNode(raw json.RawMessage) (ast.Node, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	return DecodeNode(raw)
}

func decodeNodes(raws []json.RawMessage) ([]ast.Node, error) {
	nodes := make([]ast.Node, 0, len(raws))
	for _, r := range raws {
		n, err := DecodeNode(r)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func decodeRef(raw json.RawMessage) (*ast.Ref, error) {
	n, err := decodeOptionalNode(raw)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, errors.New("decoding wire AST node: application missing \"ref\"")
	}
	ref, ok := n.(*ast.Ref)
	if !ok {
		return nil, fmt.Errorf("decoding wire AST node: expected a ref node, got %T", n)
	}
	return ref, nil
}

func decodeBinding(raw *rawNode) (*ast.Binding, error) {
	ref, err := decodeRef(raw.Ref)
	if err != nil {
		return nil, err
	}
	exp, err := decodeOptionalNode(raw.Exp)
	if err != nil {
		return nil, err
	}
	return &ast.Binding{Ref: ref, Exp: exp, IsAlias: raw.IsAlias, IsLocal: raw.IsLocal}, nil
}

func decodeBindings(raws []json.RawMessage) ([]*ast.Binding, error) {
	bindings := make([]*ast.Binding, 0, len(raws))
	for _, r := range raws {
		var sub rawNode
		if err := json.Unmarshal(r, &sub); err != nil {
			return nil, errors.Wrap(err, "decoding wire AST node")
		}
		b, err := decodeBinding(&sub)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}
	return bindings, nil
}

func decodeBlock(raw *rawNode) (*ast.Block, error) {
	stmts, err := decodeBindings(raw.Stmts)
	if err != nil {
		return nil, err
	}
	imports := make([]*ast.ImportDecl, 0, len(raw.ImportDecls))
	for _, r := range raw.ImportDecls {
		n, err := DecodeNode(r)
		if err != nil {
			return nil, err
		}
		imp, ok := n.(*ast.ImportDecl)
		if !ok {
			return nil, fmt.Errorf("decoding wire AST node: expected an import_decl node, got %T", n)
		}
		imports = append(imports, imp)
	}

	var pkg *ast.PackageDecl
	if len(raw.PackageDecl) > 0 {
		n, err := DecodeNode(raw.PackageDecl)
		if err != nil {
			return nil, err
		}
		p, ok := n.(*ast.PackageDecl)
		if !ok {
			return nil, fmt.Errorf("decoding wire AST node: expected a package_decl node, got %T", n)
		}
		pkg = p
	}

	return &ast.Block{Package: pkg, Imports: imports, Stmts: stmts}, nil
}

// DecodeBlock decodes a top-level block document, the shape the compiler's
// CLI reads from a file or stdin.
func DecodeBlock(data []byte) (*ast.Block, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decoding wire AST block")
	}
	if raw.Type != "" && raw.Type != "block" {
		return nil, fmt.Errorf("decoding wire AST block: expected a block node, got %q", raw.Type)
	}
	return decodeBlock(&raw)
}
