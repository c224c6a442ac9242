// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package ast defines the Abstract Syntax Tree node shapes that the
// compiler consumes. The surface parser and macro expander (out of scope
// for this module) are responsible for producing trees built from these
// node types; the compiler only ever reads them.
package ast

// Node is the tagged-variant interface implemented by every AST node kind
// named in the compiler's external interface. A Node carries its own
// source location and, once compiled, a back-link to the resulting
// pattern (see Node.SetPat/Pat) so that higher-level tooling can recover
// "what did this node compile to" without re-threading return values.
type Node interface {
	node()
	Loc() *Location
	// Pat returns the back-linked compilation result, or nil if this node
	// has not been compiled (or compilation failed). External components
	// should not depend on this; it exists only for pretty-printing
	// already-compiled error contexts.
	Pat() interface{}
	SetPat(interface{})
}

// base is embedded by every concrete node to provide the back-link and
// location plumbing without repeating it on each type.
type base struct {
	Location *Location
	pat      interface{}
}

func (b *base) Loc() *Location    { return b.Location }
func (b *base) Pat() interface{}  { return b.pat }
func (b *base) SetPat(p interface{}) { b.pat = p }

// PredicateKind enumerates the three predicate forms in §4.2.
type PredicateKind int

const (
	LookAhead PredicateKind = iota
	LookBehind
	Negation
)

func (k PredicateKind) String() string {
	switch k {
	case LookAhead:
		return "lookahead"
	case LookBehind:
		return "lookbehind"
	case Negation:
		return "negation"
	default:
		return "unknown-predicate"
	}
}

// Ref is a (possibly package-qualified) identifier reference.
type Ref struct {
	base
	LocalName string
	Package   string // empty when unqualified
}

func (*Ref) node() {}

// Literal is a quoted string literal compiled to a lit() pattern after
// escape decoding.
type Literal struct {
	base
	Value string // raw, not yet escape-decoded
}

func (*Literal) node() {}

// RplString is a string-typed literal: same lexical shape as Literal, but
// bound as a String value rather than compiled into a pattern.
type RplString struct {
	base
	Value string
}

func (*RplString) node() {}

// Hashtag is an identifier-like tagged string, e.g. `#tag`.
type Hashtag struct {
	base
	Value string
}

func (*Hashtag) node() {}

// Sequence is an ordered list of expressions joined with seq().
type Sequence struct {
	base
	Exps []Node
}

func (*Sequence) node() {}

// Choice is an ordered list of expressions joined with alt().
type Choice struct {
	base
	Exps []Node
}

func (*Choice) node() {}

// Predicate wraps an expression with look_ahead/look_behind/negation.
type Predicate struct {
	base
	Kind PredicateKind
	Exp  Node
}

func (*Predicate) node() {}

// CsRange is a character-set range `[first-last]`, optionally complemented.
type CsRange struct {
	base
	First, Last string // single, possibly-escaped characters
	Complement  bool
}

func (*CsRange) node() {}

// CsList is a character-set enumeration `[abc]`, optionally complemented.
type CsList struct {
	base
	Chars      []string
	Complement bool
}

func (*CsList) node() {}

// CsNamed is a named character class, e.g. `[:digit:]`.
type CsNamed struct {
	base
	Name       string
	Complement bool
}

func (*CsNamed) node() {}

// CsExp wraps a nested character-set expression (union/intersection/
// difference/simple) with its own complement flag.
type CsExp struct {
	base
	Cexp       Node
	Complement bool
}

func (*CsExp) node() {}

// CsUnion is the union of a list of character-set expressions.
type CsUnion struct {
	base
	Cexps []Node
}

func (*CsUnion) node() {}

// CsIntersection is not implemented; compiling one is always an error.
type CsIntersection struct {
	base
	Cexps []Node
}

func (*CsIntersection) node() {}

// CsDifference is not implemented; compiling one is always an error.
type CsDifference struct {
	base
	Cexps []Node
}

func (*CsDifference) node() {}

// Atleast is `exp^min` (unbounded repetition with a floor).
type Atleast struct {
	base
	Exp Node
	Min int
}

func (*Atleast) node() {}

// Atmost is `exp^-max` (bounded repetition, zero floor).
type Atmost struct {
	base
	Exp Node
	Max int
}

func (*Atmost) node() {}

// Binding is `ref = exp`, `ref := exp` (is_local) or `ref = exp` marked as
// an alias depending on the surface syntax the expander already resolved.
type Binding struct {
	base
	Ref     *Ref
	Exp     Node
	IsAlias bool
	IsLocal bool
}

func (*Binding) node() {}

// Grammar is an ordered list of mutually-recursive rule bindings; the
// first rule is the start rule.
type Grammar struct {
	base
	Rules []*Binding
}

func (*Grammar) node() {}

// Application is `ref(args...)`, a call to a primitive (or, unsupported,
// user-defined) function.
type Application struct {
	base
	Ref     *Ref
	Arglist []Node
}

func (*Application) node() {}

// ImportDecl marks a package import already satisfied by the module
// loader; the compiler treats it purely as a marker to skip.
type ImportDecl struct {
	base
	ImportPath string
	Prefix     string
}

func (*ImportDecl) node() {}

// PackageDecl names the package a block belongs to.
type PackageDecl struct {
	base
	Name string
}

func (*PackageDecl) node() {}

// Block is the top-level unit handed to the block/module compiler.
type Block struct {
	base
	Package *PackageDecl // nil if anonymous
	Imports []*ImportDecl
	Stmts   []*Binding
}

func (*Block) node() {}
